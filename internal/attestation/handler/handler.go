package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"certform/internal/attestation"
	"certform/internal/platform/middleware"
	"certform/internal/transport/http/shared"
	dErrors "certform/pkg/domain-errors"
	"certform/pkg/requestcontext"
)

// Service defines the interface for attestation operations.
type Service interface {
	Issue(ctx context.Context, tenant, email string) (time.Time, error)
	Info(ctx context.Context, tenant, email string) (attestation.Info, error)
}

// Handler exposes the certificate endpoints.
type Handler struct {
	logger       *slog.Logger
	service      Service
	jwtValidator middleware.JWTValidator
}

// New creates a new attestation Handler.
func New(service Service, jwtValidator middleware.JWTValidator, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service, jwtValidator: jwtValidator}
}

// Register registers the certificate routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Get("/certinfo", h.handleInfo)
		r.Post("/certinfo", h.handleIssue)
	})
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, email := requestcontext.Tenant(ctx), requestcontext.LearnerEmail(ctx)

	info, err := h.service.Info(ctx, tenant, email)
	if err != nil {
		h.writeServiceError(ctx, w, err, "read certificate info")
		return
	}
	shared.WriteJSON(w, http.StatusOK, info)
}

// handleIssue triggers the one-shot issuance. A repeat call is not an error:
// the stored date comes back with issued=true either way.
func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, email := requestcontext.Tenant(ctx), requestcontext.LearnerEmail(ctx)

	date, err := h.service.Issue(ctx, tenant, email)
	if err != nil {
		h.writeServiceError(ctx, w, err, "issue attestation")
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"issued": true,
		"date":   date,
	})
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, op string) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeNotFound, dErrors.CodePreconditionFailed, dErrors.CodeUnavailable:
		shared.WriteError(w, err)
	default:
		h.logger.ErrorContext(ctx, "failed to "+op,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to "+op))
	}
}
