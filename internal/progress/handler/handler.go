package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"certform/internal/platform/middleware"
	"certform/internal/progress"
	"certform/internal/transport/http/shared"
	dErrors "certform/pkg/domain-errors"
	"certform/pkg/requestcontext"
)

// Service defines the interface for the four signal collectors plus the
// dashboard overview.
type Service interface {
	VideoStatus(ctx context.Context, tenant, email string) (progress.VideoFlags, error)
	UpdateVideoFlags(ctx context.Context, tenant, email string, video1, video2 *bool) error
	QuizStatus(ctx context.Context, tenant, email string) (progress.ScoreStatus, error)
	SubmitScore(ctx context.Context, tenant, email string, score int) error
	Questionnaire(ctx context.Context, tenant, email string) (progress.Answers, error)
	SubmitQuestionnaire(ctx context.Context, tenant, email string, answers progress.Answers) error
	Overview(ctx context.Context, tenant, email string) (progress.Overview, error)
}

// Handler exposes the collector endpoints. Every route requires a token; the
// learner and tenant always come from the claims, never from the body.
type Handler struct {
	logger       *slog.Logger
	service      Service
	jwtValidator middleware.JWTValidator
}

// New creates a new progress Handler.
func New(service Service, jwtValidator middleware.JWTValidator, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service, jwtValidator: jwtValidator}
}

// Register registers the collector routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Get("/video", h.handleVideoStatus)
		r.Patch("/video", h.handleVideoUpdate)
		r.Get("/score", h.handleScoreStatus)
		r.Post("/score", h.handleScoreSubmit)
		r.Get("/questionnaire", h.handleQuestionnaireGet)
		r.Post("/questionnaire", h.handleQuestionnaireSubmit)
		r.Get("/progress", h.handleOverview)
	})
}

type videoPatchRequest struct {
	Video1 *bool `json:"video1"`
	Video2 *bool `json:"video2"`
}

type scoreSubmitRequest struct {
	Score *int `json:"score"`
}

// identity pulls the learner identity resolved by the auth middleware. A
// missing identity here means the middleware chain is misconfigured.
func (h *Handler) identity(ctx context.Context, w http.ResponseWriter) (tenant, email string, ok bool) {
	tenant, email = requestcontext.Tenant(ctx), requestcontext.LearnerEmail(ctx)
	if tenant == "" || email == "" {
		h.logger.ErrorContext(ctx, "identity missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return "", "", false
	}
	return tenant, email, true
}

func (h *Handler) handleVideoStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, email, ok := h.identity(ctx, w)
	if !ok {
		return
	}

	flags, err := h.service.VideoStatus(ctx, tenant, email)
	if err != nil {
		h.writeServiceError(ctx, w, err, "read video status")
		return
	}
	shared.WriteJSON(w, http.StatusOK, flags)
}

func (h *Handler) handleVideoUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, email, ok := h.identity(ctx, w)
	if !ok {
		return
	}

	var req videoPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.UpdateVideoFlags(ctx, tenant, email, req.Video1, req.Video2); err != nil {
		h.writeServiceError(ctx, w, err, "update video status")
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) handleScoreStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, email, ok := h.identity(ctx, w)
	if !ok {
		return
	}

	status, err := h.service.QuizStatus(ctx, tenant, email)
	if err != nil {
		h.writeServiceError(ctx, w, err, "read quiz status")
		return
	}
	shared.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) handleScoreSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, email, ok := h.identity(ctx, w)
	if !ok {
		return
	}

	var req scoreSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Score == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "score is required"))
		return
	}

	if err := h.service.SubmitScore(ctx, tenant, email, *req.Score); err != nil {
		h.writeServiceError(ctx, w, err, "submit score")
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"message": "Score updated successfully"})
}

func (h *Handler) handleQuestionnaireGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, email, ok := h.identity(ctx, w)
	if !ok {
		return
	}

	answers, err := h.service.Questionnaire(ctx, tenant, email)
	if err != nil {
		h.writeServiceError(ctx, w, err, "read questionnaire")
		return
	}
	shared.WriteJSON(w, http.StatusOK, answers)
}

func (h *Handler) handleQuestionnaireSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, email, ok := h.identity(ctx, w)
	if !ok {
		return
	}

	var answers progress.Answers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.SubmitQuestionnaire(ctx, tenant, email, answers); err != nil {
		h.writeServiceError(ctx, w, err, "submit questionnaire")
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"message": "Data updated successfully"})
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, email, ok := h.identity(ctx, w)
	if !ok {
		return
	}

	overview, err := h.service.Overview(ctx, tenant, email)
	if err != nil {
		h.writeServiceError(ctx, w, err, "read progress overview")
		return
	}
	shared.WriteJSON(w, http.StatusOK, overview)
}

// writeServiceError passes client-visible codes through and hides the rest
// behind a logged 500.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, op string) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeBadRequest, dErrors.CodeNotFound, dErrors.CodeUnavailable:
		shared.WriteError(w, err)
	default:
		h.logger.ErrorContext(ctx, "failed to "+op,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to "+op))
	}
}
