package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"certform/internal/learner"
	"certform/internal/platform/middleware"
	"certform/internal/transport/http/shared"
	dErrors "certform/pkg/domain-errors"
	"certform/pkg/requestcontext"
)

// Service defines the interface for account operations.
type Service interface {
	Register(ctx context.Context, tenant string, in learner.RegisterInput) (learner.Learner, error)
	Login(ctx context.Context, tenant, email, password string) (learner.LoginResult, error)
}

// Handler handles registration and login endpoints. These are the only
// routes reachable without a token; they resolve the tenant from the request
// instead of the claims.
type Handler struct {
	logger       *slog.Logger
	service      Service
	tenants      middleware.TenantResolver
	jwtValidator middleware.JWTValidator
}

// New creates a new account Handler.
func New(service Service, tenants middleware.TenantResolver, jwtValidator middleware.JWTValidator, logger *slog.Logger) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		tenants:      tenants,
		jwtValidator: jwtValidator,
	}
}

// Register registers the account routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireTenant(h.tenants, h.logger))
		r.Post("/users", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)
	})
	r.Get("/auth/session", h.handleSession)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in learner.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	created, err := h.service.Register(ctx, requestcontext.Tenant(ctx), in)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeBadRequest) || dErrors.Is(err, dErrors.CodeConflict) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "registration failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "registration failed"))
		return
	}

	shared.WriteJSON(w, http.StatusCreated, map[string]any{
		"user":    created,
		"message": "User created successfully",
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.service.Login(ctx, requestcontext.Tenant(ctx), req.Email, req.Password)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeUnauthorized) || dErrors.Is(err, dErrors.CodeBadRequest) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "login failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "login failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"token":      result.Token,
		"expires_in": int(result.ExpiresIn.Seconds()),
	})
}

// handleSession reports whether the caller holds a valid token. It never
// fails: an absent or invalid token is simply "not authenticated".
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	authenticated := false
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		_, err := h.jwtValidator.ValidateToken(token)
		authenticated = err == nil
	}
	shared.WriteJSON(w, http.StatusOK, map[string]bool{"authenticated": authenticated})
}
