package health

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"certform/internal/transport/http/shared"
	dErrors "certform/pkg/domain-errors"
	"certform/pkg/requestcontext"
)

// Handler exposes liveness and the scheduled keepalive endpoint.
type Handler struct {
	logger     *slog.Logger
	chain      *Chain
	cronSecret string
}

// NewHandler creates a new health Handler. The cron secret guards /keepalive
// so only the scheduler can trigger probe runs.
func NewHandler(chain *Chain, cronSecret string, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, chain: chain, cronSecret: cronSecret}
}

// Register registers the health routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleLiveness)
	r.Get("/keepalive", h.handleKeepalive)
}

func (h *Handler) handleLiveness(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) handleKeepalive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if h.cronSecret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.cronSecret)) != 1 {
		h.logger.WarnContext(ctx, "keepalive rejected",
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid keepalive credentials"))
		return
	}

	result := h.chain.Run(ctx)
	status := http.StatusOK
	if !result.Healthy {
		status = http.StatusServiceUnavailable
	}
	shared.WriteJSON(w, status, result)
}
