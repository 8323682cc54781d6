package health

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCronSecret = "scheduler-secret"

func newTestRouter(t *testing.T, probeErr error) chi.Router {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	chain := NewChain(logger, Probe{
		Name:  "db",
		Check: func(context.Context) error { return probeErr },
	})
	router := chi.NewRouter()
	NewHandler(chain, testCronSecret, logger).Register(router)
	return router
}

func TestLiveness(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestKeepalive(t *testing.T) {
	t.Run("rejects a missing secret", func(t *testing.T) {
		router := newTestRouter(t, nil)
		req := httptest.NewRequest(http.MethodGet, "/keepalive", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a wrong secret", func(t *testing.T) {
		router := newTestRouter(t, nil)
		req := httptest.NewRequest(http.MethodGet, "/keepalive", nil)
		req.Header.Set("Authorization", "Bearer guessed")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("healthy chain answers 200 with the winning probe", func(t *testing.T) {
		router := newTestRouter(t, nil)
		req := httptest.NewRequest(http.MethodGet, "/keepalive", nil)
		req.Header.Set("Authorization", "Bearer "+testCronSecret)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"healthy":true`)
		assert.Contains(t, rec.Body.String(), `"probe":"db"`)
	})

	t.Run("exhausted chain answers 503", func(t *testing.T) {
		router := newTestRouter(t, errors.New("connection refused"))
		req := httptest.NewRequest(http.MethodGet, "/keepalive", nil)
		req.Header.Set("Authorization", "Bearer "+testCronSecret)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"healthy":false`)
	})

	t.Run("empty configured secret locks the endpoint", func(t *testing.T) {
		logger := slog.New(slog.DiscardHandler)
		router := chi.NewRouter()
		NewHandler(NewChain(logger), "", logger).Register(router)

		req := httptest.NewRequest(http.MethodGet, "/keepalive", nil)
		req.Header.Set("Authorization", "Bearer ")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
