// Package httptransport assembles the HTTP surface: global middleware, the
// feature routers, and the metrics endpoint.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	attestationhandler "certform/internal/attestation/handler"
	"certform/internal/health"
	learnerhandler "certform/internal/learner/handler"
	"certform/internal/platform/metrics"
	"certform/internal/platform/middleware"
	progresshandler "certform/internal/progress/handler"
)

const requestTimeout = 30 * time.Second

// Registrar is anything that can mount its routes on a chi router. Every
// feature handler implements it.
type Registrar interface {
	Register(r chi.Router)
}

// Deps collects everything the router needs.
type Deps struct {
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Learner     *learnerhandler.Handler
	Progress    *progresshandler.Handler
	Attestation *attestationhandler.Handler
	Health      *health.Handler
}

// NewRouter wires the middleware chain and mounts each feature handler.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Timeout(requestTimeout))

	r.Handle("/metrics", promhttp.Handler())
	d.Health.Register(r)

	r.Group(func(api chi.Router) {
		api.Use(middleware.ContentTypeJSON)
		api.Use(middleware.Latency(d.Metrics))
		for _, reg := range []Registrar{d.Learner, d.Progress, d.Attestation} {
			reg.Register(api)
		}
	})

	return r
}
