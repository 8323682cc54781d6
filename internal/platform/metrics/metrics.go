package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the cross-cutting Prometheus metrics for the application.
// Feature modules register their own metrics next to their services.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	LearnersCreated prometheus.Counter
}

// New creates and registers the shared metrics.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "certform_http_request_duration_seconds",
			Help:    "HTTP request latency by route, method and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method", "status"}),

		LearnersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certform_learners_created_total",
			Help: "Total number of learners registered",
		}),
	}
}

// ObserveRequest records the duration of one handled HTTP request.
func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route, method, status).Observe(d.Seconds())
	}
}

// IncrementLearnersCreated bumps the registration counter.
func (m *Metrics) IncrementLearnersCreated() {
	if m != nil {
		m.LearnersCreated.Inc()
	}
}
