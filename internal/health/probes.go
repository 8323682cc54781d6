// Package health implements the keepalive probe chain. The legacy keepalive
// job probed whatever endpoints happened to exist until one answered; here
// the probes are an explicit ordered list with a single success predicate:
// the chain succeeds as soon as one probe does.
package health

import (
	"context"
	"log/slog"
	"time"
)

// Probe is one named health check.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// Result reports which probe satisfied the chain.
type Result struct {
	Healthy   bool      `json:"healthy"`
	Probe     string    `json:"probe,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Chain runs probes in declaration order.
type Chain struct {
	probes []Probe
	logger *slog.Logger
}

func NewChain(logger *slog.Logger, probes ...Probe) *Chain {
	return &Chain{probes: probes, logger: logger}
}

// Run executes probes in order and stops at the first success. Failures
// before the first success are logged, not fatal; the chain fails only when
// every probe does.
func (c *Chain) Run(ctx context.Context) Result {
	now := time.Now().UTC()
	for _, probe := range c.probes {
		if err := probe.Check(ctx); err != nil {
			c.logger.WarnContext(ctx, "health probe failed",
				"probe", probe.Name,
				"error", err,
			)
			continue
		}
		return Result{Healthy: true, Probe: probe.Name, Timestamp: now}
	}
	return Result{Healthy: false, Timestamp: now}
}
