// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Context keys and getter/setter functions live here so that values set by
// middleware (learner identity, tenant, request ID, request time) can be
// consumed by services without pulling in net/http.
//
// Usage in services (read values):
//
//	email := requestcontext.LearnerEmail(ctx)
//	tenant := requestcontext.Tenant(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithLearnerEmail(ctx, email)
//	ctx = requestcontext.WithTenant(ctx, tenant)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	learnerEmailKey struct{}
	tenantKey       struct{}
	requestIDKey    struct{}
	requestTimeKey  struct{}
)

// Exported context keys for tests that need raw context.WithValue.
var (
	ContextKeyLearnerEmail = learnerEmailKey{}
	ContextKeyTenant       = tenantKey{}
	ContextKeyRequestID    = requestIDKey{}
	ContextKeyRequestTime  = requestTimeKey{}
)

// LearnerEmail retrieves the authenticated learner's email from the context.
// Email is the natural key for learners; returns "" if not set.
func LearnerEmail(ctx context.Context) string {
	if email, ok := ctx.Value(ContextKeyLearnerEmail).(string); ok {
		return email
	}
	return ""
}

// WithLearnerEmail injects a learner email into the context.
func WithLearnerEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ContextKeyLearnerEmail, email)
}

// Tenant retrieves the resolved tenant ID (e.g. "congo", "senegal") from the
// context. Tenant is resolved exactly once at the boundary and never
// re-derived mid-pipeline.
func Tenant(ctx context.Context) string {
	if tenant, ok := ctx.Value(ContextKeyTenant).(string); ok {
		return tenant
	}
	return ""
}

// WithTenant injects a tenant ID into the context.
func WithTenant(ctx context.Context, tenant string) context.Context {
	return context.WithValue(ctx, ContextKeyTenant, tenant)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from the context. Falls back to
// time.Now() for non-HTTP contexts such as workers and tests that don't
// inject one.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for service unit
// tests that don't run the full HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
