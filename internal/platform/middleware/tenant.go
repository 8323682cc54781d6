package middleware

import (
	"log/slog"
	"net/http"

	"certform/pkg/requestcontext"
)

// TenantResolver reports whether a tenant deployment exists. Implemented by
// the tenant catalog; kept as an interface so the middleware stays free of
// catalog internals.
type TenantResolver interface {
	Exists(tenant string) bool
}

// RequireTenant resolves the tenant for unauthenticated routes from the
// X-Tenant header (query parameter "tenant" as a fallback for browser
// clients). Authenticated routes carry the tenant in the token instead.
func RequireTenant(resolver TenantResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			tenant := r.Header.Get("X-Tenant")
			if tenant == "" {
				tenant = r.URL.Query().Get("tenant")
			}
			if tenant == "" || !resolver.Exists(tenant) {
				logger.WarnContext(ctx, "unknown tenant",
					"tenant", tenant,
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error":"tenant_not_found"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithTenant(ctx, tenant)))
		})
	}
}
