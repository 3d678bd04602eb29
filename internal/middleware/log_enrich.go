package middleware

import (
	"context"
	"net/http"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/tenantctx"
)

// logFields is a mutable carrier injected near the top of the chain so that
// middleware running later in the chain (the tenant resolver sits inside the
// routed group) can surface values to the request logger and the slog handler.
type logFields struct {
	userID    string
	companyID string
}

type ctxLogFieldsKey struct{}

// WithLogFields injects an empty log-field carrier into the context.
func WithLogFields(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxLogFieldsKey{}, &logFields{})
}

// EnrichLogger copies the resolved tenant into the log-field carrier. It must
// run after the tenant resolver on tenant routes.
func EnrichLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if t, ok := tenantctx.FromContext(ctx); ok {
			if f, ok := ctx.Value(ctxLogFieldsKey{}).(*logFields); ok {
				f.userID = t.UserID.String()
				f.companyID = t.CompanyID.String()
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetLogUserID returns the enriched user id if set.
func GetLogUserID(ctx context.Context) (string, bool) {
	if f, ok := ctx.Value(ctxLogFieldsKey{}).(*logFields); ok && f.userID != "" {
		return f.userID, true
	}
	return "", false
}

// GetLogCompanyID returns the enriched company id if set.
func GetLogCompanyID(ctx context.Context) (string, bool) {
	if f, ok := ctx.Value(ctxLogFieldsKey{}).(*logFields); ok && f.companyID != "" {
		return f.companyID, true
	}
	return "", false
}
