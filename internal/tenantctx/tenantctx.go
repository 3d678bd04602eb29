package tenantctx

import (
	"context"

	"github.com/google/uuid"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
)

type ctxKeyTenant struct{}

// WithTenant attaches the resolved tenant scope to the context.
func WithTenant(ctx context.Context, t models.Tenant) context.Context {
	return context.WithValue(ctx, ctxKeyTenant{}, t)
}

// FromContext returns the tenant scope if the resolver ran on this request.
func FromContext(ctx context.Context) (models.Tenant, bool) {
	t, ok := ctx.Value(ctxKeyTenant{}).(models.Tenant)
	return t, ok
}

// CompanyID returns the active company id from context.
func CompanyID(ctx context.Context) (uuid.UUID, bool) {
	t, ok := FromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return t.CompanyID, true
}

// UserID returns the calling user id from context.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	t, ok := FromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return t.UserID, true
}
