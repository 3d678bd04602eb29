package middleware

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	httpserver "github.com/Pieroprincipe22/tarea-completa-tc/internal/http"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/repo"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/tenantctx"
)

const (
	HeaderCompanyID = "x-company-id"
	HeaderUserID    = "x-user-id"
)

// TenantResolver is the single choke point for tenant scope: it reads the
// caller-asserted x-company-id and x-user-id headers, re-validates the
// membership on every request and injects the trusted Tenant into context.
// Handlers never take a company id from a request body.
func TenantResolver(r repo.Repo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rawCompany := req.Header.Get(HeaderCompanyID)
			rawUser := req.Header.Get(HeaderUserID)
			if rawCompany == "" || rawUser == "" {
				httpserver.JSON(w, http.StatusForbidden, map[string]string{"error": "missing x-user-id or x-company-id"})
				return
			}
			companyID, err := uuid.Parse(rawCompany)
			if err != nil {
				httpserver.JSON(w, http.StatusForbidden, map[string]string{"error": "invalid x-company-id"})
				return
			}
			userID, err := uuid.Parse(rawUser)
			if err != nil {
				httpserver.JSON(w, http.StatusForbidden, map[string]string{"error": "invalid x-user-id"})
				return
			}

			role, err := r.GetMembership(req.Context(), companyID, userID)
			if err != nil {
				if errors.Is(err, models.ErrNotMember) {
					httpserver.JSON(w, http.StatusForbidden, map[string]string{"error": "not a member of this company"})
					return
				}
				httpserver.JSON(w, http.StatusInternalServerError, map[string]string{"error": "membership lookup failed"})
				return
			}

			ctx := tenantctx.WithTenant(req.Context(), models.Tenant{
				CompanyID: companyID,
				UserID:    userID,
				Role:      role,
			})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
