package middleware

import (
	"net/http"

	httpserver "github.com/Pieroprincipe22/tarea-completa-tc/internal/http"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/tenantctx"
)

// RequireRole gates a subtree on a minimum membership role. It relies on
// TenantResolver having already validated the membership and stashed the
// tenant in context.
func RequireRole(min models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			tenant, ok := tenantctx.FromContext(req.Context())
			if !ok {
				httpserver.JSON(w, http.StatusForbidden, map[string]string{"error": "no tenant scope"})
				return
			}
			if !tenant.Role.AtLeast(min) {
				httpserver.JSON(w, http.StatusForbidden, map[string]string{"error": "insufficient role"})
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
