package middleware

import (
	"crypto/subtle"
	"net/http"

	httpserver "github.com/Pieroprincipe22/tarea-completa-tc/internal/http"
)

const HeaderAdminKey = "x-admin-key"

// AdminKey protects operational endpoints with a shared secret. When no key
// is configured the subtree is closed entirely.
func AdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if key == "" {
				httpserver.JSON(w, http.StatusForbidden, map[string]string{"error": "admin endpoints disabled"})
				return
			}
			got := req.Header.Get(HeaderAdminKey)
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				httpserver.JSON(w, http.StatusForbidden, map[string]string{"error": "invalid admin key"})
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
