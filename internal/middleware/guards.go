package middleware

import (
	"net/http"

	"pet-registry/internal/authz"
	"pet-registry/internal/httpx"
)

// RequirePermission corta con 403 si el rol del llamador no tiene la
// capability. La tabla estática de authz es la única fuente de verdad.
func RequirePermission(cap authz.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetIdentity(r.Context())
			if !ok {
				httpx.Unauthorized(w, "Autenticación requerida")
				return
			}

			if !authz.Allowed(id.Role, cap) {
				httpx.Forbidden(w, "Permisos insuficientes")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
