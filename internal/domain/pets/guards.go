package pets

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-registry/internal/authz"
	"pet-registry/internal/httpx"
	"pet-registry/internal/middleware"
)

type ctxKey string

const petKey ctxKey = "pet"

// PetFromContext devuelve la mascota resuelta por un guard de ownership.
// Los admins hacen bypass del guard, así que el handler debe tolerar
// que no haya mascota en el contexto y resolverla él mismo.
func PetFromContext(ctx context.Context) (Pet, bool) {
	p, ok := ctx.Value(petKey).(Pet)
	return p, ok
}

// RequireOwnership es el guard de ownership: el admin pasa sin
// resolver, el dueño solo si la mascota referenciada es suya. En éxito
// adjunta la mascota resuelta al contexto para evitar un segundo lookup.
func RequireOwnership(svc *Service, forbiddenMsg string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := middleware.GetIdentity(r.Context())
			if !ok {
				httpx.Unauthorized(w, "Autenticación requerida")
				return
			}

			if id.Role == authz.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
			if id.Role != authz.RolePetOwner {
				httpx.Forbidden(w, "Tipo de usuario inválido")
				return
			}

			p, err := svc.Resolve(r.Context(), chi.URLParam(r, "petID"))
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					httpx.NotFound(w, "Mascota no encontrada")
					return
				}
				httpx.Internal(w)
				return
			}

			if p.OwnerID != id.ID {
				httpx.Forbidden(w, forbiddenMsg)
				return
			}

			ctx := context.WithValue(r.Context(), petKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
