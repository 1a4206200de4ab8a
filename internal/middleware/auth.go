package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-registry/internal/httpx"
	authport "pet-registry/internal/ports/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Authenticate exige un bearer token válido:
// - sin token => 401
// - token inválido/expirado o usuario inexistente => 403
// En éxito adjunta la identidad resuelta al contexto del request.
func Authenticate(verifier authport.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				httpx.Unauthorized(w, "Token de acceso requerido")
				return
			}

			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				httpx.Forbidden(w, "Token inválido")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity devuelve la identidad adjuntada por Authenticate.
func GetIdentity(ctx context.Context) (authport.Identity, bool) {
	id, ok := ctx.Value(identityKey).(authport.Identity)
	return id, ok
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
