package auth

import (
	"context"
	"errors"

	"pet-registry/internal/authz"
)

var (
	// ErrTokenInvalid cubre firma inválida, token expirado o usuario
	// que ya no existe. El middleware responde 403 en todos los casos.
	ErrTokenInvalid = errors.New("token invalid")
)

// Identity es el llamador resuelto que viaja en el contexto del request.
type Identity struct {
	ID    string
	Email string
	Role  authz.Role
	Name  string
}

// Issuer emite un token firmado para una identidad.
type Issuer interface {
	Issue(ctx context.Context, id Identity) (string, error)
}

// Verifier verifica un token y re-resuelve la identidad contra el store.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
