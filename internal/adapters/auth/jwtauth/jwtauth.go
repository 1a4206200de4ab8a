// Package jwtauth firma y verifica los tokens de acceso (HS256). El
// verificador reconsulta al usuario en cada request: un usuario
// eliminado invalida sus tokens de inmediato, y el rol efectivo es
// siempre el actual, no el que quedó congelado en el claim.
package jwtauth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pet-registry/internal/domain/users"
	authport "pet-registry/internal/ports/auth"
)

type Claims struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	UserType int    `json:"userType"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Signer) Issue(ctx context.Context, id authport.Identity) (string, error) {
	now := s.now()
	claims := Claims{
		ID:       id.ID,
		Email:    id.Email,
		UserType: int(id.Role),
		Name:     id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

type Verifier struct {
	secret []byte
	repo   users.Repository
}

func NewVerifier(secret string, repo users.Repository) *Verifier {
	return &Verifier{secret: []byte(secret), repo: repo}
}

func (v *Verifier) Verify(ctx context.Context, token string) (authport.Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return authport.Identity{}, authport.ErrTokenInvalid
	}

	u, err := v.repo.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return authport.Identity{}, authport.ErrTokenInvalid
		}
		return authport.Identity{}, err
	}

	return users.IdentityOf(u), nil
}
