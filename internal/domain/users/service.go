package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pet-registry/internal/authz"
	authport "pet-registry/internal/ports/auth"
)

const bcryptCost = 12

type Service struct {
	repo   Repository
	issuer authport.Issuer
	now    func() time.Time
}

func NewService(repo Repository, issuer authport.Issuer) *Service {
	return &Service{
		repo:   repo,
		issuer: issuer,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     authz.Role // 0 => dueño de mascota
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	role := in.Role
	if role == 0 {
		role = authz.RolePetOwner
	}
	if !role.Valid() {
		return User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login valida credenciales y emite el token. Email desconocido y
// contraseña incorrecta devuelven el mismo error para no filtrar cuáles
// cuentas existen.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(ctx, IdentityOf(u))
	if err != nil {
		return "", User{}, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	// Punteros: nil = no tocar.
	Username *string
	Email    *string
	Password *string
	Role     *authz.Role
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Username != nil {
		u.Username = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return User{}, ErrInvalidInput
		}
		u.Role = *in.Role
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// IdentityOf arma la identidad que viaja en el token y en el contexto.
func IdentityOf(u User) authport.Identity {
	return authport.Identity{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
		Name:  u.Username,
	}
}
