package users

import (
	"errors"
	"time"

	"pet-registry/internal/authz"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate indica violación de unicidad en username o email.
	ErrDuplicate          = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// User es una cuenta del sistema. Username y email son únicos globales.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         authz.Role // 1 admin, 2 dueño de mascota

	CreatedAt time.Time
	UpdatedAt time.Time
}
