package users

import "context"

type Repository interface {
	// Create falla con ErrDuplicate si username o email ya existen.
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	// Update falla con ErrNotFound o ErrDuplicate.
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
}
