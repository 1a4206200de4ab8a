package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	// GetByID y GetByUniqueID incluyen el historial de vistas.
	GetByID(ctx context.Context, id string) (Pet, error)
	GetByUniqueID(ctx context.Context, uniqueID string) (Pet, error)
	// List y ListByOwner no cargan historial.
	List(ctx context.Context) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	// AppendView agrega una entrada al historial (append-only).
	AppendView(ctx context.Context, petID string, e ViewEntry) error
}
