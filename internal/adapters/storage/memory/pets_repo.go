package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-registry/internal/domain/pets"
)

type petRepo struct {
	mu         sync.RWMutex
	byID       map[string]pets.Pet
	byUniqueID map[string]string
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID:       make(map[string]pets.Pet),
		byUniqueID: make(map[string]string),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return pets.ErrDuplicate
	}
	if _, exists := r.byUniqueID[p.UniqueID]; exists {
		return pets.ErrDuplicate
	}
	r.byID[p.ID] = clonePet(p)
	r.byUniqueID[p.UniqueID] = p.ID
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[p.ID]
	if !exists {
		return pets.ErrNotFound
	}
	if prev.UniqueID != p.UniqueID {
		delete(r.byUniqueID, prev.UniqueID)
		r.byUniqueID[p.UniqueID] = p.ID
	}
	r.byID[p.ID] = clonePet(p)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(p), nil
}

func (r *petRepo) GetByUniqueID(ctx context.Context, uniqueID string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUniqueID[uniqueID]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(r.byID[id]), nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, cloneShallow(p))
	}
	sortByCreatedAt(out)
	return out, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.OwnerID == ownerID {
			out = append(out, cloneShallow(p))
		}
	}
	sortByCreatedAt(out)
	return out, nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.ErrNotFound
	}
	delete(r.byUniqueID, p.UniqueID)
	delete(r.byID, id)
	return nil
}

func (r *petRepo) AppendView(ctx context.Context, petID string, e pets.ViewEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[petID]
	if !ok {
		return pets.ErrNotFound
	}
	p.ViewHistory = append(p.ViewHistory, e)
	r.byID[petID] = p
	return nil
}

// clonePet copia la mascota junto con sus slices para que el caller no
// pueda mutar el estado interno del repo.
func clonePet(p pets.Pet) pets.Pet {
	out := p
	out.Phones = append([]pets.Phone(nil), p.Phones...)
	out.ViewHistory = append([]pets.ViewEntry(nil), p.ViewHistory...)
	return out
}

// cloneShallow copia sin historial: los listados no lo incluyen.
func cloneShallow(p pets.Pet) pets.Pet {
	out := p
	out.Phones = append([]pets.Phone(nil), p.Phones...)
	out.ViewHistory = nil
	return out
}

// Orden estable por created_at asc (solo para consistencia en dev)
func sortByCreatedAt(out []pets.Pet) {
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
}
