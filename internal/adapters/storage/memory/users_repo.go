package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-registry/internal/domain/users"
)

type userRepo struct {
	mu         sync.RWMutex
	byID       map[string]users.User
	byEmail    map[string]string
	byUsername map[string]string
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:       make(map[string]users.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byEmail[u.Email]; exists {
		return users.ErrDuplicate
	}
	if _, exists := r.byUsername[u.Username]; exists {
		return users.ErrDuplicate
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	r.byUsername[u.Username] = u.ID
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *userRepo) List(ctx context.Context) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[u.ID]
	if !exists {
		return users.ErrNotFound
	}
	if prev.Email != u.Email {
		if _, taken := r.byEmail[u.Email]; taken {
			return users.ErrDuplicate
		}
	}
	if prev.Username != u.Username {
		if _, taken := r.byUsername[u.Username]; taken {
			return users.ErrDuplicate
		}
	}
	if prev.Email != u.Email {
		delete(r.byEmail, prev.Email)
		r.byEmail[u.Email] = u.ID
	}
	if prev.Username != u.Username {
		delete(r.byUsername, prev.Username)
		r.byUsername[u.Username] = u.ID
	}
	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byUsername, u.Username)
	delete(r.byID, id)
	return nil
}
