package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-registry/internal/domain/users"
)

func seedUser(t *testing.T, repo users.Repository, id, username, email string) users.User {
	t.Helper()
	u := users.User{
		ID:        id,
		Username:  username,
		Email:     email,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	repo := NewUserRepo()
	seedUser(t, repo, "u-1", "maria", "maria@example.com")

	err := repo.Create(context.Background(), users.User{
		ID: "u-2", Username: "otra", Email: "maria@example.com",
	})
	assert.ErrorIs(t, err, users.ErrDuplicate)
}

func TestUserRepoDuplicateUsername(t *testing.T) {
	repo := NewUserRepo()
	seedUser(t, repo, "u-1", "maria", "maria@example.com")

	// mismo username con email distinto también es duplicado
	err := repo.Create(context.Background(), users.User{
		ID: "u-2", Username: "maria", Email: "otra@example.com",
	})
	assert.ErrorIs(t, err, users.ErrDuplicate)
}

func TestUserRepoUpdateCannotTakeUsedKeys(t *testing.T) {
	repo := NewUserRepo()
	seedUser(t, repo, "u-1", "maria", "maria@example.com")
	u2 := seedUser(t, repo, "u-2", "pedro", "pedro@example.com")

	u2.Username = "maria"
	assert.ErrorIs(t, repo.Update(context.Background(), u2), users.ErrDuplicate)

	u2.Username = "pedro"
	u2.Email = "maria@example.com"
	assert.ErrorIs(t, repo.Update(context.Background(), u2), users.ErrDuplicate)

	// y un update fallido no debe dejar índices a medias
	u2.Username = "pedro-nuevo"
	u2.Email = "pedro-nuevo@example.com"
	require.NoError(t, repo.Update(context.Background(), u2))
	got, err := repo.GetByEmail(context.Background(), "pedro-nuevo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-2", got.ID)
}

func TestUserRepoDeleteFreesKeys(t *testing.T) {
	repo := NewUserRepo()
	seedUser(t, repo, "u-1", "maria", "maria@example.com")

	require.NoError(t, repo.Delete(context.Background(), "u-1"))

	seedUser(t, repo, "u-2", "maria", "maria@example.com")
}
