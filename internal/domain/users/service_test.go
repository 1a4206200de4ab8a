package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pet-registry/internal/authz"
	authport "pet-registry/internal/ports/auth"
)

type fakeRepo struct {
	byID    map[string]User
	byEmail map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]User), byEmail: make(map[string]string)}
}

func (r *fakeRepo) Create(_ context.Context, u User) error {
	if _, exists := r.byEmail[u.Email]; exists {
		return ErrDuplicate
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *fakeRepo) List(_ context.Context) ([]User, error) {
	out := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, u User) error {
	prev, ok := r.byID[u.ID]
	if !ok {
		return ErrNotFound
	}
	if prev.Email != u.Email {
		delete(r.byEmail, prev.Email)
		r.byEmail[u.Email] = u.ID
	}
	r.byID[u.ID] = u
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(_ context.Context, id authport.Identity) (string, error) {
	return "token-" + id.ID, nil
}

func registerInput() RegisterInput {
	return RegisterInput{
		Username: "maria",
		Email:    "Maria@Example.com",
		Password: "clave1234",
		Role:     authz.RolePetOwner,
	}
}

func TestRegisterHashesPasswordAndLowercasesEmail(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeIssuer{})

	u, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.Equal(t, "maria@example.com", u.Email)
	assert.NotEqual(t, "clave1234", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("clave1234")))
}

func TestRegisterDefaultsToPetOwner(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeIssuer{})

	in := registerInput()
	in.Role = 0
	u, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, authz.RolePetOwner, u.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeIssuer{})

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	in := registerInput()
	in.Username = "otra"
	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestLogin(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeIssuer{})

	u, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	token, logged, err := svc.Login(context.Background(), "maria@example.com", "clave1234")
	require.NoError(t, err)
	assert.Equal(t, "token-"+u.ID, token)
	assert.Equal(t, u.ID, logged.ID)

	_, _, err = svc.Login(context.Background(), "maria@example.com", "incorrecta")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// email desconocido produce el mismo error que clave incorrecta
	_, _, err = svc.Login(context.Background(), "nadie@example.com", "clave1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateRehashesPassword(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeIssuer{})

	u, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	nueva := "nueva-clave"
	updated, err := svc.Update(context.Background(), u.ID, UpdateInput{Password: &nueva})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(nueva)))

	_, _, err = svc.Login(context.Background(), "maria@example.com", "nueva-clave")
	assert.NoError(t, err)
}

func TestValidateRegister(t *testing.T) {
	res := ValidateRegister(RegisterPayload{Username: "ma", Email: "no-es-email", Password: "abc", UserType: 9})
	assert.False(t, res.Valid)
	assert.GreaterOrEqual(t, len(res.Errors), 4)

	res = ValidateRegister(RegisterPayload{Username: "maria", Email: "maria@example.com", Password: "clave", UserType: 2})
	assert.True(t, res.Valid)
}

func TestValidateLogin(t *testing.T) {
	res := ValidateLogin(LoginPayload{Email: "x", Password: ""})
	assert.False(t, res.Valid)

	res = ValidateLogin(LoginPayload{Email: "maria@example.com", Password: "clave"})
	assert.True(t, res.Valid)
}
