package pets

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byID map[string]Pet
}

func newFakeRepo() *fakeRepo { return &fakeRepo{byID: make(map[string]Pet)} }

func (r *fakeRepo) Create(_ context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) Update(_ context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) GetByUniqueID(_ context.Context, uniqueID string) (Pet, error) {
	for _, p := range r.byID {
		if p.UniqueID == uniqueID {
			return p, nil
		}
	}
	return Pet{}, ErrNotFound
}

func (r *fakeRepo) List(_ context.Context) ([]Pet, error) {
	out := make([]Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeRepo) AppendView(_ context.Context, petID string, e ViewEntry) error {
	p, ok := r.byID[petID]
	if !ok {
		return ErrNotFound
	}
	p.ViewHistory = append(p.ViewHistory, e)
	r.byID[petID] = p
	return nil
}

type fakeQR struct {
	err error
}

func (q fakeQR) Generate(uniqueID string) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	return "data:image/png;base64,QR-" + uniqueID, nil
}

func validInput() CreateInput {
	return CreateInput{
		Name:      "Milo",
		Owner:     "Maria Perez",
		OwnerID:   "owner-1",
		Species:   "perro",
		Zone:      "Miraflores",
		Birthdate: "2020-05-01",
		Phones:    []Phone{{Number: "999888777", Owner: "Maria", IsPrimary: true}},
	}
}

func TestCreateAssignsIdentifiersAndQR(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeQR{})

	p, err := svc.Create(context.Background(), validInput(), "admin")
	require.NoError(t, err)

	_, err = uuid.Parse(p.ID)
	assert.NoError(t, err, "id interno debe ser uuid")
	assert.Len(t, p.UniqueID, 10)
	assert.Equal(t, "data:image/png;base64,QR-"+p.UniqueID, p.QRCode)
	assert.Equal(t, "admin", p.CreatedBy)

	stored := repo.byID[p.ID]
	assert.Equal(t, p.QRCode, stored.QRCode, "el QR queda persistido en la segunda escritura")
}

func TestCreateQRFailureLeavesPetWithoutQR(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeQR{err: errors.New("boom")})

	_, err := svc.Create(context.Background(), validInput(), "admin")
	assert.ErrorIs(t, err, ErrQRGeneration)
	// la mascota ya quedó creada: el alta no es atómica con el QR
	assert.Len(t, repo.byID, 1)
}

func TestResolveByEitherIdentifier(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeQR{})

	p, err := svc.Create(context.Background(), validInput(), "admin")
	require.NoError(t, err)

	byID, err := svc.Resolve(context.Background(), p.ID)
	require.NoError(t, err)
	byUnique, err := svc.Resolve(context.Background(), p.UniqueID)
	require.NoError(t, err)
	assert.Equal(t, byID.ID, byUnique.ID)

	_, err = svc.Resolve(context.Background(), "zzzzzzzzzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordViewDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeQR{})

	p, err := svc.Create(context.Background(), validInput(), "admin")
	require.NoError(t, err)

	require.NoError(t, svc.RecordView(context.Background(), p.ID, ViewEntry{}))

	got := repo.byID[p.ID]
	require.Len(t, got.ViewHistory, 1)
	assert.Equal(t, "unknown", got.ViewHistory[0].ViewedBy)
	assert.False(t, got.ViewHistory[0].ViewedAt.IsZero())
}

func TestUpdateTouchesModificationStamp(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeQR{})

	p, err := svc.Create(context.Background(), validInput(), "admin")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{
		Name:      "Milo II",
		Owner:     p.Owner,
		Species:   p.Species,
		Zone:      "Surco",
		Birthdate: p.Birthdate,
		Phones:    p.Phones,
	}, "maria")
	require.NoError(t, err)

	assert.Equal(t, "Milo II", updated.Name)
	assert.Equal(t, "maria", updated.LastModifiedBy)
	assert.True(t, updated.LastModifiedAt.After(p.LastModifiedAt) || updated.LastModifiedAt.Equal(p.LastModifiedAt))
	assert.Equal(t, p.QRCode, updated.QRCode, "editar no regenera el QR")
}
