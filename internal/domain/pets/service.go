package pets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const uniqueIDLength = 10

// QRGenerator renderiza el código QR de una mascota y devuelve un data URL.
type QRGenerator interface {
	Generate(uniqueID string) (string, error)
}

// GeoLocator resuelve una IP a ubicación. Nunca falla: degrada a unknown.
type GeoLocator interface {
	Locate(ctx context.Context, ip string) Location
}

type GeoLocatorFunc func(ctx context.Context, ip string) Location

func (f GeoLocatorFunc) Locate(ctx context.Context, ip string) Location { return f(ctx, ip) }

type Service struct {
	repo Repository
	qr   QRGenerator
	now  func() time.Time
}

func NewService(repo Repository, qr QRGenerator) *Service {
	return &Service{
		repo: repo,
		qr:   qr,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Owner     string
	OwnerID   string
	Species   string
	Zone      string
	Birthdate string
	Photo     string
	Notes     string
	Phones    []Phone
	IsLost    bool
}

// Create registra la mascota y luego le adjunta el código QR en una
// segunda escritura. No hay transacción entre ambas: un fallo del QR
// deja la mascota creada con qrCode vacío (recuperable vía update) y
// se reporta como error de creación.
func (s *Service) Create(ctx context.Context, in CreateInput, createdBy string) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.OwnerID) == "" {
		return Pet{}, ErrInvalidInput
	}

	uniqueID, err := gonanoid.New(uniqueIDLength)
	if err != nil {
		return Pet{}, fmt.Errorf("generate unique id: %w", err)
	}

	now := s.now()
	p := Pet{
		ID:             uuid.NewString(),
		UniqueID:       uniqueID,
		Photo:          in.Photo,
		Name:           in.Name,
		Owner:          in.Owner,
		OwnerID:        in.OwnerID,
		Species:        in.Species,
		Zone:           in.Zone,
		Birthdate:      in.Birthdate,
		Notes:          in.Notes,
		Phones:         in.Phones,
		IsLost:         in.IsLost,
		CreatedBy:      createdBy,
		LastModifiedBy: createdBy,
		LastModifiedAt: now,
		CreatedAt:      now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}

	qrData, err := s.qr.Generate(p.UniqueID)
	if err != nil {
		return Pet{}, fmt.Errorf("%w: %v", ErrQRGeneration, err)
	}

	p.QRCode = qrData
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Resolve busca por identificador de storage o por identificador
// público: si el valor parsea como UUID intenta GetByID, si no cae al
// lookup por uniqueId.
func (s *Service) Resolve(ctx context.Context, idOrUniqueID string) (Pet, error) {
	idOrUniqueID = strings.TrimSpace(idOrUniqueID)
	if idOrUniqueID == "" {
		return Pet{}, ErrNotFound
	}

	if _, err := uuid.Parse(idOrUniqueID); err == nil {
		return s.repo.GetByID(ctx, idOrUniqueID)
	}
	return s.repo.GetByUniqueID(ctx, idOrUniqueID)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

type UpdateInput struct {
	Name      string
	Owner     string
	Species   string
	Zone      string
	Birthdate string
	Phones    []Phone

	// Punteros: nil = no tocar.
	Photo  *string
	Notes  *string
	IsLost *bool
}

func (s *Service) Update(ctx context.Context, petID string, in UpdateInput, modifiedBy string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}

	p.Name = in.Name
	p.Owner = in.Owner
	p.Species = in.Species
	p.Zone = in.Zone
	p.Birthdate = in.Birthdate
	p.Phones = in.Phones
	if in.Photo != nil {
		p.Photo = *in.Photo
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	if in.IsLost != nil {
		p.IsLost = *in.IsLost
	}
	p.LastModifiedBy = modifiedBy
	p.LastModifiedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, petID string) error {
	return s.repo.Delete(ctx, petID)
}

// RecordView agrega la vista al historial. El caller decide qué hacer
// con el error: una lectura pública nunca debe fallar por esto.
func (s *Service) RecordView(ctx context.Context, petID string, e ViewEntry) error {
	if e.ViewedAt.IsZero() {
		e.ViewedAt = s.now()
	}
	if e.ViewedBy == "" {
		e.ViewedBy = "unknown"
	}
	return s.repo.AppendView(ctx, petID, e)
}
