package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"pet-registry/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, unique_id, photo, name, owner, owner_id,
	species, zone, birthdate, notes, phones,
	is_lost, qr_code,
	created_by, last_modified_by, last_modified_at, created_at
`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	phones, err := json.Marshal(p.Phones)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		p.ID,
		p.UniqueID,
		p.Photo,
		p.Name,
		p.Owner,
		p.OwnerID,
		p.Species,
		p.Zone,
		p.Birthdate,
		p.Notes,
		phones,
		p.IsLost,
		p.QRCode,
		p.CreatedBy,
		p.LastModifiedBy,
		p.LastModifiedAt,
		p.CreatedAt,
	)
	if isDuplicate(err) {
		return pets.ErrDuplicate
	}
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	phones, err := json.Marshal(p.Phones)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			photo = $2,
			name = $3,
			owner = $4,
			species = $5,
			zone = $6,
			birthdate = $7,
			notes = $8,
			phones = $9,
			is_lost = $10,
			qr_code = $11,
			last_modified_by = $12,
			last_modified_at = $13
		WHERE id = $1
	`,
		p.ID,
		p.Photo,
		p.Name,
		p.Owner,
		p.Species,
		p.Zone,
		p.Birthdate,
		p.Notes,
		phones,
		p.IsLost,
		p.QRCode,
		p.LastModifiedBy,
		p.LastModifiedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *PetsRepo) GetByUniqueID(ctx context.Context, uniqueID string) (pets.Pet, error) {
	uniqueID = strings.TrimSpace(uniqueID)
	if uniqueID == "" {
		return pets.Pet{}, pets.ErrNotFound
	}
	return r.getOne(ctx, `WHERE unique_id = $1`, uniqueID)
}

func (r *PetsRepo) getOne(ctx context.Context, where string, arg any) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets `+where, arg)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}

	history, err := r.viewHistory(ctx, p.ID)
	if err != nil {
		return pets.Pet{}, err
	}
	p.ViewHistory = history

	return p, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.list(ctx, `SELECT `+petColumns+` FROM pets ORDER BY created_at ASC`)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+petColumns+` FROM pets WHERE owner_id = $1 ORDER BY created_at ASC`, ownerID)
}

func (r *PetsRepo) list(ctx context.Context, query string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) AppendView(ctx context.Context, petID string, e pets.ViewEntry) error {
	device, err := json.Marshal(e.Device)
	if err != nil {
		return err
	}
	location, err := json.Marshal(e.Location)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_view_history (
			pet_id, viewed_at, viewed_by, ip_address, user_agent, device, location
		)
		SELECT id, $2, $3, $4, $5, $6, $7 FROM pets WHERE id = $1
	`,
		petID,
		e.ViewedAt,
		e.ViewedBy,
		e.IPAddress,
		e.UserAgent,
		device,
		location,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) viewHistory(ctx context.Context, petID string) ([]pets.ViewEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT viewed_at, viewed_by, ip_address, user_agent, device, location
		FROM pet_view_history
		WHERE pet_id = $1
		ORDER BY viewed_at ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.ViewEntry, 0)
	for rows.Next() {
		var e pets.ViewEntry
		var device, location []byte
		if err := rows.Scan(
			&e.ViewedAt,
			&e.ViewedBy,
			&e.IPAddress,
			&e.UserAgent,
			&device,
			&location,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(device, &e.Device); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(location, &e.Location); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var phones []byte
	if err := row.Scan(
		&p.ID,
		&p.UniqueID,
		&p.Photo,
		&p.Name,
		&p.Owner,
		&p.OwnerID,
		&p.Species,
		&p.Zone,
		&p.Birthdate,
		&p.Notes,
		&phones,
		&p.IsLost,
		&p.QRCode,
		&p.CreatedBy,
		&p.LastModifiedBy,
		&p.LastModifiedAt,
		&p.CreatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	if err := json.Unmarshal(phones, &p.Phones); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}
