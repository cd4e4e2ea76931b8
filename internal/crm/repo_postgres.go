package crm

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PostgresProspectRepo implements ProspectRepository on top of database/sql.
//
// Assumed tables:
// - prospects (id PK, territory indexed)
// - field_reps (id PK)

type PostgresProspectRepo struct {
	db *sql.DB
}

func NewPostgresProspectRepo(db *sql.DB) *PostgresProspectRepo {
	return &PostgresProspectRepo{db: db}
}

const prospectColumns = `
id, territory, name, specialty, phone, address, city, state,
lat, lng, last_contact_at, last_call_outcome, created_at, updated_at
`

func (r *PostgresProspectRepo) Get(ctx context.Context, id string) (Prospect, error) {
	if id == "" {
		return Prospect{}, ErrInvalidArgument
	}
	const q = `
SELECT ` + prospectColumns + `
FROM prospects
WHERE id = $1
`
	return scanProspect(r.db.QueryRowContext(ctx, q, id))
}

func (r *PostgresProspectRepo) ListByTerritory(ctx context.Context, territory string) ([]Prospect, error) {
	if territory == "" {
		return nil, ErrInvalidArgument
	}
	const q = `
SELECT ` + prospectColumns + `
FROM prospects
WHERE territory = $1
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q, territory)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Prospect, 0)
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresProspectRepo) RecordContact(ctx context.Context, id string, at time.Time, outcome string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	const q = `
UPDATE prospects
SET last_contact_at = $2, last_call_outcome = $3, updated_at = $2
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q, id, at.UTC(), outcome)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresProspectRepo) UpdateCoordinates(ctx context.Context, id string, lat, lng float64) error {
	if id == "" {
		return ErrInvalidArgument
	}
	const q = `
UPDATE prospects
SET lat = $2, lng = $3, updated_at = NOW()
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q, id, lat, lng)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProspect(row rowScanner) (Prospect, error) {
	var p Prospect
	var lat, lng sql.NullFloat64
	var lastContact sql.NullTime
	var outcome sql.NullString
	if err := row.Scan(
		&p.ID,
		&p.Territory,
		&p.Name,
		&p.Specialty,
		&p.Phone,
		&p.Address,
		&p.City,
		&p.State,
		&lat,
		&lng,
		&lastContact,
		&outcome,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Prospect{}, ErrNotFound
		}
		return Prospect{}, err
	}
	// Coordinates are stored all-or-nothing; a half-set row is treated as unknown.
	if lat.Valid && lng.Valid {
		p.SetCoordinates(lat.Float64, lng.Float64)
	}
	if lastContact.Valid {
		t := lastContact.Time.UTC()
		p.LastContactAt = &t
	}
	p.LastCallOutcome = outcome.String
	return p, nil
}

// PostgresFieldRepRepo implements FieldRepRepository on top of database/sql.

type PostgresFieldRepRepo struct {
	db *sql.DB
}

func NewPostgresFieldRepRepo(db *sql.DB) *PostgresFieldRepRepo {
	return &PostgresFieldRepRepo{db: db}
}

func (r *PostgresFieldRepRepo) Get(ctx context.Context, id string) (FieldRep, error) {
	if id == "" {
		return FieldRep{}, ErrInvalidArgument
	}
	const q = `
SELECT id, territory, name, home_lat, home_lng, created_at, updated_at
FROM field_reps
WHERE id = $1
`
	var rep FieldRep
	var lat, lng sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rep.ID,
		&rep.Territory,
		&rep.Name,
		&lat,
		&lng,
		&rep.CreatedAt,
		&rep.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FieldRep{}, ErrNotFound
		}
		return FieldRep{}, err
	}
	if lat.Valid && lng.Valid {
		rep.HomeLat = &lat.Float64
		rep.HomeLng = &lng.Float64
	}
	return rep, nil
}
