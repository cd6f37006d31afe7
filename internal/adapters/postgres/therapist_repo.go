package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sentuhanid/geomatch/internal/core/domain"
)

// TherapistRepo implements ports.TherapistRepository with pgx.
//
// raw_location is stored exactly as the marketplace wrote it (JSONB holding
// any of the legacy encodings) and surfaced as text for ParseRawLocation;
// this layer never normalizes it.
type TherapistRepo struct {
	db *DB
}

// NewTherapistRepo creates a new TherapistRepo.
func NewTherapistRepo(db *DB) *TherapistRepo {
	return &TherapistRepo{db: db}
}

// encodeRawLocation prepares a raw location for the jsonb column. String
// values that already hold JSON text are stored verbatim, not re-quoted;
// everything else is marshalled.
func encodeRawLocation(raw any) ([]byte, error) {
	switch v := raw.(type) {
	case nil:
		return []byte("null"), nil
	case string:
		if json.Valid([]byte(v)) {
			return []byte(v), nil
		}
		return json.Marshal(v)
	case []byte:
		if json.Valid(v) {
			return v, nil
		}
		return json.Marshal(string(v))
	default:
		return json.Marshal(v)
	}
}

// Upsert inserts or updates a single therapist.
func (r *TherapistRepo) Upsert(ctx context.Context, t *domain.Therapist) error {
	raw, err := encodeRawLocation(t.RawLocation)
	if err != nil {
		return fmt.Errorf("encode raw location: %w", err)
	}
	services, err := json.Marshal(t.Services)
	if err != nil {
		return fmt.Errorf("encode services: %w", err)
	}

	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO therapists (therapist_id, name, city, status, raw_location, services, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (therapist_id) DO UPDATE
		SET name = EXCLUDED.name, city = EXCLUDED.city, status = EXCLUDED.status,
		    raw_location = EXCLUDED.raw_location, services = EXCLUDED.services,
		    rating = EXCLUDED.rating, updated_at = now()
	`, t.ID, t.Name, t.City, string(t.Status), raw, services, t.Rating)
	return err
}

// UpsertBatch inserts many therapists using pgx.Batch.
func (r *TherapistRepo) UpsertBatch(ctx context.Context, ts []domain.Therapist) error {
	batch := &pgx.Batch{}
	for _, t := range ts {
		raw, err := encodeRawLocation(t.RawLocation)
		if err != nil {
			return fmt.Errorf("encode raw location for %s: %w", t.ID, err)
		}
		services, err := json.Marshal(t.Services)
		if err != nil {
			return fmt.Errorf("encode services for %s: %w", t.ID, err)
		}
		batch.Queue(`
			INSERT INTO therapists (therapist_id, name, city, status, raw_location, services, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (therapist_id) DO UPDATE
			SET name = EXCLUDED.name, city = EXCLUDED.city, status = EXCLUDED.status,
			    raw_location = EXCLUDED.raw_location, services = EXCLUDED.services,
			    rating = EXCLUDED.rating, updated_at = now()
		`, t.ID, t.Name, t.City, string(t.Status), raw, services, t.Rating)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range ts {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// GetByID returns a single therapist.
func (r *TherapistRepo) GetByID(ctx context.Context, id string) (*domain.Therapist, error) {
	t, err := scanTherapist(r.db.Pool.QueryRow(ctx, `
		SELECT therapist_id, name, COALESCE(city, ''), status,
		       raw_location::text, COALESCE(services, '[]'), rating, created_at
		FROM therapists WHERE therapist_id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListAll returns the catalog ordered by insertion. The ordering matters:
// it is the tie-break for equal ranking keys in a matching pass.
func (r *TherapistRepo) ListAll(ctx context.Context) ([]domain.Therapist, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT therapist_id, name, COALESCE(city, ''), status,
		       raw_location::text, COALESCE(services, '[]'), rating, created_at
		FROM therapists
		ORDER BY created_at, therapist_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Therapist
	for rows.Next() {
		t, err := scanTherapist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// UpdateStatus applies a live availability change.
func (r *TherapistRepo) UpdateStatus(ctx context.Context, id string, status domain.TherapistStatus) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE therapists SET status = $2, updated_at = now() WHERE therapist_id = $1
	`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the catalog size.
func (r *TherapistRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM therapists`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTherapist(row rowScanner) (*domain.Therapist, error) {
	var (
		t        domain.Therapist
		status   string
		raw      string
		services []byte
	)
	if err := row.Scan(&t.ID, &t.Name, &t.City, &status, &raw, &services, &t.Rating, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Status = domain.TherapistStatus(status)
	t.RawLocation = raw
	if err := json.Unmarshal(services, &t.Services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return &t, nil
}
