package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sentuhanid/geomatch/internal/core/domain"
)

// PlaceRepo implements ports.PlaceRepository with pgx.
type PlaceRepo struct {
	db *DB
}

// NewPlaceRepo creates a new PlaceRepo.
func NewPlaceRepo(db *DB) *PlaceRepo {
	return &PlaceRepo{db: db}
}

// Upsert inserts or updates a single place.
func (r *PlaceRepo) Upsert(ctx context.Context, p *domain.Place) error {
	raw, err := encodeRawLocation(p.RawLocation)
	if err != nil {
		return fmt.Errorf("encode raw location: %w", err)
	}

	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO places (place_id, name, city, live, raw_location)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (place_id) DO UPDATE
		SET name = EXCLUDED.name, city = EXCLUDED.city,
		    live = EXCLUDED.live, raw_location = EXCLUDED.raw_location
	`, p.ID, p.Name, p.City, p.Live, raw)
	return err
}

// UpsertBatch inserts many places using pgx.Batch.
func (r *PlaceRepo) UpsertBatch(ctx context.Context, ps []domain.Place) error {
	batch := &pgx.Batch{}
	for _, p := range ps {
		raw, err := encodeRawLocation(p.RawLocation)
		if err != nil {
			return fmt.Errorf("encode raw location for %s: %w", p.ID, err)
		}
		batch.Queue(`
			INSERT INTO places (place_id, name, city, live, raw_location)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (place_id) DO UPDATE
			SET name = EXCLUDED.name, city = EXCLUDED.city,
			    live = EXCLUDED.live, raw_location = EXCLUDED.raw_location
		`, p.ID, p.Name, p.City, p.Live, raw)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range ps {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// GetByID returns a single place.
func (r *PlaceRepo) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	var (
		p   domain.Place
		raw string
	)
	err := r.db.Pool.QueryRow(ctx, `
		SELECT place_id, name, COALESCE(city, ''), live, raw_location::text, created_at
		FROM places WHERE place_id = $1
	`, id).Scan(&p.ID, &p.Name, &p.City, &p.Live, &raw, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.RawLocation = raw
	return &p, nil
}

// ListAll returns the venue catalog in stable insertion order.
func (r *PlaceRepo) ListAll(ctx context.Context) ([]domain.Place, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT place_id, name, COALESCE(city, ''), live, raw_location::text, created_at
		FROM places
		ORDER BY created_at, place_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Place
	for rows.Next() {
		var (
			p   domain.Place
			raw string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.City, &p.Live, &raw, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.RawLocation = raw
		out = append(out, p)
	}
	return out, rows.Err()
}

// Count returns the venue catalog size.
func (r *PlaceRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM places`).Scan(&n)
	return n, err
}
