package ports

import (
	"context"

	"github.com/sentuhanid/geomatch/internal/core/domain"
)

// TherapistRepository reads the marketplace therapist catalog. The catalog is
// owned by the marketplace data layer; matching only reads it and writes
// nothing back except live status updates fed from the event stream.
type TherapistRepository interface {
	Upsert(ctx context.Context, t *domain.Therapist) error
	UpsertBatch(ctx context.Context, ts []domain.Therapist) error
	GetByID(ctx context.Context, id string) (*domain.Therapist, error)
	// ListAll returns the full catalog in stable storage order. That order is
	// the tie-break for equal ranking keys, so it must be deterministic.
	ListAll(ctx context.Context) ([]domain.Therapist, error)
	UpdateStatus(ctx context.Context, id string, status domain.TherapistStatus) error
	Count(ctx context.Context) (int, error)
}

// PlaceRepository reads the venue catalog.
type PlaceRepository interface {
	Upsert(ctx context.Context, p *domain.Place) error
	UpsertBatch(ctx context.Context, ps []domain.Place) error
	GetByID(ctx context.Context, id string) (*domain.Place, error)
	ListAll(ctx context.Context) ([]domain.Place, error)
	Count(ctx context.Context) (int, error)
}
