package ports

import (
	"context"
	"time"

	"github.com/sentuhanid/geomatch/internal/core/domain"
)

// TravelMode selects the routing profile of the network distance provider.
type TravelMode string

const (
	ModeDriving TravelMode = "driving"
	ModeWalking TravelMode = "walking"
)

// MatrixElement is one origin→destination answer from the network distance
// provider. OK is false for per-element failures (unroutable pair, quota),
// in which case the metric fields are meaningless.
type MatrixElement struct {
	OK              bool
	DistanceMeters  float64
	DurationSeconds float64
}

// MaxMatrixDestinations is the provider-imposed batch cap. Batches beyond it
// must not attempt the network call at all.
const MaxMatrixDestinations = 25

// DistanceMatrixService is the network distance boundary. A nil service is a
// first-class state meaning "not configured" (no credentials), not an error.
type DistanceMatrixService interface {
	// MatrixRow returns one element per destination, in destination order.
	// len(destinations) must not exceed MaxMatrixDestinations.
	MatrixRow(ctx context.Context, origin domain.Coordinate, destinations []domain.Coordinate, mode TravelMode) ([]MatrixElement, error)
}

// FixRequest parameterizes one sensor acquisition attempt.
type FixRequest struct {
	HighAccuracy bool
	Timeout      time.Duration
	// MaximumAge is how stale a fix may be. The acquisition policy always
	// passes zero: cached fixes are never accepted.
	MaximumAge time.Duration
}

// LocationSensor is the device-location boundary: a single async "get current
// fix" call. Implementations must respect the request timeout and must not
// substitute IP or locale derived positions for a sensor read.
type LocationSensor interface {
	CurrentFix(ctx context.Context, req FixRequest) (*domain.LocationFix, error)
}

// CacheService provides read-through caching for catalog and gazetteer
// responses. Distance results are never cached through this interface.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// EventPublisher publishes domain events to the message broker.
type EventPublisher interface {
	PublishStatusUpdate(ctx context.Context, update *domain.StatusUpdate) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

// EventSubscriber consumes domain events from the message broker.
type EventSubscriber interface {
	SubscribeStatusUpdates(ctx context.Context, handler func(ctx context.Context, update *domain.StatusUpdate) error) error
}
