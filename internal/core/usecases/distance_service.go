package usecases

import (
	"log/slog"

	"context"

	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/core/ports"
	"github.com/sentuhanid/geomatch/internal/pkg/geospatial"
	"github.com/sentuhanid/geomatch/internal/pkg/metrics"
)

// DefaultFallbackMinsPerKm approximates urban door-to-door travel time when
// the network provider gives no duration.
const DefaultFallbackMinsPerKm = 3.0

// DistanceService resolves origin→destination distances. It tries the network
// distance-matrix provider first and falls back to the exact great-circle
// computation on any failure. It never returns an error: geospatial filtering
// must not fail a whole request because one external dependency hiccuped.
type DistanceService struct {
	matrix    ports.DistanceMatrixService // nil means not configured
	mode      ports.TravelMode
	minsPerKm float64
}

// NewDistanceService creates a DistanceService. A nil matrix service is
// valid and means every resolution uses the Haversine path.
func NewDistanceService(matrix ports.DistanceMatrixService, mode ports.TravelMode, fallbackMinsPerKm float64) *DistanceService {
	if mode == "" {
		mode = ports.ModeDriving
	}
	if fallbackMinsPerKm <= 0 {
		fallbackMinsPerKm = DefaultFallbackMinsPerKm
	}
	return &DistanceService{matrix: matrix, mode: mode, minsPerKm: fallbackMinsPerKm}
}

// Resolve returns the distance between two coordinates. mode overrides the
// configured travel mode when non-empty.
func (s *DistanceService) Resolve(ctx context.Context, origin, dest domain.Coordinate, mode ports.TravelMode) domain.DistanceResult {
	return s.resolveMany(ctx, origin, []domain.Coordinate{dest}, mode)[0]
}

// ResolveMany resolves one origin against many destinations. Batches above
// the provider cap skip the network entirely and resolve per-pair via
// Haversine; the matrix API does not support them.
func (s *DistanceService) ResolveMany(ctx context.Context, origin domain.Coordinate, dests []domain.Coordinate) []domain.DistanceResult {
	return s.resolveMany(ctx, origin, dests, s.mode)
}

func (s *DistanceService) resolveMany(ctx context.Context, origin domain.Coordinate, dests []domain.Coordinate, mode ports.TravelMode) []domain.DistanceResult {
	if mode == "" {
		mode = s.mode
	}

	out := make([]domain.DistanceResult, len(dests))
	if len(dests) == 0 {
		return out
	}

	if s.matrix == nil || len(dests) > ports.MaxMatrixDestinations {
		for i, d := range dests {
			out[i] = s.fallback(origin, d)
		}
		return out
	}

	elements, err := s.matrix.MatrixRow(ctx, origin, dests, mode)
	if err != nil || len(elements) != len(dests) {
		if err != nil {
			slog.Debug("distance matrix failed, using haversine", "error", err, "destinations", len(dests))
		}
		metrics.DistanceFallbacks.Inc()
		for i, d := range dests {
			out[i] = s.fallback(origin, d)
		}
		return out
	}

	for i, el := range elements {
		if !el.OK {
			out[i] = s.fallback(origin, dests[i])
			continue
		}
		mins := el.DurationSeconds / 60
		out[i] = domain.DistanceResult{
			DistanceKm:        el.DistanceMeters / 1000,
			TravelTimeMinutes: &mins,
			Source:            domain.SourceNetwork,
		}
		metrics.DistanceResolutions.WithLabelValues(string(domain.SourceNetwork)).Inc()
	}
	return out
}

func (s *DistanceService) fallback(origin, dest domain.Coordinate) domain.DistanceResult {
	km := geospatial.DistanceKm(origin, dest)
	mins := km * s.minsPerKm
	metrics.DistanceResolutions.WithLabelValues(string(domain.SourceHaversine)).Inc()
	return domain.DistanceResult{
		DistanceKm:        km,
		TravelTimeMinutes: &mins,
		Source:            domain.SourceHaversine,
	}
}
