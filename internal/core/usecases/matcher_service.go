package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/core/ports"
	"github.com/sentuhanid/geomatch/internal/pkg/geospatial"
	"github.com/sentuhanid/geomatch/internal/pkg/metrics"
)

// DefaultRadiusKm is applied when the caller does not specify one.
const DefaultRadiusKm = 25

const catalogCacheTTLSeconds = 30

// MatcherService filters, annotates, and ranks catalog providers around a
// customer coordinate. Each call is independent; the only shared state is the
// read-only catalog (and an optional short-lived catalog cache).
type MatcherService struct {
	therapists ports.TherapistRepository
	places     ports.PlaceRepository
	distance   *DistanceService
	cache      ports.CacheService
}

// NewMatcherService creates a MatcherService. cache may be nil.
func NewMatcherService(therapists ports.TherapistRepository, places ports.PlaceRepository, distance *DistanceService, cache ports.CacheService) *MatcherService {
	return &MatcherService{therapists: therapists, places: places, distance: distance, cache: cache}
}

// Match returns therapists within radiusKm of origin, distance-annotated and
// ranked. Distances come from the network-first resolver. The contract to the
// presentation layer is best-effort: a catalog outage yields an empty list and
// a log line, never an error.
func (s *MatcherService) Match(ctx context.Context, origin domain.Coordinate, radiusKm float64, mode domain.MatchMode) []domain.TherapistMatch {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	catalog, err := s.fetchTherapists(ctx)
	if err != nil {
		slog.Warn("therapist catalog unavailable", "error", err)
		return nil
	}

	candidates := s.locatable(catalog, mode)
	if len(candidates) == 0 {
		return nil
	}

	dests := make([]domain.Coordinate, len(candidates))
	for i, c := range candidates {
		dests[i] = c.Coordinate
	}
	results := s.distance.ResolveMany(ctx, origin, dests)

	matches := make([]domain.TherapistMatch, 0, len(candidates))
	for i, c := range candidates {
		r := results[i]
		if r.DistanceKm > radiusKm {
			continue
		}
		c.DistanceKm = r.DistanceKm
		c.TravelTimeMinutes = r.TravelTimeMinutes
		c.DistanceSource = r.Source
		matches = append(matches, c)
	}

	rankTherapists(matches, mode)
	metrics.MatchesServed.WithLabelValues(string(mode)).Inc()
	return matches
}

// MatchFast is the list-rendering path (homepage, directory pages). It skips
// the network resolver and computes pure Haversine distances: burning matrix
// quota on every card render would be slow and expensive, and the accuracy
// loss is invisible at listing granularity. This is a deliberate tradeoff,
// not an oversight.
func (s *MatcherService) MatchFast(ctx context.Context, origin domain.Coordinate, radiusKm float64, mode domain.MatchMode) []domain.TherapistMatch {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	catalog, err := s.fetchTherapists(ctx)
	if err != nil {
		slog.Warn("therapist catalog unavailable", "error", err)
		return nil
	}

	matches := make([]domain.TherapistMatch, 0, len(catalog))
	for _, c := range s.locatable(catalog, mode) {
		d := geospatial.DistanceKm(origin, c.Coordinate)
		if d > radiusKm {
			continue
		}
		c.DistanceKm = d
		c.DistanceSource = domain.SourceHaversine
		matches = append(matches, c)
	}

	rankTherapists(matches, mode)
	metrics.MatchesServed.WithLabelValues(string(mode) + "_fast").Inc()
	return matches
}

// MatchPlaces ranks venues around origin: live venues first, then ascending
// distance. Venue listings are Haversine-only for the same reason as
// MatchFast.
func (s *MatcherService) MatchPlaces(ctx context.Context, origin domain.Coordinate, radiusKm float64) []domain.PlaceMatch {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	catalog, err := s.places.ListAll(ctx)
	if err != nil {
		slog.Warn("place catalog unavailable", "error", err)
		return nil
	}

	matches := make([]domain.PlaceMatch, 0, len(catalog))
	for _, p := range catalog {
		coord, ok := domain.ParseRawLocation(p.RawLocation)
		if !ok {
			slog.Debug("place has unparseable location", "place_id", p.ID)
			continue
		}
		d := geospatial.DistanceKm(origin, coord)
		if d > radiusKm {
			continue
		}
		matches = append(matches, domain.PlaceMatch{Place: p, Coordinate: coord, DistanceKm: d})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Place.Live != b.Place.Live {
			return a.Place.Live
		}
		return a.DistanceKm < b.DistanceKm
	})
	return matches
}

// locatable parses every stored location, silently excluding providers whose
// coordinates do not normalize, and applies the availability filter.
func (s *MatcherService) locatable(catalog []domain.Therapist, mode domain.MatchMode) []domain.TherapistMatch {
	out := make([]domain.TherapistMatch, 0, len(catalog))
	for _, t := range catalog {
		coord, ok := domain.ParseRawLocation(t.RawLocation)
		if !ok {
			slog.Debug("therapist has unparseable location", "therapist_id", t.ID)
			metrics.UnparseableLocations.Inc()
			continue
		}
		if mode == domain.ModeAvailableOnly && t.Status != domain.StatusAvailable {
			continue
		}
		out = append(out, domain.TherapistMatch{Therapist: t, Coordinate: coord})
	}
	return out
}

// rankTherapists applies the composite ordering. The sort is stable, so ties
// within identical keys preserve catalog input order.
func rankTherapists(matches []domain.TherapistMatch, mode domain.MatchMode) {
	if mode == domain.ModeAvailableOnly {
		// Already availability-filtered; distance is the whole key.
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].DistanceKm < matches[j].DistanceKm
		})
		return
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if pa, pb := a.Therapist.Status.SortPriority(), b.Therapist.Status.SortPriority(); pa != pb {
			return pa < pb
		}
		return a.DistanceKm < b.DistanceKm
	})
}

func (s *MatcherService) fetchTherapists(ctx context.Context) ([]domain.Therapist, error) {
	const cacheKey = "catalog:therapists"

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var ts []domain.Therapist
			if err := json.Unmarshal(data, &ts); err == nil {
				metrics.CacheHits.WithLabelValues("therapists").Inc()
				return ts, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("therapists").Inc()
	}

	ts, err := s.therapists.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list therapists: %w", err)
	}

	// Short TTL: status flips propagate within seconds. Distances are never
	// cached; only the raw catalog rows are.
	if s.cache != nil {
		if data, err := json.Marshal(ts); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, catalogCacheTTLSeconds)
		}
	}
	return ts, nil
}
