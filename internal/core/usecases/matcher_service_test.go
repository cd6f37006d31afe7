package usecases_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/core/ports"
	"github.com/sentuhanid/geomatch/internal/core/usecases"
)

// --- Mock TherapistRepository ---

type mockTherapistRepo struct {
	listAllFn      func(ctx context.Context) ([]domain.Therapist, error)
	updateStatusFn func(ctx context.Context, id string, status domain.TherapistStatus) error
}

func (m *mockTherapistRepo) Upsert(ctx context.Context, t *domain.Therapist) error       { return nil }
func (m *mockTherapistRepo) UpsertBatch(ctx context.Context, ts []domain.Therapist) error { return nil }
func (m *mockTherapistRepo) GetByID(ctx context.Context, id string) (*domain.Therapist, error) {
	return nil, domain.ErrNotFound
}
func (m *mockTherapistRepo) ListAll(ctx context.Context) ([]domain.Therapist, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}
func (m *mockTherapistRepo) UpdateStatus(ctx context.Context, id string, status domain.TherapistStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}
func (m *mockTherapistRepo) Count(ctx context.Context) (int, error) { return 0, nil }

// --- Mock PlaceRepository ---

type mockPlaceRepo struct {
	listAllFn func(ctx context.Context) ([]domain.Place, error)
}

func (m *mockPlaceRepo) Upsert(ctx context.Context, p *domain.Place) error        { return nil }
func (m *mockPlaceRepo) UpsertBatch(ctx context.Context, ps []domain.Place) error { return nil }
func (m *mockPlaceRepo) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	return nil, domain.ErrNotFound
}
func (m *mockPlaceRepo) ListAll(ctx context.Context) ([]domain.Place, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}
func (m *mockPlaceRepo) Count(ctx context.Context) (int, error) { return 0, nil }

// --- Mock DistanceMatrixService ---

type mockMatrix struct {
	calls       int
	matrixRowFn func(ctx context.Context, origin domain.Coordinate, dests []domain.Coordinate, mode ports.TravelMode) ([]ports.MatrixElement, error)
}

func (m *mockMatrix) MatrixRow(ctx context.Context, origin domain.Coordinate, dests []domain.Coordinate, mode ports.TravelMode) ([]ports.MatrixElement, error) {
	m.calls++
	if m.matrixRowFn != nil {
		return m.matrixRowFn(ctx, origin, dests, mode)
	}
	return nil, errors.New("not configured")
}

// --- Mock CacheService ---

type mockCache struct {
	store   map[string][]byte
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := m.store[key]; ok {
		return v, nil
	}
	return nil, errors.New("valkey nil message")
}
func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.store[key] = value
	return nil
}
func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.store, key)
	m.deleted = append(m.deleted, key)
	return nil
}

// --- Helpers ---

// origin in central Jakarta
var matchOrigin = domain.Coordinate{Lat: -6.2088, Lng: 106.8456}

func therapist(id string, status domain.TherapistStatus, lat, lng float64) domain.Therapist {
	return domain.Therapist{
		ID:          id,
		Name:        "Terapis " + id,
		Status:      status,
		RawLocation: fmt.Sprintf(`[%g,%g]`, lng, lat),
	}
}

// matrixForDistances answers every destination with a fixed network
// distance, one kilometer value per destination in order.
func matrixForDistances(km ...float64) *mockMatrix {
	return &mockMatrix{
		matrixRowFn: func(ctx context.Context, origin domain.Coordinate, dests []domain.Coordinate, mode ports.TravelMode) ([]ports.MatrixElement, error) {
			out := make([]ports.MatrixElement, len(dests))
			for i := range dests {
				out[i] = ports.MatrixElement{
					OK:              true,
					DistanceMeters:  km[i] * 1000,
					DurationSeconds: km[i] * 120,
				}
			}
			return out, nil
		},
	}
}

func newMatcher(tr ports.TherapistRepository, pr ports.PlaceRepository, matrix ports.DistanceMatrixService, cache ports.CacheService) *usecases.MatcherService {
	dist := usecases.NewDistanceService(matrix, ports.ModeDriving, 0)
	return usecases.NewMatcherService(tr, pr, dist, cache)
}

// --- Tests ---

func TestMatch_RadiusBoundaryIsInclusive(t *testing.T) {
	repo := &mockTherapistRepo{
		listAllFn: func(ctx context.Context) ([]domain.Therapist, error) {
			return []domain.Therapist{
				therapist("t1", domain.StatusAvailable, -6.25, 106.85),
				therapist("t2", domain.StatusAvailable, -6.26, 106.85),
				therapist("t3", domain.StatusAvailable, -6.27, 106.85),
				therapist("t4", domain.StatusAvailable, -6.28, 106.85),
				therapist("t5", domain.StatusAvailable, -6.29, 106.85),
			}, nil
		},
	}
	matrix := matrixForDistances(5, 10, 14.9, 15.0, 15.1)

	svc := newMatcher(repo, &mockPlaceRepo{}, matrix, nil)
	matches := svc.Match(context.Background(), matchOrigin, 15, domain.ModeAll)

	if len(matches) != 4 {
		t.Fatalf("expected 4 matches (15.0 on the boundary stays in), got %d", len(matches))
	}
	for _, m := range matches {
		if m.Therapist.ID == "t5" {
			t.Error("t5 at 15.1 km should be excluded")
		}
		if m.DistanceKm > 15 {
			t.Errorf("%s at %v km escapes the radius", m.Therapist.ID, m.DistanceKm)
		}
	}
}

func TestMatch_StatusRanksBeforeDistance(t *testing.T) {
	repo := &mockTherapistRepo{
		listAllFn: func(ctx context.Context) ([]domain.Therapist, error) {
			return []domain.Therapist{
				therapist("off", domain.StatusOffline, -6.22, 106.85),
				therapist("avail", domain.StatusAvailable, -6.30, 106.85),
				therapist("busy", domain.StatusBusy, -6.21, 106.85),
			}, nil
		},
	}
	// offline is closest (2 km), available farthest (10 km)
	matrix := matrixForDistances(2, 10, 1)

	svc := newMatcher(repo, &mockPlaceRepo{}, matrix, nil)
	matches := svc.Match(context.Background(), matchOrigin, 25, domain.ModeAll)

	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	wantOrder := []string{"avail", "busy", "off"}
	for i, want := range wantOrder {
		if matches[i].Therapist.ID != want {
			t.Errorf("position %d: got %s, want %s", i, matches[i].Therapist.ID, want)
		}
	}
}

func TestMatch_AvailableOnlyFiltersAndSortsByDistance(t *testing.T) {
	repo := &mockTherapistRepo{
		listAllFn: func(ctx context.Context) ([]domain.Therapist, error) {
			return []domain.Therapist{
				therapist("far", domain.StatusAvailable, -6.30, 106.85),
				therapist("busy", domain.StatusBusy, -6.21, 106.85),
				therapist("near", domain.StatusAvailable, -6.22, 106.85),
			}, nil
		},
	}
	matrix := matrixForDistances(10, 3)

	svc := newMatcher(repo, &mockPlaceRepo{}, matrix, nil)
	matches := svc.Match(context.Background(), matchOrigin, 25, domain.ModeAvailableOnly)

	if len(matches) != 2 {
		t.Fatalf("expected 2 available matches, got %d", len(matches))
	}
	if matches[0].Therapist.ID != "near" || matches[1].Therapist.ID != "far" {
		t.Errorf("wrong order: %s then %s", matches[0].Therapist.ID, matches[1].Therapist.ID)
	}
}

func TestMatch_StableTieBreakPreservesCatalogOrder(t *testing.T) {
	repo := &mockTherapistRepo{
		listAllFn: func(ctx context.Context) ([]domain.Therapist, error) {
			return []domain.Therapist{
				therapist("first", domain.StatusAvailable, -6.22, 106.85),
				therapist("second", domain.StatusAvailable, -6.22, 106.85),
				therapist("third", domain.StatusAvailable, -6.22, 106.85),
			}, nil
		},
	}
	matrix := matrixForDistances(5, 5, 5)

	svc := newMatcher(repo, &mockPlaceRepo{}, matrix, nil)
	matches := svc.Match(context.Background(), matchOrigin, 25, domain.ModeAll)

	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if matches[i].Therapist.ID != want {
			t.Errorf("tie-break broke catalog order at %d: got %s", i, matches[i].Therapist.ID)
		}
	}
}

func TestMatch_UnparseableLocationsSilentlyExcluded(t *testing.T) {
	repo := &mockTherapistRepo{
		listAllFn: func(ctx context.Context) ([]domain.Therapist, error) {
			broken := domain.Therapist{ID: "broken", Status: domain.StatusAvailable, RawLocation: "not json"}
			missing := domain.Therapist{ID: "missing", Status: domain.StatusAvailable}
			return []domain.Therapist{
				broken,
				therapist("ok", domain.StatusAvailable, -6.22, 106.85),
				missing,
			}, nil
		},
	}
	matrix := matrixForDistances(3)

	svc := newMatcher(repo, &mockPlaceRepo{}, matrix, nil)
	matches := svc.Match(context.Background(), matchOrigin, 25, domain.ModeAll)

	if len(matches) != 1 || matches[0].Therapist.ID != "ok" {
		t.Fatalf("expected only the locatable therapist, got %+v", matches)
	}
}

func TestMatch_CatalogFailureYieldsEmptyNotError(t *testing.T) {
	repo := &mockTherapistRepo{
		listAllFn: func(ctx context.Context) ([]domain.Therapist, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := newMatcher(repo, &mockPlaceRepo{}, nil, nil)
	matches := svc.Match(context.Background(), matchOrigin, 25, domain.ModeAll)

	if len(matches) != 0 {
		t.Errorf("expected empty result on catalog outage, got %d", len(matches))
	}
}

func TestMatchFast_HaversineFiltering(t *testing.T) {
	repo := &mockTherapistRepo{
		listAllFn: func(ctx context.Context) ([]domain.Therapist, error) {
			return []domain.Therapist{
				// South Jakarta, ~6.5 km from the origin
				therapist("near", domain.StatusAvailable, -6.2615, 106.8106),
				// Denpasar, ~960 km away
				therapist("bali", domain.StatusAvailable, -8.6705, 115.2126),
			}, nil
		},
	}
	// Matrix must not be consulted on the fast path.
	matrix := &mockMatrix{}

	svc := newMatcher(repo, &mockPlaceRepo{}, matrix, nil)
	matches := svc.MatchFast(context.Background(), matchOrigin, 25, domain.ModeAll)

	if matrix.calls != 0 {
		t.Errorf("fast path must not call the matrix provider, called %d times", matrix.calls)
	}
	if len(matches) != 1 || matches[0].Therapist.ID != "near" {
		t.Fatalf("expected only the Jakarta therapist, got %+v", matches)
	}
	if matches[0].DistanceSource != domain.SourceHaversine {
		t.Errorf("expected haversine source, got %s", matches[0].DistanceSource)
	}
	if matches[0].DistanceKm < 5 || matches[0].DistanceKm > 8 {
		t.Errorf("expected ~6.5 km, got %v", matches[0].DistanceKm)
	}
}

func TestMatchPlaces_LiveFirstThenDistance(t *testing.T) {
	repo := &mockPlaceRepo{
		listAllFn: func(ctx context.Context) ([]domain.Place, error) {
			return []domain.Place{
				{ID: "dead-near", Live: false, RawLocation: `[106.8456,-6.2188]`},
				{ID: "live-far", Live: true, RawLocation: `[106.8456,-6.2588]`},
				{ID: "live-near", Live: true, RawLocation: `[106.8456,-6.2288]`},
			}, nil
		},
	}

	svc := newMatcher(&mockTherapistRepo{}, repo, nil, nil)
	matches := svc.MatchPlaces(context.Background(), matchOrigin, 25)

	wantOrder := []string{"live-near", "live-far", "dead-near"}
	if len(matches) != 3 {
		t.Fatalf("expected 3 places, got %d", len(matches))
	}
	for i, want := range wantOrder {
		if matches[i].Place.ID != want {
			t.Errorf("position %d: got %s, want %s", i, matches[i].Place.ID, want)
		}
	}
}

func TestMatch_CacheReadThrough(t *testing.T) {
	catalog := []domain.Therapist{therapist("cached", domain.StatusAvailable, -6.22, 106.85)}
	data, _ := json.Marshal(catalog)

	cache := newMockCache()
	cache.store["catalog:therapists"] = data

	repoCalled := false
	repo := &mockTherapistRepo{
		listAllFn: func(ctx context.Context) ([]domain.Therapist, error) {
			repoCalled = true
			return nil, nil
		},
	}

	svc := newMatcher(repo, &mockPlaceRepo{}, nil, cache)
	matches := svc.Match(context.Background(), matchOrigin, 25, domain.ModeAll)

	if repoCalled {
		t.Error("repository hit despite warm cache")
	}
	if len(matches) != 1 || matches[0].Therapist.ID != "cached" {
		t.Fatalf("expected the cached therapist, got %+v", matches)
	}
}

func TestMatch_CacheMissFillsCache(t *testing.T) {
	cache := newMockCache()
	repo := &mockTherapistRepo{
		listAllFn: func(ctx context.Context) ([]domain.Therapist, error) {
			return []domain.Therapist{therapist("t1", domain.StatusAvailable, -6.22, 106.85)}, nil
		},
	}

	svc := newMatcher(repo, &mockPlaceRepo{}, nil, cache)
	svc.Match(context.Background(), matchOrigin, 25, domain.ModeAll)

	if _, ok := cache.store["catalog:therapists"]; !ok {
		t.Error("catalog snapshot not written to cache")
	}
}
