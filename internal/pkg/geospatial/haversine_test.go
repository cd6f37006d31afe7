package geospatial_test

import (
	"math"
	"testing"

	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/pkg/geospatial"
)

var (
	jakarta    = domain.Coordinate{Lat: -6.2088, Lng: 106.8456}
	yogyakarta = domain.Coordinate{Lat: -7.7956, Lng: 110.3695}
	denpasar   = domain.Coordinate{Lat: -8.6705, Lng: 115.2126}
)

func TestHaversine_KnownDistances(t *testing.T) {
	cases := []struct {
		name     string
		a, b     domain.Coordinate
		wantKm   float64
		tolerKm  float64
	}{
		{"jakarta-yogyakarta", jakarta, yogyakarta, 429, 10},
		{"jakarta-denpasar", jakarta, denpasar, 958, 15},
		{"yogyakarta-denpasar", yogyakarta, denpasar, 548, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := geospatial.DistanceKm(tc.a, tc.b)
			if math.Abs(got-tc.wantKm) > tc.tolerKm {
				t.Errorf("got %.1f km, want %.0f±%.0f km", got, tc.wantKm, tc.tolerKm)
			}
		})
	}
}

func TestHaversine_Identity(t *testing.T) {
	if d := geospatial.DistanceKm(jakarta, jakarta); d != 0 {
		t.Errorf("distance to self should be 0, got %v", d)
	}
}

func TestHaversine_Symmetry(t *testing.T) {
	ab := geospatial.DistanceKm(jakarta, denpasar)
	ba := geospatial.DistanceKm(denpasar, jakarta)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("asymmetric: %v vs %v", ab, ba)
	}
}

func TestHaversine_ShortDistance(t *testing.T) {
	// Two points ~1.1 km apart in central Jakarta.
	a := domain.Coordinate{Lat: -6.2088, Lng: 106.8456}
	b := domain.Coordinate{Lat: -6.2188, Lng: 106.8456}
	got := geospatial.DistanceKm(a, b)
	if got < 1.0 || got > 1.2 {
		t.Errorf("expected ~1.1 km, got %v", got)
	}
}

func TestBoundingBox_ContainsRadius(t *testing.T) {
	minLat, minLng, maxLat, maxLng := geospatial.BoundingBox(jakarta.Lat, jakarta.Lng, 25)
	if minLat >= jakarta.Lat || maxLat <= jakarta.Lat {
		t.Error("latitude bounds must bracket the center")
	}
	if minLng >= jakarta.Lng || maxLng <= jakarta.Lng {
		t.Error("longitude bounds must bracket the center")
	}
	// A point 20 km due north stays inside the 25 km box.
	north := domain.Coordinate{Lat: jakarta.Lat + 20.0/111.0, Lng: jakarta.Lng}
	if north.Lat > maxLat {
		t.Error("point within radius fell outside the box")
	}
}
