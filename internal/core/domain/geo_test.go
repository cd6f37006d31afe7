package domain_test

import (
	"math"
	"testing"

	"github.com/sentuhanid/geomatch/internal/core/domain"
)

func TestParseRawLocation_Accepted(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		lat  float64
		lng  float64
	}{
		{"float pair lng first", []float64{106.8456, -6.2088}, -6.2088, 106.8456},
		{"any pair", []any{110.3695, -7.7956}, -7.7956, 110.3695},
		{"json array text", `[115.2126,-8.6705]`, -8.6705, 115.2126},
		{"json object lat lng", `{"lat":-6.2088,"lng":106.8456}`, -6.2088, 106.8456},
		{"json object legacy lon", `{"lat":-7.7956,"lon":110.3695}`, -7.7956, 110.3695},
		{"json object both lng wins", `{"lat":-6.2,"lng":106.8,"lon":99.9}`, -6.2, 106.8},
		{"byte slice", []byte(`[106.8456,-6.2088]`), -6.2088, 106.8456},
		{"map lat lng", map[string]any{"lat": -6.2088, "lng": 106.8456}, -6.2088, 106.8456},
		{"map legacy lon", map[string]any{"lat": -6.2088, "lon": 106.8456}, -6.2088, 106.8456},
		{"map int values", map[string]any{"lat": -6, "lng": 106}, -6, 106},
		{"coordinate passthrough", domain.Coordinate{Lat: -8.65, Lng: 115.21}, -8.65, 115.21},
		{"whitespace padded text", `  {"lat":-6.2,"lng":106.8}  `, -6.2, 106.8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := domain.ParseRawLocation(tc.raw)
			if !ok {
				t.Fatalf("expected %v to parse", tc.raw)
			}
			if c.Lat != tc.lat || c.Lng != tc.lng {
				t.Errorf("got (%v, %v), want (%v, %v)", c.Lat, c.Lng, tc.lat, tc.lng)
			}
		})
	}
}

func TestParseRawLocation_Rejected(t *testing.T) {
	cases := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"empty string", ""},
		{"not json", "jalan sudirman 12"},
		{"one element", []float64{106.8}},
		{"three elements", []float64{106.8, -6.2, 5}},
		{"non numeric element", []any{"106.8", -6.2}},
		{"object missing lat", `{"lng":106.8}`},
		{"object missing lng and lon", `{"lat":-6.2}`},
		{"lat out of range", `{"lat":-91,"lng":106.8}`},
		{"lng out of range", `[181,-6.2]`},
		{"nan", []float64{math.NaN(), -6.2}},
		{"malformed json", `{"lat":-6.2,`},
		{"map missing axis", map[string]any{"lat": -6.2}},
		{"unsupported type", 42},
		{"bool", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := domain.ParseRawLocation(tc.raw); ok {
				t.Errorf("expected %v to be rejected", tc.raw)
			}
		})
	}
}

func TestParseRawLocation_ArrayOrderIsGeoJSON(t *testing.T) {
	// Jakarta stored as [lng, lat]. Reading it in [lat, lng] order would
	// produce a point in the Indian Ocean.
	c, ok := domain.ParseRawLocation(`[106.8456,-6.2088]`)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if c.Lat > 0 || c.Lng < 100 {
		t.Errorf("axes swapped: got lat=%v lng=%v", c.Lat, c.Lng)
	}
}

func TestCoordinateValid(t *testing.T) {
	valid := []domain.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: -90, Lng: -180},
		{Lat: 90, Lng: 180},
		{Lat: -6.2088, Lng: 106.8456},
	}
	for _, c := range valid {
		if !c.Valid() {
			t.Errorf("expected %+v to be valid", c)
		}
	}

	invalid := []domain.Coordinate{
		{Lat: 90.0001, Lng: 0},
		{Lat: 0, Lng: -180.0001},
		{Lat: math.NaN(), Lng: 0},
		{Lat: 0, Lng: math.NaN()},
	}
	for _, c := range invalid {
		if c.Valid() {
			t.Errorf("expected %+v to be invalid", c)
		}
	}
}

func TestSortPriority(t *testing.T) {
	if domain.StatusAvailable.SortPriority() >= domain.StatusBusy.SortPriority() {
		t.Error("available must rank before busy")
	}
	if domain.StatusBusy.SortPriority() >= domain.StatusOffline.SortPriority() {
		t.Error("busy must rank before offline")
	}
	if domain.TherapistStatus("mystery").SortPriority() <= domain.StatusOffline.SortPriority() {
		t.Error("unknown statuses must rank last")
	}
}
