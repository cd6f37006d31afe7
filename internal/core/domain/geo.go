package domain

import (
	"encoding/json"
	"math"
	"strings"
)

// Coordinate represents a geographic coordinate (WGS 84).
// A Coordinate is either fully populated and valid or absent; callers never
// see a half-built value.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is inside the WGS 84 domain.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// rawObject mirrors the object encodings found in the marketplace catalog.
// The legacy writer used "lon" instead of "lng"; both are accepted, "lng" wins.
type rawObject struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
	Lon *float64 `json:"lon"`
}

// ParseRawLocation normalizes a stored catalog location into a Coordinate.
// Accepted encodings:
//   - a 2-element numeric sequence in [lng, lat] order (GeoJSON convention)
//   - JSON text of either the array form or an object with lat/lng (or lon)
//   - a native map with lat/lng (or lon) keys
//
// It returns ok=false for anything else: missing axis, non-numeric axis, NaN,
// out-of-range values, malformed JSON. It never panics and never errors; a
// provider with a broken stored location is simply not locatable.
func ParseRawLocation(raw any) (Coordinate, bool) {
	switch v := raw.(type) {
	case nil:
		return Coordinate{}, false
	case Coordinate:
		return v, v.Valid()
	case []float64:
		return fromPair(v)
	case []any:
		pair := make([]float64, 0, len(v))
		for _, e := range v {
			f, ok := asFloat(e)
			if !ok {
				return Coordinate{}, false
			}
			pair = append(pair, f)
		}
		return fromPair(pair)
	case string:
		return parseJSONLocation(v)
	case []byte:
		return parseJSONLocation(string(v))
	case map[string]any:
		return fromMap(v)
	default:
		return Coordinate{}, false
	}
}

func parseJSONLocation(text string) (Coordinate, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Coordinate{}, false
	}

	if strings.HasPrefix(trimmed, "[") {
		var pair []float64
		if err := json.Unmarshal([]byte(trimmed), &pair); err != nil {
			return Coordinate{}, false
		}
		return fromPair(pair)
	}

	var obj rawObject
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return Coordinate{}, false
	}
	return fromObject(obj)
}

func fromPair(pair []float64) (Coordinate, bool) {
	if len(pair) != 2 {
		return Coordinate{}, false
	}
	// GeoJSON order: longitude first.
	c := Coordinate{Lat: pair[1], Lng: pair[0]}
	return c, c.Valid()
}

func fromObject(obj rawObject) (Coordinate, bool) {
	lng := obj.Lng
	if lng == nil {
		lng = obj.Lon
	}
	if obj.Lat == nil || lng == nil {
		return Coordinate{}, false
	}
	c := Coordinate{Lat: *obj.Lat, Lng: *lng}
	return c, c.Valid()
}

func fromMap(m map[string]any) (Coordinate, bool) {
	lat, latOK := asFloat(m["lat"])
	lng, lngOK := asFloat(m["lng"])
	if !lngOK {
		lng, lngOK = asFloat(m["lon"])
	}
	if !latOK || !lngOK {
		return Coordinate{}, false
	}
	c := Coordinate{Lat: lat, Lng: lng}
	return c, c.Valid()
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil && !math.IsNaN(f)
	default:
		return 0, false
	}
}
