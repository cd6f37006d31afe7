package domain

import (
	"time"
)

// TherapistStatus is the live availability state reported by the marketplace.
type TherapistStatus string

const (
	StatusAvailable TherapistStatus = "available"
	StatusBusy      TherapistStatus = "busy"
	StatusOffline   TherapistStatus = "offline"
)

// SortPriority ranks statuses for "all providers" listings: available first,
// then busy, then offline, anything unrecognized last.
func (s TherapistStatus) SortPriority() int {
	switch s {
	case StatusAvailable:
		return 0
	case StatusBusy:
		return 1
	case StatusOffline:
		return 2
	default:
		return 3
	}
}

// Therapist is a service provider as read from the marketplace catalog.
// The catalog is owned by the marketplace data layer; this service only reads
// it. RawLocation is kept exactly as stored (the catalog carries several
// legacy encodings) and is never trusted without ParseRawLocation.
type Therapist struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	City        string          `json:"city,omitempty"`
	Status      TherapistStatus `json:"status"`
	RawLocation any             `json:"raw_location,omitempty"`
	Services    []string        `json:"services,omitempty"`
	Rating      float64         `json:"rating,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Place is a venue (massage house, spa) listed on the marketplace. Venues
// carry a liveness flag instead of the richer therapist status enum.
type Place struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city,omitempty"`
	Live        bool      `json:"live"`
	RawLocation any       `json:"raw_location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DistanceSource marks which method produced a DistanceResult.
type DistanceSource string

const (
	SourceNetwork   DistanceSource = "network"
	SourceHaversine DistanceSource = "haversine"
)

// DistanceResult is a single origin→destination distance measurement.
// Produced fresh per query and never cached: distance depends on traffic
// conditions when it comes from the network provider.
type DistanceResult struct {
	DistanceKm        float64        `json:"distance_km"`
	TravelTimeMinutes *float64       `json:"travel_time_minutes,omitempty"`
	Source            DistanceSource `json:"source"`
}

// TherapistMatch annotates a catalog therapist with the distance computed for
// one matching request. Matches are ephemeral; they are discarded once the
// caller has rendered the ranked list.
type TherapistMatch struct {
	Therapist         Therapist      `json:"therapist"`
	Coordinate        Coordinate     `json:"coordinate"`
	DistanceKm        float64        `json:"distance_km"`
	TravelTimeMinutes *float64       `json:"travel_time_minutes,omitempty"`
	DistanceSource    DistanceSource `json:"distance_source"`
}

// PlaceMatch is the venue counterpart of TherapistMatch.
type PlaceMatch struct {
	Place      Place      `json:"place"`
	Coordinate Coordinate `json:"coordinate"`
	DistanceKm float64    `json:"distance_km"`
}

// MatchMode selects which therapists participate in a matching pass.
type MatchMode string

const (
	ModeAll           MatchMode = "all"
	ModeAvailableOnly MatchMode = "available"
)

// LocationFix is one fresh device-sensor reading. AcquiredAt is the sensor
// timestamp; cached fixes are never accepted, so a fix older than the
// freshness window is treated as a failed acquisition.
type LocationFix struct {
	Coordinate     Coordinate `json:"coordinate"`
	AccuracyMeters float64    `json:"accuracy_meters"`
	Source         string     `json:"source"` // "gps", "ip", "network", ...
	AcquiredAt     time.Time  `json:"acquired_at"`
}

// StatusUpdate is a live availability change event for a therapist.
type StatusUpdate struct {
	TherapistID string          `json:"therapist_id"`
	Status      TherapistStatus `json:"status"`
	At          time.Time       `json:"at"`
}
