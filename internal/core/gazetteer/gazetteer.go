// Package gazetteer holds the curated catalog of service areas. City
// attribution is deliberately done against this static table instead of a
// reverse-geocoding API: lookups are deterministic, offline, and free, at the
// accepted cost of coverage being limited to curated entries.
package gazetteer

import (
	"sort"
	"strings"

	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/pkg/geospatial"
)

// DefaultSnapRadiusKm bounds how far a coordinate may sit from a curated city
// and still be attributed to it.
const DefaultSnapRadiusKm = 25

// Entry is one curated service area. Entries are immutable after catalog
// construction; DistanceKm is only populated on copies returned by Nearest.
type Entry struct {
	Name               string            `json:"name"`
	Region             string            `json:"region"`
	Coordinate         domain.Coordinate `json:"coordinate"`
	MajorCity          bool              `json:"major_city"`
	TouristDestination bool              `json:"tourist_destination"`
	Aliases            []string          `json:"aliases,omitempty"`
	DistanceKm         *float64          `json:"distance_km,omitempty"`
}

// Catalog is a read-only gazetteer. It is built once at process start and is
// safe for unsynchronized concurrent reads.
type Catalog struct {
	entries []Entry
	byName  map[string]int // lowercased name or alias -> entries index
}

// New builds a catalog from a fixed entry list. Names are unique; aliases
// must not collide with names of other entries.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: entries,
		byName:  make(map[string]int, len(entries)*2),
	}
	for i, e := range entries {
		c.byName[strings.ToLower(e.Name)] = i
		for _, a := range e.Aliases {
			c.byName[strings.ToLower(a)] = i
		}
	}
	return c
}

var defaultCatalog = New(serviceAreas)

// Default returns the process-wide curated catalog.
func Default() *Catalog {
	return defaultCatalog
}

// FindByName resolves free text to an entry by case-insensitive exact match
// on the canonical name or any alias. Returns nil when nothing matches.
func (c *Catalog) FindByName(text string) *Entry {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return nil
	}
	i, ok := c.byName[key]
	if !ok {
		return nil
	}
	e := c.entries[i]
	return &e
}

// Nearest returns the entries within maxDistanceKm of coord, ascending by
// great-circle distance, truncated to limit (limit <= 0 means no cap).
// Returned entries are copies with DistanceKm populated.
func (c *Catalog) Nearest(coord domain.Coordinate, maxDistanceKm float64, limit int) []Entry {
	var out []Entry
	for _, e := range c.entries {
		d := geospatial.DistanceKm(coord, e.Coordinate)
		if d <= maxDistanceKm {
			e.DistanceKm = &d
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].DistanceKm < *out[j].DistanceKm
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MatchToNearestEntry attributes a coordinate to the closest curated city
// within the default snap radius, or nil when the point is outside every
// service area.
func (c *Catalog) MatchToNearestEntry(coord domain.Coordinate) *Entry {
	nearest := c.Nearest(coord, DefaultSnapRadiusKm, 1)
	if len(nearest) == 0 {
		return nil
	}
	return &nearest[0]
}

// All returns every entry in catalog order.
func (c *Catalog) All() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// ByRegion returns the entries of one region, catalog order preserved.
func (c *Catalog) ByRegion(region string) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if strings.EqualFold(e.Region, region) {
			out = append(out, e)
		}
	}
	return out
}

// MajorCities returns the entries flagged as major cities.
func (c *Catalog) MajorCities() []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.MajorCity {
			out = append(out, e)
		}
	}
	return out
}

// TouristDestinations returns the entries flagged as tourist destinations.
func (c *Catalog) TouristDestinations() []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.TouristDestination {
			out = append(out, e)
		}
	}
	return out
}

// Regions returns the distinct region names in catalog order.
func (c *Catalog) Regions() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range c.entries {
		if _, ok := seen[e.Region]; ok {
			continue
		}
		seen[e.Region] = struct{}{}
		out = append(out, e.Region)
	}
	return out
}
