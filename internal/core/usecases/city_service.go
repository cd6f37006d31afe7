package usecases

import (
	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/core/gazetteer"
)

// CityService exposes gazetteer lookups to the delivery surfaces. The catalog
// is static and in-process, so there is nothing to cache or synchronize.
type CityService struct {
	catalog *gazetteer.Catalog
}

// NewCityService creates a CityService over a gazetteer catalog.
func NewCityService(catalog *gazetteer.Catalog) *CityService {
	if catalog == nil {
		catalog = gazetteer.Default()
	}
	return &CityService{catalog: catalog}
}

// Resolve maps free text (canonical name or alias) to a curated entry.
func (s *CityService) Resolve(text string) *gazetteer.Entry {
	return s.catalog.FindByName(text)
}

// Nearest lists curated cities within maxDistanceKm of coord.
func (s *CityService) Nearest(coord domain.Coordinate, maxDistanceKm float64, limit int) []gazetteer.Entry {
	if maxDistanceKm <= 0 {
		maxDistanceKm = gazetteer.DefaultSnapRadiusKm
	}
	return s.catalog.Nearest(coord, maxDistanceKm, limit)
}

// Attribute snaps a coordinate to its service area, e.g. to auto-detect a
// provider's city at onboarding. Nil means outside all coverage.
func (s *CityService) Attribute(coord domain.Coordinate) *gazetteer.Entry {
	return s.catalog.MatchToNearestEntry(coord)
}

// List filters the catalog for dropdown population.
func (s *CityService) List(region string, majorOnly, touristOnly bool) []gazetteer.Entry {
	var entries []gazetteer.Entry
	switch {
	case majorOnly:
		entries = s.catalog.MajorCities()
	case touristOnly:
		entries = s.catalog.TouristDestinations()
	case region != "":
		entries = s.catalog.ByRegion(region)
	default:
		entries = s.catalog.All()
	}
	return entries
}

// Regions returns the distinct region names.
func (s *CityService) Regions() []string {
	return s.catalog.Regions()
}
