package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/sentuhanid/geomatch/internal/adapters/postgres"
	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/core/gazetteer"
	"github.com/sentuhanid/geomatch/internal/pkg/config"
)

// seed loads a demo catalog derived from the service-area gazetteer into
// Postgres for local development. Therapist locations deliberately cycle
// through every raw encoding the parser accepts, so a seeded database
// exercises the same paths as real marketplace data.
func main() {
	cfg, err := config.Load("geomatch-seed")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	therapistRepo := postgres.NewTherapistRepo(db)
	placeRepo := postgres.NewPlaceRepo(db)

	therapists, places := buildCatalog(gazetteer.Default().All())

	if err := therapistRepo.UpsertBatch(ctx, therapists); err != nil {
		log.Fatalf("seed therapists: %v", err)
	}
	if err := placeRepo.UpsertBatch(ctx, places); err != nil {
		log.Fatalf("seed places: %v", err)
	}

	log.Printf("seeded %d therapists and %d places", len(therapists), len(places))
}

var statuses = []domain.TherapistStatus{
	domain.StatusAvailable,
	domain.StatusAvailable,
	domain.StatusBusy,
	domain.StatusOffline,
}

var serviceSets = [][]string{
	{"traditional", "deep-tissue"},
	{"facial", "aromatherapy"},
	{"reflexology"},
	{"traditional", "facial", "hot-stone"},
}

// buildCatalog places a handful of demo providers around every service area,
// jittered so they don't stack on the city centroid.
func buildCatalog(areas []gazetteer.Entry) ([]domain.Therapist, []domain.Place) {
	var therapists []domain.Therapist
	var places []domain.Place

	now := time.Now().UTC()
	n := 0

	for _, area := range areas {
		perCity := 3
		if area.MajorCity {
			perCity = 6
		}

		for i := 0; i < perCity; i++ {
			n++
			lat, lng := jitter(area.Coordinate.Lat, area.Coordinate.Lng, n)

			t := domain.Therapist{
				ID:        fmt.Sprintf("t-%04d", n),
				Name:      fmt.Sprintf("Terapis %s %d", area.Name, i+1),
				City:      area.Name,
				Status:    statuses[n%len(statuses)],
				Services:  serviceSets[n%len(serviceSets)],
				Rating:    3.5 + float64(n%15)/10,
				CreatedAt: now,
			}

			// Cycle through the legacy location encodings.
			switch n % 4 {
			case 0:
				t.RawLocation = fmt.Sprintf(`[%g,%g]`, lng, lat)
			case 1:
				t.RawLocation = fmt.Sprintf(`{"lat":%g,"lng":%g}`, lat, lng)
			case 2:
				t.RawLocation = fmt.Sprintf(`{"lat":%g,"lon":%g}`, lat, lng)
			case 3:
				t.RawLocation = []float64{lng, lat}
			}

			therapists = append(therapists, t)
		}

		if area.MajorCity || area.TouristDestination {
			lat, lng := jitter(area.Coordinate.Lat, area.Coordinate.Lng, n+7)
			places = append(places, domain.Place{
				ID:          fmt.Sprintf("p-%04d", len(places)+1),
				Name:        fmt.Sprintf("Rumah Pijat %s", area.Name),
				City:        area.Name,
				Live:        len(places)%3 != 0,
				RawLocation: fmt.Sprintf(`[%g,%g]`, lng, lat),
				CreatedAt:   now,
			})
		}
	}

	return therapists, places
}

// jitter offsets a centroid by up to ~3 km, deterministically per seed index.
func jitter(lat, lng float64, n int) (float64, float64) {
	dLat := 0.03 * math.Sin(float64(n)*2.399)
	dLng := 0.03 * math.Cos(float64(n)*1.713)
	return lat + dLat, lng + dLng
}
