package http

import (
	"github.com/nats-io/nats.go"

	"github.com/sentuhanid/geomatch/internal/adapters/postgres"
	"github.com/sentuhanid/geomatch/internal/adapters/valkey"
	"github.com/sentuhanid/geomatch/internal/core/ports"
	"github.com/sentuhanid/geomatch/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Matcher    *usecases.MatcherService
	Distance   *usecases.DistanceService
	Cities     *usecases.CityService
	Location   *usecases.LocationService
	Status     *usecases.StatusService
	Therapists ports.TherapistRepository
	NATS       *nats.Conn
	DB         *postgres.DB
	Cache      *valkey.Cache
}
