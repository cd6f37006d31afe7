package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/core/usecases"
)

// parseOrigin reads and validates the lat/lng query pair shared by every
// matching endpoint.
func parseOrigin(c *fiber.Ctx) (domain.Coordinate, error) {
	lat := c.QueryFloat("lat", 200)
	lng := c.QueryFloat("lng", 200)
	if lat == 200 || lng == 200 {
		return domain.Coordinate{}, errBadRequest(c, "lat and lng are required")
	}
	origin := domain.Coordinate{Lat: lat, Lng: lng}
	if !origin.Valid() {
		return domain.Coordinate{}, errBadRequest(c, "lat must be in [-90,90] and lng in [-180,180]")
	}
	return origin, nil
}

// parseRadius reads radius_km, clamped to a sane ceiling.
func parseRadius(c *fiber.Ctx) float64 {
	radius := c.QueryFloat("radius_km", usecases.DefaultRadiusKm)
	if radius <= 0 || radius > 500 {
		radius = usecases.DefaultRadiusKm
	}
	return radius
}

func parseMode(c *fiber.Ctx) (domain.MatchMode, error) {
	switch c.Query("mode", string(domain.ModeAll)) {
	case string(domain.ModeAll):
		return domain.ModeAll, nil
	case string(domain.ModeAvailableOnly):
		return domain.ModeAvailableOnly, nil
	default:
		return "", errBadRequest(c, "mode must be 'all' or 'available'")
	}
}

// MatchTherapistsHandler ranks catalog therapists around a point, resolving
// distances through the network provider with Haversine fallback.
func MatchTherapistsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin, err := parseOrigin(c)
		if err != nil {
			return err
		}
		mode, err := parseMode(c)
		if err != nil {
			return err
		}
		radius := parseRadius(c)

		matches := deps.Matcher.Match(c.Context(), origin, radius, mode)
		return c.JSON(fiber.Map{
			"matches":   matches,
			"count":     len(matches),
			"radius_km": radius,
			"mode":      mode,
		})
	}
}

// NearbyTherapistsHandler is the fast listing path: straight-line distances
// only, no network provider round trip.
func NearbyTherapistsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin, err := parseOrigin(c)
		if err != nil {
			return err
		}
		mode, err := parseMode(c)
		if err != nil {
			return err
		}
		radius := parseRadius(c)

		matches := deps.Matcher.MatchFast(c.Context(), origin, radius, mode)
		return c.JSON(fiber.Map{
			"matches":   matches,
			"count":     len(matches),
			"radius_km": radius,
			"mode":      mode,
		})
	}
}

// MatchPlacesHandler ranks venues around a point, live venues first.
func MatchPlacesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin, err := parseOrigin(c)
		if err != nil {
			return err
		}
		radius := parseRadius(c)

		matches := deps.Matcher.MatchPlaces(c.Context(), origin, radius)
		return c.JSON(fiber.Map{
			"matches":   matches,
			"count":     len(matches),
			"radius_km": radius,
		})
	}
}

// ListCitiesHandler lists gazetteer entries with optional filters.
func ListCitiesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		region := c.Query("region")
		majorOnly := c.QueryBool("major", false)
		touristOnly := c.QueryBool("tourist", false)

		cities := deps.Cities.List(region, majorOnly, touristOnly)

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 200 {
			limit = 100
		}

		total := len(cities)
		if offset >= total {
			cities = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			cities = cities[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: cities, Pagination: pg})
	}
}

// ResolveCityHandler resolves free text (names and aliases) to a gazetteer
// entry.
func ResolveCityHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := c.Query("q")
		if q == "" {
			return errBadRequest(c, "q query parameter is required")
		}
		if len(q) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}

		entry := deps.Cities.Resolve(q)
		if entry == nil {
			return errNotFound(c, "no city matches "+q)
		}
		return c.JSON(entry)
	}
}

// NearestCitiesHandler returns gazetteer entries closest to a point.
func NearestCitiesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin, err := parseOrigin(c)
		if err != nil {
			return err
		}
		radius := c.QueryFloat("radius_km", 100)
		if radius <= 0 || radius > 2000 {
			radius = 100
		}
		limit := c.QueryInt("limit", 5)
		if limit <= 0 || limit > 50 {
			limit = 5
		}

		cities := deps.Cities.Nearest(origin, radius, limit)
		return c.JSON(fiber.Map{
			"cities": cities,
			"count":  len(cities),
		})
	}
}

// locationVerifyRequest is a client-reported sensor fix.
type locationVerifyRequest struct {
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	AccuracyMeters float64 `json:"accuracy_meters"`
	Source         string  `json:"source"`
	AcquiredAt     string  `json:"acquired_at,omitempty"`
}

// VerifyLocationHandler applies the acquisition policy to a reported fix:
// GPS source only, accuracy within the gate. Rejections come back as 422
// so clients can distinguish a bad fix from a malformed request.
func VerifyLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req locationVerifyRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}

		acquiredAt := time.Now()
		if req.AcquiredAt != "" {
			t, err := time.Parse(time.RFC3339, req.AcquiredAt)
			if err != nil {
				return errBadRequest(c, "acquired_at must be RFC 3339")
			}
			acquiredAt = t
		}

		fix := &domain.LocationFix{
			Coordinate:     domain.Coordinate{Lat: req.Lat, Lng: req.Lng},
			AccuracyMeters: req.AccuracyMeters,
			Source:         req.Source,
			AcquiredAt:     acquiredAt,
		}

		if err := deps.Location.ValidateFix(fix); err != nil {
			if errors.Is(err, domain.ErrLocationUnavailable) {
				return errUnprocessable(c, "location unavailable: fix rejected by acquisition policy")
			}
			return errInternal(c, err.Error())
		}

		// Annotate the accepted fix with the nearest service area, when one
		// is within snap range.
		resp := fiber.Map{"status": "accepted", "fix": fix}
		if entry := deps.Cities.Attribute(fix.Coordinate); entry != nil {
			resp["city"] = entry
		}
		return c.JSON(resp)
	}
}

// CatalogStats holds row counts from the marketplace catalog tables.
type CatalogStats struct {
	Therapists int    `json:"therapists"`
	Places     int    `json:"places"`
	LastUpsert string `json:"last_upsert,omitempty"`
}

// CatalogStatusHandler returns row counts from the catalog tables.
func CatalogStatusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.DB == nil {
			return errInternal(c, "database not available")
		}

		var stats CatalogStats
		row := deps.DB.Pool.QueryRow(c.Context(), `
			SELECT
				(SELECT count(*) FROM therapists),
				(SELECT count(*) FROM places),
				COALESCE((SELECT max(updated_at)::text FROM therapists), '')
		`)
		if err := row.Scan(&stats.Therapists, &stats.Places, &stats.LastUpsert); err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(stats)
	}
}

// statusUpdateRequest is the body of PUT /v1/therapists/:id/status.
type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateTherapistStatusHandler enqueues a live availability change onto the
// event stream. The status daemon applies stream events to the catalog.
func UpdateTherapistStatusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "therapist id is required")
		}

		var req statusUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}

		update := &domain.StatusUpdate{
			TherapistID: id,
			Status:      domain.TherapistStatus(req.Status),
			At:          time.Now().UTC(),
		}
		if err := deps.Status.Submit(c.Context(), update); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(202).JSON(fiber.Map{"status": "accepted", "update": update})
	}
}
