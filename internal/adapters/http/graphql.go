package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/sentuhanid/geomatch/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	coordinateType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Coordinate",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lng": &graphql.Field{Type: graphql.Float},
		},
	})

	cityType := graphql.NewObject(graphql.ObjectConfig{
		Name: "City",
		Fields: graphql.Fields{
			"name":                &graphql.Field{Type: graphql.String},
			"region":              &graphql.Field{Type: graphql.String},
			"coordinate":          &graphql.Field{Type: coordinateType},
			"major_city":          &graphql.Field{Type: graphql.Boolean},
			"tourist_destination": &graphql.Field{Type: graphql.Boolean},
			"aliases":             &graphql.Field{Type: graphql.NewList(graphql.String)},
			"distance_km":         &graphql.Field{Type: graphql.Float},
		},
	})

	therapistType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Therapist",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.String},
			"name":     &graphql.Field{Type: graphql.String},
			"city":     &graphql.Field{Type: graphql.String},
			"status":   &graphql.Field{Type: graphql.String},
			"services": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"rating":   &graphql.Field{Type: graphql.Float},
		},
	})

	matchType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TherapistMatch",
		Fields: graphql.Fields{
			"therapist":           &graphql.Field{Type: therapistType},
			"coordinate":          &graphql.Field{Type: coordinateType},
			"distance_km":         &graphql.Field{Type: graphql.Float},
			"travel_time_minutes": &graphql.Field{Type: graphql.Float},
			"distance_source":     &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"matchTherapists": &graphql.Field{
				Type:        graphql.NewList(matchType),
				Description: "Rank therapists around a point by status and distance",
				Args: graphql.FieldConfigArgument{
					"lat":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius_km": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 25.0},
					"mode":      &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "all"},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					origin := domain.Coordinate{
						Lat: p.Args["lat"].(float64),
						Lng: p.Args["lng"].(float64),
					}
					radius := p.Args["radius_km"].(float64)
					mode := domain.MatchMode(p.Args["mode"].(string))
					if mode != domain.ModeAll && mode != domain.ModeAvailableOnly {
						mode = domain.ModeAll
					}
					return deps.Matcher.Match(p.Context, origin, radius, mode), nil
				},
			},
			"nearestCities": &graphql.Field{
				Type:        graphql.NewList(cityType),
				Description: "Curated service areas closest to a point",
				Args: graphql.FieldConfigArgument{
					"lat":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius_km": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 100.0},
					"limit":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 5},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					origin := domain.Coordinate{
						Lat: p.Args["lat"].(float64),
						Lng: p.Args["lng"].(float64),
					}
					radius := p.Args["radius_km"].(float64)
					limit := p.Args["limit"].(int)
					return deps.Cities.Nearest(origin, radius, limit), nil
				},
			},
			"resolveCity": &graphql.Field{
				Type:        cityType,
				Description: "Resolve a city name or alias to a gazetteer entry",
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					name := p.Args["name"].(string)
					entry := deps.Cities.Resolve(name)
					if entry == nil {
						return nil, nil
					}
					return entry, nil
				},
			},
			"therapist": &graphql.Field{
				Type:        therapistType,
				Description: "Get a therapist by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Therapists.GetByID(p.Context, id)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
