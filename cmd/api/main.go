package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sentuhanid/geomatch/internal/adapters/distance"
	"github.com/sentuhanid/geomatch/internal/adapters/http"
	natsadapter "github.com/sentuhanid/geomatch/internal/adapters/nats"
	"github.com/sentuhanid/geomatch/internal/adapters/postgres"
	"github.com/sentuhanid/geomatch/internal/adapters/valkey"
	"github.com/sentuhanid/geomatch/internal/core/gazetteer"
	"github.com/sentuhanid/geomatch/internal/core/ports"
	"github.com/sentuhanid/geomatch/internal/core/usecases"
	"github.com/sentuhanid/geomatch/internal/pkg/config"
	"github.com/sentuhanid/geomatch/internal/pkg/logging"
	"github.com/sentuhanid/geomatch/internal/pkg/metrics"
	"github.com/sentuhanid/geomatch/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("geomatch-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("geomatch-api", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Cache
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		cache = nil
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	// NATS
	var publisher ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer pub.Close()
		publisher = pub
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Network distance provider. No API key means every resolution falls
	// back to Haversine.
	var matrix ports.DistanceMatrixService
	if cfg.Distance.APIKey != "" {
		client, err := distance.NewClient(
			cfg.Distance.BaseURL,
			cfg.Distance.APIKey,
			cfg.Distance.RequestsPerSec,
			time.Duration(cfg.Distance.TimeoutSeconds)*time.Second,
		)
		if err != nil {
			slog.Warn("distance provider misconfigured, using straight-line only", "error", err)
		} else {
			matrix = client
		}
	} else {
		slog.Info("no distance api key configured, using straight-line distances")
	}

	// Export pool gauges while the process runs
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			}
		}
	}()

	// Repos
	therapistRepo := postgres.NewTherapistRepo(db)
	placeRepo := postgres.NewPlaceRepo(db)

	// Use cases
	distanceSvc := usecases.NewDistanceService(matrix, ports.TravelMode(cfg.Distance.TravelMode), cfg.Matching.FallbackMinsPerKm)
	matcherSvc := usecases.NewMatcherService(therapistRepo, placeRepo, distanceSvc, cacheSvc)
	citySvc := usecases.NewCityService(gazetteer.Default())
	locationSvc := usecases.NewLocationService(nil,
		cfg.Location.AccuracyGateMeters,
		time.Duration(cfg.Location.SensorTimeoutSeconds)*time.Second,
	)
	statusSvc := usecases.NewStatusService(therapistRepo, publisher, cacheSvc)

	deps := &http.Dependencies{
		Matcher:    matcherSvc,
		Distance:   distanceSvc,
		Cities:     citySvc,
		Location:   locationSvc,
		Status:     statusSvc,
		Therapists: therapistRepo,
		NATS:       natsConn,
		DB:         db,
		Cache:      cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Geomatch API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.sentuhan.id",
		AllowMethods:     "GET,POST,PUT,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
