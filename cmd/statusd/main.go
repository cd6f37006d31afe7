package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	natsadapter "github.com/sentuhanid/geomatch/internal/adapters/nats"
	"github.com/sentuhanid/geomatch/internal/adapters/postgres"
	"github.com/sentuhanid/geomatch/internal/adapters/valkey"
	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/core/ports"
	"github.com/sentuhanid/geomatch/internal/core/usecases"
	"github.com/sentuhanid/geomatch/internal/pkg/config"
	"github.com/sentuhanid/geomatch/internal/pkg/logging"
	"github.com/sentuhanid/geomatch/internal/pkg/metrics"
)

// statusd consumes therapist availability events from the durable stream and
// applies them to the catalog. It is the single writer for therapist status.
func main() {
	cfg, err := config.Load("geomatch-statusd")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("geomatch-statusd", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	// Publisher rebroadcasts applied updates for the WebSocket relay.
	var publisher ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats publisher unavailable", "error", err)
	} else {
		defer pub.Close()
		publisher = pub
	}

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats subscriber: %v", err)
	}
	defer sub.Close()

	therapistRepo := postgres.NewTherapistRepo(db)
	statusSvc := usecases.NewStatusService(therapistRepo, publisher, cacheSvc)

	err = sub.SubscribeStatusUpdates(ctx, func(ctx context.Context, update *domain.StatusUpdate) error {
		if err := statusSvc.Apply(ctx, update); err != nil {
			slog.Warn("status update rejected",
				"therapist_id", update.TherapistID,
				"status", update.Status,
				"error", err,
			)
			// A therapist missing from the catalog is not retryable.
			return nil
		}
		metrics.StatusUpdatesApplied.Inc()
		slog.Debug("status applied", "therapist_id", update.TherapistID, "status", update.Status)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	slog.Info("status daemon running", "stream", "marketplace.status.>")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received", "signal", sig.String())
	cancel()
}
