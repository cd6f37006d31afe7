package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/core/ports"
)

// StatusService applies live availability updates from the marketplace event
// stream to the catalog and rebroadcasts them for connected clients.
type StatusService struct {
	therapists ports.TherapistRepository
	publisher  ports.EventPublisher
	cache      ports.CacheService
}

// NewStatusService creates a StatusService. publisher and cache may be nil.
func NewStatusService(therapists ports.TherapistRepository, publisher ports.EventPublisher, cache ports.CacheService) *StatusService {
	return &StatusService{therapists: therapists, publisher: publisher, cache: cache}
}

func (s *StatusService) validate(update *domain.StatusUpdate) error {
	if update == nil || update.TherapistID == "" {
		return fmt.Errorf("status update missing therapist id")
	}
	switch update.Status {
	case domain.StatusAvailable, domain.StatusBusy, domain.StatusOffline:
	default:
		return fmt.Errorf("unknown status %q for therapist %s", update.Status, update.TherapistID)
	}
	return nil
}

// Submit enqueues a status update onto the durable event stream. The status
// daemon is the single writer that applies stream events to the catalog.
func (s *StatusService) Submit(ctx context.Context, update *domain.StatusUpdate) error {
	if err := s.validate(update); err != nil {
		return err
	}
	if update.At.IsZero() {
		update.At = time.Now().UTC()
	}
	if s.publisher == nil {
		return fmt.Errorf("event stream not configured")
	}
	return s.publisher.PublishStatusUpdate(ctx, update)
}

// Apply persists one status update and fans it out to the websocket relay.
func (s *StatusService) Apply(ctx context.Context, update *domain.StatusUpdate) error {
	if err := s.validate(update); err != nil {
		return err
	}

	if update.At.IsZero() {
		update.At = time.Now().UTC()
	}

	if err := s.therapists.UpdateStatus(ctx, update.TherapistID, update.Status); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	// Status changed: the cached catalog snapshot is stale.
	if s.cache != nil {
		_ = s.cache.Delete(ctx, "catalog:therapists")
	}

	if s.publisher != nil {
		if data, err := json.Marshal(update); err == nil {
			_ = s.publisher.PublishBroadcast(ctx, data)
		}
	}
	return nil
}
