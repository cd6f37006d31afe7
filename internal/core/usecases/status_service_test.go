package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/core/usecases"
)

// --- Mock EventPublisher ---

type mockPublisher struct {
	statusUpdates []domain.StatusUpdate
	broadcasts    [][]byte
}

func (m *mockPublisher) PublishStatusUpdate(ctx context.Context, update *domain.StatusUpdate) error {
	m.statusUpdates = append(m.statusUpdates, *update)
	return nil
}

func (m *mockPublisher) PublishBroadcast(ctx context.Context, data []byte) error {
	m.broadcasts = append(m.broadcasts, data)
	return nil
}

func TestApply_PersistsInvalidatesAndBroadcasts(t *testing.T) {
	var gotID string
	var gotStatus domain.TherapistStatus
	repo := &mockTherapistRepo{
		updateStatusFn: func(ctx context.Context, id string, status domain.TherapistStatus) error {
			gotID, gotStatus = id, status
			return nil
		},
	}
	pub := &mockPublisher{}
	cache := newMockCache()
	cache.store["catalog:therapists"] = []byte("[]")

	svc := usecases.NewStatusService(repo, pub, cache)
	err := svc.Apply(context.Background(), &domain.StatusUpdate{
		TherapistID: "t-042",
		Status:      domain.StatusBusy,
		At:          time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != "t-042" || gotStatus != domain.StatusBusy {
		t.Errorf("wrong persist call: %s %s", gotID, gotStatus)
	}
	if _, ok := cache.store["catalog:therapists"]; ok {
		t.Error("stale catalog snapshot not invalidated")
	}
	if len(pub.broadcasts) != 1 {
		t.Errorf("expected 1 broadcast, got %d", len(pub.broadcasts))
	}
}

func TestApply_RejectsUnknownStatus(t *testing.T) {
	svc := usecases.NewStatusService(&mockTherapistRepo{}, nil, nil)
	err := svc.Apply(context.Background(), &domain.StatusUpdate{
		TherapistID: "t-1",
		Status:      "holiday",
	})
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestApply_RejectsMissingTherapistID(t *testing.T) {
	svc := usecases.NewStatusService(&mockTherapistRepo{}, nil, nil)
	if err := svc.Apply(context.Background(), &domain.StatusUpdate{Status: domain.StatusBusy}); err == nil {
		t.Fatal("expected error for missing therapist id")
	}
	if err := svc.Apply(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil update")
	}
}

func TestApply_UnknownTherapistSurfacesNotFound(t *testing.T) {
	repo := &mockTherapistRepo{
		updateStatusFn: func(ctx context.Context, id string, status domain.TherapistStatus) error {
			return domain.ErrNotFound
		},
	}
	svc := usecases.NewStatusService(repo, nil, nil)
	err := svc.Apply(context.Background(), &domain.StatusUpdate{
		TherapistID: "ghost",
		Status:      domain.StatusAvailable,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmit_PublishesToStream(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewStatusService(&mockTherapistRepo{}, pub, nil)

	err := svc.Submit(context.Background(), &domain.StatusUpdate{
		TherapistID: "t-7",
		Status:      domain.StatusAvailable,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.statusUpdates) != 1 {
		t.Fatalf("expected 1 published update, got %d", len(pub.statusUpdates))
	}
	if pub.statusUpdates[0].At.IsZero() {
		t.Error("Submit must stamp the event time")
	}
}

func TestSubmit_WithoutStreamFails(t *testing.T) {
	svc := usecases.NewStatusService(&mockTherapistRepo{}, nil, nil)
	err := svc.Submit(context.Background(), &domain.StatusUpdate{
		TherapistID: "t-7",
		Status:      domain.StatusAvailable,
	})
	if err == nil {
		t.Fatal("expected error when no stream is configured")
	}
}
