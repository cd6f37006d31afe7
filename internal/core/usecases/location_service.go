package usecases

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/core/ports"
	"github.com/sentuhanid/geomatch/internal/pkg/metrics"
)

const (
	// DefaultAccuracyGateMeters: a fix reported worse than this is the same
	// as a sensor failure. The boundary itself is accepted.
	DefaultAccuracyGateMeters = 500

	// DefaultSensorTimeout bounds one acquisition attempt.
	DefaultSensorTimeout = 15 * time.Second
)

// LocationService enforces the location acquisition policy: GPS only,
// accuracy gated, fresh reads only. There is deliberately no fallback to IP
// geolocation, browser locale, or timezone inference; ISP routing in the
// deployment region makes IP positions systematically wrong, so the service
// fails rather than guesses.
type LocationService struct {
	sensor        ports.LocationSensor
	accuracyGateM float64
	timeout       time.Duration
}

// NewLocationService creates a LocationService. Zero gate/timeout values take
// the defaults.
func NewLocationService(sensor ports.LocationSensor, accuracyGateMeters float64, timeout time.Duration) *LocationService {
	if accuracyGateMeters <= 0 {
		accuracyGateMeters = DefaultAccuracyGateMeters
	}
	if timeout <= 0 {
		timeout = DefaultSensorTimeout
	}
	return &LocationService{sensor: sensor, accuracyGateM: accuracyGateMeters, timeout: timeout}
}

// AcquireCurrentLocation performs a single acquisition attempt: one fresh
// high-accuracy sensor read, validated through the policy gate. Every failure
// mode (denied, timeout, unavailable, degraded accuracy, non-GPS source)
// collapses into domain.ErrLocationUnavailable; callers decide whether to
// retry.
func (s *LocationService) AcquireCurrentLocation(ctx context.Context) (*domain.LocationFix, error) {
	if s.sensor == nil {
		return nil, domain.ErrLocationUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fix, err := s.sensor.CurrentFix(ctx, ports.FixRequest{
		HighAccuracy: true,
		Timeout:      s.timeout,
		MaximumAge:   0, // never accept a cached fix
	})
	if err != nil {
		slog.Debug("sensor fix failed", "error", err)
		metrics.RejectedFixes.WithLabelValues("sensor_error").Inc()
		return nil, domain.ErrLocationUnavailable
	}

	if err := s.ValidateFix(fix); err != nil {
		return nil, err
	}
	return fix, nil
}

// ValidateFix applies the acceptance gate to a fix, whether it came from the
// sensor port or was reported by a client. The same policy applies either
// way: a degraded or non-sensor fix is indistinguishable from no fix.
func (s *LocationService) ValidateFix(fix *domain.LocationFix) error {
	if fix == nil || !fix.Coordinate.Valid() {
		metrics.RejectedFixes.WithLabelValues("invalid_coordinate").Inc()
		return domain.ErrLocationUnavailable
	}

	if src := strings.ToLower(fix.Source); src != "" && src != "gps" {
		slog.Debug("rejecting non-sensor location source", "source", fix.Source)
		metrics.RejectedFixes.WithLabelValues("degraded_source").Inc()
		return domain.ErrLocationUnavailable
	}

	if fix.AccuracyMeters < 0 || fix.AccuracyMeters > s.accuracyGateM {
		slog.Debug("rejecting low-accuracy fix", "accuracy_m", fix.AccuracyMeters, "gate_m", s.accuracyGateM)
		metrics.RejectedFixes.WithLabelValues("accuracy").Inc()
		return domain.ErrLocationUnavailable
	}

	return nil
}
