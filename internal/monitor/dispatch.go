package monitor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/gray-logic-edge/internal/device"
	"github.com/nerrad567/gray-logic-edge/internal/telemetry"
)

// Dispatcher handles threshold-crossing notifications.
//
// It is strictly read-only with respect to device records: it performs
// its own temperature read and consults the immutable calibration pair,
// so it can never race the monitor loop's state.
type Dispatcher struct {
	reporter  telemetry.Reporter
	ioTimeout time.Duration
}

// NewDispatcher creates an alert dispatcher.
func NewDispatcher(reporter telemetry.Reporter, ioTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		reporter:  reporter,
		ioTimeout: ioTimeout,
	}
}

// HandleAlert processes one crossing notification for a sensor:
// one read, classify against the stored threshold pair, report.
//
// A failed read is reported and the dispatch ends; no retry, and the
// failure never propagates, so a broken sensor cannot take down the
// loop. A value inside the bounds produces the inconsistency report
// (the callback fired without a valid condition).
func (d *Dispatcher) HandleAlert(ctx context.Context, s *device.Sensor) {
	rctx, cancel := context.WithTimeout(ctx, d.ioTimeout)
	defer cancel()

	celsius, err := s.Read(rctx)
	if err != nil {
		d.reporter.ReadFailure(s.Name, err)
		return
	}

	pair, err := s.Thresholds()
	if err != nil {
		// Trigger fired on an uncalibrated sensor; should be impossible
		// since triggers are only armed after calibration.
		d.reporter.ReadFailure(s.Name, err)
		return
	}

	var direction telemetry.Direction
	switch {
	case celsius <= pair.Lower:
		direction = telemetry.DirectionBelow
	case celsius >= pair.Upper:
		direction = telemetry.DirectionAbove
	default:
		direction = telemetry.DirectionInconsistent
	}

	d.reporter.Alert(telemetry.AlertEvent{
		ID:        uuid.NewString(),
		Sensor:    s.Name,
		Direction: direction,
		Celsius:   celsius,
		Lower:     pair.Lower,
		Upper:     pair.Upper,
	})
}
