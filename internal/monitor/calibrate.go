package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/gray-logic-edge/internal/device"
	"github.com/nerrad567/gray-logic-edge/internal/hal"
	"github.com/nerrad567/gray-logic-edge/internal/telemetry"
)

// Alert bound offsets from the baseline sample, in degrees Celsius.
// Both positive, so Lower < Upper always holds.
const (
	lowerOffset = 0.5
	upperOffset = 1.5
)

// Outcome describes the result of calibrating one sensor.
type Outcome struct {
	Baseline float64
	Pair     device.ThresholdPair

	// LowerSet / UpperSet record per-bound installation success. An
	// uninstalled bound is a capability outcome, not an error: the
	// sensor simply stays on polling.
	LowerSet bool
	UpperSet bool

	// Armed is true iff both bounds installed and the trigger callback
	// registered.
	Armed bool
}

// Calibrator derives and installs per-sensor alert thresholds from an
// initial sample, and arms the alert path where the hardware supports it.
type Calibrator struct {
	alerts    *AlertQueue
	reporter  telemetry.Reporter
	ioTimeout time.Duration
	logger    Logger
}

// NewCalibrator creates a calibrator. The queue receives trigger
// registrations for sensors that arm successfully.
func NewCalibrator(alerts *AlertQueue, reporter telemetry.Reporter, ioTimeout time.Duration, logger Logger) *Calibrator {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Calibrator{
		alerts:    alerts,
		reporter:  reporter,
		ioTimeout: ioTimeout,
		logger:    logger,
	}
}

// Calibrate runs the calibration sequence for one sensor:
//
//  1. Read one baseline sample. A failed read is fatal for this sensor
//     and propagates; no default baseline is guessed.
//  2. Derive lower/upper bounds from the fixed offsets.
//  3. Install each bound independently; failure is recorded, not fatal.
//  4. If both bounds installed, register the alert trigger. The sensor
//     is trigger-armed iff registration succeeds.
//
// The outcome is stored on the sensor record and reported. After this
// returns, the sensor's calibration data is immutable.
//
// Returns:
//   - Outcome: calibration results (valid only when error is nil)
//   - error: baseline read failure, wrapped with the sensor name
func (c *Calibrator) Calibrate(ctx context.Context, s *device.Sensor) (Outcome, error) {
	rctx, cancel := context.WithTimeout(ctx, c.ioTimeout)
	defer cancel()

	baseline, err := s.Read(rctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("baseline read for %s: %w", s.Name, err)
	}

	out := Outcome{
		Baseline: baseline,
		Pair: device.ThresholdPair{
			Lower: baseline + lowerOffset,
			Upper: baseline + upperOffset,
		},
	}

	if err := s.SetThreshold(hal.BoundLower, out.Pair.Lower); err == nil {
		out.LowerSet = true
	} else {
		c.logger.Debug("lower threshold not installed", "sensor", s.Name, "error", err)
	}

	if err := s.SetThreshold(hal.BoundUpper, out.Pair.Upper); err == nil {
		out.UpperSet = true
	} else {
		c.logger.Debug("upper threshold not installed", "sensor", s.Name, "error", err)
	}

	if out.LowerSet && out.UpperSet {
		if err := s.SetTrigger(c.alerts.TriggerFor(s)); err == nil {
			out.Armed = true
		} else {
			c.logger.Debug("trigger not registered, sensor stays on polling", "sensor", s.Name, "error", err)
		}
	}

	s.StoreCalibration(out.Pair, out.Armed)

	c.reporter.Calibrated(telemetry.Calibration{
		Sensor:   s.Name,
		Baseline: out.Baseline,
		Pair:     out.Pair,
		LowerSet: out.LowerSet,
		UpperSet: out.UpperSet,
		Armed:    out.Armed,
	})

	return out, nil
}
