package device

import (
	"context"

	"github.com/nerrad567/gray-logic-edge/internal/hal"
)

// Role classifies what a sensor measures.
type Role string

// Role constants.
const (
	RoleThermometer Role = "thermometer"
	RoleOther       Role = "other"
)

// ThresholdPair holds the alert bounds installed around a baseline
// sample. Invariant: Lower < Upper, guaranteed by construction since the
// calibration offsets are fixed positive constants. Computed once per
// sensor at startup and never recomputed.
type ThresholdPair struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Actuator is a named binary output peripheral with its logical state.
//
// The state field mirrors the hardware level and is mutated only by the
// monitor loop; nothing else writes it.
type Actuator struct {
	Name string

	out   hal.BinaryOutput
	state bool
}

// Ready reports whether the backing output is operable.
func (a *Actuator) Ready() bool {
	return a.out.Ready()
}

// Configure drives the output to a known initial level and records it.
func (a *Actuator) Configure(active bool) error {
	if err := a.out.Configure(active); err != nil {
		return err
	}
	a.state = active
	return nil
}

// Toggle inverts the output and the logical state flag. On a write
// failure the flag is left alone so it keeps mirroring the hardware.
func (a *Actuator) Toggle() error {
	if err := a.out.Toggle(); err != nil {
		return err
	}
	a.state = !a.state
	return nil
}

// State returns the current logical state.
func (a *Actuator) State() bool {
	return a.state
}

// Sensor is a named temperature source with its calibration record.
type Sensor struct {
	Name string
	Role Role

	src hal.TemperatureSensor

	// Calibration outcome. Written exactly once by StoreCalibration
	// during startup, before triggers can fire; immutable afterwards.
	thresholds *ThresholdPair
	armed      bool
}

// Ready reports whether the backing sensor is operable.
func (s *Sensor) Ready() bool {
	return s.src.Ready()
}

// IsThermometer reports whether this sensor produces ambient
// temperature readings.
func (s *Sensor) IsThermometer() bool {
	return s.Role == RoleThermometer
}

// Read returns the current temperature in degrees Celsius.
func (s *Sensor) Read(ctx context.Context) (float64, error) {
	return s.src.Read(ctx)
}

// SetThreshold installs an alert bound on the backing sensor.
func (s *Sensor) SetThreshold(bound hal.Bound, celsius float64) error {
	return s.src.SetThreshold(bound, celsius)
}

// SetTrigger registers the threshold-crossing callback on the backing
// sensor.
func (s *Sensor) SetTrigger(fn hal.TriggerFunc) error {
	return s.src.SetTrigger(fn)
}

// StoreCalibration records the calibration outcome. It must be called
// exactly once, during startup, before the monitor loop runs and before
// any trigger is armed. The stored pair is immutable from then on, which
// is what lets the alert dispatcher read it without locking.
func (s *Sensor) StoreCalibration(pair ThresholdPair, armed bool) {
	s.thresholds = &ThresholdPair{Lower: pair.Lower, Upper: pair.Upper}
	s.armed = armed
}

// Thresholds returns the installed alert bounds.
// Returns ErrNotCalibrated before StoreCalibration has run.
func (s *Sensor) Thresholds() (ThresholdPair, error) {
	if s.thresholds == nil {
		return ThresholdPair{}, ErrNotCalibrated
	}
	return *s.thresholds, nil
}

// Armed reports whether hardware alerting is active for this sensor.
// False means the sensor is covered by polling only.
func (s *Sensor) Armed() bool {
	return s.armed
}
