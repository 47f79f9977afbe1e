package telemetry

import "github.com/nerrad567/gray-logic-edge/internal/device"

// Direction classifies which side of the threshold pair an alert
// crossing landed on.
type Direction string

// Direction constants.
const (
	// DirectionBelow: the read value was at or below the lower bound.
	DirectionBelow Direction = "below"

	// DirectionAbove: the read value was at or above the upper bound.
	DirectionAbove Direction = "above"

	// DirectionInconsistent: the trigger fired but the value sat inside
	// the bounds. A defensive classification, not expected in normal
	// operation.
	DirectionInconsistent Direction = "inconsistent"
)

// AlertEvent is one dispatched threshold-crossing report.
type AlertEvent struct {
	ID        string    `json:"id"`
	Sensor    string    `json:"sensor"`
	Direction Direction `json:"direction"`
	Celsius   float64   `json:"celsius"`
	Lower     float64   `json:"lower"`
	Upper     float64   `json:"upper"`
}

// Calibration is the reported outcome of calibrating one sensor.
type Calibration struct {
	Sensor   string
	Baseline float64
	Pair     device.ThresholdPair
	LowerSet bool
	UpperSet bool
	Armed    bool
}

// Reporter receives every status event the agent emits.
//
// Implementations must be safe for concurrent use and must not block:
// the monitor loop calls these synchronously between peripheral I/O.
type Reporter interface {
	// Calibrated reports a completed sensor calibration.
	Calibrated(c Calibration)

	// Reading reports a polled temperature sample.
	Reading(sensor string, celsius float64)

	// ReadFailure reports a failed sensor read; the sensor was skipped.
	ReadFailure(sensor string, err error)

	// ActuatorState reports an actuator's logical state after a toggle.
	ActuatorState(name string, on bool)

	// ToggleFailure reports a failed actuator toggle; the loop continued.
	ToggleFailure(name string, err error)

	// Alert reports a dispatched threshold crossing.
	Alert(ev AlertEvent)
}

// Multi fans every event out to a fixed set of reporters, in order.
type Multi struct {
	sinks []Reporter
}

// NewMulti builds a fan-out reporter. Nil sinks are skipped.
func NewMulti(sinks ...Reporter) *Multi {
	m := &Multi{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Calibrated implements Reporter.
func (m *Multi) Calibrated(c Calibration) {
	for _, s := range m.sinks {
		s.Calibrated(c)
	}
}

// Reading implements Reporter.
func (m *Multi) Reading(sensor string, celsius float64) {
	for _, s := range m.sinks {
		s.Reading(sensor, celsius)
	}
}

// ReadFailure implements Reporter.
func (m *Multi) ReadFailure(sensor string, err error) {
	for _, s := range m.sinks {
		s.ReadFailure(sensor, err)
	}
}

// ActuatorState implements Reporter.
func (m *Multi) ActuatorState(name string, on bool) {
	for _, s := range m.sinks {
		s.ActuatorState(name, on)
	}
}

// ToggleFailure implements Reporter.
func (m *Multi) ToggleFailure(name string, err error) {
	for _, s := range m.sinks {
		s.ToggleFailure(name, err)
	}
}

// Alert implements Reporter.
func (m *Multi) Alert(ev AlertEvent) {
	for _, s := range m.sinks {
		s.Alert(ev)
	}
}
