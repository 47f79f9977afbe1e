package monitor

import (
	"sync"

	"github.com/nerrad567/gray-logic-edge/internal/device"
	"github.com/nerrad567/gray-logic-edge/internal/hal"
	"github.com/nerrad567/gray-logic-edge/internal/telemetry"
)

// recordingReporter captures every event for assertions.
type recordingReporter struct {
	mu           sync.Mutex
	calibrations []telemetry.Calibration
	readings     map[string][]float64
	readFails    []string
	states       map[string][]bool
	toggleFails  []string
	alerts       []telemetry.AlertEvent
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{
		readings: make(map[string][]float64),
		states:   make(map[string][]bool),
	}
}

func (r *recordingReporter) Calibrated(c telemetry.Calibration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calibrations = append(r.calibrations, c)
}

func (r *recordingReporter) Reading(sensor string, celsius float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings[sensor] = append(r.readings[sensor], celsius)
}

func (r *recordingReporter) ReadFailure(sensor string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readFails = append(r.readFails, sensor)
}

func (r *recordingReporter) ActuatorState(name string, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[name] = append(r.states[name], on)
}

func (r *recordingReporter) ToggleFailure(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toggleFails = append(r.toggleFails, name)
}

func (r *recordingReporter) Alert(ev telemetry.AlertEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, ev)
}

func (r *recordingReporter) snapshotAlerts() []telemetry.AlertEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]telemetry.AlertEvent, len(r.alerts))
	copy(out, r.alerts)
	return out
}

// sensorFor wraps a sim source in a registry-built sensor record.
func sensorFor(name string, src hal.TemperatureSensor) *device.Sensor {
	reg := device.NewRegistry(nil, []device.SensorConfig{
		{Name: name, Role: device.RoleThermometer, Source: src},
	})
	return reg.Sensors()[0]
}
