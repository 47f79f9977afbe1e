package telemetry

import "github.com/nerrad567/gray-logic-edge/internal/infrastructure/logging"

// LogReporter emits every event as a structured log line. This is the
// agent's console output: deterministic fields per event type, with the
// device name and numeric value always present.
type LogReporter struct {
	log *logging.Logger
}

// NewLogReporter creates the structured-log sink.
func NewLogReporter(log *logging.Logger) *LogReporter {
	return &LogReporter{log: log.With("component", "monitor")}
}

// Calibrated implements Reporter.
func (r *LogReporter) Calibrated(c Calibration) {
	r.log.Info("sensor calibrated",
		"sensor", c.Sensor,
		"baseline_c", c.Baseline,
		"lower_c", c.Pair.Lower,
		"upper_c", c.Pair.Upper,
		"lower_installed", c.LowerSet,
		"upper_installed", c.UpperSet,
		"trigger_armed", c.Armed,
	)
}

// Reading implements Reporter.
func (r *LogReporter) Reading(sensor string, celsius float64) {
	r.log.Info("temperature reading",
		"sensor", sensor,
		"celsius", celsius,
	)
}

// ReadFailure implements Reporter.
func (r *LogReporter) ReadFailure(sensor string, err error) {
	r.log.Warn("temperature read failed",
		"sensor", sensor,
		"error", err,
	)
}

// ActuatorState implements Reporter.
func (r *LogReporter) ActuatorState(name string, on bool) {
	r.log.Info("actuator state",
		"actuator", name,
		"on", on,
	)
}

// ToggleFailure implements Reporter.
func (r *LogReporter) ToggleFailure(name string, err error) {
	r.log.Warn("actuator toggle failed",
		"actuator", name,
		"error", err,
	)
}

// Alert implements Reporter.
func (r *LogReporter) Alert(ev AlertEvent) {
	if ev.Direction == DirectionInconsistent {
		r.log.Error("threshold alert fired without valid condition",
			"alert_id", ev.ID,
			"sensor", ev.Sensor,
			"celsius", ev.Celsius,
			"lower_c", ev.Lower,
			"upper_c", ev.Upper,
		)
		return
	}
	r.log.Warn("temperature threshold crossed",
		"alert_id", ev.ID,
		"sensor", ev.Sensor,
		"direction", string(ev.Direction),
		"celsius", ev.Celsius,
		"lower_c", ev.Lower,
		"upper_c", ev.Upper,
	)
}
