package telemetry

import (
	"encoding/json"
	"time"

	"github.com/nerrad567/gray-logic-edge/internal/infrastructure/mqtt"
)

// Publisher is the interface the MQTT sink needs from the bus client.
type Publisher interface {
	Publish(topic string, payload []byte, retained bool) error
}

// MQTTReporter publishes events onto the Gray Logic bus.
//
// Readings and actuator state are retained so new subscribers see the
// current value immediately; alerts are events and are not retained.
// Publish failures are logged and swallowed: a dead broker must never
// stall the monitor loop.
type MQTTReporter struct {
	pub    Publisher
	topics mqtt.Topics
	log    Logger
}

// Logger is the minimal logging interface the MQTT sink uses for its
// own failures.
type Logger interface {
	Warn(msg string, args ...any)
}

// NewMQTTReporter creates the bus sink.
func NewMQTTReporter(pub Publisher, log Logger) *MQTTReporter {
	return &MQTTReporter{pub: pub, log: log}
}

// readingPayload is the JSON body for reading and calibration topics.
type readingPayload struct {
	Sensor    string   `json:"sensor"`
	Celsius   *float64 `json:"celsius,omitempty"`
	Error     string   `json:"error,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// statePayload is the JSON body for actuator state topics.
type statePayload struct {
	Actuator  string `json:"actuator"`
	On        *bool  `json:"on,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// calibrationPayload is the JSON body for calibration reports.
type calibrationPayload struct {
	Sensor       string  `json:"sensor"`
	BaselineC    float64 `json:"baseline_c"`
	LowerC       float64 `json:"lower_c"`
	UpperC       float64 `json:"upper_c"`
	TriggerArmed bool    `json:"trigger_armed"`
	Timestamp    string  `json:"timestamp"`
}

// alertPayload is the JSON body for alert topics.
type alertPayload struct {
	AlertEvent
	Timestamp string `json:"timestamp"`
}

// Calibrated implements Reporter.
func (r *MQTTReporter) Calibrated(c Calibration) {
	r.publish(r.topics.Reading(c.Sensor), calibrationPayload{
		Sensor:       c.Sensor,
		BaselineC:    c.Baseline,
		LowerC:       c.Pair.Lower,
		UpperC:       c.Pair.Upper,
		TriggerArmed: c.Armed,
		Timestamp:    timestamp(),
	}, true)
}

// Reading implements Reporter.
func (r *MQTTReporter) Reading(sensor string, celsius float64) {
	r.publish(r.topics.Reading(sensor), readingPayload{
		Sensor:    sensor,
		Celsius:   &celsius,
		Timestamp: timestamp(),
	}, true)
}

// ReadFailure implements Reporter.
func (r *MQTTReporter) ReadFailure(sensor string, err error) {
	r.publish(r.topics.Reading(sensor), readingPayload{
		Sensor:    sensor,
		Error:     err.Error(),
		Timestamp: timestamp(),
	}, true)
}

// ActuatorState implements Reporter.
func (r *MQTTReporter) ActuatorState(name string, on bool) {
	r.publish(r.topics.State(name), statePayload{
		Actuator:  name,
		On:        &on,
		Timestamp: timestamp(),
	}, true)
}

// ToggleFailure implements Reporter.
func (r *MQTTReporter) ToggleFailure(name string, err error) {
	r.publish(r.topics.State(name), statePayload{
		Actuator:  name,
		Error:     err.Error(),
		Timestamp: timestamp(),
	}, true)
}

// Alert implements Reporter.
func (r *MQTTReporter) Alert(ev AlertEvent) {
	r.publish(r.topics.Alert(ev.Sensor), alertPayload{
		AlertEvent: ev,
		Timestamp:  timestamp(),
	}, false)
}

// publish marshals and publishes a payload, logging failures.
func (r *MQTTReporter) publish(topic string, payload any, retained bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		r.warn("marshalling telemetry payload", topic, err)
		return
	}
	if err := r.pub.Publish(topic, data, retained); err != nil {
		r.warn("publishing telemetry", topic, err)
	}
}

func (r *MQTTReporter) warn(msg, topic string, err error) {
	if r.log != nil {
		r.log.Warn(msg, "topic", topic, "error", err)
	}
}

// timestamp returns the event time in the bus-wide RFC3339 format.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
