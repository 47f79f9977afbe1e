package mqtt

import "fmt"

// Topic layout constants.
//
// Edge publishes on the Gray Logic flat bridge scheme,
// graylogic/{category}/{protocol}/{device}, acting as protocol "edge".
const (
	// TopicPrefix is the base for all Gray Logic topics.
	TopicPrefix = "graylogic"

	// ProtocolName identifies this agent on the bus.
	ProtocolName = "edge"
)

// Topics provides builders for the agent's MQTT topics.
// Using these helpers keeps topic naming consistent with the rest of
// the Gray Logic stack.
type Topics struct{}

// Reading returns the topic for temperature readings from a sensor.
//
// Example: graylogic/reading/edge/thermometer
func (Topics) Reading(device string) string {
	return fmt.Sprintf("%s/reading/%s/%s", TopicPrefix, ProtocolName, device)
}

// State returns the topic for actuator state updates.
//
// Example: graylogic/state/edge/led0
func (Topics) State(device string) string {
	return fmt.Sprintf("%s/state/%s/%s", TopicPrefix, ProtocolName, device)
}

// Alert returns the topic for threshold-crossing alerts from a sensor.
//
// Example: graylogic/alert/edge/thermometer
func (Topics) Alert(device string) string {
	return fmt.Sprintf("%s/alert/%s/%s", TopicPrefix, ProtocolName, device)
}

// Health returns the agent health status topic. Online/offline payloads
// and the Last Will message are published here, retained.
//
// Example: graylogic/health/edge
func (Topics) Health() string {
	return fmt.Sprintf("%s/health/%s", TopicPrefix, ProtocolName)
}
