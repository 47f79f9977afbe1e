// Package mqtt provides the agent's connection to the Gray Logic bus.
//
// Gray Logic Edge is publish-only on the bus: it reports sensor readings,
// actuator state and threshold alerts, and maintains an online/offline
// status via Last Will and Testament. It subscribes to nothing; commands
// never flow into the agent over MQTT.
//
// Topics follow the flat bridge scheme used across Gray Logic,
// graylogic/{category}/{protocol}/{device}, with the agent acting as
// protocol "edge":
//
//	graylogic/reading/edge/thermometer
//	graylogic/state/edge/led0
//	graylogic/alert/edge/thermometer
//	graylogic/health/edge
//
// The broker is optional. When MQTT is disabled in configuration the
// agent runs entirely on structured log output.
package mqtt
