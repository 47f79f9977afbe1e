// Package hal defines the hardware abstraction layer for Gray Logic Edge.
//
// The agent never talks to peripherals directly; everything goes through
// the two interfaces defined here:
//
//   - BinaryOutput: a binary on/off peripheral (LED, relay channel)
//   - TemperatureSensor: an ambient temperature source, optionally with
//     hardware threshold alerting
//
// Three drivers are provided:
//
//   - sim: in-memory peripherals for desktop runs and tests
//   - gpio: Linux sysfs GPIO output pins
//   - thermal: Linux thermal zone temperature sources
//
// Threshold and trigger support is a per-driver capability, not a
// requirement. Drivers without it return ErrUnsupported and the monitor
// loop falls back to polling.
//
// All temperatures are degrees Celsius. No other unit appears anywhere
// in the agent.
package hal
