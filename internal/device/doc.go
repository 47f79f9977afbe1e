// Package device owns the peripheral records for Gray Logic Edge.
//
// The registry is built exactly once at startup from the hardware
// manifest and is immutable afterwards: the actuator and sensor lists
// never grow, shrink or reorder for the lifetime of the process. Other
// packages borrow handles by reference; the registry outlives them all.
//
// Mutable per-device state is deliberately narrow:
//
//   - Actuator.state is written only by the monitor loop
//   - Sensor calibration (thresholds, armed flag) is written exactly once
//     during startup, before any trigger can fire, and read-only after
//
// That discipline is what makes the agent safe without locks: the alert
// dispatcher only ever reads immutable calibration data and performs its
// own sensor read.
package device
