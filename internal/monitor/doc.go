// Package monitor implements the discovery-validate-arm-monitor state
// machine at the heart of Gray Logic Edge.
//
// Startup runs through the stages in order:
//
//  1. The registry (built elsewhere from the hardware manifest) is
//     validated: every handle must be ready or the process aborts.
//  2. The Calibrator takes one baseline sample per sensor and installs
//     alert bounds at baseline+0.5 and baseline+1.5 degrees Celsius.
//     A sensor is trigger-armed only when both bounds installed and the
//     crossing callback registered; otherwise it is covered by polling.
//  3. The Loop runs forever on a fixed interval: drain pending alerts
//     through the Dispatcher, poll every thermometer, toggle every
//     actuator.
//
// Failure policy is fail-soft everywhere past validation: a failing
// device is reported and skipped, and the loop carries on. Only a
// readiness failure or an unreadable baseline aborts startup.
//
// Concurrency: driver triggers fire on arbitrary goroutines. They do
// nothing but a non-blocking send into the AlertQueue; the loop drains
// the queue and runs the Dispatcher on its own goroutine. Calibration
// data is written before triggers are armed and immutable afterwards,
// so the dispatcher reads it without locks.
package monitor
