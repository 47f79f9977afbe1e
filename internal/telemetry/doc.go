// Package telemetry carries the agent's per-event reports to their sinks.
//
// The monitor loop and alert dispatcher emit events through the Reporter
// interface and never know where they land. Three sinks exist:
//
//   - LogReporter: structured slog output (always on)
//   - MQTTReporter: JSON payloads on the Gray Logic bus (optional)
//   - Store: in-memory current-state snapshot feeding the status API
//
// Sinks are fail-soft: a slow or broken sink reports its own failure and
// never propagates an error back into the monitor loop.
//
// The Store keeps only the latest value per device. The agent records no
// history and persists nothing.
package telemetry
