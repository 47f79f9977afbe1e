package hal

import (
	"context"
	"errors"
)

// Domain-specific errors for peripheral I/O.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrReadFailed is returned when a sensor sample cannot be fetched.
	ErrReadFailed = errors.New("hal: read failed")

	// ErrWriteFailed is returned when an output or attribute write fails.
	ErrWriteFailed = errors.New("hal: write failed")

	// ErrUnsupported is returned when a driver has no hardware support for
	// the requested capability (thresholds, triggers). This is a capability
	// signal, not a fault: callers are expected to fall back to polling.
	ErrUnsupported = errors.New("hal: not supported by this device")
)

// Bound identifies which alert bound a threshold write targets.
type Bound int

// Bound constants.
const (
	BoundLower Bound = iota
	BoundUpper
)

// String returns the bound name for logging.
func (b Bound) String() string {
	switch b {
	case BoundLower:
		return "lower"
	case BoundUpper:
		return "upper"
	default:
		return "unknown"
	}
}

// TriggerFunc is invoked by a driver when the sensed value crosses an
// installed threshold.
//
// Drivers call it from their own goroutine, at any point relative to the
// monitor loop. It must not block and must not touch driver state: the
// agent wires it to a non-blocking channel send. Delivery is
// edge-triggered with no queuing guarantee; only the most recent crossing
// is guaranteed observable.
type TriggerFunc func()

// BinaryOutput is a binary on/off peripheral.
type BinaryOutput interface {
	// Ready reports whether the underlying peripheral is initialised
	// and operable.
	Ready() bool

	// Configure drives the output to a known initial level.
	Configure(active bool) error

	// Toggle inverts the current output level.
	Toggle() error
}

// TemperatureSensor is an ambient temperature source.
type TemperatureSensor interface {
	// Ready reports whether the underlying peripheral is initialised
	// and operable.
	Ready() bool

	// Read returns the current ambient temperature in degrees Celsius.
	// The context bounds the call; expiry is a read failure.
	Read(ctx context.Context) (float64, error)

	// SetThreshold installs an alert bound in degrees Celsius.
	// Returns ErrUnsupported when the hardware has no threshold support.
	SetThreshold(bound Bound, celsius float64) error

	// SetTrigger registers fn as the threshold-crossing callback.
	// Returns ErrUnsupported when the hardware cannot deliver triggers.
	SetTrigger(fn TriggerFunc) error
}
