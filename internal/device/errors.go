package device

import "errors"

// Domain-specific errors for device operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNotReady is returned by Validate when a peripheral reports it is
	// not operable. Fatal at startup: no later component may assume a
	// handle works if validation failed.
	ErrNotReady = errors.New("device: not ready")

	// ErrNotCalibrated is returned when threshold data is requested from
	// a sensor that has not been through calibration.
	ErrNotCalibrated = errors.New("device: not calibrated")
)
