package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/gray-logic-edge/internal/device"
	"github.com/nerrad567/gray-logic-edge/internal/telemetry"
)

// Logger defines the logging interface used by the monitor package.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Deps holds the dependencies required by the monitor loop.
type Deps struct {
	Registry   *device.Registry
	Alerts     *AlertQueue
	Dispatcher *Dispatcher
	Reporter   telemetry.Reporter
	Interval   time.Duration
	IOTimeout  time.Duration
	Logger     Logger
}

// Loop is the perpetual foreground monitor.
//
// Each iteration it drains pending alerts, polls every thermometer
// (whether trigger-armed or not, so reporting stays live even when
// alerting works), and toggles every actuator. Per-device failures are
// reported and skipped; nothing but context cancellation stops the loop.
//
// The iteration period is fixed by a ticker, so it does not accumulate
// drift as the device count grows.
type Loop struct {
	registry   *device.Registry
	alerts     *AlertQueue
	dispatcher *Dispatcher
	reporter   telemetry.Reporter
	interval   time.Duration
	ioTimeout  time.Duration
	logger     Logger
}

// New creates the monitor loop.
//
// Returns:
//   - *Loop: Loop ready to Run
//   - error: If required dependencies are missing
func New(deps Deps) (*Loop, error) {
	if deps.Registry == nil {
		return nil, fmt.Errorf("device registry is required")
	}
	if deps.Alerts == nil {
		return nil, fmt.Errorf("alert queue is required")
	}
	if deps.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if deps.Reporter == nil {
		return nil, fmt.Errorf("reporter is required")
	}
	if deps.Interval <= 0 {
		return nil, fmt.Errorf("interval must be positive")
	}
	logger := deps.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	return &Loop{
		registry:   deps.Registry,
		alerts:     deps.Alerts,
		dispatcher: deps.Dispatcher,
		reporter:   deps.Reporter,
		interval:   deps.Interval,
		ioTimeout:  deps.IOTimeout,
		logger:     logger,
	}, nil
}

// Run executes the monitor loop until the context is cancelled.
// Cancellation is the only way out; it returns nil so a signal-driven
// shutdown exits cleanly.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("monitor loop started",
		"interval_ms", l.interval.Milliseconds(),
		"thermometers", len(l.registry.Thermometers()),
		"actuators", len(l.registry.Actuators()),
	)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		l.iterate(ctx)

		select {
		case <-ctx.Done():
			l.logger.Info("monitor loop stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// iterate runs one monitor pass: alerts, then sensors, then actuators.
func (l *Loop) iterate(ctx context.Context) {
	l.alerts.Drain(func(s *device.Sensor) {
		l.dispatcher.HandleAlert(ctx, s)
	})

	for _, s := range l.registry.Thermometers() {
		celsius, err := l.readSensor(ctx, s)
		if err != nil {
			l.reporter.ReadFailure(s.Name, err)
			continue
		}
		l.reporter.Reading(s.Name, celsius)
	}

	for _, a := range l.registry.Actuators() {
		if err := a.Toggle(); err != nil {
			l.reporter.ToggleFailure(a.Name, err)
			continue
		}
		l.reporter.ActuatorState(a.Name, a.State())
	}
}

// readSensor performs one bounded sensor read.
func (l *Loop) readSensor(ctx context.Context, s *device.Sensor) (float64, error) {
	rctx, cancel := context.WithTimeout(ctx, l.ioTimeout)
	defer cancel()
	return s.Read(rctx)
}
