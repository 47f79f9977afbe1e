package hal

import (
	"context"
	"fmt"
	"sync"
)

// SimPin is an in-memory BinaryOutput for desktop runs and tests.
//
// Thread Safety: all methods are safe for concurrent use.
type SimPin struct {
	mu         sync.Mutex
	level      bool
	notReady   bool
	failWrites bool
}

// NewSimPin creates a simulated output pin, initially off and ready.
func NewSimPin() *SimPin {
	return &SimPin{}
}

// SetNotReady marks the pin as not operable; Ready() will return false.
func (p *SimPin) SetNotReady(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notReady = v
}

// FailWrites makes Configure and Toggle fail with ErrWriteFailed.
func (p *SimPin) FailWrites(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failWrites = v
}

// Level returns the current simulated output level.
func (p *SimPin) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Ready implements BinaryOutput.
func (p *SimPin) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.notReady
}

// Configure implements BinaryOutput.
func (p *SimPin) Configure(active bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWrites {
		return fmt.Errorf("%w: simulated configure fault", ErrWriteFailed)
	}
	p.level = active
	return nil
}

// Toggle implements BinaryOutput.
func (p *SimPin) Toggle() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWrites {
		return fmt.Errorf("%w: simulated toggle fault", ErrWriteFailed)
	}
	p.level = !p.level
	return nil
}

// SimSensor is an in-memory TemperatureSensor with configurable
// capabilities and fault injection.
//
// Threshold and trigger support are both on by default; disable them to
// exercise the polling fallback. When a trigger is registered, SetValue
// fires it whenever the new value lands outside the installed bounds,
// on its own goroutine, mimicking the driver's interrupt context.
//
// Thread Safety: all methods are safe for concurrent use.
type SimSensor struct {
	mu             sync.Mutex
	value          float64
	notReady       bool
	failReads      bool
	noThresholds   bool
	noTrigger      bool
	disabledBounds map[Bound]bool
	thresholds     map[Bound]float64
	trigger        TriggerFunc
}

// NewSimSensor creates a simulated sensor reporting the given temperature.
func NewSimSensor(celsius float64) *SimSensor {
	return &SimSensor{
		value:          celsius,
		disabledBounds: make(map[Bound]bool),
		thresholds:     make(map[Bound]float64),
	}
}

// SetNotReady marks the sensor as not operable; Ready() will return false.
func (s *SimSensor) SetNotReady(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notReady = v
}

// FailReads makes Read fail with ErrReadFailed.
func (s *SimSensor) FailReads(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReads = v
}

// DisableThresholds makes SetThreshold return ErrUnsupported.
func (s *SimSensor) DisableThresholds() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noThresholds = true
}

// DisableThreshold makes SetThreshold return ErrUnsupported for one bound
// only, leaving the other installable.
func (s *SimSensor) DisableThreshold(bound Bound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabledBounds[bound] = true
}

// DisableTrigger makes SetTrigger return ErrUnsupported.
func (s *SimSensor) DisableTrigger() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noTrigger = true
}

// SetValue updates the simulated temperature and fires the registered
// trigger when the value lands on or outside an installed bound.
func (s *SimSensor) SetValue(celsius float64) {
	s.mu.Lock()
	s.value = celsius
	fire := s.trigger != nil && s.crossesLocked(celsius)
	trigger := s.trigger
	s.mu.Unlock()

	if fire {
		go trigger()
	}
}

// Threshold returns the installed bound value, if any.
func (s *SimSensor) Threshold(bound Bound) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.thresholds[bound]
	return v, ok
}

// TriggerRegistered reports whether a crossing callback is registered.
func (s *SimSensor) TriggerRegistered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trigger != nil
}

// crossesLocked reports whether celsius is outside the installed bounds.
// Caller must hold s.mu.
func (s *SimSensor) crossesLocked(celsius float64) bool {
	if lower, ok := s.thresholds[BoundLower]; ok && celsius <= lower {
		return true
	}
	if upper, ok := s.thresholds[BoundUpper]; ok && celsius >= upper {
		return true
	}
	return false
}

// Ready implements TemperatureSensor.
func (s *SimSensor) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.notReady
}

// Read implements TemperatureSensor.
func (s *SimSensor) Read(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReads {
		return 0, fmt.Errorf("%w: simulated read fault", ErrReadFailed)
	}
	return s.value, nil
}

// SetThreshold implements TemperatureSensor.
func (s *SimSensor) SetThreshold(bound Bound, celsius float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.noThresholds || s.disabledBounds[bound] {
		return fmt.Errorf("%w: %s threshold disabled", ErrUnsupported, bound)
	}
	s.thresholds[bound] = celsius
	return nil
}

// SetTrigger implements TemperatureSensor.
func (s *SimSensor) SetTrigger(fn TriggerFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.noTrigger {
		return fmt.Errorf("%w: triggers disabled", ErrUnsupported)
	}
	s.trigger = fn
	return nil
}
