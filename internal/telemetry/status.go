package telemetry

import (
	"sync"
	"time"

	"github.com/nerrad567/gray-logic-edge/internal/device"
)

// ActuatorStatus is the current view of one actuator.
type ActuatorStatus struct {
	Name      string     `json:"name"`
	On        bool       `json:"on"`
	LastError string     `json:"last_error,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// SensorStatus is the current view of one sensor.
type SensorStatus struct {
	Name         string      `json:"name"`
	Role         string      `json:"role"`
	TriggerArmed bool        `json:"trigger_armed"`
	LowerC       *float64    `json:"lower_c,omitempty"`
	UpperC       *float64    `json:"upper_c,omitempty"`
	Celsius      *float64    `json:"celsius,omitempty"`
	LastError    string      `json:"last_error,omitempty"`
	UpdatedAt    *time.Time  `json:"updated_at,omitempty"`
	LastAlert    *AlertEvent `json:"last_alert,omitempty"`
}

// Snapshot is the full current-state view served by the status API.
type Snapshot struct {
	Actuators []ActuatorStatus `json:"actuators"`
	Sensors   []SensorStatus   `json:"sensors"`
}

// Store keeps the latest value per device for the status API.
//
// It implements Reporter, so wiring it into the fan-out keeps it current
// without the monitor loop knowing it exists. Only the latest value is
// held; there is no history.
//
// Thread Safety: all methods are safe for concurrent use. The monitor
// loop writes; API handlers read.
type Store struct {
	mu        sync.RWMutex
	actuators map[string]*ActuatorStatus
	sensors   map[string]*SensorStatus

	// Registry order, preserved for deterministic snapshots.
	actuatorOrder []string
	sensorOrder   []string
}

// NewStore seeds the store from the registry: every device appears in the
// snapshot from startup, before its first report arrives. Any calibration
// data already on the records is copied in; a store built before
// calibration runs picks the thresholds and armed flags up from the
// Calibrated events instead.
func NewStore(reg *device.Registry) *Store {
	s := &Store{
		actuators: make(map[string]*ActuatorStatus),
		sensors:   make(map[string]*SensorStatus),
	}

	for _, a := range reg.Actuators() {
		s.actuators[a.Name] = &ActuatorStatus{Name: a.Name, On: a.State()}
		s.actuatorOrder = append(s.actuatorOrder, a.Name)
	}

	for _, sen := range reg.Sensors() {
		st := &SensorStatus{
			Name:         sen.Name,
			Role:         string(sen.Role),
			TriggerArmed: sen.Armed(),
		}
		if pair, err := sen.Thresholds(); err == nil {
			lower, upper := pair.Lower, pair.Upper
			st.LowerC = &lower
			st.UpperC = &upper
		}
		s.sensors[sen.Name] = st
		s.sensorOrder = append(s.sensorOrder, sen.Name)
	}

	return s
}

// Snapshot returns a deep copy of the current state in registry order.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Actuators: make([]ActuatorStatus, 0, len(s.actuatorOrder)),
		Sensors:   make([]SensorStatus, 0, len(s.sensorOrder)),
	}
	for _, name := range s.actuatorOrder {
		st := *s.actuators[name]
		st.UpdatedAt = clonePtr(st.UpdatedAt)
		snap.Actuators = append(snap.Actuators, st)
	}
	for _, name := range s.sensorOrder {
		st := *s.sensors[name]
		st.LowerC = clonePtr(st.LowerC)
		st.UpperC = clonePtr(st.UpperC)
		st.Celsius = clonePtr(st.Celsius)
		st.UpdatedAt = clonePtr(st.UpdatedAt)
		st.LastAlert = clonePtr(st.LastAlert)
		snap.Sensors = append(snap.Sensors, st)
	}
	return snap
}

// clonePtr copies a pointer field so snapshots never alias store state.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Calibrated implements Reporter.
func (s *Store) Calibrated(c Calibration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sensors[c.Sensor]
	if !ok {
		return
	}
	lower, upper := c.Pair.Lower, c.Pair.Upper
	st.LowerC = &lower
	st.UpperC = &upper
	st.TriggerArmed = c.Armed
}

// Reading implements Reporter.
func (s *Store) Reading(sensor string, celsius float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sensors[sensor]
	if !ok {
		return
	}
	v := celsius
	st.Celsius = &v
	st.LastError = ""
	st.UpdatedAt = now()
}

// ReadFailure implements Reporter.
func (s *Store) ReadFailure(sensor string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sensors[sensor]
	if !ok {
		return
	}
	st.LastError = err.Error()
	st.UpdatedAt = now()
}

// ActuatorState implements Reporter.
func (s *Store) ActuatorState(name string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.actuators[name]
	if !ok {
		return
	}
	st.On = on
	st.LastError = ""
	st.UpdatedAt = now()
}

// ToggleFailure implements Reporter.
func (s *Store) ToggleFailure(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.actuators[name]
	if !ok {
		return
	}
	st.LastError = err.Error()
	st.UpdatedAt = now()
}

// Alert implements Reporter.
func (s *Store) Alert(ev AlertEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sensors[ev.Sensor]
	if !ok {
		return
	}
	evCopy := ev
	st.LastAlert = &evCopy
}

// now returns the current time as a pointer for the UpdatedAt fields.
func now() *time.Time {
	t := time.Now().UTC()
	return &t
}
