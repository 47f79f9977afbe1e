package device

import (
	"fmt"

	"github.com/nerrad567/gray-logic-edge/internal/hal"
)

// ActuatorConfig describes one actuator from the hardware manifest.
type ActuatorConfig struct {
	Name   string
	Output hal.BinaryOutput
}

// SensorConfig describes one sensor from the hardware manifest.
type SensorConfig struct {
	Name   string
	Role   Role
	Source hal.TemperatureSensor
}

// Registry is the immutable, process-wide list of peripheral records.
//
// All device records are allocated up front by NewRegistry and referenced
// by stable pointers for the lifetime of the process. The slices returned
// by the accessors share backing storage with the registry and must not
// be modified.
type Registry struct {
	actuators    []*Actuator
	sensors      []*Sensor
	thermometers []*Sensor
}

// NewRegistry builds the registry from manifest-derived descriptors.
// The descriptor order is preserved; it drives reporting order in the
// monitor loop.
func NewRegistry(actuators []ActuatorConfig, sensors []SensorConfig) *Registry {
	r := &Registry{
		actuators: make([]*Actuator, 0, len(actuators)),
		sensors:   make([]*Sensor, 0, len(sensors)),
	}

	for _, cfg := range actuators {
		r.actuators = append(r.actuators, &Actuator{
			Name: cfg.Name,
			out:  cfg.Output,
		})
	}

	for _, cfg := range sensors {
		role := cfg.Role
		if role == "" {
			role = RoleOther
		}
		s := &Sensor{
			Name: cfg.Name,
			Role: role,
			src:  cfg.Source,
		}
		r.sensors = append(r.sensors, s)
		if s.IsThermometer() {
			r.thermometers = append(r.thermometers, s)
		}
	}

	return r
}

// Actuators returns all actuator records in manifest order.
func (r *Registry) Actuators() []*Actuator {
	return r.actuators
}

// Sensors returns all sensor records in manifest order.
func (r *Registry) Sensors() []*Sensor {
	return r.sensors
}

// Thermometers returns the sensors classified as temperature sources,
// in manifest order.
func (r *Registry) Thermometers() []*Sensor {
	return r.thermometers
}

// Validate confirms every registered handle is operable. It must run
// exactly once, before any other operation; later components assume
// readiness.
//
// Returns:
//   - error: ErrNotReady wrapped with the first failing device name,
//     or nil when every handle is ready
func (r *Registry) Validate() error {
	for _, a := range r.actuators {
		if !a.Ready() {
			return fmt.Errorf("actuator %s: %w", a.Name, ErrNotReady)
		}
	}
	for _, s := range r.sensors {
		if !s.Ready() {
			return fmt.Errorf("sensor %s: %w", s.Name, ErrNotReady)
		}
	}
	return nil
}
