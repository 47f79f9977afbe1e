// Package manifest loads the static hardware manifest for Gray Logic Edge.
//
// The manifest is the agent's equivalent of a devicetree: an ordered,
// compile-time-fixed description of the peripherals this unit carries.
// It is read exactly once at startup; the handle lists built from it are
// never mutated afterwards.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/gray-logic-edge/internal/device"
	"github.com/nerrad567/gray-logic-edge/internal/hal"
)

// Driver names accepted by the manifest.
const (
	// DriverSim backs the device with an in-memory simulation.
	DriverSim = "sim"

	// DriverGPIO backs an actuator with a Linux sysfs GPIO line.
	DriverGPIO = "gpio"

	// DriverThermal backs a sensor with a Linux thermal zone.
	DriverThermal = "thermal"
)

// roleTagThermometer is the manifest role tag marking a temperature
// source. Sensors named exactly "thermometer" are classified the same
// way even without the tag.
const roleTagThermometer = "thermometer"

// ErrInvalid is returned when the manifest cannot be converted into
// device handles (unknown driver, missing name, duplicate name). This is
// a startup I/O conversion failure and aborts the process.
var ErrInvalid = errors.New("manifest: invalid")

// File is the on-disk manifest structure.
type File struct {
	Actuators []ActuatorSpec `yaml:"actuators"`
	Sensors   []SensorSpec   `yaml:"sensors"`
}

// ActuatorSpec describes one binary output peripheral.
type ActuatorSpec struct {
	Name   string `yaml:"name"`
	Driver string `yaml:"driver"`

	// Line is the kernel GPIO line number (gpio driver only).
	Line int `yaml:"line,omitempty"`
}

// SensorSpec describes one sensor peripheral.
type SensorSpec struct {
	Name   string `yaml:"name"`
	Driver string `yaml:"driver"`

	// Role tags what the sensor measures; "thermometer" marks an
	// ambient temperature source.
	Role string `yaml:"role,omitempty"`

	// Zone is the thermal zone number (thermal driver only).
	Zone int `yaml:"zone,omitempty"`

	// Celsius is the initial simulated temperature (sim driver only).
	Celsius float64 `yaml:"celsius,omitempty"`
}

// Load reads and converts the manifest file.
//
// Returns:
//   - []device.ActuatorConfig: ordered actuator descriptors with handles
//   - []device.SensorConfig: ordered sensor descriptors with handles
//   - error: if the file cannot be read, parsed or converted
func Load(path string) ([]device.ActuatorConfig, []device.SensorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Parse converts raw manifest YAML into device descriptors.
func Parse(data []byte) ([]device.ActuatorConfig, []device.SensorConfig, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parsing manifest: %w", err)
	}

	seen := make(map[string]bool, len(f.Actuators)+len(f.Sensors))

	actuators := make([]device.ActuatorConfig, 0, len(f.Actuators))
	for i, spec := range f.Actuators {
		if err := checkName(seen, spec.Name, "actuator", i); err != nil {
			return nil, nil, err
		}
		out, err := buildOutput(spec)
		if err != nil {
			return nil, nil, err
		}
		actuators = append(actuators, device.ActuatorConfig{
			Name:   spec.Name,
			Output: out,
		})
	}

	sensors := make([]device.SensorConfig, 0, len(f.Sensors))
	for i, spec := range f.Sensors {
		if err := checkName(seen, spec.Name, "sensor", i); err != nil {
			return nil, nil, err
		}
		src, err := buildSource(spec)
		if err != nil {
			return nil, nil, err
		}
		sensors = append(sensors, device.SensorConfig{
			Name:   spec.Name,
			Role:   classify(spec),
			Source: src,
		})
	}

	return actuators, sensors, nil
}

// checkName enforces non-empty, unique device names across both lists.
func checkName(seen map[string]bool, name, kind string, index int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s %d has no name", ErrInvalid, kind, index)
	}
	if seen[name] {
		return fmt.Errorf("%w: duplicate device name %q", ErrInvalid, name)
	}
	seen[name] = true
	return nil
}

// buildOutput constructs the actuator handle for a spec.
func buildOutput(spec ActuatorSpec) (hal.BinaryOutput, error) {
	switch spec.Driver {
	case DriverSim:
		return hal.NewSimPin(), nil
	case DriverGPIO:
		return hal.NewGPIOPin(spec.Line), nil
	default:
		return nil, fmt.Errorf("%w: unknown actuator driver %q for %s", ErrInvalid, spec.Driver, spec.Name)
	}
}

// buildSource constructs the sensor handle for a spec.
func buildSource(spec SensorSpec) (hal.TemperatureSensor, error) {
	switch spec.Driver {
	case DriverSim:
		return hal.NewSimSensor(spec.Celsius), nil
	case DriverThermal:
		return hal.NewThermalZone(spec.Zone), nil
	default:
		return nil, fmt.Errorf("%w: unknown sensor driver %q for %s", ErrInvalid, spec.Driver, spec.Name)
	}
}

// classify maps the manifest role tag onto a device role. A sensor named
// "thermometer" counts as one even without the tag, matching how units
// in the field were provisioned before role tags existed.
func classify(spec SensorSpec) device.Role {
	if strings.EqualFold(spec.Role, roleTagThermometer) || spec.Name == roleTagThermometer {
		return device.RoleThermometer
	}
	return device.RoleOther
}
