package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nerrad567/gray-logic-edge/internal/device"
)

const validManifest = `
actuators:
  - name: led0
    driver: sim
  - name: led1
    driver: gpio
    line: 17
sensors:
  - name: ambient
    driver: sim
    role: thermometer
    celsius: 21.5
  - name: cpu
    driver: thermal
    zone: 0
`

func TestParse_Valid(t *testing.T) {
	actuators, sensors, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(actuators) != 2 {
		t.Fatalf("actuators len = %d, want 2", len(actuators))
	}
	if actuators[0].Name != "led0" || actuators[1].Name != "led1" {
		t.Errorf("actuator order = %q, %q", actuators[0].Name, actuators[1].Name)
	}

	if len(sensors) != 2 {
		t.Fatalf("sensors len = %d, want 2", len(sensors))
	}
	if sensors[0].Role != device.RoleThermometer {
		t.Errorf("ambient role = %q, want thermometer", sensors[0].Role)
	}
	if sensors[1].Role != device.RoleOther {
		t.Errorf("cpu role = %q, want other", sensors[1].Role)
	}

	// The sim sensor carries its initial reading through.
	v, err := sensors[0].Source.Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if v != 21.5 {
		t.Errorf("sim sensor value = %v, want 21.5", v)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown actuator driver",
			yaml: "actuators:\n  - name: led0\n    driver: spi\n",
		},
		{
			name: "unknown sensor driver",
			yaml: "sensors:\n  - name: s0\n    driver: i2c\n",
		},
		{
			name: "empty actuator name",
			yaml: "actuators:\n  - name: \"\"\n    driver: sim\n",
		},
		{
			name: "duplicate name across lists",
			yaml: "actuators:\n  - name: dev\n    driver: sim\nsensors:\n  - name: dev\n    driver: sim\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, _, err := Parse([]byte("actuators: [unterminated"))
	if err == nil {
		t.Fatal("Parse() error = nil for malformed yaml")
	}
}

func TestClassify_ByName(t *testing.T) {
	_, sensors, err := Parse([]byte("sensors:\n  - name: thermometer\n    driver: sim\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if sensors[0].Role != device.RoleThermometer {
		t.Errorf("role = %q, want thermometer for a sensor named thermometer", sensors[0].Role)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte(validManifest), 0o600); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}

	actuators, sensors, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(actuators) != 2 || len(sensors) != 2 {
		t.Errorf("Load() lens = %d, %d, want 2, 2", len(actuators), len(sensors))
	}

	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() error = nil for a missing file")
	}
}
