package telemetry

import (
	"errors"
	"testing"

	"github.com/nerrad567/gray-logic-edge/internal/device"
	"github.com/nerrad567/gray-logic-edge/internal/hal"
)

func testRegistry(t *testing.T) *device.Registry {
	t.Helper()
	return device.NewRegistry(
		[]device.ActuatorConfig{
			{Name: "led0", Output: hal.NewSimPin()},
			{Name: "led1", Output: hal.NewSimPin()},
		},
		[]device.SensorConfig{
			{Name: "ambient", Role: device.RoleThermometer, Source: hal.NewSimSensor(21.0)},
		},
	)
}

func TestStore_SeedsFromRegistry(t *testing.T) {
	reg := testRegistry(t)
	reg.Sensors()[0].StoreCalibration(device.ThresholdPair{Lower: 21.5, Upper: 22.5}, true)

	store := NewStore(reg)
	snap := store.Snapshot()

	if len(snap.Actuators) != 2 || len(snap.Sensors) != 1 {
		t.Fatalf("snapshot = %d actuators, %d sensors", len(snap.Actuators), len(snap.Sensors))
	}
	if snap.Actuators[0].Name != "led0" || snap.Actuators[1].Name != "led1" {
		t.Errorf("actuator order = %q, %q", snap.Actuators[0].Name, snap.Actuators[1].Name)
	}

	s := snap.Sensors[0]
	if s.Name != "ambient" || s.Role != "thermometer" {
		t.Errorf("sensor = %+v", s)
	}
	if !s.TriggerArmed {
		t.Error("TriggerArmed = false, want true from the seeded calibration")
	}
	if s.LowerC == nil || *s.LowerC != 21.5 || s.UpperC == nil || *s.UpperC != 22.5 {
		t.Errorf("bounds = %v/%v, want 21.5/22.5", s.LowerC, s.UpperC)
	}
	if s.Celsius != nil {
		t.Error("Celsius set before any reading arrived")
	}
}

func TestStore_ReadingAndFailure(t *testing.T) {
	store := NewStore(testRegistry(t))

	store.Reading("ambient", 21.7)
	s := store.Snapshot().Sensors[0]
	if s.Celsius == nil || *s.Celsius != 21.7 {
		t.Fatalf("Celsius = %v, want 21.7", s.Celsius)
	}
	if s.UpdatedAt == nil {
		t.Error("UpdatedAt not set after a reading")
	}

	store.ReadFailure("ambient", errors.New("sensor timeout"))
	s = store.Snapshot().Sensors[0]
	if s.LastError != "sensor timeout" {
		t.Errorf("LastError = %q", s.LastError)
	}
	// The last good value survives a failure.
	if s.Celsius == nil || *s.Celsius != 21.7 {
		t.Errorf("Celsius = %v after failure, want 21.7 retained", s.Celsius)
	}

	store.Reading("ambient", 21.8)
	s = store.Snapshot().Sensors[0]
	if s.LastError != "" {
		t.Errorf("LastError = %q, want cleared by the next good reading", s.LastError)
	}
}

func TestStore_ActuatorState(t *testing.T) {
	store := NewStore(testRegistry(t))

	store.ActuatorState("led0", true)
	store.ToggleFailure("led1", errors.New("gpio write failed"))

	snap := store.Snapshot()
	if !snap.Actuators[0].On {
		t.Error("led0 On = false, want true")
	}
	if snap.Actuators[1].LastError != "gpio write failed" {
		t.Errorf("led1 LastError = %q", snap.Actuators[1].LastError)
	}
}

func TestStore_AlertAndUnknownDevices(t *testing.T) {
	store := NewStore(testRegistry(t))

	ev := AlertEvent{ID: "ev-1", Sensor: "ambient", Direction: DirectionAbove, Celsius: 23.0}
	store.Alert(ev)

	s := store.Snapshot().Sensors[0]
	if s.LastAlert == nil || s.LastAlert.ID != "ev-1" || s.LastAlert.Direction != DirectionAbove {
		t.Errorf("LastAlert = %+v", s.LastAlert)
	}

	// Events for unknown devices are ignored, not panics.
	store.Reading("ghost", 1.0)
	store.ActuatorState("ghost", true)
	store.Alert(AlertEvent{Sensor: "ghost"})
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := NewStore(testRegistry(t))
	store.Reading("ambient", 20.0)

	snap := store.Snapshot()
	snap.Sensors[0].LastError = "mutated"
	*snap.Sensors[0].Celsius = 99.0

	fresh := store.Snapshot().Sensors[0]
	if fresh.LastError == "mutated" {
		t.Error("snapshot mutation leaked into the store")
	}
}
