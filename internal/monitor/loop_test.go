package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-edge/internal/device"
	"github.com/nerrad567/gray-logic-edge/internal/hal"
)

func testLoop(t *testing.T, reg *device.Registry, reporter *recordingReporter) (*Loop, *AlertQueue) {
	t.Helper()
	alerts := NewAlertQueue(4)
	loop, err := New(Deps{
		Registry:   reg,
		Alerts:     alerts,
		Dispatcher: NewDispatcher(reporter, testIOTimeout),
		Reporter:   reporter,
		Interval:   10 * time.Millisecond,
		IOTimeout:  testIOTimeout,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return loop, alerts
}

func TestNew_MissingDeps(t *testing.T) {
	reporter := newRecordingReporter()
	reg := device.NewRegistry(nil, nil)
	alerts := NewAlertQueue(1)
	dispatcher := NewDispatcher(reporter, testIOTimeout)

	tests := []struct {
		name string
		deps Deps
	}{
		{"no registry", Deps{Alerts: alerts, Dispatcher: dispatcher, Reporter: reporter, Interval: time.Second}},
		{"no alert queue", Deps{Registry: reg, Dispatcher: dispatcher, Reporter: reporter, Interval: time.Second}},
		{"no dispatcher", Deps{Registry: reg, Alerts: alerts, Reporter: reporter, Interval: time.Second}},
		{"no reporter", Deps{Registry: reg, Alerts: alerts, Dispatcher: dispatcher, Interval: time.Second}},
		{"zero interval", Deps{Registry: reg, Alerts: alerts, Dispatcher: dispatcher, Reporter: reporter}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.deps); err == nil {
				t.Error("New() error = nil, want error")
			}
		})
	}
}

func TestIterate_PollsAndToggles(t *testing.T) {
	sim := hal.NewSimSensor(21.2)
	pin := hal.NewSimPin()
	reg := device.NewRegistry(
		[]device.ActuatorConfig{{Name: "led0", Output: pin}},
		[]device.SensorConfig{{Name: "ambient", Role: device.RoleThermometer, Source: sim}},
	)
	reporter := newRecordingReporter()
	loop, _ := testLoop(t, reg, reporter)

	loop.iterate(context.Background())
	loop.iterate(context.Background())

	if got := reporter.readings["ambient"]; len(got) != 2 || got[0] != 21.2 {
		t.Errorf("readings = %v, want two 21.2 samples", got)
	}
	states := reporter.states["led0"]
	if len(states) != 2 || states[0] != true || states[1] != false {
		t.Errorf("actuator states = %v, want [true false]", states)
	}
	if pin.Level() {
		t.Error("pin level = true after an even number of toggles")
	}
}

func TestIterate_SensorFailureIsIsolated(t *testing.T) {
	broken := hal.NewSimSensor(0)
	broken.FailReads(true)
	healthy := hal.NewSimSensor(19.5)
	pin := hal.NewSimPin()
	reg := device.NewRegistry(
		[]device.ActuatorConfig{{Name: "led0", Output: pin}},
		[]device.SensorConfig{
			{Name: "dead", Role: device.RoleThermometer, Source: broken},
			{Name: "live", Role: device.RoleThermometer, Source: healthy},
		},
	)
	reporter := newRecordingReporter()
	loop, _ := testLoop(t, reg, reporter)

	loop.iterate(context.Background())

	if len(reporter.readFails) != 1 || reporter.readFails[0] != "dead" {
		t.Errorf("read failures = %v, want [dead]", reporter.readFails)
	}
	if got := reporter.readings["live"]; len(got) != 1 || got[0] != 19.5 {
		t.Errorf("live readings = %v, the healthy sensor should still be polled", got)
	}
	if len(reporter.states["led0"]) != 1 {
		t.Error("actuator was not toggled after a sensor failure")
	}
}

func TestIterate_ToggleFailureIsIsolated(t *testing.T) {
	brokenPin := hal.NewSimPin()
	brokenPin.FailWrites(true)
	goodPin := hal.NewSimPin()
	reg := device.NewRegistry(
		[]device.ActuatorConfig{
			{Name: "led0", Output: brokenPin},
			{Name: "led1", Output: goodPin},
		},
		nil,
	)
	reporter := newRecordingReporter()
	loop, _ := testLoop(t, reg, reporter)

	loop.iterate(context.Background())

	if len(reporter.toggleFails) != 1 || reporter.toggleFails[0] != "led0" {
		t.Errorf("toggle failures = %v, want [led0]", reporter.toggleFails)
	}
	if len(reporter.states["led1"]) != 1 {
		t.Error("led1 was not toggled after led0 failed")
	}
	if _, reported := reporter.states["led0"]; reported {
		t.Error("led0 reported a state despite the failed toggle")
	}
}

func TestIterate_DrainsAlerts(t *testing.T) {
	sim := hal.NewSimSensor(22.5)
	reg := device.NewRegistry(nil, []device.SensorConfig{
		{Name: "ambient", Role: device.RoleThermometer, Source: sim},
	})
	s := reg.Sensors()[0]
	s.StoreCalibration(device.ThresholdPair{Lower: 20.5, Upper: 21.5}, true)

	reporter := newRecordingReporter()
	loop, alerts := testLoop(t, reg, reporter)

	alerts.TriggerFor(s)()
	loop.iterate(context.Background())

	events := reporter.snapshotAlerts()
	if len(events) != 1 {
		t.Fatalf("alerts = %d, want 1", len(events))
	}
	if events[0].Direction != "above" {
		t.Errorf("Direction = %q, want above", events[0].Direction)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	sim := hal.NewSimSensor(21.0)
	reg := device.NewRegistry(nil, []device.SensorConfig{
		{Name: "ambient", Role: device.RoleThermometer, Source: sim},
	})
	reporter := newRecordingReporter()
	loop, _ := testLoop(t, reg, reporter)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v, want nil on cancellation", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancellation")
	}

	reporter.mu.Lock()
	samples := len(reporter.readings["ambient"])
	reporter.mu.Unlock()
	if samples == 0 {
		t.Error("no samples collected while running")
	}
}
