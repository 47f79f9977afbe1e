package monitor

import (
	"context"
	"testing"

	"github.com/nerrad567/gray-logic-edge/internal/device"
	"github.com/nerrad567/gray-logic-edge/internal/hal"
	"github.com/nerrad567/gray-logic-edge/internal/telemetry"
)

func TestHandleAlert_Classification(t *testing.T) {
	// Bounds from a 20.0 baseline: lower 20.5, upper 21.5.
	tests := []struct {
		name    string
		celsius float64
		want    telemetry.Direction
	}{
		{"below lower bound", 20.3, telemetry.DirectionBelow},
		{"exactly at lower bound", 20.5, telemetry.DirectionBelow},
		{"above upper bound", 21.6, telemetry.DirectionAbove},
		{"exactly at upper bound", 21.5, telemetry.DirectionAbove},
		{"inside bounds", 21.0, telemetry.DirectionInconsistent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := hal.NewSimSensor(tt.celsius)
			s := sensorFor("ambient", sim)
			s.StoreCalibration(device.ThresholdPair{Lower: 20.5, Upper: 21.5}, true)

			reporter := newRecordingReporter()
			d := NewDispatcher(reporter, testIOTimeout)
			d.HandleAlert(context.Background(), s)

			alerts := reporter.snapshotAlerts()
			if len(alerts) != 1 {
				t.Fatalf("alerts = %d, want 1", len(alerts))
			}
			ev := alerts[0]
			if ev.Direction != tt.want {
				t.Errorf("Direction = %q, want %q", ev.Direction, tt.want)
			}
			if ev.Sensor != "ambient" || ev.Celsius != tt.celsius {
				t.Errorf("event = %+v", ev)
			}
			if ev.Lower != 20.5 || ev.Upper != 21.5 {
				t.Errorf("event bounds = %v/%v, want 20.5/21.5", ev.Lower, ev.Upper)
			}
			if ev.ID == "" {
				t.Error("event ID is empty")
			}
		})
	}
}

func TestHandleAlert_ReadFailure(t *testing.T) {
	sim := hal.NewSimSensor(21.0)
	sim.FailReads(true)
	s := sensorFor("ambient", sim)
	s.StoreCalibration(device.ThresholdPair{Lower: 20.5, Upper: 21.5}, true)

	reporter := newRecordingReporter()
	d := NewDispatcher(reporter, testIOTimeout)
	d.HandleAlert(context.Background(), s)

	if len(reporter.snapshotAlerts()) != 0 {
		t.Error("alert emitted despite a failed read")
	}
	if len(reporter.readFails) != 1 || reporter.readFails[0] != "ambient" {
		t.Errorf("read failures = %v, want [ambient]", reporter.readFails)
	}
}

func TestHandleAlert_DistinctEventIDs(t *testing.T) {
	sim := hal.NewSimSensor(22.0)
	s := sensorFor("ambient", sim)
	s.StoreCalibration(device.ThresholdPair{Lower: 20.5, Upper: 21.5}, true)

	reporter := newRecordingReporter()
	d := NewDispatcher(reporter, testIOTimeout)
	d.HandleAlert(context.Background(), s)
	d.HandleAlert(context.Background(), s)

	alerts := reporter.snapshotAlerts()
	if len(alerts) != 2 {
		t.Fatalf("alerts = %d, want 2", len(alerts))
	}
	if alerts[0].ID == alerts[1].ID {
		t.Error("consecutive events share an ID")
	}
}
