package monitor

import (
	"testing"

	"github.com/nerrad567/gray-logic-edge/internal/device"
	"github.com/nerrad567/gray-logic-edge/internal/hal"
)

func TestAlertQueue_DeliverAndDrain(t *testing.T) {
	q := NewAlertQueue(2)
	a := sensorFor("a", hal.NewSimSensor(0))
	b := sensorFor("b", hal.NewSimSensor(0))

	q.TriggerFor(a)()
	q.TriggerFor(b)()

	var drained []string
	q.Drain(func(s *device.Sensor) { drained = append(drained, s.Name) })

	if len(drained) != 2 || drained[0] != "a" || drained[1] != "b" {
		t.Errorf("drained = %v, want [a b]", drained)
	}

	// A second drain finds nothing and does not block.
	q.Drain(func(*device.Sensor) { t.Error("unexpected notification") })
}

func TestAlertQueue_DropsWhenFull(t *testing.T) {
	q := NewAlertQueue(1)
	s := sensorFor("a", hal.NewSimSensor(0))
	fire := q.TriggerFor(s)

	fire()
	fire() // queue full, dropped without blocking
	fire()

	count := 0
	q.Drain(func(*device.Sensor) { count++ })
	if count != 1 {
		t.Errorf("drained %d notifications, want 1", count)
	}
}

func TestNewAlertQueue_MinimumCapacity(t *testing.T) {
	q := NewAlertQueue(0)
	s := sensorFor("a", hal.NewSimSensor(0))

	q.TriggerFor(s)()

	count := 0
	q.Drain(func(*device.Sensor) { count++ })
	if count != 1 {
		t.Errorf("drained %d notifications, want 1", count)
	}
}
