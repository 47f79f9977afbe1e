package monitor

import (
	"github.com/nerrad567/gray-logic-edge/internal/device"
	"github.com/nerrad567/gray-logic-edge/internal/hal"
)

// AlertQueue carries threshold-crossing notifications from driver
// trigger context to the monitor loop.
//
// Triggers are edge-triggered with no queuing guarantee: the send is
// non-blocking and a full queue drops the notification. That is
// acceptable because a crossing the queue missed is either still
// observable on the next drain (the condition persists and the driver
// fires again) or no longer true (nothing worth reporting).
type AlertQueue struct {
	ch chan *device.Sensor
}

// NewAlertQueue creates a queue with room for one pending notification
// per armed sensor.
func NewAlertQueue(capacity int) *AlertQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &AlertQueue{
		ch: make(chan *device.Sensor, capacity),
	}
}

// TriggerFor returns the TriggerFunc to register on a sensor. The
// returned function is safe to call from any goroutine and never blocks.
func (q *AlertQueue) TriggerFor(s *device.Sensor) hal.TriggerFunc {
	return func() {
		select {
		case q.ch <- s:
		default:
			// Queue full; the crossing will be re-observed or is stale.
		}
	}
}

// Drain delivers every pending notification to fn and returns. It never
// blocks waiting for new notifications.
func (q *AlertQueue) Drain(fn func(*device.Sensor)) {
	for {
		select {
		case s := <-q.ch:
			fn(s)
		default:
			return
		}
	}
}
