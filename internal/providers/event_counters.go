package providers

import "go.uber.org/atomic"

// EventCounters holds process-lifetime totals of handled platform events.
// The tracker increments them; the metrics provider exports them as gauges.
type EventCounters struct {
	Messages atomic.Int64
	Roles    atomic.Int64
	Joins    atomic.Int64
}

func NewEventCounters() *EventCounters {
	return &EventCounters{}
}
