package ecs

// EventType names a kind of event.
type EventType string

const (
	EventJump         EventType = "jump"
	EventLanded       EventType = "landed"
	EventResetStarted EventType = "camera_reset_started"
	EventResetDone    EventType = "camera_reset_done"
	EventSpecReloaded EventType = "spec_reloaded"
)

// Event is a tick-scoped message between systems.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a FIFO cleared at the end of every scheduler tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Take removes and returns the events of type t, keeping the rest in order.
func (q *EventQueue) Take(t EventType) []Event {
	if q == nil {
		return nil
	}
	var taken []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == t {
			taken = append(taken, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return taken
}

// All returns a copy of every queued event.
func (q *EventQueue) All() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	return append([]Event(nil), q.items...)
}

// Peek reports queued events of type t without consuming them.
func (q *EventQueue) Peek(t EventType) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
