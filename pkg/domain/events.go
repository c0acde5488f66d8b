package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart   EventType = "run_start"
	EventStateEnter EventType = "state_enter"
	EventStateLeave EventType = "state_leave"
	EventTick       EventType = "tick"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Type    EventType     `json:"type"`
	RunID   string        `json:"run_id"`
	Elapsed time.Duration `json:"elapsed"` // host-supplied run time of the tick that produced the event
}

// RunEvent marks the (re)start of a run.
type RunEvent struct {
	EventBase
	Config Config `json:"config"`
}

// StateEvent represents entry into or exit from a state.
type StateEvent struct {
	EventBase
	State State `json:"state"`
	// Peer is the state being left (on enter) or entered (on leave).
	Peer State `json:"peer"`
	// Dwell is how long State was current. Zero on enter.
	Dwell time.Duration `json:"dwell,omitempty"`
}

// TickEvent is emitted after every tick, once commands have been applied.
type TickEvent struct {
	EventBase
	State    State    `json:"state"`
	Readings Readings `json:"readings"`
	Commands Commands `json:"commands"`
}

// LifecycleHooks defines callbacks for controller observability.
// Hooks run synchronously on the tick and must return promptly.
type LifecycleHooks struct {
	OnRunStart   func(*RunEvent)
	OnStateEnter func(*StateEvent)
	OnStateLeave func(*StateEvent)
	OnTick       func(*TickEvent)
}

// Merge returns hooks that call h first and then other, for every callback.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart:   chain(h.OnRunStart, other.OnRunStart),
		OnStateEnter: chain(h.OnStateEnter, other.OnStateEnter),
		OnStateLeave: chain(h.OnStateLeave, other.OnStateLeave),
		OnTick:       chain(h.OnTick, other.OnTick),
	}
}

func chain[E any](a, b func(E)) func(E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}
