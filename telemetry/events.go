// Package telemetry provides session event tracking, windowed stats, perf
// timing and CSV output.
package telemetry

import "github.com/pthm-cable/phage/components"

// EventType identifies simulation events.
type EventType uint8

const (
	EventBacteriumSpawned EventType = iota
	EventBacteriumLysed
	EventHelperSpawned
	EventInjectionStarted
	EventInjectionRejected
	EventInjectionAborted
	EventSessionEnded
)

// String returns the snake_case name of the event type.
func (t EventType) String() string {
	switch t {
	case EventBacteriumSpawned:
		return "bacterium_spawned"
	case EventBacteriumLysed:
		return "bacterium_lysed"
	case EventHelperSpawned:
		return "helper_spawned"
	case EventInjectionStarted:
		return "injection_started"
	case EventInjectionRejected:
		return "injection_rejected"
	case EventInjectionAborted:
		return "injection_aborted"
	case EventSessionEnded:
		return "session_ended"
	}
	return "unknown"
}

// Cause identifies who lysed a bacterium.
type Cause uint8

const (
	CausePlayer Cause = iota
	CauseStriker
)

// String returns the display name for a Cause.
func (c Cause) String() string {
	if c == CauseStriker {
		return "striker"
	}
	return "player"
}

// Event is a discrete, presentation-facing record of something that happened
// during a tick.
type Event struct {
	Type EventType
	Time float64 // session seconds
	X, Y float64

	// Optional fields depending on event type
	Cause  Cause           // lysis
	Role   components.Role // helper spawn
	Amount float64         // injection duration (started) or distance (rejected)
	Won    bool            // session end
}

// NewBacteriumSpawnedEvent creates a bacterium spawn event.
func NewBacteriumSpawnedEvent(t, x, y float64) Event {
	return Event{Type: EventBacteriumSpawned, Time: t, X: x, Y: y}
}

// NewLysisEvent creates a lysis event at the bacterium's last position.
func NewLysisEvent(t, x, y float64, cause Cause) Event {
	return Event{Type: EventBacteriumLysed, Time: t, X: x, Y: y, Cause: cause}
}

// NewHelperSpawnedEvent creates a helper spawn event.
func NewHelperSpawnedEvent(t, x, y float64, role components.Role) Event {
	return Event{Type: EventHelperSpawned, Time: t, X: x, Y: y, Role: role}
}

// NewInjectionStartedEvent creates an injection start event at the target.
func NewInjectionStartedEvent(t, x, y, duration float64) Event {
	return Event{Type: EventInjectionStarted, Time: t, X: x, Y: y, Amount: duration}
}

// NewInjectionRejectedEvent creates an out-of-range attach event at the
// candidate bacterium.
func NewInjectionRejectedEvent(t, x, y, distance float64) Event {
	return Event{Type: EventInjectionRejected, Time: t, X: x, Y: y, Amount: distance}
}

// NewInjectionAbortedEvent creates an injection abort event.
func NewInjectionAbortedEvent(t, x, y float64) Event {
	return Event{Type: EventInjectionAborted, Time: t, X: x, Y: y}
}

// NewSessionEndedEvent creates a session end event.
func NewSessionEndedEvent(t float64, won bool) Event {
	return Event{Type: EventSessionEnded, Time: t, Won: won}
}
