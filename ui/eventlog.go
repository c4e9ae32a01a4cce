package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/phage/telemetry"
)

// EventLog keeps the most recent simulation events for display.
type EventLog struct {
	renderer *Renderer
	entries  []telemetry.Event
	capacity int
	x, y     int32
	width    int32
}

// NewEventLog creates a log panel holding up to capacity events.
func NewEventLog(x, y, width int32, capacity int) *EventLog {
	return &EventLog{
		renderer: NewRenderer(),
		entries:  make([]telemetry.Event, 0, capacity),
		capacity: capacity,
		x:        x,
		y:        y,
		width:    width,
	}
}

// Append records the events of one tick, dropping the oldest beyond capacity.
// Bacterium spawns are too frequent to be useful and are skipped.
func (l *EventLog) Append(events []telemetry.Event) {
	for _, ev := range events {
		if ev.Type != telemetry.EventBacteriumSpawned {
			l.entries = append(l.entries, ev)
		}
	}
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append(l.entries[:0], l.entries[over:]...)
	}
}

// Clear empties the log.
func (l *EventLog) Clear() {
	l.entries = l.entries[:0]
}

// Draw renders the log, newest first.
func (l *EventLog) Draw() {
	r := l.renderer
	padding := r.Theme.Padding
	lineHeight := int32(14)

	height := int32(l.capacity)*lineHeight + padding*2 + 20
	r.DrawPanel(l.x, l.y, l.width, height)

	y := l.y + padding
	rl.DrawText("Events", l.x+padding, y, 14, rl.White)
	y += 20

	for i := len(l.entries) - 1; i >= 0; i-- {
		ev := l.entries[i]
		rl.DrawText(fmt.Sprintf("%7.2fs  %s", ev.Time, describeEvent(ev)), l.x+padding, y, 12, eventColor(ev))
		y += lineHeight
	}
}

func describeEvent(ev telemetry.Event) string {
	switch ev.Type {
	case telemetry.EventBacteriumLysed:
		return "lysed by " + ev.Cause.String()
	case telemetry.EventHelperSpawned:
		return ev.Role.String() + " released"
	case telemetry.EventInjectionStarted:
		return fmt.Sprintf("injecting (%.2fs)", ev.Amount)
	case telemetry.EventInjectionRejected:
		return fmt.Sprintf("out of range (%.0f)", ev.Amount)
	case telemetry.EventSessionEnded:
		if ev.Won {
			return "dish cleared"
		}
		return "culture overran"
	}
	return ev.Type.String()
}

func eventColor(ev telemetry.Event) rl.Color {
	switch ev.Type {
	case telemetry.EventBacteriumLysed:
		if ev.Cause == telemetry.CauseStriker {
			return rl.Orange
		}
		return rl.Green
	case telemetry.EventInjectionRejected, telemetry.EventInjectionAborted:
		return rl.Red
	}
	return rl.LightGray
}
