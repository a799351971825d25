package tracking

import (
	"balltracker/quadrant"
	"balltracker/types"
)

// Tracker holds the last known quadrant of every tracked color and turns
// per-frame classifications into Entry/Exit events.
type Tracker struct {
	colors []string
	last   map[string]int
}

// NewTracker creates a tracker with every color in quadrant.None
func NewTracker(colors []string) *Tracker {
	t := &Tracker{
		colors: append([]string(nil), colors...),
		last:   make(map[string]int, len(colors)),
	}
	t.Reset()
	return t
}

// Reset puts every color back into quadrant.None
func (t *Tracker) Reset() {
	for _, c := range t.colors {
		t.last[c] = quadrant.None
	}
}

// Last returns the last recorded quadrant for a color
func (t *Tracker) Last(color string) int {
	return t.last[color]
}

// State returns a copy of the per-color state
func (t *Tracker) State() map[string]int {
	state := make(map[string]int, len(t.last))
	for c, q := range t.last {
		state[c] = q
	}
	return state
}

// Update records the current classification for a color and returns the
// events it causes: an Exit from the previous quadrant, then an Entry into
// the new one, both stamped with the current frame's timestamp. Pass
// quadrant.None when the color was not detected this frame.
func (t *Tracker) Update(color string, current int, timestamp float64) []types.Event {
	last := t.last[color]
	if current == last {
		return nil
	}

	var events []types.Event
	if last != quadrant.None {
		events = append(events, types.Event{Timestamp: timestamp, Quadrant: last, Color: color, Action: types.Exit})
	}
	if current != quadrant.None {
		events = append(events, types.Event{Timestamp: timestamp, Quadrant: current, Color: color, Action: types.Entry})
	}
	t.last[color] = current
	return events
}

// Timestamp converts a frame index into seconds. fps is used as reported
// by the source, fractional rates such as 29.97 are not truncated.
func Timestamp(frameIndex int, fps float64) float64 {
	return float64(frameIndex) / fps
}
