package ui

import (
	"balltracker/eventlog"
	"balltracker/types"
)

// EventFeed keeps the most recent event lines for the on-frame overlay
type EventFeed struct {
	maxLines int
	lines    []string
}

// NewEventFeed creates a feed holding at most maxLines lines
func NewEventFeed(maxLines int) *EventFeed {
	return &EventFeed{maxLines: maxLines}
}

// Add appends events, dropping the oldest lines past the limit
func (f *EventFeed) Add(events ...types.Event) {
	if f.maxLines <= 0 {
		return
	}
	for _, e := range events {
		f.lines = append(f.lines, eventlog.Format(e))
	}
	if over := len(f.lines) - f.maxLines; over > 0 {
		f.lines = append(f.lines[:0], f.lines[over:]...)
	}
}

// Lines returns a copy of the current lines, oldest first
func (f *EventFeed) Lines() []string {
	lines := make([]string, len(f.lines))
	copy(lines, f.lines)
	return lines
}
