// Package eventlog records quadrant transitions in the order they happen and
// writes them out once processing ends.
package eventlog

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"balltracker/types"
)

// Log is an append-only, ordered sequence of events
type Log struct {
	events []types.Event
}

// New creates an empty log
func New() *Log {
	return &Log{}
}

// Append adds events in order
func (l *Log) Append(events ...types.Event) {
	l.events = append(l.events, events...)
}

// Len returns the number of recorded events
func (l *Log) Len() int {
	return len(l.events)
}

// Events returns a copy of the recorded events
func (l *Log) Events() []types.Event {
	out := make([]types.Event, len(l.events))
	copy(out, l.events)
	return out
}

// Format renders one event as "<timestamp>, <quadrant>, <color>, <action>"
// with the timestamp at two decimal places.
func Format(e types.Event) string {
	return fmt.Sprintf("%.2f, %d, %s, %s", e.Timestamp, e.Quadrant, e.Color, e.Action)
}

// WriteTo writes one line per event in append order
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, e := range l.events {
		written, err := bw.WriteString(Format(e) + "\n")
		n += int64(written)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// WriteFile writes the log to path, replacing any existing file
func (l *Log) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create event log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing event log: %w", cerr)
		}
	}()

	if _, err := l.WriteTo(f); err != nil {
		return fmt.Errorf("error writing event log: %w", err)
	}
	return nil
}
