// Package report summarizes a run's events into per-color dwell statistics
// and renders them as an HTML chart.
package report

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"balltracker/quadrant"
	"balltracker/types"
)

// QuadrantStats describes the visits of one color to one quadrant.
// A visit still open when the video ends is closed at the video duration.
type QuadrantStats struct {
	Quadrant int
	Entries  int
	Exits    int
	Dwells   []float64 // seconds per visit, in visit order
	Total    float64
	Mean     float64
	StdDev   float64
	Max      float64
}

// ColorSummary collects the quadrant statistics of one color
type ColorSummary struct {
	Color     string
	Entries   int
	Exits     int
	Quadrants []QuadrantStats // ordered by label
}

type visit struct {
	quadrant int
	start    float64
}

// Summarize derives per-color, per-quadrant statistics from an ordered event
// list. colors and labels fix the output order; duration is the stream
// length in seconds.
func Summarize(events []types.Event, colors []string, labels []int, duration float64) []ColorSummary {
	dwells := make(map[string]map[int][]float64, len(colors))
	entries := make(map[string]map[int]int, len(colors))
	exits := make(map[string]map[int]int, len(colors))
	open := make(map[string]visit, len(colors))
	for _, c := range colors {
		dwells[c] = make(map[int][]float64)
		entries[c] = make(map[int]int)
		exits[c] = make(map[int]int)
	}

	for _, e := range events {
		if _, ok := dwells[e.Color]; !ok {
			continue
		}
		switch e.Action {
		case types.Entry:
			entries[e.Color][e.Quadrant]++
			open[e.Color] = visit{quadrant: e.Quadrant, start: e.Timestamp}
		case types.Exit:
			exits[e.Color][e.Quadrant]++
			if v, ok := open[e.Color]; ok && v.quadrant == e.Quadrant {
				dwells[e.Color][e.Quadrant] = append(dwells[e.Color][e.Quadrant], e.Timestamp-v.start)
				delete(open, e.Color)
			}
		}
	}
	for c, v := range open {
		if v.quadrant != quadrant.None && duration >= v.start {
			dwells[c][v.quadrant] = append(dwells[c][v.quadrant], duration-v.start)
		}
	}

	summaries := make([]ColorSummary, 0, len(colors))
	for _, c := range colors {
		s := ColorSummary{Color: c}
		for _, q := range labels {
			qs := QuadrantStats{
				Quadrant: q,
				Entries:  entries[c][q],
				Exits:    exits[c][q],
				Dwells:   dwells[c][q],
			}
			if len(qs.Dwells) > 0 {
				qs.Total = floats.Sum(qs.Dwells)
				qs.Max = floats.Max(qs.Dwells)
				qs.Mean = stat.Mean(qs.Dwells, nil)
				if len(qs.Dwells) > 1 {
					qs.StdDev = stat.StdDev(qs.Dwells, nil)
				}
			}
			s.Entries += qs.Entries
			s.Exits += qs.Exits
			s.Quadrants = append(s.Quadrants, qs)
		}
		summaries = append(summaries, s)
	}
	return summaries
}
