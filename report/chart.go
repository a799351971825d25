package report

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"balltracker/types"
)

// Render writes an HTML page with an event timeline (quadrant over time per
// color) and the total dwell time per quadrant.
func Render(w io.Writer, title string, events []types.Event, summaries []ColorSummary, labels []int, duration float64) error {
	timeline := charts.NewScatter()
	timeline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1000px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Quadrant transitions", Subtitle: fmt.Sprintf("%s events=%d duration=%.2fs", title, len(events), duration)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: duration, Name: "time (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: len(labels), Name: "quadrant", NameLocation: "middle", NameGap: 30}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	for _, s := range summaries {
		var entries, exits []opts.ScatterData
		for _, e := range events {
			if e.Color != s.Color {
				continue
			}
			pt := opts.ScatterData{Value: []interface{}{e.Timestamp, e.Quadrant}}
			if e.Action == types.Entry {
				entries = append(entries, pt)
			} else {
				exits = append(exits, pt)
			}
		}
		timeline.AddSeries(s.Color+" entry", entries, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))
		timeline.AddSeries(s.Color+" exit", exits, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	}

	x := make([]string, len(labels))
	for i, q := range labels {
		x[i] = fmt.Sprintf("Q%d", q)
	}
	dwell := charts.NewBar()
	dwell.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1000px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Dwell time per quadrant (s)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	dwell.SetXAxis(x)
	for _, s := range summaries {
		y := make([]opts.BarData, len(s.Quadrants))
		for i, qs := range s.Quadrants {
			y[i] = opts.BarData{Value: math.Round(qs.Total*100) / 100}
		}
		dwell.AddSeries(s.Color, y)
	}

	page := components.NewPage()
	page.AddCharts(timeline, dwell)
	return page.Render(w)
}

// WriteFile renders the report into an HTML file
func WriteFile(path, title string, events []types.Event, summaries []ColorSummary, labels []int, duration float64) error {
	var buf bytes.Buffer
	if err := Render(&buf, title, events, summaries, labels, duration); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
