package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"balltracker/config"
	"balltracker/eventlog"
	"balltracker/pipeline"
	"balltracker/quadrant"
	"balltracker/report"
	"balltracker/types"
)

var (
	inputPath   = flag.String("input", "", "Input video file (or camera index) (required)")
	outputVideo = flag.String("output-video", "output_video.avi", "Annotated output video path")
	outputLog   = flag.String("output-events", "output_events.txt", "Event log output path")
	configPath  = flag.String("config", "", "JSON configuration file (defaults to the built-in red/yellow/white/green setup)")
	dbPath      = flag.String("db", "", "Optional SQLite database to store the run and its events")
	reportPath  = flag.String("report", "", "Optional HTML report path (event timeline and dwell times)")
	debugMode   = flag.Bool("debug", false, "Log every detection and event")
	showFeed    = flag.Bool("feed", false, "Draw the most recent events on each output frame")
)

func main() {
	flag.Parse()
	if *inputPath == "" {
		fmt.Println("Usage: balltracker -input <video file or camera ID> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := types.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.Debug = cfg.Debug || *debugMode
	cfg.UI.ShowFeed = cfg.UI.ShowFeed || *showFeed

	started := time.Now()
	result, err := pipeline.Run(cfg, pipeline.Paths{
		Input:       *inputPath,
		OutputVideo: *outputVideo,
		OutputLog:   *outputLog,
	})
	if err != nil {
		return err
	}

	labels := gridLabels(cfg, result)
	summaries := report.Summarize(result.Log.Events(), cfg.ColorNames(), labels, result.Duration())
	printSummary(summaries)

	if *dbPath != "" {
		if err := storeRun(*dbPath, result, started); err != nil {
			return err
		}
	}

	if *reportPath != "" {
		if err := report.WriteFile(*reportPath, *inputPath, result.Log.Events(), summaries, labels, result.Duration()); err != nil {
			return err
		}
		log.Printf("Report written to %s", *reportPath)
	}
	return nil
}

func gridLabels(cfg types.Config, result *pipeline.Result) []int {
	grid, err := quadrant.NewGrid(result.Width, result.Height, cfg.Grid.Cols, cfg.Grid.Rows)
	if err != nil {
		// no frames were read; fall back to the configured label count
		labels := make([]int, cfg.Grid.Cols*cfg.Grid.Rows)
		for i := range labels {
			labels[i] = i + 1
		}
		return labels
	}
	return grid.Labels()
}

func storeRun(path string, result *pipeline.Result, started time.Time) error {
	store, err := eventlog.OpenStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	run := &eventlog.Run{
		RunID:     result.RunID,
		Input:     *inputPath,
		FPS:       result.FPS,
		Width:     result.Width,
		Height:    result.Height,
		Frames:    result.Frames,
		StartedAt: started,
	}
	if err := store.SaveRun(run, result.Log.Events()); err != nil {
		return err
	}
	log.Printf("Run %s stored in %s", run.RunID, path)
	return nil
}

func printSummary(summaries []report.ColorSummary) {
	fmt.Println("Summary:")
	for _, s := range summaries {
		fmt.Printf("- %s: %d entries, %d exits\n", s.Color, s.Entries, s.Exits)
		for _, qs := range s.Quadrants {
			if len(qs.Dwells) == 0 {
				continue
			}
			fmt.Printf("    Q%d: %d visits, total %.2fs, mean %.2fs, max %.2fs\n",
				qs.Quadrant, len(qs.Dwells), qs.Total, qs.Mean, qs.Max)
		}
	}
}
