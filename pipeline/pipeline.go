// Package pipeline runs the per-frame detection and transition loop over a
// video and collects the resulting event log.
package pipeline

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"balltracker/blob"
	"balltracker/config"
	"balltracker/eventlog"
	"balltracker/input"
	"balltracker/quadrant"
	"balltracker/recording"
	"balltracker/segment"
	"balltracker/tracking"
	"balltracker/types"
	"balltracker/ui"
)

// FrameSource delivers frames until it returns false
type FrameSource interface {
	Read(frame *gocv.Mat) bool
	Close() error
}

// FrameSink receives annotated frames
type FrameSink interface {
	Write(frame gocv.Mat) error
	Close() error
}

// SinkFactory opens the output once the frame size is known
type SinkFactory func(fps float64, width, height int) (FrameSink, error)

// Paths holds the run's input and output locations
type Paths struct {
	Input       string
	OutputVideo string
	OutputLog   string
}

// Result summarizes a finished run
type Result struct {
	RunID  string
	FPS    float64
	Width  int
	Height int
	Frames int
	Log    *eventlog.Log
}

// Duration returns the processed stream time in seconds
func (r *Result) Duration() float64 {
	return tracking.Timestamp(r.Frames, r.FPS)
}

// Processor applies segmentation, blob location, quadrant classification
// and transition tracking to one frame at a time.
type Processor struct {
	config    types.Config
	fps       float64
	segmenter *segment.Segmenter
	locator   blob.Locator
	grid      quadrant.Grid
	tracker   *tracking.Tracker
	log       *eventlog.Log
	annotator *ui.Annotator
	hsv       gocv.Mat
	mask      gocv.Mat
}

// NewProcessor creates a processor for frames of the given size
func NewProcessor(cfg types.Config, width, height int, fps float64) (*Processor, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("invalid frame rate %g", fps)
	}
	grid, err := quadrant.NewGrid(width, height, cfg.Grid.Cols, cfg.Grid.Rows)
	if err != nil {
		return nil, err
	}

	return &Processor{
		config:    cfg,
		fps:       fps,
		segmenter: segment.New(cfg.Segment),
		locator:   blob.NewLocator(cfg.Blob),
		grid:      grid,
		tracker:   tracking.NewTracker(cfg.ColorNames()),
		log:       eventlog.New(),
		annotator: ui.NewAnnotator(cfg, grid),
		hsv:       gocv.NewMat(),
		mask:      gocv.NewMat(),
	}, nil
}

// Close releases the processor's buffers
func (p *Processor) Close() {
	p.hsv.Close()
	p.mask.Close()
	p.segmenter.Close()
}

// Log returns the event log
func (p *Processor) Log() *eventlog.Log {
	return p.log
}

// Tracker returns the transition tracker
func (p *Processor) Tracker() *tracking.Tracker {
	return p.tracker
}

// Process handles frame number index: every configured color is located,
// classified and tracked, and the frame is annotated in place. It returns
// the events emitted for this frame, which are also appended to the log.
func (p *Processor) Process(frame *gocv.Mat, index int) []types.Event {
	timestamp := tracking.Timestamp(index, p.fps)

	// convert once so annotations drawn for one color never reach the next
	p.segmenter.HSV(*frame, &p.hsv)

	var frameEvents []types.Event
	for _, spec := range p.config.Colors {
		p.segmenter.Mask(p.hsv, spec, &p.mask)
		det, found := p.locator.Locate(p.mask)

		current := quadrant.None
		if found {
			current = p.grid.Classify(det.Center)
		}

		events := p.tracker.Update(spec.Name, current, timestamp)
		p.log.Append(events...)
		p.annotator.Annotate(frame, spec.Name, det, found, events)
		frameEvents = append(frameEvents, events...)

		if !p.config.Debug {
			continue
		}
		if found {
			log.Printf("frame %d %s: center=(%d,%d) r=%.1f quadrant=%d", index, spec.Name, det.Center.X, det.Center.Y, det.Radius, current)
		}
		for _, e := range events {
			log.Printf("%s %s quadrant %d at %.2fs", e.Color, e.Action, e.Quadrant, e.Timestamp)
		}
	}

	p.annotator.RenderOverlay(frame, index, timestamp)
	return frameEvents
}

// Process reads every frame from src, tracks it and writes the annotated
// frame to a sink opened on the first frame. Both src and the sink are
// closed before returning. A source with no frames yields an empty log and
// no sink.
func Process(cfg types.Config, src FrameSource, fps float64, newSink SinkFactory) (result *Result, err error) {
	defer func() {
		if cerr := src.Close(); cerr != nil {
			log.Printf("Error closing source: %v", cerr)
		}
	}()

	result = &Result{
		RunID: uuid.New().String(),
		FPS:   fps,
		Log:   eventlog.New(),
	}

	frame := gocv.NewMat()
	defer frame.Close()

	var proc *Processor
	var sink FrameSink
	defer func() {
		if sink != nil {
			if cerr := sink.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
		if proc != nil {
			proc.Close()
		}
	}()

	for src.Read(&frame) {
		if proc == nil {
			result.Width, result.Height = frame.Cols(), frame.Rows()
			proc, err = NewProcessor(cfg, result.Width, result.Height, fps)
			if err != nil {
				return nil, err
			}
			result.Log = proc.Log()

			s, serr := newSink(fps, result.Width, result.Height)
			if serr != nil {
				return nil, serr
			}
			sink = s
		}

		proc.Process(&frame, result.Frames)
		if err := sink.Write(frame); err != nil {
			return nil, err
		}
		result.Frames++
	}

	return result, nil
}

// Run validates the configuration, processes the input video into the
// annotated output video and writes the event log.
func Run(cfg types.Config, paths Paths) (*Result, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	src, err := input.Open(paths.Input, cfg.Video.FPS)
	if err != nil {
		return nil, err
	}

	result, err := Process(cfg, src, src.FPS, func(fps float64, width, height int) (FrameSink, error) {
		rec, err := recording.Open(paths.OutputVideo, cfg.Video, fps, width, height)
		if err != nil {
			return nil, err
		}
		return rec, nil
	})
	if err != nil {
		return nil, err
	}

	if err := result.Log.WriteFile(paths.OutputLog); err != nil {
		return nil, err
	}
	log.Printf("Processed %d frames (%.2fs), wrote %d events to %s", result.Frames, result.Duration(), result.Log.Len(), paths.OutputLog)
	return result, nil
}
