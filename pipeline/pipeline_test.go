package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"balltracker/config"
	"balltracker/eventlog"
	"balltracker/types"
)

const (
	frameWidth  = 200
	frameHeight = 160
)

var (
	red   = color.RGBA{R: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
)

// ball is one drawn object; a zero radius means nothing is drawn
type ball struct {
	center image.Point
	radius int
	color  color.RGBA
}

// scriptedSource renders one frame per entry of frames
type scriptedSource struct {
	frames [][]ball
	next   int
	closed bool
}

func (s *scriptedSource) Read(frame *gocv.Mat) bool {
	if s.next >= len(s.frames) {
		return false
	}
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), frameHeight, frameWidth, gocv.MatTypeCV8UC3)
	defer img.Close()
	for _, b := range s.frames[s.next] {
		if b.radius > 0 {
			gocv.Circle(&img, b.center, b.radius, b.color, -1)
		}
	}
	img.CopyTo(frame)
	s.next++
	return true
}

func (s *scriptedSource) Close() error {
	s.closed = true
	return nil
}

type countingSink struct {
	frames int
	closed bool
	failAt int
}

func (s *countingSink) Write(frame gocv.Mat) error {
	if s.failAt > 0 && s.frames+1 == s.failAt {
		return errors.New("disk full")
	}
	s.frames++
	return nil
}

func (s *countingSink) Close() error {
	s.closed = true
	return nil
}

func sinkFor(sink *countingSink) SinkFactory {
	return func(fps float64, width, height int) (FrameSink, error) {
		return sink, nil
	}
}

var (
	q1 = image.Pt(50, 40)
	q2 = image.Pt(150, 40)
	q4 = image.Pt(150, 120)
)

func script(n int, balls ...ball) [][]ball {
	frames := make([][]ball, n)
	for i := range frames {
		frames[i] = balls
	}
	return frames
}

func runScript(t *testing.T, fps float64, frames [][]ball) (*Result, *scriptedSource, *countingSink) {
	t.Helper()
	src := &scriptedSource{frames: frames}
	sink := &countingSink{}
	result, err := Process(types.DefaultConfig(), src, fps, sinkFor(sink))
	require.NoError(t, err)
	return result, src, sink
}

func lines(l *eventlog.Log) []string {
	var out []string
	for _, e := range l.Events() {
		out = append(out, eventlog.Format(e))
	}
	return out
}

func TestRedBallChangesQuadrant(t *testing.T) {
	frames := append(script(10, ball{q1, 20, red}), script(10, ball{q2, 20, red})...)

	result, src, sink := runScript(t, 10, frames)

	want := []string{
		"0.00, 1, red, Entry",
		"1.00, 1, red, Exit",
		"1.00, 2, red, Entry",
	}
	if diff := cmp.Diff(want, lines(result.Log)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 20, result.Frames)
	assert.Equal(t, 20, sink.frames)
	assert.Equal(t, frameWidth, result.Width)
	assert.Equal(t, frameHeight, result.Height)
	assert.InDelta(t, 2.0, result.Duration(), 1e-9)
	assert.True(t, src.closed)
	assert.True(t, sink.closed)
}

func TestSmallBallNeverTracked(t *testing.T) {
	result, _, _ := runScript(t, 10, script(15, ball{q1, 6, red}))
	assert.Zero(t, result.Log.Len())
}

func TestLostBallExitsOnce(t *testing.T) {
	frames := append(script(5, ball{q4, 20, white}), script(10)...)

	result, _, _ := runScript(t, 5, frames)

	want := []string{
		"0.00, 4, white, Entry",
		"1.00, 4, white, Exit",
	}
	if diff := cmp.Diff(want, lines(result.Log)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDirectJump(t *testing.T) {
	frames := append(script(3, ball{q1, 20, green}), script(3, ball{q4, 20, green})...)

	result, _, _ := runScript(t, 30, frames)

	want := []string{
		"0.00, 1, green, Entry",
		"0.10, 1, green, Exit",
		"0.10, 4, green, Entry",
	}
	if diff := cmp.Diff(want, lines(result.Log)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestColorsTrackedIndependently(t *testing.T) {
	frames := append(
		script(4, ball{q1, 20, red}, ball{q4, 20, green}),
		script(4, ball{q2, 20, red}, ball{q4, 20, green})...,
	)

	result, _, _ := runScript(t, 4, frames)

	want := []string{
		"0.00, 1, red, Entry",
		"0.00, 4, green, Entry",
		"1.00, 1, red, Exit",
		"1.00, 2, red, Entry",
	}
	if diff := cmp.Diff(want, lines(result.Log)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	events := result.Log.Events()
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1].Timestamp, events[i].Timestamp)
	}
}

func TestEmptySource(t *testing.T) {
	src := &scriptedSource{}
	opened := false
	result, err := Process(types.DefaultConfig(), src, 25, func(float64, int, int) (FrameSink, error) {
		opened = true
		return &countingSink{}, nil
	})
	require.NoError(t, err)
	assert.Zero(t, result.Frames)
	assert.Zero(t, result.Log.Len())
	assert.False(t, opened)
	assert.True(t, src.closed)
}

func TestSinkFailureReleasesResources(t *testing.T) {
	src := &scriptedSource{frames: script(5, ball{q1, 20, red})}
	sink := &countingSink{failAt: 3}

	_, err := Process(types.DefaultConfig(), src, 10, sinkFor(sink))
	assert.Error(t, err)
	assert.True(t, src.closed)
	assert.True(t, sink.closed)
}

func TestSinkOpenFailure(t *testing.T) {
	src := &scriptedSource{frames: script(2, ball{q1, 20, red})}

	_, err := Process(types.DefaultConfig(), src, 10, func(float64, int, int) (FrameSink, error) {
		return nil, errors.New("no codec")
	})
	assert.Error(t, err)
	assert.True(t, src.closed)
}

func TestProcessorAnnotationDoesNotAffectDetection(t *testing.T) {
	proc, err := NewProcessor(types.DefaultConfig(), frameWidth, frameHeight, 10)
	require.NoError(t, err)
	defer proc.Close()

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), frameHeight, frameWidth, gocv.MatTypeCV8UC3)
	defer frame.Close()
	gocv.Circle(&frame, q1, 20, red, -1)

	events := proc.Process(&frame, 0)
	require.Len(t, events, 1)
	assert.Equal(t, types.Event{Timestamp: 0, Quadrant: 1, Color: "red", Action: types.Entry}, events[0])
	assert.Equal(t, map[string]int{"red": 1, "yellow": 0, "white": 0, "green": 0}, proc.Tracker().State())
}

func TestNewProcessorRejectsBadFrameRate(t *testing.T) {
	_, err := NewProcessor(types.DefaultConfig(), frameWidth, frameHeight, 0)
	assert.Error(t, err)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := types.DefaultConfig()
	cfg.Colors[0].Lower.V = 256

	_, err := Run(cfg, Paths{
		Input:       filepath.Join(dir, "in.avi"),
		OutputVideo: filepath.Join(dir, "out.avi"),
		OutputLog:   filepath.Join(dir, "events.txt"),
	})
	var verr *config.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestRunMissingInputProducesNoOutputs(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Input:       filepath.Join(dir, "missing.mp4"),
		OutputVideo: filepath.Join(dir, "out.avi"),
		OutputLog:   filepath.Join(dir, "events.txt"),
	}

	_, err := Run(types.DefaultConfig(), paths)
	require.Error(t, err)

	_, statErr := os.Stat(paths.OutputVideo)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(paths.OutputLog)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEventsLoggedOnlyInDebug(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	frames := script(3, ball{q1, 20, red})

	_, err := Process(types.DefaultConfig(), &scriptedSource{frames: frames}, 10, sinkFor(&countingSink{}))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "red Entry quadrant 1")

	cfg := types.DefaultConfig()
	cfg.Debug = true
	_, err = Process(cfg, &scriptedSource{frames: frames}, 10, sinkFor(&countingSink{}))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "red Entry quadrant 1 at 0.00s")
	assert.Contains(t, buf.String(), "frame 0 red: center=")
}
