package ui

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"gocv.io/x/gocv"

	"balltracker/config"
	"balltracker/quadrant"
	"balltracker/types"
	"balltracker/utils"
)

var (
	Yellow = color.RGBA{R: 255, G: 255, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Gray   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 120}
)

// Annotator draws detections, transitions and status overlays on frames.
// Drawing never feeds back into detection.
type Annotator struct {
	config types.UIConfig
	grid   quadrant.Grid
	colors map[string]color.RGBA
	feed   *EventFeed
}

// NewAnnotator creates an annotator for the configured colors
func NewAnnotator(cfg types.Config, grid quadrant.Grid) *Annotator {
	colors := make(map[string]color.RGBA, len(cfg.Colors))
	for _, spec := range cfg.Colors {
		colors[spec.Name] = config.DisplayColor(spec)
	}
	return &Annotator{
		config: cfg.UI,
		grid:   grid,
		colors: colors,
		feed:   NewEventFeed(cfg.UI.MaxFeedEvents),
	}
}

// Feed returns the rolling event feed
func (a *Annotator) Feed() *EventFeed {
	return a.feed
}

// DrawDetection draws the enclosing circle, a square around the centroid
// and the color name above it.
func DrawDetection(frame *gocv.Mat, det types.Detection, name string, c color.RGBA, fontSize float64) {
	radius := int(det.Radius)
	gocv.Circle(frame, det.Center, radius, c, 2)
	_ = gocv.Rectangle(frame, utils.SquareAround(det.Center, det.Radius), c, 2)

	labelPos := utils.ClampPoint(image.Pt(det.Center.X-radius, det.Center.Y-radius-10), frame.Cols(), frame.Rows())
	if err := gocv.PutText(frame, name, labelPos, gocv.FontHersheySimplex, fontSize, c, 2); err != nil {
		log.Printf("Error adding label text: %v", err)
	}
}

// DrawTransition writes "<action> <quadrant> <color>" for an event at pos
func DrawTransition(frame *gocv.Mat, e types.Event, pos image.Point, fontSize float64) {
	text := fmt.Sprintf("%s %d %s", e.Action, e.Quadrant, e.Color)
	pos = utils.ClampPoint(pos, frame.Cols(), frame.Rows())
	if err := gocv.PutText(frame, text, pos, gocv.FontHersheySimplex, fontSize, White, 2); err != nil {
		log.Printf("Error adding transition text: %v", err)
	}
}

// DrawGrid draws the quadrant boundaries and labels
func DrawGrid(frame *gocv.Mat, grid quadrant.Grid) {
	for _, label := range grid.Labels() {
		rect := grid.Rect(label)
		_ = gocv.Rectangle(frame, rect, Gray, 1)
		if err := gocv.PutText(frame, fmt.Sprintf("Q%d", label), image.Pt(rect.Min.X+5, rect.Min.Y+20), gocv.FontHersheyPlain, 1.2, Gray, 1); err != nil {
			log.Printf("Error adding grid label: %v", err)
		}
	}
}

// DrawStatus draws the frame number and stream time in the bottom corner
func DrawStatus(frame *gocv.Mat, frameIndex int, timestamp float64, fontSize float64) {
	statusText := fmt.Sprintf("frame %d  t=%.2fs", frameIndex, timestamp)
	textSize := gocv.GetTextSize(statusText, gocv.FontHersheyPlain, fontSize, 1)
	y := frame.Rows() - 10
	bg := utils.FitRect(image.Rect(5, y-textSize.Y-5, textSize.X+15, y+5), frame.Cols(), frame.Rows())

	if err := gocv.Rectangle(frame, bg, Black, -1); err != nil {
		log.Printf("Error drawing status background: %v", err)
	}
	if err := gocv.PutText(frame, statusText, image.Pt(bg.Min.X+5, bg.Max.Y-5), gocv.FontHersheyPlain, fontSize, Yellow, 1); err != nil {
		log.Printf("Error adding status text: %v", err)
	}
}

// DrawEventFeed draws the most recent events on the right side of the frame
func DrawEventFeed(frame *gocv.Mat, lines []string, fontSize float64) {
	if len(lines) == 0 {
		return
	}

	frameWidth := frame.Cols()
	startY := 30
	lineHeight := 20
	maxWidth := 260
	padding := 10

	feedHeight := len(lines)*lineHeight + padding*2
	feedRect := utils.FitRect(image.Rect(frameWidth-maxWidth-padding, startY-padding, frameWidth-padding, startY+feedHeight-padding), frameWidth, frame.Rows())

	if err := gocv.Rectangle(frame, feedRect, Black, -1); err != nil {
		log.Printf("Error drawing feed background: %v", err)
	}

	for i, line := range lines {
		y := feedRect.Min.Y + padding + (i+1)*lineHeight - 5
		if err := gocv.PutText(frame, line, image.Pt(feedRect.Min.X+5, y), gocv.FontHersheyPlain, fontSize, White, 1); err != nil {
			log.Printf("Error adding feed text: %v", err)
		}
	}
}

// Annotate draws one color's detection and the transitions it caused on this
// frame. An Exit is written at the current centroid when the object is still
// visible, otherwise at the center of the quadrant it left.
func (a *Annotator) Annotate(frame *gocv.Mat, name string, det types.Detection, found bool, events []types.Event) {
	if found {
		DrawDetection(frame, det, name, a.colors[name], a.config.LabelFontSize)
	}

	for i, e := range events {
		pos := utils.Center(a.grid.Rect(e.Quadrant))
		if found {
			pos = det.Center
		}
		pos.Y += i * 20
		DrawTransition(frame, e, pos, a.config.LabelFontSize)
	}
	a.feed.Add(events...)
}

// RenderOverlay draws the frame-wide overlays enabled in configuration
func (a *Annotator) RenderOverlay(frame *gocv.Mat, frameIndex int, timestamp float64) {
	if a.config.ShowGrid {
		DrawGrid(frame, a.grid)
	}
	if a.config.ShowStatus {
		DrawStatus(frame, frameIndex, timestamp, a.config.StatusFontSize)
	}
	if a.config.ShowFeed {
		DrawEventFeed(frame, a.feed.Lines(), a.config.FeedFontSize)
	}
}
