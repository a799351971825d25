package types

import "image"

// HSV is a hue/saturation/value triple in the OpenCV 8-bit convention:
// H in [0,180], S and V in [0,255].
type HSV struct {
	H int `json:"h"`
	S int `json:"s"`
	V int `json:"v"`
}

// ColorSpec names a tracked color and its inclusive HSV bounds
type ColorSpec struct {
	Name    string `json:"name"`
	Lower   HSV    `json:"lower"`
	Upper   HSV    `json:"upper"`
	Display string `json:"display,omitempty"` // "#rrggbb" annotation color, derived from the range when empty
}

// Detection is the located blob for one color in one frame
type Detection struct {
	Center image.Point // moments centroid, the tracked point
	Circle image.Point // minimum enclosing circle center
	Radius float64
}

// Action is the kind of quadrant transition
type Action string

const (
	Entry Action = "Entry"
	Exit  Action = "Exit"
)

// Event records one quadrant transition of one color
type Event struct {
	Timestamp float64 `json:"timestamp"`
	Quadrant  int     `json:"quadrant"`
	Color     string  `json:"color"`
	Action    Action  `json:"action"`
}

// Config holds the complete pipeline configuration
type Config struct {
	Colors  []ColorSpec   `json:"colors"`
	Segment SegmentConfig `json:"segment"`
	Blob    BlobConfig    `json:"blob"`
	Grid    GridConfig    `json:"grid"`
	Video   VideoConfig   `json:"video"`
	UI      UIConfig      `json:"ui"`
	Debug   bool          `json:"debug"`
}

// SegmentConfig holds the morphological noise reduction settings
type SegmentConfig struct {
	ErodeIterations  int `json:"erode_iterations"`
	DilateIterations int `json:"dilate_iterations"`
	KernelSize       int `json:"kernel_size"`
}

// DefaultSegmentConfig returns the default segmentation configuration
func DefaultSegmentConfig() SegmentConfig {
	return SegmentConfig{
		ErodeIterations:  2,
		DilateIterations: 2,
		KernelSize:       3,
	}
}

// BlobConfig holds blob acceptance thresholds
type BlobConfig struct {
	MinRadius float64 `json:"min_radius"`
}

// DefaultBlobConfig returns the default blob configuration
func DefaultBlobConfig() BlobConfig {
	return BlobConfig{
		MinRadius: 10,
	}
}

// GridConfig holds the quadrant layout
type GridConfig struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// DefaultGridConfig returns the 2x2 quadrant layout
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Cols: 2,
		Rows: 2,
	}
}

// VideoConfig holds video output configuration
type VideoConfig struct {
	FPS    float64  `json:"fps"` // used when the source reports no frame rate
	Codecs []string `json:"codecs"`
}

// DefaultVideoConfig returns the default video configuration
func DefaultVideoConfig() VideoConfig {
	return VideoConfig{
		FPS:    30.0,
		Codecs: []string{"XVID", "MJPG", "mp4v"},
	}
}

// UIConfig holds annotation configuration
type UIConfig struct {
	LabelFontSize  float64 `json:"label_font_size"`
	StatusFontSize float64 `json:"status_font_size"`
	FeedFontSize   float64 `json:"feed_font_size"`
	MaxFeedEvents  int     `json:"max_feed_events"`
	ShowGrid       bool    `json:"show_grid"`
	ShowStatus     bool    `json:"show_status"`
	ShowFeed       bool    `json:"show_feed"`
}

// DefaultUIConfig returns the default UI configuration
func DefaultUIConfig() UIConfig {
	return UIConfig{
		LabelFontSize:  0.5,
		StatusFontSize: 1.2,
		FeedFontSize:   0.8,
		MaxFeedEvents:  8,
		ShowGrid:       true,
		ShowStatus:     true,
	}
}

// DefaultColors returns the reference ball colors
func DefaultColors() []ColorSpec {
	return []ColorSpec{
		{Name: "red", Lower: HSV{0, 120, 70}, Upper: HSV{10, 255, 255}},
		{Name: "yellow", Lower: HSV{20, 100, 100}, Upper: HSV{30, 255, 255}},
		{Name: "white", Lower: HSV{0, 0, 200}, Upper: HSV{180, 30, 255}},
		{Name: "green", Lower: HSV{35, 50, 50}, Upper: HSV{85, 255, 255}},
	}
}

// DefaultConfig returns the reference configuration
func DefaultConfig() Config {
	return Config{
		Colors:  DefaultColors(),
		Segment: DefaultSegmentConfig(),
		Blob:    DefaultBlobConfig(),
		Grid:    DefaultGridConfig(),
		Video:   DefaultVideoConfig(),
		UI:      DefaultUIConfig(),
	}
}

// ColorNames returns the configured color names in configuration order
func (c Config) ColorNames() []string {
	names := make([]string, len(c.Colors))
	for i, spec := range c.Colors {
		names[i] = spec.Name
	}
	return names
}
