package input

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gocv.io/x/gocv"

	"balltracker/tracking"
)

// Source is an opened video stream and its properties
type Source struct {
	capture *gocv.VideoCapture
	Name    string
	FPS     float64
	Width   int
	Height  int
	Frames  int // reported frame count, 0 when unknown
}

// Open opens a video file, or a camera when name is a device index and no
// such file exists. fallbackFPS is used when the stream reports no rate.
func Open(name string, fallbackFPS float64) (*Source, error) {
	var capture *gocv.VideoCapture
	var err error
	if _, statErr := os.Stat(name); statErr == nil {
		capture, err = gocv.VideoCaptureFile(name)
	} else if id, convErr := strconv.Atoi(name); convErr == nil {
		capture, err = gocv.VideoCaptureDevice(id)
	} else {
		return nil, fmt.Errorf("unable to open video source %s: %w", name, statErr)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open video source %s: %w", name, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("unable to open video source %s", name)
	}

	src := &Source{
		capture: capture,
		Name:    name,
		FPS:     capture.Get(gocv.VideoCaptureFPS),
		Width:   int(capture.Get(gocv.VideoCaptureFrameWidth)),
		Height:  int(capture.Get(gocv.VideoCaptureFrameHeight)),
		Frames:  int(capture.Get(gocv.VideoCaptureFrameCount)),
	}
	if src.FPS <= 0 {
		log.Printf("Source %s reports no frame rate, using %.2f fps", name, fallbackFPS)
		src.FPS = fallbackFPS
	}
	if src.Frames < 0 {
		src.Frames = 0
	}

	log.Printf("Opened %s: %dx%d at %.2f fps (%d frames, %.2fs)",
		name, src.Width, src.Height, src.FPS, src.Frames, tracking.Timestamp(src.Frames, src.FPS))
	return src, nil
}

// Read reads the next frame; false means the stream is exhausted or failed
func (s *Source) Read(frame *gocv.Mat) bool {
	return s.capture.Read(frame) && !frame.Empty()
}

// Close releases the capture
func (s *Source) Close() error {
	return s.capture.Close()
}
