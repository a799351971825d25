package recording

import (
	"fmt"
	"log"

	"gocv.io/x/gocv"

	"balltracker/types"
)

// Recorder writes annotated frames to the output video
type Recorder struct {
	writer *gocv.VideoWriter
	path   string
	codec  string
	frames int
}

// Open creates the output video, trying each configured codec in order
// until one opens.
func Open(path string, config types.VideoConfig, fps float64, width, height int) (*Recorder, error) {
	if len(config.Codecs) == 0 {
		return nil, fmt.Errorf("no codecs configured")
	}

	var vw *gocv.VideoWriter
	var err error
	var usedCodec string

	for _, fourcc := range config.Codecs {
		vw, err = gocv.VideoWriterFile(path, fourcc, fps, width, height, true)
		if err == nil && vw.IsOpened() {
			usedCodec = fourcc
			break
		}
		if err == nil {
			vw.Close()
			err = fmt.Errorf("writer for codec %s did not open", fourcc)
		}
		log.Printf("Codec %s unavailable: %v", fourcc, err)
	}

	if err != nil {
		return nil, fmt.Errorf("could not create video writer with any codec: %w", err)
	}

	log.Printf("Recording to %s (codec: %s, %.2f fps, %dx%d)", path, usedCodec, fps, width, height)
	return &Recorder{writer: vw, path: path, codec: usedCodec}, nil
}

// Write appends a frame to the video
func (r *Recorder) Write(frame gocv.Mat) error {
	if err := r.writer.Write(frame); err != nil {
		return fmt.Errorf("error writing frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Close finalizes the video file
func (r *Recorder) Close() error {
	if r.writer == nil {
		return nil
	}
	err := r.writer.Close()
	r.writer = nil
	if err != nil {
		return fmt.Errorf("error closing video writer: %w", err)
	}
	log.Printf("Recording stopped: %s (%d frames)", r.path, r.frames)
	return nil
}

// Codec returns the fourcc in use
func (r *Recorder) Codec() string {
	return r.codec
}

// Frames returns the number of frames written
func (r *Recorder) Frames() int {
	return r.frames
}
