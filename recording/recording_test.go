package recording

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"balltracker/input"
	"balltracker/types"
)

func TestOpenWithoutCodecs(t *testing.T) {
	rec, err := Open(filepath.Join(t.TempDir(), "out.avi"), types.VideoConfig{FPS: 30}, 30, 64, 48)
	assert.Error(t, err)
	assert.Nil(t, rec)
}

func TestCloseTwice(t *testing.T) {
	rec := &Recorder{}
	assert.NoError(t, rec.Close())
	assert.Zero(t, rec.Frames())
}

func TestRecordingKeepsRateAndSize(t *testing.T) {
	const (
		fps    = 10.0
		width  = 64
		height = 48
		frames = 5
	)
	path := filepath.Join(t.TempDir(), "out.avi")

	rec, err := Open(path, types.VideoConfig{FPS: 30, Codecs: []string{"ZZZZ", "MJPG"}}, fps, width, height)
	require.NoError(t, err)
	assert.Equal(t, "MJPG", rec.Codec())

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 255, 0), height, width, gocv.MatTypeCV8UC3)
	defer frame.Close()
	for i := 0; i < frames; i++ {
		require.NoError(t, rec.Write(frame))
	}
	assert.Equal(t, frames, rec.Frames())
	require.NoError(t, rec.Close())

	src, err := input.Open(path, 30)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, width, src.Width)
	assert.Equal(t, height, src.Height)
	assert.InDelta(t, fps, src.FPS, 0.01)
	assert.Equal(t, frames, src.Frames)

	read := gocv.NewMat()
	defer read.Close()
	require.True(t, src.Read(&read))
	assert.Equal(t, width, read.Cols())
	assert.Equal(t, height, read.Rows())
}
