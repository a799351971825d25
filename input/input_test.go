package input

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenMissingFile(t *testing.T) {
	src, err := Open(filepath.Join(t.TempDir(), "missing.mp4"), 30)
	assert.Error(t, err)
	assert.Nil(t, src)
}

func TestOpenRejectsNonNumericMissingSource(t *testing.T) {
	src, err := Open("not-a-camera", 30)
	assert.Error(t, err)
	assert.Nil(t, src)
}
