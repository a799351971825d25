// Package config loads and validates the tracker configuration.
package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"balltracker/types"
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// Load reads a JSON configuration file over types.DefaultConfig.
// Fields omitted from the file keep their default values. A "colors" array,
// when present, replaces the default color set entirely.
func Load(path string) (types.Config, error) {
	cfg := types.DefaultConfig()

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return cfg, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return cfg, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg.Colors = nil
	if err := json.Unmarshal(data, &cfg); err != nil {
		return types.DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Colors == nil {
		cfg.Colors = types.DefaultColors()
	}

	return cfg, nil
}

// ValidationError lists every problem found in a configuration
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Validate rejects configurations that cannot be processed
func Validate(cfg types.Config) error {
	var problems []string
	addf := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(cfg.Colors) == 0 {
		addf("no colors configured")
	}
	seen := make(map[string]bool, len(cfg.Colors))
	for i, spec := range cfg.Colors {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			addf("color %d has no name", i)
		} else if seen[name] {
			addf("duplicate color name %q", name)
		}
		seen[name] = true

		for _, p := range checkRange(spec) {
			addf("color %q: %s", spec.Name, p)
		}
		if spec.Display != "" {
			if _, err := colorful.Hex(spec.Display); err != nil {
				addf("color %q: bad display color %q", spec.Name, spec.Display)
			}
		}
	}

	if cfg.Segment.ErodeIterations < 0 {
		addf("erode_iterations must be >= 0, got %d", cfg.Segment.ErodeIterations)
	}
	if cfg.Segment.DilateIterations < 0 {
		addf("dilate_iterations must be >= 0, got %d", cfg.Segment.DilateIterations)
	}
	if cfg.Segment.KernelSize < 1 {
		addf("kernel_size must be >= 1, got %d", cfg.Segment.KernelSize)
	}
	if cfg.Blob.MinRadius < 0 {
		addf("min_radius must be >= 0, got %g", cfg.Blob.MinRadius)
	}
	if cfg.Grid.Cols < 1 || cfg.Grid.Rows < 1 {
		addf("grid must be at least 1x1, got %dx%d", cfg.Grid.Cols, cfg.Grid.Rows)
	}
	if len(cfg.Video.Codecs) == 0 {
		addf("no video codecs configured")
	}
	for _, codec := range cfg.Video.Codecs {
		if len(codec) != 4 {
			addf("codec %q is not a fourcc", codec)
		}
	}
	if cfg.Video.FPS <= 0 {
		addf("fallback fps must be > 0, got %g", cfg.Video.FPS)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func checkRange(spec types.ColorSpec) []string {
	var problems []string
	channels := []struct {
		name         string
		lower, upper int
		max          int
	}{
		{"hue", spec.Lower.H, spec.Upper.H, 180},
		{"saturation", spec.Lower.S, spec.Upper.S, 255},
		{"value", spec.Lower.V, spec.Upper.V, 255},
	}
	for _, ch := range channels {
		if ch.lower < 0 || ch.upper > ch.max {
			problems = append(problems, fmt.Sprintf("%s bounds outside [0,%d]", ch.name, ch.max))
		}
		if ch.lower > ch.upper {
			problems = append(problems, fmt.Sprintf("%s lower %d > upper %d", ch.name, ch.lower, ch.upper))
		}
	}
	return problems
}

// DisplayColor returns the annotation color for a spec. An explicit Display
// hex wins; otherwise the midpoint of the HSV range is used.
func DisplayColor(spec types.ColorSpec) color.RGBA {
	if spec.Display != "" {
		if c, err := colorful.Hex(spec.Display); err == nil {
			r, g, b := c.RGB255()
			return color.RGBA{R: r, G: g, B: b, A: 255}
		}
	}

	// OpenCV stores hue as degrees/2
	h := float64(spec.Lower.H+spec.Upper.H) // (lo+hi)/2 * 2
	s := float64(spec.Lower.S+spec.Upper.S) / 2 / 255
	v := float64(spec.Lower.V+spec.Upper.V) / 2 / 255
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
