package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadEngineOptionsDefaults(t *testing.T) {
	opts, err := LoadEngineOptions("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEngineOptions(), opts)
	assert.NoError(t, opts.Validate())
}

func TestLoadEngineOptionsMergesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "engine.yaml", `
tightness: 0.5
placement: offset
redraw_on_scroll: true
redraw_delay: 250ms
max_distance: {x: 200, y: 50}
node_sizes:
  huge: 60
connector:
  color: "#ff0000"
`)

	opts, err := LoadEngineOptions(path)
	require.NoError(t, err)

	defaults := DefaultEngineOptions()
	assert.Equal(t, 0.5, opts.Tightness)
	assert.Equal(t, PlacementOffset, opts.Placement)
	assert.True(t, opts.RedrawOnScroll)
	assert.Equal(t, 250*time.Millisecond, opts.RedrawDelay)
	assert.Equal(t, Point{X: 200, Y: 50}, opts.MaxDistance)

	// Token tables extend the defaults
	assert.Equal(t, 60.0, opts.NodeSizes["huge"])
	assert.Equal(t, 30.0, opts.NodeSizes["medium"])
	assert.Equal(t, defaults.Lanes, opts.Lanes)

	// Line styles override field by field
	assert.Equal(t, "#ff0000", opts.Connector.Color)
	assert.Equal(t, defaults.Connector.Width, opts.Connector.Width)
	assert.Equal(t, defaults.Spline, opts.Spline)

	// Untouched fields keep their defaults
	assert.Equal(t, defaults.PanelSize, opts.PanelSize)
	assert.Equal(t, defaults.ScrollFrame, opts.ScrollFrame)
}

func TestLoadEngineOptionsErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "nope.yaml")},
		{name: "malformed yaml", path: writeFile(t, dir, "bad.yaml", "tightness: [1, 2")},
		{name: "invalid value", path: writeFile(t, dir, "invalid.yaml", "tightness: 1.5\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadEngineOptions(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestEngineOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *EngineOptions)
		valid  bool
	}{
		{name: "defaults", mutate: func(o *EngineOptions) {}, valid: true},
		{name: "zero tightness", mutate: func(o *EngineOptions) { o.Tightness = 0 }, valid: true},
		{name: "negative tightness", mutate: func(o *EngineOptions) { o.Tightness = -0.1 }},
		{name: "unknown placement", mutate: func(o *EngineOptions) { o.Placement = "floating" }},
		{name: "unknown sizing", mutate: func(o *EngineOptions) { o.PanelSizing = "auto" }},
		{name: "unknown tie break", mutate: func(o *EngineOptions) { o.TieBreak = "random" }},
		{name: "empty panel", mutate: func(o *EngineOptions) { o.PanelSize = Size{} }},
		{name: "no smoothing", mutate: func(o *EngineOptions) { o.ScrollSmoothing = 0 }},
		{name: "instant scroll", mutate: func(o *EngineOptions) { o.ScrollSmoothing = 1 }, valid: true},
		{name: "zero frame", mutate: func(o *EngineOptions) { o.ScrollFrame = 0 }},
		{name: "negative delay", mutate: func(o *EngineOptions) { o.RedrawDelay = -time.Millisecond }},
		{name: "zero delay", mutate: func(o *EngineOptions) { o.RedrawDelay = 0 }, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultEngineOptions()
			tt.mutate(&opts)
			if tt.valid {
				assert.NoError(t, opts.Validate())
			} else {
				assert.Error(t, opts.Validate())
			}
		})
	}
}

func TestSampleEngineOptionsFile(t *testing.T) {
	opts, err := LoadEngineOptions("engine.yaml")
	require.NoError(t, err)

	defaults := DefaultEngineOptions()
	assert.Equal(t, SizingMeasured, opts.PanelSizing)
	opts.PanelSizing = defaults.PanelSizing
	assert.Equal(t, defaults, opts, "the sample file spells out the defaults")
}
