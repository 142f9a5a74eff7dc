package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Panel placement variants.
const (
	PlacementBounded = "bounded" // Panel centred on the node->pointer vector, capped per axis
	PlacementOffset  = "offset"  // Panel beside the pointer, on the side facing the viewport centre
)

// Panel sizing strategies.
const (
	SizingFixed    = "fixed"
	SizingMeasured = "measured"
)

// Tie-break orders for projects sharing a position.
const (
	TieBreakInput = "input" // Keep the order the projects were supplied in
	TieBreakID    = "id"    // Order ties by ascending project id
)

// LineStyle describes how a connector is stroked.
type LineStyle struct {
	Color    string  `yaml:"color"`
	Width    float64 `yaml:"width"`
	LineType string  `yaml:"line_type"` // "solid", "dashed", "dotted"
}

// EngineOptions are the engine tunables.
type EngineOptions struct {
	Tightness       float64            // Control-point distance as a fraction of start-end distance
	Placement       string             // PlacementBounded or PlacementOffset
	MaxDistance     Point              // Per-axis cap for PlacementBounded
	PointerGap      Point              // Gap between pointer and panel for PlacementOffset
	PanelSizing     string             // SizingFixed or SizingMeasured
	PanelSize       Size               // Fixed size, or width + minimum height when measured
	PanelPadding    string             // CSS-like padding used by measured sizing
	PanelFontSize   float64            // Body font size in px for measured sizing
	ViewportMargin  float64            // Clamp margin in px
	RedrawOnScroll  bool               // Recompute static connectors when the page scrolls
	RedrawDelay     time.Duration      // Deferral before relayout after resize/project changes
	TieBreak        string             // TieBreakInput or TieBreakID
	ScrollSmoothing float64            // Fraction of the remaining distance covered per frame
	ScrollFrame     time.Duration      // Smooth scroll frame interval
	ContainerHeight float64            // Timeline container height in vh
	Lanes           map[string]float64 // horizontalPosition token -> fraction of container width
	NodeSizes       map[string]float64 // size token -> node diameter in px
	Connector       LineStyle
	Spline          LineStyle
}

// optionsFile is the YAML shape of EngineOptions. Pointer fields distinguish
// "unset" from zero so the file only overrides what it names.
type optionsFile struct {
	Tightness       *float64           `yaml:"tightness,omitempty"`
	Placement       *string            `yaml:"placement,omitempty"`
	MaxDistance     *Point             `yaml:"max_distance,omitempty"`
	PointerGap      *Point             `yaml:"pointer_gap,omitempty"`
	PanelSizing     *string            `yaml:"panel_sizing,omitempty"`
	PanelSize       *Size              `yaml:"panel_size,omitempty"`
	PanelPadding    *string            `yaml:"panel_padding,omitempty"`
	PanelFontSize   *float64           `yaml:"panel_font_size,omitempty"`
	ViewportMargin  *float64           `yaml:"viewport_margin,omitempty"`
	RedrawOnScroll  *bool              `yaml:"redraw_on_scroll,omitempty"`
	RedrawDelay     *time.Duration     `yaml:"redraw_delay,omitempty"`
	TieBreak        *string            `yaml:"tie_break,omitempty"`
	ScrollSmoothing *float64           `yaml:"scroll_smoothing,omitempty"`
	ScrollFrame     *time.Duration     `yaml:"scroll_frame,omitempty"`
	ContainerHeight *float64           `yaml:"container_height,omitempty"`
	Lanes           map[string]float64 `yaml:"lanes,omitempty"`
	NodeSizes       map[string]float64 `yaml:"node_sizes,omitempty"`
	Connector       *LineStyle         `yaml:"connector,omitempty"`
	Spline          *LineStyle         `yaml:"spline,omitempty"`
}

// DefaultEngineOptions returns the tunables of the tight-spline timeline.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		Tightness:       0.3,
		Placement:       PlacementBounded,
		MaxDistance:     Point{X: 150, Y: 100},
		PointerGap:      Point{X: 20, Y: 10},
		PanelSizing:     SizingFixed,
		PanelSize:       Size{Width: 250, Height: 120},
		PanelPadding:    "12 16",
		PanelFontSize:   14,
		ViewportMargin:  10,
		RedrawOnScroll:  false,
		RedrawDelay:     100 * time.Millisecond,
		TieBreak:        TieBreakInput,
		ScrollSmoothing: 0.25,
		ScrollFrame:     16 * time.Millisecond,
		ContainerHeight: 100,
		Lanes: map[string]float64{
			"left":   0.3,
			"center": 0.5,
			"right":  0.7,
		},
		NodeSizes: map[string]float64{
			"small":  20,
			"medium": 30,
			"large":  40,
		},
		Connector: LineStyle{Color: "#333333", Width: 2, LineType: "solid"},
		Spline:    LineStyle{Color: "#555555", Width: 1.5, LineType: "dashed"},
	}
}

// LoadEngineOptions reads a YAML options file and merges it over the defaults.
// An empty path returns the defaults.
func LoadEngineOptions(path string) (EngineOptions, error) {
	opts := DefaultEngineOptions()
	if path == "" {
		return opts, nil
	}

	log.Printf("Reading engine options file: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading options file '%s': %w", path, err)
	}

	var file optionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return opts, fmt.Errorf("parsing options file '%s': %w", path, err)
	}

	opts = mergeEngineOptions(opts, file)
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("options file '%s': %w", path, err)
	}
	return opts, nil
}

func mergeEngineOptions(defaults EngineOptions, file optionsFile) EngineOptions {
	effective := defaults
	effective.Tightness = getFloat64(file.Tightness, defaults.Tightness)
	effective.Placement = getString(file.Placement, defaults.Placement)
	effective.PanelSizing = getString(file.PanelSizing, defaults.PanelSizing)
	effective.PanelPadding = getString(file.PanelPadding, defaults.PanelPadding)
	effective.PanelFontSize = getFloat64(file.PanelFontSize, defaults.PanelFontSize)
	effective.ViewportMargin = getFloat64(file.ViewportMargin, defaults.ViewportMargin)
	effective.RedrawOnScroll = getBool(file.RedrawOnScroll, defaults.RedrawOnScroll)
	effective.RedrawDelay = getDuration(file.RedrawDelay, defaults.RedrawDelay)
	effective.TieBreak = getString(file.TieBreak, defaults.TieBreak)
	effective.ScrollSmoothing = getFloat64(file.ScrollSmoothing, defaults.ScrollSmoothing)
	effective.ScrollFrame = getDuration(file.ScrollFrame, defaults.ScrollFrame)
	effective.ContainerHeight = getFloat64(file.ContainerHeight, defaults.ContainerHeight)

	if file.MaxDistance != nil {
		effective.MaxDistance = *file.MaxDistance
	}
	if file.PointerGap != nil {
		effective.PointerGap = *file.PointerGap
	}
	if file.PanelSize != nil {
		effective.PanelSize = *file.PanelSize
	}
	if file.Connector != nil {
		effective.Connector = mergeLineStyle(defaults.Connector, *file.Connector)
	}
	if file.Spline != nil {
		effective.Spline = mergeLineStyle(defaults.Spline, *file.Spline)
	}

	// Token tables extend the defaults rather than replace them
	effective.Lanes = mergeTokenTable(defaults.Lanes, file.Lanes)
	effective.NodeSizes = mergeTokenTable(defaults.NodeSizes, file.NodeSizes)
	return effective
}

func mergeLineStyle(defaults, override LineStyle) LineStyle {
	effective := defaults
	if override.Color != "" {
		effective.Color = override.Color
	}
	if override.Width > 0 {
		effective.Width = override.Width
	}
	if override.LineType != "" {
		effective.LineType = override.LineType
	}
	return effective
}

func mergeTokenTable(defaults, override map[string]float64) map[string]float64 {
	merged := make(map[string]float64, len(defaults)+len(override))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// Validate rejects option combinations the engine cannot honour.
func (o EngineOptions) Validate() error {
	if o.Tightness < 0 || o.Tightness > 1 {
		return fmt.Errorf("tightness must be within [0,1], got %.2f", o.Tightness)
	}
	if o.Placement != PlacementBounded && o.Placement != PlacementOffset {
		return fmt.Errorf("placement must be '%s' or '%s', got '%s'", PlacementBounded, PlacementOffset, o.Placement)
	}
	if o.PanelSizing != SizingFixed && o.PanelSizing != SizingMeasured {
		return fmt.Errorf("panel_sizing must be '%s' or '%s', got '%s'", SizingFixed, SizingMeasured, o.PanelSizing)
	}
	if o.TieBreak != TieBreakInput && o.TieBreak != TieBreakID {
		return fmt.Errorf("tie_break must be '%s' or '%s', got '%s'", TieBreakInput, TieBreakID, o.TieBreak)
	}
	if o.PanelSize.Width <= 0 || o.PanelSize.Height <= 0 {
		return fmt.Errorf("panel_size must be positive, got %.0fx%.0f", o.PanelSize.Width, o.PanelSize.Height)
	}
	if o.ScrollSmoothing <= 0 || o.ScrollSmoothing > 1 {
		return fmt.Errorf("scroll_smoothing must be within (0,1], got %.2f", o.ScrollSmoothing)
	}
	if o.ScrollFrame <= 0 {
		return fmt.Errorf("scroll_frame must be positive")
	}
	if o.RedrawDelay < 0 {
		return fmt.Errorf("redraw_delay must not be negative")
	}
	return nil
}
