package main

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// --- Info Panel Sizing ---

// PanelSizer decides how large a project's info panel is.
type PanelSizer interface {
	PanelSize(project *Project) Size
}

// fixedSizer gives every panel the same size, matching a fixed CSS box.
type fixedSizer struct {
	size Size
}

func (s fixedSizer) PanelSize(*Project) Size { return s.size }

// measuredSizer keeps the panel width fixed and grows its height to fit the
// word-wrapped name, description and year, measured with Go Regular metrics.
type measuredSizer struct {
	width, minHeight                     float64
	padTop, padRight, padBottom, padLeft float64
	titleFace, bodyFace                  font.Face
}

// NewPanelSizer builds the sizer selected by opts.PanelSizing.
func NewPanelSizer(opts EngineOptions) (PanelSizer, error) {
	if opts.PanelSizing != SizingMeasured {
		return fixedSizer{size: opts.PanelSize}, nil
	}

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing panel font: %w", err)
	}
	bodySize := opts.PanelFontSize
	if bodySize <= 0 {
		bodySize = 14
	}
	bodyFace, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: bodySize, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("creating panel body face: %w", err)
	}
	titleFace, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: bodySize * 1.3, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("creating panel title face: %w", err)
	}

	padTop, padRight, padBottom, padLeft := parsePadding(opts.PanelPadding)
	return &measuredSizer{
		width:     opts.PanelSize.Width,
		minHeight: opts.PanelSize.Height,
		padTop:    padTop, padRight: padRight, padBottom: padBottom, padLeft: padLeft,
		titleFace: titleFace,
		bodyFace:  bodyFace,
	}, nil
}

func (s *measuredSizer) PanelSize(project *Project) Size {
	contentWidth := s.width - s.padLeft - s.padRight
	if contentWidth <= 0 {
		return Size{Width: s.width, Height: s.minHeight}
	}

	height := s.padTop + s.padBottom
	height += float64(len(wrapText(s.titleFace, project.Name, contentWidth))) * lineHeight(s.titleFace)
	height += float64(len(wrapText(s.bodyFace, project.ShortDescription, contentWidth))) * lineHeight(s.bodyFace)
	if project.Year != "" {
		height += lineHeight(s.bodyFace)
	}
	return Size{Width: s.width, Height: math.Max(s.minHeight, math.Ceil(height))}
}

// lineHeight is the face's ascent+descent with the usual 1.2 leading.
func lineHeight(face font.Face) float64 {
	m := face.Metrics()
	return float64((m.Ascent + m.Descent).Ceil()) * 1.2
}

// wrapText greedily breaks text into lines no wider than maxWidth. A single
// word wider than maxWidth gets a line of its own.
func wrapText(face font.Face, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if float64(font.MeasureString(face, candidate).Ceil()) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// --- Info Panel Placement ---

// placePanel computes the panel rectangle for a hovered node. PlacementBounded
// centres the panel on the node->pointer vector capped per axis by
// MaxDistance; PlacementOffset puts it beside the pointer on the side facing
// the viewport centre. Either way the result is clamped into the viewport.
func placePanel(opts EngineOptions, center, pointer Point, panel, viewport Size) Rect {
	var topLeft Point

	switch opts.Placement {
	case PlacementOffset:
		if pointer.X > viewport.Width/2.0 {
			topLeft.X = pointer.X - panel.Width - opts.PointerGap.X
		} else {
			topLeft.X = pointer.X + opts.PointerGap.X
		}
		if pointer.Y > viewport.Height/2.0 {
			topLeft.Y = pointer.Y - panel.Height - opts.PointerGap.Y
		} else {
			topLeft.Y = pointer.Y + opts.PointerGap.Y
		}
	default:
		v := VectorBetween(center, pointer)
		if length := math.Hypot(v.X, v.Y); length > 0 {
			v.X = v.X / length * math.Min(length, opts.MaxDistance.X)
			v.Y = v.Y / length * math.Min(length, opts.MaxDistance.Y)
		}
		topLeft = Point{
			X: center.X + v.X - panel.Width/2.0,
			Y: center.Y + v.Y - panel.Height/2.0,
		}
	}

	clamped := ClampToViewport(topLeft, panel, viewport, opts.ViewportMargin)
	return Rect{Left: clamped.X, Top: clamped.Y, Width: panel.Width, Height: panel.Height}
}
