package main

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingContainer means the timeline container is not available to measure.
	ErrMissingContainer = errors.New("timeline container is not mounted")
	// ErrUnknownNode means the geometry source has no box for the requested node.
	ErrUnknownNode = errors.New("unknown node")
)

// GeometrySource reports live element geometry in viewport pixels. Boxes must
// be read again after anything that affects layout; callers never cache them.
type GeometrySource interface {
	Viewport() Size
	Container() (Rect, error)
	NodeBox(node *Node) (Rect, error)
}

// Resizable is implemented by geometry sources that follow viewport changes.
type Resizable interface {
	SetViewport(viewport Size)
}

// Scrollable is implemented by geometry sources that follow the page scroll offset.
type Scrollable interface {
	SetScroll(offset float64)
}

// --- Layout-computed Geometry ---

// LayoutGeometry derives boxes from the layout itself, the way the page's
// stylesheet would place them: the container spans the viewport width from
// the top of the page, a node's top edge sits at ScreenTop vh, its lane picks
// the horizontal center and its size token picks the diameter.
type LayoutGeometry struct {
	viewport        Size
	scrollY         float64
	containerTop    float64 // Page pixels above the container (header)
	containerHeight float64 // vh
	lanes           map[string]float64
	nodeSizes       map[string]float64
}

// NewLayoutGeometry builds a layout-computed geometry source.
func NewLayoutGeometry(viewport Size, opts EngineOptions) *LayoutGeometry {
	return &LayoutGeometry{
		viewport:        viewport,
		containerHeight: opts.ContainerHeight,
		lanes:           opts.Lanes,
		nodeSizes:       opts.NodeSizes,
	}
}

// SetViewport implements Resizable.
func (g *LayoutGeometry) SetViewport(viewport Size) { g.viewport = viewport }

// SetScroll implements Scrollable.
func (g *LayoutGeometry) SetScroll(offset float64) { g.scrollY = offset }

// SetContainerTop moves the container down the page by top pixels.
func (g *LayoutGeometry) SetContainerTop(top float64) { g.containerTop = top }

// Viewport implements GeometrySource.
func (g *LayoutGeometry) Viewport() Size { return g.viewport }

// Container implements GeometrySource.
func (g *LayoutGeometry) Container() (Rect, error) {
	if g.viewport.Width <= 0 || g.viewport.Height <= 0 {
		return Rect{}, ErrMissingContainer
	}
	return Rect{
		Left:   0,
		Top:    g.containerTop - g.scrollY,
		Width:  g.viewport.Width,
		Height: g.containerHeight / 100.0 * g.viewport.Height,
	}, nil
}

// NodeBox implements GeometrySource.
func (g *LayoutGeometry) NodeBox(node *Node) (Rect, error) {
	if node == nil || node.Project == nil {
		return Rect{}, ErrUnknownNode
	}
	container, err := g.Container()
	if err != nil {
		return Rect{}, err
	}

	diameter := g.tokenValue(g.nodeSizes, node.Project.Size, "medium", 30)
	lane := g.tokenValue(g.lanes, node.Project.HorizontalPosition, "center", 0.5)

	centerX := container.Left + lane*container.Width
	top := container.Top + node.ScreenTop/100.0*g.viewport.Height
	return Rect{Left: centerX - diameter/2.0, Top: top, Width: diameter, Height: diameter}, nil
}

// tokenValue resolves a design token, falling back to the fallback token and
// then to a hardcoded default.
func (g *LayoutGeometry) tokenValue(table map[string]float64, token, fallbackToken string, def float64) float64 {
	if v, ok := table[token]; ok {
		return v
	}
	if token != "" {
		debugf("Unknown token '%s', using '%s'", token, fallbackToken)
	}
	if v, ok := table[fallbackToken]; ok {
		return v
	}
	return def
}

// --- Shared Geometry Reads ---

// nodeCenter reads a node's live center in viewport pixels.
func nodeCenter(geo GeometrySource, node *Node) (Point, error) {
	box, err := geo.NodeBox(node)
	if err != nil {
		return Point{}, fmt.Errorf("node '%s': %w", node.ID(), err)
	}
	return box.Center(), nil
}

// maxScroll is how far the page can scroll before the container bottom
// reaches the viewport bottom.
func maxScroll(geo GeometrySource, scrollY float64) float64 {
	container, err := geo.Container()
	if err != nil {
		return 0
	}
	pageBottom := container.Top + scrollY + container.Height
	if limit := pageBottom - geo.Viewport().Height; limit > 0 {
		return limit
	}
	return 0
}
