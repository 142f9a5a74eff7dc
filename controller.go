package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"
)

// Measurer is implemented by geometry sources that must sample a mounted
// scene before its boxes can be read (e.g. a real browser).
type Measurer interface {
	Measure(ctx context.Context, scene *Scene) error
}

// Controller owns all interaction state for one timeline: pointer, hovered
// node, scroll position and the scene. It is not safe for concurrent use;
// drive it from a single goroutine, typically through Run.
type Controller struct {
	opts   EngineOptions
	config TimelineConfig
	geo    GeometrySource
	sizer  PanelSizer
	scene  *Scene

	projects        []Project
	pointer         Point
	hovered         string
	scrollY         float64
	scrollTarget    float64
	relayoutPending bool

	showDetail func(*Project)
	onRelayout func(*Scene)
}

// NewController creates a controller with an empty scene.
func NewController(config TimelineConfig, geo GeometrySource, opts EngineOptions) (*Controller, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine options: %w", err)
	}
	sizer, err := NewPanelSizer(opts)
	if err != nil {
		return nil, err
	}
	return &Controller{
		opts:   opts,
		config: config,
		geo:    geo,
		sizer:  sizer,
		scene:  NewScene(),
	}, nil
}

// SetDetailHandler registers the callback invoked when a node is clicked.
func (c *Controller) SetDetailHandler(fn func(*Project)) { c.showDetail = fn }

// OnRelayout registers a callback invoked after every successful relayout.
func (c *Controller) OnRelayout(fn func(*Scene)) { c.onRelayout = fn }

// Scene returns the current scene. A relayout swaps in a new scene, so do not
// hold on to the result across events.
func (c *Controller) Scene() *Scene { return c.scene }

// Pointer returns the last known pointer position.
func (c *Controller) Pointer() Point { return c.pointer }

// Hovered returns the hovered node id, if any.
func (c *Controller) Hovered() (string, bool) { return c.hovered, c.hovered != "" }

// Scroll returns the current scroll offset and the offset being scrolled to.
func (c *Controller) Scroll() (float64, float64) { return c.scrollY, c.scrollTarget }

// RelayoutPending reports whether a deferred relayout is waiting for Flush.
func (c *Controller) RelayoutPending() bool { return c.relayoutPending }

// --- Event Dispatch ---

// Handle applies one event synchronously.
func (c *Controller) Handle(ctx context.Context, ev Event) {
	switch e := ev.(type) {
	case PointerMoved:
		c.PointerMove(e.Position)
	case HoverEntered:
		c.HoverEnter(e.NodeID)
	case HoverLeft:
		c.HoverLeave(e.NodeID)
	case Clicked:
		c.Click(e.NodeID)
	case Resized:
		c.ViewportResize(e.Viewport)
	case ProjectsChanged:
		c.ProjectListChange(e.Projects, e.Config)
	case Wheel:
		c.WheelScroll(e.DeltaY)
	default:
		log.Printf("Warning: ignoring unknown event %T", ev)
	}
}

// Run applies events one at a time until ctx is cancelled or events is
// closed. Relayouts requested by resize or project changes are deferred by
// RedrawDelay; requests arriving while one is already scheduled share it.
// Smooth scrolling advances one step per ScrollFrame while in flight.
func (c *Controller) Run(ctx context.Context, events <-chan Event) error {
	var (
		debounce  *time.Timer
		debounceC <-chan time.Time
		ticker    *time.Ticker
		tickC     <-chan time.Time
	)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				// Apply whatever is still pending before returning
				return c.Flush(ctx)
			}
			c.Handle(ctx, ev)
			if c.relayoutPending && debounceC == nil {
				debounce = time.NewTimer(c.opts.RedrawDelay)
				debounceC = debounce.C
			}
			if c.scrolling() && tickC == nil {
				ticker = time.NewTicker(c.opts.ScrollFrame)
				tickC = ticker.C
			}

		case <-debounceC:
			debounceC = nil
			if err := c.Flush(ctx); err != nil {
				log.Printf("Error redrawing timeline: %v", err)
			}

		case <-tickC:
			if !c.StepScroll(ctx) {
				ticker.Stop()
				tickC = nil
			}
		}
	}
}

// --- Pointer and Hover ---

// PointerMove records the pointer and, while a node is hovered, repositions
// its panel and updates its spline in place. Static connectors are untouched.
func (c *Controller) PointerMove(p Point) {
	c.pointer = p
	if c.hovered == "" {
		return
	}
	c.renderHover(c.hovered)
}

// HoverEnter makes id the hovered node and creates its panel and spline.
// A previously hovered node that never saw a leave loses its spline first.
func (c *Controller) HoverEnter(id string) {
	if _, ok := c.scene.Node(id); !ok {
		log.Printf("Warning: hover on unknown node '%s'", id)
		return
	}
	if c.hovered != "" && c.hovered != id {
		RemoveHoverSpline(c.scene, c.hovered)
	}
	c.hovered = id
	c.renderHover(id)
}

// HoverLeave removes the node's spline and clears the hovered id if it matches.
func (c *Controller) HoverLeave(id string) {
	if c.hovered == id {
		c.hovered = ""
	}
	RemoveHoverSpline(c.scene, id)
}

func (c *Controller) renderHover(id string) {
	node, ok := c.scene.Node(id)
	if !ok {
		c.hovered = ""
		return
	}
	if _, err := RenderHoverSpline(c.scene, c.geo, node, c.pointer, c.opts, c.sizer); err != nil {
		log.Printf("Error positioning info panel for '%s': %v", id, err)
	}
}

// NodeAt returns the node whose live box contains p, preferring the last
// mounted node where boxes overlap.
func (c *Controller) NodeAt(p Point) (*Node, bool) {
	nodes := c.scene.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		box, err := c.geo.NodeBox(nodes[i])
		if err != nil {
			continue
		}
		if box.Contains(p) {
			return nodes[i], true
		}
	}
	return nil, false
}

// Click hands the clicked node's project to the detail handler.
func (c *Controller) Click(id string) {
	node, ok := c.scene.Node(id)
	if !ok {
		log.Printf("Warning: click on unknown node '%s'", id)
		return
	}
	if c.showDetail != nil {
		c.showDetail(node.Project)
	}
}

// --- Layout Triggers ---

// ViewportResize records the new viewport and schedules a relayout.
func (c *Controller) ViewportResize(viewport Size) {
	if r, ok := c.geo.(Resizable); ok {
		r.SetViewport(viewport)
	}
	c.relayoutPending = true
}

// ProjectListChange replaces the project list (and optionally the config)
// and schedules a relayout. The controller keeps its own copy of projects.
func (c *Controller) ProjectListChange(projects []Project, config *TimelineConfig) {
	c.projects = append([]Project(nil), projects...)
	if config != nil {
		c.config = *config
	}
	c.relayoutPending = true
}

// Flush runs a pending relayout immediately. Without one it does nothing.
func (c *Controller) Flush(ctx context.Context) error {
	if !c.relayoutPending {
		return nil
	}
	c.relayoutPending = false
	return c.relayout(ctx)
}

// relayout builds a fresh scene and only swaps it in once nodes and static
// connectors are complete, so a failure leaves the previous scene intact.
func (c *Controller) relayout(ctx context.Context) error {
	scene := NewScene()
	scene.Mount(Layout(c.projects, c.config))

	if m, ok := c.geo.(Measurer); ok {
		if err := m.Measure(ctx, scene); err != nil {
			return fmt.Errorf("measuring timeline: %w", err)
		}
	}
	if err := RenderStaticConnectors(scene, c.geo, c.opts.TieBreak); err != nil {
		return err
	}
	c.scene = scene

	// The hovered node survives a relayout only if it is still mounted
	if c.hovered != "" {
		if _, ok := scene.Node(c.hovered); ok {
			c.renderHover(c.hovered)
		} else {
			c.hovered = ""
		}
	}

	log.Printf("Timeline laid out: %d nodes, %d connecting lines", len(scene.Nodes()), len(scene.Connectors()))
	if c.onRelayout != nil {
		c.onRelayout(scene)
	}
	return nil
}

// --- Scrolling ---

// WheelScroll moves the scroll target by deltaY, clamped to the scrollable
// range. The offset itself follows in StepScroll.
func (c *Controller) WheelScroll(deltaY float64) {
	limit := maxScroll(c.geo, c.scrollY)
	c.scrollTarget = math.Max(0, math.Min(c.scrollTarget+deltaY, limit))
	debugf("Wheel %.0f -> scroll target %.0f (max %.0f)", deltaY, c.scrollTarget, limit)
}

func (c *Controller) scrolling() bool {
	return c.scrollY != c.scrollTarget
}

// StepScroll advances smooth scrolling by one frame and reports whether more
// frames are needed.
func (c *Controller) StepScroll(ctx context.Context) bool {
	if !c.scrolling() {
		return false
	}
	remaining := c.scrollTarget - c.scrollY
	if math.Abs(remaining) < 0.5 {
		c.scrollY = c.scrollTarget
	} else {
		c.scrollY += remaining * c.opts.ScrollSmoothing
	}
	if s, ok := c.geo.(Scrollable); ok {
		s.SetScroll(c.scrollY)
	}
	done := !c.scrolling()

	// Re-sample measured boxes before anything reads them this frame
	if m, ok := c.geo.(Measurer); ok && (c.hovered != "" || c.opts.RedrawOnScroll) {
		if err := m.Measure(ctx, c.scene); err != nil {
			log.Printf("Error measuring timeline on scroll: %v", err)
		}
	}

	if c.opts.RedrawOnScroll {
		if err := RenderStaticConnectors(c.scene, c.geo, c.opts.TieBreak); err != nil {
			log.Printf("Error redrawing connecting lines on scroll: %v", err)
		}
	}
	// Nodes moved under a fixed panel
	if c.hovered != "" {
		c.renderHover(c.hovered)
	}
	return !done
}
