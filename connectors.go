package main

import (
	"fmt"
)

// --- Static Connectors ---

// RenderStaticConnectors clears and redraws the straight segments between
// chronologically adjacent nodes (descending position). Segments are in
// container-relative pixels, anchored at the first node's center and rotated
// about that point. All geometry is read before the scene is touched, so a
// failed read leaves the previous connectors in place.
func RenderStaticConnectors(scene *Scene, geo GeometrySource, tieBreak string) error {
	container, err := geo.Container()
	if err != nil {
		return fmt.Errorf("drawing connecting lines: %w", err)
	}

	sorted := sortByPositionDesc(scene.Nodes(), tieBreak)
	if len(sorted) < 2 {
		scene.setConnectors(nil)
		return nil
	}

	connectors := make([]StaticConnector, 0, len(sorted)-1)
	for i := 0; i < len(sorted)-1; i++ {
		current, next := sorted[i], sorted[i+1]

		a, err := nodeCenter(geo, current)
		if err != nil {
			return fmt.Errorf("drawing connecting lines: %w", err)
		}
		b, err := nodeCenter(geo, next)
		if err != nil {
			return fmt.Errorf("drawing connecting lines: %w", err)
		}

		// Relative positions within the container
		start := Point{X: a.X - container.Left, Y: a.Y - container.Top}
		end := Point{X: b.X - container.Left, Y: b.Y - container.Top}

		connectors = append(connectors, StaticConnector{
			FromID:   current.ID(),
			ToID:     next.ID(),
			Start:    start,
			Length:   Distance(start, end),
			AngleDeg: AngleDegrees(VectorBetween(start, end)),
		})
	}

	scene.setConnectors(connectors)
	debugf("Drew %d connecting lines", len(connectors))
	return nil
}

// --- Hover Splines ---

// RenderHoverSpline positions the node's info panel for the current pointer
// and routes a cubic spline from the node center to the panel edge facing the
// node. An existing panel and spline for the node are updated in place;
// otherwise they are created. Both are keyed by node id.
func RenderHoverSpline(scene *Scene, geo GeometrySource, node *Node, pointer Point, opts EngineOptions, sizer PanelSizer) (*HoverSpline, error) {
	if _, ok := scene.Node(node.ID()); !ok {
		return nil, fmt.Errorf("hover spline for '%s': %w", node.ID(), ErrUnknownNode)
	}
	start, err := nodeCenter(geo, node)
	if err != nil {
		return nil, fmt.Errorf("hover spline: %w", err)
	}

	rect := placePanel(opts, start, pointer, sizer.PanelSize(node.Project), geo.Viewport())

	// Stop the curve at the panel edge rather than its center
	panelCenter := rect.Center()
	halfWidth, halfHeight := rect.HalfExtents()
	end := BoxEdgeIntersection(panelCenter, halfWidth, halfHeight, VectorBetween(panelCenter, start))
	c1, c2 := CubicControlPoints(start, end, opts.Tightness)

	id := node.ID()
	panel, ok := scene.panels[id]
	if !ok {
		panel = &InfoPanel{NodeID: id}
		scene.panels[id] = panel
	}
	panel.Rect = rect
	panel.Alignment = node.InfoAlignment

	spline, ok := scene.splines[id]
	if !ok {
		spline = &HoverSpline{NodeID: id}
		scene.splines[id] = spline
		debugf("Created spline for '%s'", id)
	}
	spline.Start, spline.C1, spline.C2, spline.End = start, c1, c2, end
	return spline, nil
}

// RemoveHoverSpline drops the node's spline and panel. Removing a spline that
// does not exist is a no-op.
func RemoveHoverSpline(scene *Scene, id string) {
	if _, ok := scene.splines[id]; ok {
		debugf("Removed spline for '%s'", id)
	}
	scene.removeHover(id)
}

// PathData renders the spline as an SVG path "d" attribute.
func (h *HoverSpline) PathData() string {
	return fmt.Sprintf("M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f",
		h.Start.X, h.Start.Y, h.C1.X, h.C1.Y, h.C2.X, h.C2.Y, h.End.X, h.End.Y)
}
