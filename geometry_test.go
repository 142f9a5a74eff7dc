package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxEdgeIntersection(t *testing.T) {
	center := Point{X: 0, Y: 0}
	tests := []struct {
		name     string
		toward   Point
		expected Point
	}{
		{name: "right edge midpoint", toward: Point{X: 100, Y: 0}, expected: Point{X: 50, Y: 0}},
		{name: "left edge midpoint", toward: Point{X: -5, Y: 0}, expected: Point{X: -50, Y: 0}},
		{name: "bottom edge", toward: Point{X: 0, Y: 10}, expected: Point{X: 0, Y: 30}},
		{name: "top edge", toward: Point{X: 0, Y: -1}, expected: Point{X: 0, Y: -30}},
		{name: "diagonal exits through the shorter half extent", toward: Point{X: 100, Y: 100}, expected: Point{X: 30, Y: 30}},
		{name: "shallow ray exits through the side", toward: Point{X: 100, Y: 20}, expected: Point{X: 50, Y: 10}},
		{name: "zero vector returns center", toward: Point{}, expected: center},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoxEdgeIntersection(center, 50, 30, tt.toward)
			assert.InDelta(t, tt.expected.X, got.X, 1e-9)
			assert.InDelta(t, tt.expected.Y, got.Y, 1e-9)
		})
	}
}

func TestClampToViewport(t *testing.T) {
	viewport := Size{Width: 800, Height: 600}
	box := Size{Width: 100, Height: 50}

	tests := []struct {
		name     string
		point    Point
		box      Size
		expected Point
	}{
		{name: "in bounds unchanged", point: Point{X: 200, Y: 300}, box: box, expected: Point{X: 200, Y: 300}},
		{name: "left and bottom overflow", point: Point{X: -5, Y: 900}, box: box, expected: Point{X: 10, Y: 540}},
		{name: "right and top overflow", point: Point{X: 790, Y: 0}, box: box, expected: Point{X: 690, Y: 10}},
		{name: "box wider than viewport sticks to margin", point: Point{X: 300, Y: 300}, box: Size{Width: 1000, Height: 50}, expected: Point{X: 10, Y: 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampToViewport(tt.point, tt.box, viewport, 10)
			assert.Equal(t, tt.expected, got)
			// Clamping a clamped point changes nothing
			assert.Equal(t, got, ClampToViewport(got, tt.box, viewport, 10))
		})
	}
}

func TestCubicControlPoints(t *testing.T) {
	t.Run("control points on the chord", func(t *testing.T) {
		c1, c2 := CubicControlPoints(Point{X: 0, Y: 0}, Point{X: 100, Y: 0}, 0.3)
		assert.InDelta(t, 30, c1.X, 1e-9)
		assert.InDelta(t, 0, c1.Y, 1e-9)
		assert.InDelta(t, 70, c2.X, 1e-9)
		assert.InDelta(t, 0, c2.Y, 1e-9)
	})

	t.Run("equal endpoints", func(t *testing.T) {
		p := Point{X: 12, Y: 34}
		c1, c2 := CubicControlPoints(p, p, 0.3)
		assert.Equal(t, p, c1)
		assert.Equal(t, p, c2)
	})

	t.Run("tightness is clamped", func(t *testing.T) {
		start, end := Point{X: 0, Y: 0}, Point{X: 0, Y: 10}
		c1, c2 := CubicControlPoints(start, end, 2)
		assert.Equal(t, end, c1)
		assert.Equal(t, start, c2)

		c1, c2 = CubicControlPoints(start, end, -1)
		assert.Equal(t, start, c1)
		assert.Equal(t, end, c2)
	})
}

func TestStaticConnectorEnd(t *testing.T) {
	start := Point{X: 10, Y: 20}
	end := Point{X: 40, Y: 60}
	v := VectorBetween(start, end)
	c := StaticConnector{Start: start, Length: Distance(start, end), AngleDeg: AngleDegrees(v)}

	assert.InDelta(t, 50, c.Length, 1e-9)
	got := c.End()
	assert.InDelta(t, end.X, got.X, 1e-9)
	assert.InDelta(t, end.Y, got.Y, 1e-9)
	assert.InDelta(t, 90, AngleDegrees(Point{X: 0, Y: 5}), 1e-9)
}

func TestRectHelpers(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Width: 100, Height: 40}
	assert.Equal(t, Point{X: 60, Y: 40}, r.Center())
	hw, hh := r.HalfExtents()
	assert.Equal(t, 50.0, hw)
	assert.Equal(t, 20.0, hh)
	assert.True(t, r.Contains(Point{X: 10, Y: 20}))
	assert.True(t, r.Contains(Point{X: 110, Y: 60}))
	assert.False(t, r.Contains(Point{X: 111, Y: 60}))
	assert.Equal(t, Rect{Left: 15, Top: 15, Width: 100, Height: 40}, r.Translate(5, -5))
}
