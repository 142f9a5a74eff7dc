package main

import "math"

// --- Geometry Utilities ---
// Pure functions only. None of these may panic or return an error: degenerate
// input (zero-length vectors, boxes larger than the viewport) has defined results.

// VectorBetween returns the vector pointing from a to b.
func VectorBetween(a, b Point) Point {
	return Point{X: b.X - a.X, Y: b.Y - a.Y}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Center returns the center of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2.0, Y: r.Top + r.Height/2.0}
}

// HalfExtents returns half the width and half the height.
func (r Rect) HalfExtents() (float64, float64) {
	return r.Width / 2.0, r.Height / 2.0
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Left+r.Width && p.Y >= r.Top && p.Y <= r.Top+r.Height
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// ClampToViewport clamps the top-left corner of a box so the whole box stays
// within [margin, viewport-box-margin] on each axis. When the box is larger
// than the viewport the lower bound wins and the box overflows past the far edge.
func ClampToViewport(p Point, box Size, viewport Size, margin float64) Point {
	return Point{
		X: clampAxis(p.X, box.Width, viewport.Width, margin),
		Y: clampAxis(p.Y, box.Height, viewport.Height, margin),
	}
}

func clampAxis(v, boxLen, viewportLen, margin float64) float64 {
	upper := viewportLen - boxLen - margin
	return math.Max(margin, math.Min(v, upper))
}

// BoxEdgeIntersection returns the point where a ray from the box center along
// toward leaves the box. A mostly horizontal ray exits through the left/right
// edge, a mostly vertical one through the top/bottom edge. A zero vector
// returns the center unchanged.
func BoxEdgeIntersection(center Point, halfWidth, halfHeight float64, toward Point) Point {
	dx, dy := toward.X, toward.Y
	absDx, absDy := math.Abs(dx), math.Abs(dy)
	if absDx == 0 && absDy == 0 {
		return center
	}

	var t float64
	if absDx*halfHeight > absDy*halfWidth || absDy == 0 {
		t = halfWidth / absDx // Left or right edge
	} else {
		t = halfHeight / absDy // Top or bottom edge
	}
	return Point{X: center.X + dx*t, Y: center.Y + dy*t}
}

// CubicControlPoints places both bezier control points on the start->end line,
// tightness*distance away from their endpoint. Tightness is clamped to [0, 1];
// smaller values give a straighter curve. Equal endpoints yield c1 == start and
// c2 == end.
func CubicControlPoints(start, end Point, tightness float64) (Point, Point) {
	tightness = math.Max(0, math.Min(1, tightness))
	v := VectorBetween(start, end)
	if v.X == 0 && v.Y == 0 {
		return start, end
	}
	// Normalised direction times tightness*distance reduces to tightness*v
	c1 := Point{X: start.X + v.X*tightness, Y: start.Y + v.Y*tightness}
	c2 := Point{X: end.X - v.X*tightness, Y: end.Y - v.Y*tightness}
	return c1, c2
}

// AngleDegrees returns atan2(v.Y, v.X) in degrees.
func AngleDegrees(v Point) float64 {
	return math.Atan2(v.Y, v.X) * 180.0 / math.Pi
}

// pointAlong walks length pixels from start at angleDeg (0 = +X, 90 = +Y).
func pointAlong(start Point, length, angleDeg float64) Point {
	rad := angleDeg * math.Pi / 180.0
	return Point{X: start.X + length*math.Cos(rad), Y: start.Y + length*math.Sin(rad)}
}
