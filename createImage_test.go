package main

import (
	"context"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserGeometryApply(t *testing.T) {
	raw := `{
		"found": true,
		"container": {"left": 0, "top": -40, "width": 1280, "height": 800},
		"nodes": [
			{"id": "p1", "left": 625, "top": 360, "width": 30, "height": 30},
			{"id": "p2", "left": 370, "top": 520, "width": 20, "height": 20}
		]
	}`
	var result measurement
	require.NoError(t, sonic.Unmarshal([]byte(raw), &result))

	geo := &BrowserGeometry{viewport: Size{Width: 1280, Height: 800}}
	require.NoError(t, geo.apply(result))

	container, err := geo.Container()
	require.NoError(t, err)
	assert.Equal(t, Rect{Left: 0, Top: -40, Width: 1280, Height: 800}, container)

	nodes := Layout([]Project{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}, scenarioConfig())
	box, err := geo.NodeBox(nodes[1])
	require.NoError(t, err)
	assert.Equal(t, Rect{Left: 370, Top: 520, Width: 20, Height: 20}, box)

	_, err = geo.NodeBox(nodes[2])
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestBrowserGeometryApplyMissingContainer(t *testing.T) {
	geo := &BrowserGeometry{viewport: Size{Width: 1280, Height: 800}}
	require.NoError(t, geo.apply(measurement{Found: true, Nodes: []measuredBox{{ID: "p1", Width: 10, Height: 10}}}))

	// A later measurement without the container drops every cached box
	err := geo.apply(measurement{Found: false})
	assert.ErrorIs(t, err, ErrMissingContainer)
	_, err = geo.Container()
	assert.ErrorIs(t, err, ErrMissingContainer)

	node := Layout([]Project{{ID: "p1"}}, scenarioConfig())[0]
	_, err = geo.NodeBox(node)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestBrowserGeometryFollowsController(t *testing.T) {
	geo := &BrowserGeometry{}
	var _ Measurer = geo
	var _ Resizable = geo
	var _ Scrollable = geo

	geo.SetViewport(Size{Width: 640, Height: 480})
	geo.SetScroll(120)
	assert.Equal(t, Size{Width: 640, Height: 480}, geo.Viewport())
	assert.Equal(t, 120.0, geo.scrollY)
}

func TestBrowserGeometryShiftsBoxesBetweenSamples(t *testing.T) {
	geo := &BrowserGeometry{viewport: Size{Width: 1280, Height: 800}}
	geo.SetScroll(100)
	require.NoError(t, geo.apply(measurement{
		Found:     true,
		Container: measuredBox{Top: -100, Width: 1280, Height: 3000},
		Nodes:     []measuredBox{{ID: "p1", Left: 10, Top: 300, Width: 20, Height: 20}},
	}))

	geo.SetScroll(250)
	container, err := geo.Container()
	require.NoError(t, err)
	assert.Equal(t, -250.0, container.Top)

	node := Layout([]Project{{ID: "p1"}}, scenarioConfig())[0]
	box, err := geo.NodeBox(node)
	require.NoError(t, err)
	assert.Equal(t, Rect{Left: 10, Top: 150, Width: 20, Height: 20}, box)

	assert.Equal(t, 2200.0, maxScroll(geo, 250))
}

// sampledGeometry measures a fixed column of scenario nodes without a browser.
// shift moves every node down the page on later samples.
func sampledGeometry(shift *float64, samples *int) *BrowserGeometry {
	geo := &BrowserGeometry{
		viewport: Size{Width: 1000, Height: 1000},
		page:     func(*Scene) (string, error) { return "", nil },
	}
	geo.sample = func(ctx context.Context, html string) (measurement, error) {
		*samples++
		top := 400 + *shift - geo.scrollY
		return measurement{
			Found:     true,
			Container: measuredBox{Top: -geo.scrollY, Width: 1000, Height: 3000},
			Nodes: []measuredBox{
				{ID: "p1", Left: 485, Top: top, Width: 30, Height: 30},
				{ID: "p2", Left: 485, Top: top + 200, Width: 30, Height: 30},
				{ID: "p3", Left: 485, Top: top + 100, Width: 30, Height: 30},
			},
		}, nil
	}
	return geo
}

func TestScrollResamplesBrowserGeometryWhileHovered(t *testing.T) {
	var shift float64
	var samples int
	geo := sampledGeometry(&shift, &samples)

	c, err := NewController(scenarioConfig(), geo, DefaultEngineOptions())
	require.NoError(t, err)
	c.ProjectListChange(scenarioProjects(), nil)
	require.NoError(t, c.Flush(testContext(t)))
	assert.Equal(t, 1, samples)

	c.PointerMove(Point{X: 900, Y: 415})
	c.HoverEnter("p1")
	spline, ok := c.Scene().Spline("p1")
	require.True(t, ok)
	assert.Equal(t, 415.0, spline.Start.Y)

	// Content above the timeline grows after the first sample
	shift = 50
	c.WheelScroll(300)
	for c.StepScroll(testContext(t)) {
	}

	spline, ok = c.Scene().Spline("p1")
	require.True(t, ok)
	assert.Equal(t, 165.0, spline.Start.Y, "spline starts at the node's freshly sampled center")
	assert.Greater(t, samples, 2)
}

func TestScrollWithoutHoverSkipsSampling(t *testing.T) {
	var shift float64
	var samples int
	geo := sampledGeometry(&shift, &samples)

	c, err := NewController(scenarioConfig(), geo, DefaultEngineOptions())
	require.NoError(t, err)
	c.ProjectListChange(scenarioProjects(), nil)
	require.NoError(t, c.Flush(testContext(t)))

	c.WheelScroll(300)
	for c.StepScroll(testContext(t)) {
	}
	assert.Equal(t, 1, samples)

	// Cached boxes still follow the scroll offset
	node, ok := c.Scene().Node("p1")
	require.True(t, ok)
	box, err := geo.NodeBox(node)
	require.NoError(t, err)
	assert.Equal(t, 100.0, box.Top)
}
