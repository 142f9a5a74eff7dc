package main

import (
	"bytes"
	"fmt"
	"math"
)

// Constants
const defaultFont = "Arial, sans-serif"
const svgPadding = 20.0
const panelTitleFontSize = 16
const panelBodyFontSize = 13

// Structure to hold calculated bounds
type bounds struct {
	minX, maxX, minY, maxY float64
	isSet                  bool
}

// Update bounds considering a point (x, y)
func (b *bounds) updatePoint(x, y float64) {
	if !b.isSet {
		b.minX, b.maxX = x, x
		b.minY, b.maxY = y, y
		b.isSet = true
	} else {
		b.minX = math.Min(b.minX, x)
		b.maxX = math.Max(b.maxX, x)
		b.minY = math.Min(b.minY, y)
		b.maxY = math.Max(b.maxY, y)
	}
}

// Update bounds considering a rectangle
func (b *bounds) updateRect(r Rect) {
	if r.Width > 0 && r.Height > 0 {
		b.updatePoint(r.Left, r.Top)
		b.updatePoint(r.Left+r.Width, r.Top+r.Height)
	}
}

// GenerateSVG serialises the scene as a standalone SVG in viewport
// coordinates: static connectors first, then nodes, then open info panels and
// their hover splines on top.
func GenerateSVG(scene *Scene, geo GeometrySource, opts EngineOptions) (string, error) {
	container, err := geo.Container()
	if err != nil {
		return "", fmt.Errorf("generating SVG: %w", err)
	}
	// An empty timeline still renders as a blank canvas
	nodes := scene.Nodes()

	var svgBody bytes.Buffer
	sceneBounds := bounds{}

	// --- Phase 1: Static connectors ---
	connColor, connWidth, connDash := lineStyleAttributes(opts.Connector)
	for _, c := range scene.Connectors() {
		start := Point{X: c.Start.X + container.Left, Y: c.Start.Y + container.Top}
		end := c.End()
		end.X += container.Left
		end.Y += container.Top
		fmt.Fprintf(&svgBody, `  <line class="connecting-line" data-from="%s" data-to="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"%s />`,
			escapeXML(c.FromID), escapeXML(c.ToID), start.X, start.Y, end.X, end.Y, connColor, connWidth, connDash)
		svgBody.WriteString("\n")
		sceneBounds.updatePoint(start.X, start.Y)
		sceneBounds.updatePoint(end.X, end.Y)
	}

	// --- Phase 2: Nodes ---
	for _, node := range nodes {
		box, err := geo.NodeBox(node)
		if err != nil {
			return "", fmt.Errorf("generating SVG for node '%s': %w", node.ID(), err)
		}
		drawNode(&svgBody, &sceneBounds, node, box, connColor, opts)
	}

	// --- Phase 3: Info panels and hover splines on top ---
	for _, panel := range scene.Panels() {
		node, ok := scene.Node(panel.NodeID)
		if !ok {
			continue
		}
		drawInfoPanel(&svgBody, &sceneBounds, node.Project, panel)
	}
	splineColor, splineWidth, splineDash := lineStyleAttributes(opts.Spline)
	for _, spline := range scene.Splines() {
		fmt.Fprintf(&svgBody, `  <path class="spline-connector" data-for="%s" d="%s" stroke="%s" stroke-width="%.2f"%s fill="none" />`,
			escapeXML(spline.NodeID), spline.PathData(), splineColor, splineWidth, splineDash)
		svgBody.WriteString("\n")
		sceneBounds.updatePoint(spline.Start.X, spline.Start.Y)
		sceneBounds.updatePoint(spline.End.X, spline.End.Y)
	}

	return assembleFinalSVG(svgBody, sceneBounds, svgPadding), nil
}

// lineStyleAttributes resolves stroke color, width and dash array for a line style.
func lineStyleAttributes(style LineStyle) (string, float64, string) {
	color := style.Color
	if color == "" {
		color = "#000000"
	}
	width := style.Width
	if width <= 0 {
		width = 1
	}
	return escapeXML(color), width, getStrokeDashArray(style.LineType, width)
}

// Helper: Draw one node as a circle labelled with its position
func drawNode(svg *bytes.Buffer, bounds *bounds, node *Node, box Rect, color string, opts EngineOptions) {
	center := box.Center()
	radius := math.Min(box.Width, box.Height) / 2.0
	p := node.Project
	// Same resolved classes as the HTML page
	size := cssIdent(knownToken(opts.NodeSizes, p.Size, "medium"))
	lane := cssIdent(knownToken(opts.Lanes, p.HorizontalPosition, "center"))
	fmt.Fprintf(svg, `  <g class="project-node size-%s position-%s" data-id="%s" data-collection="%s" data-position="%s">`,
		size, lane, escapeXML(p.ID), escapeXML(p.Collection), formatNumber(p.Position))
	svg.WriteString("\n")
	fmt.Fprintf(svg, `    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="#FFFFFF" stroke="%s" stroke-width="2" />`,
		center.X, center.Y, radius, color)
	svg.WriteString("\n")
	fmt.Fprintf(svg, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="%d" text-anchor="middle" dominant-baseline="central">%s</text>`,
		center.X, center.Y, defaultFont, int(math.Max(8, radius)), formatNumber(p.Position))
	svg.WriteString("\n  </g>\n")
	bounds.updateRect(box)
}

// Helper: Draw an info panel with title, description and year
func drawInfoPanel(svg *bytes.Buffer, bounds *bounds, project *Project, panel *InfoPanel) {
	r := panel.Rect
	fmt.Fprintf(svg, `  <g class="project-info info-%s" data-for="%s">`, escapeXML(panel.Alignment), escapeXML(panel.NodeID))
	svg.WriteString("\n")
	fmt.Fprintf(svg, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="#FFFFFF" stroke="#DDDDDD" />`,
		r.Left, r.Top, r.Width, r.Height)
	svg.WriteString("\n")
	fmt.Fprintf(svg, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="%d" font-weight="bold">%s</text>`,
		r.Left+12, r.Top+12+panelTitleFontSize, defaultFont, panelTitleFontSize, escapeXML(project.Name))
	svg.WriteString("\n")

	// Description wraps inside a foreignObject, as SVG text does not
	bodyTop := r.Top + 12 + panelTitleFontSize*1.5
	bodyHeight := math.Max(0, r.Top+r.Height-bodyTop-12-panelBodyFontSize*1.4)
	fmt.Fprintf(svg, `    <foreignObject x="%.2f" y="%.2f" width="%.2f" height="%.2f">`,
		r.Left+12, bodyTop, math.Max(0, r.Width-24), bodyHeight)
	fmt.Fprintf(svg, `<div xmlns="http://www.w3.org/1999/xhtml" style="font-family:%s; font-size:%dpx; margin:0;">%s</div>`,
		escapeCSS(defaultFont), panelBodyFontSize, escapeXML(project.ShortDescription))
	svg.WriteString("</foreignObject>\n")

	fmt.Fprintf(svg, `    <text class="project-year" x="%.2f" y="%.2f" font-family="%s" font-size="%d" fill="#777777">%s</text>`,
		r.Left+12, r.Top+r.Height-12, defaultFont, panelBodyFontSize, escapeXML(project.Year))
	svg.WriteString("\n  </g>\n")
	bounds.updateRect(r)
}

func assembleFinalSVG(svgBody bytes.Buffer, sceneBounds bounds, padding float64) string {
	finalWidth := padding * 2
	finalHeight := padding * 2
	offsetX := padding - sceneBounds.minX
	offsetY := padding - sceneBounds.minY

	if sceneBounds.isSet {
		finalWidth += sceneBounds.maxX - sceneBounds.minX
		finalHeight += sceneBounds.maxY - sceneBounds.minY
	} else {
		finalWidth += 600 // Default size if bounds not set
		finalHeight += 100
	}

	finalWidth = math.Max(finalWidth, 10)
	finalHeight = math.Max(finalHeight, 10)

	var finalSVG bytes.Buffer
	fmt.Fprintf(&finalSVG, `<svg width="%.0f" height="%.0f" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`,
		finalWidth, finalHeight)
	finalSVG.WriteString("\n")

	// Add a white background rectangle
	fmt.Fprintf(&finalSVG, `  <rect width="%.0f" height="%.0f" fill="#FFFFFF" />`, finalWidth, finalHeight)
	finalSVG.WriteString("\n")

	fmt.Fprintf(&finalSVG, `<g transform="translate(%.2f, %.2f)">`, offsetX, offsetY)
	finalSVG.WriteString("\n")
	finalSVG.Write(svgBody.Bytes())
	finalSVG.WriteString("</g>\n")
	finalSVG.WriteString("</svg>")

	return finalSVG.String()
}
