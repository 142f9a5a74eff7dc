// generateHTML.go
package main

import (
	"fmt"
	"sort"
	"strings"
)

// generateHTML renders the scene as the timeline page: one absolutely
// positioned div per node tagged with data-id, data-collection and
// data-position, rotated divs for the connecting lines, fixed info panels and
// one fixed SVG per hover spline. The same page is what BrowserGeometry
// loads and measures.
func generateHTML(scene *Scene, opts EngineOptions) (string, error) { // NOSONAR
	var htmlBuilder strings.Builder

	// --- Basic HTML Structure ---
	htmlBuilder.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Timeline</title>\n")
	htmlBuilder.WriteString("<style>\n")
	htmlBuilder.WriteString(fmt.Sprintf("body { margin: 0; font-family: %s; }\n", escapeCSS(defaultFont)))
	htmlBuilder.WriteString(fmt.Sprintf("#timeline-container { position: relative; width: 100%%; height: %gvh; }\n", opts.ContainerHeight))

	// --- Node Styles ---
	htmlBuilder.WriteString(`.project-node {
            position: absolute;
            box-sizing: border-box;
            border-radius: 50%;
            background: #FFFFFF;
            display: flex;
            align-items: center;
            justify-content: center;
            cursor: pointer;
            z-index: 10;
        }
`)
	connColor, connWidth := opts.Connector.Color, opts.Connector.Width
	if connColor == "" {
		connColor = "#000000"
	}
	if connWidth <= 0 {
		connWidth = 1
	}
	htmlBuilder.WriteString(fmt.Sprintf(".project-node { border: 2px solid %s; }\n", escapeCSS(connColor)))

	// Design tokens become classes, in a stable order
	for _, token := range sortedTokens(opts.NodeSizes) {
		d := opts.NodeSizes[token]
		// Centre on the lane with a margin; a transform would trap the fixed panel inside the node
		htmlBuilder.WriteString(fmt.Sprintf(".size-%s { width: %gpx; height: %gpx; font-size: %gpx; margin-left: -%gpx; }\n",
			cssIdent(token), d, d, d/2, d/2))
	}
	for _, token := range sortedTokens(opts.Lanes) {
		htmlBuilder.WriteString(fmt.Sprintf(".position-%s { left: %.6g%%; }\n", cssIdent(token), opts.Lanes[token]*100))
	}

	// --- Connector and Panel Styles ---
	htmlBuilder.WriteString(fmt.Sprintf(".connecting-line { position: absolute; height: 0; border-top: %gpx %s %s; transform-origin: left center; z-index: 1; }\n",
		connWidth, cssBorderStyle(opts.Connector.LineType), escapeCSS(connColor)))
	htmlBuilder.WriteString(`.project-info {
            display: none;
            box-sizing: border-box;
            background: #FFFFFF;
            border: 1px solid #DDDDDD;
            border-radius: 4px;
            overflow: hidden;
            z-index: 20;
        }
        .project-info.visible { display: block; position: fixed; transform: none; }
        .project-info h3 { margin: 0 0 6px 0; font-size: 16px; }
        .project-info p { margin: 0; font-size: 13px; }
        .project-year { color: #777777; font-size: 13px; margin-top: 6px; }
        .spline-connector { position: fixed; top: 0; left: 0; width: 100%; height: 100%; pointer-events: none; z-index: 15; }
`)
	padTop, padRight, padBottom, padLeft := parsePadding(opts.PanelPadding)
	htmlBuilder.WriteString(fmt.Sprintf(".project-info { padding: %gpx %gpx %gpx %gpx; width: %gpx; }\n",
		padTop, padRight, padBottom, padLeft, opts.PanelSize.Width))
	htmlBuilder.WriteString("</style>\n</head>\n<body>\n")
	htmlBuilder.WriteString("<div id=\"timeline-container\">\n")

	// --- Nodes, each carrying its info panel ---
	for _, node := range scene.Nodes() {
		p := node.Project
		htmlBuilder.WriteString(fmt.Sprintf("  <div class=\"project-node size-%s position-%s\" data-id=\"%s\" data-collection=\"%s\" data-position=\"%s\" style=\"top: %gvh;\">%s\n",
			cssIdent(knownToken(opts.NodeSizes, p.Size, "medium")), cssIdent(knownToken(opts.Lanes, p.HorizontalPosition, "center")), escapeHTML(p.ID), escapeHTML(p.Collection),
			formatNumber(p.Position), node.ScreenTop, formatNumber(p.Position)))

		panelClass := "project-info"
		if node.InfoAlignment != "" {
			panelClass += " info-" + cssIdent(node.InfoAlignment)
		}
		panelStyle := ""
		if panel, ok := scene.Panel(node.ID()); ok {
			panelClass += " visible"
			panelStyle = fmt.Sprintf(" style=\"left: %.2fpx; top: %.2fpx; width: %.2fpx; height: %.2fpx;\"",
				panel.Rect.Left, panel.Rect.Top, panel.Rect.Width, panel.Rect.Height)
		}
		htmlBuilder.WriteString(fmt.Sprintf("    <div class=\"%s\"%s>\n", panelClass, panelStyle))
		htmlBuilder.WriteString(fmt.Sprintf("      <h3>%s</h3>\n      <p>%s</p>\n      <div class=\"project-year\">%s</div>\n",
			escapeHTML(p.Name), escapeHTML(p.ShortDescription), escapeHTML(p.Year)))
		htmlBuilder.WriteString("    </div>\n  </div>\n")
	}

	// --- Static connecting lines ---
	for _, c := range scene.Connectors() {
		htmlBuilder.WriteString(fmt.Sprintf("  <div class=\"connecting-line\" data-from=\"%s\" data-to=\"%s\" style=\"width: %.2fpx; left: %.2fpx; top: %.2fpx; transform: rotate(%.4fdeg);\"></div>\n",
			escapeHTML(c.FromID), escapeHTML(c.ToID), c.Length, c.Start.X, c.Start.Y, c.AngleDeg))
	}
	htmlBuilder.WriteString("</div>\n") // Close timeline-container

	// --- Hover splines, fixed over the viewport ---
	splineColor, splineWidth, splineDash := lineStyleAttributes(opts.Spline)
	for _, spline := range scene.Splines() {
		htmlBuilder.WriteString(fmt.Sprintf("<svg class=\"spline-connector\" data-for=\"%s\" xmlns=\"http://www.w3.org/2000/svg\">", escapeHTML(spline.NodeID)))
		htmlBuilder.WriteString(fmt.Sprintf("<path d=\"%s\" stroke=\"%s\" stroke-width=\"%g\"%s fill=\"none\"/></svg>\n",
			spline.PathData(), splineColor, splineWidth, splineDash))
	}

	htmlBuilder.WriteString("</body>\n</html>")
	return htmlBuilder.String(), nil
}

// sortedTokens returns the keys of a token table in lexical order.
func sortedTokens(table map[string]float64) []string {
	tokens := make([]string, 0, len(table))
	for token := range table {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// knownToken returns token if the table defines it, otherwise fallback.
func knownToken(table map[string]float64, token, fallback string) string {
	if _, ok := table[token]; ok {
		return token
	}
	return fallback
}

// cssIdent keeps only characters that are safe inside a class name.
func cssIdent(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
