package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// --- Debug Overlay ---

// inspectColumns are the per-node columns of the overlay table.
var inspectColumns = []string{"ID", "POSITION", "COLLECTION", "LEFT", "TOP", "WIDTH", "HEIGHT"}

// terminalWidth returns the stdout terminal width, or a fallback when stdout
// is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 60 {
		width = 80 // Default fallback
	}
	return width
}

// padString pads s with spaces to the given display width.
func padString(s string, width int) string {
	actual := runewidth.StringWidth(s)
	if actual >= width {
		return s
	}
	return s + strings.Repeat(" ", width-actual)
}

// writeInspection prints the live geometry of a scene: viewport, container,
// counts, and one row per node with its measured box. Rows are truncated to
// maxWidth display columns.
func writeInspection(w io.Writer, scene *Scene, geo GeometrySource, maxWidth int) error {
	viewport := geo.Viewport()
	nodes := scene.Nodes()
	fmt.Fprintf(w, "Viewport:  %.0fx%.0f\n", viewport.Width, viewport.Height)
	if container, err := geo.Container(); err != nil {
		fmt.Fprintf(w, "Container: %v\n", err)
	} else {
		fmt.Fprintf(w, "Container: left %.1f, top %.1f, %.1fx%.1f\n", container.Left, container.Top, container.Width, container.Height)
	}
	fmt.Fprintf(w, "Nodes: %d  Connecting lines: %d  Splines: %d\n", len(nodes), len(scene.Connectors()), len(scene.Splines()))
	if len(nodes) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(nodes))
	for _, node := range nodes {
		p := node.Project
		row := []string{p.ID, formatNumber(p.Position), p.Collection, "-", "-", "-", "-"}
		if box, err := geo.NodeBox(node); err == nil {
			row[3] = fmt.Sprintf("%.1f", box.Left)
			row[4] = fmt.Sprintf("%.1f", box.Top)
			row[5] = fmt.Sprintf("%.1f", box.Width)
			row[6] = fmt.Sprintf("%.1f", box.Height)
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(inspectColumns))
	for i, col := range inspectColumns {
		widths[i] = runewidth.StringWidth(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	writeRow := func(cells []string) error {
		var line strings.Builder
		for i, cell := range cells {
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(padString(cell, widths[i]))
		}
		out := strings.TrimRight(line.String(), " ")
		if maxWidth > 0 {
			out = runewidth.Truncate(out, maxWidth, "…")
		}
		_, err := fmt.Fprintln(w, out)
		return err
	}

	if err := writeRow(inspectColumns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(row); err != nil {
			return err
		}
	}

	for _, c := range scene.Connectors() {
		fmt.Fprintf(w, "  %s -> %s  length %.1f  angle %.1f°\n", c.FromID, c.ToID, c.Length, c.AngleDeg)
	}
	return nil
}
