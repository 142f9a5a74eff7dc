package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
)

// --- Helper Functions for Effective Options ---

// Helper to get value from pointer or default
func getString(ptr *string, def string) string {
	if ptr != nil {
		return *ptr
	}
	return def
}
func getFloat64(ptr *float64, def float64) float64 {
	if ptr != nil {
		return *ptr
	}
	return def
}
func getBool(ptr *bool, def bool) bool {
	if ptr != nil {
		return *ptr
	}
	return def
}
func getDuration(ptr *time.Duration, def time.Duration) time.Duration {
	if ptr != nil {
		return *ptr
	}
	return def
}

// --- Debug Logging ---

// debugMode is set from the --debug flag.
var debugMode bool

// debugf logs only when debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if debugMode {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// --- SVG Dash Array Helper ---
func getStrokeDashArray(lineType string, width float64) string {
	dashArray := ""
	if width <= 0 {
		width = 1
	} // Ensure width is positive for calculations
	switch lineType {
	case "dotted":
		dashArray = fmt.Sprintf(` stroke-dasharray="%g %g"`, width, width*2)
	case "dashed":
		// A 1px dashed line gives the "4 2" pattern the hover splines always used
		dashArray = fmt.Sprintf(` stroke-dasharray="%g %g"`, width*4, width*2)
	}
	return dashArray
}

// cssBorderStyle maps a line type onto a CSS border-style keyword.
func cssBorderStyle(lineType string) string {
	if lineType == "dotted" || lineType == "dashed" {
		return lineType
	}
	return "solid"
}

// --- XML/HTML Escaping ---
func escapeXML(s string) string {
	var buf strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;") // &apos; is not valid in HTML4
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

var escapeHTML = escapeXML

// Simple CSS Escaping (basic)
func escapeCSS(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}

// formatNumber prints a coordinate without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// --- Shape String Parsing ---

// parsePadding parses a CSS-like padding string (e.g., "10", "10 20", "5 10 15 20")
// into individual top, right, bottom, left float values.
// Defaults to 0 if parsing fails or string is empty.
func parsePadding(paddingStr string) (float64, float64, float64, float64) {
	if paddingStr == "" {
		return 0, 0, 0, 0
	}

	parts := strings.Fields(paddingStr) // Split by whitespace
	values := make([]float64, 0, 4)

	for _, part := range parts {
		val, err := strconv.ParseFloat(strings.TrimSuffix(part, "px"), 64)
		if err != nil {
			values = append(values, 0) // Default invalid parts to 0
		} else {
			values = append(values, val)
		}
	}

	switch len(values) {
	case 1:
		return values[0], values[0], values[0], values[0] // top, right, bottom, left
	case 2:
		return values[0], values[1], values[0], values[1] // top/bottom, right/left
	case 3:
		return values[0], values[1], values[2], values[1] // top, right/left, bottom
	case 4:
		return values[0], values[1], values[2], values[3] // top, right, bottom, left
	default: // More than 4 or 0 after filtering errors
		if len(values) > 4 {
			return values[0], values[1], values[2], values[3] // Use first 4 if too many
		}
		return 0, 0, 0, 0
	}
}

// parseViewport parses a "WIDTHxHEIGHT" string such as "1280x800".
func parseViewport(s string) (Size, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), "x", 2)
	if len(parts) != 2 {
		return Size{}, fmt.Errorf("invalid viewport '%s', expected WIDTHxHEIGHT", s)
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return Size{}, fmt.Errorf("invalid viewport '%s', expected positive WIDTHxHEIGHT", s)
	}
	return Size{Width: w, Height: h}, nil
}

// parsePoint parses an "X,Y" string such as "640,400".
func parsePoint(s string) (Point, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ",", 2)
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("invalid point '%s', expected X,Y", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return Point{}, fmt.Errorf("invalid point '%s', expected numeric X,Y", s)
	}
	return Point{X: x, Y: y}, nil
}
