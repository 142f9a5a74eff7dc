package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStrokeDashArray(t *testing.T) {
	tests := []struct {
		lineType string
		width    float64
		expected string
	}{
		{"solid", 2, ""},
		{"", 2, ""},
		{"dashed", 1, ` stroke-dasharray="4 2"`},
		{"dashed", 1.5, ` stroke-dasharray="6 3"`},
		{"dotted", 2, ` stroke-dasharray="2 4"`},
		{"dotted", 0, ` stroke-dasharray="1 2"`},
	}

	for _, tt := range tests {
		t.Run(tt.lineType, func(t *testing.T) {
			assert.Equal(t, tt.expected, getStrokeDashArray(tt.lineType, tt.width))
		})
	}
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "Tom &amp; Jerry &lt;3 &quot;cats&quot; &#39;n&#39; &gt;", escapeXML(`Tom & Jerry <3 "cats" 'n' >`))
	assert.Equal(t, "plain", escapeXML("plain"))
}

func TestParsePadding(t *testing.T) {
	tests := []struct {
		input    string
		expected [4]float64
	}{
		{"", [4]float64{0, 0, 0, 0}},
		{"10", [4]float64{10, 10, 10, 10}},
		{"12px 16px", [4]float64{12, 16, 12, 16}},
		{"1 2 3", [4]float64{1, 2, 3, 2}},
		{"1 2 3 4", [4]float64{1, 2, 3, 4}},
		{"1 x 3 4 5", [4]float64{1, 0, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			top, right, bottom, left := parsePadding(tt.input)
			assert.Equal(t, tt.expected, [4]float64{top, right, bottom, left})
		})
	}
}

func TestParseViewport(t *testing.T) {
	size, err := parseViewport("1280x800")
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 1280, Height: 800}, size)

	size, err = parseViewport(" 640 X 480 ")
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 640, Height: 480}, size)

	for _, bad := range []string{"", "1280", "0x800", "axb", "-1x5"} {
		_, err := parseViewport(bad)
		assert.Error(t, err, bad)
	}
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("900, 300.5")
	require.NoError(t, err)
	assert.Equal(t, Point{X: 900, Y: 300.5}, p)

	for _, bad := range []string{"", "900", "a,b"} {
		_, err := parsePoint(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "3", formatNumber(3))
	assert.Equal(t, "2.5", formatNumber(2.5))
	assert.Equal(t, "-0.25", formatNumber(-0.25))
}
