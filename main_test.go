package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var updateSnapshots = flag.Bool("update", false, "rewrite testdata/*.expected.svg from the current output")

// TestSVGGeneration performs SVG comparison testing. Each manifest is laid
// out on a 1280x800 viewport with the most recent project hovered.
func TestSVGGeneration(t *testing.T) {
	testDataDir := "testdata"

	// Find all test manifests
	manifestFiles, err := filepath.Glob(filepath.Join(testDataDir, "*.projects.json"))
	require.NoError(t, err)
	require.NotEmpty(t, manifestFiles, "no manifests found in %s", testDataDir)

	for _, manifestFile := range manifestFiles {
		baseName := strings.TrimSuffix(filepath.Base(manifestFile), ".projects.json")
		t.Run(baseName, func(t *testing.T) {
			expectedSVGFile := filepath.Join(testDataDir, baseName+".expected.svg")

			// --- Load Content ---
			content, err := LoadContent(context.Background(), manifestFile)
			require.NoError(t, err)
			projects := AllProjects(content)
			require.NotEmpty(t, projects)

			// --- Lay Out and Hover ---
			opts := DefaultEngineOptions()
			geo := NewLayoutGeometry(Size{Width: 1280, Height: 800}, opts)
			controller, err := NewController(content.Config, geo, opts)
			require.NoError(t, err)
			controller.ProjectListChange(projects, nil)
			require.NoError(t, controller.Flush(context.Background()))

			first := controller.Scene().Nodes()[0]
			center, err := nodeCenter(geo, first)
			require.NoError(t, err)
			controller.PointerMove(Point{X: center.X + 300, Y: center.Y + 40})
			controller.HoverEnter(first.ID())

			// --- Generate SVG ---
			generatedSVG, err := GenerateSVG(controller.Scene(), geo, opts)
			require.NoError(t, err)

			if *updateSnapshots {
				require.NoError(t, os.WriteFile(expectedSVGFile, []byte(generatedSVG), 0644))
				t.Logf("Updated %s", expectedSVGFile)
				return
			}

			// --- Load Expected SVG ---
			expectedSVGBytes, err := os.ReadFile(expectedSVGFile)
			require.NoError(t, err, "missing snapshot; run go test -run TestSVGGeneration -update to create it")

			// --- Compare SVG ---
			// Normalize line endings for comparison
			normalizedGenerated := strings.ReplaceAll(generatedSVG, "\r\n", "\n")
			normalizedExpected := strings.ReplaceAll(string(expectedSVGBytes), "\r\n", "\n")

			if normalizedGenerated != normalizedExpected {
				diff := findFirstDifference(normalizedExpected, normalizedGenerated)
				t.Errorf("Generated SVG for %s does not match %s.\nFirst difference near character %d:\nEXPECTED:\n...%s...\nGOT:\n...%s...",
					baseName, expectedSVGFile,
					diff.Index, diff.ExpectedContext, diff.GotContext)
				failedFile := filepath.Join(testDataDir, baseName+".failed.svg")
				if writeErr := os.WriteFile(failedFile, []byte(generatedSVG), 0644); writeErr == nil {
					t.Logf("Wrote differing output to %s", failedFile)
				}
			}
		})
	}
}

// diffResult helps show context around the first difference.
type diffResult struct {
	Index           int
	ExpectedContext string
	GotContext      string
}

// findFirstDifference finds the first differing byte and returns the text
// around it in both strings.
func findFirstDifference(expected, got string) diffResult {
	limit := min(len(expected), len(got))
	idx := -1
	for i := 0; i < limit; i++ {
		if expected[i] != got[i] {
			idx = i
			break
		}
	}
	// One string is a prefix of the other
	if idx == -1 && len(expected) != len(got) {
		idx = limit
	}
	if idx == -1 {
		return diffResult{Index: 0, ExpectedContext: "(Strings are identical)", GotContext: "(Strings are identical)"}
	}

	const contextSize = 20 // Characters before and after the difference
	start := max(0, idx-contextSize)
	return diffResult{
		Index:           idx,
		ExpectedContext: expected[start:min(len(expected), idx+contextSize)],
		GotContext:      got[start:min(len(got), idx+contextSize)],
	}
}

func TestFindFirstDifference(t *testing.T) {
	diff := findFirstDifference("<svg a/>", "<svg b/>")
	require.Equal(t, 5, diff.Index)
	require.Equal(t, "<svg a/>", diff.ExpectedContext)

	diff = findFirstDifference("<svg>", "<svg></svg>")
	require.Equal(t, 5, diff.Index)
	require.Equal(t, "<svg></svg>", diff.GotContext)
	require.Equal(t, "<svg>", diff.ExpectedContext)
}
