// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Measurement backends for the --measure flag.
const (
	measureLayout  = "layout"
	measureBrowser = "browser"
)

var (
	// Logging related
	debug bool

	// Engine configuration
	optionsPath  string
	viewportFlag string
	measureMode  string

	rootCmd = &cobra.Command{
		Use:   "axis-timeline",
		Short: "Lay out a project timeline and draw its connectors",
		Long: `axis-timeline lays out portfolio projects along a vertical timeline,
draws the straight connecting lines between consecutive projects and the
spline from a hovered project to its info panel.

Examples:
  axis-timeline render content/projects.json svg -o timeline.svg
  axis-timeline render content/projects.json png --hover p2 --pointer 900,300 -o hover.png
  axis-timeline inspect content/projects.json --viewport 1440x900
  axis-timeline watch content/projects.json -o timeline.html`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debugMode = debug
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&optionsPath, "config", "",
		"Engine options YAML file (defaults apply when empty)")
	rootCmd.PersistentFlags().StringVar(&viewportFlag, "viewport", "1280x800",
		"Viewport size as WIDTHxHEIGHT")
	rootCmd.PersistentFlags().StringVar(&measureMode, "measure", measureLayout,
		"Geometry source (layout, browser)")

	rootCmd.AddCommand(renderCmd, inspectCmd, watchCmd)
}

// --- Main Program Logic ---

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Printf("Error: %v", err)
		stop()
		os.Exit(1)
	}
}

// engine bundles everything a command needs to drive one timeline.
type engine struct {
	opts       EngineOptions
	geo        GeometrySource
	controller *Controller
	close      func()
}

// newEngine loads options and content, picks the geometry source and lays the
// timeline out once. Call close when done.
func newEngine(ctx context.Context, manifestPath string, opts EngineOptions) (*engine, error) {
	viewport, err := parseViewport(viewportFlag)
	if err != nil {
		return nil, err
	}

	content, err := LoadContent(ctx, manifestPath)
	if err != nil {
		return nil, err
	}
	projects := AllProjects(content)
	if len(projects) == 0 {
		// Start empty; a watched collection may fill in later
		log.Printf("Warning: no projects found in '%s'", manifestPath)
	} else {
		log.Printf("Loaded %d projects from %d collections", len(projects), len(content.Collections))
	}

	e := &engine{opts: opts, close: func() {}}
	switch measureMode {
	case measureLayout:
		e.geo = NewLayoutGeometry(viewport, opts)
	case measureBrowser:
		browser, err := NewBrowserGeometry(ctx, viewport, func(scene *Scene) (string, error) {
			return generateHTML(scene, opts)
		})
		if err != nil {
			return nil, err
		}
		e.geo = browser
		e.close = browser.Close
	default:
		return nil, fmt.Errorf("unsupported geometry source '%s' (layout, browser)", measureMode)
	}

	e.controller, err = NewController(content.Config, e.geo, opts)
	if err != nil {
		e.close()
		return nil, err
	}
	e.controller.ProjectListChange(projects, nil)
	if err := e.controller.Flush(ctx); err != nil {
		e.close()
		return nil, err
	}
	return e, nil
}
