package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	// render flags
	outputFile    string
	hoverID       string
	pointerFlag   string
	scrollBy      float64
	tightnessFlag float64
	placementFlag string

	// watch flags
	watchOutput string

	renderCmd = &cobra.Command{
		Use:   "render <projects.json> <format>",
		Short: "Render the timeline as svg, html, png or jpg",
		Args:  cobra.ExactArgs(2),
		RunE:  runRender,
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect <projects.json>",
		Short: "Print the live geometry of every node and connecting line",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	watchCmd = &cobra.Command{
		Use:   "watch <projects.json>",
		Short: "Re-render the HTML timeline whenever content files change",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
)

func init() {
	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"Output file path (default: stdout)")
	renderCmd.Flags().StringVar(&hoverID, "hover", "",
		"Project id to hover (default: the node under --pointer)")
	renderCmd.Flags().StringVar(&pointerFlag, "pointer", "",
		"Pointer position as X,Y in viewport pixels")
	renderCmd.Flags().Float64Var(&scrollBy, "scroll", 0,
		"Scroll the page down by this many pixels before rendering")
	renderCmd.Flags().Float64Var(&tightnessFlag, "tightness", 0,
		"Spline tightness in [0,1] (overrides the options file)")
	renderCmd.Flags().StringVar(&placementFlag, "placement", "",
		"Info panel placement: bounded or offset (overrides the options file)")

	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "timeline.html",
		"HTML file rewritten after every relayout")
}

// loadOptions reads the options file and applies flag overrides.
func loadOptions(cmd *cobra.Command) (EngineOptions, error) {
	opts, err := LoadEngineOptions(optionsPath)
	if err != nil {
		return opts, err
	}
	if f := cmd.Flags().Lookup("tightness"); f != nil && f.Changed {
		opts.Tightness = tightnessFlag
	}
	if f := cmd.Flags().Lookup("placement"); f != nil && f.Changed {
		opts.Placement = strings.ToLower(placementFlag)
	}
	return opts, opts.Validate()
}

// --- render ---

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	manifestPath := args[0]
	exportFormat := strings.ToLower(args[1])

	supportedFormats := map[string]bool{"html": true, "svg": true, "png": true, "jpg": true, "jpeg": true}
	if !supportedFormats[exportFormat] {
		return fmt.Errorf("unsupported export format '%s'. Supported formats: html, svg, png, jpg/jpeg", exportFormat)
	}

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	e, err := newEngine(ctx, manifestPath, opts)
	if err != nil {
		return err
	}
	defer e.close()

	if err := applyInteraction(ctx, e.controller); err != nil {
		return err
	}

	// --- Determine Output Writer ---
	var outputWriter io.Writer = os.Stdout
	var outFile *os.File
	if outputFile != "" {
		log.Printf("Output directed to file: %s", outputFile)
		outFile, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file '%s': %w", outputFile, err)
		}
		outputWriter = outFile
	} else {
		log.Println("Output directed to stdout.")
	}

	// --- Generation ---
	log.Printf("Generating output for format: %s", exportFormat)
	genErr := writeOutput(ctx, outputWriter, exportFormat, e)

	if outFile != nil {
		log.Printf("Closing output file: %s", outputFile)
		if closeErr := outFile.Close(); closeErr != nil && genErr == nil {
			genErr = fmt.Errorf("closing output file '%s': %w", outputFile, closeErr)
		}
	}

	// --- Handle Generation Errors ---
	if genErr != nil {
		if outFile != nil {
			log.Printf("Attempting to remove potentially incomplete file: %s", outputFile)
			if removeErr := os.Remove(outputFile); removeErr != nil {
				log.Printf("Warning: Could not remove output file '%s' after error: %v", outputFile, removeErr)
			}
		}
		return fmt.Errorf("generating %s: %w", exportFormat, genErr)
	}

	log.Printf("Successfully generated %s output.", strings.ToUpper(exportFormat))
	if outputFile != "" {
		log.Printf("Output saved to: %s", outputFile)
	}
	return nil
}

// applyInteraction replays the scroll, pointer and hover flags against the
// controller, the way a user would produce them in the page.
func applyInteraction(ctx context.Context, c *Controller) error {
	if scrollBy != 0 {
		c.WheelScroll(scrollBy)
		for c.StepScroll(ctx) {
		}
		y, _ := c.Scroll()
		log.Printf("Scrolled to %.0f", y)
	}

	hover := hoverID
	if pointerFlag != "" {
		p, err := parsePoint(pointerFlag)
		if err != nil {
			return err
		}
		c.PointerMove(p)
		if hover == "" {
			if node, ok := c.NodeAt(p); ok {
				hover = node.ID()
			} else {
				log.Printf("No project under pointer %.0f,%.0f", p.X, p.Y)
			}
		}
	}

	if hover == "" {
		return nil
	}
	node, ok := c.Scene().Node(hover)
	if !ok {
		return fmt.Errorf("hover: project '%s': %w", hover, ErrUnknownNode)
	}
	if pointerFlag == "" {
		// Without a pointer, hover from the node's own center
		center, err := nodeCenter(c.geo, node)
		if err != nil {
			return fmt.Errorf("hover: %w", err)
		}
		c.PointerMove(center)
	}
	c.HoverEnter(hover)
	return nil
}

// writeOutput serialises the current scene in the requested format.
func writeOutput(ctx context.Context, w io.Writer, format string, e *engine) error {
	scene := e.controller.Scene()
	switch format {
	case "svg":
		svgContent, err := GenerateSVG(scene, e.geo, e.opts)
		if err != nil {
			return fmt.Errorf("SVG generation failed: %w", err)
		}
		if _, err := io.WriteString(w, svgContent); err != nil {
			return fmt.Errorf("failed to write SVG output: %w", err)
		}
	case "html":
		htmlContent, err := generateHTML(scene, e.opts)
		if err != nil {
			return fmt.Errorf("HTML generation failed: %w", err)
		}
		if _, err := io.WriteString(w, htmlContent); err != nil {
			return fmt.Errorf("failed to write HTML output: %w", err)
		}
	case "png", "jpg", "jpeg":
		svgContent, err := GenerateSVG(scene, e.geo, e.opts)
		if err != nil {
			return fmt.Errorf("SVG generation failed: %w", err)
		}
		return generateImage(ctx, svgContent, format, w)
	}
	return nil
}

// --- inspect ---

func runInspect(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	e, err := newEngine(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	defer e.close()

	return writeInspection(cmd.OutOrStdout(), e.controller.Scene(), e.geo, terminalWidth())
}

// --- watch ---

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	manifestPath := args[0]

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	e, err := newEngine(ctx, manifestPath, opts)
	if err != nil {
		return err
	}
	defer e.close()

	writePage := func(scene *Scene) {
		page, err := generateHTML(scene, opts)
		if err != nil {
			log.Printf("Error generating HTML: %v", err)
			return
		}
		if err := os.WriteFile(watchOutput, []byte(page), 0644); err != nil {
			log.Printf("Error writing '%s': %v", watchOutput, err)
			return
		}
		log.Printf("Output saved to: %s", watchOutput)
	}
	writePage(e.controller.Scene())
	e.controller.OnRelayout(writePage)

	watcher, err := NewContentWatcher(filepath.Dir(manifestPath))
	if err != nil {
		return fmt.Errorf("watching content: %w", err)
	}
	defer watcher.Close()

	events := make(chan Event)
	go watcher.ForwardReloads(ctx, manifestPath, events)

	log.Printf("Watching %s for changes (Ctrl+C to stop)", filepath.Dir(manifestPath))
	if err := e.controller.Run(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
