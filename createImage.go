// createImage.go
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"strings"

	"github.com/chromedp/chromedp"
)

// --- Headless Browser ---

// newBrowserContext starts a headless Chrome allocator and tab. The returned
// cancel tears both down.
func newBrowserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless, // Ensure it runs headless
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	return browserCtx, func() {
		cancelBrowser()
		cancelAlloc()
	}
}

// dataURI inlines a document so no temp file is needed.
func dataURI(mediaType, document string) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString([]byte(document))
}

// --- Headless Browser Geometry ---

// measureScript scrolls the page, then reads live bounding boxes for the
// container and every node. A missing container is reported, not thrown.
const measureScript = `(() => {
	window.scrollTo(0, %f);
	const container = document.getElementById('timeline-container');
	if (!container) {
		return { found: false, nodes: [] };
	}
	const box = (el) => {
		const r = el.getBoundingClientRect();
		return { left: r.left, top: r.top, width: r.width, height: r.height };
	};
	const nodes = Array.from(container.querySelectorAll('.project-node')).map((n) => {
		return Object.assign({ id: n.dataset.id }, box(n));
	});
	return { found: true, container: box(container), nodes: nodes };
})()`

type measuredBox struct {
	ID     string  `json:"id,omitempty"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type measurement struct {
	Found     bool          `json:"found"`
	Container measuredBox   `json:"container"`
	Nodes     []measuredBox `json:"nodes"`
}

// BrowserGeometry measures a scene by loading its HTML page into headless
// Chrome. Boxes are sampled by Measure at the current scroll offset; until the
// next Measure they are shifted by however far the page has scrolled since.
type BrowserGeometry struct {
	viewport Size
	scrollY  float64
	page     func(*Scene) (string, error)
	sample   func(ctx context.Context, html string) (measurement, error)

	browserCtx context.Context
	cancel     context.CancelFunc

	container      *Rect
	boxes          map[string]Rect
	measuredScroll float64
}

// NewBrowserGeometry starts a headless browser. page renders a scene as the
// HTML document to measure. Call Close when done.
func NewBrowserGeometry(ctx context.Context, viewport Size, page func(*Scene) (string, error)) (*BrowserGeometry, error) {
	browserCtx, cancel := newBrowserContext(ctx)

	// Start the browser now so a missing Chrome is reported up front
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("starting headless browser: %w", err)
	}
	log.Println("Headless browser started for geometry measurement.")

	b := &BrowserGeometry{
		viewport:   viewport,
		page:       page,
		browserCtx: browserCtx,
		cancel:     cancel,
		boxes:      make(map[string]Rect),
	}
	b.sample = b.evaluate
	return b, nil
}

// Close shuts the browser down.
func (b *BrowserGeometry) Close() {
	if b.cancel != nil {
		b.cancel()
	}
}

// SetViewport implements Resizable.
func (b *BrowserGeometry) SetViewport(viewport Size) { b.viewport = viewport }

// SetScroll implements Scrollable.
func (b *BrowserGeometry) SetScroll(offset float64) { b.scrollY = offset }

// Viewport implements GeometrySource.
func (b *BrowserGeometry) Viewport() Size { return b.viewport }

// Container implements GeometrySource.
func (b *BrowserGeometry) Container() (Rect, error) {
	if b.container == nil {
		return Rect{}, ErrMissingContainer
	}
	return b.container.Translate(0, b.scrollDrift()), nil
}

// NodeBox implements GeometrySource.
func (b *BrowserGeometry) NodeBox(node *Node) (Rect, error) {
	box, ok := b.boxes[node.ID()]
	if !ok {
		return Rect{}, ErrUnknownNode
	}
	return box.Translate(0, b.scrollDrift()), nil
}

// scrollDrift is how far page content moved up the viewport since the last sample.
func (b *BrowserGeometry) scrollDrift() float64 {
	return b.measuredScroll - b.scrollY
}

// Measure implements Measurer.
func (b *BrowserGeometry) Measure(ctx context.Context, scene *Scene) error {
	html, err := b.page(scene)
	if err != nil {
		return fmt.Errorf("rendering page for measurement: %w", err)
	}
	debugf("Measuring %d nodes at %.0fx%.0f, scroll %.0f", len(scene.Nodes()), b.viewport.Width, b.viewport.Height, b.scrollY)
	result, err := b.sample(ctx, html)
	if err != nil {
		return err
	}
	return b.apply(result)
}

// evaluate loads html at the current viewport and scroll offset and runs
// measureScript against it.
func (b *BrowserGeometry) evaluate(ctx context.Context, html string) (measurement, error) {
	// Tie the browser tab to the caller's cancellation as well
	runCtx, cancel := context.WithCancel(b.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var result measurement
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(b.viewport.Width), int64(b.viewport.Height)),
		chromedp.Navigate(dataURI("text/html", html)),
		chromedp.Evaluate(fmt.Sprintf(measureScript, b.scrollY), &result),
	}
	if err := chromedp.Run(runCtx, tasks); err != nil {
		return measurement{}, fmt.Errorf("chromedp execution failed: %w", err)
	}
	return result, nil
}

// apply replaces the cached boxes with a measurement taken at the current
// scroll offset.
func (b *BrowserGeometry) apply(result measurement) error {
	b.boxes = make(map[string]Rect, len(result.Nodes))
	b.measuredScroll = b.scrollY
	if !result.Found {
		b.container = nil
		return ErrMissingContainer
	}
	c := result.Container
	b.container = &Rect{Left: c.Left, Top: c.Top, Width: c.Width, Height: c.Height}
	for _, n := range result.Nodes {
		b.boxes[n.ID] = Rect{Left: n.Left, Top: n.Top, Width: n.Width, Height: n.Height}
	}
	return nil
}

// --- Raster Export ---

// generateImage screenshots an SVG document to PNG or JPEG.
func generateImage(ctx context.Context, svgString string, format string, outputWriter io.Writer) error {
	if format != "png" && format != "jpg" && format != "jpeg" {
		return fmt.Errorf("internal error: unsupported image format '%s' with chromedp", format)
	}

	taskCtx, cancel := newBrowserContext(ctx)
	defer cancel()

	var screenshot []byte
	log.Println("Running chromedp tasks (navigate and screenshot)...")
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURI("image/svg+xml", svgString)),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &screenshot, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(screenshot) == 0 {
		return fmt.Errorf("screenshot buffer is empty, screenshot failed")
	}

	if err := encodeScreenshot(screenshot, format, outputWriter); err != nil {
		return err
	}
	log.Printf("Successfully encoded %s image using chromedp.", strings.ToUpper(format))
	return nil
}

// encodeScreenshot writes a PNG screenshot as-is, or re-encodes it as JPEG.
func encodeScreenshot(screenshot []byte, format string, w io.Writer) error {
	if format == "png" {
		if _, err := w.Write(screenshot); err != nil {
			return fmt.Errorf("failed to write PNG screenshot data: %w", err)
		}
		return nil
	}
	img, err := png.Decode(bytes.NewReader(screenshot))
	if err != nil {
		return fmt.Errorf("failed to decode PNG screenshot: %w", err)
	}
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return nil
}
