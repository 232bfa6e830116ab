package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// cssPixelsPerInch is the fixed CSS reference resolution.
const cssPixelsPerInch = 96

// Mode selects how the PDF is produced.
type Mode string

const (
	// ModeRaster captures each page as an image and assembles the images
	// into the PDF, so the file looks exactly like the on-screen render.
	ModeRaster Mode = "raster"
	// ModeVector prints the page directly, keeping text selectable.
	ModeVector Mode = "vector"
)

// Options configures a ChromeRenderer.
type Options struct {
	Mode Mode
	// Scale is the device scale factor used when capturing pages.
	Scale float64
	// Quality is the JPEG quality of captured pages, from 0 to 1.
	Quality float64
	// PaperWidth and PaperHeight are in inches.
	PaperWidth  float64
	PaperHeight float64
	// ChromePath overrides the browser executable.
	ChromePath string
	Timeout    time.Duration
}

// DefaultOptions returns letter-size raster output at 2x scale.
func DefaultOptions() Options {
	return Options{
		Mode:        ModeRaster,
		Scale:       2,
		Quality:     0.98,
		PaperWidth:  8.5,
		PaperHeight: 11,
		Timeout:     60 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Mode != ModeVector && o.Mode != ModeRaster {
		o.Mode = d.Mode
	}
	if o.Scale <= 0 {
		o.Scale = d.Scale
	}
	if o.Quality <= 0 || o.Quality > 1 {
		o.Quality = d.Quality
	}
	if o.PaperWidth <= 0 {
		o.PaperWidth = d.PaperWidth
	}
	if o.PaperHeight <= 0 {
		o.PaperHeight = d.PaperHeight
	}
	if o.Timeout <= 0 {
		o.Timeout = d.Timeout
	}
	return o
}

// pagePixels returns the paper size in CSS pixels.
func (o Options) pagePixels() (int64, int64) {
	return int64(math.Round(o.PaperWidth * cssPixelsPerInch)), int64(math.Round(o.PaperHeight * cssPixelsPerInch))
}

// jpegQuality converts Quality to the 0-100 range the browser expects.
func (o Options) jpegQuality() int64 {
	return int64(math.Round(o.Quality * 100))
}

// pageCount returns how many pages a document of the given height needs.
func pageCount(contentHeight float64, pageHeight int64) int {
	n := int(math.Ceil(contentHeight / float64(pageHeight)))
	if n < 1 {
		return 1
	}
	return n
}

// PDFRenderer converts a self-contained HTML page into PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer renders PDFs with a headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromeRenderer struct {
	opts   Options
	logger *zap.Logger
}

// NewChromeRenderer creates a renderer. Zero option fields take their defaults.
func NewChromeRenderer(opts Options, logger *zap.Logger) *ChromeRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromeRenderer{opts: opts.withDefaults(), logger: logger}
}

// Options returns the effective options.
func (r *ChromeRenderer) Options() Options {
	return r.opts
}

// RenderPDF loads html into a fresh headless browser and prints it.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	start := time.Now()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.opts.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, r.opts.Timeout)
	defer cancel()

	width, height := r.opts.pagePixels()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		emulation.SetDeviceMetricsOverride(width, height, r.opts.Scale, false),
		setContent(html),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if r.opts.Mode == ModeVector {
				return nil
			}
			sheet, err := r.capturePages(ctx, width, height)
			if err != nil {
				return err
			}
			return setContent(sheet).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(r.opts.PaperWidth).
				WithPaperHeight(r.opts.PaperHeight).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser rendering failed: %w", err)
	}

	r.logger.Debug("rendered pdf",
		zap.String("mode", string(r.opts.Mode)),
		zap.Int("bytes", len(pdf)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return pdf, nil
}

// capturePages screenshots the loaded document one paper-sized slice at a
// time and returns an HTML sheet holding one full-page image per slice.
func (r *ChromeRenderer) capturePages(ctx context.Context, width, height int64) (string, error) {
	var contentHeight float64
	if err := chromedp.Evaluate(`document.documentElement.scrollHeight`, &contentHeight).Do(ctx); err != nil {
		return "", fmt.Errorf("failed to measure page: %w", err)
	}

	n := pageCount(contentHeight, height)
	images := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		shot, err := page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatJpeg).
			WithQuality(r.opts.jpegQuality()).
			WithCaptureBeyondViewport(true).
			WithClip(&page.Viewport{
				X:      0,
				Y:      float64(int64(i) * height),
				Width:  float64(width),
				Height: float64(height),
				Scale:  1,
			}).
			Do(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to capture page %d: %w", i+1, err)
		}
		images = append(images, shot)
	}
	return pageSheet(images, r.opts.PaperWidth, r.opts.PaperHeight), nil
}

// setContent replaces the current document and waits until its images decode.
func setContent(html string) chromedp.Action {
	return chromedp.Tasks{
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`Promise.all(Array.from(document.images).map(i => i.decode().catch(() => null)))`, nil,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams { return p.WithAwaitPromise(true) }),
	}
}

// pageSheet lays out JPEG page images one per sheet of paper.
func pageSheet(images [][]byte, paperWidth, paperHeight float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<!DOCTYPE html><html><head><meta charset="utf-8"><style>`+
		`@page{size:%gin %gin;margin:0}html,body{margin:0;padding:0}`+
		`img{display:block;width:%gin;height:%gin;break-after:page}img:last-child{break-after:auto}`+
		`</style></head><body>`, paperWidth, paperHeight, paperWidth, paperHeight)
	for _, img := range images {
		b.WriteString(`<img src="data:image/jpeg;base64,`)
		b.WriteString(base64.StdEncoding.EncodeToString(img))
		b.WriteString(`">`)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}
