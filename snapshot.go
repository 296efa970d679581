package bingopdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png" // snapshot dimension decoding
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-bingopdf/internal/fileutil"
	"github.com/alnah/go-bingopdf/internal/layout"
)

// snapshotter abstracts bitmap capture to allow testing without a browser.
type snapshotter interface {
	CardSnapshot(ctx context.Context, htmlContent string, waitStable bool) (layout.Bitmap, error)
	TableSnapshot(ctx context.Context, htmlContent string, waitStable bool) (tableSnapshot, error)
	Close() error
}

// tableSnapshot is the rendered answer table plus the row geometry the
// layout engine needs to choose safe cut points. RowBottoms and
// LayoutHeight are in CSS pixels; the bitmap may be larger when the
// browser renders at a higher device pixel ratio.
type tableSnapshot struct {
	Bitmap       layout.Bitmap
	RowBottoms   []float64
	LayoutHeight float64
}

// Compile-time interface check.
var _ snapshotter = (*rodSnapshotter)(nil)

// Element selectors fixed by the embedded templates.
const (
	cardSelector  = "#card"
	tableSelector = "#answers"
)

// stableWindow is how long the DOM must stay unchanged before a
// math-typeset page is considered finished.
const stableWindow = 300 * time.Millisecond

// tableMetricsJS reads every row's bottom edge relative to the table
// top, plus the table's total height, in CSS pixels.
const tableMetricsJS = `() => {
	const table = document.querySelector('#answers');
	const top = table.getBoundingClientRect().top;
	const bottoms = [...table.querySelectorAll('tr')].map(
		(row) => row.getBoundingClientRect().bottom - top,
	);
	return { height: table.getBoundingClientRect().height, bottoms };
}`

// rodSnapshotter captures element bitmaps in headless Chrome via go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodSnapshotter struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodSnapshotter creates a rodSnapshotter with the given timeout.
func newRodSnapshotter(timeout time.Duration) *rodSnapshotter {
	return &rodSnapshotter{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodSnapshotter) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodSnapshotter) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// openPage loads htmlContent into a fresh page and waits for it.
// waitStable additionally waits for the DOM to settle, needed when KaTeX
// typesets math after the load event. The caller owns both cleanups.
func (r *rodSnapshotter) openPage(ctx context.Context, htmlContent string, waitStable bool) (*rod.Page, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, nil, err
	}

	tmpPath, removeTmp, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		removeTmp()
		return nil, nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	cleanup := func() {
		_ = page.Close()
		removeTmp()
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			cleanup()
			return nil, nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if waitStable {
		if err := page.Timeout(timeout).WaitStable(stableWindow); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
		}
	}

	return page, cleanup, nil
}

// elementBitmap screenshots one element as PNG and decodes its pixel size.
func elementBitmap(page *rod.Page, selector string) (layout.Bitmap, error) {
	el, err := page.Element(selector)
	if err != nil {
		return layout.Bitmap{}, fmt.Errorf("%w: element %q: %v", ErrSnapshot, selector, err)
	}

	bin, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return layout.Bitmap{}, fmt.Errorf("%w: element %q: %v", ErrSnapshot, selector, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(bin))
	if err != nil {
		return layout.Bitmap{}, fmt.Errorf("%w: decoding %q snapshot: %v", ErrSnapshot, selector, err)
	}

	return layout.Bitmap{PNG: bin, Width: cfg.Width, Height: cfg.Height}, nil
}

// CardSnapshot renders one card document and captures the card element.
func (r *rodSnapshotter) CardSnapshot(ctx context.Context, htmlContent string, waitStable bool) (layout.Bitmap, error) {
	page, cleanup, err := r.openPage(ctx, htmlContent, waitStable)
	if err != nil {
		return layout.Bitmap{}, err
	}
	defer cleanup()

	return elementBitmap(page, cardSelector)
}

// TableSnapshot renders the answer table document, captures the table
// element, and reads the row geometry for pagination.
func (r *rodSnapshotter) TableSnapshot(ctx context.Context, htmlContent string, waitStable bool) (tableSnapshot, error) {
	page, cleanup, err := r.openPage(ctx, htmlContent, waitStable)
	if err != nil {
		return tableSnapshot{}, err
	}
	defer cleanup()

	bmp, err := elementBitmap(page, tableSelector)
	if err != nil {
		return tableSnapshot{}, err
	}

	obj, err := page.Eval(tableMetricsJS)
	if err != nil {
		return tableSnapshot{}, fmt.Errorf("%w: reading table metrics: %v", ErrSnapshot, err)
	}

	snap := tableSnapshot{
		Bitmap:       bmp,
		LayoutHeight: obj.Value.Get("height").Num(),
	}
	for _, b := range obj.Value.Get("bottoms").Arr() {
		snap.RowBottoms = append(snap.RowBottoms, b.Num())
	}
	if snap.LayoutHeight <= 0 {
		return tableSnapshot{}, fmt.Errorf("%w: table has no height", ErrSnapshot)
	}
	return snap, nil
}
