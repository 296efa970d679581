package layout

import (
	"errors"
	"fmt"
)

// Sentinel errors for layout operations.
var (
	ErrEmptyBitmap     = errors.New("layout: bitmap has no pixels")
	ErrInvalidGeometry = errors.New("layout: geometry leaves no printable space")
)

// Context accumulates the pages of one export. It owns the single
// mutable page cursor; placements must be issued one at a time.
type Context struct {
	geom    Geometry
	pages   []*Page
	cursorY float64
}

// NewContext opens the first page with the cursor at the top padding.
func NewContext(geom Geometry) *Context {
	c := &Context{geom: geom}
	c.newPage()
	return c
}

func (c *Context) newPage() {
	c.pages = append(c.pages, &Page{})
	c.cursorY = c.geom.Margin + c.geom.TopPadding
}

// Pages returns the accumulated pages. The slice and its contents must
// not be mutated by callers.
func (c *Context) Pages() []*Page { return c.pages }

// CursorY exposes the running cursor, mainly for tests.
func (c *Context) CursorY() float64 { return c.cursorY }

// Advance moves the cursor down without placing anything, e.g. to
// reserve room for the document title on the first page.
func (c *Context) Advance(h float64) { c.cursorY += h }

func (c *Context) place(b Block) {
	page := c.pages[len(c.pages)-1]
	page.Blocks = append(page.Blocks, b)
}

// PlaceCard puts card bitmap index (0-based, of total) into the
// two-column grid. The bitmap is displayed at the fixed card width with
// its aspect ratio preserved.
//
// Only the first card of a row may open a new page: the overflow check
// runs when the column index is 0. The horizontal position is a pure
// function of the column index. The cursor advances after the second
// card of a row, or after the last card overall when it sits alone in
// an incomplete row, so a trailing card is never overwritten by the
// content that follows.
func (c *Context) PlaceCard(bmp Bitmap, index, total int) error {
	if bmp.Width <= 0 || bmp.Height <= 0 {
		return fmt.Errorf("%w: card %d", ErrEmptyBitmap, index)
	}

	w := c.geom.CardWidth
	h := w * float64(bmp.Height) / float64(bmp.Width)

	col := index % 2
	if col == 0 && c.cursorY+h > c.geom.ContentBottom() {
		c.newPage()
	}

	x := c.geom.Margin + float64(col)*(w+c.geom.CardGapX)
	c.place(Block{Image: bmp, Rect: Rect{X: x, Y: c.cursorY, W: w, H: h}})

	if col == 1 || index == total-1 {
		c.cursorY += h + c.geom.CardGapY
	}
	return nil
}

// PlaceTable cuts the answer-table bitmap into page strips and places
// each strip on its own fresh page at the content width.
//
// rowBottoms are the bottom edges of the table rows and layoutHeight
// the table's total height, both in the renderer's layout units; they
// are scaled into bitmap pixels here. Strips end at the deepest row
// boundary inside the allowed window whenever one exists, so rows are
// only split when a single row is taller than a page.
func (c *Context) PlaceTable(bmp Bitmap, rowBottoms []float64, layoutHeight float64) error {
	if bmp.Width <= 0 || bmp.Height <= 0 || layoutHeight <= 0 {
		return ErrEmptyBitmap
	}
	if c.geom.ContentWidth() <= 0 || c.geom.PrintableHeight() <= 0 {
		return ErrInvalidGeometry
	}

	pxPerUnit := float64(bmp.Height) / layoutHeight
	bottoms := make([]float64, len(rowBottoms))
	for i, b := range rowBottoms {
		bottoms[i] = b * pxPerUnit
	}

	// Pixels per point at the display width the strips will get.
	scale := float64(bmp.Width) / c.geom.ContentWidth()
	maxStrip := c.geom.PrintableHeight() * scale

	strips := SplitStrips(float64(bmp.Height), maxStrip, bottoms)
	for _, s := range strips {
		crop, err := CropBitmap(bmp, s.Top, s.Bottom)
		if err != nil {
			return err
		}
		c.newPage()
		h := (s.Bottom - s.Top) / scale
		c.place(Block{
			Image: crop,
			Rect:  Rect{X: c.geom.Margin, Y: c.geom.Margin, W: c.geom.ContentWidth(), H: h},
		})
		c.cursorY = c.geom.Margin + h + c.geom.CardGapY
	}
	return nil
}
