// Package compose writes laid-out pages into a single PDF document.
package compose

import (
	"bytes"
	"errors"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/alnah/go-bingopdf/internal/layout"
)

// ErrNoPages indicates there is nothing to compose.
var ErrNoPages = errors.New("compose: no pages")

// Title text metrics on the first page.
const (
	titleFontSize = 20
	titleHeight   = 28
)

// Document compaction happens page by page: each placed block's PNG is
// registered once under a per-block name and drawn at its rectangle.
// Coordinates are already in points, the PDF's native unit here.
func Document(pages []*layout.Page, geom layout.Geometry, title string) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: geom.PageWidth, Ht: geom.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, page := range pages {
		pdf.AddPage()

		if i == 0 && title != "" {
			pdf.SetFont("Helvetica", "B", titleFontSize)
			pdf.SetXY(geom.Margin, geom.Margin)
			pdf.CellFormat(geom.ContentWidth(), titleHeight, tr(title), "", 0, "CM", false, 0, "")
		}

		for j, block := range page.Blocks {
			name := fmt.Sprintf("block-%d-%d", i, j)
			opts := fpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(block.Image.PNG))
			r := block.Rect
			pdf.ImageOptions(name, r.X, r.Y, r.W, r.H, false, opts, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("compose: writing document: %w", err)
	}
	return buf.Bytes(), nil
}

// TitleHeight is the vertical space the first-page heading occupies,
// used by callers to push the layout cursor below it.
func TitleHeight() float64 { return titleHeight }
