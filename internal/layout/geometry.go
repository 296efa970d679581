package layout

// Geometry describes the page coordinate space in points (1/72 inch).
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64 // applied to all four sides

	// TopPadding is the extra offset below the top margin at which the
	// cursor rests on a fresh page.
	TopPadding float64

	CardWidth float64 // display width of every card bitmap
	CardGapX  float64 // horizontal gap between the two card columns
	CardGapY  float64 // vertical gap between card rows and below strips
}

// DefaultGeometry returns US Letter portrait with half-inch margins.
// Two cards plus the column gap span the content width exactly.
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:  612,
		PageHeight: 792,
		Margin:     36,
		TopPadding: 8,
		CardWidth:  252,
		CardGapX:   36,
		CardGapY:   20,
	}
}

// ContentWidth is the horizontal space between the side margins.
func (g Geometry) ContentWidth() float64 { return g.PageWidth - 2*g.Margin }

// PrintableHeight is the vertical space between the top and bottom margins.
func (g Geometry) PrintableHeight() float64 { return g.PageHeight - 2*g.Margin }

// ContentBottom is the page Y coordinate of the bottom margin.
func (g Geometry) ContentBottom() float64 { return g.PageHeight - g.Margin }

// Rect is a placement rectangle in page coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Bitmap is an opaque rendered image with known pixel dimensions.
type Bitmap struct {
	PNG    []byte
	Width  int // pixels
	Height int // pixels
}

// Block is one bitmap placed at a rectangle on a page.
type Block struct {
	Image Bitmap
	Rect  Rect
}

// Page is a write-once ordered sequence of placed blocks.
type Page struct {
	Blocks []Block
}
