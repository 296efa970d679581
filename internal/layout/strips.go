package layout

// Strip is a horizontal slice of the source bitmap, in bitmap pixels.
// Top is inclusive, Bottom exclusive.
type Strip struct {
	Top    float64
	Bottom float64
}

// stripEpsilon guards the consumption loop against float residue after
// repeated cursor additions.
const stripEpsilon = 0.5

// SplitStrips partitions a bitmap of the given pixel height into strips
// no taller than maxStrip. When more bitmap remains below a proposed
// cut, the cut is moved up to the deepest boundary strictly between the
// cursor and the proposal; without such a boundary the raw maximum is
// used and whatever sits there is split - a single row taller than a
// page degrades rather than fails.
//
// Deciding "how much fits" by height and "where it is safe to cut" from
// the boundary list separately keeps this a pure geometry pass over an
// opaque bitmap; the alternative of re-rendering the table page by page
// was rejected as far more complex for a little less wasted space.
func SplitStrips(bitmapHeight, maxStrip float64, boundaries []float64) []Strip {
	if bitmapHeight <= 0 || maxStrip <= 0 {
		return nil
	}

	var strips []Strip
	cursor := 0.0
	for cursor < bitmapHeight-stripEpsilon {
		end := cursor + maxStrip
		if end >= bitmapHeight {
			end = bitmapHeight
		} else if b, ok := deepestWithin(boundaries, cursor, end); ok {
			end = b
		}
		strips = append(strips, Strip{Top: cursor, Bottom: end})
		cursor = end
	}
	return strips
}

// deepestWithin returns the largest boundary strictly inside (lo, hi).
func deepestWithin(boundaries []float64, lo, hi float64) (float64, bool) {
	best, found := 0.0, false
	for _, b := range boundaries {
		if b > lo && b < hi && b > best {
			best = b
			found = true
		}
	}
	return best, found
}
