package bingopdf

import "math"

// MinimumPoolSize computes the smallest item-pool size that lets
// cardCount cards of the given shape be filled with enough variety.
// Starting at cells-per-card, the size is walked upward until the number
// of distinct cell combinations reaches cardCount. The result is always
// at least cells+1: a pool of exactly one grid's worth would make every
// card identical. The search is capped at MaxPoolSize; the cap is
// returned when cardCount is unsatisfiable within it.
//
// Callers validate cardCount >= 1 before asking for a size.
func MinimumPoolSize(rows, cols, cardCount int) int {
	cells := rows * cols
	size := cells
	for combinations(size, cells) < float64(cardCount) {
		size++
		if size >= MaxPoolSize {
			return MaxPoolSize
		}
	}
	if size <= cells {
		size = cells + 1
	}
	return size
}

// combinations evaluates C(n, r) as a float product. The symmetry
// C(n,r) = C(n,n-r) bounds the loop by the smaller of r and n-r, and the
// final product is rounded to absorb floating-point drift. Returns 0
// when r > n.
func combinations(n, r int) float64 {
	if r > n {
		return 0
	}
	if n-r < r {
		r = n - r
	}
	result := 1.0
	for i := 0; i < r; i++ {
		result = result * float64(n-i) / float64(i+1)
	}
	return math.Round(result)
}
