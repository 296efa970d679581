package bingopdf

import (
	"fmt"
	"math/rand"
)

// AssembleCards produces cardCount cards, each holding the first
// rows*cols items of an independent uniform shuffle of the whole pool.
// The full permutation per card keeps every ordering equally likely and
// makes duplicate items within one card impossible by construction.
// Cards may still coincide with each other: uniqueness across the set is
// only probabilistic, governed by the pool size, and is intentionally
// not enforced here.
//
// Fails without producing any cards when the pool cannot fill one grid.
func AssembleCards(pool []Item, cardCount int, grid GridShape, rng *rand.Rand) ([]Card, error) {
	cells := grid.Cells()
	if len(pool) < cells {
		return nil, fmt.Errorf("%w: %d items, %dx%d grid needs %d",
			ErrPoolTooSmall, len(pool), grid.Rows, grid.Cols, cells)
	}

	cards := make([]Card, 0, cardCount)
	perm := make([]Item, len(pool))
	for n := 1; n <= cardCount; n++ {
		copy(perm, pool)
		// Fisher-Yates: swap each index with a uniform pick at or below it.
		rng.Shuffle(len(perm), func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})
		selected := make([]Item, cells)
		copy(selected, perm[:cells])
		cards = append(cards, Card{Number: n, Cells: selected})
	}
	return cards, nil
}
