// Package layout places rendered bitmaps onto fixed-size pages.
//
// A Context owns the page cursor and the accumulated pages of one
// export. Cards go two per row into a fixed two-column grid; the answer
// table arrives as one tall bitmap and is cut into page-sized strips at
// row boundaries so no table row is torn across pages.
//
// All placement is sequential: every decision depends on the running
// cursor, so a Context must not be shared between goroutines. One
// export, one Context.
package layout
