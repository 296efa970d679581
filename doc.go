// Package bingopdf generates printable bingo cards as a paginated PDF.
//
// # Quick Start
//
// Create a generator, connect the content provider, generate, and close
// when done:
//
//	gen, err := bingopdf.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	if err := gen.Connect(ctx, "my-gcp-project", ""); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := gen.Generate(ctx, bingopdf.Input{
//	    Topic:     "European capitals",
//	    Grid:      bingopdf.GridShape{Rows: 4, Cols: 4},
//	    CardCount: 30,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("bingo.pdf", result.PDF, 0644)
//
// The result also carries the item pool, the assembled cards, and the
// intermediate HTML documents for debugging. Use Input.HTMLOnly to stop
// before the browser stage.
//
// # Pipeline
//
// Generation follows these stages:
//
//  1. Pool sizing: the smallest item pool that gives the requested card
//     count enough combinatorial variety (MinimumPoolSize).
//  2. Content generation: question/answer items from Gemini, plus
//     subject detection deciding whether answers are math notation.
//  3. Card assembly: one uniform full-pool shuffle per card
//     (AssembleCards). Cards are only probabilistically distinct.
//  4. Rendering: cards and the answer-calling table become HTML
//     documents, snapshotted as bitmaps in headless Chrome (go-rod).
//  5. Layout: cards two per page row; the table bitmap is cut into
//     page strips at row boundaries so no row is torn across pages.
//  6. Composition: the placed bitmaps become one Letter-portrait PDF.
//
// # Browser Requirements
//
// Snapshotting requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first run (~/.cache/rod/browser/). Set
// ROD_BROWSER_BIN to use a pre-installed binary; the Chrome sandbox is
// disabled automatically under CI.
package bingopdf
