package bingopdf

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/alnah/go-bingopdf/internal/layout"
)

// Grid shape bounds. Cards are small enough to read aloud comfortably
// between 3x3 and 5x5.
const (
	MinGridSide = 3
	MaxGridSide = 5
)

// MaxPoolSize caps the upward pool-size search so degenerate card
// counts cannot loop forever.
const MaxPoolSize = 100

// Item is one question/answer pair produced by the content provider.
// The Problem is the clue read aloud by the caller; the Answer is what
// players look for on their cards. Items are immutable once generated.
type Item struct {
	ID      int
	Problem string
	Answer  string
}

// GridShape is the (rows, columns) pair of a card.
type GridShape struct {
	Rows int
	Cols int
}

// Cells returns the number of cells per card.
func (g GridShape) Cells() int { return g.Rows * g.Cols }

// Validate checks that both sides are within the supported range.
func (g GridShape) Validate() error {
	if g.Rows < MinGridSide || g.Rows > MaxGridSide || g.Cols < MinGridSide || g.Cols > MaxGridSide {
		return fmt.Errorf("%w: %dx%d (sides must be between %d and %d)",
			ErrInvalidGrid, g.Rows, g.Cols, MinGridSide, MaxGridSide)
	}
	return nil
}

// Card is one assembled bingo card. Number is 1-based. Cells holds
// exactly Rows*Cols items in display order; every cell is filled, there
// is no free-space placeholder.
type Card struct {
	Number int
	Cells  []Item
}

// Subject is the provider's classification of a topic.
type Subject struct {
	Name   string
	IsMath bool
}

// Input contains generation parameters.
type Input struct {
	Topic     string // topic text sent to the content provider (required)
	Grid      GridShape
	CardCount int

	// PoolSize overrides the computed minimum when > 0. Must be at
	// least Grid.Cells(); smaller values are rejected.
	PoolSize int

	// Subject skips subject detection when non-nil.
	Subject *Subject

	// Mode selects the provider's question style (default "quiz").
	Mode string

	// ReferenceImage is optional source material for the provider.
	ReferenceImage []byte
	ImageMIMEType  string

	// Title is printed at the top of the first page. Defaults to the
	// topic text.
	Title string

	// HTMLOnly skips snapshotting and PDF composition, returning only
	// the rendered HTML (for debugging).
	HTMLOnly bool
}

// Result holds the outcome of one generation run.
type Result struct {
	PDF       []byte
	Pool      []Item
	Cards     []Card
	Subject   Subject
	PageCount int

	// CardHTML and TableHTML are the documents handed to the renderer,
	// kept for inspection. CardHTML is indexed by card order.
	CardHTML  []string
	TableHTML string
}

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout time.Duration
	geom    layout.Geometry
	rng     *rand.Rand
	model   string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 60 * time.Second

// WithTimeout sets the per-snapshot browser timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("bingopdf: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithGeometry overrides the default page geometry.
func WithGeometry(geom layout.Geometry) Option {
	return func(g *Generator) {
		g.cfg.geom = geom
	}
}

// WithRandSource fixes the shuffle source for reproducible card sets.
func WithRandSource(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.cfg.rng = rng
	}
}

// WithSeed is shorthand for WithRandSource with a seeded source.
func WithSeed(seed int64) Option {
	return WithRandSource(rand.New(rand.NewSource(seed)))
}

// WithProvider injects a custom content provider (e.g. for tests).
func WithProvider(p ContentProvider) Option {
	return func(g *Generator) {
		g.provider = p
	}
}

// WithModel sets the provider model name used when the Generator builds
// its own Gemini client.
func WithModel(name string) Option {
	return func(g *Generator) {
		g.cfg.model = name
	}
}
