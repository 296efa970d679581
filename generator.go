package bingopdf

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/alnah/go-bingopdf/internal/compose"
	"github.com/alnah/go-bingopdf/internal/content"
	"github.com/alnah/go-bingopdf/internal/layout"
)

// ContentProvider supplies the item pool and subject metadata. The
// Gemini client in internal/content is the production implementation;
// tests inject fakes.
type ContentProvider interface {
	GeneratePool(ctx context.Context, req content.PoolRequest) ([]content.Item, error)
	DetectSubject(ctx context.Context, topic string, image []byte, mimeType string) (content.Subject, error)
}

// Compile-time interface implementation check.
var _ ContentProvider = (*content.Client)(nil)

// Generator orchestrates one bingo-card export: pool generation, card
// assembly, rendering, page layout, and PDF composition.
// Create with NewGenerator, use Generate, and Close when done.
//
// Concurrent Generate calls are not supported: layout runs against a
// single page cursor. Callers must serialize exports.
type Generator struct {
	cfg      generatorConfig
	provider ContentProvider
	snap     snapshotter
	renderer *htmlRenderer
}

// NewGenerator creates a Generator with default configuration.
// Use options to customize behavior (e.g. WithTimeout, WithProvider,
// WithSeed). Returns an error if the embedded assets fail to parse.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			timeout: defaultTimeout,
			geom:    layout.DefaultGeometry(),
		},
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.cfg.rng == nil {
		g.cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- shuffle, not crypto
	}

	renderer, err := newHTMLRenderer()
	if err != nil {
		return nil, err
	}
	g.renderer = renderer

	// Create the browser snapshotter if not injected (e.g. by tests).
	if g.snap == nil {
		g.snap = newRodSnapshotter(g.cfg.timeout)
	}

	return g, nil
}

// Connect attaches the Gemini content provider. Kept separate from
// NewGenerator because the client needs a context and cloud project.
func (g *Generator) Connect(ctx context.Context, projectID, region string) error {
	client, err := content.NewClient(ctx, projectID, region, g.cfg.model)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContentProvider, err)
	}
	g.provider = client
	return nil
}

// Generate runs the full export and returns the paginated document.
// Recovers from internal panics to prevent crashes from propagating to
// callers.
func (g *Generator) Generate(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := g.validateInput(input); err != nil {
		return nil, err
	}
	if g.provider == nil {
		return nil, ErrNoProvider
	}

	// Subject metadata, detected unless the caller already knows it.
	var subject Subject
	if input.Subject != nil {
		subject = *input.Subject
	} else {
		detected, err := g.provider.DetectSubject(ctx, input.Topic, input.ReferenceImage, input.ImageMIMEType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSubjectDetect, err)
		}
		subject = Subject{Name: detected.Name, IsMath: detected.IsMath}
	}

	// Pool sizing: explicit override or the computed minimum.
	poolSize := input.PoolSize
	if poolSize == 0 {
		poolSize = MinimumPoolSize(input.Grid.Rows, input.Grid.Cols, input.CardCount)
	}

	generated, err := g.provider.GeneratePool(ctx, content.PoolRequest{
		Subject:        subject.Name,
		Topic:          input.Topic,
		PoolSize:       poolSize,
		Mode:           input.Mode,
		ReferenceImage: input.ReferenceImage,
		ImageMIMEType:  input.ImageMIMEType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentProvider, err)
	}

	pool := make([]Item, len(generated))
	for i, it := range generated {
		pool[i] = Item{ID: it.ID, Problem: it.Problem, Answer: it.Answer}
	}

	// The provider may return fewer usable items than requested;
	// AssembleCards enforces the pool invariant and aborts on violation.
	cards, err := AssembleCards(pool, input.CardCount, input.Grid, g.cfg.rng)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Pool:    pool,
		Cards:   cards,
		Subject: subject,
	}

	for _, card := range cards {
		html, err := g.renderer.RenderCard(card, input.Grid, subject.IsMath)
		if err != nil {
			return nil, err
		}
		res.CardHTML = append(res.CardHTML, html)
	}
	res.TableHTML, err = g.renderer.RenderTable(pool, subject.IsMath)
	if err != nil {
		return nil, err
	}

	// Skip snapshotting and composition in HTMLOnly mode (for debugging).
	if input.HTMLOnly {
		return res, nil
	}

	title := input.Title
	if title == "" {
		title = input.Topic
	}

	// Layout: snapshots are sequential because each placement depends
	// on the running cursor. Any snapshot failure aborts the export;
	// silently omitting a card or table page would produce a
	// misleading document.
	lc := layout.NewContext(g.cfg.geom)
	if title != "" {
		lc.Advance(compose.TitleHeight() + g.cfg.geom.CardGapY)
	}

	for i, html := range res.CardHTML {
		bmp, err := g.snap.CardSnapshot(ctx, html, subject.IsMath)
		if err != nil {
			return nil, err
		}
		if err := lc.PlaceCard(bmp, i, len(res.CardHTML)); err != nil {
			return nil, err
		}
	}

	table, err := g.snap.TableSnapshot(ctx, res.TableHTML, subject.IsMath)
	if err != nil {
		return nil, err
	}
	if err := lc.PlaceTable(table.Bitmap, table.RowBottoms, table.LayoutHeight); err != nil {
		return nil, err
	}

	pdf, err := compose.Document(lc.Pages(), g.cfg.geom, title)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFCompose, err)
	}

	res.PDF = pdf
	res.PageCount = len(lc.Pages())
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (g *Generator) Close() error {
	if g.snap != nil {
		return g.snap.Close()
	}
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input
// manually. CLI users have their input validated earlier at config and
// flag parsing time. Both paths converge here.
func (g *Generator) validateInput(input Input) error {
	if input.Topic == "" {
		return ErrEmptyTopic
	}
	if err := input.Grid.Validate(); err != nil {
		return err
	}
	if input.CardCount < 1 {
		return fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidCardCount, input.CardCount)
	}
	if input.PoolSize != 0 {
		if input.PoolSize < input.Grid.Cells() || input.PoolSize > MaxPoolSize {
			return fmt.Errorf("%w: %d (must be between %d and %d)",
				ErrInvalidPoolSize, input.PoolSize, input.Grid.Cells(), MaxPoolSize)
		}
	}
	return nil
}
