package bingopdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/alnah/go-bingopdf/internal/content"
	"github.com/alnah/go-bingopdf/internal/layout"
)

// fakeProvider returns canned pool and subject responses and records
// what it was asked for.
type fakeProvider struct {
	pool    []content.Item
	subject content.Subject

	poolErr    error
	subjectErr error

	lastReq     content.PoolRequest
	detectCalls int
}

func (f *fakeProvider) GeneratePool(_ context.Context, req content.PoolRequest) ([]content.Item, error) {
	f.lastReq = req
	if f.poolErr != nil {
		return nil, f.poolErr
	}
	if f.pool != nil {
		return f.pool, nil
	}
	items := make([]content.Item, req.PoolSize)
	for i := range items {
		items[i] = content.Item{
			ID:      i + 1,
			Problem: fmt.Sprintf("problem %d", i+1),
			Answer:  fmt.Sprintf("answer %d", i+1),
		}
	}
	return items, nil
}

func (f *fakeProvider) DetectSubject(context.Context, string, []byte, string) (content.Subject, error) {
	f.detectCalls++
	if f.subjectErr != nil {
		return content.Subject{}, f.subjectErr
	}
	if f.subject.Name != "" {
		return f.subject, nil
	}
	return content.Subject{Name: "General Knowledge"}, nil
}

// fakeSnapshotter serves pre-encoded bitmaps without a browser.
type fakeSnapshotter struct {
	card  layout.Bitmap
	table tableSnapshot

	cardErr  error
	tableErr error

	cardCalls  int
	tableCalls int
	closed     bool
}

func (f *fakeSnapshotter) CardSnapshot(context.Context, string, bool) (layout.Bitmap, error) {
	f.cardCalls++
	if f.cardErr != nil {
		return layout.Bitmap{}, f.cardErr
	}
	return f.card, nil
}

func (f *fakeSnapshotter) TableSnapshot(context.Context, string, bool) (tableSnapshot, error) {
	f.tableCalls++
	if f.tableErr != nil {
		return tableSnapshot{}, f.tableErr
	}
	return f.table, nil
}

func (f *fakeSnapshotter) Close() error {
	f.closed = true
	return nil
}

// makePNG encodes a solid bitmap of the given pixel size.
func makePNG(t *testing.T, w, h int) layout.Bitmap {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return layout.Bitmap{PNG: buf.Bytes(), Width: w, Height: h}
}

func newTestSnapshotter(t *testing.T) *fakeSnapshotter {
	t.Helper()
	return &fakeSnapshotter{
		card: makePNG(t, 640, 520),
		table: tableSnapshot{
			Bitmap:       makePNG(t, 768, 400),
			RowBottoms:   []float64{40, 80, 120, 160, 200},
			LayoutHeight: 200,
		},
	}
}

func newTestGenerator(t *testing.T, provider ContentProvider) (*Generator, *fakeSnapshotter) {
	t.Helper()
	g, err := NewGenerator(WithProvider(provider), WithSeed(42))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	snap := newTestSnapshotter(t)
	g.snap = snap
	t.Cleanup(func() { _ = g.Close() })
	return g, snap
}

func validInput() Input {
	return Input{
		Topic:     "European capitals",
		Grid:      GridShape{Rows: 3, Cols: 3},
		CardCount: 4,
	}
}

func TestGenerate_ValidateInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Input)
		wantErr error
	}{
		{
			name:    "empty topic",
			mutate:  func(in *Input) { in.Topic = "" },
			wantErr: ErrEmptyTopic,
		},
		{
			name:    "grid too small",
			mutate:  func(in *Input) { in.Grid = GridShape{Rows: 2, Cols: 3} },
			wantErr: ErrInvalidGrid,
		},
		{
			name:    "grid too large",
			mutate:  func(in *Input) { in.Grid = GridShape{Rows: 5, Cols: 6} },
			wantErr: ErrInvalidGrid,
		},
		{
			name:    "zero card count",
			mutate:  func(in *Input) { in.CardCount = 0 },
			wantErr: ErrInvalidCardCount,
		},
		{
			name:    "pool size below cells",
			mutate:  func(in *Input) { in.PoolSize = 8 },
			wantErr: ErrInvalidPoolSize,
		},
		{
			name:    "pool size above cap",
			mutate:  func(in *Input) { in.PoolSize = MaxPoolSize + 1 },
			wantErr: ErrInvalidPoolSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGenerator(t, &fakeProvider{})
			in := validInput()
			tt.mutate(&in)

			_, err := g.Generate(context.Background(), in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerate_NoProvider(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(WithSeed(1))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	g.snap = newTestSnapshotter(t)
	defer func() { _ = g.Close() }()

	_, err = g.Generate(context.Background(), validInput())
	if !errors.Is(err, ErrNoProvider) {
		t.Errorf("error = %v, want ErrNoProvider", err)
	}
}

func TestGenerate_SubjectDetection(t *testing.T) {
	t.Parallel()

	t.Run("detects when not supplied", func(t *testing.T) {
		provider := &fakeProvider{subject: content.Subject{Name: "Geography"}}
		g, _ := newTestGenerator(t, provider)

		res, err := g.Generate(context.Background(), validInput())
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if provider.detectCalls != 1 {
			t.Errorf("detectCalls = %d, want 1", provider.detectCalls)
		}
		if res.Subject.Name != "Geography" {
			t.Errorf("Subject.Name = %q, want %q", res.Subject.Name, "Geography")
		}
	})

	t.Run("skips detection when supplied", func(t *testing.T) {
		provider := &fakeProvider{}
		g, _ := newTestGenerator(t, provider)

		in := validInput()
		in.Subject = &Subject{Name: "Algebra", IsMath: true}

		res, err := g.Generate(context.Background(), in)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if provider.detectCalls != 0 {
			t.Errorf("detectCalls = %d, want 0", provider.detectCalls)
		}
		if !res.Subject.IsMath {
			t.Error("Subject.IsMath = false, want true")
		}
	})

	t.Run("detection failure", func(t *testing.T) {
		provider := &fakeProvider{subjectErr: errors.New("quota exceeded")}
		g, _ := newTestGenerator(t, provider)

		_, err := g.Generate(context.Background(), validInput())
		if !errors.Is(err, ErrSubjectDetect) {
			t.Errorf("error = %v, want ErrSubjectDetect", err)
		}
	})
}

func TestGenerate_PoolSizing(t *testing.T) {
	t.Parallel()

	t.Run("computed minimum by default", func(t *testing.T) {
		provider := &fakeProvider{}
		g, _ := newTestGenerator(t, provider)

		in := validInput() // 3x3, 4 cards
		if _, err := g.Generate(context.Background(), in); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		want := MinimumPoolSize(3, 3, 4)
		if provider.lastReq.PoolSize != want {
			t.Errorf("requested pool size = %d, want %d", provider.lastReq.PoolSize, want)
		}
	})

	t.Run("explicit override", func(t *testing.T) {
		provider := &fakeProvider{}
		g, _ := newTestGenerator(t, provider)

		in := validInput()
		in.PoolSize = 30

		if _, err := g.Generate(context.Background(), in); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if provider.lastReq.PoolSize != 30 {
			t.Errorf("requested pool size = %d, want 30", provider.lastReq.PoolSize)
		}
	})
}

func TestGenerate_ProviderFailures(t *testing.T) {
	t.Parallel()

	t.Run("pool generation failure", func(t *testing.T) {
		provider := &fakeProvider{poolErr: errors.New("backend unavailable")}
		g, _ := newTestGenerator(t, provider)

		_, err := g.Generate(context.Background(), validInput())
		if !errors.Is(err, ErrContentProvider) {
			t.Errorf("error = %v, want ErrContentProvider", err)
		}
	})

	t.Run("pool shorter than one grid", func(t *testing.T) {
		provider := &fakeProvider{pool: []content.Item{
			{ID: 1, Problem: "p", Answer: "a"},
			{ID: 2, Problem: "q", Answer: "b"},
		}}
		g, _ := newTestGenerator(t, provider)

		_, err := g.Generate(context.Background(), validInput())
		if !errors.Is(err, ErrPoolTooSmall) {
			t.Errorf("error = %v, want ErrPoolTooSmall", err)
		}
	})
}

func TestGenerate_HTMLOnly(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{}
	g, snap := newTestGenerator(t, provider)

	in := validInput()
	in.HTMLOnly = true

	res, err := g.Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(res.CardHTML) != in.CardCount {
		t.Errorf("len(CardHTML) = %d, want %d", len(res.CardHTML), in.CardCount)
	}
	if res.TableHTML == "" {
		t.Error("TableHTML is empty")
	}
	if res.PDF != nil {
		t.Error("PDF should be nil in HTML-only mode")
	}
	if snap.cardCalls != 0 || snap.tableCalls != 0 {
		t.Errorf("snapshotter used in HTML-only mode: %d card, %d table calls",
			snap.cardCalls, snap.tableCalls)
	}
}

func TestGenerate_FullRun(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{}
	g, snap := newTestGenerator(t, provider)

	in := validInput()
	in.Title = "Capitals Bingo"

	res, err := g.Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !bytes.HasPrefix(res.PDF, []byte("%PDF-")) {
		t.Error("result is not a PDF document")
	}
	if res.PageCount < 2 {
		t.Errorf("PageCount = %d, want at least 2 (cards + table)", res.PageCount)
	}
	if len(res.Cards) != in.CardCount {
		t.Errorf("len(Cards) = %d, want %d", len(res.Cards), in.CardCount)
	}
	if len(res.Pool) == 0 {
		t.Error("Pool is empty")
	}
	if snap.cardCalls != in.CardCount {
		t.Errorf("cardCalls = %d, want %d", snap.cardCalls, in.CardCount)
	}
	if snap.tableCalls != 1 {
		t.Errorf("tableCalls = %d, want 1", snap.tableCalls)
	}
	for i, html := range res.CardHTML {
		if !strings.Contains(html, fmt.Sprintf("Card %d", i+1)) {
			t.Errorf("CardHTML[%d] missing its card number", i)
		}
	}
}

func TestGenerate_SnapshotFailureAborts(t *testing.T) {
	t.Parallel()

	t.Run("card snapshot", func(t *testing.T) {
		g, snap := newTestGenerator(t, &fakeProvider{})
		snap.cardErr = fmt.Errorf("%w: boom", ErrSnapshot)

		_, err := g.Generate(context.Background(), validInput())
		if !errors.Is(err, ErrSnapshot) {
			t.Errorf("error = %v, want ErrSnapshot", err)
		}
	})

	t.Run("table snapshot", func(t *testing.T) {
		g, snap := newTestGenerator(t, &fakeProvider{})
		snap.tableErr = fmt.Errorf("%w: boom", ErrSnapshot)

		_, err := g.Generate(context.Background(), validInput())
		if !errors.Is(err, ErrSnapshot) {
			t.Errorf("error = %v, want ErrSnapshot", err)
		}
	})
}

func TestGenerator_Close(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(WithProvider(&fakeProvider{}))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	snap := newTestSnapshotter(t)
	g.snap = snap

	if err := g.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !snap.closed {
		t.Error("Close() did not close the snapshotter")
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}
