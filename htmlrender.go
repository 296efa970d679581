package bingopdf

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/alnah/go-bingopdf/internal/assets"
)

// htmlRenderer builds the card and answer-table documents the browser
// snapshots. Item text is Markdown (inline code, emphasis, fenced code
// for programming topics) unless the subject is mathematical, in which
// case the text is escaped verbatim and KaTeX typesets it in the page.
type htmlRenderer struct {
	md        goldmark.Markdown
	style     string
	cardTmpl  *template.Template
	tableTmpl *template.Template
}

type cardTemplateData struct {
	Style  template.CSS
	Number int
	Rows   int
	Cols   int
	Cells  []template.HTML
	IsMath bool
}

type tableRow struct {
	Number  int
	Problem template.HTML
	Answer  template.HTML
}

type tableTemplateData struct {
	Style  template.CSS
	Items  []tableRow
	IsMath bool
}

func newHTMLRenderer() (*htmlRenderer, error) {
	style, err := assets.LoadStyle("bingo")
	if err != nil {
		return nil, fmt.Errorf("loading stylesheet: %w", err)
	}

	cardSrc, err := assets.LoadTemplate("card")
	if err != nil {
		return nil, fmt.Errorf("loading card template: %w", err)
	}
	cardTmpl, err := template.New("card").Parse(cardSrc)
	if err != nil {
		return nil, fmt.Errorf("parsing card template: %w", err)
	}

	tableSrc, err := assets.LoadTemplate("table")
	if err != nil {
		return nil, fmt.Errorf("loading table template: %w", err)
	}
	tableTmpl, err := template.New("table").Parse(tableSrc)
	if err != nil {
		return nil, fmt.Errorf("parsing table template: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(false),
				),
			),
		),
	)

	return &htmlRenderer{
		md:        md,
		style:     style,
		cardTmpl:  cardTmpl,
		tableTmpl: tableTmpl,
	}, nil
}

// renderItemText converts one item field into a cell-safe HTML fragment.
// Math text bypasses Markdown: Goldmark would eat the LaTeX backslashes,
// and KaTeX needs the source verbatim.
func (r *htmlRenderer) renderItemText(text string, isMath bool) (template.HTML, error) {
	if isMath {
		return template.HTML(stdhtml.EscapeString(text)), nil //nolint:gosec // escaped above
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("converting item text: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark output, WithUnsafe not enabled
}

// RenderCard produces the standalone HTML document for one card.
func (r *htmlRenderer) RenderCard(card Card, grid GridShape, isMath bool) (string, error) {
	cells := make([]template.HTML, 0, len(card.Cells))
	for _, item := range card.Cells {
		cell, err := r.renderItemText(item.Answer, isMath)
		if err != nil {
			return "", fmt.Errorf("%w: card %d: %v", ErrCardRender, card.Number, err)
		}
		cells = append(cells, cell)
	}

	var buf bytes.Buffer
	err := r.cardTmpl.Execute(&buf, cardTemplateData{
		Style:  template.CSS(r.style), //nolint:gosec // embedded asset
		Number: card.Number,
		Rows:   grid.Rows,
		Cols:   grid.Cols,
		Cells:  cells,
		IsMath: isMath,
	})
	if err != nil {
		return "", fmt.Errorf("%w: card %d: %v", ErrCardRender, card.Number, err)
	}
	return buf.String(), nil
}

// RenderTable produces the standalone HTML document for the
// answer-calling table, one row per pool item.
func (r *htmlRenderer) RenderTable(pool []Item, isMath bool) (string, error) {
	rows := make([]tableRow, 0, len(pool))
	for _, item := range pool {
		problem, err := r.renderItemText(item.Problem, isMath)
		if err != nil {
			return "", fmt.Errorf("%w: item %d: %v", ErrTableRender, item.ID, err)
		}
		answer, err := r.renderItemText(item.Answer, isMath)
		if err != nil {
			return "", fmt.Errorf("%w: item %d: %v", ErrTableRender, item.ID, err)
		}
		rows = append(rows, tableRow{Number: item.ID, Problem: problem, Answer: answer})
	}

	var buf bytes.Buffer
	err := r.tableTmpl.Execute(&buf, tableTemplateData{
		Style:  template.CSS(r.style), //nolint:gosec // embedded asset
		Items:  rows,
		IsMath: isMath,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTableRender, err)
	}
	return buf.String(), nil
}
