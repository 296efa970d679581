package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	bingopdf "github.com/alnah/go-bingopdf"
	"github.com/alnah/go-bingopdf/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoTopic        = errors.New("no topic: pass --topic or a positional argument")
	ErrNoProject      = errors.New("no GCP project: pass --project or set GCP_PROJECT_ID")
	ErrInvalidTimeout = errors.New("timeout must be positive")
	ErrReadRefImage   = errors.New("failed to read reference image")
	ErrWritePDF       = errors.New("failed to write PDF")
)

// run merges flags over config, generates the document, and writes it.
func run(ctx context.Context, f *cliFlags) error {
	// WithTimeout treats a non-positive duration as programmer error
	// and panics, so user input is screened here.
	if f.timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, f.timeout)
	}

	cfg := config.DefaultConfig()
	if f.config != "" {
		loaded, err := config.LoadConfig(f.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags override config.
	if f.rows != 0 {
		cfg.Grid.Rows = f.rows
	}
	if f.cols != 0 {
		cfg.Grid.Cols = f.cols
	}
	if f.cards != 0 {
		cfg.Cards = f.cards
	}
	if f.poolSize != 0 {
		cfg.PoolSize = f.poolSize
	}
	if f.mode != "" {
		cfg.Provider.Mode = f.mode
	}
	if f.model != "" {
		cfg.Provider.Model = f.model
	}
	if f.project != "" {
		cfg.Provider.Project = f.project
	}
	if f.region != "" {
		cfg.Provider.Region = f.region
	}
	if f.title != "" {
		cfg.Output.Title = f.title
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if f.topic == "" {
		return ErrNoTopic
	}

	project := cfg.Provider.Project
	if project == "" {
		project = os.Getenv("GCP_PROJECT_ID")
	}
	if project == "" {
		return ErrNoProject
	}
	region := cfg.Provider.Region
	if region == "" {
		region = os.Getenv("GCP_REGION")
	}

	input := bingopdf.Input{
		Topic:     f.topic,
		Grid:      bingopdf.GridShape{Rows: cfg.Grid.Rows, Cols: cfg.Grid.Cols},
		CardCount: cfg.Cards,
		PoolSize:  cfg.PoolSize,
		Mode:      cfg.Provider.Mode,
		Title:     cfg.Output.Title,
	}
	if f.subject != "" {
		input.Subject = &bingopdf.Subject{Name: f.subject, IsMath: f.math}
	}
	if f.refImage != "" {
		data, err := os.ReadFile(f.refImage) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadRefImage, err)
		}
		input.ReferenceImage = data
		input.ImageMIMEType = http.DetectContentType(data)
	}

	opts := []bingopdf.Option{bingopdf.WithTimeout(f.timeout)}
	if f.seed != 0 {
		opts = append(opts, bingopdf.WithSeed(f.seed))
	}
	if cfg.Provider.Model != "" {
		opts = append(opts, bingopdf.WithModel(cfg.Provider.Model))
	}

	gen, err := bingopdf.NewGenerator(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = gen.Close() }()

	if err := gen.Connect(ctx, project, region); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if f.verbose {
		fmt.Fprintf(os.Stderr, "Generating %d cards (%dx%d) on %q\n",
			cfg.Cards, cfg.Grid.Rows, cfg.Grid.Cols, f.topic)
	}

	result, err := gen.Generate(ctx, input)
	if err != nil {
		return err
	}

	outPath := f.output
	if cfg.Output.DefaultDir != "" && !filepath.IsAbs(outPath) {
		outPath = filepath.Join(cfg.Output.DefaultDir, outPath)
	}
	if err := os.WriteFile(outPath, result.PDF, 0o644); err != nil { // #nosec G306 -- a document, not a secret
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}

	if !f.quiet {
		fmt.Printf("Created %s (%d pages, %d items)\n", outPath, result.PageCount, len(result.Pool))
	}
	return nil
}
