package main

import (
	"context"
	"errors"
	"os"

	bingopdf "github.com/alnah/go-bingopdf"
	"github.com/alnah/go-bingopdf/internal/config"
	"github.com/alnah/go-bingopdf/internal/hints"
)

// Exit codes for the bingopdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom codes < 126.
const (
	ExitSuccess  = 0 // Document written
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitBrowser  = 4 // Browser/Chrome errors
	ExitProvider = 5 // Content provider errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, bingopdf.ErrBrowserConnect) ||
		errors.Is(err, bingopdf.ErrPageCreate) ||
		errors.Is(err, bingopdf.ErrPageLoad) ||
		errors.Is(err, bingopdf.ErrSnapshot) {
		return ExitBrowser
	}

	if errors.Is(err, bingopdf.ErrContentProvider) ||
		errors.Is(err, bingopdf.ErrSubjectDetect) {
		return ExitProvider
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadRefImage) ||
		errors.Is(err, ErrWritePDF) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, ErrNoTopic) ||
		errors.Is(err, ErrNoProject) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, bingopdf.ErrEmptyTopic) ||
		errors.Is(err, bingopdf.ErrInvalidGrid) ||
		errors.Is(err, bingopdf.ErrInvalidCardCount) ||
		errors.Is(err, bingopdf.ErrInvalidPoolSize) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint to append to the printed error,
// or an empty string when no hint applies.
func hintFor(err error) string {
	switch {
	case errors.Is(err, bingopdf.ErrBrowserConnect) ||
		errors.Is(err, bingopdf.ErrPageCreate):
		return hints.ForBrowserConnect()
	case errors.Is(err, bingopdf.ErrContentProvider) ||
		errors.Is(err, bingopdf.ErrSubjectDetect) ||
		errors.Is(err, ErrNoProject):
		return hints.ForProvider()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound()
	}
	return ""
}
