package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	bingopdf "github.com/alnah/go-bingopdf"
	"github.com/alnah/go-bingopdf/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "browser connect", err: bingopdf.ErrBrowserConnect, want: ExitBrowser},
		{name: "wrapped snapshot", err: fmt.Errorf("%w: boom", bingopdf.ErrSnapshot), want: ExitBrowser},
		{name: "page load", err: bingopdf.ErrPageLoad, want: ExitBrowser},
		{name: "provider", err: bingopdf.ErrContentProvider, want: ExitProvider},
		{name: "subject detect", err: bingopdf.ErrSubjectDetect, want: ExitProvider},
		{name: "file missing", err: os.ErrNotExist, want: ExitIO},
		{name: "ref image", err: fmt.Errorf("%w: no such file", ErrReadRefImage), want: ExitIO},
		{name: "write pdf", err: ErrWritePDF, want: ExitIO},
		{name: "config not found", err: config.ErrConfigNotFound, want: ExitUsage},
		{name: "invalid config value", err: config.ErrInvalidValue, want: ExitUsage},
		{name: "no topic", err: ErrNoTopic, want: ExitUsage},
		{name: "no project", err: ErrNoProject, want: ExitUsage},
		{name: "bad timeout", err: fmt.Errorf("%w: 0s", ErrInvalidTimeout), want: ExitUsage},
		{name: "bad grid", err: bingopdf.ErrInvalidGrid, want: ExitUsage},
		{name: "bad card count", err: bingopdf.ErrInvalidCardCount, want: ExitUsage},
		{name: "unknown", err: fmt.Errorf("surprise"), want: ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHintFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string // substring, empty means no hint expected
	}{
		{name: "browser connect", err: bingopdf.ErrBrowserConnect, want: "ROD_BROWSER_BIN"},
		{name: "no project", err: ErrNoProject, want: "GCP_PROJECT_ID"},
		{name: "deadline", err: context.DeadlineExceeded, want: "--timeout"},
		{name: "config not found", err: config.ErrConfigNotFound, want: "--config"},
		{name: "plain error", err: fmt.Errorf("boom"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Hints inspect the environment; force the empty baseline so
			// the expected suggestions always apply.
			t.Setenv("ROD_BROWSER_BIN", "")
			t.Setenv("GCP_PROJECT_ID", "")
			t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

			got := hintFor(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor(%v) = %q, want empty", tt.err, got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor(%v) = %q, want substring %q", tt.err, got, tt.want)
			}
		})
	}
}
