package main

import (
	"time"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the bingopdf command.
type cliFlags struct {
	config  string
	quiet   bool
	verbose bool

	topic    string
	subject  string
	math     bool
	mode     string
	refImage string

	rows     int
	cols     int
	cards    int
	poolSize int
	seed     int64

	project string
	region  string
	model   string

	title   string
	output  string
	timeout time.Duration
}

// parseFlags parses the command line. Flags left at their zero value
// defer to the config file, which in turn defers to built-in defaults.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("bingopdf", flag.ContinueOnError)

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show progress detail")

	fs.StringVarP(&f.topic, "topic", "t", "", "topic for item generation (required)")
	fs.StringVar(&f.subject, "subject", "", "skip subject detection and use this subject")
	fs.BoolVar(&f.math, "math", false, "answers are math notation (with --subject)")
	fs.StringVar(&f.mode, "mode", "", `question style (default "quiz")`)
	fs.StringVar(&f.refImage, "ref-image", "", "reference image file for the provider")

	fs.IntVar(&f.rows, "rows", 0, "card rows, 3-5")
	fs.IntVar(&f.cols, "cols", 0, "card columns, 3-5")
	fs.IntVarP(&f.cards, "cards", "n", 0, "number of cards")
	fs.IntVar(&f.poolSize, "pool-size", 0, "item pool size (0 = computed minimum)")
	fs.Int64Var(&f.seed, "seed", 0, "shuffle seed (0 = time-based)")

	fs.StringVar(&f.project, "project", "", "GCP project (default $GCP_PROJECT_ID)")
	fs.StringVar(&f.region, "region", "", "GCP region (default $GCP_REGION)")
	fs.StringVar(&f.model, "model", "", "Gemini model name")

	fs.StringVar(&f.title, "title", "", "document title (default: the topic)")
	fs.StringVarP(&f.output, "output", "o", "bingo.pdf", "output PDF path")
	fs.DurationVar(&f.timeout, "timeout", 3*time.Minute, "overall generation timeout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// A bare positional argument is the topic.
	if f.topic == "" && fs.NArg() > 0 {
		f.topic = fs.Arg(0)
	}

	return f, nil
}
