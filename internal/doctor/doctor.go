// Package doctor provides configuration preflight checks for smk.
package doctor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terrytangyuan/social-media-kit-go/internal/chunk"
	"github.com/terrytangyuan/social-media-kit-go/internal/platform"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// DefaultSampleText is the corpus the split self-test runs against: prose,
// paragraph breaks, and a numbered list, long enough to need splitting at
// every stock platform limit except LinkedIn's.
const DefaultSampleText = `The deploy pipeline finished another full pass this morning. Every stage ran clean on the first try, which has not happened since the cache rework landed.

Plan for the week:

1. Land the retry logic for flaky webhook deliveries.
2. Cut the release branch and tag the first candidate.
3. Write the migration notes for the storage format change.

The remaining risk sits in the migration step. The format change touches every stored draft, so the rollout goes one region at a time with a full backup ahead of each move. If anything looks off the plan is to stop early and roll the region back.`

// Config holds the inputs for each doctor check.
type Config struct {
	// Table is the resolved platform limit table to validate.
	Table platform.Table
	// SampleText overrides the corpus used by the split self-test.
	SampleText string
	// ConfigFile, when non-empty, is checked for existence on disk.
	ConfigFile string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- config file ------------------------------------------------------
	if cfg.ConfigFile != "" {
		if _, err := os.Stat(cfg.ConfigFile); err != nil {
			res.fail(fmt.Sprintf("config file %q: %v", cfg.ConfigFile, err))
			fmt.Fprintf(w, "%s config file %s: not found\n", FailMark, cfg.ConfigFile)
		} else {
			fmt.Fprintf(w, "%s config file: %s\n", PassMark, cfg.ConfigFile)
		}
	}

	// ---- platform table ---------------------------------------------------
	if len(cfg.Table) == 0 {
		res.fail("platform table: empty")
		fmt.Fprintf(w, "%s platform table: empty\n", FailMark)
		return res
	}

	names := cfg.Table.Names()
	for _, name := range names {
		lim := cfg.Table[name]
		if err := lim.Validate(); err != nil {
			res.fail(fmt.Sprintf("platform %s: %v", name, err))
			fmt.Fprintf(w, "%s platform %s: %v\n", FailMark, name, err)

			continue
		}

		fmt.Fprintf(w, "%s platform %s: %d %s\n", PassMark, name, lim.Max, lim.Mode)
	}

	// ---- split self-test --------------------------------------------------
	sample := cfg.SampleText
	if sample == "" {
		sample = DefaultSampleText
	}

	sample = chunk.Normalize(sample)

	for _, name := range names {
		lim := cfg.Table[name]
		if lim.Validate() != nil {
			continue // already reported above
		}

		if err := selfTest(sample, lim); err != nil {
			res.fail(fmt.Sprintf("split self-test (%s): %v", name, err))
			fmt.Fprintf(w, "%s split self-test %s: %v\n", FailMark, name, err)

			continue
		}

		fmt.Fprintf(w, "%s split self-test %s: ok\n", PassMark, name)
	}

	return res
}

// selfTest splits sample under lim and verifies the output: every part
// within the limit, nothing truncated, and no content lost. A failure means
// the configured limit cannot carry realistic posts, most often because it
// is too small for ordinary words.
func selfTest(sample string, lim chunk.Limit) error {
	chunks, err := chunk.Split(sample, lim)
	if err != nil {
		return err
	}

	parts := make([]string, 0, len(chunks))
	for i, c := range chunks {
		n, err := chunk.Length(c.Text, lim.Mode)
		if err != nil {
			return fmt.Errorf("part %d: %w", i+1, err)
		}

		if n > lim.Max {
			return fmt.Errorf("part %d measures %d units over limit %d", i+1, n, lim.Max)
		}

		if c.Truncated {
			return fmt.Errorf("part %d was truncated", i+1)
		}

		parts = append(parts, c.Text)
	}

	joined := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	want := strings.Join(strings.Fields(sample), " ")
	if joined != want {
		return fmt.Errorf("rejoined parts do not reproduce the sample")
	}

	return nil
}
