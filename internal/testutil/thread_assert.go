package testutil

import (
	"regexp"
	"strings"
	"testing"

	"github.com/terrytangyuan/social-media-kit-go/internal/chunk"
)

// AssertWithinLimit checks that every chunk measures at or below lim.Max in
// lim's counting mode.
func AssertWithinLimit(tb testing.TB, chunks []chunk.Chunk, lim chunk.Limit) {
	tb.Helper()

	for i, c := range chunks {
		n, err := chunk.Length(c.Text, lim.Mode)
		if err != nil {
			tb.Fatalf("chunk %d: measure: %v", i, err)
		}

		if n > lim.Max {
			tb.Fatalf("chunk %d measures %d units; limit is %d", i, n, lim.Max)
		}
	}
}

// AssertLossless checks that joining the chunks with single spaces
// reproduces the original text up to collapsed whitespace runs. A truncated
// chunk lost content at a fixed cut, so its presence fails the check
// outright.
func AssertLossless(tb testing.TB, original string, chunks []chunk.Chunk) {
	tb.Helper()

	parts := make([]string, 0, len(chunks))
	for i, c := range chunks {
		if c.Truncated {
			tb.Fatalf("chunk %d is truncated; output cannot be lossless", i)
		}

		parts = append(parts, c.Text)
	}

	got := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	want := strings.Join(strings.Fields(original), " ")
	if got != want {
		tb.Fatalf("rejoined chunks do not reproduce the original text\n got: %q\nwant: %q", got, want)
	}
}

// orphanMarker matches a bare list marker closing a chunk: a numbered or
// bulleted marker at the start of the final line with no content after it.
var orphanMarker = regexp.MustCompile(`(?:^|\n)(?:\d+[.)]|[-*•])[ \t]*$`)

// AssertNoOrphanMarkers checks that no chunk ends in a list marker stranded
// from its content.
func AssertNoOrphanMarkers(tb testing.TB, chunks []chunk.Chunk) {
	tb.Helper()

	for i, c := range chunks {
		if orphanMarker.MatchString(c.Text) {
			tb.Fatalf("chunk %d ends with an orphaned list marker: %q", i, c.Text)
		}
	}
}
