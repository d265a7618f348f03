package chunk

import (
	"regexp"
	"strings"
)

// A list marker severed from its content reads as a broken post: a part
// ending in a bare "3." or "-" tells the reader nothing. The patterns
// cover numbered markers ("1. ", "2) ") and the common bullet glyphs at
// the start of a line.
var (
	numberedMarkerRe = regexp.MustCompile(`^\d+[.)]\s`)
	bulletMarkerRe   = regexp.MustCompile(`^[-*•]\s`)

	// markerOnlyLineRe matches a line that is nothing but a marker,
	// optionally with trailing whitespace.
	markerOnlyLineRe = regexp.MustCompile(`^(?:\d+[.)]|[-*•])\s*$`)
)

// hasListMarker reports whether s begins with a list-item marker.
func hasListMarker(s string) bool {
	return numberedMarkerRe.MatchString(s) || bulletMarkerRe.MatchString(s)
}

// isMarkerOnlyLine reports whether line is an orphaned marker: a marker
// with no content after it on the same line.
func isMarkerOnlyLine(line string) bool {
	return markerOnlyLineRe.MatchString(line)
}

// listItemEnd returns the byte offset in s where the list item starting at
// itemStart ends: at its line break, or at the end of the text for a final
// item.
func listItemEnd(s string, itemStart int) int {
	if i := strings.Index(s[itemStart:], "\n"); i >= 0 {
		return itemStart + i
	}
	return len(s)
}
