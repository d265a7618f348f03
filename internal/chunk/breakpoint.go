package chunk

import (
	"strings"
	"unicode"
)

// minViableFraction is the share of the limit a candidate break must clear
// before its tier wins. Without the guard a short opening sentence ("Hi!")
// would turn into a near-empty first part while the rest of the limit goes
// unused.
const minViableFraction = 0.3

// sentenceEnders are the terminal sequences the sentence tier scans for.
// The cut lands after the punctuation; the following space is trimmed at
// the boundary.
var sentenceEnders = []string{". ", "? ", "! "}

// isBreakableSpace reports whitespace the word tier may cut at. No-break
// spaces glue their neighbors together, so they never become break points.
func isBreakableSpace(r rune) bool {
	return unicode.IsSpace(r) && r != '\u00a0' && r != '\u202f'
}

// selectBreak returns the byte offset at which remaining should be cut so
// that the head fits lim. Tiers are tried in order of how natural the
// resulting break reads: sentence end, paragraph break, line break, word
// boundary, and finally the raw limit. The returned offset is always a
// safe slice point for lim's counting mode and is positive for non-empty
// input.
func selectBreak(remaining string, lim Limit, c Counter) int {
	window := remaining[:c.Clip(remaining, lim.Max)]
	if window == "" {
		// The first indivisible sequence alone exceeds the limit. Take it
		// whole; the segmenter's safety valve marks the overflow.
		return c.First(remaining)
	}

	tiers := []struct {
		find      func(window string) int
		listGuard bool
	}{
		{findSentenceBreak, false},
		{findParagraphBreak, true},
		{findLineBreak, true},
		{findWordBreak, false},
	}

	for _, tier := range tiers {
		off := tier.find(window)
		if off <= 0 || !viable(remaining[:off], lim, c) {
			continue
		}
		if tier.listGuard {
			off = guardListBreak(remaining, off, lim, c)
		}
		if off = stripTrailingMarker(remaining, off); off > 0 {
			return off
		}
	}

	if off := stripTrailingMarker(remaining, len(window)); off > 0 {
		return off
	}
	return len(window)
}

// viable reports whether the candidate head is worth emitting. Offsets at
// or below 30% of the limit are rejected so early tiers cannot starve a
// part down to a fragment.
func viable(head string, lim Limit, c Counter) bool {
	return float64(c.Count(head)) > float64(lim.Max)*minViableFraction
}

// findSentenceBreak returns a cut just after the last sentence-terminal
// punctuation in window, or -1 if none occurs.
func findSentenceBreak(window string) int {
	best := -1
	for _, end := range sentenceEnders {
		if i := strings.LastIndex(window, end); i >= 0 && i+1 > best {
			best = i + 1
		}
	}
	return best
}

// findParagraphBreak returns a cut at the last blank-line separator.
func findParagraphBreak(window string) int {
	return strings.LastIndex(window, "\n\n")
}

// findLineBreak returns a cut at the last line break.
func findLineBreak(window string) int {
	return strings.LastIndex(window, "\n")
}

// findWordBreak returns a cut at the last breakable whitespace rune.
// Newlines match too, but any newline position here already failed the
// earlier tiers, so in practice this selects spaces.
func findWordBreak(window string) int {
	return strings.LastIndexFunc(window, isBreakableSpace)
}

// guardListBreak adjusts a paragraph or line candidate that lands directly
// before a list item. When the whole item still fits the limit the cut is
// extended past it, keeping marker and content together in this part;
// otherwise the candidate stands and the item opens the next part intact.
func guardListBreak(remaining string, off int, lim Limit, c Counter) int {
	itemStart := off
	for itemStart < len(remaining) && (remaining[itemStart] == '\n' || remaining[itemStart] == '\r') {
		itemStart++
	}
	if !hasListMarker(remaining[itemStart:]) {
		return off
	}
	end := listItemEnd(remaining, itemStart)
	head := strings.TrimRightFunc(remaining[:end], unicode.IsSpace)
	if c.Count(head) <= lim.Max {
		return end
	}
	return off
}

// stripTrailingMarker walks the cut backward while the final line of the
// would-be part is a bare marker, so the marker is emitted next to its
// content in the following part. Returns 0 when stripping would empty the
// part, in which case the caller keeps looking.
func stripTrailingMarker(remaining string, off int) int {
	for {
		head := strings.TrimRightFunc(remaining[:off], unicode.IsSpace)
		nl := strings.LastIndex(head, "\n")
		if !isMarkerOnlyLine(head[nl+1:]) {
			return off
		}
		if nl < 0 {
			return 0
		}
		off = nl
	}
}
