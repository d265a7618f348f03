package chunk

import (
	"strings"
	"unicode"
)

// truncateSpaceFraction controls the forced-truncation cut: the valve backs
// up to the last space only when that space already sits past this share of
// the limit, so a nearby clean cut wins but a distant one does not.
const truncateSpaceFraction = 0.8

// Split is the full engine pass: Segment, then Merge. Text that already
// fits the limit comes back unchanged as a single chunk, the empty string
// included.
func Split(text string, lim Limit) ([]Chunk, error) {
	chunks, err := Segment(text, lim)
	if err != nil {
		return nil, err
	}
	return Merge(chunks, lim)
}

// Segment cuts text into ordered chunks, each measuring at most lim.Max
// units, using the break cascade alone. Most callers want Split; Segment
// exposes the raw cascade output for inspection and for callers that do
// their own merging.
//
// Whitespace is trimmed only at cut points, never inside a part, so
// joining the chunks with single spaces reproduces the original text up to
// collapsed whitespace runs.
func Segment(text string, lim Limit) ([]Chunk, error) {
	c, err := lim.counter()
	if err != nil {
		return nil, err
	}
	if c.Count(text) <= lim.Max {
		return []Chunk{{Text: text}}, nil
	}

	var chunks []Chunk
	remaining := text
	for remaining != "" {
		if c.Count(remaining) <= lim.Max {
			chunks = append(chunks, Chunk{Text: remaining})
			break
		}

		off := selectBreak(remaining, lim, c)
		head := strings.TrimRightFunc(remaining[:off], unicode.IsSpace)
		remaining = strings.TrimLeftFunc(remaining[off:], unicode.IsSpace)
		if head == "" {
			continue
		}
		chunks = append(chunks, clampChunk(head, lim, c))
	}
	return chunks, nil
}

// clampChunk is the safety valve behind the cascade: if a head still
// exceeds the limit, cut it at the limit and mark the chunk. With one
// exception the cascade never lets this trigger; the exception is a limit
// smaller than the head's first indivisible sequence, which is emitted
// whole rather than sliced apart.
func clampChunk(head string, lim Limit, c Counter) Chunk {
	if c.Count(head) <= lim.Max {
		return Chunk{Text: head}
	}

	cut := c.Clip(head, lim.Max)
	if cut == 0 {
		cut = c.First(head)
	}
	clipped := head[:cut]
	if sp := strings.LastIndexFunc(clipped, unicode.IsSpace); sp > 0 {
		if float64(c.Count(clipped[:sp])) > float64(lim.Max)*truncateSpaceFraction {
			clipped = clipped[:sp]
		}
	}
	return Chunk{Text: strings.TrimRightFunc(clipped, unicode.IsSpace), Truncated: true}
}
