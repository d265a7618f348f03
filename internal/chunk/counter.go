package chunk

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Counter measures text in one platform unit and maps unit positions back
// to byte offsets usable for slicing.
//
// Count returns the length of s in native units. Clip returns the byte
// length of the longest prefix of s measuring at most max units; the
// returned offset never lands inside an indivisible sequence (a surrogate
// pair in code-unit mode, a grapheme cluster in grapheme mode), so slicing
// there is always safe. First returns the byte length of the leading
// indivisible sequence, or 0 for empty input.
type Counter interface {
	Count(s string) int
	Clip(s string, max int) int
	First(s string) int
}

// NewCounter returns the measuring strategy for mode.
func NewCounter(mode Mode) (Counter, error) {
	switch mode {
	case ModeCodeUnits:
		return codeUnitCounter{}, nil
	case ModeGraphemes:
		return graphemeCounter{}, nil
	default:
		return nil, fmt.Errorf("%w %q (expected %q or %q)", ErrUnknownMode, mode, ModeCodeUnits, ModeGraphemes)
	}
}

// Length measures s in mode's native unit.
func Length(s string, mode Mode) (int, error) {
	c, err := NewCounter(mode)
	if err != nil {
		return 0, err
	}
	return c.Count(s), nil
}

// codeUnitCounter implements UTF-16 code-unit measurement.
type codeUnitCounter struct{}

func (codeUnitCounter) Count(s string) int {
	units := 0
	for _, r := range s {
		units += utf16Units(r)
	}
	return units
}

func (codeUnitCounter) Clip(s string, max int) int {
	units := 0
	for i, r := range s {
		units += utf16Units(r)
		if units > max {
			return i
		}
	}
	return len(s)
}

func (codeUnitCounter) First(s string) int {
	if s == "" {
		return 0
	}
	_, size := utf8.DecodeRuneInString(s)
	return size
}

// utf16Units returns the UTF-16 width of r: two for astral-plane runes,
// one for everything else. Invalid runes decode to U+FFFD, one unit.
func utf16Units(r rune) int {
	if r1, _ := utf16.EncodeRune(r); r1 != utf8.RuneError {
		return 2
	}
	return 1
}

// graphemeCounter implements user-perceived character measurement via
// Unicode extended grapheme cluster segmentation (UAX #29). Input that is
// not valid UTF-8 cannot be segmented reliably, so the counter degrades to
// code-point measurement for it rather than failing the call.
type graphemeCounter struct{}

func (graphemeCounter) Count(s string) int {
	if !utf8.ValidString(s) {
		return utf8.RuneCountInString(s)
	}
	return uniseg.GraphemeClusterCount(s)
}

func (graphemeCounter) Clip(s string, max int) int {
	if !utf8.ValidString(s) {
		seen := 0
		for i := range s {
			if seen == max {
				return i
			}
			seen++
		}
		return len(s)
	}
	gr := uniseg.NewGraphemes(s)
	off := 0
	for seen := 0; gr.Next(); seen++ {
		if seen == max {
			return off
		}
		_, off = gr.Positions()
	}
	return off
}

func (graphemeCounter) First(s string) int {
	if s == "" {
		return 0
	}
	if !utf8.ValidString(s) {
		_, size := utf8.DecodeRuneInString(s)
		return size
	}
	gr := uniseg.NewGraphemes(s)
	if !gr.Next() {
		return 0
	}
	_, end := gr.Positions()
	return end
}
