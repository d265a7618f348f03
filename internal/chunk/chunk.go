// Package chunk splits long social-media posts into ordered,
// platform-compliant thread parts. The engine is a pure function over its
// input: callers inject the length policy (a Limit), and the cascade of
// break heuristics does the rest. No platform name is hard-coded here; the
// platform package owns the stock tables.
package chunk

import (
	"errors"
	"fmt"
)

// Mode selects the unit a platform enforces its length limit in.
type Mode string

const (
	// ModeCodeUnits counts UTF-16 code units, the billing unit of the
	// Twitter/X, LinkedIn, and Mastodon APIs. Runes above the basic
	// multilingual plane (most emoji) count as two units.
	ModeCodeUnits Mode = "code-unit"

	// ModeGraphemes counts user-perceived characters, i.e. Unicode
	// extended grapheme clusters, the unit Bluesky enforces. A
	// multi-code-point emoji sequence counts as one.
	ModeGraphemes Mode = "grapheme-cluster"
)

var (
	// ErrUnknownMode is returned when a Limit names a counting mode the
	// engine does not implement.
	ErrUnknownMode = errors.New("unknown counting mode")

	// ErrInvalidLimit is returned for non-positive maximums.
	ErrInvalidLimit = errors.New("invalid segment limit")
)

// Limit is one platform's length policy: the maximum segment size and the
// unit it is measured in. Limits are configuration, not engine state;
// splitting the same text under two limits never interferes.
type Limit struct {
	Max  int  `json:"max" mapstructure:"max"`
	Mode Mode `json:"mode" mapstructure:"mode"`
}

// counter resolves the limit's measuring strategy, validating the limit on
// the way.
func (l Limit) counter() (Counter, error) {
	if l.Max <= 0 {
		return nil, fmt.Errorf("%w: max %d, want > 0", ErrInvalidLimit, l.Max)
	}
	return NewCounter(l.Mode)
}

// Validate reports whether the limit is usable. The engine refuses invalid
// limits instead of guessing a default.
func (l Limit) Validate() error {
	_, err := l.counter()
	return err
}

// Chunk is one platform-compliant piece of a longer post. Chunks are
// emitted in reading order: chunk i becomes thread part i. Truncated marks
// the forced-truncation fallback where no safe break existed; renderers may
// flag such parts to the author.
type Chunk struct {
	Text      string `json:"text"`
	Truncated bool   `json:"truncated,omitempty"`
}
