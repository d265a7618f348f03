// Package platform holds the length policies for the posting targets the
// kit knows about. Limits are policy, not algorithm: the engine consumes
// whatever table it is handed, and deployments override or extend the
// stock table through configuration.
package platform

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/terrytangyuan/social-media-kit-go/internal/chunk"
)

// Stock platform names.
const (
	Twitter  = "twitter"
	LinkedIn = "linkedin"
	Mastodon = "mastodon"
	Bluesky  = "bluesky"
)

// ErrUnknownPlatform is returned when a lookup names a platform the table
// does not carry.
var ErrUnknownPlatform = errors.New("unknown platform")

// Table maps platform names to their length policy. Keys are lower-case.
type Table map[string]chunk.Limit

// Default returns the stock table. Twitter, LinkedIn, and Mastodon bill
// UTF-16 code units; Bluesky bills grapheme clusters.
func Default() Table {
	return Table{
		Twitter:  {Max: 280, Mode: chunk.ModeCodeUnits},
		LinkedIn: {Max: 3000, Mode: chunk.ModeCodeUnits},
		Mastodon: {Max: 500, Mode: chunk.ModeCodeUnits},
		Bluesky:  {Max: 300, Mode: chunk.ModeGraphemes},
	}
}

// Lookup returns the limit for name, case-insensitively. An unknown name
// is a caller error: applying a guessed limit would post broken threads,
// so the table refuses instead.
func (t Table) Lookup(name string) (chunk.Limit, error) {
	lim, ok := t[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return chunk.Limit{}, fmt.Errorf("%w %q (have %s)", ErrUnknownPlatform, name, strings.Join(t.Names(), ", "))
	}
	return lim, nil
}

// Names returns the platform names in the table, sorted.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns a copy of the table with overrides merged in. An override
// may touch a single field: an omitted max keeps the current limit and an
// omitted mode keeps the current counting mode (code-unit for brand-new
// platforms). Every resulting entry is validated so a bad override fails
// at load time, not mid-split.
func (t Table) Apply(overrides map[string]chunk.Limit) (Table, error) {
	merged := make(Table, len(t)+len(overrides))
	for name, lim := range t {
		merged[name] = lim
	}
	for name, ov := range overrides {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return nil, errors.New("platform override with empty name")
		}
		lim, ok := merged[key]
		if !ok {
			lim = chunk.Limit{Mode: chunk.ModeCodeUnits}
		}
		if ov.Max != 0 {
			lim.Max = ov.Max
		}
		if ov.Mode != "" {
			mode, err := NormalizeMode(string(ov.Mode))
			if err != nil {
				return nil, fmt.Errorf("platform %q: %w", key, err)
			}
			lim.Mode = mode
		}
		if err := lim.Validate(); err != nil {
			return nil, fmt.Errorf("platform %q: %w", key, err)
		}
		merged[key] = lim
	}
	return merged, nil
}

// NormalizeMode maps the spellings accepted in configuration onto the
// engine's canonical counting modes. Empty input selects code-unit
// counting, the mode most platforms use.
func NormalizeMode(raw string) (chunk.Mode, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "", string(chunk.ModeCodeUnits), "code-units", "codeunit", "utf16", "utf-16":
		return chunk.ModeCodeUnits, nil
	case string(chunk.ModeGraphemes), "grapheme", "graphemes", "grapheme-clusters":
		return chunk.ModeGraphemes, nil
	default:
		return "", fmt.Errorf(
			"invalid counting mode %q (expected %s|%s)",
			raw,
			chunk.ModeCodeUnits,
			chunk.ModeGraphemes,
		)
	}
}
