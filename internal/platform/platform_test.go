package platform

import (
	"errors"
	"reflect"
	"testing"

	"github.com/terrytangyuan/social-media-kit-go/internal/chunk"
)

func TestDefaultTable(t *testing.T) {
	table := Default()

	tests := []struct {
		name string
		want chunk.Limit
	}{
		{name: Twitter, want: chunk.Limit{Max: 280, Mode: chunk.ModeCodeUnits}},
		{name: LinkedIn, want: chunk.Limit{Max: 3000, Mode: chunk.ModeCodeUnits}},
		{name: Mastodon, want: chunk.Limit{Max: 500, Mode: chunk.ModeCodeUnits}},
		{name: Bluesky, want: chunk.Limit{Max: 300, Mode: chunk.ModeGraphemes}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup(%q) returned error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("stock limit for %q does not validate: %v", tt.name, err)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	table := Default()

	if _, err := table.Lookup("friendster"); !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("unknown platform: got %v, want ErrUnknownPlatform", err)
	}
	if _, err := table.Lookup(""); !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("empty platform: got %v, want ErrUnknownPlatform", err)
	}

	got, err := table.Lookup("  TWITTER  ")
	if err != nil {
		t.Fatalf("case-insensitive lookup failed: %v", err)
	}
	if got.Max != 280 {
		t.Errorf("Lookup normalized name to wrong entry: %+v", got)
	}
}

func TestNames(t *testing.T) {
	got := Default().Names()
	want := []string{Bluesky, LinkedIn, Mastodon, Twitter}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]chunk.Limit
		check     string
		want      chunk.Limit
		wantErr   bool
	}{
		{
			name:      "raise an existing limit keeping its mode",
			overrides: map[string]chunk.Limit{"twitter": {Max: 25000}},
			check:     "twitter",
			want:      chunk.Limit{Max: 25000, Mode: chunk.ModeCodeUnits},
		},
		{
			name:      "switch mode keeping the limit",
			overrides: map[string]chunk.Limit{"mastodon": {Mode: "graphemes"}},
			check:     "mastodon",
			want:      chunk.Limit{Max: 500, Mode: chunk.ModeGraphemes},
		},
		{
			name:      "new platform defaults to code units",
			overrides: map[string]chunk.Limit{"threads": {Max: 500}},
			check:     "threads",
			want:      chunk.Limit{Max: 500, Mode: chunk.ModeCodeUnits},
		},
		{
			name:      "mixed-case override name is normalized",
			overrides: map[string]chunk.Limit{"Twitter": {Max: 4000}},
			check:     "twitter",
			want:      chunk.Limit{Max: 4000, Mode: chunk.ModeCodeUnits},
		},
		{
			name:      "invalid mode is rejected",
			overrides: map[string]chunk.Limit{"twitter": {Mode: "bytes"}},
			wantErr:   true,
		},
		{
			name:      "negative max is rejected",
			overrides: map[string]chunk.Limit{"twitter": {Max: -1}},
			wantErr:   true,
		},
		{
			name:      "new platform without max is rejected",
			overrides: map[string]chunk.Limit{"threads": {Mode: "graphemes"}},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Default().Apply(tt.overrides)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got table %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply returned error: %v", err)
			}

			lim, err := got.Lookup(tt.check)
			if err != nil {
				t.Fatalf("Lookup(%q) after Apply: %v", tt.check, err)
			}
			if lim != tt.want {
				t.Errorf("Lookup(%q) = %+v, want %+v", tt.check, lim, tt.want)
			}
		})
	}
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	base := Default()
	if _, err := base.Apply(map[string]chunk.Limit{"twitter": {Max: 9999}}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	lim, err := base.Lookup("twitter")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if lim.Max != 280 {
		t.Errorf("Apply mutated the receiver table: %+v", lim)
	}
}

func TestNormalizeMode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    chunk.Mode
		wantErr bool
	}{
		{name: "canonical code-unit", raw: "code-unit", want: chunk.ModeCodeUnits},
		{name: "canonical grapheme", raw: "grapheme-cluster", want: chunk.ModeGraphemes},
		{name: "empty defaults to code units", raw: "", want: chunk.ModeCodeUnits},
		{name: "utf16 alias", raw: "UTF-16", want: chunk.ModeCodeUnits},
		{name: "graphemes alias", raw: "Graphemes", want: chunk.ModeGraphemes},
		{name: "whitespace trimmed", raw: "  grapheme  ", want: chunk.ModeGraphemes},
		{name: "unknown is rejected", raw: "bytes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeMode(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeMode(%q) returned error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeMode(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
