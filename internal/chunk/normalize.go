package chunk

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares raw composer input for measurement: Windows and
// legacy Mac line endings become \n, and the text is converted to Unicode
// NFC, the form the posting APIs count against. The engine itself never
// rewrites its input, so callers apply this once at the boundary.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return norm.NFC.String(s)
}
