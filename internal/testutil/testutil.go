// Package testutil provides shared fixtures and invariant assertions for
// segmentation tests.
//
// The assertion helpers check the properties every split must keep: no part
// over the limit, no content lost, no list marker stranded at the end of a
// part. Tests that exercise the engine through an outer surface (HTTP, CLI,
// preflight) use them instead of restating the checks.
//
// Typical usage:
//
//	func TestMySurface(t *testing.T) {
//	    chunks, err := chunk.Split(testutil.LongPost(), lim)
//	    ...
//	    testutil.AssertWithinLimit(t, chunks, lim)
//	    testutil.AssertLossless(t, testutil.LongPost(), chunks)
//	    testutil.AssertNoOrphanMarkers(t, chunks)
//	}
package testutil

import "strings"

// LongPost returns a deterministic mixed-structure post: opening prose, a
// numbered list, a bulleted list, and closing paragraphs. Every word is
// short, so the post splits without truncation at any limit of 60 units or
// more, and it is long enough to need splitting at every stock platform
// limit except LinkedIn's.
func LongPost() string {
	return strings.Join([]string{
		"We are shipping the new release today. It has been a long road and the team is proud of the result.",
		"",
		"1. Faster cold starts across every region.",
		"2. Smaller memory footprint under sustained load.",
		"3. Clearer error messages when configuration is invalid.",
		"",
		"Highlights from the beta period:",
		"",
		"- Hundreds of installs in the first week.",
		"- Dozens of bug reports, all triaged.",
		"- One very persistent tester who found the worst of them.",
		"",
		"Thanks to everyone who filed issues and sent patches. The next milestone focuses on the plugin interface and a stable configuration format.",
	}, "\n")
}
