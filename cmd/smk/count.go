package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terrytangyuan/social-media-kit-go/internal/chunk"
	"github.com/terrytangyuan/social-media-kit-go/internal/platform"
)

func newCountCmd() *cobra.Command {
	var text string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Measure text against every configured platform",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, table, err := requireConfig()
			if err != nil {
				return err
			}

			input, err := readSplitText(text, cmd.InOrStdin())
			if err != nil {
				return err
			}
			input = chunk.Normalize(input)

			rows, err := buildCountRows(table, input)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			formatCountTable(rows, cmd.OutOrStdout())

			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to measure (if empty, read from stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON instead of the table")

	return cmd
}

// countRow is one platform's verdict on a text: how it measures in the
// platform's own unit, whether it fits in a single post, and how many thread
// parts it would take.
type countRow struct {
	Platform string     `json:"platform"`
	Mode     chunk.Mode `json:"mode"`
	Limit    int        `json:"limit"`
	Length   int        `json:"length"`
	Fits     bool       `json:"fits"`
	Parts    int        `json:"parts"`
}

func buildCountRows(table platform.Table, text string) ([]countRow, error) {
	rows := make([]countRow, 0, len(table))
	for _, name := range table.Names() {
		lim := table[name]

		length, err := chunk.Length(text, lim.Mode)
		if err != nil {
			return nil, fmt.Errorf("platform %s: %w", name, err)
		}
		chunks, err := chunk.Split(text, lim)
		if err != nil {
			return nil, fmt.Errorf("platform %s: %w", name, err)
		}

		rows = append(rows, countRow{
			Platform: name,
			Mode:     lim.Mode,
			Limit:    lim.Max,
			Length:   length,
			Fits:     length <= lim.Max,
			Parts:    len(chunks),
		})
	}

	return rows, nil
}

// formatCountTable writes a human-readable ASCII table of count rows to w.
func formatCountTable(rows []countRow, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-10s  %-16s  %6s  %8s  %5s  %5s\n", "Platform", "Mode", "Limit", "Length", "Fits", "Parts")
	fmt.Fprintln(sb, strings.Repeat("-", 60))

	for _, r := range rows {
		fits := "no"
		if r.Fits {
			fits = "yes"
		}
		fmt.Fprintf(sb, "%-10s  %-16s  %6d  %8d  %5s  %5d\n", r.Platform, r.Mode, r.Limit, r.Length, fits, r.Parts)
	}

	fmt.Fprint(w, sb.String())
}
