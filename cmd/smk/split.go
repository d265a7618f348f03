package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terrytangyuan/social-media-kit-go/internal/chunk"
)

func newSplitCmd() *cobra.Command {
	var text string
	var asJSON bool
	var raw bool

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split text into thread parts for one platform",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, table, err := requireConfig()
			if err != nil {
				return err
			}

			lim, err := table.Lookup(cfg.Split.Platform)
			if err != nil {
				return err
			}

			input, err := readSplitText(text, cmd.InOrStdin())
			if err != nil {
				return err
			}
			input = chunk.Normalize(input)

			var chunks []chunk.Chunk
			if raw || !cfg.Split.Merge {
				chunks, err = chunk.Segment(input, lim)
			} else {
				chunks, err = chunk.Split(input, lim)
			}
			if err != nil {
				return err
			}

			out, err := buildSplitOutput(cfg.Split.Platform, lim, input, chunks)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			return writeSplitText(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to split (if empty, read from stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON instead of the human rendering")
	cmd.Flags().BoolVar(&raw, "raw", false, "Skip the merge pass and print the raw cascade output")

	return cmd
}

// splitOutput mirrors the /split response of the HTTP service so scripts can
// consume either surface with the same decoder.
type splitOutput struct {
	Platform string          `json:"platform"`
	Limit    int             `json:"limit"`
	Mode     chunk.Mode      `json:"mode"`
	Length   int             `json:"length"`
	Segments []segmentOutput `json:"segments"`
}

type segmentOutput struct {
	Text      string `json:"text"`
	Length    int    `json:"length"`
	Truncated bool   `json:"truncated,omitempty"`
}

func buildSplitOutput(name string, lim chunk.Limit, text string, chunks []chunk.Chunk) (splitOutput, error) {
	out := splitOutput{
		Platform: name,
		Limit:    lim.Max,
		Mode:     lim.Mode,
		Segments: make([]segmentOutput, len(chunks)),
	}

	var err error
	if out.Length, err = chunk.Length(text, lim.Mode); err != nil {
		return splitOutput{}, err
	}

	for i, c := range chunks {
		n, err := chunk.Length(c.Text, lim.Mode)
		if err != nil {
			return splitOutput{}, err
		}
		out.Segments[i] = segmentOutput{Text: c.Text, Length: n, Truncated: c.Truncated}
	}

	return out, nil
}

// writeSplitText renders parts for a human reviewer. A post that needs no
// splitting prints bare; anything else gets a part header with the measured
// size. Truncated parts carry a display-only ellipsis; the stored text never
// does, so the JSON surface stays lossless.
func writeSplitText(w io.Writer, out splitOutput) error {
	sb := &strings.Builder{}

	if len(out.Segments) == 1 && !out.Segments[0].Truncated {
		fmt.Fprintln(sb, out.Segments[0].Text)
	} else {
		for i, seg := range out.Segments {
			if i > 0 {
				fmt.Fprintln(sb)
			}
			fmt.Fprintf(sb, "[%d/%d %d/%d]\n", i+1, len(out.Segments), seg.Length, out.Limit)
			if seg.Truncated {
				fmt.Fprintln(sb, seg.Text+"…")
				continue
			}
			fmt.Fprintln(sb, seg.Text)
		}
	}

	_, err := fmt.Fprint(w, sb.String())

	return err
}

func readSplitText(text string, stdin io.Reader) (string, error) {
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	input := strings.TrimSpace(string(b))
	if input == "" {
		return "", fmt.Errorf("either provide --text or pipe text on stdin")
	}

	return input, nil
}
