package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terrytangyuan/social-media-kit-go/internal/chunk"
)

func newPlatformsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "platforms",
		Short: "Print the active platform limit table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, table, err := requireConfig()
			if err != nil {
				return err
			}

			if asJSON {
				entries := make([]platformEntry, 0, len(table))
				for _, name := range table.Names() {
					lim := table[name]
					entries = append(entries, platformEntry{Name: name, Max: lim.Max, Mode: lim.Mode})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			sb := &strings.Builder{}
			for _, name := range table.Names() {
				lim := table[name]
				fmt.Fprintf(sb, "%-10s  %6d  %s\n", name, lim.Max, lim.Mode)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())

			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON instead of the table")

	return cmd
}

// platformEntry matches the /platforms payload of the HTTP service.
type platformEntry struct {
	Name string     `json:"name"`
	Max  int        `json:"max"`
	Mode chunk.Mode `json:"mode"`
}
