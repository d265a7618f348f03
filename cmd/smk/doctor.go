package main

import (
	"errors"
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"github.com/terrytangyuan/social-media-kit-go/internal/doctor"
	"github.com/terrytangyuan/social-media-kit-go/internal/server"
)

func newDoctorCmd() *cobra.Command {
	var sampleText string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run configuration and engine self-checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, table, err := requireConfig()
			if err != nil {
				return err
			}

			result := doctor.Run(doctor.Config{
				Table:      table,
				SampleText: sampleText,
				ConfigFile: cfgFile,
			}, cmd.OutOrStdout())

			// Listen address as an additional check: serve has to bind it
			// later. A healthy server already answering there holds the port
			// for a good reason, so that case skips instead of failing.
			addr := cfg.Server.ListenAddr
			if ln, bindErr := net.Listen("tcp", addr); bindErr == nil {
				_ = ln.Close()
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s listen addr %s: ok\n", doctor.PassMark, addr)
			} else if server.ProbeHTTP(addr) == nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s listen addr %s: skipped (already serving)\n", doctor.PassMark, addr)
			} else {
				result.AddFailure(fmt.Sprintf("listen addr %s: %v", addr, bindErr))
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s listen addr %s: %v\n", doctor.FailMark, addr, bindErr)
			}

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "doctor checks passed")

			return nil
		},
	}

	cmd.Flags().StringVar(&sampleText, "sample-text", "", "Override the built-in self-test sample text")

	return cmd
}
