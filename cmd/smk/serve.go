package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/terrytangyuan/social-media-kit-go/internal/config"
	"github.com/terrytangyuan/social-media-kit-go/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the split HTTP service",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, table, err := requireConfig()
			if err != nil {
				return err
			}

			srv := server.New(cfg, table).
				WithShutdownTimeout(time.Duration(cfg.Server.ShutdownTimeout) * time.Second)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	defaults := config.DefaultConfig()
	config.RegisterFlags(cmd.Flags(), defaults)

	return cmd
}
