package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/terrytangyuan/social-media-kit-go/internal/config"
	"github.com/terrytangyuan/social-media-kit-go/internal/platform"
	"github.com/terrytangyuan/social-media-kit-go/internal/server"
)

var (
	cfgFile     string
	activeCfg   config.Config
	activeTable platform.Table
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "smk",
		Short: "Split long posts into platform-sized thread parts",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			table, err := loaded.Table()
			if err != nil {
				return err
			}

			activeCfg = loaded
			activeTable = table
			setupLogger(loaded.LogLevel)

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newSplitCmd())
	cmd.AddCommand(newCountCmd())
	cmd.AddCommand(newPlatformsCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newHealthCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := server.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, platform.Table, error) {
	if len(activeTable) == 0 {
		return config.Config{}, nil, errors.New("configuration not loaded")
	}

	return activeCfg, activeTable, nil
}
