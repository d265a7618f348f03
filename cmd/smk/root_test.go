package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/terrytangyuan/social-media-kit-go/internal/config"
	"github.com/terrytangyuan/social-media-kit-go/internal/platform"
)

// executeCmd runs the root command with args, feeding stdin from the given
// string, and returns captured stdout, stderr, and the Execute error.
func executeCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCmd()
	root.SilenceUsage = true
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.Execute()

	return out.String(), errOut.String(), err
}

// --- NewRootCmd ---

func TestNewRootCmd_Use(t *testing.T) {
	cmd := NewRootCmd()
	if cmd.Use != "smk" {
		t.Errorf("Use = %q; want %q", cmd.Use, "smk")
	}
}

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"split", "count", "platforms", "serve", "health", "doctor"}
	for _, name := range want {
		found := false

		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}

		if !found {
			t.Errorf("expected subcommand %q not found in root", name)
		}
	}
}

func TestNewRootCmd_HasPersistentConfigFlag(t *testing.T) {
	root := NewRootCmd()

	f := root.PersistentFlags().Lookup("config")
	if f == nil {
		t.Fatal("--config flag not registered")
	}

	if f.DefValue != "" {
		t.Errorf("--config default = %q; want empty string", f.DefValue)
	}
}

func TestNewRootCmd_PersistentFlagsIncludePlatform(t *testing.T) {
	cmd := NewRootCmd()

	knownFlags := []string{"log-level", "split-platform", "platform", "split-merge", "server-listen-addr"}
	for _, name := range knownFlags {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q not registered", name)
		}
	}
}

func TestSetupLogger_DoesNotPanic(_ *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		setupLogger(level)
	}
}

func TestSetupLogger_InvalidLevelFallsBackToInfo(_ *testing.T) {
	// Should not panic on invalid level.
	setupLogger("not-a-level")
}

// --- requireConfig ---

func TestRequireConfig_FailsWhenNotInitialized(t *testing.T) {
	origCfg, origTable := activeCfg, activeTable

	t.Cleanup(func() { activeCfg, activeTable = origCfg, origTable })

	activeCfg = config.Config{}
	activeTable = nil

	_, _, err := requireConfig()
	if err == nil {
		t.Fatal("expected error when config is not loaded")
	}

	if !strings.Contains(err.Error(), "not loaded") {
		t.Errorf("error %q does not mention 'not loaded'", err.Error())
	}
}

func TestRequireConfig_SucceedsWhenLoaded(t *testing.T) {
	origCfg, origTable := activeCfg, activeTable

	t.Cleanup(func() { activeCfg, activeTable = origCfg, origTable })

	activeCfg = config.DefaultConfig()
	activeTable = platform.Default()

	cfg, table, err := requireConfig()
	if err != nil {
		t.Fatalf("requireConfig returned unexpected error: %v", err)
	}

	if cfg.Split.Platform != "twitter" {
		t.Errorf("Split.Platform = %q; want %q", cfg.Split.Platform, "twitter")
	}

	if _, err := table.Lookup("bluesky"); err != nil {
		t.Errorf("Lookup(bluesky) on loaded table: %v", err)
	}
}
