package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/terrytangyuan/social-media-kit-go/internal/chunk"
	"github.com/terrytangyuan/social-media-kit-go/internal/platform"
)

type Config struct {
	LogLevel  string                   `mapstructure:"log_level"`
	Server    ServerConfig             `mapstructure:"server"`
	Split     SplitConfig              `mapstructure:"split"`
	Platforms map[string]PlatformLimit `mapstructure:"platforms"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type SplitConfig struct {
	Platform string `mapstructure:"platform"`
	Merge    bool   `mapstructure:"merge"`
}

// PlatformLimit is one entry of the optional platforms section, overlaying
// or extending the stock table. Either field may be omitted; see
// platform.Table.Apply for the merge rules.
type PlatformLimit struct {
	Max  int    `mapstructure:"max"`
	Mode string `mapstructure:"mode"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxTextBytes:    65536,
			ShutdownTimeout: 30,
		},
		Split: SplitConfig{
			Platform: platform.Twitter,
			Merge:    true,
		},
	}
}

// Table resolves the runtime platform table: the stock defaults overlaid
// with the config's platforms section.
func (c Config) Table() (platform.Table, error) {
	if len(c.Platforms) == 0 {
		return platform.Default(), nil
	}
	overrides := make(map[string]chunk.Limit, len(c.Platforms))
	for name, p := range c.Platforms {
		overrides[name] = chunk.Limit{Max: p.Max, Mode: chunk.Mode(p.Mode)}
	}
	return platform.Default().Apply(overrides)
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Largest request body the split endpoint accepts")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain period in seconds")
	fs.String("split-platform", defaults.Split.Platform, "Default target platform")
	fs.String("platform", defaults.Split.Platform, "Default target platform (alias for --split-platform)")
	fs.Bool("split-merge", defaults.Split.Merge, "Merge adjacent parts that fit together")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("SMK")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	// Bound against the flag-name key: alias resolution rewrites
	// "split.platform" lookups to it before env bindings are consulted.
	if err := v.BindEnv("split-platform", "SMK_PLATFORM"); err != nil {
		return Config{}, fmt.Errorf("bind platform env var: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("smk")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	// --platform is shorthand for --split-platform. Viper resolves a single
	// alias per key, so the short flag is applied by hand when set.
	if opts.Cmd != nil {
		if f := opts.Cmd.Flags().Lookup("platform"); f != nil && f.Changed {
			cfg.Split.Platform = f.Value.String()
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("split.platform", c.Split.Platform)
	v.SetDefault("split.merge", c.Split.Merge)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("log_level", "log-level")
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.max_text_bytes", "server-max-text-bytes")
	v.RegisterAlias("server.shutdown_timeout", "server-shutdown-timeout")
	v.RegisterAlias("split.platform", "split-platform")
	v.RegisterAlias("split.merge", "split-merge")
}
