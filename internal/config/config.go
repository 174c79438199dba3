// Package config holds the server configuration, populated from flags with
// HOTSEAT_* environment variables as fallback.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Bind           string
	Port           int
	GamesDir       string
	ManifestPath   string
	SessionTimeout time.Duration
	SweepInterval  time.Duration
	Verbose        bool
}

// Default returns the configuration used when no flag or env override is set.
func Default() Config {
	return Config{
		Bind:           "0.0.0.0",
		Port:           8080,
		GamesDir:       "configs/games",
		ManifestPath:   "static/dist/asset-manifest.json",
		SessionTimeout: 2 * time.Hour,
		SweepInterval:  10 * time.Minute,
	}
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.GamesDir == "" {
		return fmt.Errorf("games directory must not be empty")
	}
	if c.SessionTimeout <= 0 {
		return fmt.Errorf("session timeout must be positive, got %s", c.SessionTimeout)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", c.SweepInterval)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// BindFlags registers the config flags on cmd and wires each one to its
// HOTSEAT_* environment variable. Explicit flags win over env.
func BindFlags(cmd *cobra.Command, cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix("HOTSEAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", cfg.Bind, "address to bind to (env: HOTSEAT_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on (env: HOTSEAT_PORT)")
	fs.StringVar(&cfg.GamesDir, "games-dir", cfg.GamesDir, "directory with game config YAML files (env: HOTSEAT_GAMES_DIR)")
	fs.StringVar(&cfg.ManifestPath, "manifest", cfg.ManifestPath, "path to the asset manifest (env: HOTSEAT_MANIFEST)")
	fs.DurationVar(&cfg.SessionTimeout, "session-timeout", cfg.SessionTimeout, "time before abandoned sessions are dropped (env: HOTSEAT_SESSION_TIMEOUT)")
	fs.DurationVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "how often to sweep for abandoned sessions (env: HOTSEAT_SWEEP_INTERVAL)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging (env: HOTSEAT_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}
