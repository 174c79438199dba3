package config

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected default addr %s", cfg.Addr())
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too low", func(c *Config) { c.Port = 0 }},
		{"port too high", func(c *Config) { c.Port = 70000 }},
		{"empty games dir", func(c *Config) { c.GamesDir = "" }},
		{"zero session timeout", func(c *Config) { c.SessionTimeout = 0 }},
		{"negative sweep interval", func(c *Config) { c.SweepInterval = -time.Minute }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestBindFlagsOverrides(t *testing.T) {
	cfg := Default()
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	BindFlags(cmd, &cfg)

	cmd.SetArgs([]string{"--port", "9000", "--games-dir", "/tmp/games", "-v"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.GamesDir != "/tmp/games" {
		t.Fatalf("expected games dir override, got %s", cfg.GamesDir)
	}
	if !cfg.Verbose {
		t.Fatal("expected verbose on")
	}
}

func TestBindFlagsEnvFallback(t *testing.T) {
	t.Setenv("HOTSEAT_PORT", "9100")
	t.Setenv("HOTSEAT_SESSION_TIMEOUT", "30m")

	cfg := Default()
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	BindFlags(cmd, &cfg)

	if cfg.Port != 9100 {
		t.Fatalf("expected env port 9100, got %d", cfg.Port)
	}
	if cfg.SessionTimeout != 30*time.Minute {
		t.Fatalf("expected env session timeout, got %s", cfg.SessionTimeout)
	}
}
