package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hotseat-games/hotseat/internal/assets"
	"github.com/hotseat-games/hotseat/internal/config"
	"github.com/hotseat-games/hotseat/internal/game"
	"github.com/hotseat-games/hotseat/internal/loading"
	"github.com/hotseat-games/hotseat/internal/registry"
	"github.com/hotseat-games/hotseat/internal/ws"
	staticserver "github.com/hotseat-games/hotseat/static"
)

const version = "v1.0.0-dev"

func main() {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:     "hotseat",
		Short:   "A themable hot-seat quiz game server.",
		Args:    cobra.ExactArgs(0),
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	config.BindFlags(cmd, &cfg)
	cmd.SetVersionTemplate("hotseat {{.Version}}\n")
	cmd.SilenceUsage = true

	if err := cmd.Execute(); err != nil {
		zerologlog.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	// Startup is tracked through the loading orchestrator; /readyz exposes
	// its aggregate so the frontend loading screen mirrors real progress.
	orch := loading.New()
	orch.StartPhase(loading.PhaseBoot)
	time.AfterFunc(loading.BootSettleDelay, func() {
		orch.CompletePhase(loading.PhaseBoot)
	})

	orch.CompletePhase(loading.PhaseApp)

	reg := registry.New(cfg.GamesDir)
	orch.SetPhaseEnabled(loading.PhaseEngine, true)
	if err := orch.TrackPhase(ctx, loading.PhaseEngine, func(context.Context) error {
		n, err := reg.Reload()
		if err != nil {
			return err
		}
		zerologlog.Info().Int("games", n).Str("dir", cfg.GamesDir).Msg("games loaded")
		return nil
	}); err != nil {
		return err
	}

	var manifest *assets.Manifest
	orch.SetPhaseEnabled(loading.PhaseAssets, true)
	if err := orch.TrackPhase(ctx, loading.PhaseAssets, func(context.Context) error {
		m, err := assets.Load(cfg.ManifestPath)
		if err != nil {
			return err
		}
		manifest = m
		return nil
	}); err != nil {
		// a missing manifest degrades to emoji fallbacks only
		zerologlog.Warn().Err(err).Str("path", cfg.ManifestPath).Msg("asset manifest unavailable")
	}

	// Healthcheck + readiness
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})
	r.GET("/readyz", func(c *gin.Context) {
		status := http.StatusOK
		if orch.Active() {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"active":   orch.Active(),
			"progress": orch.Percent(),
		})
	})

	// Socket server + session manager
	manager := game.NewManager()
	sock := ws.New(manager, reg, manifest)
	io := sock.Mount(r)
	defer io.Close()

	// Abandoned sessions are swept periodically.
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := manager.Sweep(cfg.SessionTimeout); removed > 0 {
					zerologlog.Info().Int("removed", removed).Msg("swept abandoned sessions")
				}
			}
		}
	}()

	// Minimal REST mirror of the selector data, for clients without sockets.
	r.GET("/api/games", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"games": reg.List()})
	})
	r.GET("/api/manifest", func(c *gin.Context) {
		if manifest == nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, manifest)
	})

	// Serve frontend (if embedded build is present) for all other routes
	r.NoRoute(func(c *gin.Context) {
		staticserver.Handler().ServeHTTP(c.Writer, c.Request)
	})

	zerologlog.Info().Str("addr", cfg.Addr()).Msg("listening")
	return r.Run(cfg.Addr())
}
