// Package registry loads and indexes the installed game configurations.
// Each game ships as one YAML file; files that fail to parse or validate
// are skipped with a warning so one broken game never takes down the rest.
package registry

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/hotseat-games/hotseat/internal/game"
)

var ErrGameNotFound = errors.New("game not found")

// Registry holds the loaded game configs keyed by game id. Reload swaps the
// whole map; readers always see a consistent set.
type Registry struct {
	baseDir string

	mu    sync.RWMutex
	games map[string]*game.GameConfig
}

// New creates a registry over the given directory. Call Reload to populate it.
func New(baseDir string) *Registry {
	return &Registry{
		baseDir: baseDir,
		games:   make(map[string]*game.GameConfig),
	}
}

// Reload re-reads every game file under the base directory. Unreadable or
// invalid files are skipped; the returned count is the number of games loaded.
func (r *Registry) Reload() (int, error) {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return 0, err
	}

	loaded := make(map[string]*game.GameConfig)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		path := filepath.Join(r.baseDir, name)
		cfg, err := readGameFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("skipping game config")
			continue
		}
		if prev := loaded[cfg.ID]; prev != nil {
			log.Warn().Str("file", name).Str("game", cfg.ID).Msg("duplicate game id, keeping first")
			continue
		}
		loaded[cfg.ID] = cfg
		log.Debug().Str("game", cfg.ID).Int("campaigns", len(cfg.Campaigns)).Msg("loaded game config")
	}

	r.mu.Lock()
	r.games = loaded
	r.mu.Unlock()
	return len(loaded), nil
}

// Get looks up a game config by id.
func (r *Registry) Get(id string) (*game.GameConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg := r.games[id]
	if cfg == nil {
		return nil, ErrGameNotFound
	}
	return cfg, nil
}

// List returns all loaded games sorted by id.
func (r *Registry) List() []*game.GameConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*game.GameConfig, 0, len(r.games))
	for _, cfg := range r.games {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of loaded games.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

func readGameFile(path string) (*game.GameConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg game.GameConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	if cfg.ID == "" {
		cfg.ID = strings.TrimSuffix(filepath.Base(path), ".yaml")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
