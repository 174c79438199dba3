package registry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hotseat-games/hotseat/internal/game"
)

const validGame = `
id: capitals
title: Capital Cities
subtitle: Around the world
emoji: "🌍"
campaigns:
  - id: europe
    name: Europe
    questions:
      easy:
        - question: Capital of France?
          answers: [Paris, Lyon, Nice, Lille]
          correct: 0
      medium:
        - question: Capital of Slovakia?
          answers: [Prague, Bratislava, Vienna, Budapest]
          correct: 1
      hard:
        - question: Capital of Kazakhstan?
          answers: [Almaty, Tashkent, Astana, Bishkek]
          correct: 2
companions:
  - name: Ada
prizes:
  maxPrize: 1000000
  guaranteedFractions: [0.33, 0.66, 1]
lifelines:
  fifty:
    enabled: true
  phone:
    enabled: true
  double:
    enabled: true
`

func writeGame(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestReloadLoadsValidGames(t *testing.T) {
	dir := t.TempDir()
	writeGame(t, dir, "capitals.yaml", validGame)

	r := New(dir)
	n, err := r.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 game, got %d", n)
	}

	cfg, err := r.Get("capitals")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.Title != "Capital Cities" {
		t.Fatalf("unexpected title %q", cfg.Title)
	}
	if len(cfg.Campaigns) != 1 || cfg.Campaigns[0].ID != "europe" {
		t.Fatalf("unexpected campaigns %+v", cfg.Campaigns)
	}
	if got := len(cfg.Campaigns[0].Questions.Easy); got != 1 {
		t.Fatalf("expected 1 easy question, got %d", got)
	}
	if !cfg.Lifelines.Fifty.Enabled {
		t.Fatal("expected fifty lifeline enabled")
	}
	if !cfg.Lifelines.Double.RevealsStrike() {
		t.Fatal("omitted revealStrike must default to revealing the strike")
	}
}

func TestReloadSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeGame(t, dir, "capitals.yaml", validGame)
	writeGame(t, dir, "broken.yaml", "title: [unclosed")
	writeGame(t, dir, "invalid.yaml", "id: bad\ntitle: Bad\ncampaigns: []\nprizes:\n  maxPrize: 100\n")
	writeGame(t, dir, "notes.txt", "not a game")

	r := New(dir)
	n, err := r.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected only the valid game, got %d", n)
	}
	if _, err := r.Get("bad"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("invalid game must not register, got %v", err)
	}
}

func TestReloadMissingDir(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "nope"))
	if _, err := r.Reload(); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestGetUnknown(t *testing.T) {
	r := New(t.TempDir())
	if _, err := r.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if _, err := r.Get("capitals"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestListSorted(t *testing.T) {
	dir := t.TempDir()
	writeGame(t, dir, "capitals.yaml", validGame)

	writeGame(t, dir, "animals.yaml", strings.Replace(validGame, "id: capitals", "id: animals", 1))

	r := New(dir)
	if _, err := r.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	games := r.List()
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if games[0].ID != "animals" || games[1].ID != "capitals" {
		t.Fatalf("expected sorted ids, got %s, %s", games[0].ID, games[1].ID)
	}
}

func TestValidateRules(t *testing.T) {
	base := func() *game.GameConfig {
		return &game.GameConfig{
			ID:    "g",
			Title: "G",
			Campaigns: []game.Campaign{{
				ID:   "c",
				Name: "C",
				Questions: game.QuestionPool{
					Easy: []game.Question{{
						Text:    "q",
						Answers: []string{"a", "b", "c", "d"},
						Correct: 0,
					}},
				},
			}},
			Prizes: game.PrizesConfig{MaxPrize: 1000, GuaranteedFractions: []float64{1}},
		}
	}

	if err := Validate(base()); err != nil {
		t.Fatalf("baseline config must validate: %v", err)
	}

	cfg := base()
	cfg.Campaigns[0].Questions.Easy[0].Answers = []string{"a", "b", "c"}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for 3 answers")
	}

	cfg = base()
	cfg.Campaigns[0].Questions.Easy[0].Correct = 4
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for out-of-range correct index")
	}

	cfg = base()
	cfg.Prizes.MaxPrize = 0
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for zero max prize")
	}

	cfg = base()
	cfg.Campaigns[0].Questions.Hard = []game.Question{{
		Text:    "q2",
		Answers: []string{"a", "b", "c", "d"},
		Correct: 1,
	}}
	cfg.Prizes.MaxPrize = 100
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for a top prize too small to keep the ladder increasing")
	}

	cfg = base()
	cfg.Prizes.GuaranteedFractions = []float64{1.5}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for fraction > 1")
	}

	cfg = base()
	cfg.Lifelines.Phone.Enabled = true
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for phone lifeline without companions")
	}

	cfg = base()
	cfg.Campaigns = append(cfg.Campaigns, cfg.Campaigns[0])
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for duplicate campaign id")
	}
}
