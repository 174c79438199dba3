package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleManifest = `{
  "version": "1.0.0",
  "engine": {
    "icons": ["/icons/logo.svg"],
    "images": ["/images/backdrop.webp"],
    "sounds": ["/sounds/click.ogg"]
  },
  "games": {
    "capitals": {
      "cardAssets": {
        "gameCard": "/games/capitals/icons/game-card.png",
        "favicon": "/games/capitals/icons/favicon.png"
      },
      "level1": {
        "icons": ["/games/capitals/icons/favicon.png"],
        "sounds": ["/games/capitals/sounds/correct.ogg"],
        "mainMenuMusic": "/games/capitals/music/MainMenu.ogg",
        "startImages": ["/games/capitals/images/start/bg.webp"],
        "campaignStartImages": {
          "europe": ["/games/capitals/images/campaigns/Europe/start/hero.webp"]
        }
      },
      "level2": {
        "gameOverMusic": "/games/capitals/music/GameOver.ogg",
        "victoryMusic": "/games/capitals/music/Victory.ogg",
        "tookMoneyMusic": null,
        "endImages": {
          "won": ["/games/capitals/images/end/won/1.webp"],
          "lost": [],
          "took": []
        }
      },
      "voices": [
        "/games/capitals/voices/ada/hello.ogg",
        "/games/capitals/voices/linus/hello.ogg"
      ],
      "campaigns": {
        "Europe": {
          "level1_1": {
            "music": "/games/capitals/music/Europe.ogg",
            "playImages": {"easy": ["/games/capitals/images/campaigns/Europe/play/easy/1.webp"]}
          },
          "level2": {
            "playImages": {
              "medium": ["/games/capitals/images/campaigns/Europe/play/medium/1.webp"],
              "hard": []
            },
            "endImages": {"won": [], "lost": [], "took": []}
          }
        }
      }
    },
    "bare": {
      "cardAssets": {"gameCard": null, "favicon": "/games/bare/icons/favicon.svg"},
      "level1": {"icons": [], "sounds": [], "mainMenuMusic": null, "startImages": [], "campaignStartImages": {}},
      "level2": {"gameOverMusic": null, "victoryMusic": null, "tookMoneyMusic": null, "endImages": {"won": [], "lost": [], "took": []}},
      "voices": [],
      "campaigns": {}
    }
  }
}`

func loadSample(t *testing.T) *Manifest {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asset-manifest.json")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error for a missing manifest")
	}
}

func TestLevel0IncludesEngineAndCards(t *testing.T) {
	m := loadSample(t)
	urls, err := m.ForLevel(Level0, "", "")
	if err != nil {
		t.Fatalf("ForLevel: %v", err)
	}

	for _, want := range []string{
		"/icons/logo.svg",
		"/images/backdrop.webp",
		"/sounds/click.ogg",
		"/games/capitals/icons/game-card.png",
		"/games/bare/icons/favicon.svg", // no card art, falls back to favicon
	} {
		if !contains(urls, want) {
			t.Fatalf("level0 missing %s in %v", want, urls)
		}
	}
	if contains(urls, "/games/capitals/icons/favicon.png") {
		t.Fatal("favicon must not load when card art exists")
	}
}

func TestLevel1CollectsStartAssets(t *testing.T) {
	m := loadSample(t)
	urls, err := m.ForLevel(Level1, "capitals", "")
	if err != nil {
		t.Fatalf("ForLevel: %v", err)
	}

	for _, want := range []string{
		"/games/capitals/music/MainMenu.ogg",
		"/games/capitals/images/start/bg.webp",
		"/games/capitals/images/campaigns/Europe/start/hero.webp",
		"/games/capitals/sounds/correct.ogg",
	} {
		if !contains(urls, want) {
			t.Fatalf("level1 missing %s", want)
		}
	}
}

func TestLevel1UnknownGame(t *testing.T) {
	m := loadSample(t)
	urls, err := m.ForLevel(Level1, "nope", "")
	if err != nil {
		t.Fatalf("ForLevel: %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("expected no assets for unknown game, got %v", urls)
	}
}

func TestLevel11CaseInsensitiveCampaign(t *testing.T) {
	m := loadSample(t)
	// config uses "europe", manifest key is "Europe"
	urls, err := m.ForLevel(Level11, "capitals", "europe")
	if err != nil {
		t.Fatalf("ForLevel: %v", err)
	}

	if !contains(urls, "/games/capitals/music/Europe.ogg") {
		t.Fatalf("level1_1 missing campaign music: %v", urls)
	}
	if !contains(urls, "/games/capitals/voices/ada/hello.ogg") {
		t.Fatal("level1_1 must include voice lines")
	}
}

func TestLevel2MergesGameAndCampaign(t *testing.T) {
	m := loadSample(t)
	urls, err := m.ForLevel(Level2, "capitals", "Europe")
	if err != nil {
		t.Fatalf("ForLevel: %v", err)
	}

	for _, want := range []string{
		"/games/capitals/music/GameOver.ogg",
		"/games/capitals/music/Victory.ogg",
		"/games/capitals/images/end/won/1.webp",
		"/games/capitals/images/campaigns/Europe/play/medium/1.webp",
	} {
		if !contains(urls, want) {
			t.Fatalf("level2 missing %s", want)
		}
	}
	if contains(urls, "") {
		t.Fatal("null music slots must not produce empty entries")
	}
}

func TestUnknownLevel(t *testing.T) {
	m := loadSample(t)
	if _, err := m.ForLevel("level9", "", ""); !errors.Is(err, ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
}

func TestEmojiDataURI(t *testing.T) {
	uri := EmojiDataURI("🌍")
	if !strings.HasPrefix(uri, "data:image/svg+xml,") {
		t.Fatalf("unexpected prefix: %s", uri)
	}
	if strings.ContainsAny(uri, "<> ") {
		t.Fatalf("data URI must be percent-encoded: %s", uri)
	}
	if EmojiDataURI("") != EmojiDataURI(DefaultEngineEmoji) {
		t.Fatal("empty emoji must fall back to the engine default")
	}
}

func TestCardImageSources(t *testing.T) {
	sources := CardImageSources("capitals", "🌍")
	if sources[0] != "/games/capitals/icons/game-card.webp" {
		t.Fatalf("card art must come first, got %s", sources[0])
	}
	last := sources[len(sources)-1]
	if !strings.HasPrefix(last, "data:image/svg+xml,") {
		t.Fatalf("cascade must end in the emoji data URI, got %s", last)
	}
	if !contains(sources, "/games/capitals/favicon/favicon-96x96.png") {
		t.Fatalf("missing favicon dir candidate: %v", sources)
	}
	if !contains(sources, "/games/capitals/icons/favicon.png") {
		t.Fatalf("missing icons dir candidate: %v", sources)
	}
}

func TestVoicesFor(t *testing.T) {
	m := loadSample(t)
	g := m.Games["capitals"]

	ada := VoicesFor(&g, "Ada")
	if len(ada) != 1 || ada[0] != "/games/capitals/voices/ada/hello.ogg" {
		t.Fatalf("unexpected voice set %v", ada)
	}
	all := VoicesFor(&g, "")
	if len(all) != 2 {
		t.Fatalf("expected all voices, got %v", all)
	}
}
