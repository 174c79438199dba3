// Package assets models the generated asset manifest and answers "what do I
// preload for this screen" queries against it. Assets load in levels: level 0
// covers the engine and selector cards, level 1 a game's start screen, level
// 1.1 a chosen campaign, level 2 the in-game and end-game material.
package assets

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
)

var ErrUnknownLevel = errors.New("unknown load level")

// LoadLevel names a preload stage.
type LoadLevel string

const (
	Level0  LoadLevel = "level0"
	Level1  LoadLevel = "level1"
	Level11 LoadLevel = "level1_1"
	Level2  LoadLevel = "level2"
)

// Manifest is the root of asset-manifest.json.
type Manifest struct {
	Version string                `json:"version"`
	Engine  EngineAssets          `json:"engine"`
	Games   map[string]GameAssets `json:"games"`
}

// EngineAssets are shared across all games and loaded up front.
type EngineAssets struct {
	Icons  []string `json:"icons"`
	Images []string `json:"images"`
	Sounds []string `json:"sounds"`
}

// CardAssets drive the game selector cards. Either path may be empty when the
// game ships no art; the selector then falls back to its emoji.
type CardAssets struct {
	GameCard string `json:"gameCard"`
	Favicon  string `json:"favicon"`
}

// GameAssets is one game's entry in the manifest.
type GameAssets struct {
	CardAssets CardAssets                `json:"cardAssets"`
	Level1     StartAssets               `json:"level1"`
	Level2     EndAssets                 `json:"level2"`
	Voices     []string                  `json:"voices"`
	Campaigns  map[string]CampaignAssets `json:"campaigns"`
}

// StartAssets back a game's start screen.
type StartAssets struct {
	Icons               []string            `json:"icons"`
	Sounds              []string            `json:"sounds"`
	MainMenuMusic       string              `json:"mainMenuMusic"`
	StartImages         []string            `json:"startImages"`
	CampaignStartImages map[string][]string `json:"campaignStartImages"`
}

// EndAssets are needed once a run can finish.
type EndAssets struct {
	GameOverMusic  string    `json:"gameOverMusic"`
	VictoryMusic   string    `json:"victoryMusic"`
	TookMoneyMusic string    `json:"tookMoneyMusic"`
	EndImages      EndImages `json:"endImages"`
}

// EndImages are keyed by how the run ended.
type EndImages struct {
	Won  []string `json:"won"`
	Lost []string `json:"lost"`
	Took []string `json:"took"`
}

// CampaignAssets are a campaign's two loading stages.
type CampaignAssets struct {
	Level11 CampaignIntro    `json:"level1_1"`
	Level2  CampaignGameplay `json:"level2"`
}

// CampaignIntro loads when the campaign button is pressed.
type CampaignIntro struct {
	Music      string `json:"music"`
	PlayImages struct {
		Easy []string `json:"easy"`
	} `json:"playImages"`
}

// CampaignGameplay loads in the background during play.
type CampaignGameplay struct {
	PlayImages struct {
		Medium []string `json:"medium"`
		Hard   []string `json:"hard"`
	} `json:"playImages"`
	EndImages EndImages `json:"endImages"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	if m.Games == nil {
		m.Games = make(map[string]GameAssets)
	}
	return &m, nil
}

// Campaign resolves a campaign entry, case-insensitively on a miss. Manifest
// keys come from music filenames and may not match the config's casing.
func (g *GameAssets) Campaign(campaignID string) (CampaignAssets, bool) {
	if c, ok := g.Campaigns[campaignID]; ok {
		return c, true
	}
	lower := strings.ToLower(campaignID)
	for id, c := range g.Campaigns {
		if strings.ToLower(id) == lower {
			return c, true
		}
	}
	return CampaignAssets{}, false
}

// ForLevel returns the asset URLs to preload for a level. Unknown games and
// campaigns yield an empty list, not an error: a game may legitimately ship
// without assets.
func (m *Manifest) ForLevel(level LoadLevel, gameID, campaignID string) ([]string, error) {
	var out []string
	switch level {
	case Level0:
		out = append(out, m.Engine.Icons...)
		out = append(out, m.Engine.Images...)
		out = append(out, m.Engine.Sounds...)
		for _, g := range m.Games {
			switch {
			case g.CardAssets.GameCard != "":
				out = append(out, g.CardAssets.GameCard)
			case g.CardAssets.Favicon != "":
				out = append(out, g.CardAssets.Favicon)
			}
		}

	case Level1:
		g, ok := m.Games[gameID]
		if !ok {
			return nil, nil
		}
		out = append(out, g.Level1.Icons...)
		out = append(out, g.Level1.Sounds...)
		if g.Level1.MainMenuMusic != "" {
			out = append(out, g.Level1.MainMenuMusic)
		}
		out = append(out, g.Level1.StartImages...)
		for _, imgs := range g.Level1.CampaignStartImages {
			out = append(out, imgs...)
		}

	case Level11:
		g, ok := m.Games[gameID]
		if !ok {
			return nil, nil
		}
		c, ok := g.Campaign(campaignID)
		if !ok {
			return nil, nil
		}
		if c.Level11.Music != "" {
			out = append(out, c.Level11.Music)
		}
		out = append(out, c.Level11.PlayImages.Easy...)
		out = append(out, g.Voices...)

	case Level2:
		g, ok := m.Games[gameID]
		if !ok {
			return nil, nil
		}
		if g.Level2.GameOverMusic != "" {
			out = append(out, g.Level2.GameOverMusic)
		}
		if g.Level2.VictoryMusic != "" {
			out = append(out, g.Level2.VictoryMusic)
		}
		if g.Level2.TookMoneyMusic != "" {
			out = append(out, g.Level2.TookMoneyMusic)
		}
		out = append(out, g.Level2.EndImages.Won...)
		out = append(out, g.Level2.EndImages.Lost...)
		out = append(out, g.Level2.EndImages.Took...)
		if c, ok := g.Campaign(campaignID); ok {
			out = append(out, c.Level2.PlayImages.Medium...)
			out = append(out, c.Level2.PlayImages.Hard...)
			out = append(out, c.Level2.EndImages.Won...)
			out = append(out, c.Level2.EndImages.Lost...)
			out = append(out, c.Level2.EndImages.Took...)
		}

	default:
		return nil, ErrUnknownLevel
	}
	return out, nil
}
