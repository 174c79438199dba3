package registry

import (
	"fmt"
	"strings"

	"github.com/hotseat-games/hotseat/internal/game"
)

// Validate checks the semantic constraints of a game config.
func Validate(cfg *game.GameConfig) error {
	var errs []string

	if cfg.Title == "" {
		errs = append(errs, "title is required")
	}
	if len(cfg.Campaigns) == 0 {
		errs = append(errs, "at least one campaign is required")
	}

	seen := make(map[string]bool)
	for i, c := range cfg.Campaigns {
		if c.ID == "" {
			errs = append(errs, fmt.Sprintf("campaigns[%d].id is required", i))
			continue
		}
		if seen[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate campaign id %q", c.ID))
		}
		seen[c.ID] = true

		total := 0
		picked := 0
		for _, tier := range game.DifficultyTiers {
			questions := c.Questions.Tier(tier)
			total += len(questions)
			if len(questions) > game.MaxQuestionsPerTier {
				picked += game.MaxQuestionsPerTier
			} else {
				picked += len(questions)
			}
			for j, q := range questions {
				if len(q.Answers) != 4 {
					errs = append(errs, fmt.Sprintf("campaigns[%s].%s[%d] must have exactly 4 answers", c.ID, tier, j))
				}
				if q.Correct < 0 || q.Correct >= len(q.Answers) {
					errs = append(errs, fmt.Sprintf("campaigns[%s].%s[%d] correct index out of range", c.ID, tier, j))
				}
			}
		}
		if total == 0 {
			errs = append(errs, fmt.Sprintf("campaign %q has no questions", c.ID))
		}

		// A tiny top prize can flatten ladder steps against the nice-number
		// floor; reject it so every ladder increases strictly.
		if cfg.Prizes.MaxPrize > 0 && picked > 0 {
			if ladder := game.CalculatePrizeLadder(picked, cfg.Prizes); !ladder.StrictlyIncreasing() {
				errs = append(errs, fmt.Sprintf("prizes.maxPrize %d is too small for a %d-question ladder in campaign %q", cfg.Prizes.MaxPrize, picked, c.ID))
			}
		}
	}

	if cfg.Prizes.MaxPrize <= 0 {
		errs = append(errs, "prizes.maxPrize must be > 0")
	}
	for i, f := range cfg.Prizes.GuaranteedFractions {
		if f <= 0 || f > 1 {
			errs = append(errs, fmt.Sprintf("prizes.guaranteedFractions[%d] must be in (0,1]", i))
		}
	}

	if cfg.Lifelines.Phone.Enabled && len(cfg.Companions) == 0 {
		errs = append(errs, "phone lifeline requires at least one companion")
	}

	if len(errs) > 0 {
		return fmt.Errorf("game %q: %s", cfg.ID, strings.Join(errs, "; "))
	}
	return nil
}
