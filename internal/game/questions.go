package game

// SelectQuestionsFromPool builds the ordered question sequence for one run:
// each tier is shuffled independently, capped at MaxQuestionsPerTier, and the
// tiers are concatenated easy -> medium -> hard so difficulty never decreases.
// Short or empty tiers contribute what they have; there is no padding.
func SelectQuestionsFromPool(pool QuestionPool, rng RandomSource) []Question {
	var selected []Question
	for _, tier := range DifficultyTiers {
		shuffled := Shuffle(pool.Tier(tier), rng)
		if len(shuffled) > MaxQuestionsPerTier {
			shuffled = shuffled[:MaxQuestionsPerTier]
		}
		selected = append(selected, shuffled...)
	}
	return selected
}

// QuestionDifficulty maps a question's position to a 1-3 difficulty rating by
// thirds of the run.
func QuestionDifficulty(questionIndex, totalQuestions int) int {
	if totalQuestions <= 0 {
		return 1
	}
	fraction := float64(questionIndex) / float64(totalQuestions)
	switch {
	case fraction < 1.0/3.0:
		return 1
	case fraction < 2.0/3.0:
		return 2
	default:
		return 3
	}
}
