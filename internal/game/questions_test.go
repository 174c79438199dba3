package game

import (
	"fmt"
	"testing"
)

func tierQuestions(tier string, n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			Text:    fmt.Sprintf("%s question %d", tier, i),
			Answers: []string{"a", "b", "c", "d"},
			Correct: i % 4,
		}
	}
	return qs
}

func TestSelectQuestionsOrderedByTier(t *testing.T) {
	pool := QuestionPool{
		Easy:   tierQuestions(TierEasy, 5),
		Medium: tierQuestions(TierMedium, 5),
		Hard:   tierQuestions(TierHard, 5),
	}
	selected := SelectQuestionsFromPool(pool, NewSeededRNG(3))

	if len(selected) != 15 {
		t.Fatalf("expected 15 questions, got %d", len(selected))
	}
	for i, q := range selected {
		wantTier := TierEasy
		if i >= 10 {
			wantTier = TierHard
		} else if i >= 5 {
			wantTier = TierMedium
		}
		if q.Text[:4] != wantTier[:4] {
			t.Fatalf("question %d (%q) out of tier order", i, q.Text)
		}
	}
}

func TestSelectQuestionsCapsPerTier(t *testing.T) {
	pool := QuestionPool{Easy: tierQuestions(TierEasy, 12)}
	selected := SelectQuestionsFromPool(pool, NewSeededRNG(3))
	if len(selected) != MaxQuestionsPerTier {
		t.Fatalf("expected %d questions, got %d", MaxQuestionsPerTier, len(selected))
	}
}

func TestSelectQuestionsShortTiersNoPadding(t *testing.T) {
	pool := QuestionPool{
		Easy: tierQuestions(TierEasy, 2),
		Hard: tierQuestions(TierHard, 3),
	}
	selected := SelectQuestionsFromPool(pool, NewSeededRNG(3))
	if len(selected) != 5 {
		t.Fatalf("expected 5 questions from short pools, got %d", len(selected))
	}
}

func TestSelectQuestionsDeterministicWithSeed(t *testing.T) {
	pool := QuestionPool{
		Easy:   tierQuestions(TierEasy, 5),
		Medium: tierQuestions(TierMedium, 5),
		Hard:   tierQuestions(TierHard, 5),
	}
	a := SelectQuestionsFromPool(pool, NewSeededRNG(11))
	b := SelectQuestionsFromPool(pool, NewSeededRNG(11))
	for i := range a {
		if a[i].Text != b[i].Text {
			t.Fatalf("same seed diverged at question %d", i)
		}
	}
}

func TestQuestionDifficultyThirds(t *testing.T) {
	cases := []struct {
		index, total, want int
	}{
		{0, 15, 1},
		{4, 15, 1},
		{5, 15, 2},
		{9, 15, 2},
		{10, 15, 3},
		{14, 15, 3},
		{0, 0, 1},
	}
	for _, c := range cases {
		if got := QuestionDifficulty(c.index, c.total); got != c.want {
			t.Fatalf("QuestionDifficulty(%d, %d) = %d, want %d", c.index, c.total, got, c.want)
		}
	}
}
