package game

import "math"

// PhoneConfidentChance is the probability the companion knows the answer.
const PhoneConfidentChance = 0.8

// HostConfidentChance is the probability the host hints at the right answer.
const HostConfidentChance = 0.78

// FiftyFiftyEliminations picks the two display slots removed by 50:50. It
// never touches the slot whose mapped original index is the correct answer:
// the three wrong slots are shuffled and the first two returned.
func FiftyFiftyEliminations(correctOriginalIndex int, shuffledAnswers []int, rng RandomSource) []int {
	var wrong []int
	for slot := 0; slot < 4; slot++ {
		if shuffledAnswers[slot] != correctOriginalIndex {
			wrong = append(wrong, slot)
		}
	}
	shuffled := Shuffle(wrong, rng)
	if len(shuffled) > 2 {
		shuffled = shuffled[:2]
	}
	return shuffled
}

// PhoneSuggestion models phone-a-friend advice. With PhoneConfidentChance the
// companion names the correct original index; otherwise one of the three
// wrong indices, uniformly.
func PhoneSuggestion(correctOriginalIndex int, rng RandomSource) (confident bool, suggestedOriginalIndex int) {
	if rng == nil {
		rng = DefaultRNG()
	}
	if rng.Float64() > 1-PhoneConfidentChance {
		return true, correctOriginalIndex
	}
	var wrong []int
	for i := 0; i < 4; i++ {
		if i != correctOriginalIndex {
			wrong = append(wrong, i)
		}
	}
	return false, wrong[int(math.Floor(rng.Float64()*float64(len(wrong))))]
}

// AudiencePercentages distributes 100 poll points over the four display
// slots. The correct slot draws 40-74; the rest is spread over the surviving
// wrong slots, each taking at most 60% of what remains so the last one always
// absorbs a non-negative remainder. Eliminated slots poll at zero.
func AudiencePercentages(correctDisplaySlot int, eliminatedDisplaySlots []int, rng RandomSource) [4]int {
	if rng == nil {
		rng = DefaultRNG()
	}
	var percentages [4]int

	correct := 40 + int(math.Floor(rng.Float64()*35))
	percentages[correctDisplaySlot] = correct
	remaining := 100 - correct

	eliminated := make(map[int]bool, len(eliminatedDisplaySlots))
	for _, slot := range eliminatedDisplaySlots {
		eliminated[slot] = true
	}

	var others []int
	for slot := 0; slot < 4; slot++ {
		if slot != correctDisplaySlot && !eliminated[slot] {
			others = append(others, slot)
		}
	}

	for i, slot := range others {
		if i == len(others)-1 {
			percentages[slot] = remaining
			break
		}
		val := int(math.Floor(rng.Float64() * float64(remaining) * 0.6))
		percentages[slot] = val
		remaining -= val
	}

	// All slots eliminated except the correct one: the poll is unanimous.
	if len(others) == 0 {
		percentages[correctDisplaySlot] = 100
	}

	return percentages
}

// HostSuggestion models ask-the-host advice in display-slot space, honoring
// current eliminations. When everything but the correct slot is gone, the
// host can only point at it.
func HostSuggestion(correctDisplaySlot int, eliminatedDisplaySlots []int, rng RandomSource) (suggestedDisplaySlot int, confident bool) {
	if rng == nil {
		rng = DefaultRNG()
	}
	eliminated := make(map[int]bool, len(eliminatedDisplaySlots))
	for _, slot := range eliminatedDisplaySlots {
		eliminated[slot] = true
	}
	var wrongChoices []int
	for slot := 0; slot < 4; slot++ {
		if !eliminated[slot] && slot != correctDisplaySlot {
			wrongChoices = append(wrongChoices, slot)
		}
	}

	confident = rng.Float64() < HostConfidentChance
	if confident || len(wrongChoices) == 0 {
		return correctDisplaySlot, confident
	}
	return wrongChoices[int(math.Floor(rng.Float64()*float64(len(wrongChoices))))], false
}

// SwitchQuestionIndex picks the replacement question for the switch lifeline:
// a uniform choice among the questions after the current one. Returns false
// when the current question is the last.
func SwitchQuestionIndex(currentQuestionIndex, totalQuestions int, rng RandomSource) (int, bool) {
	if rng == nil {
		rng = DefaultRNG()
	}
	start := currentQuestionIndex + 1
	if start >= totalQuestions {
		return 0, false
	}
	count := totalQuestions - start
	return start + int(math.Floor(rng.Float64()*float64(count))), true
}
