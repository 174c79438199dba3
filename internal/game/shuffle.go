package game

import "math"

// Shuffle returns a Fisher-Yates shuffled copy of xs. The input is not
// modified. With a seeded source the permutation is reproducible.
func Shuffle[T any](xs []T, rng RandomSource) []T {
	if rng == nil {
		rng = DefaultRNG()
	}
	out := make([]T, len(xs))
	copy(out, xs)
	for i := len(out) - 1; i > 0; i-- {
		j := int(math.Floor(rng.Float64() * float64(i+1)))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffledAnswerMap returns a fresh display-slot permutation of [0 1 2 3].
// Index is the display slot, value is the original answer index.
func ShuffledAnswerMap(rng RandomSource) []int {
	return Shuffle([]int{0, 1, 2, 3}, rng)
}
