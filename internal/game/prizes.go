package game

import (
	"math"
	"strconv"
	"strings"
)

// classicMultipliers15 is the canonical 15-question ladder as fractions of the
// top prize (100 ... 1,000,000 over a 1M game).
var classicMultipliers15 = []float64{
	0.0001, 0.0002, 0.0003, 0.0005,
	0.001, 0.002, 0.004, 0.008,
	0.016, 0.032, 0.064, 0.125,
	0.25, 0.5, 1.0,
}

// niceNumbers is the snap table for intermediate prize values.
var niceNumbers = []int{
	100, 200, 300, 400, 500, 600, 700, 800, 900, 1000, 1500, 2000, 2500,
	3000, 4000, 5000, 6000, 7000, 8000, 9000, 10000, 12000, 15000, 16000,
	20000, 25000, 30000, 32000, 40000, 50000, 60000, 64000, 75000, 80000,
	100000, 125000, 150000, 200000, 250000, 300000, 400000, 500000, 600000,
	750000, 800000, 1000000, 1500000, 2000000, 2500000, 3000000, 4000000,
	5000000, 10000000, 15000000, 20000000, 25000000, 50000000, 100000000,
}

func roundToNiceNumber(value float64) int {
	if value <= 0 {
		return 0
	}
	closest := niceNumbers[0]
	minDiff := math.Abs(value - float64(closest))
	for _, nice := range niceNumbers {
		diff := math.Abs(value - float64(nice))
		if diff < minDiff {
			minDiff = diff
			closest = nice
		}
	}
	return closest
}

// FormatPrize renders a prize value with thin thousands separators,
// e.g. 3000000 -> "3 000 000".
func FormatPrize(value int) string {
	s := strconv.Itoa(value)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ' ')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}

// interpolateMultipliers stretches or compresses the classic 15-step curve to
// questionCount steps using geometric interpolation between neighbors.
func interpolateMultipliers(questionCount int) []float64 {
	if questionCount <= 0 {
		return nil
	}
	if questionCount == 15 {
		out := make([]float64, 15)
		copy(out, classicMultipliers15)
		return out
	}
	multipliers := make([]float64, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		pos := 0.0
		if questionCount > 1 {
			pos = float64(i) / float64(questionCount-1) * 14
		}
		lower := int(math.Floor(pos))
		upper := lower + 1
		if upper > 14 {
			upper = 14
		}
		fraction := pos - float64(lower)

		lo := classicMultipliers15[lower]
		hi := classicMultipliers15[upper]
		multipliers = append(multipliers, lo*math.Pow(hi/lo, fraction))
	}
	return multipliers
}

// CalculatePrizeLadder derives the prize sequence and safety-net indices for a
// run of questionCount questions. Values read as nice round numbers and the
// last one is exactly MaxPrize; they increase strictly as long as MaxPrize
// leaves room above the snap table's 100 floor (see StrictlyIncreasing). Guaranteed indices come from
// round(fraction*n)-1 clamped into range, deduplicated and sorted; the last
// index is implicitly a safety net regardless (see GuaranteedPrize).
func CalculatePrizeLadder(questionCount int, cfg PrizesConfig) PrizeLadder {
	if questionCount <= 0 {
		return PrizeLadder{Values: []string{}, Guaranteed: []int{}}
	}

	multipliers := interpolateMultipliers(questionCount)
	values := make([]string, 0, questionCount)
	previous := 0

	for i := 0; i < questionCount; i++ {
		raw := float64(cfg.MaxPrize) * multipliers[i]
		rounded := roundToNiceNumber(raw)

		if rounded <= previous {
			bump := 10000
			switch {
			case previous < 1000:
				bump = 100
			case previous < 10000:
				bump = 500
			case previous < 100000:
				bump = 1000
			}
			rounded = roundToNiceNumber(float64(previous + bump))
			if rounded <= previous {
				rounded = previous + bump
			}
		}

		final := rounded
		if i == questionCount-1 {
			final = cfg.MaxPrize
		}
		values = append(values, FormatPrize(final))
		previous = final
	}

	var guaranteed []int
	for _, fraction := range cfg.GuaranteedFractions {
		index := int(math.Round(fraction*float64(questionCount))) - 1
		if index < 0 || index >= questionCount {
			continue
		}
		dup := false
		for _, g := range guaranteed {
			if g == index {
				dup = true
				break
			}
		}
		if !dup {
			guaranteed = append(guaranteed, index)
		}
	}
	for i := 1; i < len(guaranteed); i++ {
		for j := i; j > 0 && guaranteed[j] < guaranteed[j-1]; j-- {
			guaranteed[j], guaranteed[j-1] = guaranteed[j-1], guaranteed[j]
		}
	}

	return PrizeLadder{Values: values, Guaranteed: guaranteed}
}

// StrictlyIncreasing reports whether every ladder value exceeds the previous
// one. Forcing the last value to MaxPrize can flatten the top step when the
// top prize is tiny relative to the step count.
func (l PrizeLadder) StrictlyIncreasing() bool {
	previous := -1
	for _, v := range l.Values {
		n, err := strconv.Atoi(strings.ReplaceAll(v, " ", ""))
		if err != nil || n <= previous {
			return false
		}
		previous = n
	}
	return true
}

// GuaranteedPrize returns the safety-net prize retained after a loss at
// currentQuestion, i.e. the value at the highest guaranteed index already
// passed, or "0" when no safety net was reached.
func GuaranteedPrize(currentQuestion int, ladder PrizeLadder) string {
	highest := -1
	for _, idx := range ladder.Guaranteed {
		if idx < currentQuestion && idx > highest {
			highest = idx
		}
	}
	if highest < 0 {
		return "0"
	}
	return ladder.Values[highest]
}
