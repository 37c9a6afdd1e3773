package scoring

import "math"

// weightedComposite min-max normalizes a weighted sum of 1-10 sub-scores
// into 0-100: all sub-scores at 1.0 map to exactly 0, all at 10.0 to
// exactly 100.
func weightedComposite(weights, scores []float64) int {
	var totalWeight, weightedSum float64
	for i, w := range weights {
		totalWeight += w
		weightedSum += w * scores[i]
	}

	minPossible := 1 * totalWeight
	maxPossible := 10 * totalWeight
	normalized := (weightedSum - minPossible) / (maxPossible - minPossible)
	return int(math.Round(normalized * 100))
}

// Opportunity is the ranking metric: traffic divided by difficulty,
// rounded to two decimals. The difficulty floor of 1 keeps a
// zero-difficulty keyword from dividing by zero while leaving the ratio
// unchanged for every other input.
func Opportunity(traffic, difficulty int) float64 {
	return round2(float64(traffic) / math.Max(float64(difficulty), 1))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
