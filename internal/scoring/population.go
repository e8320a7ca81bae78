package scoring

import "math"

// NormalizePopulation maps a raw population count onto [0,1] using a log10
// scale relative to maxPopulation. Nil or non-positive populations score 0.
// The caller supplies maxPopulation; no I/O happens here.
func NormalizePopulation(population *int64, maxPopulation int64) float64 {
	if population == nil || *population <= 0 {
		return 0
	}
	if maxPopulation <= 1 {
		return 0
	}

	s := math.Log10(float64(*population)) / math.Log10(float64(maxPopulation))
	if math.IsNaN(s) || s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
