// Package stats summarises the routes sampled by a triangulation
package stats

import (
	"math"
	"sort"
)

// Sum returns the sum of values
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// Quantile calculates the q-th quantile (0 <= q <= 1) with linear
// interpolation between the closest ranks
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return quantileSorted(sorted, q)
}

func quantileSorted(sorted []float64, q float64) float64 {
	q = math.Max(0, math.Min(1, q))
	index := q * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Spread is the five-number summary of a set of values
type Spread struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// FiveNumberSummary returns min, quartiles and max; zero for no values
func FiveNumberSummary(values []float64) Spread {
	if len(values) == 0 {
		return Spread{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return Spread{
		Min:    sorted[0],
		Q1:     quantileSorted(sorted, 0.25),
		Median: quantileSorted(sorted, 0.5),
		Q3:     quantileSorted(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// ShannonEntropy calculates the entropy in bits of frequency counts
func ShannonEntropy(counts []float64) float64 {
	sum := Sum(counts)
	if sum == 0 {
		return 0
	}

	var entropy float64
	for _, v := range counts {
		if v > 0 {
			p := v / sum
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}

// NormalizedEntropy scales ShannonEntropy to [0, 1] by log2 of the number
// of categories. One category or none gives 0.
func NormalizedEntropy(counts []float64) float64 {
	if len(counts) <= 1 {
		return 0
	}
	return ShannonEntropy(counts) / math.Log2(float64(len(counts)))
}
