package stats

import (
	"math"
	"sort"
)

// Quantile calculates the q-th quantile (0-1) with linear interpolation
// between closest ranks. NaN values are skipped.
func Quantile(values []float64, q float64) float64 {
	return Quantiles(values, q)[0]
}

// Quantiles calculates several quantiles sorting the data only once
func Quantiles(values []float64, qs ...float64) []float64 {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	sort.Float64s(sorted)

	results := make([]float64, len(qs))
	if len(sorted) == 0 {
		for i := range results {
			results[i] = math.NaN()
		}
		return results
	}

	n := float64(len(sorted))
	for i, q := range qs {
		q = Clip(q, 0, 1)
		index := q * (n - 1)
		lower := int(math.Floor(index))
		upper := int(math.Ceil(index))

		if lower == upper {
			results[i] = sorted[lower]
			continue
		}
		// Linear interpolation
		weight := index - float64(lower)
		results[i] = sorted[lower]*(1-weight) + sorted[upper]*weight
	}
	return results
}

// Percentile calculates the p-th percentile (0-100)
func Percentile(values []float64, p float64) float64 {
	return Quantile(values, p/100.0)
}
