package stats

import "math"

// entropyEpsilon keeps log2 finite for probabilities at the float edge
const entropyEpsilon = 1e-10

// ShannonEntropy calculates the entropy in bits of a probability distribution.
// Zero-probability classes do not contribute.
func ShannonEntropy(probs []float64) float64 {
	var entropy float64
	for _, p := range probs {
		if p > 0 {
			entropy -= p * math.Log2(p+entropyEpsilon)
		}
	}
	return entropy
}

// Uncertainty returns 1 minus the largest class probability
func Uncertainty(probs []float64) float64 {
	if len(probs) == 0 {
		return 1
	}
	max := probs[0]
	for _, p := range probs[1:] {
		if p > max {
			max = p
		}
	}
	return 1 - max
}
