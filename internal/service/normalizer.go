package service

import (
	"math"

	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/stats"
)

const (
	// below this raw range the bounds are replaced by P10/P90
	narrowRange = 0.1
	// below this denominator every cell gets neutralScore
	degenerateRange = 1e-7
	neutralScore    = 0.5
)

// Normalization describes the bounds used to rescale a zone
type Normalization struct {
	Min        float64
	Max        float64
	Widened    bool
	Degenerate bool
}

// Normalize rescales raw scores into [0,1]. The input is left untouched.
func Normalize(cells []models.ScoredCell) ([]models.ScoredCell, Normalization) {
	out := make([]models.ScoredCell, len(cells))
	copy(out, cells)

	scores := make([]float64, len(cells))
	for i, c := range cells {
		scores[i] = c.RiskScore
	}

	var n Normalization
	n.Min, n.Max = stats.MinMax(scores)
	if math.IsNaN(n.Min) {
		// no usable score at all
		for i := range out {
			out[i].RiskNorm = 0
		}
		return out, Normalization{Degenerate: true}
	}

	if n.Max-n.Min < narrowRange {
		q := stats.Quantiles(scores, 0.1, 0.9)
		n.Min, n.Max = q[0], q[1]
		n.Widened = true
	}

	den := n.Max - n.Min
	if den < degenerateRange {
		n.Degenerate = true
		for i := range out {
			out[i].RiskNorm = neutralScore
		}
		return out, n
	}

	for i := range out {
		v := stats.Clip((out[i].RiskScore-n.Min)/den, 0, 1)
		if math.IsNaN(v) {
			v = 0
		}
		out[i].RiskNorm = v
	}
	return out, n
}
