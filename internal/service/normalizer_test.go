package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jengzang/risk-heatmap-go/internal/models"
)

func scoredCells(scores ...float64) []models.ScoredCell {
	out := make([]models.ScoredCell, len(scores))
	for i, s := range scores {
		out[i] = models.ScoredCell{GridCell: models.GridCell{Lat: float64(i)}, RiskScore: s}
	}
	return out
}

func assertUnitInterval(t *testing.T, cells []models.ScoredCell) {
	t.Helper()
	for _, c := range cells {
		assert.False(t, math.IsNaN(c.RiskNorm))
		assert.GreaterOrEqual(t, c.RiskNorm, 0.0)
		assert.LessOrEqual(t, c.RiskNorm, 1.0)
	}
}

func TestNormalizeMinMax(t *testing.T) {
	out, n := Normalize(scoredCells(1, 2, 3, 5))
	assert.False(t, n.Widened)
	assert.False(t, n.Degenerate)
	assert.Equal(t, 1.0, n.Min)
	assert.Equal(t, 5.0, n.Max)
	assert.InDelta(t, 0.0, out[0].RiskNorm, 1e-12)
	assert.InDelta(t, 0.5, out[2].RiskNorm, 1e-12)
	assert.InDelta(t, 1.0, out[3].RiskNorm, 1e-12)
	assertUnitInterval(t, out)
}

func TestNormalizeWidensNarrowRangeAndClips(t *testing.T) {
	out, n := Normalize(scoredCells(0.00, 0.01, 0.02, 0.03, 0.04, 0.05, 0.06, 0.07, 0.08, 0.09, 0.095))
	assert.True(t, n.Widened)
	assert.InDelta(t, 0.01, n.Min, 1e-9)
	assert.InDelta(t, 0.09, n.Max, 1e-9)
	assert.Equal(t, 0.0, out[0].RiskNorm)
	assert.Equal(t, 1.0, out[10].RiskNorm)
	assertUnitInterval(t, out)
}

func TestNormalizeDegenerateIsNeutral(t *testing.T) {
	out, n := Normalize(scoredCells(0.7, 0.7, 0.7))
	assert.True(t, n.Degenerate)
	for _, c := range out {
		assert.Equal(t, 0.5, c.RiskNorm)
	}

	single, _ := Normalize(scoredCells(3))
	assert.Equal(t, 0.5, single[0].RiskNorm)
}

func TestNormalizeNaN(t *testing.T) {
	out, _ := Normalize(scoredCells(1, math.NaN(), 3))
	assert.Equal(t, 0.0, out[1].RiskNorm)
	assertUnitInterval(t, out)

	allNaN, n := Normalize(scoredCells(math.NaN(), math.NaN()))
	assert.True(t, n.Degenerate)
	assertUnitInterval(t, allNaN)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := scoredCells(1, 2, 3)
	in[0].RiskNorm = 42
	_, _ = Normalize(in)
	assert.Equal(t, 42.0, in[0].RiskNorm)
	assert.Equal(t, 0.0, in[1].RiskNorm)
}
