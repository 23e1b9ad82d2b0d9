package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jengzang/risk-heatmap-go/internal/inference"
	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/repository"
)

// FeatureColumns is the column order both models were trained on
var FeatureColumns = []string{
	"lat_grid",
	"lon_grid",
	"mes",
	"dia",
	"dia_semana",
	"conteo_delitos_graves",
	"conteo_llamadas_riesgo",
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2006-01",
}

// ParseDate accepts the date layouts the frontend and CLI send
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// weekday returns 0 for Monday through 6 for Sunday
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// BuildGrid produces one row per distinct historical cell for the target date.
// Event counts are unknown for a future date and set to 0.
func BuildGrid(hist *repository.Historical, date time.Time) []models.GridCell {
	keys := hist.Cells()
	cells := make([]models.GridCell, len(keys))
	for i, k := range keys {
		cells[i] = models.GridCell{
			Lat:       k.Lat(),
			Lon:       k.Lon(),
			Month:     int(date.Month()),
			Day:       date.Day(),
			DayOfWeek: weekday(date),
		}
	}
	return cells
}

// FeatureMatrix lays out the model input rows
func FeatureMatrix(cells []models.GridCell) [][]float64 {
	rows := make([][]float64, len(cells))
	for i, c := range cells {
		rows[i] = c.Features()
	}
	return rows
}

// Score runs the regressor once over the whole grid
func Score(ctx context.Context, model inference.Regressor, cells []models.GridCell) ([]models.ScoredCell, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: regressor", ErrModelUnavailable)
	}
	scores, err := model.Predict(ctx, FeatureMatrix(cells))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInference, err)
	}
	if len(scores) != len(cells) {
		return nil, fmt.Errorf("%w: got %d scores for %d cells", ErrInference, len(scores), len(cells))
	}

	scored := make([]models.ScoredCell, len(cells))
	for i, c := range cells {
		scored[i] = models.ScoredCell{GridCell: c, RiskScore: scores[i]}
	}
	return scored, nil
}
