package repository

import (
	"fmt"
	"io"
	"math"

	"github.com/jengzang/risk-heatmap-go/internal/models"
)

// CellHistory aggregates the historical records of one grid cell
type CellHistory struct {
	Records      int
	SevereSum    float64
	SevereMean   float64
	RiskCallMean float64
}

// Historical is the read-only training dataset reduced to what prediction needs:
// the distinct cells (first-seen order) and per-cell aggregates.
type Historical struct {
	cells        []models.GridKey
	history      map[models.GridKey]CellHistory
	riskCallMean float64
	records      int
}

type cellAccumulator struct {
	records     int
	severeSum   float64
	severeN     int
	riskCallSum float64
	riskCallN   int
}

// LoadHistorical parses the historical training CSV
func LoadHistorical(r io.Reader, source string) (*Historical, error) {
	h := &Historical{history: make(map[models.GridKey]CellHistory)}
	acc := make(map[models.GridKey]*cellAccumulator)

	var callSum float64
	var callN int

	err := readCSV(r, source, []string{"lat_grid", "lon_grid"}, func(row csvRow) error {
		lat, err := row.Float("lat_grid")
		if err != nil {
			return err
		}
		lon, err := row.Float("lon_grid")
		if err != nil {
			return err
		}
		severe, err := row.OptFloat("conteo_delitos_graves")
		if err != nil {
			return err
		}
		calls, err := row.OptFloat("conteo_llamadas_riesgo")
		if err != nil {
			return err
		}

		key := models.NewGridKey(lat, lon)
		a, seen := acc[key]
		if !seen {
			a = &cellAccumulator{}
			acc[key] = a
			h.cells = append(h.cells, key)
		}
		a.records++
		if !math.IsNaN(severe) {
			a.severeSum += severe
			a.severeN++
		}
		if !math.IsNaN(calls) {
			a.riskCallSum += calls
			a.riskCallN++
			callSum += calls
			callN++
		}
		h.records++
		return nil
	})
	if err != nil {
		return nil, err
	}

	for key, a := range acc {
		ch := CellHistory{Records: a.records, SevereSum: a.severeSum}
		if a.severeN > 0 {
			ch.SevereMean = a.severeSum / float64(a.severeN)
		}
		if a.riskCallN > 0 {
			ch.RiskCallMean = a.riskCallSum / float64(a.riskCallN)
		}
		h.history[key] = ch
	}
	if callN > 0 {
		h.riskCallMean = callSum / float64(callN)
	}
	return h, nil
}

// NewHistorical builds a dataset from cells directly. Used by tests and the CLI.
func NewHistorical(cells []models.GridKey, history map[models.GridKey]CellHistory, riskCallMean float64) *Historical {
	h := &Historical{history: make(map[models.GridKey]CellHistory), riskCallMean: riskCallMean}
	seen := make(map[models.GridKey]bool, len(cells))
	for _, c := range cells {
		if seen[c] {
			continue
		}
		seen[c] = true
		h.cells = append(h.cells, c)
	}
	for k, v := range history {
		h.history[k] = v
		h.records += v.Records
	}
	return h
}

// Cells returns the distinct grid cells in first-seen order
func (h *Historical) Cells() []models.GridKey {
	out := make([]models.GridKey, len(h.cells))
	copy(out, h.cells)
	return out
}

// History returns the aggregates of one cell
func (h *Historical) History(key models.GridKey) (CellHistory, bool) {
	ch, ok := h.history[key]
	return ch, ok
}

// RiskCallMean is the dataset-wide mean of conteo_llamadas_riesgo
func (h *Historical) RiskCallMean() float64 {
	return h.riskCallMean
}

// Len returns the number of distinct cells
func (h *Historical) Len() int {
	return len(h.cells)
}

// Records returns the number of rows the dataset was built from
func (h *Historical) Records() int {
	return h.records
}

func (h *Historical) String() string {
	return fmt.Sprintf("historical{cells=%d records=%d}", len(h.cells), h.records)
}
