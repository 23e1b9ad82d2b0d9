package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/jengzang/risk-heatmap-go/internal/cache"
	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/repository"
)

// latRegressor scores a row by its latitude plus the month, so scores vary across a zone
type latRegressor struct {
	calls int
	err   error
}

func (r *latRegressor) Predict(_ context.Context, rows [][]float64) ([]float64, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]float64, len(rows))
	for i, x := range rows {
		out[i] = x[0] + x[2]
	}
	return out, nil
}

// constRegressor returns the same score for every row
type constRegressor struct{ v float64 }

func (r constRegressor) Predict(_ context.Context, rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i := range out {
		out[i] = r.v
	}
	return out, nil
}

// shortRegressor drops the last score
type shortRegressor struct{}

func (shortRegressor) Predict(_ context.Context, rows [][]float64) ([]float64, error) {
	return make([]float64, len(rows)-1), nil
}

// fixedClassifier returns the same distribution for every row and remembers the input
type fixedClassifier struct {
	p    []float64
	seen [][]float64
}

func (c *fixedClassifier) PredictProba(_ context.Context, rows [][]float64) ([][]float64, error) {
	c.seen = append(c.seen, rows...)
	out := make([][]float64, len(rows))
	for i := range rows {
		out[i] = c.p
	}
	return out, nil
}

// mapCache is an in-memory cache.Cache
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(b, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *mapCache) Close() error { return nil }

var errBroken = errors.New("broken")

// Guayas cells (-2.6..-1.5, -80.3..-79.5) and one Pichincha cell
var (
	guayasA   = models.NewGridKey(-2.190, -79.890)
	guayasB   = models.NewGridKey(-2.150, -79.900)
	guayasC   = models.NewGridKey(-1.950, -79.700)
	pichincha = models.NewGridKey(-0.220, -78.510)
)

func testSnapshot() *repository.Snapshot {
	cells := []models.GridKey{guayasA, guayasB, guayasC, pichincha}
	hist := repository.NewHistorical(cells, map[models.GridKey]repository.CellHistory{
		guayasA: {Records: 4, SevereSum: 6, SevereMean: 1.5, RiskCallMean: 3},
		guayasB: {Records: 1, SevereSum: 0, SevereMean: 0, RiskCallMean: 1},
	}, 2.5)

	return &repository.Snapshot{
		Historical: hist,
		Profiles: repository.NewClusterProfiles(map[int][]models.InfractionShare{
			1: {
				{Type: "ROBO", Probability: 0.30},
				{Type: "HURTO", Probability: 0.25},
				{Type: "ASALTO", Probability: 0.15},
				{Type: "ESTAFA", Probability: 0.10},
				{Type: "EXTORSION", Probability: 0.10},
				{Type: "OTROS", Probability: 0.10},
			},
			2: {{Type: "MICROTRAFICO", Probability: 1}},
		}),
		RiskCells: repository.NewRiskCells([]repository.RiskCell{
			{Lat: -2.190, Lon: -79.890, Cluster: 1, RiskLevel: "ALTO"},
			{Lat: -0.220, Lon: -78.510, Cluster: 2, RiskLevel: "BAJO"},
		}),
		Apprehensions: repository.NewApprehensions([]repository.Apprehension{
			{Lat: -2.190, Lon: -79.890, Type: DefaultWatchlist[0]},
			{Lat: -2.190, Lon: -79.890, Type: DefaultWatchlist[0]},
			{Lat: -2.190, Lon: -79.890, Type: DefaultWatchlist[2]},
			{Lat: -2.150, Lon: -79.900, Type: DefaultWatchlist[1]},
			{Lat: -2.150, Lon: -79.900, Type: "CONTRAVENCIONES DE TRANSITO"},
			{Lat: -0.220, Lon: -78.510, Type: DefaultWatchlist[0]},
		}),
	}
}

func ptr(v float64) *float64 { return &v }
