package repository

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jengzang/risk-heatmap-go/internal/database"
	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/spatial"
)

const historicalCSV = `Lat_Grid,LON_GRID,conteo_delitos_graves,conteo_llamadas_riesgo,otra
-2.190,-79.890,3,10,x
-2.180,-79.880,1,4,x
-2.190,-79.890,5,,x
-0.220,-78.510,0,2,x
`

func TestLoadHistoricalAggregatesPerCell(t *testing.T) {
	h, err := LoadHistorical(strings.NewReader(historicalCSV), "hist.csv")
	require.NoError(t, err)

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 4, h.Records())
	assert.Equal(t, []models.GridKey{
		models.NewGridKey(-2.19, -79.89),
		models.NewGridKey(-2.18, -79.88),
		models.NewGridKey(-0.22, -78.51),
	}, h.Cells())

	ch, ok := h.History(models.NewGridKey(-2.19, -79.89))
	require.True(t, ok)
	assert.Equal(t, 2, ch.Records)
	assert.InDelta(t, 8, ch.SevereSum, 1e-9)
	assert.InDelta(t, 4, ch.SevereMean, 1e-9)
	assert.InDelta(t, 10, ch.RiskCallMean, 1e-9)

	assert.InDelta(t, 16.0/3.0, h.RiskCallMean(), 1e-9)
}

func TestLoadHistoricalCellsIsACopy(t *testing.T) {
	h, err := LoadHistorical(strings.NewReader(historicalCSV), "hist.csv")
	require.NoError(t, err)

	cells := h.Cells()
	cells[0] = models.GridKey{}
	assert.Equal(t, models.NewGridKey(-2.19, -79.89), h.Cells()[0])
}

func TestLoadHistoricalErrors(t *testing.T) {
	_, err := LoadHistorical(strings.NewReader("lat_grid,foo\n1,2\n"), "bad.csv")
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = LoadHistorical(strings.NewReader("lat_grid,lon_grid\n1,2\nabc,3\n"), "bad.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.csv:3")

	_, err = LoadHistorical(strings.NewReader(""), "empty.csv")
	assert.Error(t, err)
}

func TestClusterProfilesTop(t *testing.T) {
	csv := "cluster,tipo_infraccion,porcentaje\n" +
		"1,ROBO,0.2\n" +
		"1,HURTO,0.5\n" +
		"1.0,ESTAFA,0.3\n" +
		"1,ASALTO,0.2\n" +
		"2,ROBO,1.0\n"
	p, err := LoadClusterProfiles(strings.NewReader(csv), "perfiles.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())

	top := p.Top(1, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "HURTO", top[0].Type)
	assert.Equal(t, "ESTAFA", top[1].Type)
	assert.Equal(t, "ASALTO", top[2].Type)

	assert.Len(t, p.Top(1, 10), 4)
	assert.Empty(t, p.Top(9, 3))

	var nilProfiles *ClusterProfiles
	assert.Nil(t, nilProfiles.Top(1, 3))
	assert.Equal(t, 0, nilProfiles.Len())
}

func TestRiskCellsLookup(t *testing.T) {
	csv := "lat_grid,lon_grid,cluster,nivel_riesgo\n" +
		"-2.190,-79.890,1,ALTO\n" +
		"-2.100,-79.800,2,BAJO\n"
	rc, err := LoadRiskCells(strings.NewReader(csv), "celdas.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, rc.Len())

	c, ok := rc.At(models.NewGridKey(-2.19, -79.89))
	require.True(t, ok)
	assert.Equal(t, 1, c.Cluster)
	assert.Equal(t, "ALTO", c.RiskLevel)

	_, ok = rc.At(models.NewGridKey(0, 0))
	assert.False(t, ok)

	n, ok := rc.Nearest(spatial.Point{Lat: -2.11, Lon: -79.81})
	require.True(t, ok)
	assert.Equal(t, 2, n.Cluster)

	var empty *RiskCells
	_, ok = empty.Nearest(spatial.Point{})
	assert.False(t, ok)
}

func TestLoadApprehensionsQuantizesRawCoordinates(t *testing.T) {
	csv := "latitud,longitud,tipo_infraccion\n" +
		"-2.19041,-79.88962,ROBO\n" +
		"-0.22,-78.51,HURTO\n"
	a, err := LoadApprehensions(strings.NewReader(csv), "aprehensiones.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())

	b := orb.Bound{Min: orb.Point{-80, -3}, Max: orb.Point{-79, -2}}
	in := a.Within(b)
	require.Len(t, in, 1)
	assert.Equal(t, "ROBO", in[0].Type)
	assert.InDelta(t, -2.19, in[0].Lat, 1e-9)
	assert.InDelta(t, -79.89, in[0].Lon, 1e-9)
}

func TestLoadSnapshotSkipsMissingOptionalTables(t *testing.T) {
	dir := t.TempDir()
	hist := filepath.Join(dir, "hist.csv")
	require.NoError(t, os.WriteFile(hist, []byte(historicalCSV), 0o644))

	snap, err := LoadSnapshot(SnapshotPaths{
		Historical:    hist,
		RiskCells:     filepath.Join(dir, "missing.csv"),
		Apprehensions: "",
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Historical.Len())
	assert.Nil(t, snap.Profiles)
	assert.Nil(t, snap.RiskCells)
	assert.Nil(t, snap.Apprehensions)
}

func TestLoadSnapshotFailsOnMalformedOptionalTable(t *testing.T) {
	dir := t.TempDir()
	hist := filepath.Join(dir, "hist.csv")
	cells := filepath.Join(dir, "cells.csv")
	require.NoError(t, os.WriteFile(hist, []byte(historicalCSV), 0o644))
	require.NoError(t, os.WriteFile(cells, []byte("lat_grid,lon_grid,cluster\n1,2,x\n"), 0o644))

	_, err := LoadSnapshot(SnapshotPaths{Historical: hist, RiskCells: cells}, zap.NewNop())
	assert.Error(t, err)
}

func TestLoadSnapshotRequiresHistorical(t *testing.T) {
	_, err := LoadSnapshot(SnapshotPaths{Historical: filepath.Join(t.TempDir(), "nope.csv")}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewHistoricalDeduplicates(t *testing.T) {
	k := models.NewGridKey(1, 1)
	h := NewHistorical([]models.GridKey{k, k}, map[models.GridKey]CellHistory{k: {Records: 2}}, 1.5)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 2, h.Records())
	assert.False(t, math.IsNaN(h.RiskCallMean()))
}

func TestPredictionLogRepository(t *testing.T) {
	db, err := database.Open(database.Config{Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	repo := NewPredictionLogRepository(db)
	ctx := context.Background()

	for _, zone := range []string{"Guayas", "Pichincha", "Guayas"} {
		entry := &models.PredictionLog{Zone: zone, Date: "2024-06-15", Points: 10, RiskMean: 0.4, RiskLevel: "MEDIO"}
		require.NoError(t, repo.Insert(ctx, entry))
		assert.NotEmpty(t, entry.ID)
	}

	all, err := repo.List(ctx, models.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Guayas", all[0].Zone)
	assert.Equal(t, "Pichincha", all[1].Zone)

	guayas, err := repo.List(ctx, models.HistoryFilter{Zone: "Guayas", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, guayas, 1)

	none, err := repo.List(ctx, models.HistoryFilter{Zone: "Atlantis"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
