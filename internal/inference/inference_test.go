package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/risk-heatmap-go/internal/spatial"
)

var testFeatures = []string{
	"lat_grid", "lon_grid", "mes", "dia", "dia_semana",
	"conteo_delitos_graves", "conteo_llamadas_riesgo",
}

const featuresJSON = `["lat_grid","lon_grid","mes","dia","dia_semana","conteo_delitos_graves","conteo_llamadas_riesgo"]`

// two stumps splitting on latitude (feature 0) and month (feature 2)
const regressorJSON = `{
  "kind": "regressor",
  "features": ` + featuresJSON + `,
  "trees": [
    {"children_left": [1, -1, -1], "children_right": [2, -1, -1], "feature": [0, -2, -2],
     "threshold": [-1.0, -2, -2], "value": [[0], [1.0], [3.0]]},
    {"children_left": [1, -1, -1], "children_right": [2, -1, -1], "feature": [2, -2, -2],
     "threshold": [6.5, -2, -2], "value": [[0], [0.0], [2.0]]}
  ]
}`

const classifierJSON = `{
  "kind": "classifier",
  "features": ` + featuresJSON + `,
  "n_classes": 2,
  "trees": [
    {"children_left": [1, -1, -1], "children_right": [2, -1, -1], "feature": [6, -2, -2],
     "threshold": [5.0, -2, -2], "value": [[0, 0], [8, 2], [1, 3]]}
  ]
}`

func row(lat, month, calls float64) []float64 {
	return []float64{lat, -79.9, month, 15, 5, 0, calls}
}

func TestForestPredict(t *testing.T) {
	f, err := LoadForest(strings.NewReader(regressorJSON), testFeatures)
	require.NoError(t, err)

	got, err := f.Predict(context.Background(), [][]float64{
		row(-2.2, 6, 0), // 1 + 0
		row(-0.2, 6, 0), // 3 + 0
		row(-0.2, 7, 0), // 3 + 2
	})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 1.5, 2.5}, got, 1e-9)
}

func TestForestPredictSumAggregation(t *testing.T) {
	src := strings.Replace(regressorJSON, `"kind": "regressor",`,
		`"kind": "regressor", "aggregation": "sum", "base_score": 1.0, "learning_rate": 0.5,`, 1)
	f, err := LoadForest(strings.NewReader(src), testFeatures)
	require.NoError(t, err)

	got, err := f.Predict(context.Background(), [][]float64{row(-0.2, 7, 0)})
	require.NoError(t, err)
	assert.InDelta(t, 1.0+0.5*5.0, got[0], 1e-9)
}

func TestForestRejectsFeatureMismatch(t *testing.T) {
	_, err := LoadForest(strings.NewReader(regressorJSON), testFeatures[:6])
	assert.ErrorIs(t, err, ErrFeatureMismatch)

	f, err := LoadForest(strings.NewReader(regressorJSON), testFeatures)
	require.NoError(t, err)
	_, err = f.Predict(context.Background(), [][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, ErrFeatureMismatch)
}

func TestForestRejectsBrokenTrees(t *testing.T) {
	src := strings.Replace(regressorJSON, `"children_right": [2, -1, -1], "feature": [0`, `"children_right": [9, -1, -1], "feature": [0`, 1)
	_, err := LoadForest(strings.NewReader(src), testFeatures)
	assert.Error(t, err)

	_, err = LoadForest(strings.NewReader(`{"kind":"svm"}`), testFeatures)
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestForestPredictProba(t *testing.T) {
	f, err := LoadForest(strings.NewReader(classifierJSON), testFeatures)
	require.NoError(t, err)

	got, err := f.PredictProba(context.Background(), [][]float64{row(0, 1, 2), row(0, 1, 9)})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDeltaSlice(t, []float64{0.8, 0.2}, got[0], 1e-9)
	assert.InDeltaSlice(t, []float64{0.25, 0.75}, got[1], 1e-9)

	_, err = f.Predict(context.Background(), [][]float64{row(0, 1, 2)})
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestRemoteModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req remoteRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, testFeatures, req.Features)

		switch r.URL.Path {
		case "/predict":
			preds := make([]float64, len(req.Rows))
			for i, x := range req.Rows {
				preds[i] = x[0] * 2
			}
			json.NewEncoder(w).Encode(predictResponse{Predictions: preds})
		case "/predict_proba":
			json.NewEncoder(w).Encode(probaResponse{Probabilities: [][]float64{{0.3, 0.7}}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	m := NewRemoteModel(srv.URL+"/", testFeatures, time.Second)

	preds, err := m.Predict(context.Background(), [][]float64{row(1, 1, 0), row(2, 1, 0)})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, preds)

	probs, err := m.PredictProba(context.Background(), [][]float64{row(1, 1, 0)})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.3, 0.7}}, probs)

	// length mismatch
	_, err = m.PredictProba(context.Background(), [][]float64{row(1, 1, 0), row(1, 1, 0)})
	assert.Error(t, err)
}

func TestRemoteModelPropagatesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewRemoteModel(srv.URL, testFeatures, time.Second).Predict(context.Background(), [][]float64{row(1, 1, 0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestRemoteModelHonoursCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRemoteModel(srv.URL, testFeatures, time.Second).Predict(ctx, [][]float64{row(1, 1, 0)})
	assert.ErrorIs(t, err, context.Canceled)
}

const clusterModelFixtureJSON = `{"eps_km": 1.0, "core_points": [[-2.190, -79.890, 0], [-2.100, -79.800, -1], [-0.220, -78.510, 1]]}`

func TestClusterModelMatch(t *testing.T) {
	m, err := LoadClusterModel(strings.NewReader(clusterModelFixtureJSON),
		strings.NewReader(`{"0": {"delito_comun": "ROBO", "total": 12}, "1": {"delito_comun": "HURTO"}}`))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())

	match, ok := m.Match(spatial.Point{Lat: -2.192, Lon: -79.891})
	require.True(t, ok)
	assert.Equal(t, 0, match.Label)
	assert.Equal(t, "ROBO", match.Profile["delito_comun"])
	assert.Less(t, match.DistanceKm, 1.0)

	// nearest sample is noise
	_, ok = m.Match(spatial.Point{Lat: -2.1, Lon: -79.8})
	assert.False(t, ok)

	// too far from everything
	_, ok = m.Match(spatial.Point{Lat: 1.0, Lon: -77.0})
	assert.False(t, ok)
}

func TestClusterModelMatchDoesNotShareProfile(t *testing.T) {
	m, err := LoadClusterModel(strings.NewReader(clusterModelFixtureJSON), strings.NewReader(`{"0": {"total": 1}}`))
	require.NoError(t, err)

	a, ok := m.Match(spatial.Point{Lat: -2.19, Lon: -79.89})
	require.True(t, ok)
	a.Profile["total"] = 99

	b, _ := m.Match(spatial.Point{Lat: -2.19, Lon: -79.89})
	assert.Equal(t, float64(1), b.Profile["total"])
}

func TestLoadClusterModelRejectsBadEps(t *testing.T) {
	_, err := LoadClusterModel(strings.NewReader(`{"eps_km": 0, "core_points": []}`), nil)
	assert.Error(t, err)
}
