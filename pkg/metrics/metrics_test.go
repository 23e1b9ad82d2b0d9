package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	m := New()
	m.ObserveHTTP("/api/predecir", http.MethodPost, 200, 10*time.Millisecond)
	m.ObserveHTTP("/api/predecir", http.MethodPost, 200, 20*time.Millisecond)
	m.AddCellsScored(42)
	m.CacheResult("hit")
	m.ObserveInference("regressor", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/predecir", "POST", "200")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.cellsScored))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("hit")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP("/", "GET", 200, time.Second)
		m.ObserveInference("regressor", time.Second)
		m.AddCellsScored(1)
		m.CacheResult("miss")
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.AddCellsScored(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "riesgo_cells_scored_total 3")
}
