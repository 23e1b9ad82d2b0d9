package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/risk-heatmap-go/internal/models"
)

var guayas = models.Zone{Name: "Guayas", LatMin: -2.6, LatMax: -1.5, LonMin: -80.3, LonMax: -79.5}

func TestFilterByBoundInclusive(t *testing.T) {
	points := []Point{
		{Lat: -2.6, Lon: -80.3}, // corner
		{Lat: -1.5, Lon: -79.5}, // opposite corner
		{Lat: -2.0, Lon: -79.9},
		{Lat: -1.49, Lon: -79.9}, // just north
		{Lat: -2.0, Lon: -80.31}, // just west
	}

	got := FilterByBound(points, ZoneBound(guayas))

	assert.Equal(t, points[:3], got)
}

func TestFilterByBoundIdempotent(t *testing.T) {
	points := []Point{{-2.0, -79.9}, {0.1, -78.5}, {-2.5, -80.0}}
	b := ZoneBound(guayas)

	once := FilterByBound(points, b)
	twice := FilterByBound(once, b)

	assert.Equal(t, once, twice)
}

func TestFilterByBoundEmpty(t *testing.T) {
	got := FilterByBound([]Point{{Lat: 10, Lon: 10}}, ZoneBound(guayas))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCentroid(t *testing.T) {
	c, ok := Centroid([]Point{{0, 0}, {2, 4}})
	require.True(t, ok)
	assert.Equal(t, Point{Lat: 1, Lon: 2}, c)

	_, ok = Centroid([]Point{})
	assert.False(t, ok)
}

func TestNearest(t *testing.T) {
	items := []Point{{0, 0}, {1, 1}, {-1, -1}}

	idx, ok := Nearest(Point{Lat: 0.8, Lon: 0.9}, items)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	// tie keeps the first candidate
	idx, _ = Nearest(Point{}, []Point{{1, 0}, {-1, 0}})
	assert.Equal(t, 0, idx)

	_, ok = Nearest(Point{}, []Point{})
	assert.False(t, ok)
}

func TestHaversine(t *testing.T) {
	// one degree of latitude ≈ 111.19 km
	d := HaversineKm(Point{Lat: 0, Lon: 0}, Point{Lat: 1, Lon: 0})
	assert.InDelta(t, 111.19, d, 0.05)
	assert.Equal(t, 0.0, HaversineDistance(-2.1, -79.9, -2.1, -79.9))
}

func TestValidLatLng(t *testing.T) {
	assert.True(t, ValidLatLng(-2.19, -79.88))
	assert.False(t, ValidLatLng(91, 0))
	assert.False(t, ValidLatLng(0, 181))
}
