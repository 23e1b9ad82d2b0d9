package models

import "math"

// GridPrecision is the number of decimals a coordinate keeps once quantized
// into a grid cell (0.001° ≈ 111 m at the equator).
const GridPrecision = 3

const gridScale = 1000.0

// GridKey identifies a grid cell by its coordinates in thousandths of a degree.
// Integer keys keep map lookups stable where float keys would not be.
type GridKey struct {
	LatE3 int32
	LonE3 int32
}

// NewGridKey quantizes a raw coordinate pair into its grid cell key
func NewGridKey(lat, lon float64) GridKey {
	return GridKey{
		LatE3: int32(math.Round(lat * gridScale)),
		LonE3: int32(math.Round(lon * gridScale)),
	}
}

// Lat returns the cell latitude in degrees
func (k GridKey) Lat() float64 { return float64(k.LatE3) / gridScale }

// Lon returns the cell longitude in degrees
func (k GridKey) Lon() float64 { return float64(k.LonE3) / gridScale }

// GridCell is one row of the prediction grid. Field order mirrors the feature
// contract the risk model was trained on.
type GridCell struct {
	Lat              float64 `json:"lat_grid"`
	Lon              float64 `json:"lon_grid"`
	Month            int     `json:"mes"`
	Day              int     `json:"dia"`
	DayOfWeek        int     `json:"dia_semana"` // 0=Monday ... 6=Sunday
	SevereCrimeCount float64 `json:"conteo_delitos_graves"`
	RiskCallCount    float64 `json:"conteo_llamadas_riesgo"`
}

// Key returns the grid key of the cell
func (c GridCell) Key() GridKey {
	return NewGridKey(c.Lat, c.Lon)
}

// Features returns the model input vector for the cell
func (c GridCell) Features() []float64 {
	return []float64{
		c.Lat,
		c.Lon,
		float64(c.Month),
		float64(c.Day),
		float64(c.DayOfWeek),
		c.SevereCrimeCount,
		c.RiskCallCount,
	}
}

// ScoredCell is a grid cell after inference and normalization
type ScoredCell struct {
	GridCell
	RiskScore float64 `json:"prediccion_riesgo"` // Raw model output
	RiskNorm  float64 `json:"riesgo_norm"`       // Normalized 0~1
}

// Coordinates implements spatial.Located
func (c ScoredCell) Coordinates() (float64, float64) {
	return c.Lat, c.Lon
}
