package models

// HeatmapPoint is a [lat, lon, intensity] triple as consumed by Leaflet.heat
type HeatmapPoint [3]float64

// RiskStatistics summarizes the raw scores of a zone
type RiskStatistics struct {
	RiskMin  float64 `json:"riesgo_min"`
	RiskMax  float64 `json:"riesgo_max"`
	RiskMean float64 `json:"riesgo_promedio"`
}

// Centroid is the mean grid position of a zone's cells
type Centroid struct {
	Lat float64 `json:"lat_grid"`
	Lon float64 `json:"lon_grid"`
}

// PredictionResponse is the body returned by POST /api/predecir
type PredictionResponse struct {
	Points            []HeatmapPoint    `json:"datos"`
	Count             int               `json:"puntos"`
	Statistics        RiskStatistics    `json:"estadisticas"`
	Zone              Centroid          `json:"zona"`
	Month             string            `json:"fecha"` // YYYY-MM
	PredictedEvents   float64           `json:"prediccion_eventos"`
	RiskLevel         string            `json:"nivel_riesgo"`
	InfractionProfile []InfractionShare `json:"perfil_infracciones"`
	Hotspots          []Hotspot         `json:"hotspots"`
}
