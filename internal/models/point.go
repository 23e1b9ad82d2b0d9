package models

// PointPrediction is the body returned by POST /api/predecir_punto
type PointPrediction struct {
	Lat              float64           `json:"lat"`
	Lon              float64           `json:"lon"`
	LatGrid          float64           `json:"lat_grid"`
	LonGrid          float64           `json:"lon_grid"`
	Date             string            `json:"fecha"`
	Classification   string            `json:"clasificacion"`
	ProbabilityHigh  float64           `json:"probabilidad_alto"`
	ProbabilityLow   float64           `json:"probabilidad_bajo"`
	Uncertainty      float64           `json:"incertidumbre"`
	Entropy          float64           `json:"entropia"`
	HistoricalEvents float64           `json:"eventos_historicos"`
	HistoricalSevere float64           `json:"delitos_graves_historicos"`
	Cluster          *int              `json:"cluster,omitempty"`
	RiskLevel        string            `json:"nivel_riesgo,omitempty"`
	Infractions      []InfractionShare `json:"infracciones,omitempty"`
}

// Diagnosis is the body returned by POST /api/diagnosticar
type Diagnosis struct {
	Found   bool           `json:"encontrado"`
	Profile map[string]any `json:"perfil,omitempty"`
	Message string         `json:"mensaje,omitempty"`
}
