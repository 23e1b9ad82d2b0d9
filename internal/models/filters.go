package models

// PredictionRequest is the body of POST /api/predecir
type PredictionRequest struct {
	Date string `json:"fecha"`
	Zone string `json:"zona"`
}

// PointRequest is the body of POST /api/predecir_punto.
// Pointers distinguish an absent coordinate from 0.
type PointRequest struct {
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
	Date string   `json:"fecha"`
}

// DiagnosisRequest is the body of POST /api/diagnosticar
type DiagnosisRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// HistoryFilter represents query parameters for GET /api/historial
type HistoryFilter struct {
	Zone  string `form:"zona"`
	Limit int    `form:"limit"`
}
