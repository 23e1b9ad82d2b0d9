package models

import "time"

// PredictionLog is an audit entry written after each zone prediction
type PredictionLog struct {
	ID         string    `json:"id" db:"id"`
	Zone       string    `json:"zona" db:"zone"`
	Date       string    `json:"fecha" db:"date"`
	Points     int       `json:"puntos" db:"points"`
	RiskMean   float64   `json:"riesgo_promedio" db:"risk_mean"`
	RiskLevel  string    `json:"nivel_riesgo" db:"risk_level"`
	DurationMs int64     `json:"duracion_ms" db:"duration_ms"`
	Cached     bool      `json:"cache" db:"cached"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
