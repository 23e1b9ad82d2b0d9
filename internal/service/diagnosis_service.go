package service

import (
	"fmt"

	"github.com/jengzang/risk-heatmap-go/internal/inference"
	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/spatial"
	"github.com/jengzang/risk-heatmap-go/internal/stats"
)

const noHistoryMessage = "Sin antecedentes cercanos."

// DiagnosisService matches a location against known apprehension clusters
type DiagnosisService struct {
	model *inference.ClusterModel
}

// NewDiagnosisService creates a diagnosis service. model may be nil.
func NewDiagnosisService(model *inference.ClusterModel) *DiagnosisService {
	return &DiagnosisService{model: model}
}

// Diagnose returns the profile of the cluster the location belongs to, if any
func (s *DiagnosisService) Diagnose(req models.DiagnosisRequest) (*models.Diagnosis, error) {
	if req.Lat == nil || req.Lon == nil {
		return nil, missing("lat,lon", "Latitud y longitud son requeridas")
	}
	if !spatial.ValidLatLng(*req.Lat, *req.Lon) {
		return nil, &ValidationError{Field: "lat,lon", Message: "Coordenadas no válidas"}
	}
	if s.model == nil {
		return nil, fmt.Errorf("%w: cluster model", ErrModelUnavailable)
	}

	match, ok := s.model.Match(spatial.Point{Lat: *req.Lat, Lon: *req.Lon})
	if !ok {
		return &models.Diagnosis{Found: false, Message: noHistoryMessage}, nil
	}

	profile := match.Profile
	profile["cluster"] = match.Label
	profile["distancia_km"] = stats.Round(match.DistanceKm, 3)
	return &models.Diagnosis{Found: true, Profile: profile}, nil
}
