package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/service"
	"github.com/jengzang/risk-heatmap-go/pkg/response"
)

// PredictionHandler handles HTTP requests for zone heatmaps
type PredictionHandler struct {
	service *service.PredictionService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(service *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{service: service}
}

// Predict handles POST /api/predecir
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req models.PredictionRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Predict(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, resp)
}

// PredictGeoJSON handles POST /api/predecir/geojson
func (h *PredictionHandler) PredictGeoJSON(c *gin.Context) {
	var req models.PredictionRequest
	if !bindJSON(c, &req) {
		return
	}

	fc, err := h.service.PredictGeoJSON(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "application/geo+json")
	response.Success(c, fc)
}
