package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/service"
	"github.com/jengzang/risk-heatmap-go/pkg/response"
)

// PointHandler handles single-location requests
type PointHandler struct {
	points    *service.PointService
	diagnosis *service.DiagnosisService
}

// NewPointHandler creates a new point handler
func NewPointHandler(points *service.PointService, diagnosis *service.DiagnosisService) *PointHandler {
	return &PointHandler{points: points, diagnosis: diagnosis}
}

// PredictPoint handles POST /api/predecir_punto
func (h *PointHandler) PredictPoint(c *gin.Context) {
	var req models.PointRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.points.Predict(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, out)
}

// Diagnose handles POST /api/diagnosticar
func (h *PointHandler) Diagnose(c *gin.Context) {
	var req models.DiagnosisRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.diagnosis.Diagnose(req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, out)
}
