package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/service"
	"github.com/jengzang/risk-heatmap-go/pkg/response"
)

// HistoryHandler serves the prediction audit log
type HistoryHandler struct {
	service *service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(service *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// List handles GET /api/historial
func (h *HistoryHandler) List(c *gin.Context) {
	var filter models.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(err)
		response.BadRequest(c, "Parámetros no válidos")
		return
	}

	logs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":  logs,
		"count": len(logs),
	})
}
