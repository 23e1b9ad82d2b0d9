package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/risk-heatmap-go/pkg/response"
)

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health handles GET /api/health
func Health(c *gin.Context) {
	response.Success(c, HealthResponse{Status: "OK", Message: "API funcionando correctamente"})
}
