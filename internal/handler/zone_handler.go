package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/risk-heatmap-go/internal/models"
	"github.com/jengzang/risk-heatmap-go/internal/zones"
	"github.com/jengzang/risk-heatmap-go/pkg/response"
)

// ZonesResponse is the body of GET /api/zonas
type ZonesResponse struct {
	Zones   []string               `json:"zonas"`
	Details map[string]models.Zone `json:"detalles"`
}

// ZoneHandler serves the zone registry
type ZoneHandler struct {
	registry *zones.Registry
}

// NewZoneHandler creates a new zone handler
func NewZoneHandler(registry *zones.Registry) *ZoneHandler {
	return &ZoneHandler{registry: registry}
}

// List handles GET /api/zonas
func (h *ZoneHandler) List(c *gin.Context) {
	response.Success(c, ZonesResponse{
		Zones:   h.registry.Names(),
		Details: h.registry.All(),
	})
}
