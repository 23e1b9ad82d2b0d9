package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/risk-heatmap-go/internal/service"
	"github.com/jengzang/risk-heatmap-go/pkg/response"
)

// writeError maps service errors onto HTTP statuses
func writeError(c *gin.Context, err error) {
	c.Error(err)

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(c, verr.Message)
	case errors.Is(err, service.ErrUnknownZone):
		response.BadRequest(c, service.ErrUnknownZone.Error())
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, "Fecha no válida")
	case errors.Is(err, service.ErrNoData):
		response.NotFound(c, service.ErrNoData.Error())
	case errors.Is(err, service.ErrModelUnavailable):
		response.ServiceUnavailable(c, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}

// bindJSON decodes the request body. An empty body leaves dest untouched so
// the service reports the missing fields.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		c.Error(err)
		response.BadRequest(c, "Cuerpo JSON no válido")
		return false
	}
	return true
}
