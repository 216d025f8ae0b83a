package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pitwall/internal/services"
)

// SystemController exposes the dashboard host's own resource usage.
type SystemController struct {
	probe *services.SystemProbe
}

func NewSystemController(probe *services.SystemProbe) *SystemController {
	return &SystemController{probe: probe}
}

// GetSystem reports host CPU/memory plus this process's footprint.
func (yc *SystemController) GetSystem(c *gin.Context) {
	c.JSON(http.StatusOK, yc.probe.Status())
}
