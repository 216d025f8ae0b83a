package routes

import (
	"github.com/gin-gonic/gin"

	"pitwall/internal/observability"
)

// RegisterOpsRoutes exposes the dashboard's own Prometheus metrics.
func RegisterOpsRoutes(r *gin.Engine, obs *observability.Observer) {
	r.GET("/metrics", gin.WrapH(obs.Handler()))
}
