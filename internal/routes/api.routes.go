package routes

import (
	"github.com/gin-gonic/gin"

	"pitwall/internal/controllers"
)

// RegisterAPIRoutes mounts the JSON read API under /api.
func RegisterAPIRoutes(r *gin.Engine, mc *controllers.MetricsController, sc *controllers.StatusController, yc *controllers.SystemController) {
	api := r.Group("/api")
	{
		metrics := api.Group("/metrics")
		{
			metrics.GET("/current", mc.GetCurrent)
			metrics.GET("/history", mc.GetHistory)
		}

		api.GET("/health", sc.GetHealth)
		api.GET("/status", sc.GetStatus)
		api.GET("/network", sc.GetNetwork)
		api.GET("/methods", sc.GetMethods)
		api.GET("/config", sc.GetConfig)
		api.POST("/config", sc.UpdateConfig)
		api.GET("/system", yc.GetSystem)
	}
}
