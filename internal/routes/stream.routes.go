package routes

import (
	"github.com/gin-gonic/gin"

	"pitwall/internal/controllers"
)

// RegisterStreamRoutes registers the WebSocket endpoint.
// Stream tokens are issued via the CLI (no HTTP endpoint mints them).
func RegisterStreamRoutes(r *gin.Engine, wc *controllers.StreamController) {
	r.GET("/ws", wc.HandleWebSocket)
}
