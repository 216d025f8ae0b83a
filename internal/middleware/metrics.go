package middleware

import (
	"github.com/gin-gonic/gin"

	"pitwall/internal/observability"
)

// MetricsMiddleware counts every served request by route template and
// status. Unmatched paths share one label to keep cardinality bounded.
func MetricsMiddleware(obs *observability.Observer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		obs.RecordRequest(path, c.Writer.Status())
	}
}
