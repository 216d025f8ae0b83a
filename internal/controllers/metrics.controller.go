package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pitwall/internal/collector"
)

// MetricsController serves the snapshot read API.
type MetricsController struct {
	col          *collector.Collector
	defaultLimit int
}

// NewMetricsController wires the controller to its collector. The
// default limit applies when the history query carries no usable one.
func NewMetricsController(col *collector.Collector, defaultLimit int) *MetricsController {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	return &MetricsController{col: col, defaultLimit: defaultLimit}
}

// GetCurrent returns the latest snapshot, or a JSON null when nothing
// has been recorded yet. An empty store is a normal state, so the
// status is 200 either way.
func (mc *MetricsController) GetCurrent(c *gin.Context) {
	var payload interface{}
	if snap, ok := mc.col.Current(); ok {
		payload = snap
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[api] error marshaling current snapshot: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode snapshot"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetHistory returns the most recent snapshots oldest-first.
// Query params: limit (default 100). A malformed or non-positive limit
// silently falls back to the default rather than erroring.
func (mc *MetricsController) GetHistory(c *gin.Context) {
	limit := mc.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		} else {
			log.Printf("[api] invalid history limit %q, using default %d", raw, mc.defaultLimit)
		}
	}

	snaps := mc.col.History(limit)

	body, err := json.Marshal(snaps)
	if err != nil {
		log.Printf("[api] error marshaling history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode history"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
