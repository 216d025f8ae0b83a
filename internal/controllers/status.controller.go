package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pitwall/internal/collector"
	"pitwall/internal/models"
	"pitwall/internal/services"
)

// StatusController serves the summary, health, and configuration
// endpoints around the core metrics API.
type StatusController struct {
	col      *collector.Collector
	settings *services.SettingsStore
	started  time.Time
}

func NewStatusController(col *collector.Collector, settings *services.SettingsStore, started time.Time) *StatusController {
	return &StatusController{col: col, settings: settings, started: started}
}

// GetHealth is the liveness probe. It answers ok whenever the process
// serves requests; having no data yet is still healthy.
func (sc *StatusController) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": uint64(time.Since(sc.started).Seconds()),
	})
}

// GetStatus summarizes the latest snapshot for the overview widgets.
func (sc *StatusController) GetStatus(c *gin.Context) {
	snap, ok := sc.col.Current()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "no_data"})
		return
	}

	stats := sc.col.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":           "running",
		"connection_state": snap.Transport.State,
		"active_path":      snap.Network.ActivePath,
		"route":            snap.AIDecision.Route,
		"handover_count":   snap.Transport.HandoverCount,
		"snapshots_stored": stats.HistoryLen,
		"updates_total":    stats.Updates,
		"last_update":      stats.LastTimestamp,
	})
}

// GetNetwork returns just the network sub-record of the latest snapshot.
func (sc *StatusController) GetNetwork(c *gin.Context) {
	snap, ok := sc.col.Current()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "no_data"})
		return
	}
	c.JSON(http.StatusOK, snap.Network)
}

// GetMethods lists the algorithm choices the engine understands, so
// the UI can build its pickers without hardcoding them.
func (sc *StatusController) GetMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"compression":        models.CompressionAlgoNames(),
		"fec":                models.FecAlgorithmNames(),
		"routes":             models.RouteChoiceNames(),
		"severities":         models.SeverityNames(),
		"optimization_hints": models.OptimizationHintNames(),
		"connection_states":  models.ConnStateNames(),
		"integrity":          models.IntegrityCheckNames(),
	})
}

// GetConfig returns the current dashboard settings.
func (sc *StatusController) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, sc.settings.Get())
}

// UpdateConfig replaces the dashboard settings. The document is
// validated as a whole; a rejected update leaves the old settings
// in place.
func (sc *StatusController) UpdateConfig(c *gin.Context) {
	var next models.DashboardSettings
	if err := c.ShouldBindJSON(&next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload: " + err.Error()})
		return
	}

	if err := sc.settings.Update(next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "config": sc.settings.Get()})
}
