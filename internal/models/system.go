package models

import "time"

// SystemStatus reports the dashboard host itself, not the transfer
// engine. Fields a probe could not read stay at their zero value.
type SystemStatus struct {
	CPUPercent        float64   `json:"cpu_percent"`
	CoreCount         int       `json:"core_count"`
	MemoryUsedMB      float64   `json:"memory_used_mb"`
	MemoryTotalMB     float64   `json:"memory_total_mb"`
	MemoryPercent     float64   `json:"memory_percent"`
	ProcessCPUPercent float64   `json:"process_cpu_percent"`
	ProcessRSSMB      float64   `json:"process_rss_mb"`
	Goroutines        int       `json:"goroutines"`
	CollectedAt       time.Time `json:"collected_at"`
}
