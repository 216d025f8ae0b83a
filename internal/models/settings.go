package models

import "fmt"

// DashboardSettings are the runtime-tunable knobs exposed on /api/config.
// They live in memory only and reset to defaults on restart.
type DashboardSettings struct {
	PriorityWeights      QueueWeights `json:"priority_weights"`
	FecRedundancy        uint32       `json:"fec_redundancy"`
	BufferSize           uint32       `json:"buffer_size"`
	CompressionAlgorithm string       `json:"compression_algorithm"`
	IntegrityCheck       string       `json:"integrity_check"`
	PreferredRoute       RouteChoice  `json:"preferred_route"`
}

// DefaultDashboardSettings returns the settings the engine boots with.
func DefaultDashboardSettings() DashboardSettings {
	return DashboardSettings{
		PriorityWeights:      QueueWeights{P0: 50, P1: 30, P2: 20},
		FecRedundancy:        30,
		BufferSize:           1000,
		CompressionAlgorithm: "Auto",
		IntegrityCheck:       "Blake3",
		PreferredRoute:       RouteWiFi,
	}
}

// compressionChoices includes Auto on top of the metric codecs: Auto lets
// the chunker pick per chunk, so it is a config value but never a metric.
var compressionChoices = map[string]bool{
	"Auto": true,
	"None": true,
	"LZ4":  true,
	"Zstd": true,
}

var integrityChoices = map[string]bool{
	"Blake3": true,
	"SHA256": true,
	"CRC32":  true,
}

// IntegrityCheckNames lists the supported chunk digest methods.
func IntegrityCheckNames() []string {
	return []string{"Blake3", "SHA256", "CRC32"}
}

// Validate rejects settings the transfer engine cannot apply.
func (s DashboardSettings) Validate() error {
	if !compressionChoices[s.CompressionAlgorithm] {
		return fmt.Errorf("unknown compression algorithm %q", s.CompressionAlgorithm)
	}
	if !integrityChoices[s.IntegrityCheck] {
		return fmt.Errorf("unknown integrity check %q", s.IntegrityCheck)
	}
	if s.FecRedundancy > 90 {
		return fmt.Errorf("fec redundancy %d%% exceeds the 90%% ceiling", s.FecRedundancy)
	}
	if s.BufferSize == 0 {
		return fmt.Errorf("buffer size must be positive")
	}
	if s.PriorityWeights.P0+s.PriorityWeights.P1+s.PriorityWeights.P2 == 0 {
		return fmt.Errorf("priority weights must not all be zero")
	}
	return nil
}
