package models

import "time"

// Snapshot is one full reading of the transfer engine's telemetry.
// It is a value type: once handed to the collector it must not be
// modified, so readers can copy it without any further locking.
type Snapshot struct {
	Timestamp   time.Time          `json:"timestamp"`
	Network     NetworkMetrics     `json:"network"`
	AIDecision  AIDecision         `json:"ai_decision"`
	Transport   TransportMetrics   `json:"transport"`
	Compression CompressionMetrics `json:"compression"`
	Performance PerformanceMetrics `json:"performance"`
}

// NetworkMetrics describes the measured state of the active link.
type NetworkMetrics struct {
	RTTMs             float64 `json:"rtt_ms"`
	JitterMs          float64 `json:"jitter_ms"`
	LossRate          float64 `json:"loss_rate"`
	ThroughputMbps    float64 `json:"throughput_mbps"`
	SignalDBm         float64 `json:"signal_dbm"`
	StarlinkLatencyMs float64 `json:"starlink_latency_ms,omitzero"`
	ActivePath        string  `json:"active_path"`
	QualityScore      float64 `json:"quality_score"`
}

// AIDecision is the routing/scheduling verdict for the current window.
type AIDecision struct {
	Route               RouteChoice      `json:"route"`
	Severity            Severity         `json:"severity"`
	ShouldSend          bool             `json:"should_send"`
	SimilarityScore     float64          `json:"similarity_score"`
	Hint                OptimizationHint `json:"optimization_hint"`
	CongestionPredicted bool             `json:"congestion_predicted"`
	QueueWeights        QueueWeights     `json:"queue_weights"`
}

// QueueWeights are the WFQ scheduler weights per priority class.
type QueueWeights struct {
	P0 uint32 `json:"p0"`
	P1 uint32 `json:"p1"`
	P2 uint32 `json:"p2"`
}

// TransportMetrics carries connection state and cumulative packet counters.
type TransportMetrics struct {
	State            ConnState `json:"state"`
	FecEnabled       bool      `json:"fec_enabled"`
	Fec              FecConfig `json:"fec"`
	PacketsSent      uint64    `json:"packets_sent"`
	PacketsReceived  uint64    `json:"packets_received"`
	PacketsRecovered uint64    `json:"packets_recovered"`
	PacketsLost      uint64    `json:"packets_lost"`
	HandoverCount    uint64    `json:"handover_count"`
	LastHandover     time.Time `json:"last_handover,omitzero"`
}

// FecConfig is the erasure coding geometry in effect.
type FecConfig struct {
	DataShards        uint32       `json:"data_shards"`
	ParityShards      uint32       `json:"parity_shards"`
	Algorithm         FecAlgorithm `json:"algorithm"`
	RedundancyPercent float64      `json:"redundancy_percent"`
}

// CompressionMetrics summarizes the chunk compressor's work so far.
type CompressionMetrics struct {
	Algorithm         CompressionAlgo `json:"algorithm"`
	Ratio             float64         `json:"ratio"`
	BytesUncompressed uint64          `json:"bytes_uncompressed"`
	BytesCompressed   uint64          `json:"bytes_compressed"`
	LZ4Chunks         uint64          `json:"lz4_chunks"`
	ZstdChunks        uint64          `json:"zstd_chunks"`
	AvgTimeMs         float64         `json:"avg_time_ms"`
}

// PerformanceMetrics are the engine's throughput and timing totals.
type PerformanceMetrics struct {
	ChunksProcessed  uint64  `json:"chunks_processed"`
	AvgProcessingMs  float64 `json:"avg_processing_ms"`
	LastProcessingMs float64 `json:"last_processing_ms"`
	AIInferenceMs    float64 `json:"ai_inference_ms"`
	BytesSent        uint64  `json:"bytes_sent"`
	BytesReceived    uint64  `json:"bytes_received"`
	UptimeSeconds    uint64  `json:"uptime_seconds"`
}
