package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Timestamp: time.Date(2026, 4, 12, 14, 30, 0, 0, time.UTC),
		Network: NetworkMetrics{
			RTTMs:             18.4,
			JitterMs:          2.1,
			LossRate:          0.002,
			ThroughputMbps:    142.0,
			SignalDBm:         -48,
			StarlinkLatencyMs: 39.0,
			ActivePath:        "starlink0",
			QualityScore:      0.91,
		},
		AIDecision: AIDecision{
			Route:           RouteStarlink,
			Severity:        SeverityLow,
			ShouldSend:      true,
			SimilarityScore: 0.34,
			Hint:            HintSendDelta,
			QueueWeights:    QueueWeights{P0: 50, P1: 30, P2: 20},
		},
		Transport: TransportMetrics{
			State:         StateConnected,
			FecEnabled:    true,
			Fec:           FecConfig{DataShards: 8, ParityShards: 3, Algorithm: FecReedSolomon, RedundancyPercent: 27.3},
			PacketsSent:   12000,
			PacketsLost:   14,
			HandoverCount: 2,
			LastHandover:  time.Date(2026, 4, 12, 14, 12, 0, 0, time.UTC),
		},
		Compression: CompressionMetrics{
			Algorithm:         CompressionZstd,
			Ratio:             3.2,
			BytesUncompressed: 9_000_000,
			BytesCompressed:   2_812_500,
			ZstdChunks:        412,
			AvgTimeMs:         1.8,
		},
		Performance: PerformanceMetrics{
			ChunksProcessed: 412,
			AvgProcessingMs: 4.2,
			AIInferenceMs:   0.9,
			BytesSent:       2_900_000,
			UptimeSeconds:   3610,
		},
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	in := sampleSnapshot()

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Snapshot
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !out.Timestamp.Equal(in.Timestamp) {
		t.Errorf("timestamp: got %v, want %v", out.Timestamp, in.Timestamp)
	}
	if out.Network != in.Network {
		t.Errorf("network: got %+v, want %+v", out.Network, in.Network)
	}
	if out.AIDecision != in.AIDecision {
		t.Errorf("ai_decision: got %+v, want %+v", out.AIDecision, in.AIDecision)
	}
	if !out.Transport.LastHandover.Equal(in.Transport.LastHandover) {
		t.Errorf("last_handover: got %v, want %v", out.Transport.LastHandover, in.Transport.LastHandover)
	}
	outTr, inTr := out.Transport, in.Transport
	outTr.LastHandover, inTr.LastHandover = time.Time{}, time.Time{}
	if outTr != inTr {
		t.Errorf("transport: got %+v, want %+v", outTr, inTr)
	}
	if out.Compression != in.Compression {
		t.Errorf("compression: got %+v, want %+v", out.Compression, in.Compression)
	}
	if out.Performance != in.Performance {
		t.Errorf("performance: got %+v, want %+v", out.Performance, in.Performance)
	}
}

func TestSnapshotWireKeys(t *testing.T) {
	data, err := json.Marshal(sampleSnapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)

	for _, key := range []string{
		`"rtt_ms":18.4`,
		`"signal_dbm":-48`,
		`"starlink_latency_ms":39`,
		`"route":"Starlink"`,
		`"severity":"Low"`,
		`"optimization_hint":"SendDelta"`,
		`"state":"Connected"`,
		`"algorithm":"ReedSolomon"`,
		`"handover_count":2`,
		`"queue_weights":{"p0":50,"p1":30,"p2":20}`,
	} {
		if !strings.Contains(body, key) {
			t.Errorf("expected wire body to contain %s\nbody: %s", key, body)
		}
	}
}

// Optional readings are dropped from the wire body when unmeasured,
// rather than encoded as zero values a client would mistake for data.
func TestSnapshotOmitsUnmeasuredFields(t *testing.T) {
	snap := sampleSnapshot()
	snap.Network.StarlinkLatencyMs = 0
	snap.Transport.LastHandover = time.Time{}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)

	if strings.Contains(body, "starlink_latency_ms") {
		t.Errorf("expected starlink_latency_ms omitted when zero\nbody: %s", body)
	}
	if strings.Contains(body, "last_handover") {
		t.Errorf("expected last_handover omitted when never set\nbody: %s", body)
	}
}

func TestSnapshotDecodesProducerPayload(t *testing.T) {
	payload := `{
		"timestamp": "2026-04-12T14:30:00Z",
		"network": {"rtt_ms": 42.0, "jitter_ms": 1.2, "loss_rate": 0.001, "throughput_mbps": 95.5, "signal_dbm": -52, "active_path": "wlan0", "quality_score": 0.8},
		"ai_decision": {"route": "WiFi", "severity": "High", "should_send": true, "similarity_score": 0.9, "optimization_hint": "SendFull", "congestion_predicted": false, "queue_weights": {"p0": 50, "p1": 30, "p2": 20}},
		"transport": {"state": "Connected", "fec_enabled": true, "fec": {"data_shards": 8, "parity_shards": 3, "algorithm": "ReedSolomon", "redundancy_percent": 27.3}, "packets_sent": 10, "packets_received": 9, "packets_recovered": 1, "packets_lost": 0, "handover_count": 3},
		"compression": {"algorithm": "LZ4", "ratio": 2.0, "bytes_uncompressed": 100, "bytes_compressed": 50, "lz4_chunks": 1, "zstd_chunks": 0, "avg_time_ms": 0.4},
		"performance": {"chunks_processed": 1, "avg_processing_ms": 3.0, "last_processing_ms": 3.0, "ai_inference_ms": 0.5, "bytes_sent": 50, "bytes_received": 10, "uptime_seconds": 60}
	}`

	var snap Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if snap.Network.RTTMs != 42.0 {
		t.Errorf("rtt_ms: got %v, want 42", snap.Network.RTTMs)
	}
	if snap.Transport.HandoverCount != 3 {
		t.Errorf("handover_count: got %d, want 3", snap.Transport.HandoverCount)
	}
	if snap.AIDecision.Route != RouteWiFi {
		t.Errorf("route: got %v, want WiFi", snap.AIDecision.Route)
	}
	if snap.Network.StarlinkLatencyMs != 0 {
		t.Errorf("starlink_latency_ms: expected zero when absent, got %v", snap.Network.StarlinkLatencyMs)
	}
	if !snap.Transport.LastHandover.IsZero() {
		t.Errorf("last_handover: expected zero when absent, got %v", snap.Transport.LastHandover)
	}
}
