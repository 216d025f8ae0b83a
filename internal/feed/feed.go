// Package feed generates synthetic telemetry so the dashboard can be
// run and demoed without a live transfer engine behind it.
package feed

import (
	"context"
	"math/rand/v2"
	"time"

	"pitwall/internal/collector"
	"pitwall/internal/models"
)

var pathNames = map[models.RouteChoice]string{
	models.RouteWiFi:      "wlan0",
	models.RouteStarlink:  "starlink0",
	models.RouteMultipath: "bond0",
	models.RouteFiveG:     "wwan0",
}

// Runner pushes one plausible snapshot per interval into the
// collector. Link metrics drift as a random walk; all cumulative
// counters only ever grow.
type Runner struct {
	col      *collector.Collector
	interval time.Duration
	rng      *rand.Rand
	started  time.Time

	rtt        float64
	jitter     float64
	loss       float64
	throughput float64
	quality    float64
	route      models.RouteChoice
	handover   bool

	packetsSent      uint64
	packetsReceived  uint64
	packetsRecovered uint64
	packetsLost      uint64
	handoverCount    uint64
	lastHandover     time.Time

	bytesUncompressed uint64
	bytesCompressed   uint64
	lz4Chunks         uint64
	zstdChunks        uint64

	chunksProcessed uint64
	bytesSent       uint64
	bytesReceived   uint64
}

// New seeds a runner. The same seed replays the same telemetry.
func New(col *collector.Collector, interval time.Duration, seed uint64) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{
		col:        col,
		interval:   interval,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		started:    time.Now(),
		rtt:        15.0,
		jitter:     2.0,
		loss:       0.001,
		throughput: 100.0,
		quality:    0.85,
		route:      models.RouteWiFi,
	}
}

// Run produces snapshots until ctx is canceled.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.col.Update(r.Next())
		}
	}
}

// Next advances the walk one step and builds the snapshot.
func (r *Runner) Next() models.Snapshot {
	r.rtt = clamp(r.rtt+r.rng.Float64()*4-2, 5, 80)
	r.jitter = clamp(r.jitter+r.rng.Float64()*0.8-0.4, 0.1, 12)
	r.loss = clamp(r.loss+r.rng.Float64()*0.002-0.001, 0, 0.05)
	r.throughput = clamp(r.throughput+r.rng.Float64()*10-5, 10, 400)
	r.quality = clamp(r.quality+r.rng.Float64()*0.06-0.03, 0.3, 0.99)

	r.handover = r.rng.Float64() < 0.05
	if r.handover {
		routes := []models.RouteChoice{
			models.RouteWiFi, models.RouteStarlink,
			models.RouteMultipath, models.RouteFiveG,
		}
		next := routes[r.rng.IntN(len(routes))]
		if next == r.route {
			next = routes[(r.rng.IntN(3)+1+int(r.route))%len(routes)]
		}
		r.route = next
		r.handoverCount++
		r.lastHandover = time.Now().UTC()
	}

	sent := 800 + r.rng.Uint64N(600)
	lost := uint64(float64(sent) * r.loss)
	recovered := lost - lost/4
	r.packetsSent += sent
	r.packetsLost += lost
	r.packetsRecovered += recovered
	r.packetsReceived += sent - lost + recovered

	chunkBytes := 256*1024 + r.rng.Uint64N(512*1024)
	ratio := 0.35 + r.rng.Float64()*0.2
	r.bytesUncompressed += chunkBytes
	r.bytesCompressed += uint64(float64(chunkBytes) * ratio)
	algo := models.CompressionLZ4
	if r.rng.Float64() < 0.3 {
		algo = models.CompressionZstd
		r.zstdChunks++
	} else {
		r.lz4Chunks++
	}

	chunks := 3 + r.rng.Uint64N(8)
	r.chunksProcessed += chunks
	r.bytesSent += uint64(r.throughput / 8 * r.interval.Seconds() * 1e6)
	r.bytesReceived += 40*1024 + r.rng.Uint64N(20*1024)

	similarity := 0.6 + r.rng.Float64()*0.39
	severity := models.SeverityLow
	if r.loss > 0.01 || r.rtt > 60 {
		severity = models.SeverityHigh
	}
	hint := models.HintSendDelta
	switch {
	case similarity > 0.97:
		hint = models.HintSkip
	case similarity < 0.7:
		hint = models.HintSendFull
	case r.throughput < 30:
		hint = models.HintCompress
	}

	state := models.StateConnected
	if r.handover {
		state = models.StateDegraded
	}

	starlinkLatency := 0.0
	if r.route == models.RouteStarlink || r.route == models.RouteMultipath {
		starlinkLatency = 40 + r.rng.Float64()*20 - 10
	}

	return models.Snapshot{
		Network: models.NetworkMetrics{
			RTTMs:             r.rtt,
			JitterMs:          r.jitter,
			LossRate:          r.loss,
			ThroughputMbps:    r.throughput,
			SignalDBm:         -50 - r.rng.Float64()*20,
			StarlinkLatencyMs: starlinkLatency,
			ActivePath:        pathNames[r.route],
			QualityScore:      r.quality,
		},
		AIDecision: models.AIDecision{
			Route:               r.route,
			Severity:            severity,
			ShouldSend:          similarity < 0.97,
			SimilarityScore:     similarity,
			Hint:                hint,
			CongestionPredicted: r.loss > 0.02,
			QueueWeights:        models.QueueWeights{P0: 50, P1: 30, P2: 20},
		},
		Transport: models.TransportMetrics{
			State:      state,
			FecEnabled: true,
			Fec: models.FecConfig{
				DataShards:        8,
				ParityShards:      3,
				Algorithm:         models.FecReedSolomon,
				RedundancyPercent: 100.0 * 3 / 11,
			},
			PacketsSent:      r.packetsSent,
			PacketsReceived:  r.packetsReceived,
			PacketsRecovered: r.packetsRecovered,
			PacketsLost:      r.packetsLost,
			HandoverCount:    r.handoverCount,
			LastHandover:     r.lastHandover,
		},
		Compression: models.CompressionMetrics{
			Algorithm:         algo,
			Ratio:             ratio,
			BytesUncompressed: r.bytesUncompressed,
			BytesCompressed:   r.bytesCompressed,
			LZ4Chunks:         r.lz4Chunks,
			ZstdChunks:        r.zstdChunks,
			AvgTimeMs:         0.2 + r.rng.Float64()*0.3,
		},
		Performance: models.PerformanceMetrics{
			ChunksProcessed:  r.chunksProcessed,
			AvgProcessingMs:  2 + r.rng.Float64()*4,
			LastProcessingMs: 1 + r.rng.Float64()*6,
			AIInferenceMs:    0.5 + r.rng.Float64()*2.5,
			BytesSent:        r.bytesSent,
			BytesReceived:    r.bytesReceived,
			UptimeSeconds:    uint64(time.Since(r.started).Seconds()),
		},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
