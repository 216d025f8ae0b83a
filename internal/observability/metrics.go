// Package observability exposes the dashboard's own operational
// metrics in Prometheus exposition format on /metrics.
package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pitwall/internal/collector"
)

// Observer owns the metrics registry. Collector-derived series are
// read lazily at scrape time, so nothing in the hot path touches
// Prometheus.
type Observer struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	ingestErrors prometheus.Counter
}

// New registers the dashboard's metric set against col.
func New(col *collector.Collector) *Observer {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pitwall_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"path", "code"})

	ingestErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pitwall_ingest_errors_total",
		Help: "Snapshot payloads dropped because they could not be decoded.",
	})

	ingested := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "pitwall_snapshots_ingested_total",
		Help: "Snapshots accepted by the collector since start.",
	}, func() float64 {
		return float64(col.Stats().Updates)
	})

	historyLength := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "pitwall_history_length",
		Help: "Snapshots currently retained in history.",
	}, func() float64 {
		return float64(col.Stats().HistoryLen)
	})

	historyCapacity := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "pitwall_history_capacity",
		Help: "Configured history retention bound.",
	}, func() float64 {
		return float64(col.Stats().Capacity)
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		requests,
		ingestErrors,
		ingested,
		historyLength,
		historyCapacity,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observer{
		registry:     registry,
		requests:     requests,
		ingestErrors: ingestErrors,
	}
}

// Handler serves the registry in exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}

// RecordRequest counts one served HTTP request.
func (o *Observer) RecordRequest(path string, status int) {
	o.requests.WithLabelValues(path, strconv.Itoa(status)).Inc()
}

// IngestErrors is the counter the NATS bridge bumps on bad payloads.
func (o *Observer) IngestErrors() prometheus.Counter {
	return o.ingestErrors
}
