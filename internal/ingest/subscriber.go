// Package ingest bridges remote transfer engines into the collector:
// each NATS message on the configured subject is one snapshot encoded
// as JSON.
package ingest

import (
	"encoding/json"
	"log"

	"github.com/nats-io/nats.go"

	"pitwall/internal/collector"
	"pitwall/internal/models"
)

// Counter is bumped once per dropped payload. prometheus.Counter
// satisfies it; nil disables counting.
type Counter interface {
	Inc()
}

// Subscriber is responsible for subscribing to a NATS subject and
// feeding decoded snapshots into the collector.
type Subscriber struct {
	nc      *nats.Conn
	sub     *nats.Subscription
	subject string
	col     *collector.Collector
	dropped Counter
}

// NewSubscriber connects to the NATS server at url.
func NewSubscriber(url, subject string, col *collector.Collector, dropped Counter) (*Subscriber, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	log.Printf("[ingest] connected to NATS server at %s", url)
	return &Subscriber{nc: nc, subject: subject, col: col, dropped: dropped}, nil
}

// Start subscribes to the configured subject and begins consuming.
func (s *Subscriber) Start() error {
	sub, err := s.nc.Subscribe(s.subject, func(msg *nats.Msg) {
		s.consume(msg.Data)
	})
	if err != nil {
		return err
	}
	s.sub = sub
	log.Printf("[ingest] subscribed to %q, waiting for snapshots", s.subject)
	return nil
}

// consume decodes one payload. Malformed payloads are logged, counted,
// and dropped; the collector never sees them.
func (s *Subscriber) consume(data []byte) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("[ingest] error unmarshalling snapshot: %v", err)
		if s.dropped != nil {
			s.dropped.Inc()
		}
		return
	}
	s.col.Update(snap)
}

// Close unsubscribes and closes the NATS connection.
func (s *Subscriber) Close() {
	if s.sub != nil {
		s.sub.Unsubscribe()
	}
	if s.nc != nil {
		s.nc.Close()
		log.Println("[ingest] NATS connection closed")
	}
}
