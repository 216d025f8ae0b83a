// Package collector is the in-memory cache between the transfer engine
// and the dashboard: producers push snapshots, HTTP handlers and the
// stream hub read them back.
package collector

import (
	"sync"
	"time"

	"pitwall/internal/models"
)

// DefaultCapacity bounds the history when the config does not.
const DefaultCapacity = 1000

// Collector holds the latest snapshot plus a bounded FIFO history.
// A single RWMutex covers both so every read sees one consistent
// write: no handler can observe a half-applied update.
type Collector struct {
	mu       sync.RWMutex
	latest   *models.Snapshot
	history  []models.Snapshot
	capacity int
	updates  uint64
}

// Stats is a point-in-time view of the collector for the ops surface.
type Stats struct {
	Updates       uint64
	HistoryLen    int
	Capacity      int
	LastTimestamp time.Time
}

// New returns a collector retaining at most capacity snapshots.
// Non-positive capacities fall back to DefaultCapacity.
func New(capacity int) *Collector {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Collector{
		history:  make([]models.Snapshot, 0, capacity),
		capacity: capacity,
	}
}

// Update publishes s as the latest snapshot and appends it to history,
// evicting the oldest entry once the capacity is reached. A zero
// timestamp is stamped with the current time; a timestamp behind the
// previous snapshot is clamped so stored history never goes backwards.
// Update never fails and never blocks on anything but the lock.
func (c *Collector) Update(s models.Snapshot) {
	now := time.Now().UTC()

	c.mu.Lock()
	defer c.mu.Unlock()

	if s.Timestamp.IsZero() {
		s.Timestamp = now
	}
	if c.latest != nil && s.Timestamp.Before(c.latest.Timestamp) {
		s.Timestamp = c.latest.Timestamp
	}

	c.latest = &s
	c.history = append(c.history, s)
	if len(c.history) > c.capacity {
		c.history = c.history[1:]
	}
	c.updates++
}

// Current returns a copy of the most recent snapshot. The second
// return value is false until the first Update.
func (c *Collector) Current() (models.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.latest == nil {
		return models.Snapshot{}, false
	}
	return *c.latest, true
}

// History returns the most recent min(limit, retained) snapshots in
// chronological order, oldest first. A non-positive limit returns
// everything retained. The slice is the caller's to keep.
func (c *Collector) History(limit int) []models.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := len(c.history)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]models.Snapshot, n)
	copy(out, c.history[len(c.history)-n:])
	return out
}

// Stats reports counters for the observability layer.
func (c *Collector) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := Stats{
		Updates:    c.updates,
		HistoryLen: len(c.history),
		Capacity:   c.capacity,
	}
	if c.latest != nil {
		st.LastTimestamp = c.latest.Timestamp
	}
	return st
}
