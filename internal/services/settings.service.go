package services

import (
	"sync"

	"pitwall/internal/models"
)

// SettingsStore holds the tunable dashboard settings behind a lock.
// Settings are in-memory only; a restart returns to the defaults.
type SettingsStore struct {
	mu       sync.RWMutex
	settings models.DashboardSettings
}

// NewSettingsStore starts from the engine defaults.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{settings: models.DefaultDashboardSettings()}
}

// Get returns a copy of the current settings.
func (s *SettingsStore) Get() models.DashboardSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update validates and applies the whole settings document at once.
func (s *SettingsStore) Update(next models.DashboardSettings) error {
	if err := next.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = next
	return nil
}
