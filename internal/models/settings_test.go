package models

import "testing"

func TestDefaultDashboardSettings(t *testing.T) {
	s := DefaultDashboardSettings()

	if err := s.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if s.PriorityWeights != (QueueWeights{P0: 50, P1: 30, P2: 20}) {
		t.Errorf("unexpected default weights: %+v", s.PriorityWeights)
	}
	if s.FecRedundancy != 30 {
		t.Errorf("unexpected default fec redundancy: %d", s.FecRedundancy)
	}
	if s.BufferSize != 1000 {
		t.Errorf("unexpected default buffer size: %d", s.BufferSize)
	}
	if s.CompressionAlgorithm != "Auto" || s.IntegrityCheck != "Blake3" {
		t.Errorf("unexpected default algorithms: %q/%q", s.CompressionAlgorithm, s.IntegrityCheck)
	}
}

func TestDashboardSettingsValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*DashboardSettings)
		ok     bool
	}{
		{"defaults", func(s *DashboardSettings) {}, true},
		{"explicit codec", func(s *DashboardSettings) { s.CompressionAlgorithm = "Zstd" }, true},
		{"max redundancy", func(s *DashboardSettings) { s.FecRedundancy = 90 }, true},
		{"unknown codec", func(s *DashboardSettings) { s.CompressionAlgorithm = "Brotli" }, false},
		{"unknown digest", func(s *DashboardSettings) { s.IntegrityCheck = "MD5" }, false},
		{"redundancy over ceiling", func(s *DashboardSettings) { s.FecRedundancy = 91 }, false},
		{"zero buffer", func(s *DashboardSettings) { s.BufferSize = 0 }, false},
		{"all-zero weights", func(s *DashboardSettings) { s.PriorityWeights = QueueWeights{} }, false},
	}

	for _, tc := range cases {
		s := DefaultDashboardSettings()
		tc.mutate(&s)
		err := s.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}
