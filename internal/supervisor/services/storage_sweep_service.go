// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package services

import (
	"context"
	"time"

	"github.com/tomtom215/nodevision/internal/logging"
)

// TempSweeper removes stale temporary files. Satisfied by *storage.Store.
type TempSweeper interface {
	SweepTemp(maxAge time.Duration) (int, error)
}

// StorageSweepService periodically removes temporary files left by
// interrupted project saves. It sweeps once at start and then every interval.
type StorageSweepService struct {
	store    TempSweeper
	maxAge   time.Duration
	interval time.Duration
	name     string
}

// NewStorageSweepService creates the service. Non-positive values fall back
// to one hour for maxAge and ten minutes for interval.
func NewStorageSweepService(store TempSweeper, maxAge, interval time.Duration) *StorageSweepService {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StorageSweepService{
		store:    store,
		maxAge:   maxAge,
		interval: interval,
		name:     "storage-sweep",
	}
}

// Serve implements suture.Service. Sweep errors are logged, not returned;
// a transient filesystem error should not trigger restart backoff.
func (s *StorageSweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *StorageSweepService) sweep() {
	removed, err := s.store.SweepTemp(s.maxAge)
	if err != nil {
		logging.Warn().Err(err).Str("service", s.name).Msg("Storage sweep failed")
		return
	}
	if removed > 0 {
		logging.Info().Int("removed", removed).Str("service", s.name).Msg("Removed stale temporary project files")
	}
}

// String implements fmt.Stringer.
func (s *StorageSweepService) String() string {
	return s.name
}
