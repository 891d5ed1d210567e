package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
)

// DefaultHousekeepingInterval is how often expired lockouts are swept.
const DefaultHousekeepingInterval = time.Minute

// HousekeepingService periodically clears lockouts whose expiry has passed.
// Reads already treat such accounts as unlocked; the sweep only keeps the
// stored flags honest.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      Clock

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, DefaultHousekeepingInterval is used.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = DefaultHousekeepingInterval
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until the worker has finished any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep immediately on startup
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep clears every expired lockout once and returns how many it cleared.
func (s *HousekeepingService) Sweep(ctx context.Context) int64 {
	n, err := s.Store.Accounts().ClearExpiredLockouts(ctx, s.Now.now())
	if err != nil {
		s.Logger.Error("failed to clear expired lockouts", "error", err)
		return 0
	}

	if n > 0 {
		s.Logger.Info("cleared expired lockouts", "accounts", n)
	} else {
		s.Logger.Debug("no expired lockouts")
	}
	return n
}
