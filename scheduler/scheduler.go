// Package scheduler manages the periodic catalog snapshot refresh and the
// staleness watchdog.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/sumitkarde03/druglaunchindia/interfaces"
	"github.com/sumitkarde03/druglaunchindia/logging"
)

// Compile-time check that SnapshotScheduler implements Scheduler.
var _ interfaces.Scheduler = (*SnapshotScheduler)(nil)

// refreshInterval is how often the cached snapshot is rebuilt from the
// aggregation layer.
const refreshInterval = 6 * time.Hour

// staleWarnAfter triggers the watchdog warning.
const staleWarnAfter = 24 * time.Hour

// SnapshotScheduler periodically rebuilds the catalog snapshot through the
// aggregation layer, so the /health and /v1/status endpoints always have a
// recent picture of what the service would serve.
type SnapshotScheduler struct {
	dataStore interfaces.DataStore
	provider  interfaces.DrugDataProvider
	scheduler *gocron.Scheduler
	stopWatch chan struct{}
}

// NewSnapshotScheduler creates a scheduler with injected dependencies.
func NewSnapshotScheduler(dataStore interfaces.DataStore, provider interfaces.DrugDataProvider) *SnapshotScheduler {
	return &SnapshotScheduler{
		dataStore: dataStore,
		provider:  provider,
		scheduler: gocron.NewScheduler(time.Local),
		stopWatch: make(chan struct{}),
	}
}

// Start performs the initial snapshot load, schedules periodic refreshes,
// and launches the staleness watchdog.
func (s *SnapshotScheduler) Start() error {
	if err := s.refresh(); err != nil {
		logging.Error("Failed to perform initial snapshot load", "error", err)
		return fmt.Errorf("initial snapshot load failed: %w", err)
	}

	_, err := s.scheduler.Every(refreshInterval).Do(func() {
		if err := s.refresh(); err != nil {
			logging.Error("Failed to refresh snapshot", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule snapshot refresh", "error", err)
		return fmt.Errorf("failed to schedule snapshot refresh: %w", err)
	}

	s.scheduler.StartAsync()
	go s.watchStaleness()

	return nil
}

// Stop stops the scheduler and the watchdog.
func (s *SnapshotScheduler) Stop() {
	s.scheduler.Stop()
	close(s.stopWatch)
}

// refresh rebuilds the snapshot through the aggregation layer. The
// aggregator never fails on reads, so the only error path is a refresh
// already in progress being skipped.
func (s *SnapshotScheduler) refresh() error {
	if !s.dataStore.BeginRefresh() {
		logging.Info("Snapshot refresh already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndRefresh()

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	drugs, source := s.provider.GetDrugPrices(ctx)
	categories, _ := s.provider.GetDrugCategories(ctx)
	stats, _ := s.provider.GetMarketStats(ctx)

	s.dataStore.UpdateSnapshot(drugs, categories, stats, source)

	logging.Info("Snapshot refresh completed",
		"duration", time.Since(start).String(),
		"drug_count", len(drugs),
		"source", string(source))

	return nil
}

// watchStaleness warns hourly when the snapshot has not been refreshed
// within the expected window.
func (s *SnapshotScheduler) watchStaleness() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopWatch:
			return
		case <-ticker.C:
			last := s.dataStore.GetLastRefreshed()
			if time.Since(last) > staleWarnAfter {
				logging.Warn("Snapshot hasn't been refreshed in over 24 hours",
					"last_refreshed", last.Format(time.RFC3339))
			}
		}
	}
}
