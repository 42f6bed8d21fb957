// Package data provides the thread-safe snapshot container for the cached
// drug catalog. Atomic pointers let the scheduler swap in a fresh snapshot
// with zero downtime while handlers keep reading the previous one.
package data

import (
	"sync/atomic"
	"time"

	"github.com/sumitkarde03/druglaunchindia/interfaces"
	"github.com/sumitkarde03/druglaunchindia/logging"
	"github.com/sumitkarde03/druglaunchindia/pharmastore/entities"
)

// Compile-time check that SnapshotContainer implements DataStore.
var _ interfaces.DataStore = (*SnapshotContainer)(nil)

// SnapshotContainer holds the most recent catalog snapshot with atomic
// pointers for zero-downtime refreshes.
type SnapshotContainer struct {
	drugs           atomic.Value // []entities.Drug
	categories      atomic.Value // []string
	marketStats     atomic.Value // entities.MarketStats
	source          atomic.Value // interfaces.Source
	lastRefreshed   atomic.Value // time.Time
	serverStartTime atomic.Value // time.Time
	refreshing      atomic.Bool
}

// NewSnapshotContainer creates a container with empty data.
func NewSnapshotContainer() *SnapshotContainer {
	sc := &SnapshotContainer{}
	sc.drugs.Store(make([]entities.Drug, 0))
	sc.categories.Store(make([]string, 0))
	sc.marketStats.Store(make(entities.MarketStats))
	sc.source.Store(interfaces.SourceNotConfigured)
	sc.lastRefreshed.Store(time.Time{})
	sc.serverStartTime.Store(time.Now())
	return sc
}

// Thread-safe getters with type check

// GetDrugs returns the cached drug catalog.
func (sc *SnapshotContainer) GetDrugs() []entities.Drug {
	if v := sc.drugs.Load(); v != nil {
		if drugs, ok := v.([]entities.Drug); ok {
			return drugs
		}
	}

	logging.Warn("Drug snapshot is empty or invalid")
	return []entities.Drug{}
}

// GetCategories returns the cached category list.
func (sc *SnapshotContainer) GetCategories() []string {
	if v := sc.categories.Load(); v != nil {
		if categories, ok := v.([]string); ok {
			return categories
		}
	}

	logging.Warn("Category snapshot is empty or invalid")
	return []string{}
}

// GetMarketStats returns the cached market statistics.
func (sc *SnapshotContainer) GetMarketStats() entities.MarketStats {
	if v := sc.marketStats.Load(); v != nil {
		if stats, ok := v.(entities.MarketStats); ok {
			return stats
		}
	}

	logging.Warn("Market stats snapshot is empty or invalid")
	return make(entities.MarketStats)
}

// GetSource returns the provenance of the cached snapshot.
func (sc *SnapshotContainer) GetSource() interfaces.Source {
	if v := sc.source.Load(); v != nil {
		if source, ok := v.(interfaces.Source); ok {
			return source
		}
	}

	return interfaces.SourceNotConfigured
}

// GetLastRefreshed returns the timestamp of the last snapshot refresh.
func (sc *SnapshotContainer) GetLastRefreshed() time.Time {
	if v := sc.lastRefreshed.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	logging.Warn("Could not get the last refreshed value")
	return time.Time{}
}

// GetServerStartTime returns the process start time.
func (sc *SnapshotContainer) GetServerStartTime() time.Time {
	if v := sc.serverStartTime.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	return time.Time{}
}

// IsRefreshing reports whether a refresh is in progress.
func (sc *SnapshotContainer) IsRefreshing() bool {
	return sc.refreshing.Load()
}

// UpdateSnapshot atomically replaces the whole snapshot.
func (sc *SnapshotContainer) UpdateSnapshot(drugs []entities.Drug, categories []string, stats entities.MarketStats, source interfaces.Source) {
	sc.drugs.Store(drugs)
	sc.categories.Store(categories)
	sc.marketStats.Store(stats)
	sc.source.Store(source)
	sc.lastRefreshed.Store(time.Now())
}

// BeginRefresh marks a refresh as started. Returns false when one is
// already running.
func (sc *SnapshotContainer) BeginRefresh() bool {
	return sc.refreshing.CompareAndSwap(false, true)
}

// EndRefresh marks the refresh as finished.
func (sc *SnapshotContainer) EndRefresh() {
	sc.refreshing.Store(false)
}
