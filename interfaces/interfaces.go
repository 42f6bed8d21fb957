// Package interfaces defines the core abstractions of the druglaunchindia
// API so that components can be wired by dependency injection and replaced
// by fakes in tests.
package interfaces

import (
	"context"
	"time"

	"github.com/sumitkarde03/druglaunchindia/pharmastore"
	"github.com/sumitkarde03/druglaunchindia/pharmastore/entities"
	"github.com/sumitkarde03/druglaunchindia/whoapi"
)

// Source reports which branch of the store-then-fallback policy produced a
// result. The three fallback values are deliberately distinguishable so the
// UI can render an accurate trust badge.
type Source string

const (
	// SourceLive means the result came from the remote store.
	SourceLive Source = "live"
	// SourceFallbackEmpty means the store answered with an empty set and
	// the demo dataset was substituted.
	SourceFallbackEmpty Source = "fallback_empty"
	// SourceFallbackError means the store query failed and the demo
	// dataset was substituted.
	SourceFallbackError Source = "fallback_error"
	// SourceNotConfigured means no store attempt was made at all.
	SourceNotConfigured Source = "not_configured"
)

// Live reports whether the result reflects the remote store.
func (s Source) Live() bool {
	return s == SourceLive
}

// StoreClient is the contract of the remote relational store. Empty result
// slices with a nil error are valid and distinct from failures.
type StoreClient interface {
	ListDrugs(ctx context.Context) ([]pharmastore.DrugRow, error)
	SearchDrugs(ctx context.Context, term, category string) ([]pharmastore.DrugRow, error)
	DrugCategories(ctx context.Context) ([]string, error)
	MarketStatRows(ctx context.Context) ([]pharmastore.MarketStatRow, error)
	RegulatoryRows(ctx context.Context) ([]pharmastore.RegulatoryRow, error)
	ProfileRows(ctx context.Context) ([]pharmastore.ProfileRow, error)
	UpdateProfile(ctx context.Context, userID string, upd entities.ProfileUpdate) (pharmastore.ProfileRow, error)
	DrugDetails(ctx context.Context, drugID string) (pharmastore.DrugRow, []pharmastore.PriceHistoryRow, []pharmastore.PredictionRow, error)
}

// DrugDataProvider is the aggregation layer consumed by the HTTP handlers.
// Read operations always return a populated result together with its
// provenance; only the profile paths can surface hard failures.
type DrugDataProvider interface {
	GetDrugPrices(ctx context.Context) ([]entities.Drug, Source)
	SearchDrugs(ctx context.Context, term, category string) ([]entities.Drug, Source)
	GetDrugCategories(ctx context.Context) ([]string, Source)
	GetMarketStats(ctx context.Context) (entities.MarketStats, Source)
	GetRegulatoryInfo(ctx context.Context) ([]entities.RegulatoryUpdate, Source)
	GetDrugDetails(ctx context.Context, drugID string) (entities.DrugDetails, Source, error)
	GetUserProfiles(ctx context.Context) ([]entities.Profile, error)
	UpdateProfile(ctx context.Context, userID string, upd entities.ProfileUpdate) (entities.Profile, error)
	IsStoreConfigured() bool
}

// HealthDataProvider is the contract of the public health-statistics client.
type HealthDataProvider interface {
	GetHealthData(ctx context.Context, country string) []whoapi.IndicatorResult
	GetGlobalHealthStats(ctx context.Context) []whoapi.IndicatorResult
}

// DataStore provides thread-safe access to the cached catalog snapshot with
// atomic operations for zero-downtime refreshes.
type DataStore interface {
	GetDrugs() []entities.Drug
	GetCategories() []string
	GetMarketStats() entities.MarketStats
	GetSource() Source
	GetLastRefreshed() time.Time
	GetServerStartTime() time.Time
	IsRefreshing() bool

	UpdateSnapshot(drugs []entities.Drug, categories []string, stats entities.MarketStats, source Source)
	BeginRefresh() bool
	EndRefresh()
}

// Scheduler manages the periodic snapshot refresh and staleness monitoring.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker reports system health for the /health endpoint.
type HealthChecker interface {
	HealthCheck() (status string, data map[string]any, httpStatus int)
}

// InputValidator screens user-supplied request parameters.
type InputValidator interface {
	ValidateSearchTerm(term string) error
	ValidateCategory(category string) error
	ValidateCountryCode(code string) (string, error)
	ValidateDrugID(id string) (string, error)
}
