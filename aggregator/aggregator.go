// Package aggregator implements the store-then-fallback orchestration that
// the presentation layer consumes. Every read resolves to a usable result:
// live normalized store data when possible, the built-in demo dataset
// otherwise. Only the profile write path propagates hard failures.
package aggregator

import (
	"context"
	"errors"
	"fmt"

	"github.com/sumitkarde03/druglaunchindia/interfaces"
	"github.com/sumitkarde03/druglaunchindia/logging"
	"github.com/sumitkarde03/druglaunchindia/metrics"
	"github.com/sumitkarde03/druglaunchindia/pharmastore"
	"github.com/sumitkarde03/druglaunchindia/pharmastore/entities"
)

// Compile-time check that Aggregator satisfies the provider contract.
var _ interfaces.DrugDataProvider = (*Aggregator)(nil)

// ErrNotConfigured is returned by operations that have no sensible fallback
// when the store is not configured.
var ErrNotConfigured = errors.New("store is not configured")

// ErrUnauthenticated is returned when a write is attempted without an
// authenticated user.
var ErrUnauthenticated = errors.New("no authenticated user")

// Aggregator resolves each logical query against the store and degrades to
// the demo dataset on misconfiguration, failure, or emptiness. It is
// stateless apart from the injected client and the configuration flag.
type Aggregator struct {
	store      interfaces.StoreClient
	configured bool
}

// New builds an aggregator. When configured is false the store client may
// be nil; no store call will ever be issued.
func New(store interfaces.StoreClient, configured bool) *Aggregator {
	return &Aggregator{store: store, configured: configured}
}

// IsStoreConfigured reports whether the aggregator runs against a live store.
func (a *Aggregator) IsStoreConfigured() bool {
	return a.configured
}

// degrade logs a failed or empty store attempt and records the fallback.
func degrade(operation string, reason interfaces.Source, err error) {
	switch reason {
	case interfaces.SourceFallbackError:
		logging.Error("Store query failed, serving fallback data",
			"component", "aggregator", "operation", operation, "error", err)
		metrics.StoreQueriesTotal.WithLabelValues(operation, "error").Inc()
		metrics.FallbackServedTotal.WithLabelValues(operation, "error").Inc()
	case interfaces.SourceFallbackEmpty:
		logging.Warn("Store returned no rows, serving fallback data",
			"component", "aggregator", "operation", operation)
		metrics.StoreQueriesTotal.WithLabelValues(operation, "empty").Inc()
		metrics.FallbackServedTotal.WithLabelValues(operation, "empty").Inc()
	case interfaces.SourceNotConfigured:
		metrics.FallbackServedTotal.WithLabelValues(operation, "not_configured").Inc()
	}
}

// GetDrugPrices returns the full drug catalog: live rows normalized and
// augmented with the illustrative series, or the demo catalog.
func (a *Aggregator) GetDrugPrices(ctx context.Context) ([]entities.Drug, interfaces.Source) {
	const op = "list_drugs"

	if !a.configured {
		degrade(op, interfaces.SourceNotConfigured, nil)
		return FallbackDrugs(), interfaces.SourceNotConfigured
	}

	rows, err := a.store.ListDrugs(ctx)
	if err != nil {
		degrade(op, interfaces.SourceFallbackError, err)
		return FallbackDrugs(), interfaces.SourceFallbackError
	}
	if len(rows) == 0 {
		degrade(op, interfaces.SourceFallbackEmpty, nil)
		return FallbackDrugs(), interfaces.SourceFallbackEmpty
	}

	metrics.StoreQueriesTotal.WithLabelValues(op, "ok").Inc()
	return a.normalizeAndAugment(rows), interfaces.SourceLive
}

// SearchDrugs matches term and category against the store, or against the
// demo catalog when the store is unavailable. The fallback applies the same
// matching rules so behavior stays deterministic across branches.
func (a *Aggregator) SearchDrugs(ctx context.Context, term, category string) ([]entities.Drug, interfaces.Source) {
	const op = "search_drugs"

	if !a.configured {
		degrade(op, interfaces.SourceNotConfigured, nil)
		return searchFallback(term, category), interfaces.SourceNotConfigured
	}

	rows, err := a.store.SearchDrugs(ctx, term, category)
	if err != nil {
		degrade(op, interfaces.SourceFallbackError, err)
		return searchFallback(term, category), interfaces.SourceFallbackError
	}

	// An empty search result is a legitimate answer, not a degradation:
	// the store was reachable and found nothing.
	metrics.StoreQueriesTotal.WithLabelValues(op, "ok").Inc()
	return a.normalizeAndAugment(rows), interfaces.SourceLive
}

// GetDrugCategories returns the distinct category list.
func (a *Aggregator) GetDrugCategories(ctx context.Context) ([]string, interfaces.Source) {
	const op = "drug_categories"

	if !a.configured {
		degrade(op, interfaces.SourceNotConfigured, nil)
		return FallbackCategories(), interfaces.SourceNotConfigured
	}

	categories, err := a.store.DrugCategories(ctx)
	if err != nil {
		degrade(op, interfaces.SourceFallbackError, err)
		return FallbackCategories(), interfaces.SourceFallbackError
	}
	if len(categories) == 0 {
		degrade(op, interfaces.SourceFallbackEmpty, nil)
		return FallbackCategories(), interfaces.SourceFallbackEmpty
	}

	metrics.StoreQueriesTotal.WithLabelValues(op, "ok").Inc()
	return categories, interfaces.SourceLive
}

// GetMarketStats returns the market statistics mapping.
func (a *Aggregator) GetMarketStats(ctx context.Context) (entities.MarketStats, interfaces.Source) {
	const op = "market_stats"

	if !a.configured {
		degrade(op, interfaces.SourceNotConfigured, nil)
		return FallbackMarketStats(), interfaces.SourceNotConfigured
	}

	rows, err := a.store.MarketStatRows(ctx)
	if err != nil {
		degrade(op, interfaces.SourceFallbackError, err)
		return FallbackMarketStats(), interfaces.SourceFallbackError
	}

	stats := pharmastore.BuildMarketStats(rows)
	if len(stats) == 0 {
		degrade(op, interfaces.SourceFallbackEmpty, nil)
		return FallbackMarketStats(), interfaces.SourceFallbackEmpty
	}

	metrics.StoreQueriesTotal.WithLabelValues(op, "ok").Inc()
	return stats, interfaces.SourceLive
}

// GetRegulatoryInfo returns regulatory updates, newest first.
func (a *Aggregator) GetRegulatoryInfo(ctx context.Context) ([]entities.RegulatoryUpdate, interfaces.Source) {
	const op = "regulatory_updates"

	if !a.configured {
		degrade(op, interfaces.SourceNotConfigured, nil)
		return FallbackRegulatoryUpdates(), interfaces.SourceNotConfigured
	}

	rows, err := a.store.RegulatoryRows(ctx)
	if err != nil {
		degrade(op, interfaces.SourceFallbackError, err)
		return FallbackRegulatoryUpdates(), interfaces.SourceFallbackError
	}
	if len(rows) == 0 {
		degrade(op, interfaces.SourceFallbackEmpty, nil)
		return FallbackRegulatoryUpdates(), interfaces.SourceFallbackEmpty
	}

	updates := make([]entities.RegulatoryUpdate, 0, len(rows))
	for _, row := range rows {
		updates = append(updates, pharmastore.NormalizeRegulatory(row))
	}

	metrics.StoreQueriesTotal.WithLabelValues(op, "ok").Inc()
	return updates, interfaces.SourceLive
}

// GetDrugDetails returns one drug with its stored series. When the store is
// unavailable the demo catalog is consulted; an ID that matches nothing
// anywhere is a hard failure, since there is no meaningful substitute for a
// specific drug.
func (a *Aggregator) GetDrugDetails(ctx context.Context, drugID string) (entities.DrugDetails, interfaces.Source, error) {
	const op = "drug_details"

	if !a.configured {
		degrade(op, interfaces.SourceNotConfigured, nil)
		return detailsFallback(drugID, interfaces.SourceNotConfigured)
	}

	row, history, predictions, err := a.store.DrugDetails(ctx, drugID)
	if err != nil {
		degrade(op, interfaces.SourceFallbackError, err)
		return detailsFallback(drugID, interfaces.SourceFallbackError)
	}

	drug := pharmastore.NormalizeDrug(row)
	attachSyntheticSeries(&drug)

	metrics.StoreQueriesTotal.WithLabelValues(op, "ok").Inc()
	return entities.DrugDetails{
		Drug:            drug,
		PriceHistory:    pharmastore.NormalizePriceHistory(history),
		PredictedPrices: pharmastore.NormalizePredictions(predictions),
	}, interfaces.SourceLive, nil
}

func detailsFallback(drugID string, source interfaces.Source) (entities.DrugDetails, interfaces.Source, error) {
	for _, d := range FallbackDrugs() {
		if d.ID == drugID {
			return entities.DrugDetails{
				Drug:            d,
				PriceHistory:    d.PriceHistory,
				PredictedPrices: d.PredictedPrices,
			}, source, nil
		}
	}

	return entities.DrugDetails{}, source, fmt.Errorf("drug %s not found", drugID)
}

// GetUserProfiles returns stored user profiles. Profiles have no demo
// substitute, so failures and misconfiguration propagate.
func (a *Aggregator) GetUserProfiles(ctx context.Context) ([]entities.Profile, error) {
	const op = "user_profiles"

	if !a.configured {
		return nil, ErrNotConfigured
	}

	rows, err := a.store.ProfileRows(ctx)
	if err != nil {
		metrics.StoreQueriesTotal.WithLabelValues(op, "error").Inc()
		return nil, err
	}

	metrics.StoreQueriesTotal.WithLabelValues(op, "ok").Inc()
	profiles := make([]entities.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, pharmastore.NormalizeProfile(row))
	}

	return profiles, nil
}

// UpdateProfile writes the given fields to the caller's profile. This is
// the one path where failure reaches the caller: there is no sensible
// fallback for a write.
func (a *Aggregator) UpdateProfile(ctx context.Context, userID string, upd entities.ProfileUpdate) (entities.Profile, error) {
	const op = "update_profile"

	if userID == "" {
		return entities.Profile{}, ErrUnauthenticated
	}
	if !a.configured {
		return entities.Profile{}, ErrNotConfigured
	}

	row, err := a.store.UpdateProfile(ctx, userID, upd)
	if err != nil {
		metrics.StoreQueriesTotal.WithLabelValues(op, "error").Inc()
		return entities.Profile{}, err
	}

	metrics.StoreQueriesTotal.WithLabelValues(op, "ok").Inc()
	return pharmastore.NormalizeProfile(row), nil
}

func (a *Aggregator) normalizeAndAugment(rows []pharmastore.DrugRow) []entities.Drug {
	drugs := make([]entities.Drug, 0, len(rows))
	for _, row := range rows {
		drug := pharmastore.NormalizeDrug(row)
		attachSyntheticSeries(&drug)
		drugs = append(drugs, drug)
	}
	return drugs
}
