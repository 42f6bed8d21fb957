// Package pharmastore implements the remote store client and the row
// normalizer for the hosted Postgres backend. All queries return raw row
// types; the normalizer is the only place where untyped store values are
// coerced into the canonical entities.
package pharmastore

import "time"

// DrugRow mirrors one row of the drugs table joined with its manufacturer.
// Numeric columns are selected as text so that the normalizer owns all
// coercion; empty strings mean the column was NULL.
type DrugRow struct {
	ID                string
	Name              string
	GenericName       string
	ApprovalDate      string
	Category          string
	TherapeuticClass  string
	DosageForm        string
	Strength          string
	PackSize          string
	CurrentPrice      string
	LaunchPrice       string
	MRP               string
	RetailPrice       string
	WholesalePrice    string
	ManufacturingCost string
	MarketShare       string
	MonthlyVolume     string
	RegulatoryStatus  string
	PatentStatus      string
	ExportMarkets     []string
	Manufacturer      *ManufacturerRow
}

// ManufacturerRow mirrors the manufacturer columns pulled in by the join.
type ManufacturerRow struct {
	Name         string
	Country      string
	GMPCertified bool
	FDAApproved  bool
}

// PriceHistoryRow mirrors one row of drug_price_history.
type PriceHistoryRow struct {
	RecordedDate string
	Price        string
	Volume       string
}

// PredictionRow mirrors one row of drug_predictions.
type PredictionRow struct {
	PredictionDate  string
	PredictedPrice  string
	ConfidenceScore string
}

// MarketStatRow mirrors one row of market_stats.
type MarketStatRow struct {
	Category    string
	MetricName  string
	MetricValue string
}

// RegulatoryRow mirrors one row of regulatory_updates. SourceURL is nil when
// the row has no link.
type RegulatoryRow struct {
	Title       string
	Description string
	SourceURL   *string
	Category    string
	LastUpdated string
	ImpactLevel string
}

// ProfileRow mirrors one row of profiles.
type ProfileRow struct {
	ID        string
	Email     string
	FullName  string
	Company   string
	Role      string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
