package aggregator

import "github.com/sumitkarde03/druglaunchindia/pharmastore/entities"

// The store does not yet carry per-drug history, prediction, or competitor
// rows, so live drugs get illustrative series derived from their launch and
// current prices with fixed multipliers at fixed dates. The constants must
// not change between releases: dashboards depend on output stability, and
// the fabricated nature of these series is a documented product decision.

func attachSyntheticSeries(d *entities.Drug) {
	d.PriceHistory = []entities.PricePoint{
		{Date: "2020-01", Price: d.LaunchPrice, Volume: 45000},
		{Date: "2021-01", Price: d.LaunchPrice * 1.1, Volume: 47000},
		{Date: "2022-01", Price: d.LaunchPrice * 1.2, Volume: 49000},
		{Date: "2023-01", Price: d.CurrentPrice, Volume: 50000},
	}

	d.PredictedPrices = []entities.PredictedPrice{
		{Date: "2025-01", Price: d.CurrentPrice * 1.04, Confidence: 0.95},
		{Date: "2025-06", Price: d.CurrentPrice * 1.08, Confidence: 0.92},
		{Date: "2026-01", Price: d.CurrentPrice * 1.12, Confidence: 0.88},
	}

	d.CompetitorAnalysis = []entities.Competitor{
		{Company: "Competitor A", MarketShare: 12.5, Price: d.CurrentPrice * 0.98},
		{Company: "Competitor B", MarketShare: 10.8, Price: d.CurrentPrice * 1.02},
		{Company: "Competitor C", MarketShare: 8.3, Price: d.CurrentPrice * 0.96},
	}
}
