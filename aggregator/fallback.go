package aggregator

import (
	"strings"

	"github.com/sumitkarde03/druglaunchindia/pharmastore/entities"
)

// The demo dataset is a fixed literal returned whenever the store is
// unconfigured, unreachable, or empty. Constructors return fresh copies so
// callers can never mutate shared state; successive calls are deep-equal.

// FallbackDrugs returns the demo drug catalog.
func FallbackDrugs() []entities.Drug {
	return []entities.Drug{
		{
			ID:                "demo-1",
			Name:              "Paracetamol 500mg",
			GenericName:       "Acetaminophen",
			Manufacturer:      "Cipla Ltd",
			ApprovalDate:      "2020-01-15",
			Category:          "Analgesic",
			TherapeuticClass:  "Non-opioid analgesic",
			DosageForm:        "Tablet",
			Strength:          "500mg",
			PackSize:          "10 tablets",
			CurrentPrice:      2.50,
			LaunchPrice:       2.00,
			MRP:               25.00,
			RetailPrice:       22.50,
			WholesalePrice:    20.00,
			ManufacturingCost: 15.00,
			MarketShare:       15.2,
			MonthlyVolume:     50000,
			RegulatoryStatus:  "Approved",
			PatentStatus:      "Generic",
			ExportMarkets:     []string{"USA", "UK", "Germany", "Australia"},
			PriceHistory: []entities.PricePoint{
				{Date: "2020-01", Price: 2.00, Volume: 45000},
				{Date: "2020-06", Price: 2.10, Volume: 46000},
				{Date: "2021-01", Price: 2.20, Volume: 47000},
				{Date: "2021-06", Price: 2.30, Volume: 48000},
				{Date: "2022-01", Price: 2.40, Volume: 49000},
				{Date: "2022-06", Price: 2.50, Volume: 50000},
			},
			PredictedPrices: []entities.PredictedPrice{
				{Date: "2025-01", Price: 2.60, Confidence: 0.95},
				{Date: "2025-06", Price: 2.70, Confidence: 0.92},
				{Date: "2026-01", Price: 2.80, Confidence: 0.88},
			},
			CompetitorAnalysis: []entities.Competitor{
				{Company: "Sun Pharma", MarketShare: 12.5, Price: 2.45},
				{Company: "Dr. Reddy's", MarketShare: 10.8, Price: 2.55},
				{Company: "Lupin", MarketShare: 8.3, Price: 2.40},
			},
		},
	}
}

// FallbackMarketStats returns the demo market statistics mapping.
func FallbackMarketStats() entities.MarketStats {
	return entities.MarketStats{
		"total_market_size":    "50.7 Billion USD",
		"growth_rate":          "12.3%",
		"export_value":         "24.4 Billion USD",
		"total_drugs":          "3,000+",
		"foreign_investment":   "8.2 Billion USD",
		"regulatory_approvals": "450+",
		"manufacturing_units":  "3,000+",
		"employment_generated": "4.7 Million",
		"global_ranking":       "3rd Largest",
		"generic_market_share": "71%",
	}
}

// FallbackRegulatoryUpdates returns the demo regulatory notices.
func FallbackRegulatoryUpdates() []entities.RegulatoryUpdate {
	return []entities.RegulatoryUpdate{
		{
			Title:         "Drug Price Control Order (DPCO) 2013",
			Description:   "Regulates prices of essential medicines in India",
			Link:          "https://cdsco.gov.in/opencms/opencms/en/Drugs/",
			Category:      "Pricing",
			Applicability: "All pharmaceutical companies",
		},
		{
			Title:         "Foreign Direct Investment (FDI) Policy",
			Description:   "100% FDI allowed in pharmaceutical sector under automatic route",
			Link:          "https://dpiit.gov.in/",
			Category:      "Investment",
			Applicability: "All pharmaceutical companies",
		},
		{
			Title:         "Central Drugs Standard Control Organization (CDSCO)",
			Description:   "National regulatory authority for pharmaceuticals",
			Link:          "https://cdsco.gov.in/",
			Category:      "Regulatory",
			Applicability: "All pharmaceutical companies",
		},
	}
}

// FallbackCategories returns the demo category list.
func FallbackCategories() []string {
	return []string{"Analgesic", "Antidiabetic", "Cardiovascular", "Gastrointestinal"}
}

// searchFallback applies the live matching rules to the demo catalog:
// case-insensitive substring on name or generic name, exact category filter
// unless the sentinel "all".
func searchFallback(term, category string) []entities.Drug {
	term = strings.ToLower(strings.TrimSpace(term))

	var out []entities.Drug
	for _, d := range FallbackDrugs() {
		if term != "" &&
			!strings.Contains(strings.ToLower(d.Name), term) &&
			!strings.Contains(strings.ToLower(d.GenericName), term) {
			continue
		}
		if category != "" && category != "all" && d.Category != category {
			continue
		}
		out = append(out, d)
	}

	if out == nil {
		out = []entities.Drug{}
	}
	return out
}
