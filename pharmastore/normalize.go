package pharmastore

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sumitkarde03/druglaunchindia/pharmastore/entities"
)

// parseAmount coerces a store numeric-as-text value into a float64. Any
// value that does not parse, or parses to NaN/Inf, becomes 0 so that the
// canonical entities never carry non-numeric amounts.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}

// parseCount coerces a store integer-as-text value, defaulting to 0.
func parseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		// Volumes sometimes arrive as "50000.0" from numeric columns.
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(f)
		}
		return 0
	}

	return n
}

// NormalizeDrug maps a raw store row into the canonical Drug shape. It is
// total: malformed numeric fields become 0, a missing manufacturer becomes
// "Unknown" and a missing export market list becomes an empty slice.
func NormalizeDrug(row DrugRow) entities.Drug {
	manufacturer := "Unknown"
	if row.Manufacturer != nil && row.Manufacturer.Name != "" {
		manufacturer = row.Manufacturer.Name
	}

	exportMarkets := row.ExportMarkets
	if exportMarkets == nil {
		exportMarkets = []string{}
	}

	return entities.Drug{
		ID:                row.ID,
		Name:              row.Name,
		GenericName:       row.GenericName,
		Manufacturer:      manufacturer,
		ApprovalDate:      row.ApprovalDate,
		Category:          row.Category,
		TherapeuticClass:  row.TherapeuticClass,
		DosageForm:        row.DosageForm,
		Strength:          row.Strength,
		PackSize:          row.PackSize,
		CurrentPrice:      parseAmount(row.CurrentPrice),
		LaunchPrice:       parseAmount(row.LaunchPrice),
		MRP:               parseAmount(row.MRP),
		RetailPrice:       parseAmount(row.RetailPrice),
		WholesalePrice:    parseAmount(row.WholesalePrice),
		ManufacturingCost: parseAmount(row.ManufacturingCost),
		MarketShare:       parseAmount(row.MarketShare),
		MonthlyVolume:     parseCount(row.MonthlyVolume),
		RegulatoryStatus:  row.RegulatoryStatus,
		PatentStatus:      row.PatentStatus,
		ExportMarkets:     exportMarkets,
	}
}

// NormalizePriceHistory maps stored history rows into the canonical series,
// preserving source order.
func NormalizePriceHistory(rows []PriceHistoryRow) []entities.PricePoint {
	out := make([]entities.PricePoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, entities.PricePoint{
			Date:   r.RecordedDate,
			Price:  parseAmount(r.Price),
			Volume: parseCount(r.Volume),
		})
	}
	return out
}

// NormalizePredictions maps stored prediction rows into the canonical
// series, preserving source order.
func NormalizePredictions(rows []PredictionRow) []entities.PredictedPrice {
	out := make([]entities.PredictedPrice, 0, len(rows))
	for _, r := range rows {
		out = append(out, entities.PredictedPrice{
			Date:       r.PredictionDate,
			Price:      parseAmount(r.PredictedPrice),
			Confidence: parseAmount(r.ConfidenceScore),
		})
	}
	return out
}

const (
	defaultRegulatoryLink          = "#"
	defaultRegulatoryApplicability = "All pharmaceutical companies"
)

// NormalizeRegulatory maps a raw regulatory row into the canonical shape,
// substituting the placeholder link and the fixed applicability string.
func NormalizeRegulatory(row RegulatoryRow) entities.RegulatoryUpdate {
	link := defaultRegulatoryLink
	if row.SourceURL != nil && *row.SourceURL != "" {
		link = *row.SourceURL
	}

	return entities.RegulatoryUpdate{
		Title:         row.Title,
		Description:   row.Description,
		Link:          link,
		Category:      row.Category,
		LastUpdated:   row.LastUpdated,
		ImpactLevel:   row.ImpactLevel,
		Applicability: defaultRegulatoryApplicability,
	}
}

// NormalizeProfile maps a raw profile row into the canonical shape.
func NormalizeProfile(row ProfileRow) entities.Profile {
	return entities.Profile{
		ID:        row.ID,
		Email:     row.Email,
		FullName:  row.FullName,
		Company:   row.Company,
		Role:      row.Role,
		Bio:       row.Bio,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// MetricKey derives the deterministic stats key from a free-text metric
// name: lowercase, trimmed, every run of non-alphanumeric characters
// collapsed into a single underscore. "Total Market Size (USD)" becomes
// "total_market_size_usd".
func MetricKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(name))

	pendingSep := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	return b.String()
}

// BuildMarketStats reduces raw stat rows into the flat key/value mapping.
// Later rows win on key collisions, matching store ordering by category.
func BuildMarketStats(rows []MarketStatRow) entities.MarketStats {
	stats := make(entities.MarketStats, len(rows))
	for _, r := range rows {
		key := MetricKey(r.MetricName)
		if key == "" {
			continue
		}
		stats[key] = r.MetricValue
	}
	return stats
}

var searchFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldSearchTerm prepares a user search term for case-insensitive matching:
// diacritics are stripped, the term is lowercased and inner whitespace is
// collapsed. Brand names entered as "Dolo 650" then match "dolo-650" rows
// through the ILIKE pattern.
func FoldSearchTerm(term string) string {
	folded, _, err := transform.String(searchFolder, term)
	if err != nil {
		folded = term
	}

	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
