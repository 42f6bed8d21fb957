package entities

// Drug is the canonical, UI-facing drug shape. Commercial fields are always
// populated numbers; the store boundary coerces missing or malformed values
// to zero before a Drug is built.
type Drug struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	GenericName       string   `json:"genericName"`
	Manufacturer      string   `json:"manufacturer"`
	ApprovalDate      string   `json:"approvalDate"`
	Category          string   `json:"category"`
	TherapeuticClass  string   `json:"therapeuticClass"`
	DosageForm        string   `json:"dosageForm"`
	Strength          string   `json:"strength"`
	PackSize          string   `json:"packSize"`
	CurrentPrice      float64  `json:"currentPrice"`
	LaunchPrice       float64  `json:"launchPrice"`
	MRP               float64  `json:"mrp"`
	RetailPrice       float64  `json:"retailPrice"`
	WholesalePrice    float64  `json:"wholesalePrice"`
	ManufacturingCost float64  `json:"manufacturingCost"`
	MarketShare       float64  `json:"marketShare"`
	MonthlyVolume     int      `json:"monthlyVolume"`
	RegulatoryStatus  string   `json:"regulatoryStatus"`
	PatentStatus      string   `json:"patentStatus"`
	ExportMarkets     []string `json:"exportMarkets"`

	// Attached time series, not part of the stored row.
	PriceHistory       []PricePoint     `json:"priceHistory"`
	PredictedPrices    []PredictedPrice `json:"predictedPrices"`
	CompetitorAnalysis []Competitor     `json:"competitorAnalysis"`
}

// PricePoint is one observation in a drug price history series.
type PricePoint struct {
	Date   string  `json:"date"`
	Price  float64 `json:"price"`
	Volume int     `json:"volume"`
}

// PredictedPrice is one forward-looking price estimate with a confidence in [0,1].
type PredictedPrice struct {
	Date       string  `json:"date"`
	Price      float64 `json:"price"`
	Confidence float64 `json:"confidence"`
}

// Competitor is one row of the competitor landscape attached to a drug.
type Competitor struct {
	Company     string  `json:"company"`
	MarketShare float64 `json:"marketShare"`
	Price       float64 `json:"price"`
}

// DrugDetails bundles a drug with its stored price history and predictions,
// as returned by the drug detail lookup.
type DrugDetails struct {
	Drug            Drug             `json:"drug"`
	PriceHistory    []PricePoint     `json:"priceHistory"`
	PredictedPrices []PredictedPrice `json:"predictedPrices"`
}
