package entities

// RegulatoryUpdate is one regulatory or policy notice shown on the dashboard.
type RegulatoryUpdate struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Link          string `json:"link"`
	Category      string `json:"category"`
	LastUpdated   string `json:"lastUpdated"`
	ImpactLevel   string `json:"impactLevel"`
	Applicability string `json:"applicability"`
}
