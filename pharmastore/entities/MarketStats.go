package entities

// MarketStats is a flat mapping from a slugged metric name to its display
// value, e.g. "total_market_size_usd" -> "50.7 Billion USD".
type MarketStats map[string]string
