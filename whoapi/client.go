// Package whoapi is the client for the WHO Global Health Observatory API.
// Indicator requests fan out concurrently and each failure is captured per
// entry, so one broken indicator never aborts a batch.
package whoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sumitkarde03/druglaunchindia/logging"
	"github.com/sumitkarde03/druglaunchindia/metrics"
)

// DefaultBaseURL is the public GHO OData endpoint.
const DefaultBaseURL = "https://ghoapi.azureedge.net/api"

// DefaultTimeout bounds every indicator request. A hung upstream call
// degrades to a per-entry failure instead of stalling the caller.
const DefaultTimeout = 15 * time.Second

// Indicators is the fixed set of health indicators relevant to the
// pharmaceutical market, queried on every health-data request.
var Indicators = []string{
	"WHOSIS_000001",       // Life expectancy at birth
	"WHOSIS_000015",       // Infant mortality rate
	"WHS9_86",             // Total expenditure on health as % of GDP
	"WHS7_156",            // Out-of-pocket expenditure on health
	"GHED_CHEGDP_SHA2011", // Current health expenditure (CHE) as % of GDP
	"WHS4_544",            // Physicians density per 1000 population
	"WHS4_543",            // Hospital beds per 10,000 population
	"MDG_0000000026",      // Under-five mortality rate
	"WHOSIS_000002",       // Healthy life expectancy at birth
	"WHS8_110",            // Universal health coverage service coverage index
}

// globalIndicators is the reduced set used for worldwide statistics.
var globalIndicators = []string{
	"WHOSIS_000001",
	"WHS9_86",
}

var indicatorNames = map[string]string{
	"WHOSIS_000001":       "Life Expectancy at Birth",
	"WHOSIS_000015":       "Infant Mortality Rate",
	"WHS9_86":             "Health Expenditure % of GDP",
	"WHS7_156":            "Out-of-pocket Health Expenditure",
	"GHED_CHEGDP_SHA2011": "Current Health Expenditure % GDP",
	"WHS4_544":            "Physicians Density per 1000",
	"WHS4_543":            "Hospital Beds per 10,000",
	"MDG_0000000026":      "Under-five Mortality Rate",
	"WHOSIS_000002":       "Healthy Life Expectancy",
	"WHS8_110":            "UHC Service Coverage Index",
}

// IndicatorName resolves a code to its display name, passing unknown codes
// through unchanged.
func IndicatorName(code string) string {
	if name, ok := indicatorNames[code]; ok {
		return name
	}
	return code
}

// IndicatorData is the GHO response body shape.
type IndicatorData struct {
	Value []map[string]any `json:"value"`
}

// IndicatorResult is one settled indicator request. Callers must check
// Success per entry; a non-empty batch never implies usable data.
type IndicatorResult struct {
	Indicator string        `json:"indicator"`
	Name      string        `json:"name"`
	Data      IndicatorData `json:"data"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// Dimension is one GHO dimension descriptor.
type Dimension struct {
	Code  string `json:"Code"`
	Title string `json:"Title"`
}

// Client issues requests against the GHO API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the given base URL. An empty base URL
// selects the public endpoint; a zero timeout selects the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8*1024*1024))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}

	return nil
}

func (c *Client) indicatorURL(code, country string) string {
	u := c.baseURL + "/" + code
	if country != "" {
		u += "?$filter=" + url.QueryEscape(fmt.Sprintf("SpatialDim eq '%s'", country))
	}
	return u
}

// fetchIndicator resolves a single indicator into a settled result, never
// an error.
func (c *Client) fetchIndicator(ctx context.Context, code, country string) IndicatorResult {
	result := IndicatorResult{
		Indicator: code,
		Name:      IndicatorName(code),
		Data:      IndicatorData{Value: []map[string]any{}},
	}

	var data IndicatorData
	if err := c.getJSON(ctx, c.indicatorURL(code, country), &data); err != nil {
		logging.Warn("Failed to fetch indicator", "indicator", code, "error", err)
		metrics.WHOIndicatorRequestsTotal.WithLabelValues("error").Inc()
		result.Error = err.Error()
		return result
	}

	if data.Value == nil {
		data.Value = []map[string]any{}
	}
	metrics.WHOIndicatorRequestsTotal.WithLabelValues("ok").Inc()
	result.Data = data
	result.Success = true

	return result
}

func (c *Client) fetchBatch(ctx context.Context, codes []string, country string) []IndicatorResult {
	results := make([]IndicatorResult, len(codes))

	var wg sync.WaitGroup
	for i, code := range codes {
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()
			results[i] = c.fetchIndicator(ctx, code, country)
		}(i, code)
	}
	wg.Wait()

	return results
}

// GetHealthData fetches the full indicator set for one country. The batch
// always contains one entry per indicator, failed ones flagged with
// Success=false.
func (c *Client) GetHealthData(ctx context.Context, country string) []IndicatorResult {
	return c.fetchBatch(ctx, Indicators, country)
}

// GetGlobalHealthStats fetches the worldwide indicator subset without a
// spatial filter.
func (c *Client) GetGlobalHealthStats(ctx context.Context) []IndicatorResult {
	return c.fetchBatch(ctx, globalIndicators, "")
}

// GetDimensions lists the GHO dimension descriptors. Failures degrade to an
// empty list, mirroring the read-path policy of the aggregation layer.
func (c *Client) GetDimensions(ctx context.Context) []Dimension {
	var payload struct {
		Value []Dimension `json:"value"`
	}

	if err := c.getJSON(ctx, c.baseURL+"/Dimension", &payload); err != nil {
		logging.Error("Failed to fetch dimensions", "error", err)
		return []Dimension{}
	}

	return payload.Value
}
