package aggregator

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sumitkarde03/druglaunchindia/interfaces"
	"github.com/sumitkarde03/druglaunchindia/pharmastore"
	"github.com/sumitkarde03/druglaunchindia/pharmastore/entities"
)

// fakeStore implements interfaces.StoreClient with canned results.
type fakeStore struct {
	drugs      []pharmastore.DrugRow
	categories []string
	stats      []pharmastore.MarketStatRow
	regulatory []pharmastore.RegulatoryRow
	profiles   []pharmastore.ProfileRow
	history    []pharmastore.PriceHistoryRow
	preds      []pharmastore.PredictionRow
	err        error
}

func (f *fakeStore) ListDrugs(ctx context.Context) ([]pharmastore.DrugRow, error) {
	return f.drugs, f.err
}

func (f *fakeStore) SearchDrugs(ctx context.Context, term, category string) ([]pharmastore.DrugRow, error) {
	return f.drugs, f.err
}

func (f *fakeStore) DrugCategories(ctx context.Context) ([]string, error) {
	return f.categories, f.err
}

func (f *fakeStore) MarketStatRows(ctx context.Context) ([]pharmastore.MarketStatRow, error) {
	return f.stats, f.err
}

func (f *fakeStore) RegulatoryRows(ctx context.Context) ([]pharmastore.RegulatoryRow, error) {
	return f.regulatory, f.err
}

func (f *fakeStore) ProfileRows(ctx context.Context) ([]pharmastore.ProfileRow, error) {
	return f.profiles, f.err
}

func (f *fakeStore) UpdateProfile(ctx context.Context, userID string, upd entities.ProfileUpdate) (pharmastore.ProfileRow, error) {
	if f.err != nil {
		return pharmastore.ProfileRow{}, f.err
	}
	return pharmastore.ProfileRow{ID: userID, FullName: deref(upd.FullName)}, nil
}

func (f *fakeStore) DrugDetails(ctx context.Context, drugID string) (pharmastore.DrugRow, []pharmastore.PriceHistoryRow, []pharmastore.PredictionRow, error) {
	if f.err != nil {
		return pharmastore.DrugRow{}, nil, nil, f.err
	}
	if len(f.drugs) == 0 {
		return pharmastore.DrugRow{}, nil, nil, errors.New("no rows")
	}
	return f.drugs[0], f.history, f.preds, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var liveDrugRow = pharmastore.DrugRow{
	ID:           "id-1",
	Name:         "Metformin 500mg",
	GenericName:  "Metformin",
	Category:     "Antidiabetic",
	CurrentPrice: "10.5",
	LaunchPrice:  "8.0",
	Manufacturer: &pharmastore.ManufacturerRow{Name: "M"},
}

func TestGetDrugPricesNotConfigured(t *testing.T) {
	agg := New(nil, false)

	drugs, source := agg.GetDrugPrices(context.Background())

	if source != interfaces.SourceNotConfigured {
		t.Errorf("Expected source not_configured, got %s", source)
	}
	if !reflect.DeepEqual(drugs, FallbackDrugs()) {
		t.Error("Expected the demo catalog")
	}
}

func TestGetDrugPricesStoreError(t *testing.T) {
	agg := New(&fakeStore{err: errors.New("connection refused")}, true)

	drugs, source := agg.GetDrugPrices(context.Background())

	if source != interfaces.SourceFallbackError {
		t.Errorf("Expected source fallback_error, got %s", source)
	}
	if !reflect.DeepEqual(drugs, FallbackDrugs()) {
		t.Error("Expected the demo catalog on store failure")
	}
}

func TestGetDrugPricesStoreEmpty(t *testing.T) {
	agg := New(&fakeStore{}, true)

	drugs, source := agg.GetDrugPrices(context.Background())

	if source != interfaces.SourceFallbackEmpty {
		t.Errorf("Expected source fallback_empty, got %s", source)
	}
	if !reflect.DeepEqual(drugs, FallbackDrugs()) {
		t.Error("Expected the demo catalog on empty store")
	}
}

func TestGetDrugPricesLive(t *testing.T) {
	agg := New(&fakeStore{drugs: []pharmastore.DrugRow{liveDrugRow}}, true)

	drugs, source := agg.GetDrugPrices(context.Background())

	if source != interfaces.SourceLive {
		t.Fatalf("Expected source live, got %s", source)
	}
	if len(drugs) != 1 {
		t.Fatalf("Expected 1 drug, got %d", len(drugs))
	}

	drug := drugs[0]
	if drug.CurrentPrice != 10.5 {
		t.Errorf("Expected current price 10.5, got %v", drug.CurrentPrice)
	}
	if drug.Manufacturer != "M" {
		t.Errorf("Expected manufacturer M, got %q", drug.Manufacturer)
	}
	if len(drug.PriceHistory) != 4 {
		t.Errorf("Expected 4 history points, got %d", len(drug.PriceHistory))
	}
	if len(drug.PredictedPrices) != 3 {
		t.Errorf("Expected 3 predictions, got %d", len(drug.PredictedPrices))
	}
	if len(drug.CompetitorAnalysis) != 3 {
		t.Errorf("Expected 3 competitors, got %d", len(drug.CompetitorAnalysis))
	}
	if drug.PriceHistory[0].Price != 8.0 {
		t.Errorf("Expected history to start at launch price, got %v", drug.PriceHistory[0].Price)
	}
	if drug.PriceHistory[3].Price != 10.5 {
		t.Errorf("Expected history to end at current price, got %v", drug.PriceHistory[3].Price)
	}
	if drug.PredictedPrices[0].Price != 10.5*1.04 {
		t.Errorf("Expected first prediction 4%% above current, got %v", drug.PredictedPrices[0].Price)
	}
}

func TestSearchDrugsLiveEmptyIsNotDegraded(t *testing.T) {
	// A reachable store that finds nothing answered the question. The
	// result stays live and empty instead of flipping to the demo catalog.
	agg := New(&fakeStore{}, true)

	drugs, source := agg.SearchDrugs(context.Background(), "nonexistent", "")

	if source != interfaces.SourceLive {
		t.Errorf("Expected source live for empty search, got %s", source)
	}
	if len(drugs) != 0 {
		t.Errorf("Expected empty result, got %d drugs", len(drugs))
	}
}

func TestSearchDrugsFallbackFiltering(t *testing.T) {
	agg := New(nil, false)

	testCases := []struct {
		name     string
		term     string
		category string
		matches  int
	}{
		{"matches name", "paracetamol", "", 1},
		{"matches generic name", "acetaminophen", "", 1},
		{"case insensitive", "PARACETAMOL", "", 1},
		{"category filter matches", "paracetamol", "Analgesic", 1},
		{"category sentinel all", "paracetamol", "all", 1},
		{"category filter excludes", "paracetamol", "Antidiabetic", 0},
		{"no match", "ibuprofen", "", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			drugs, source := agg.SearchDrugs(context.Background(), tc.term, tc.category)

			if source != interfaces.SourceNotConfigured {
				t.Errorf("Expected source not_configured, got %s", source)
			}
			if drugs == nil {
				t.Fatal("Expected non-nil result slice")
			}
			if len(drugs) != tc.matches {
				t.Errorf("Expected %d matches, got %d", tc.matches, len(drugs))
			}
		})
	}
}

func TestGetMarketStatsLive(t *testing.T) {
	agg := New(&fakeStore{stats: []pharmastore.MarketStatRow{
		{MetricName: "Total Market Size (USD)", MetricValue: "60 Billion USD"},
	}}, true)

	stats, source := agg.GetMarketStats(context.Background())

	if source != interfaces.SourceLive {
		t.Errorf("Expected source live, got %s", source)
	}
	if stats["total_market_size_usd"] != "60 Billion USD" {
		t.Errorf("Expected slugged stat key, got %v", stats)
	}
}

func TestGetMarketStatsAllKeysSlugToEmpty(t *testing.T) {
	// Rows whose metric names all slug to nothing leave an empty mapping,
	// which counts as an empty store answer.
	agg := New(&fakeStore{stats: []pharmastore.MarketStatRow{
		{MetricName: "()", MetricValue: "x"},
	}}, true)

	stats, source := agg.GetMarketStats(context.Background())

	if source != interfaces.SourceFallbackEmpty {
		t.Errorf("Expected source fallback_empty, got %s", source)
	}
	if !reflect.DeepEqual(stats, FallbackMarketStats()) {
		t.Error("Expected the demo market stats")
	}
}

func TestGetRegulatoryInfoLive(t *testing.T) {
	agg := New(&fakeStore{regulatory: []pharmastore.RegulatoryRow{
		{Title: "New GMP Schedule"},
	}}, true)

	updates, source := agg.GetRegulatoryInfo(context.Background())

	if source != interfaces.SourceLive {
		t.Errorf("Expected source live, got %s", source)
	}
	if len(updates) != 1 || updates[0].Title != "New GMP Schedule" {
		t.Errorf("Expected normalized live updates, got %v", updates)
	}
	if updates[0].Link != "#" {
		t.Errorf("Expected placeholder link for NULL source URL, got %q", updates[0].Link)
	}
}

func TestGetDrugDetailsFallbackByID(t *testing.T) {
	agg := New(nil, false)

	details, source, err := agg.GetDrugDetails(context.Background(), "demo-1")
	if err != nil {
		t.Fatalf("Expected demo-1 to resolve, got %v", err)
	}

	if source != interfaces.SourceNotConfigured {
		t.Errorf("Expected source not_configured, got %s", source)
	}
	if details.Drug.Name != "Paracetamol 500mg" {
		t.Errorf("Expected demo drug, got %q", details.Drug.Name)
	}
	if len(details.PriceHistory) != 6 {
		t.Errorf("Expected 6 demo history points, got %d", len(details.PriceHistory))
	}
}

func TestGetDrugDetailsUnknownID(t *testing.T) {
	agg := New(nil, false)

	if _, _, err := agg.GetDrugDetails(context.Background(), "demo-999"); err == nil {
		t.Fatal("Expected error for unknown drug id")
	}
}

func TestGetDrugDetailsStoreErrorFallsBack(t *testing.T) {
	agg := New(&fakeStore{err: errors.New("connection refused")}, true)

	details, source, err := agg.GetDrugDetails(context.Background(), "demo-1")
	if err != nil {
		t.Fatalf("Expected fallback hit, got %v", err)
	}
	if source != interfaces.SourceFallbackError {
		t.Errorf("Expected source fallback_error, got %s", source)
	}
	if details.Drug.ID != "demo-1" {
		t.Errorf("Expected demo-1, got %q", details.Drug.ID)
	}
}

func TestGetUserProfilesNotConfigured(t *testing.T) {
	agg := New(nil, false)

	if _, err := agg.GetUserProfiles(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestGetUserProfilesStoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection refused")
	agg := New(&fakeStore{err: storeErr}, true)

	if _, err := agg.GetUserProfiles(context.Background()); !errors.Is(err, storeErr) {
		t.Errorf("Expected store error to propagate, got %v", err)
	}
}

func TestUpdateProfileRequiresUser(t *testing.T) {
	agg := New(&fakeStore{}, true)

	_, err := agg.UpdateProfile(context.Background(), "", entities.ProfileUpdate{})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated, got %v", err)
	}
}

func TestUpdateProfileNotConfigured(t *testing.T) {
	agg := New(nil, false)

	_, err := agg.UpdateProfile(context.Background(), "user-1", entities.ProfileUpdate{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestUpdateProfileLive(t *testing.T) {
	agg := New(&fakeStore{}, true)

	name := "New Name"
	profile, err := agg.UpdateProfile(context.Background(), "user-1", entities.ProfileUpdate{FullName: &name})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if profile.ID != "user-1" || profile.FullName != "New Name" {
		t.Errorf("Expected normalized updated profile, got %+v", profile)
	}
}

func TestFallbacksAreDeepEqualAcrossCalls(t *testing.T) {
	if !reflect.DeepEqual(FallbackDrugs(), FallbackDrugs()) {
		t.Error("Expected successive demo catalogs to be deep-equal")
	}
	if !reflect.DeepEqual(FallbackMarketStats(), FallbackMarketStats()) {
		t.Error("Expected successive demo market stats to be deep-equal")
	}
	if !reflect.DeepEqual(FallbackRegulatoryUpdates(), FallbackRegulatoryUpdates()) {
		t.Error("Expected successive demo regulatory updates to be deep-equal")
	}
	if !reflect.DeepEqual(FallbackCategories(), FallbackCategories()) {
		t.Error("Expected successive demo categories to be deep-equal")
	}
}

func TestFallbackMutationDoesNotLeak(t *testing.T) {
	first := FallbackDrugs()
	first[0].Name = "mutated"
	first[0].PriceHistory[0].Price = 999

	second := FallbackDrugs()
	if second[0].Name != "Paracetamol 500mg" {
		t.Error("Expected caller mutation of the catalog not to leak")
	}
	if second[0].PriceHistory[0].Price != 2.00 {
		t.Error("Expected caller mutation of nested series not to leak")
	}
}

func TestFallbackMarketStatsShape(t *testing.T) {
	stats := FallbackMarketStats()

	if len(stats) != 10 {
		t.Fatalf("Expected 10 demo stats, got %d", len(stats))
	}
	for key := range stats {
		if key != pharmastore.MetricKey(key) {
			t.Errorf("Expected stat key %q to already be in slug form", key)
		}
	}
}
