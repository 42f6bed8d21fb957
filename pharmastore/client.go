package pharmastore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sumitkarde03/druglaunchindia/pharmastore/entities"
)

// storeRows is the subset of pgx.Rows the client consumes. Keeping it small
// lets tests feed canned rows without a live database.
type storeRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// storeRow is a single row returned by QueryRow.
type storeRow interface {
	Scan(dest ...any) error
}

// querier is the minimal database interface required by Client. Both
// *pgxpool.Pool (via poolQuerier) and test fakes implement it.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (storeRows, error)
	QueryRow(ctx context.Context, sql string, args ...any) storeRow
}

// poolQuerier adapts *pgxpool.Pool to the querier interface.
type poolQuerier struct {
	pool *pgxpool.Pool
}

func (p poolQuerier) Query(ctx context.Context, sql string, args ...any) (storeRows, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (p poolQuerier) QueryRow(ctx context.Context, sql string, args ...any) storeRow {
	return p.pool.QueryRow(ctx, sql, args...)
}

// Client issues read and write queries against the hosted relational store.
// Every read returns raw rows plus an error; an empty slice with a nil error
// is a valid outcome and is distinct from a failure.
type Client struct {
	db querier
}

// NewClient builds a client over any querier. Used directly by tests.
func NewClient(db querier) *Client {
	return &Client{db: db}
}

// NewClientFromPool builds a client backed by a pgx connection pool.
func NewClientFromPool(pool *pgxpool.Pool) *Client {
	return &Client{db: poolQuerier{pool: pool}}
}

// drugColumns selects every drug column the normalizer consumes. Numeric
// columns are cast to text so NULL and malformed values reach the
// normalizer unchanged instead of failing the scan.
const drugColumns = `
	d.id::text,
	COALESCE(d.name, ''),
	COALESCE(d.generic_name, ''),
	COALESCE(d.approval_date::text, ''),
	COALESCE(d.category, ''),
	COALESCE(d.therapeutic_class, ''),
	COALESCE(d.dosage_form, ''),
	COALESCE(d.strength, ''),
	COALESCE(d.pack_size, ''),
	COALESCE(d.current_price::text, ''),
	COALESCE(d.launch_price::text, ''),
	COALESCE(d.mrp::text, ''),
	COALESCE(d.retail_price::text, ''),
	COALESCE(d.wholesale_price::text, ''),
	COALESCE(d.manufacturing_cost::text, ''),
	COALESCE(d.market_share::text, ''),
	COALESCE(d.monthly_volume::text, ''),
	COALESCE(d.regulatory_status, ''),
	COALESCE(d.patent_status, ''),
	COALESCE(d.export_markets, '{}'),
	m.name,
	m.country,
	m.who_gmp_certified,
	m.fda_approved`

const drugFromJoin = `
FROM drugs d
LEFT JOIN manufacturers m ON m.id = d.manufacturer_id`

func scanDrugRow(rows storeRow) (DrugRow, error) {
	var d DrugRow
	var mName, mCountry *string
	var mGMP, mFDA *bool

	err := rows.Scan(
		&d.ID, &d.Name, &d.GenericName, &d.ApprovalDate, &d.Category,
		&d.TherapeuticClass, &d.DosageForm, &d.Strength, &d.PackSize,
		&d.CurrentPrice, &d.LaunchPrice, &d.MRP, &d.RetailPrice,
		&d.WholesalePrice, &d.ManufacturingCost, &d.MarketShare,
		&d.MonthlyVolume, &d.RegulatoryStatus, &d.PatentStatus,
		&d.ExportMarkets, &mName, &mCountry, &mGMP, &mFDA,
	)
	if err != nil {
		return DrugRow{}, err
	}

	if mName != nil {
		m := &ManufacturerRow{Name: *mName}
		if mCountry != nil {
			m.Country = *mCountry
		}
		if mGMP != nil {
			m.GMPCertified = *mGMP
		}
		if mFDA != nil {
			m.FDAApproved = *mFDA
		}
		d.Manufacturer = m
	}

	return d, nil
}

func (c *Client) collectDrugRows(rows storeRows) ([]DrugRow, error) {
	defer rows.Close()

	var out []DrugRow
	for rows.Next() {
		d, err := scanDrugRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan drug row: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drug rows: %w", err)
	}

	return out, nil
}

// ListDrugs returns every drug joined with its manufacturer, ordered by
// drug name.
func (c *Client) ListDrugs(ctx context.Context) ([]DrugRow, error) {
	query := "SELECT" + drugColumns + drugFromJoin + "\nORDER BY d.name"

	rows, err := c.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list drugs: %w", err)
	}

	return c.collectDrugRows(rows)
}

// SearchDrugs matches term case-insensitively against name or generic name.
// A category other than "" or "all" adds an exact category filter.
func (c *Client) SearchDrugs(ctx context.Context, term, category string) ([]DrugRow, error) {
	query := "SELECT" + drugColumns + drugFromJoin + `
WHERE (d.name ILIKE '%' || $1 || '%' OR d.generic_name ILIKE '%' || $1 || '%')`
	args := []any{FoldSearchTerm(term)}

	if category != "" && category != "all" {
		query += "\nAND d.category = $2"
		args = append(args, category)
	}
	query += "\nORDER BY d.name"

	rows, err := c.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search drugs: %w", err)
	}

	return c.collectDrugRows(rows)
}

// DrugCategories returns the distinct category values, ordered.
func (c *Client) DrugCategories(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT category FROM drugs
WHERE category IS NOT NULL AND category <> ''
ORDER BY category`

	rows, err := c.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("drug categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var cat string
		if err := rows.Scan(&cat); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return out, nil
}

// MarketStatRows returns every market statistic row, ordered by category.
func (c *Client) MarketStatRows(ctx context.Context) ([]MarketStatRow, error) {
	const query = `SELECT COALESCE(category, ''), metric_name, COALESCE(metric_value, '')
FROM market_stats
ORDER BY category`

	rows, err := c.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("market stats: %w", err)
	}
	defer rows.Close()

	var out []MarketStatRow
	for rows.Next() {
		var s MarketStatRow
		if err := rows.Scan(&s.Category, &s.MetricName, &s.MetricValue); err != nil {
			return nil, fmt.Errorf("scan market stat: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate market stats: %w", err)
	}

	return out, nil
}

// RegulatoryRows returns regulatory updates, newest first.
func (c *Client) RegulatoryRows(ctx context.Context) ([]RegulatoryRow, error) {
	const query = `SELECT title, COALESCE(description, ''), source_url,
COALESCE(category, ''), COALESCE(last_updated::text, ''), COALESCE(impact_level, '')
FROM regulatory_updates
ORDER BY last_updated DESC`

	rows, err := c.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("regulatory updates: %w", err)
	}
	defer rows.Close()

	var out []RegulatoryRow
	for rows.Next() {
		var r RegulatoryRow
		if err := rows.Scan(&r.Title, &r.Description, &r.SourceURL, &r.Category, &r.LastUpdated, &r.ImpactLevel); err != nil {
			return nil, fmt.Errorf("scan regulatory update: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regulatory updates: %w", err)
	}

	return out, nil
}

// ProfileRows returns user profiles, newest first.
func (c *Client) ProfileRows(ctx context.Context) ([]ProfileRow, error) {
	const query = `SELECT id::text, COALESCE(email, ''), COALESCE(full_name, ''),
COALESCE(company, ''), COALESCE(role, ''), COALESCE(bio, ''), created_at, updated_at
FROM profiles
ORDER BY created_at DESC`

	rows, err := c.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("profiles: %w", err)
	}
	defer rows.Close()

	var out []ProfileRow
	for rows.Next() {
		var p ProfileRow
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.Company, &p.Role, &p.Bio, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	return out, nil
}

// UpdateProfile upserts the given fields on the caller's profile row and
// stamps updated_at. Nil fields are left unchanged.
func (c *Client) UpdateProfile(ctx context.Context, userID string, upd entities.ProfileUpdate) (ProfileRow, error) {
	const query = `UPDATE profiles SET
	full_name  = COALESCE($2, full_name),
	company    = COALESCE($3, company),
	role       = COALESCE($4, role),
	bio        = COALESCE($5, bio),
	updated_at = now()
WHERE id = $1
RETURNING id::text, COALESCE(email, ''), COALESCE(full_name, ''),
	COALESCE(company, ''), COALESCE(role, ''), COALESCE(bio, ''), created_at, updated_at`

	var p ProfileRow
	err := c.db.QueryRow(ctx, query, userID, upd.FullName, upd.Company, upd.Role, upd.Bio).
		Scan(&p.ID, &p.Email, &p.FullName, &p.Company, &p.Role, &p.Bio, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return ProfileRow{}, fmt.Errorf("update profile: %w", err)
	}

	return p, nil
}

// DrugDetails returns one drug with its stored price history and
// predictions. Any failure, including on the sub-queries, fails the whole
// call: a detail view without its identity row is meaningless.
func (c *Client) DrugDetails(ctx context.Context, drugID string) (DrugRow, []PriceHistoryRow, []PredictionRow, error) {
	query := "SELECT" + drugColumns + drugFromJoin + "\nWHERE d.id = $1"

	drug, err := scanDrugRow(c.db.QueryRow(ctx, query, drugID))
	if err != nil {
		return DrugRow{}, nil, nil, fmt.Errorf("drug details %s: %w", drugID, err)
	}

	history, err := c.priceHistory(ctx, drugID)
	if err != nil {
		return DrugRow{}, nil, nil, err
	}

	predictions, err := c.predictions(ctx, drugID)
	if err != nil {
		return DrugRow{}, nil, nil, err
	}

	return drug, history, predictions, nil
}

func (c *Client) priceHistory(ctx context.Context, drugID string) ([]PriceHistoryRow, error) {
	const query = `SELECT COALESCE(recorded_date::text, ''), COALESCE(price::text, ''), COALESCE(volume::text, '')
FROM drug_price_history
WHERE drug_id = $1
ORDER BY recorded_date`

	rows, err := c.db.Query(ctx, query, drugID)
	if err != nil {
		return nil, fmt.Errorf("price history %s: %w", drugID, err)
	}
	defer rows.Close()

	var out []PriceHistoryRow
	for rows.Next() {
		var h PriceHistoryRow
		if err := rows.Scan(&h.RecordedDate, &h.Price, &h.Volume); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price history: %w", err)
	}

	return out, nil
}

func (c *Client) predictions(ctx context.Context, drugID string) ([]PredictionRow, error) {
	const query = `SELECT COALESCE(prediction_date::text, ''), COALESCE(predicted_price::text, ''), COALESCE(confidence_score::text, '')
FROM drug_predictions
WHERE drug_id = $1
ORDER BY prediction_date`

	rows, err := c.db.Query(ctx, query, drugID)
	if err != nil {
		return nil, fmt.Errorf("predictions %s: %w", drugID, err)
	}
	defer rows.Close()

	var out []PredictionRow
	for rows.Next() {
		var p PredictionRow
		if err := rows.Scan(&p.PredictionDate, &p.PredictedPrice, &p.ConfidenceScore); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate predictions: %w", err)
	}

	return out, nil
}
