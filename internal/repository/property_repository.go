package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/auctionwatch/api/internal/database"
	"github.com/auctionwatch/api/internal/filters"
	"github.com/auctionwatch/api/internal/models"
)

// ScoreUpdate carries the recomputed metrics for one stored property,
// together with the water features detected during rescoring. Features
// always replace the previous set, never merge with it.
type ScoreUpdate struct {
	PropertyID      int64
	WaterScore      float64
	InvestmentScore float64
	PricePerAcre    *float64
	Features        []models.WaterFeatureRecord
}

// RescoreRow is the minimal projection of a stored property needed to
// recompute its scores.
type RescoreRow struct {
	ID          int64
	ParcelID    string
	Description *string
	Amount      *float64
	Acreage     *float64
}

// PropertyRepository defines the interface for scored property data access.
type PropertyRepository interface {
	// ListProperties returns the page of properties matching the filter,
	// in the requested sort order.
	// Returns an empty slice if nothing matches (not an error).
	// Returns error only for actual database failures.
	ListProperties(ctx context.Context, filter filters.PropertyFilterSpec, sort filters.PropertySortSpec, page filters.PaginationSpec) ([]models.ScoredProperty, error)

	// CountProperties returns the total number of properties matching the
	// filter, ignoring pagination.
	CountProperties(ctx context.Context, filter filters.PropertyFilterSpec) (int, error)

	// GetByParcelID returns the stored property with the given parcel ID.
	// Returns nil, nil if no property is found (not an error).
	GetByParcelID(ctx context.Context, parcelID string) (*models.ScoredProperty, error)

	// ListCounties returns the distinct counties present in the table,
	// alphabetically.
	ListCounties(ctx context.Context) ([]string, error)

	// ListForRescore returns every stored property in the minimal
	// projection needed to recompute its scores.
	ListForRescore(ctx context.Context) ([]RescoreRow, error)

	// UpdateScores applies all score updates in a single transaction.
	// Each property's water features are replaced wholesale. Either every
	// update lands or none do.
	UpdateScores(ctx context.Context, updates []ScoreUpdate) error

	// ListWaterFeatures returns the water features recorded for a stored
	// property, highest score first.
	ListWaterFeatures(ctx context.Context, propertyID int64) ([]models.WaterFeatureRecord, error)
}

// propertyRepository is the concrete implementation of PropertyRepository.
type propertyRepository struct {
	db *database.Database
}

// NewPropertyRepository creates a new instance of PropertyRepository.
func NewPropertyRepository(db *database.Database) PropertyRepository {
	return &propertyRepository{
		db: db,
	}
}

// propertyColumns is the scan order shared by every property query.
const propertyColumns = `
	id,
	parcel_id,
	county,
	description,
	year_sold,
	amount,
	acreage,
	price_per_acre,
	water_score,
	investment_score,
	assessed_value_ratio,
	created_at,
	updated_at`

func scanProperty(row pgx.Row) (models.ScoredProperty, error) {
	var p models.ScoredProperty
	err := row.Scan(
		&p.ID,
		&p.ParcelID,
		&p.County,
		&p.Description,
		&p.YearSold,
		&p.Amount,
		&p.Acreage,
		&p.PricePerAcre,
		&p.WaterScore,
		&p.InvestmentScore,
		&p.AssessedValueRatio,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// ListProperties queries the properties table with the filter rendered
// as a parameterized WHERE clause. The sort column went through the
// filters whitelist, so interpolating the ORDER BY fragment is safe;
// LIMIT and OFFSET parameters are numbered after the filter parameters.
func (r *propertyRepository) ListProperties(ctx context.Context, filter filters.PropertyFilterSpec, sort filters.PropertySortSpec, page filters.PaginationSpec) ([]models.ScoredProperty, error) {
	where, params := filters.BuildWhereClause(filter, 1)

	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		propertyColumns, where, sort.OrderByClause(), len(params)+1, len(params)+2)
	params = append(params, page.PageSize, page.Offset())

	rows, err := r.db.Pool.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	var results []models.ScoredProperty

	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}

	// Return empty slice if no properties found (not an error)
	if results == nil {
		results = []models.ScoredProperty{}
	}

	return results, nil
}

// CountProperties counts the rows matching the filter, ignoring pagination.
func (r *propertyRepository) CountProperties(ctx context.Context, filter filters.PropertyFilterSpec) (int, error) {
	where, params := filters.BuildWhereClause(filter, 1)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM properties WHERE %s`, where)

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, params...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}

	return count, nil
}

// GetByParcelID fetches a single stored property by its parcel ID.
func (r *propertyRepository) GetByParcelID(ctx context.Context, parcelID string) (*models.ScoredProperty, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE parcel_id = $1
		LIMIT 1`, propertyColumns)

	p, err := scanProperty(r.db.Pool.QueryRow(ctx, query, parcelID))

	// Handle no rows found - this is not an error at the repository level
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query property %s: %w", parcelID, err)
	}

	return &p, nil
}

// ListCounties returns the distinct counties, alphabetically.
func (r *propertyRepository) ListCounties(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT county FROM properties ORDER BY county`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query counties: %w", err)
	}
	defer rows.Close()

	var counties []string
	for rows.Next() {
		var county string
		if err := rows.Scan(&county); err != nil {
			return nil, fmt.Errorf("failed to scan county row: %w", err)
		}
		counties = append(counties, county)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating county rows: %w", err)
	}

	if counties == nil {
		counties = []string{}
	}

	return counties, nil
}

// ListForRescore streams the whole table in the minimal rescoring projection.
func (r *propertyRepository) ListForRescore(ctx context.Context) ([]RescoreRow, error) {
	query := `
		SELECT id, parcel_id, description, amount, acreage
		FROM properties
		ORDER BY id`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties for rescore: %w", err)
	}
	defer rows.Close()

	var results []RescoreRow
	for rows.Next() {
		var row RescoreRow
		if err := rows.Scan(&row.ID, &row.ParcelID, &row.Description, &row.Amount, &row.Acreage); err != nil {
			return nil, fmt.Errorf("failed to scan rescore row: %w", err)
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rescore rows: %w", err)
	}

	if results == nil {
		results = []RescoreRow{}
	}

	return results, nil
}

// UpdateScores writes every score update and its water features inside a
// single transaction so a partial rescore never becomes visible.
func (r *propertyRepository) UpdateScores(ctx context.Context, updates []ScoreUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin score update transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const updateQuery = `
		UPDATE properties
		SET water_score = $1,
			investment_score = $2,
			price_per_acre = $3,
			updated_at = NOW()
		WHERE id = $4`

	const deleteFeaturesQuery = `DELETE FROM property_water_features WHERE property_id = $1`

	const insertFeatureQuery = `
		INSERT INTO property_water_features (property_id, feature_name, feature_tier, score)
		VALUES ($1, $2, $3, $4)`

	for _, u := range updates {
		tag, err := tx.Exec(ctx, updateQuery, u.WaterScore, u.InvestmentScore, u.PricePerAcre, u.PropertyID)
		if err != nil {
			return fmt.Errorf("failed to update scores for property %d: %w", u.PropertyID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("property %d not found during score update", u.PropertyID)
		}

		// Replace features wholesale
		if _, err := tx.Exec(ctx, deleteFeaturesQuery, u.PropertyID); err != nil {
			return fmt.Errorf("failed to clear water features for property %d: %w", u.PropertyID, err)
		}
		for _, f := range u.Features {
			if _, err := tx.Exec(ctx, insertFeatureQuery, u.PropertyID, f.FeatureName, f.FeatureTier, f.Score); err != nil {
				return fmt.Errorf("failed to insert water feature for property %d: %w", u.PropertyID, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit score update transaction: %w", err)
	}

	return nil
}

// ListWaterFeatures returns a property's recorded features, highest score first.
func (r *propertyRepository) ListWaterFeatures(ctx context.Context, propertyID int64) ([]models.WaterFeatureRecord, error) {
	query := `
		SELECT property_id, feature_name, feature_tier, score
		FROM property_water_features
		WHERE property_id = $1
		ORDER BY score DESC, feature_name`

	rows, err := r.db.Pool.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query water features for property %d: %w", propertyID, err)
	}
	defer rows.Close()

	var features []models.WaterFeatureRecord
	for rows.Next() {
		var f models.WaterFeatureRecord
		if err := rows.Scan(&f.PropertyID, &f.FeatureName, &f.FeatureTier, &f.Score); err != nil {
			return nil, fmt.Errorf("failed to scan water feature row: %w", err)
		}
		features = append(features, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating water feature rows: %w", err)
	}

	if features == nil {
		features = []models.WaterFeatureRecord{}
	}

	return features, nil
}
