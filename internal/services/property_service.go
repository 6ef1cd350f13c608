package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/auctionwatch/api/internal/filters"
	"github.com/auctionwatch/api/internal/logger"
	"github.com/auctionwatch/api/internal/models"
	"github.com/auctionwatch/api/internal/repository"
	"github.com/auctionwatch/api/internal/scoring"
)

// Service-level errors
var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrInvalidFilter    = errors.New("invalid filter")
)

// PropertyPage is one page of scored properties with pagination metadata.
type PropertyPage struct {
	Properties []models.ScoredProperty `json:"properties"`
	TotalCount int                     `json:"totalCount"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"pageSize"`
	TotalPages int                     `json:"totalPages"`
}

// PropertyDetail is a stored property with its detected water features.
type PropertyDetail struct {
	Property      models.ScoredProperty       `json:"property"`
	WaterFeatures []models.WaterFeatureRecord `json:"waterFeatures"`
}

// RescoreSummary reports the outcome of a full-table rescore.
type RescoreSummary struct {
	Total     int `json:"total"`
	WithWater int `json:"withWater"`
}

// PropertyService defines the interface for scored property business logic.
type PropertyService interface {
	// ListProperties returns the page of properties matching the filter.
	// Returns ErrInvalidFilter if the filter ranges are incoherent.
	ListProperties(ctx context.Context, filter filters.PropertyFilterSpec, sort filters.PropertySortSpec, page filters.PaginationSpec) (*PropertyPage, error)

	// GetProperty returns the stored property with its water features.
	// Returns ErrPropertyNotFound if no property exists with the parcel ID.
	GetProperty(ctx context.Context, parcelID string) (*PropertyDetail, error)

	// ListCounties returns the distinct counties available for filtering.
	ListCounties(ctx context.Context) ([]string, error)

	// RescoreAll recomputes water and investment scores for every stored
	// property and persists the results in one transaction.
	RescoreAll(ctx context.Context) (*RescoreSummary, error)
}

// propertyService is the concrete implementation of PropertyService.
type propertyService struct {
	repo     repository.PropertyRepository
	detector *scoring.WaterDetector
	calc     *scoring.InvestmentCalculator
	log      *logger.Logger
}

// NewPropertyService creates a new instance of PropertyService.
func NewPropertyService(repo repository.PropertyRepository, detector *scoring.WaterDetector, calc *scoring.InvestmentCalculator, log *logger.Logger) PropertyService {
	return &propertyService{
		repo:     repo,
		detector: detector,
		calc:     calc,
		log:      log,
	}
}

// ListProperties validates the filter, then fetches the page and the
// total count for pagination metadata.
func (s *propertyService) ListProperties(ctx context.Context, filter filters.PropertyFilterSpec, sort filters.PropertySortSpec, page filters.PaginationSpec) (*PropertyPage, error) {
	if err := filter.Validate(); err != nil {
		s.log.Warn("Invalid property filter", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", ErrInvalidFilter, err.Error())
	}

	s.log.Info("Listing properties", map[string]interface{}{
		"filtered":  filter.HasAnyFilter(),
		"sort":      sort.OrderByClause(),
		"page":      page.Page,
		"page_size": page.PageSize,
	})

	properties, err := s.repo.ListProperties(ctx, filter, sort, page)
	if err != nil {
		s.log.Error("Failed to list properties", err, nil)
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	count, err := s.repo.CountProperties(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count properties", err, nil)
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}

	return &PropertyPage{
		Properties: properties,
		TotalCount: count,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(count),
	}, nil
}

// GetProperty fetches a single property and its water features.
func (s *propertyService) GetProperty(ctx context.Context, parcelID string) (*PropertyDetail, error) {
	property, err := s.repo.GetByParcelID(ctx, parcelID)
	if err != nil {
		s.log.Error("Failed to fetch property", err, map[string]interface{}{
			"parcel_id": parcelID,
		})
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}

	// Repository returns nil, nil when no property found - transform to domain error
	if property == nil {
		s.log.Debug("Property not found", map[string]interface{}{
			"parcel_id": parcelID,
		})
		return nil, ErrPropertyNotFound
	}

	features, err := s.repo.ListWaterFeatures(ctx, property.ID)
	if err != nil {
		s.log.Error("Failed to fetch water features", err, map[string]interface{}{
			"parcel_id": parcelID,
		})
		return nil, fmt.Errorf("failed to fetch water features: %w", err)
	}

	return &PropertyDetail{
		Property:      *property,
		WaterFeatures: features,
	}, nil
}

// ListCounties returns the distinct counties available for filtering.
func (s *propertyService) ListCounties(ctx context.Context) ([]string, error) {
	counties, err := s.repo.ListCounties(ctx)
	if err != nil {
		s.log.Error("Failed to list counties", err, nil)
		return nil, fmt.Errorf("failed to list counties: %w", err)
	}
	return counties, nil
}

// RescoreAll recomputes every stored property's scores concurrently and
// persists them in a single transaction. Scoring is pure computation, so
// rows fan out across workers and land in order-preserving slots.
func (s *propertyService) RescoreAll(ctx context.Context) (*RescoreSummary, error) {
	rows, err := s.repo.ListForRescore(ctx)
	if err != nil {
		s.log.Error("Failed to load properties for rescore", err, nil)
		return nil, fmt.Errorf("failed to load properties for rescore: %w", err)
	}

	s.log.Info("Rescoring properties", map[string]interface{}{
		"count": len(rows),
	})

	updates := make([]repository.ScoreUpdate, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, row := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			updates[i] = s.scoreRow(row)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rescore interrupted: %w", err)
	}

	if err := s.repo.UpdateScores(ctx, updates); err != nil {
		s.log.Error("Failed to persist rescored properties", err, nil)
		return nil, fmt.Errorf("failed to persist rescored properties: %w", err)
	}

	summary := &RescoreSummary{Total: len(updates)}
	for _, u := range updates {
		if u.WaterScore > 0 {
			summary.WithWater++
		}
	}

	s.log.Info("Rescore complete", map[string]interface{}{
		"total":      summary.Total,
		"with_water": summary.WithWater,
	})

	return summary, nil
}

// scoreRow computes one property's metrics from its raw fields.
func (s *propertyService) scoreRow(row repository.RescoreRow) repository.ScoreUpdate {
	description := ""
	if row.Description != nil {
		description = *row.Description
	}

	waterScore, features := s.detector.Detect(description)

	var pricePerAcre *float64
	if row.Amount != nil && row.Acreage != nil && *row.Acreage > 0 {
		ppa := *row.Amount / *row.Acreage
		pricePerAcre = &ppa
	}

	investment := s.calc.Score(pricePerAcre, row.Acreage, &waterScore)

	records := make([]models.WaterFeatureRecord, 0, len(features))
	for _, f := range features {
		records = append(records, models.WaterFeatureRecord{
			PropertyID:  row.ID,
			FeatureName: f.Name,
			FeatureTier: f.Tier,
			Score:       f.Score,
		})
	}

	return repository.ScoreUpdate{
		PropertyID:      row.ID,
		WaterScore:      waterScore,
		InvestmentScore: investment,
		PricePerAcre:    pricePerAcre,
		Features:        records,
	}
}
