package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/auctionwatch/api/internal/errors"
	"github.com/auctionwatch/api/internal/filters"
	"github.com/auctionwatch/api/internal/middleware"
	"github.com/auctionwatch/api/internal/services"
)

// PropertyHandler handles scored property HTTP requests.
type PropertyHandler struct {
	service services.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler instance.
func NewPropertyHandler(service services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		service: service,
	}
}

// ListPropertiesRequest represents the query parameters for the listing endpoint.
type ListPropertiesRequest struct {
	County             string   `form:"county"`
	YearSold           string   `form:"year_sold"`
	SearchQuery        string   `form:"search_query"`
	SortBy             string   `form:"sort_by"`
	SortOrder          string   `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
	MinPrice           *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice           *float64 `form:"max_price" binding:"omitempty,gte=0"`
	MinAcreage         *float64 `form:"min_acreage" binding:"omitempty,gte=0"`
	MaxAcreage         *float64 `form:"max_acreage" binding:"omitempty,gte=0"`
	MinInvestmentScore *float64 `form:"min_investment_score" binding:"omitempty,gte=0,lte=100"`
	MaxInvestmentScore *float64 `form:"max_investment_score" binding:"omitempty,gte=0,lte=100"`
	MinWaterScore      *float64 `form:"min_water_score" binding:"omitempty,gte=0"`
	WaterOnly          *bool    `form:"water_features"`
	Page               int      `form:"page" binding:"omitempty,gte=1"`
	PageSize           int      `form:"page_size" binding:"omitempty,gte=1,lte=1000"`
}

// CountiesResponse represents the response for the counties endpoint.
type CountiesResponse struct {
	Counties []string `json:"counties"`
	Count    int      `json:"count"`
}

// List handles GET /api/v1/properties endpoint.
// It returns one page of scored properties matching the requested filter.
func (h *PropertyHandler) List(c *gin.Context) {
	log := middleware.GetLogger(c)

	// Bind and validate query parameters
	var req ListPropertiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		// Check if it's a validation error
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		// Generic bad request for other binding errors
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	filter := req.toFilterSpec()
	sort := filters.NewSortSpec(req.SortBy, req.SortOrder)
	page := filters.NewPaginationSpec(req.Page, req.PageSize)

	if log != nil {
		log.Info("Processing property listing request", map[string]interface{}{
			"filtered": filter.HasAnyFilter(),
			"sort":     sort.OrderByClause(),
			"page":     page.Page,
		})
	}

	// Call service layer
	result, err := h.service.ListProperties(c.Request.Context(), filter, sort, page)
	if err != nil {
		// Handle service-level errors
		if errors.Is(err, services.ErrInvalidFilter) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		// Database or other unexpected errors
		apierrors.InternalServerError(c, "Failed to list properties", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/v1/properties/:parcelId endpoint.
// It returns a single stored property with its water features.
func (h *PropertyHandler) Get(c *gin.Context) {
	parcelID := c.Param("parcelId")
	if parcelID == "" {
		apierrors.BadRequest(c, "Parcel ID is required", nil)
		return
	}

	detail, err := h.service.GetProperty(c.Request.Context(), parcelID)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			apierrors.NotFound(c, "No property found with this parcel ID")
			return
		}
		apierrors.InternalServerError(c, "Failed to fetch property", err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Counties handles GET /api/v1/counties endpoint.
// It returns the distinct counties available for filtering.
func (h *PropertyHandler) Counties(c *gin.Context) {
	counties, err := h.service.ListCounties(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list counties", err)
		return
	}

	c.JSON(http.StatusOK, CountiesResponse{
		Counties: counties,
		Count:    len(counties),
	})
}

// Rescore handles POST /api/v1/properties/rescore endpoint.
// It recomputes water and investment scores for every stored property.
func (h *PropertyHandler) Rescore(c *gin.Context) {
	log := middleware.GetLogger(c)

	if log != nil {
		log.Info("Processing rescore request", nil)
	}

	summary, err := h.service.RescoreAll(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to rescore properties", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// toFilterSpec maps the bound query parameters onto a filter spec.
// Empty strings mean no constraint, matching the nil-pointer convention.
func (r *ListPropertiesRequest) toFilterSpec() filters.PropertyFilterSpec {
	spec := filters.PropertyFilterSpec{
		MinPrice:           r.MinPrice,
		MaxPrice:           r.MaxPrice,
		MinAcreage:         r.MinAcreage,
		MaxAcreage:         r.MaxAcreage,
		MinInvestmentScore: r.MinInvestmentScore,
		MaxInvestmentScore: r.MaxInvestmentScore,
		MinWaterScore:      r.MinWaterScore,
		WaterOnly:          r.WaterOnly,
	}
	if r.County != "" {
		spec.County = &r.County
	}
	if r.YearSold != "" {
		spec.YearSold = &r.YearSold
	}
	if r.SearchQuery != "" {
		spec.SearchQuery = &r.SearchQuery
	}
	return spec
}
