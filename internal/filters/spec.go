// Package filters translates listing requests from the API layer into
// the two projections the rest of the system consumes: a parameterized
// SQL predicate for the repository and a flat query-parameter map for
// transport. Every filterable and sortable column is checked against an
// explicit whitelist here, at construction time, so raw client input can
// never reach a query.
package filters

import (
	"errors"
	"fmt"
)

// SortOrder is the sort direction of a listing request.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Default sort applied when a request names a column outside the
// whitelist (lenient mode) or no sort at all.
const (
	DefaultSortColumn = "investment_score"
	DefaultSortOrder  = SortDesc
)

// Pagination bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// allowedSortColumns is the full set of columns a client may sort or
// filter by. Anything else is rejected before query construction.
var allowedSortColumns = map[string]struct{}{
	"amount":               {},
	"investment_score":     {},
	"acreage":              {},
	"price_per_acre":       {},
	"water_score":          {},
	"assessed_value_ratio": {},
	"county":               {},
	"parcel_id":            {},
	"year_sold":            {},
	"rank":                 {},
	"created_at":           {},
	"updated_at":           {},
}

// ErrInvalidSortColumn is returned by NewStrictSortSpec for a column
// outside the whitelist.
var ErrInvalidSortColumn = errors.New("sort column not in whitelist")

// IsAllowedSortColumn reports whether the column may appear in an ORDER
// BY clause.
func IsAllowedSortColumn(column string) bool {
	_, ok := allowedSortColumns[column]
	return ok
}

// PropertyFilterSpec describes the requested view over scored
// properties. Nil fields mean "no constraint". Build one, Validate it,
// then hand it to the projection builders; it is never mutated after
// construction.
type PropertyFilterSpec struct {
	County             *string
	YearSold           *string
	SearchQuery        *string
	MinPrice           *float64
	MaxPrice           *float64
	MinAcreage         *float64
	MaxAcreage         *float64
	MinInvestmentScore *float64
	MaxInvestmentScore *float64
	MinWaterScore      *float64
	WaterOnly          *bool
}

// HasAnyFilter reports whether any constraint is active. A county of
// "All" counts as no constraint, matching the UI convention.
func (f *PropertyFilterSpec) HasAnyFilter() bool {
	if f.County != nil && *f.County != "All" {
		return true
	}
	return f.YearSold != nil ||
		f.SearchQuery != nil ||
		f.MinPrice != nil || f.MaxPrice != nil ||
		f.MinAcreage != nil || f.MaxAcreage != nil ||
		f.MinInvestmentScore != nil || f.MaxInvestmentScore != nil ||
		f.MinWaterScore != nil ||
		f.WaterOnly != nil
}

// Validate checks range coherence. Malformed ranges fail here, at
// construction time, never at query execution time.
func (f *PropertyFilterSpec) Validate() error {
	var errs []error

	if f.MinPrice != nil && *f.MinPrice < 0 {
		errs = append(errs, fmt.Errorf("minimum price cannot be negative"))
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MaxPrice < *f.MinPrice {
		errs = append(errs, fmt.Errorf("maximum price cannot be less than minimum price"))
	}
	if f.MinAcreage != nil && *f.MinAcreage < 0 {
		errs = append(errs, fmt.Errorf("minimum acreage cannot be negative"))
	}
	if f.MinAcreage != nil && f.MaxAcreage != nil && *f.MaxAcreage < *f.MinAcreage {
		errs = append(errs, fmt.Errorf("maximum acreage cannot be less than minimum acreage"))
	}
	if f.MinInvestmentScore != nil {
		if *f.MinInvestmentScore < 0 {
			errs = append(errs, fmt.Errorf("minimum investment score cannot be negative"))
		}
		if *f.MinInvestmentScore > 100 {
			errs = append(errs, fmt.Errorf("minimum investment score cannot exceed 100"))
		}
	}
	if f.MinWaterScore != nil && *f.MinWaterScore < 0 {
		errs = append(errs, fmt.Errorf("minimum water score cannot be negative"))
	}

	return errors.Join(errs...)
}

// PropertySortSpec is a validated sort column and direction. The column
// is guaranteed to be a whitelist member.
type PropertySortSpec struct {
	Column string
	Order  SortOrder
}

// NewSortSpec builds a sort spec leniently: a column outside the
// whitelist, or an unrecognized direction, is silently replaced by the
// documented default so a malformed request still produces a usable
// listing.
func NewSortSpec(column string, order string) PropertySortSpec {
	if !IsAllowedSortColumn(column) {
		column = DefaultSortColumn
	}
	return PropertySortSpec{Column: column, Order: parseOrder(order)}
}

// NewStrictSortSpec builds a sort spec but returns an error for a
// non-whitelisted column instead of substituting the default.
func NewStrictSortSpec(column string, order string) (PropertySortSpec, error) {
	if !IsAllowedSortColumn(column) {
		return PropertySortSpec{}, fmt.Errorf("%w: %q", ErrInvalidSortColumn, column)
	}
	return PropertySortSpec{Column: column, Order: parseOrder(order)}, nil
}

// DefaultSortSpec returns the documented default: investment_score DESC.
func DefaultSortSpec() PropertySortSpec {
	return PropertySortSpec{Column: DefaultSortColumn, Order: DefaultSortOrder}
}

// IsAscending reports whether the direction is ascending.
func (s PropertySortSpec) IsAscending() bool { return s.Order == SortAsc }

// OrderByClause renders the ORDER BY fragment. The column came through
// the whitelist, so interpolating it is safe.
func (s PropertySortSpec) OrderByClause() string {
	dir := "DESC"
	if s.Order == SortAsc {
		dir = "ASC"
	}
	return s.Column + " " + dir
}

func parseOrder(order string) SortOrder {
	switch order {
	case "asc", "ASC":
		return SortAsc
	case "desc", "DESC":
		return SortDesc
	default:
		return DefaultSortOrder
	}
}

// PaginationSpec is a validated page window. Out-of-range values clamp
// to the documented defaults rather than failing the request.
type PaginationSpec struct {
	Page     int
	PageSize int
}

// NewPaginationSpec builds a pagination spec, clamping invalid values.
func NewPaginationSpec(page, pageSize int) PaginationSpec {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PaginationSpec{Page: page, PageSize: pageSize}
}

// Offset returns the SQL offset for the page window.
func (p PaginationSpec) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns the number of pages needed for totalCount rows.
func (p PaginationSpec) TotalPages(totalCount int) int {
	if totalCount == 0 {
		return 0
	}
	return (totalCount + p.PageSize - 1) / p.PageSize
}
