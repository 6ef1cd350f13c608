package filters

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// BuildWhereClause renders the filter spec as a SQL predicate with $n
// placeholders, numbered from startIndex so the repository can append
// its own LIMIT/OFFSET parameters after it. Column names in the
// conditions are fixed strings; only values travel as parameters.
//
// An empty spec yields "1=1" so callers can always interpolate the
// fragment after WHERE.
func BuildWhereClause(spec PropertyFilterSpec, startIndex int) (string, []any) {
	var conditions []string
	var params []any

	next := func(v any) string {
		params = append(params, v)
		return "$" + strconv.Itoa(startIndex+len(params)-1)
	}

	if spec.MinPrice != nil {
		conditions = append(conditions, "amount >= "+next(*spec.MinPrice))
	}
	if spec.MaxPrice != nil {
		conditions = append(conditions, "amount <= "+next(*spec.MaxPrice))
	}
	if spec.MinAcreage != nil {
		conditions = append(conditions, "acreage >= "+next(*spec.MinAcreage))
	}
	if spec.MaxAcreage != nil {
		conditions = append(conditions, "acreage <= "+next(*spec.MaxAcreage))
	}
	if spec.County != nil && *spec.County != "All" {
		conditions = append(conditions, "county = "+next(*spec.County))
	}
	if spec.YearSold != nil {
		conditions = append(conditions, "year_sold = "+next(*spec.YearSold))
	}
	if spec.WaterOnly != nil {
		if *spec.WaterOnly {
			conditions = append(conditions, "water_score > 0")
		} else {
			conditions = append(conditions, "water_score = 0")
		}
	}
	if spec.MinInvestmentScore != nil {
		conditions = append(conditions, "investment_score >= "+next(*spec.MinInvestmentScore))
	}
	if spec.MaxInvestmentScore != nil {
		conditions = append(conditions, "investment_score <= "+next(*spec.MaxInvestmentScore))
	}
	if spec.MinWaterScore != nil {
		conditions = append(conditions, "water_score >= "+next(*spec.MinWaterScore))
	}
	if spec.SearchQuery != nil && *spec.SearchQuery != "" {
		term := "%" + *spec.SearchQuery + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(description ILIKE %s OR parcel_id ILIKE %s)", next(term), next(term)))
	}

	if len(conditions) == 0 {
		return "1=1", nil
	}
	return strings.Join(conditions, " AND "), params
}

// BuildQueryParams renders the same spec as a flat transport-layer
// parameter set for API requests. It emits the same sort column and
// direction as the SQL projection for the same inputs.
func BuildQueryParams(spec PropertyFilterSpec, sort PropertySortSpec, page PaginationSpec) url.Values {
	params := url.Values{}

	setFloat := func(key string, v *float64) {
		if v != nil {
			params.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
		}
	}

	if spec.County != nil && *spec.County != "All" {
		params.Set("county", *spec.County)
	}
	setFloat("min_price", spec.MinPrice)
	setFloat("max_price", spec.MaxPrice)
	setFloat("min_acreage", spec.MinAcreage)
	setFloat("max_acreage", spec.MaxAcreage)
	setFloat("min_investment_score", spec.MinInvestmentScore)
	setFloat("max_investment_score", spec.MaxInvestmentScore)
	setFloat("min_water_score", spec.MinWaterScore)
	if spec.WaterOnly != nil {
		params.Set("water_features", strconv.FormatBool(*spec.WaterOnly))
	}
	if spec.YearSold != nil {
		params.Set("year_sold", *spec.YearSold)
	}
	if spec.SearchQuery != nil && *spec.SearchQuery != "" {
		params.Set("search_query", *spec.SearchQuery)
	}

	params.Set("sort_by", sort.Column)
	params.Set("sort_order", string(sort.Order))
	params.Set("page", strconv.Itoa(page.Page))
	params.Set("page_size", strconv.Itoa(page.PageSize))

	return params
}
