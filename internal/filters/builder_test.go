package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWhereClause_Empty(t *testing.T) {
	where, params := BuildWhereClause(PropertyFilterSpec{}, 1)
	assert.Equal(t, "1=1", where)
	assert.Empty(t, params)
}

func TestBuildWhereClause_AllFilters(t *testing.T) {
	spec := PropertyFilterSpec{
		MinPrice:           fp(100),
		MaxPrice:           fp(10000),
		MinAcreage:         fp(1),
		MaxAcreage:         fp(40),
		County:             sp("Baldwin"),
		YearSold:           sp("2023"),
		WaterOnly:          bp(true),
		MinInvestmentScore: fp(50),
		MaxInvestmentScore: fp(90),
		MinWaterScore:      fp(2),
		SearchQuery:        sp("creek"),
	}

	where, params := BuildWhereClause(spec, 1)

	assert.Contains(t, where, "amount >= $1")
	assert.Contains(t, where, "amount <= $2")
	assert.Contains(t, where, "acreage >= $3")
	assert.Contains(t, where, "acreage <= $4")
	assert.Contains(t, where, "county = $5")
	assert.Contains(t, where, "year_sold = $6")
	assert.Contains(t, where, "water_score > 0")
	assert.Contains(t, where, "investment_score >= $7")
	assert.Contains(t, where, "investment_score <= $8")
	assert.Contains(t, where, "water_score >= $9")
	assert.Contains(t, where, "description ILIKE $10 OR parcel_id ILIKE $11")

	require.Len(t, params, 11)
	assert.Equal(t, 100.0, params[0])
	assert.Equal(t, "Baldwin", params[4])
	assert.Equal(t, "%creek%", params[9])
	assert.Equal(t, "%creek%", params[10])
}

func TestBuildWhereClause_StartIndexOffset(t *testing.T) {
	spec := PropertyFilterSpec{MinPrice: fp(100), County: sp("Baldwin")}

	where, params := BuildWhereClause(spec, 3)

	assert.Equal(t, "amount >= $3 AND county = $4", where)
	assert.Equal(t, []any{100.0, "Baldwin"}, params)
}

func TestBuildWhereClause_AllCountyIgnored(t *testing.T) {
	spec := PropertyFilterSpec{County: sp("All")}

	where, params := BuildWhereClause(spec, 1)
	assert.Equal(t, "1=1", where)
	assert.Empty(t, params)
}

func TestBuildWhereClause_WaterOnlyFalse(t *testing.T) {
	spec := PropertyFilterSpec{WaterOnly: bp(false)}

	where, params := BuildWhereClause(spec, 1)
	assert.Equal(t, "water_score = 0", where)
	assert.Empty(t, params)
}

func TestBuildWhereClause_ValuesNeverInterpolated(t *testing.T) {
	// A hostile value travels as a parameter, never as SQL text.
	spec := PropertyFilterSpec{County: sp("x'; DROP TABLE properties--")}

	where, params := BuildWhereClause(spec, 1)
	assert.Equal(t, "county = $1", where)
	assert.NotContains(t, where, "DROP")
	require.Len(t, params, 1)
	assert.Equal(t, "x'; DROP TABLE properties--", params[0])
}

func TestBuildQueryParams_Flat(t *testing.T) {
	spec := PropertyFilterSpec{
		County:             sp("Mobile"),
		MinPrice:           fp(250.5),
		MinInvestmentScore: fp(60),
		WaterOnly:          bp(true),
	}
	sort := NewSortSpec("water_score", "asc")
	page := NewPaginationSpec(2, 50)

	params := BuildQueryParams(spec, sort, page)

	assert.Equal(t, "Mobile", params.Get("county"))
	assert.Equal(t, "250.5", params.Get("min_price"))
	assert.Equal(t, "60", params.Get("min_investment_score"))
	assert.Equal(t, "true", params.Get("water_features"))
	assert.Equal(t, "water_score", params.Get("sort_by"))
	assert.Equal(t, "asc", params.Get("sort_order"))
	assert.Equal(t, "2", params.Get("page"))
	assert.Equal(t, "50", params.Get("page_size"))
	assert.Empty(t, params.Get("max_price"))
}

func TestProjections_AgreeOnSort(t *testing.T) {
	// The same spec must emit the same sort column and direction in both
	// the SQL and transport projections, including when the requested
	// column was replaced by the default.
	for _, requested := range []string{"acreage", "not_a_column"} {
		sort := NewSortSpec(requested, "desc")
		params := BuildQueryParams(PropertyFilterSpec{}, sort, NewPaginationSpec(1, 100))

		assert.Equal(t, sort.Column, params.Get("sort_by"))
		assert.Equal(t, string(sort.Order), params.Get("sort_order"))
		assert.Contains(t, sort.OrderByClause(), sort.Column)
	}
}

func TestBuildQueryParams_NonWhitelistedSortNeverEmitted(t *testing.T) {
	sort := NewSortSpec("1; SELECT pg_sleep(10)", "desc")
	params := BuildQueryParams(PropertyFilterSpec{}, sort, NewPaginationSpec(1, 100))

	assert.Equal(t, DefaultSortColumn, params.Get("sort_by"))
	for _, values := range params {
		for _, v := range values {
			assert.NotContains(t, v, "pg_sleep")
		}
	}
}
