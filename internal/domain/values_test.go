package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvestmentScore_ValidRange(t *testing.T) {
	for _, v := range []float64{0.0, 0.01, 50.0, 99.99, 100.0} {
		s, err := NewInvestmentScore(v)
		require.NoError(t, err)
		assert.Equal(t, v, s.Value())
	}
}

func TestNewInvestmentScore_OutOfRange(t *testing.T) {
	testCases := []struct {
		name  string
		value float64
	}{
		{"negative", -0.01},
		{"far negative", -50.0},
		{"above maximum", 100.01},
		{"far above maximum", 500.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewInvestmentScore(tc.value)
			assert.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "InvestmentScore", verr.Type)
			assert.Equal(t, tc.value, verr.Value)
		})
	}
}

func TestInvestmentScoreOrNone(t *testing.T) {
	s, err := InvestmentScoreOrNone(nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	v := 42.5
	s, err = InvestmentScoreOrNone(&v)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 42.5, s.Value())

	bad := -1.0
	_, err = InvestmentScoreOrNone(&bad)
	assert.Error(t, err)
}

func TestInvestmentScore_Rating(t *testing.T) {
	testCases := []struct {
		rating string
		value  float64
	}{
		{"A+", 95.0},
		{"A+", 90.0},
		{"A", 80.0},
		{"B", 70.0},
		{"C", 60.0},
		{"D", 50.0},
		{"F", 49.99},
		{"F", 0.0},
	}

	for _, tc := range testCases {
		s, err := NewInvestmentScore(tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.rating, s.Rating(), "value %v", tc.value)
	}
}

func TestInvestmentScore_ValueEquality(t *testing.T) {
	a, _ := NewInvestmentScore(75.0)
	b, _ := NewInvestmentScore(75.0)
	c, _ := NewInvestmentScore(80.0)

	// Equality and ordering are value-based, not identity-based.
	assert.Equal(t, a, b)
	assert.True(t, a.Less(c))
	assert.False(t, c.Less(a))
	assert.False(t, a.Less(b))
}

func TestInvestmentScore_Formatting(t *testing.T) {
	s, _ := NewInvestmentScore(87.5)
	assert.Equal(t, "87.50", s.String())
	assert.Equal(t, "87.5%", s.Percentage())
	assert.Equal(t, "0.00", ZeroInvestmentScore().String())
	assert.Equal(t, 100.0, MaxInvestmentScore().Value())
}

func TestNewWaterScore_Uncapped(t *testing.T) {
	// No ceiling: tiers up to ~15 are typical but larger values are legal.
	for _, v := range []float64{0.0, 4.0, 15.0, 22.3} {
		s, err := NewWaterScore(v)
		require.NoError(t, err)
		assert.Equal(t, v, s.Value())
	}

	_, err := NewWaterScore(-0.1)
	assert.Error(t, err)
}

func TestWaterScoreOrDefault(t *testing.T) {
	s, err := WaterScoreOrDefault(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Value())
	assert.False(t, s.HasWaterFeatures())

	v := 10.4
	s, err = WaterScoreOrDefault(&v)
	require.NoError(t, err)
	assert.Equal(t, 10.4, s.Value())
	assert.True(t, s.HasWaterFeatures())
}

func TestWaterScore_Category(t *testing.T) {
	testCases := []struct {
		category string
		value    float64
	}{
		{"none", 0.0},
		{"minimal", 0.1},
		{"minimal", 2.99},
		{"moderate", 3.0},
		{"moderate", 6.99},
		{"excellent", 7.0},
		{"excellent", 11.99},
		{"exceptional", 12.0},
		{"exceptional", 20.0},
	}

	for _, tc := range testCases {
		s, err := NewWaterScore(tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.category, s.Category(), "value %v", tc.value)
	}
}

func TestWaterScore_Display(t *testing.T) {
	s, _ := NewWaterScore(10.4)
	assert.Equal(t, "10.4 (excellent)", s.Display())
	assert.True(t, s.IsPremium(10.0))
	assert.False(t, s.IsPremium(11.0))
}

func TestCalculatePricePerAcre(t *testing.T) {
	ppa, err := CalculatePricePerAcre(2500.0, 5.0)
	require.NoError(t, err)
	assert.Equal(t, 500.0, ppa.Value())
	assert.Equal(t, "$500.00/acre", ppa.Currency())
	assert.True(t, ppa.IsBelowMarket(1000.0))
}

func TestCalculatePricePerAcre_InvalidAcreage(t *testing.T) {
	_, err := CalculatePricePerAcre(2500.0, 0.0)
	assert.Error(t, err)

	_, err = CalculatePricePerAcre(2500.0, -1.5)
	assert.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "PricePerAcre", verr.Type)
}

func TestPricePerAcreOrNone(t *testing.T) {
	amount := 2500.0
	acreage := 5.0
	zero := 0.0

	assert.Nil(t, PricePerAcreOrNone(nil, &acreage))
	assert.Nil(t, PricePerAcreOrNone(&amount, nil))
	assert.Nil(t, PricePerAcreOrNone(&amount, &zero))

	ppa := PricePerAcreOrNone(&amount, &acreage)
	require.NotNil(t, ppa)
	assert.Equal(t, 500.0, ppa.Value())
}

func TestCalculateAssessedValueRatio(t *testing.T) {
	r, err := CalculateAssessedValueRatio(5000.0, 10000.0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, r.Value())
	assert.True(t, r.IsUndervalued(0.5))
	assert.False(t, r.IsOvervalued(1.5))
	assert.Equal(t, "50.0%", r.Percentage())

	_, err = CalculateAssessedValueRatio(5000.0, 0.0)
	assert.Error(t, err)
}

func TestAssessedValueRatioOrNone(t *testing.T) {
	amount := 5000.0
	assessed := 10000.0
	zero := 0.0

	assert.Nil(t, AssessedValueRatioOrNone(nil, &assessed))
	assert.Nil(t, AssessedValueRatioOrNone(&amount, &zero))

	r := AssessedValueRatioOrNone(&amount, &assessed)
	require.NotNil(t, r)
	assert.Equal(t, 0.5, r.Value())
}

func TestValidationError_Message(t *testing.T) {
	_, err := NewWaterScore(-3.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WaterScore")
	assert.Contains(t, err.Error(), "cannot be negative")
}
