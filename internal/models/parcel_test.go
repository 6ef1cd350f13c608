package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTotalEncumbrance(t *testing.T) {
	recorded := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		parcel   Parcel
		expected float64
	}{
		{
			name:     "tax only",
			parcel:   Parcel{TaxDue: 1500},
			expected: 1500,
		},
		{
			name: "tax plus liens",
			parcel: Parcel{
				TaxDue: 1000,
				OtherLiens: []Lien{
					{Holder: "City of Fairhope", Amount: 2500, DateRecorded: &recorded},
					{Holder: "HOA", Amount: 500},
				},
			},
			expected: 4000,
		},
		{
			name:     "no debt at all",
			parcel:   Parcel{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.parcel.TotalEncumbrance())
		})
	}
}

func TestLTVRatio(t *testing.T) {
	parcel := Parcel{
		MarketValueEstimate: 50000,
		TaxDue:              1000,
		OtherLiens:          []Lien{{Holder: "Bank", Amount: 4000}},
	}
	assert.InDelta(t, 0.1, parcel.LTVRatio(), 1e-9)
}

func TestLTVRatio_ZeroMarketValueUsesSentinel(t *testing.T) {
	parcel := Parcel{TaxDue: 1000}
	assert.Equal(t, LTVSentinel, parcel.LTVRatio())

	// Sentinel holds even with no debt; an unvalued parcel is never cheap.
	empty := Parcel{}
	assert.Equal(t, LTVSentinel, empty.LTVRatio())
}
