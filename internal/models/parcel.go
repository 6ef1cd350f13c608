package models

import (
	"time"
)

// Lien represents a recorded encumbrance on a parcel other than the
// delinquent tax itself. Liens have no identity of their own; they only
// exist as part of a Parcel.
type Lien struct {
	DateRecorded *time.Time `json:"dateRecorded,omitempty"`
	Holder       string     `json:"holder"`
	Amount       float64    `json:"amount"`
}

// Parcel represents one delinquent property under evaluation.
// It is constructed per-evaluation from ingested data and never mutated.
// Persistence of parcels is the ingestion pipeline's concern, not ours.
type Parcel struct {
	ParcelID            string  `json:"parcelId"`
	County              string  `json:"county"`
	PropertyType        string  `json:"propertyType"`
	OtherLiens          []Lien  `json:"otherLiens,omitempty"`
	AssessedValue       float64 `json:"assessedValue"`
	MarketValueEstimate float64 `json:"marketValueEstimate"`
	TaxDue              float64 `json:"taxDue"`
}

// LTVSentinel is the ratio reported when a parcel has no usable market
// value estimate. It is deliberately absurd so the guardrails reject the
// parcel instead of dividing by zero.
const LTVSentinel = 999.0

// TotalEncumbrance returns the total debt recorded against the parcel:
// delinquent tax plus all other liens.
func (p *Parcel) TotalEncumbrance() float64 {
	total := p.TaxDue
	for _, lien := range p.OtherLiens {
		total += lien.Amount
	}
	return total
}

// LTVRatio returns the loan-to-value ratio of total encumbrance against
// the market value estimate. When the market value estimate is zero the
// sentinel value is returned so the ratio is always defined.
func (p *Parcel) LTVRatio() float64 {
	if p.MarketValueEstimate == 0 {
		return LTVSentinel
	}
	return p.TotalEncumbrance() / p.MarketValueEstimate
}

// BidDecision is the terminal output of a guardrail evaluation.
// Decisions are created fresh per evaluation and never mutated.
// ShouldBid == false always implies MaxBidAmount == 0.
type BidDecision struct {
	Timestamp    time.Time `json:"timestamp"`
	ParcelID     string    `json:"parcelId"`
	Reason       string    `json:"reason"`
	MaxBidAmount float64   `json:"maxBidAmount"`
	ShouldBid    bool      `json:"shouldBid"`
}

// PropertyRecord is a raw scraped auction row as it arrives from the
// ingestion pipeline or the properties table. Field presence is not
// guaranteed; nullable fields use pointers to distinguish zero values
// from missing data, and downstream consumers must tolerate absence.
type PropertyRecord struct {
	ParcelID            string   `json:"parcelId"`
	County              string   `json:"county"`
	Description         *string  `json:"description,omitempty"`
	PropertyType        *string  `json:"propertyType,omitempty"`
	YearSold            *string  `json:"yearSold,omitempty"`
	Amount              *float64 `json:"amount,omitempty"`
	Acreage             *float64 `json:"acreage,omitempty"`
	AssessedValue       *float64 `json:"assessedValue,omitempty"`
	MarketValueEstimate *float64 `json:"marketValueEstimate,omitempty"`
	TaxDue              *float64 `json:"taxDue,omitempty"`
	OtherLiensTotal     *float64 `json:"otherLiensTotal,omitempty"`
	WaterScore          *float64 `json:"waterScore,omitempty"`
	InvestmentScore     *float64 `json:"investmentScore,omitempty"`
	PricePerAcre        *float64 `json:"pricePerAcre,omitempty"`
}

// ScoredProperty is a stored property row together with its computed
// metrics, as read back from the properties table for listing.
type ScoredProperty struct {
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
	ParcelID           string    `json:"parcelId"`
	County             string    `json:"county"`
	Description        *string   `json:"description,omitempty"`
	YearSold           *string   `json:"yearSold,omitempty"`
	Amount             *float64  `json:"amount,omitempty"`
	Acreage            *float64  `json:"acreage,omitempty"`
	PricePerAcre       *float64  `json:"pricePerAcre,omitempty"`
	WaterScore         *float64  `json:"waterScore,omitempty"`
	InvestmentScore    *float64  `json:"investmentScore,omitempty"`
	AssessedValueRatio *float64  `json:"assessedValueRatio,omitempty"`
	ID                 int64     `json:"id"`
}

// WaterFeatureRecord is one detected water feature materialized for a
// stored property, mirroring the property_water_features table.
type WaterFeatureRecord struct {
	FeatureName string  `json:"featureName"`
	FeatureTier string  `json:"featureTier"`
	Score       float64 `json:"score"`
	PropertyID  int64   `json:"propertyId"`
}
