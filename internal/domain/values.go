// Package domain holds the self-validating value types used by the scoring
// and guardrail engines. A value type can only be obtained through one of
// its factory functions, so an instance in an invalid state cannot exist.
// All types are immutable and compare by wrapped value, not identity.
package domain

import (
	"fmt"
)

// ValidationError reports a value that violates a value type's range or
// type contract. These are programmer-facing: inside a batch the caller
// substitutes a safe default instead of propagating.
type ValidationError struct {
	Type   string
	Reason string
	Value  float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Type, e.Reason, e.Value)
}

// InvestmentScore is the 0-100 composite ranking metric for a property.
// Higher is better.
type InvestmentScore struct {
	value float64
}

// NewInvestmentScore validates and wraps a score value.
func NewInvestmentScore(value float64) (InvestmentScore, error) {
	if value < 0.0 {
		return InvestmentScore{}, &ValidationError{Type: "InvestmentScore", Reason: "cannot be negative", Value: value}
	}
	if value > 100.0 {
		return InvestmentScore{}, &ValidationError{Type: "InvestmentScore", Reason: "cannot exceed 100.0", Value: value}
	}
	return InvestmentScore{value: value}, nil
}

// InvestmentScoreOrNone wraps a possibly-missing score, returning nil for
// a nil input. Invalid values still error.
func InvestmentScoreOrNone(value *float64) (*InvestmentScore, error) {
	if value == nil {
		return nil, nil
	}
	s, err := NewInvestmentScore(*value)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ZeroInvestmentScore returns the zero score.
func ZeroInvestmentScore() InvestmentScore { return InvestmentScore{} }

// MaxInvestmentScore returns the maximum score.
func MaxInvestmentScore() InvestmentScore { return InvestmentScore{value: 100.0} }

// Value returns the wrapped score.
func (s InvestmentScore) Value() float64 { return s.value }

// Less reports whether s orders before other.
func (s InvestmentScore) Less(other InvestmentScore) bool { return s.value < other.value }

// IsHighValue reports whether the score clears the given threshold.
func (s InvestmentScore) IsHighValue(threshold float64) bool { return s.value >= threshold }

// Rating converts the score to a letter rating for display.
func (s InvestmentScore) Rating() string {
	switch {
	case s.value >= 90:
		return "A+"
	case s.value >= 80:
		return "A"
	case s.value >= 70:
		return "B"
	case s.value >= 60:
		return "C"
	case s.value >= 50:
		return "D"
	default:
		return "F"
	}
}

// Percentage formats the score as a percentage string.
func (s InvestmentScore) Percentage() string { return fmt.Sprintf("%.1f%%", s.value) }

func (s InvestmentScore) String() string { return fmt.Sprintf("%.2f", s.value) }

// Water category thresholds.
const (
	minimalWater     = 3.0
	moderateWater    = 7.0
	excellentWater   = 12.0
	exceptionalWater = 15.0
)

// WaterScore is the composite water feature metric. It must be
// non-negative but has no ceiling: tiers up to ~15 are typical, and
// exceptional properties may exceed it.
type WaterScore struct {
	value float64
}

// NewWaterScore validates and wraps a water score value.
func NewWaterScore(value float64) (WaterScore, error) {
	if value < 0.0 {
		return WaterScore{}, &ValidationError{Type: "WaterScore", Reason: "cannot be negative", Value: value}
	}
	return WaterScore{value: value}, nil
}

// WaterScoreOrDefault wraps a possibly-missing score, substituting zero
// for a nil input. A water score of zero means "no water features".
func WaterScoreOrDefault(value *float64) (WaterScore, error) {
	if value == nil {
		return ZeroWaterScore(), nil
	}
	return NewWaterScore(*value)
}

// ZeroWaterScore returns the no-water score.
func ZeroWaterScore() WaterScore { return WaterScore{} }

// Value returns the wrapped score.
func (s WaterScore) Value() float64 { return s.value }

// Less reports whether s orders before other.
func (s WaterScore) Less(other WaterScore) bool { return s.value < other.value }

// HasWaterFeatures reports whether any water feature contributed to the score.
func (s WaterScore) HasWaterFeatures() bool { return s.value > 0.0 }

// IsPremium reports whether the score qualifies as premium water access.
func (s WaterScore) IsPremium(threshold float64) bool { return s.value >= threshold }

// Category buckets the score into none/minimal/moderate/excellent/exceptional.
func (s WaterScore) Category() string {
	switch {
	case s.value <= 0:
		return "none"
	case s.value < minimalWater:
		return "minimal"
	case s.value < moderateWater:
		return "moderate"
	case s.value < excellentWater:
		return "excellent"
	default:
		return "exceptional"
	}
}

// Display formats the score with its category for display.
func (s WaterScore) Display() string {
	return fmt.Sprintf("%.1f (%s)", s.value, s.Category())
}

func (s WaterScore) String() string { return fmt.Sprintf("%.2f", s.value) }

// PricePerAcre is the price efficiency metric. Lower values indicate
// potentially better deals. It must be strictly positive.
type PricePerAcre struct {
	value float64
}

// NewPricePerAcre validates and wraps a price-per-acre value.
func NewPricePerAcre(value float64) (PricePerAcre, error) {
	if value <= 0.0 {
		return PricePerAcre{}, &ValidationError{Type: "PricePerAcre", Reason: "must be positive", Value: value}
	}
	return PricePerAcre{value: value}, nil
}

// CalculatePricePerAcre derives price per acre from a bid amount and
// acreage. Zero or negative acreage is a hard error; callers with
// optional inputs should use PricePerAcreOrNone instead.
func CalculatePricePerAcre(amount, acreage float64) (PricePerAcre, error) {
	if acreage <= 0 {
		return PricePerAcre{}, &ValidationError{Type: "PricePerAcre", Reason: "acreage must be positive", Value: acreage}
	}
	return NewPricePerAcre(amount / acreage)
}

// PricePerAcreOrNone derives price per acre, absorbing missing or
// unusable inputs by returning nil instead of an error.
func PricePerAcreOrNone(amount, acreage *float64) *PricePerAcre {
	if amount == nil || acreage == nil || *acreage <= 0 || *amount <= 0 {
		return nil
	}
	ppa := PricePerAcre{value: *amount / *acreage}
	return &ppa
}

// Value returns the wrapped price per acre.
func (p PricePerAcre) Value() float64 { return p.value }

// Less reports whether p orders before other.
func (p PricePerAcre) Less(other PricePerAcre) bool { return p.value < other.value }

// IsBelowMarket reports whether the price per acre beats the given market rate.
func (p PricePerAcre) IsBelowMarket(marketRate float64) bool { return p.value < marketRate }

// Currency formats the value as a currency string.
func (p PricePerAcre) Currency() string { return fmt.Sprintf("$%.2f/acre", p.value) }

func (p PricePerAcre) String() string { return fmt.Sprintf("%.2f", p.value) }

// AssessedValueRatio is the ratio of bid amount to county assessed value.
// Values below 1.0 mean the bid is under the assessment.
type AssessedValueRatio struct {
	value float64
}

// NewAssessedValueRatio validates and wraps a ratio value.
func NewAssessedValueRatio(value float64) (AssessedValueRatio, error) {
	if value <= 0.0 {
		return AssessedValueRatio{}, &ValidationError{Type: "AssessedValueRatio", Reason: "must be positive", Value: value}
	}
	return AssessedValueRatio{value: value}, nil
}

// CalculateAssessedValueRatio derives the ratio from a bid amount and
// assessed value. Zero or negative assessed value is a hard error.
func CalculateAssessedValueRatio(amount, assessedValue float64) (AssessedValueRatio, error) {
	if assessedValue <= 0 {
		return AssessedValueRatio{}, &ValidationError{Type: "AssessedValueRatio", Reason: "assessed value must be positive", Value: assessedValue}
	}
	return NewAssessedValueRatio(amount / assessedValue)
}

// AssessedValueRatioOrNone derives the ratio, absorbing missing or
// unusable inputs by returning nil instead of an error.
func AssessedValueRatioOrNone(amount, assessedValue *float64) *AssessedValueRatio {
	if amount == nil || assessedValue == nil || *assessedValue <= 0 || *amount <= 0 {
		return nil
	}
	r := AssessedValueRatio{value: *amount / *assessedValue}
	return &r
}

// Value returns the wrapped ratio.
func (r AssessedValueRatio) Value() float64 { return r.value }

// Less reports whether r orders before other.
func (r AssessedValueRatio) Less(other AssessedValueRatio) bool { return r.value < other.value }

// IsUndervalued reports whether the ratio is at or below the threshold.
func (r AssessedValueRatio) IsUndervalued(threshold float64) bool { return r.value <= threshold }

// IsOvervalued reports whether the ratio is at or above the threshold.
func (r AssessedValueRatio) IsOvervalued(threshold float64) bool { return r.value >= threshold }

// Percentage formats the ratio as a percentage of assessed value.
func (r AssessedValueRatio) Percentage() string { return fmt.Sprintf("%.1f%%", r.value*100) }

func (r AssessedValueRatio) String() string { return fmt.Sprintf("%.3f", r.value) }
