package guardrails

import (
	"fmt"
	"strings"
	"time"

	"github.com/auctionwatch/api/internal/models"
)

// ReasonPassed is the success ruling shared by single and batch
// evaluation.
const ReasonPassed = "Passed all guardrails"

// Batch rulings use fixed labels instead of the per-parcel formatted
// strings so rejection tallies aggregate cleanly across a run.
const (
	reasonBannedType     = "Banned Property Type"
	reasonNegativeEquity = "Negative Equity Potential"
)

// BatchResult is the outcome of evaluating a whole collection of raw
// records: one decision per input row, in input order, plus a tally of
// rulings for reporting.
type BatchResult struct {
	Tally     map[string]int
	Decisions []models.BidDecision
	Passed    int
	Rejected  int
}

// EvaluateBatch applies the guardrail rules across a collection of raw
// property records. Scraped rows routinely arrive with fields missing,
// so instead of failing the batch each row's inputs are derived through
// a fixed fallback chain:
//
//   - market value: explicit estimate, else assessed value x 1.2, else
//     the bid amount, else zero (which forces rejection via the LTV
//     sentinel rather than a divide-by-zero)
//   - tax due and other liens: zero when absent
//   - property type: explicit, else "ROAD" when the description mentions
//     one, else "PARCEL"; rows with neither field are "UNKNOWN" and land
//     in the banned list
//
// Every input row produces exactly one decision, in input order.
func (e *Engine) EvaluateBatch(records []models.PropertyRecord) BatchResult {
	result := BatchResult{
		Decisions: make([]models.BidDecision, 0, len(records)),
		Tally:     make(map[string]int),
	}

	ltvLabel := fmt.Sprintf("LTV too high (>%.0f%%)", e.cfg.MaxLTV*100)
	valueLabel := fmt.Sprintf("Market value too low (<$%.0f)", e.cfg.MinMarketValue)

	for _, rec := range records {
		marketValue := resolveMarketValue(rec)
		propertyType := resolvePropertyType(rec)
		encumbrance := floatOrZero(rec.TaxDue) + floatOrZero(rec.OtherLiensTotal)

		ltv := models.LTVSentinel
		if marketValue != 0 {
			ltv = encumbrance / marketValue
		}

		reason := ReasonPassed
		switch {
		case e.isBannedType(propertyType):
			reason = reasonBannedType
		case ltv > e.cfg.MaxLTV:
			reason = ltvLabel
		case marketValue < e.cfg.MinMarketValue:
			reason = valueLabel
		default:
			if safeBid := marketValue*(1-e.cfg.ProfitMargin) - encumbrance; safeBid <= 0 {
				reason = reasonNegativeEquity
			}
		}

		decision := models.BidDecision{
			ParcelID:  rec.ParcelID,
			ShouldBid: reason == ReasonPassed,
			Reason:    reason,
			Timestamp: time.Now(),
		}
		if decision.ShouldBid {
			decision.MaxBidAmount = round2(marketValue*(1-e.cfg.ProfitMargin) - encumbrance)
			result.Passed++
		} else {
			result.Rejected++
			result.Tally[reason]++
		}

		result.Decisions = append(result.Decisions, decision)
	}

	return result
}

func (e *Engine) isBannedType(propertyType string) bool {
	upper := strings.ToUpper(propertyType)
	for _, banned := range e.cfg.BannedTypes {
		if strings.Contains(upper, banned) {
			return true
		}
	}
	return false
}

// resolveMarketValue walks the market value fallback chain. The 1.2
// assessed-value multiplier is a crude assessment-to-market heuristic;
// assessed values in these counties run well below market.
func resolveMarketValue(rec models.PropertyRecord) float64 {
	if rec.MarketValueEstimate != nil && *rec.MarketValueEstimate > 0 {
		return *rec.MarketValueEstimate
	}
	if rec.AssessedValue != nil && *rec.AssessedValue > 0 {
		return *rec.AssessedValue * 1.2
	}
	if rec.Amount != nil && *rec.Amount > 0 {
		return *rec.Amount
	}
	return 0
}

func resolvePropertyType(rec models.PropertyRecord) string {
	if rec.PropertyType != nil && *rec.PropertyType != "" {
		return *rec.PropertyType
	}
	if rec.Description != nil {
		if strings.Contains(strings.ToUpper(*rec.Description), "ROAD") {
			return "ROAD"
		}
		return "PARCEL"
	}
	return "UNKNOWN"
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
