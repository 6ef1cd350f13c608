// Package guardrails implements the hard financial safety rules that
// decide whether a parcel is worth bidding on at all, and if so, the
// maximum safe amount. Rejection here is a first-class outcome, not an
// error: the engine never fails, it only rules.
package guardrails

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/auctionwatch/api/internal/models"
)

// Config holds the non-negotiable business rules. It is injected at
// construction and never mutated, so tests can override thresholds
// without touching process-wide state.
type Config struct {
	BannedTypes    []string
	MaxLTV         float64
	MinMarketValue float64
	ProfitMargin   float64
}

// DefaultConfig returns the production rules: never buy if debt exceeds
// 60% of value, never buy scraps worth under $5k, and target a 30%
// equity margin on the bid.
func DefaultConfig() Config {
	return Config{
		MaxLTV:         0.60,
		MinMarketValue: 5000.0,
		ProfitMargin:   0.30,
		BannedTypes:    []string{"COMMON AREA", "ROAD", "RETENTION POND", "UNKNOWN"},
	}
}

// Engine applies the guardrail rules to parcels. Evaluation is pure and
// side-effect free; the same parcel always produces the same ruling.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given rules.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// NewDefaultEngine creates an engine with DefaultConfig.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultConfig())
}

// Evaluate issues a binding ruling for one parcel.
//
// The checks run in a fixed priority order, and the first failure wins:
//
//  1. banned property type (case-insensitive substring match)
//  2. loan-to-value above MaxLTV (equality passes)
//  3. market value below MinMarketValue (equality passes)
//  4. non-positive safe bid (negative equity)
//
// A parcel that survives all four is accepted with
// maxBid = round2(marketValue * (1 - ProfitMargin) - totalEncumbrance).
func (e *Engine) Evaluate(p models.Parcel) models.BidDecision {
	upperType := strings.ToUpper(p.PropertyType)
	for _, banned := range e.cfg.BannedTypes {
		if strings.Contains(upperType, banned) {
			return e.reject(p.ParcelID, fmt.Sprintf("Banned Property Type: %s", p.PropertyType))
		}
	}

	if ltv := p.LTVRatio(); ltv > e.cfg.MaxLTV {
		return e.reject(p.ParcelID, fmt.Sprintf("LTV too high: %.2f > %.2f", ltv, e.cfg.MaxLTV))
	}

	if p.MarketValueEstimate < e.cfg.MinMarketValue {
		return e.reject(p.ParcelID, fmt.Sprintf("Value too low: $%.2f", p.MarketValueEstimate))
	}

	safeBid := p.MarketValueEstimate*(1-e.cfg.ProfitMargin) - p.TotalEncumbrance()
	if safeBid <= 0 {
		return e.reject(p.ParcelID, "Negative Equity potential")
	}

	return models.BidDecision{
		ParcelID:     p.ParcelID,
		ShouldBid:    true,
		MaxBidAmount: round2(safeBid),
		Reason:       ReasonPassed,
		Timestamp:    time.Now(),
	}
}

func (e *Engine) reject(parcelID, reason string) models.BidDecision {
	return models.BidDecision{
		ParcelID:     parcelID,
		ShouldBid:    false,
		MaxBidAmount: 0.0,
		Reason:       reason,
		Timestamp:    time.Now(),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
