package scoring

import (
	"math"

	"github.com/auctionwatch/api/internal/domain"
)

// Config holds the tunable constants of the investment score formula.
// The defaults are load-bearing: existing scored rows were produced with
// them, so changing any constant silently reshuffles stored rankings.
type Config struct {
	// BaseNumerator divided by price-per-acre gives the base score,
	// capped at 100.
	BaseNumerator float64
	// IdealAcreageMin..IdealAcreageMax is the no-penalty acreage range.
	IdealAcreageMin float64
	IdealAcreageMax float64
	// Water boost: scores in [BoostMinScore, BoostMaxScore] map linearly
	// onto multipliers [1+BoostMin, 1+BoostMax].
	BoostMinScore float64
	BoostMaxScore float64
	BoostMin      float64
	BoostMax      float64
}

// DefaultConfig returns the production scoring constants.
func DefaultConfig() Config {
	return Config{
		BaseNumerator:   25000.0,
		IdealAcreageMin: 1.0,
		IdealAcreageMax: 20.0,
		BoostMinScore:   2.0,
		BoostMaxScore:   15.0,
		BoostMin:        0.15,
		BoostMax:        0.25,
	}
}

// InvestmentCalculator computes the composite 0-100 investment score from
// price efficiency, acreage suitability, and water features. It is a pure
// function of its inputs: missing values default to the worst case for
// that factor, and no input combination produces an error.
type InvestmentCalculator struct {
	cfg Config
}

// NewInvestmentCalculator builds a calculator with the given constants.
func NewInvestmentCalculator(cfg Config) *InvestmentCalculator {
	return &InvestmentCalculator{cfg: cfg}
}

// NewDefaultInvestmentCalculator builds a calculator with DefaultConfig.
func NewDefaultInvestmentCalculator() *InvestmentCalculator {
	return NewInvestmentCalculator(DefaultConfig())
}

// Score computes the final investment score, rounded to two decimals.
// Nil inputs are treated as absent: no price-per-acre zeroes the base
// score, no acreage takes the heavy penalty, no water score means no
// boost.
func (c *InvestmentCalculator) Score(pricePerAcre, acreage, waterScore *float64) float64 {
	base := c.baseScore(pricePerAcre)
	mod := c.acreageModifier(acreage)
	boost := c.WaterBoost(waterScore)
	return round2(base * mod * boost)
}

// ScoreValue computes the score and wraps it as a domain value, clamping
// at the 100.0 ceiling (a near-perfect base with a full water boost can
// arithmetically exceed it).
func (c *InvestmentCalculator) ScoreValue(pricePerAcre, acreage, waterScore *float64) domain.InvestmentScore {
	raw := c.Score(pricePerAcre, acreage, waterScore)
	if raw > 100.0 {
		raw = 100.0
	}
	score, _ := domain.NewInvestmentScore(raw)
	return score
}

// baseScore is inversely proportional to price per acre: lower price per
// acre earns a higher base, capped at 100.
func (c *InvestmentCalculator) baseScore(pricePerAcre *float64) float64 {
	if pricePerAcre == nil || *pricePerAcre <= 0 {
		return 0.0
	}
	return math.Min(100.0, c.cfg.BaseNumerator / *pricePerAcre)
}

// acreageModifier rewards the ideal range and penalizes the extremes:
// a linear ramp below one acre, and a linear decay with a 0.5 floor
// above twenty.
func (c *InvestmentCalculator) acreageModifier(acreage *float64) float64 {
	if acreage == nil || *acreage <= 0 {
		return 0.1
	}
	a := *acreage
	if a >= c.cfg.IdealAcreageMin && a <= c.cfg.IdealAcreageMax {
		return 1.0
	}
	if a < c.cfg.IdealAcreageMin {
		return 0.75 + 0.25*a
	}
	return math.Max(0.5, 1.0-(a-c.cfg.IdealAcreageMax)/100.0)
}

// WaterBoost maps a water score onto an investment multiplier via linear
// interpolation over [BoostMinScore, BoostMaxScore]. Scores below the
// minimum threshold earn no partial boost; scores above the cap clamp to
// the maximum multiplier.
func (c *InvestmentCalculator) WaterBoost(waterScore *float64) float64 {
	if waterScore == nil || *waterScore <= 0 {
		return 1.0
	}

	ws := *waterScore
	var normalized float64
	switch {
	case ws >= c.cfg.BoostMaxScore:
		normalized = 1.0
	case ws < c.cfg.BoostMinScore:
		return 1.0
	default:
		normalized = (ws - c.cfg.BoostMinScore) / (c.cfg.BoostMaxScore - c.cfg.BoostMinScore)
	}

	return 1.0 + c.cfg.BoostMin + normalized*(c.cfg.BoostMax-c.cfg.BoostMin)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
