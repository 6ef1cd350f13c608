// Package scoring implements the pure computations that turn raw parcel
// attributes into stored metrics: water feature detection over description
// text and the composite investment score.
package scoring

import (
	"regexp"
	"strings"
)

// WaterTier is one severity tier of water keywords. Tiers are kept as an
// ordered list so iteration order, and therefore feature discovery order,
// is deterministic.
type WaterTier struct {
	Name     string
	Keywords []string
	Score    float64
}

// DefaultWaterTiers returns the standard keyword tiers, ordered from
// premium down to low.
func DefaultWaterTiers() []WaterTier {
	return []WaterTier{
		{
			Name:  "premium",
			Score: 10,
			Keywords: []string{
				"lakefront", "waterfront", "river frontage", "beachfront",
				"oceanfront", "bay front",
			},
		},
		{
			Name:     "high",
			Score:    7,
			Keywords: []string{"lake", "river", "large creek", "canal with access", "marina"},
		},
		{
			Name:     "medium",
			Score:    4,
			Keywords: []string{"creek", "stream", "pond", "bayou", "inlet"},
		},
		{
			Name:     "low",
			Score:    2,
			Keywords: []string{"water view", "near water", "seasonal creek", "drainage"},
		},
	}
}

// WaterFeature is one distinct matched keyword with its tier and score.
type WaterFeature struct {
	Name  string  `json:"featureName"`
	Tier  string  `json:"featureTier"`
	Score float64 `json:"score"`
}

type keywordPattern struct {
	re        *regexp.Regexp
	name      string
	tier      string
	tierScore float64
}

// WaterDetector scans free-text property descriptions for water-related
// keywords and produces a tiered composite score.
type WaterDetector struct {
	patterns []keywordPattern
}

// NewWaterDetector builds a detector over the given tiers, precompiling a
// whole-word pattern per keyword. Word boundaries prevent substring false
// positives ("creek" inside "screech").
func NewWaterDetector(tiers []WaterTier) *WaterDetector {
	var patterns []keywordPattern
	for _, tier := range tiers {
		for _, keyword := range tier.Keywords {
			patterns = append(patterns, keywordPattern{
				re:        regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`),
				name:      keyword,
				tier:      tier.Name,
				tierScore: tier.Score,
			})
		}
	}
	return &WaterDetector{patterns: patterns}
}

// NewDefaultWaterDetector builds a detector over DefaultWaterTiers.
func NewDefaultWaterDetector() *WaterDetector {
	return NewWaterDetector(DefaultWaterTiers())
}

// Detect scans a description and returns the composite water score with
// the list of distinct matched features.
//
// The composite score is the score of the single highest-tier match plus
// a 10% bonus of the score of every other distinct match. This rewards
// feature diversity without letting many low-tier matches overwhelm one
// premium match.
//
// Repeated mentions of the same keyword count once. Features are returned
// sorted by descending score, ties broken by discovery order. An empty
// description yields (0, nil), as does a description with no matches.
func (d *WaterDetector) Detect(description string) (float64, []WaterFeature) {
	if description == "" {
		return 0.0, nil
	}

	lower := strings.ToLower(description)

	// Patterns are ordered premium-first, so the collected features are
	// already sorted by descending score with discovery-order ties.
	var features []WaterFeature
	for _, p := range d.patterns {
		if p.re.MatchString(lower) {
			features = append(features, WaterFeature{
				Name:  p.name,
				Tier:  p.tier,
				Score: p.tierScore,
			})
		}
	}

	if len(features) == 0 {
		return 0.0, nil
	}

	composite := features[0].Score
	for _, f := range features[1:] {
		composite += 0.1 * f.Score
	}

	return composite, features
}
