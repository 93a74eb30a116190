// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Badness scoring and staff performance tiering.

package severity

import (
	"math"

	"storeops-mcp/internal/ops"
)

// Thresholds holds the scoring targets and weights. The values encode a
// business judgment (conversion rate dominates severity) and are loaded
// from configuration, not hard-coded at call sites.
type Thresholds struct {
	ConversionTarget float64
	ABSTarget        float64
	ABVTarget        float64
	ConversionWeight float64
	ABSWeight        float64
	ABVWeight        float64
}

// DefaultThresholds returns the production scoring constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ConversionTarget: 80,
		ABSTarget:        1.8,
		ABVTarget:        4500,
		ConversionWeight: 0.70,
		ABSWeight:        0.15,
		ABVWeight:        0.15,
	}
}

// Neutral values substituted for missing metrics so an incomplete record
// never scores as catastrophic.
const (
	neutralConversion = 100.0
	neutralABS        = 2.0
	neutralABV        = 5000.0
)

// Scorer computes a store's badness score. Higher is worse. Score is a
// pure function of the profile's available metrics.
type Scorer struct {
	t Thresholds
}

func NewScorer(t Thresholds) *Scorer {
	return &Scorer{t: t}
}

// Score sums the weighted, zero-clipped deficits of the three DSR
// metrics. A metric better than its target contributes nothing; a
// missing metric takes a neutral pass value.
func (s *Scorer) Score(p *ops.CorrelatedStoreProfile) float64 {
	conv, abs, abv := neutralConversion, neutralABS, neutralABV
	if p.DSR != nil {
		if p.DSR.ConversionRate != nil {
			conv = *p.DSR.ConversionRate
		}
		if p.DSR.AvgBillSize != nil {
			abs = *p.DSR.AvgBillSize
		}
		if p.DSR.AvgBillValue != nil {
			abv = *p.DSR.AvgBillValue
		}
	}
	convDeficit := math.Max(0, s.t.ConversionTarget-conv)
	absDeficit := math.Max(0, (s.t.ABSTarget-abs)*50)
	abvDeficit := math.Max(0, (s.t.ABVTarget-abv)/100)
	return convDeficit*s.t.ConversionWeight +
		absDeficit*s.t.ABSWeight +
		abvDeficit*s.t.ABVWeight
}

// TierThresholds holds the conversion-rate cut-offs between staff
// performance tiers, in ascending order.
type TierThresholds struct {
	Critical float64 // below: CRITICAL
	Poor     float64 // below: POOR
	Average  float64 // below: AVERAGE, else GOOD
}

// DefaultTierThresholds returns the production tier cut-offs.
func DefaultTierThresholds() TierThresholds {
	return TierThresholds{Critical: 40, Poor: 55, Average: 70}
}

// TierFor maps a conversion rate percentage to a performance tier.
func TierFor(conversionRate float64, t TierThresholds) ops.PerformanceTier {
	switch {
	case conversionRate < t.Critical:
		return ops.TierCritical
	case conversionRate < t.Poor:
		return ops.TierPoor
	case conversionRate < t.Average:
		return ops.TierAverage
	default:
		return ops.TierGood
	}
}
