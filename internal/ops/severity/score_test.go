// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Unit tests for badness scoring.

package severity

import (
	"testing"

	"storeops-mcp/internal/ops"
)

func f(v float64) *float64 { return &v }

func profile(conv, abs, abv *float64) *ops.CorrelatedStoreProfile {
	return &ops.CorrelatedStoreProfile{
		StoreName: "Trissur",
		DSR: &ops.StorePerformanceRecord{
			StoreName:      "Trissur",
			ConversionRate: conv,
			AvgBillSize:    abs,
			AvgBillValue:   abv,
		},
	}
}

func TestScoreZeroAtTargets(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	if got := s.Score(profile(f(80), f(1.8), f(4500))); got != 0 {
		t.Fatalf("expected 0 at targets, got %f", got)
	}
	if got := s.Score(profile(f(95), f(2.5), f(6000))); got != 0 {
		t.Fatalf("expected 0 above targets, got %f", got)
	}
}

func TestScoreWeights(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	// conversion 45 -> deficit 35; abs 1.2 -> (0.6*50)=30; abv 3000 -> 15
	got := s.Score(profile(f(45), f(1.2), f(3000)))
	want := 35*0.70 + 30*0.15 + 15*0.15
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestScoreMonotonicInConversion(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	prev := -1.0
	for conv := 100.0; conv >= 0; conv -= 5 {
		got := s.Score(profile(f(conv), f(1.8), f(4500)))
		if got < prev {
			t.Fatalf("score decreased from %f to %f at conversion %f", prev, got, conv)
		}
		prev = got
	}
}

func TestScoreMissingMetricsNeutral(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	if got := s.Score(profile(nil, nil, nil)); got != 0 {
		t.Fatalf("expected 0 for missing metrics, got %f", got)
	}
	// no DSR record at all (cancellation-only store)
	p := &ops.CorrelatedStoreProfile{StoreName: "Kottayam", Category: ops.CategoryCancellationOnly}
	if got := s.Score(p); got != 0 {
		t.Fatalf("expected 0 without DSR record, got %f", got)
	}
}

func TestTierFor(t *testing.T) {
	tt := DefaultTierThresholds()
	cases := []struct {
		conv float64
		want ops.PerformanceTier
	}{
		{10, ops.TierCritical},
		{39.9, ops.TierCritical},
		{40, ops.TierPoor},
		{54, ops.TierPoor},
		{55, ops.TierAverage},
		{69, ops.TierAverage},
		{70, ops.TierGood},
		{95, ops.TierGood},
	}
	for _, c := range cases {
		if got := TierFor(c.conv, tt); got != c.want {
			t.Fatalf("conv %f: expected %s, got %s", c.conv, c.want, got)
		}
	}
}
