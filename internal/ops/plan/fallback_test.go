// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Unit tests for the rule-based plan builder.

package plan

import (
	"reflect"
	"strings"
	"testing"

	"storeops-mcp/internal/ops"
)

func f(v float64) *float64 { return &v }

func trissurProfile() *ops.CorrelatedStoreProfile {
	return &ops.CorrelatedStoreProfile{
		StoreName: "Trissur",
		Category:  ops.CategoryCritical,
		DSR: &ops.StorePerformanceRecord{
			StoreName:      "Trissur",
			ConversionRate: f(45),
			AvgBillSize:    f(1.2),
			AvgBillValue:   f(3000),
			RevenueLoss:    120000,
		},
		Cancellation: &ops.CancellationRecord{
			StoreName:          "SG.Trissur",
			TotalCancellations: 6,
			TopReasons: []ops.CancellationReason{
				{Reason: "Size not available", Count: 4, Percentage: 66},
			},
		},
	}
}

func TestFallbackSizeKeywordDrivesInventoryAction(t *testing.T) {
	plan := BuildFallback(trissurProfile())
	if plan.Provenance != ops.ProvenanceFallback {
		t.Fatalf("expected fallback provenance, got %s", plan.Provenance)
	}
	if plan.RootCauseCategory != "Inventory" {
		t.Fatalf("expected Inventory category, got %s", plan.RootCauseCategory)
	}
	found := false
	for _, a := range plan.Immediate {
		if strings.Contains(strings.ToLower(a), "size") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a size-related immediate action, got %v", plan.Immediate)
	}
}

func TestFallbackTiersAlwaysFilled(t *testing.T) {
	// a profile matching no keyword rule at all
	p := &ops.CorrelatedStoreProfile{StoreName: "X", Category: ops.CategoryDSROnly,
		DSR: &ops.StorePerformanceRecord{StoreName: "X"}}
	plan := BuildFallback(p)
	if len(plan.Immediate) < minActionsPerTier ||
		len(plan.ShortTerm) < minActionsPerTier ||
		len(plan.LongTerm) < minActionsPerTier {
		t.Fatalf("tiers underfilled: %d/%d/%d",
			len(plan.Immediate), len(plan.ShortTerm), len(plan.LongTerm))
	}
	if plan.RootCause == "" || plan.RootCauseCategory == "" || plan.ExpectedImpact == "" {
		t.Fatalf("plan has empty required fields: %+v", plan)
	}
}

func TestFallbackDeliveryKeyword(t *testing.T) {
	p := &ops.CorrelatedStoreProfile{
		StoreName: "K",
		Category:  ops.CategoryCancellationOnly,
		Cancellation: &ops.CancellationRecord{
			TotalCancellations: 3,
			TopReasons:         []ops.CancellationReason{{Reason: "Delivery delayed twice", Count: 3, Percentage: 100}},
		},
	}
	plan := BuildFallback(p)
	if plan.RootCauseCategory != "Delivery" {
		t.Fatalf("expected Delivery, got %s", plan.RootCauseCategory)
	}
	joined := strings.ToLower(strings.Join(plan.Immediate, " "))
	if !strings.Contains(joined, "delivery") {
		t.Fatalf("expected delivery-communication action, got %v", plan.Immediate)
	}
}

func TestFallbackDeterministic(t *testing.T) {
	a := BuildFallback(trissurProfile())
	b := BuildFallback(trissurProfile())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("fallback plan not deterministic")
	}
}

func TestFallbackStaffTierSignal(t *testing.T) {
	p := &ops.CorrelatedStoreProfile{
		StoreName: "S",
		Category:  ops.CategoryDSROnly,
		DSR:       &ops.StorePerformanceRecord{StoreName: "S"},
		Staff:     &ops.StaffPerformanceRecord{ConversionRate: 30, Tier: ops.TierCritical},
	}
	plan := BuildFallback(p)
	if plan.RootCauseCategory != "Staffing" {
		t.Fatalf("expected Staffing from critical staff tier, got %s", plan.RootCauseCategory)
	}
}
