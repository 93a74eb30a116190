// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Unit tests for response assembly.

package report

import (
	"testing"

	"storeops-mcp/internal/ops"
	"storeops-mcp/internal/ops/correlate"
)

func TestBuildSummaryTotals(t *testing.T) {
	res := correlate.Result{
		Critical: []ops.CorrelatedStoreProfile{
			{
				StoreName:    "Trissur",
				Category:     ops.CategoryCritical,
				DSR:          &ops.StorePerformanceRecord{RevenueLoss: 120000},
				Cancellation: &ops.CancellationRecord{TotalCancellations: 6},
			},
		},
		DSROnly: []ops.CorrelatedStoreProfile{
			{StoreName: "Trivandrum", Category: ops.CategoryDSROnly,
				DSR: &ops.StorePerformanceRecord{RevenueLoss: 30000}},
		},
		CancellationOnly: []ops.CorrelatedStoreProfile{
			{StoreName: "Kottayam", Category: ops.CategoryCancellationOnly,
				Cancellation: &ops.CancellationRecord{TotalCancellations: 4}},
		},
	}
	out := Build(res, 0.6)
	if out.Summary.CriticalCount != 1 {
		t.Fatalf("expected 1 critical, got %d", out.Summary.CriticalCount)
	}
	if out.Summary.TotalLoss != 150000 {
		t.Fatalf("expected total loss 150000, got %f", out.Summary.TotalLoss)
	}
	if out.Summary.TotalCancellations != 10 {
		t.Fatalf("expected 10 cancellations, got %d", out.Summary.TotalCancellations)
	}
	if out.Summary.EstimatedRecovery != 90000 {
		t.Fatalf("expected recovery 90000, got %f", out.Summary.EstimatedRecovery)
	}
}

func TestBuildNeverDropsUnselectedStores(t *testing.T) {
	res := correlate.Result{
		DSROnly: []ops.CorrelatedStoreProfile{
			{StoreName: "A", Category: ops.CategoryDSROnly, DSR: &ops.StorePerformanceRecord{}},
			{StoreName: "B", Category: ops.CategoryDSROnly, DSR: &ops.StorePerformanceRecord{}},
		},
	}
	// only A was selected and planned
	res.DSROnly[0].Plan = &ops.ActionPlan{RootCause: "x", Provenance: ops.ProvenanceFallback}
	out := Build(res, 0.6)
	if len(out.DSROnlyStores) != 2 {
		t.Fatalf("unselected store dropped")
	}
	if out.DSROnlyStores[0].Plan == nil {
		t.Fatalf("selected store lost its plan")
	}
	if out.DSROnlyStores[1].Plan != nil {
		t.Fatalf("unselected store must not carry a plan")
	}
}

func TestBuildEmptyResult(t *testing.T) {
	out := Build(correlate.Result{}, 0.6)
	if out.CriticalStores == nil || out.DSROnlyStores == nil || out.CancellationOnlyStores == nil {
		t.Fatalf("category lists must be non-nil for JSON consumers")
	}
	if out.Summary.CriticalCount != 0 || out.Summary.TotalLoss != 0 {
		t.Fatalf("expected zero summary, got %+v", out.Summary)
	}
}
