// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Final analysis response assembly and summary totals.

package report

import (
	"time"

	"storeops-mcp/internal/ops"
	"storeops-mcp/internal/ops/correlate"
)

// Summary aggregates run-level totals across every correlated store,
// selected or not.
type Summary struct {
	CriticalCount      int     `json:"critical_count"`
	TotalLoss          float64 `json:"total_loss"`
	TotalCancellations int     `json:"total_cancellations"`
	EstimatedRecovery  float64 `json:"estimated_recovery"`
}

// Response is the produced interface of one analysis run. Selected
// stores carry their ActionPlan; stores beyond the top-N cap keep their
// summary fields and are never dropped.
type Response struct {
	RunID                  string                       `json:"run_id,omitempty"`
	GeneratedAt            time.Time                    `json:"generated_at"`
	CriticalStores         []ops.CorrelatedStoreProfile `json:"critical_stores"`
	DSROnlyStores          []ops.CorrelatedStoreProfile `json:"dsr_only_stores"`
	CancellationOnlyStores []ops.CorrelatedStoreProfile `json:"cancellation_only_stores"`
	Summary                Summary                      `json:"summary"`
}

// Build assembles the response from a correlation result. The profiles
// must already be scored and, for selected stores, carry their plans.
// recoveryRate scales total revenue loss into the estimated recovery
// figure.
func Build(res correlate.Result, recoveryRate float64) Response {
	out := Response{
		GeneratedAt:            time.Now().UTC(),
		CriticalStores:         nonNil(res.Critical),
		DSROnlyStores:          nonNil(res.DSROnly),
		CancellationOnlyStores: nonNil(res.CancellationOnly),
	}
	out.Summary.CriticalCount = len(res.Critical)
	for _, p := range res.All() {
		if p.DSR != nil {
			out.Summary.TotalLoss += p.DSR.RevenueLoss
		}
		if p.Cancellation != nil {
			out.Summary.TotalCancellations += p.Cancellation.TotalCancellations
		}
	}
	if recoveryRate > 0 {
		out.Summary.EstimatedRecovery = out.Summary.TotalLoss * recoveryRate
	}
	return out
}

func nonNil(v []ops.CorrelatedStoreProfile) []ops.CorrelatedStoreProfile {
	if v == nil {
		return []ops.CorrelatedStoreProfile{}
	}
	return v
}
