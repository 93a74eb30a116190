// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Advisory request assembly from correlated profiles.

package plan

import (
	"encoding/json"
	"fmt"

	"storeops-mcp/internal/ops"
)

// AdvisoryRequest is the structured request sent to an advisor backend.
// Only the sections the store's category actually has are populated; a
// DSR-only store never carries cancellation data and vice versa.
type AdvisoryRequest struct {
	StoreName    string                      `json:"store_name"`
	Category     ops.Category                `json:"category"`
	Performance  *ops.StorePerformanceRecord `json:"performance,omitempty"`
	Cancellation *ops.CancellationRecord     `json:"cancellation,omitempty"`
	Staff        *staffSummary               `json:"staff,omitempty"`
}

// staffSummary keeps the advisory payload small: aggregates only, no
// per-staff detail.
type staffSummary struct {
	StaffCount       int                 `json:"staff_count"`
	WalkIns          int                 `json:"walk_ins"`
	Bills            int                 `json:"bills"`
	ConversionRate   float64             `json:"conversion_rate"`
	Tier             ops.PerformanceTier `json:"tier,omitempty"`
	AttendanceIssues []string            `json:"attendance_issues,omitempty"`
}

// BuildRequest assembles the advisory request for one selected store.
func BuildRequest(p *ops.CorrelatedStoreProfile) AdvisoryRequest {
	req := AdvisoryRequest{StoreName: p.StoreName, Category: p.Category}
	req.Performance = p.DSR
	req.Cancellation = p.Cancellation
	if p.Staff != nil {
		req.Staff = &staffSummary{
			StaffCount:       p.Staff.StaffCount,
			WalkIns:          p.Staff.WalkIns,
			Bills:            p.Staff.Bills,
			ConversionRate:   p.Staff.ConversionRate,
			Tier:             p.Staff.Tier,
			AttendanceIssues: p.Staff.AttendanceIssues,
		}
	}
	return req
}

// Prompt renders the request as the advisory prompt: a fixed
// instruction preamble plus the request data as JSON. The expected
// output schema is spelled out so the response parser has a fighting
// chance.
func (r AdvisoryRequest) Prompt() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf(`{"store_name":%q}`, r.StoreName))
	}
	return "You are a retail operations advisor. Given the store diagnostics below, " +
		"respond with exactly one JSON object with fields: rootCause (string), " +
		"rootCauseCategory (string), immediate (4 strings), shortTerm (4 strings), " +
		"longTerm (4 strings), expectedImpact (string). No prose outside the JSON.\n\n" +
		string(data)
}
