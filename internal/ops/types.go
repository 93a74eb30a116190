// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Core domain records and derived profile/plan types.

package ops

// Category classifies a correlated store by which sources flagged it.
type Category string

const (
	// CategoryCritical: flagged by both the DSR analysis and the
	// cancellation source.
	CategoryCritical Category = "CRITICAL"
	// CategoryDSROnly: DSR problem, no cancellations.
	CategoryDSROnly Category = "DSR_ONLY"
	// CategoryCancellationOnly: cancellations, DSR was fine.
	CategoryCancellationOnly Category = "CANCELLATION_ONLY"
)

// PerformanceTier is the coarse staff performance band derived from
// conversion rate.
type PerformanceTier string

const (
	TierCritical PerformanceTier = "CRITICAL"
	TierPoor     PerformanceTier = "POOR"
	TierAverage  PerformanceTier = "AVERAGE"
	TierGood     PerformanceTier = "GOOD"
)

// StorePerformanceRecord is one problem store from the DSR analysis.
// Metric pointers are nil when the upstream report omitted the metric;
// an incomplete record must never look catastrophic downstream.
type StorePerformanceRecord struct {
	StoreName      string   `json:"store_name"`
	ConversionRate *float64 `json:"conversion_rate,omitempty"` // percent
	AvgBillSize    *float64 `json:"avg_bill_size,omitempty"`   // units per bill
	AvgBillValue   *float64 `json:"avg_bill_value,omitempty"`  // currency per bill
	WalkIns        int      `json:"walk_ins,omitempty"`
	LossOfSale     int      `json:"loss_of_sale,omitempty"`
	RevenueLoss    float64  `json:"revenue_loss,omitempty"`
	RootCauses     []string `json:"root_causes,omitempty"`
}

// CancellationReason is one entry of a store's top-reason breakdown.
type CancellationReason struct {
	Reason     string  `json:"reason"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CancellationRecord aggregates rental cancellations for one store as
// named by the cancellation source.
type CancellationRecord struct {
	StoreName          string               `json:"store_name"`
	TotalCancellations int                  `json:"total_cancellations"`
	TopReasons         []CancellationReason `json:"top_reasons,omitempty"`
}

// StaffMetrics holds per-staff counters.
type StaffMetrics struct {
	Name           string  `json:"name"`
	WalkIns        int     `json:"walk_ins"`
	Bills          int     `json:"bills"`
	Quantity       int     `json:"quantity"`
	LossOfSale     int     `json:"loss_of_sale"`
	ConversionRate float64 `json:"conversion_rate"`
}

// StaffPerformanceRecord aggregates a store's staff metrics.
type StaffPerformanceRecord struct {
	StoreName        string          `json:"store_name"`
	WalkIns          int             `json:"walk_ins"`
	Bills            int             `json:"bills"`
	Quantity         int             `json:"quantity"`
	LossOfSale       int             `json:"loss_of_sale"`
	StaffCount       int             `json:"staff_count"`
	Staff            []StaffMetrics  `json:"staff,omitempty"`
	ConversionRate   float64         `json:"conversion_rate"`
	Tier             PerformanceTier `json:"tier,omitempty"`
	AttendanceIssues []string        `json:"attendance_issues,omitempty"`
}

// CorrelatedStoreProfile is the per-store join of the three sources,
// built fresh on every run. A nil source field means that source did not
// report a problem for this store. Plan is attached after top-N plan
// dispatch and stays nil for stores beyond the cap.
type CorrelatedStoreProfile struct {
	StoreName    string                  `json:"store_name"`
	Category     Category                `json:"category"`
	DSR          *StorePerformanceRecord `json:"dsr,omitempty"`
	Cancellation *CancellationRecord     `json:"cancellation,omitempty"`
	Staff        *StaffPerformanceRecord `json:"staff,omitempty"`
	BadnessScore float64                 `json:"badness_score"`
	Plan         *ActionPlan             `json:"action_plan,omitempty"`
}

// Provenance records which path produced an action plan.
type Provenance string

const (
	ProvenanceAdvisor  Provenance = "advisor"
	ProvenanceFallback Provenance = "fallback"
)

// ActionPlan is the prioritized remediation plan for one store. The
// schema is identical whether an advisor backend or the rule-based
// fallback produced it.
type ActionPlan struct {
	RootCause         string     `json:"root_cause"`
	RootCauseCategory string     `json:"root_cause_category"`
	Immediate         []string   `json:"immediate"`
	ShortTerm         []string   `json:"short_term"`
	LongTerm          []string   `json:"long_term"`
	ExpectedImpact    string     `json:"expected_impact"`
	Provenance        Provenance `json:"provenance"`
	BackendUsed       string     `json:"backend_used,omitempty"`
}
