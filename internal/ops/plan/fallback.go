// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Deterministic rule-based action plan builder.

package plan

import (
	"fmt"
	"strings"

	"storeops-mcp/internal/ops"
)

// minActionsPerTier is the floor each tier is padded to.
const minActionsPerTier = 3

// keywordRule maps issue-text keywords to a root cause and actions.
type keywordRule struct {
	keywords  []string
	category  string
	rootCause string
	immediate []string
	shortTerm []string
	longTerm  []string
}

var fallbackRules = []keywordRule{
	{
		keywords:  []string{"size", "stock", "inventory", "availability"},
		category:  "Inventory",
		rootCause: "Requested sizes and styles are not available when customers ask for them",
		immediate: []string{
			"Audit size availability across top-selling styles and flag gaps to the warehouse",
			"Enable inter-store size transfer for customer requests within 24 hours",
		},
		shortTerm: []string{
			"Rebalance size curves based on the last 8 weeks of loss-of-sale entries",
		},
		longTerm: []string{
			"Introduce demand-driven replenishment for high-velocity sizes",
		},
	},
	{
		keywords:  []string{"deliver", "delay", "late"},
		category:  "Delivery",
		rootCause: "Delivery commitments are being missed or poorly communicated",
		immediate: []string{
			"Call every customer with an open order and confirm a realistic delivery date",
		},
		shortTerm: []string{
			"Set up proactive delivery-status notifications at each hand-off point",
		},
		longTerm: []string{
			"Review courier SLAs and renegotiate cut-off times for trial-date orders",
		},
	},
	{
		keywords:  []string{"staff", "conversion", "attendance", "training"},
		category:  "Staffing",
		rootCause: "Floor staff are not converting walk-ins at an acceptable rate",
		immediate: []string{
			"Pair the weakest-converting staff with the store's best performer for a week",
		},
		shortTerm: []string{
			"Run a structured selling-skills refresher focused on closing and upselling",
		},
		longTerm: []string{
			"Tie a portion of store incentives to individual conversion rate",
		},
	},
	{
		keywords:  []string{"price", "discount", "expensive", "offer"},
		category:  "Pricing",
		rootCause: "Price objections are driving customers away or towards cancellations",
		immediate: []string{
			"Brief staff on the current offer matrix and approved negotiation room",
		},
		shortTerm: []string{
			"Benchmark rental and sale pricing against nearby competitors",
		},
		longTerm: []string{
			"Pilot a loyalty or referral program to reduce price sensitivity",
		},
	},
	{
		keywords:  []string{"quality", "fit", "damage", "alteration"},
		category:  "Quality",
		rootCause: "Product quality or fit issues are eroding customer confidence",
		immediate: []string{
			"Inspect the alteration and pressing workflow for the current rental stock",
		},
		shortTerm: []string{
			"Add a pre-handover quality checklist signed off by the store manager",
		},
		longTerm: []string{
			"Track quality-related cancellations per style and retire repeat offenders",
		},
	},
}

// genericActions pad tiers that the keyword rules left short.
var genericActions = struct {
	immediate, shortTerm, longTerm []string
}{
	immediate: []string{
		"Hold a store huddle to review yesterday's walk-ins, bills and misses",
		"Review the day's loss-of-sale log with the store manager",
		"Verify opening-hour readiness: staffing, displays and trial rooms",
	},
	shortTerm: []string{
		"Set weekly conversion and average-bill targets with the store team",
		"Shadow-shop the store and score the customer journey",
		"Review staffing rosters against footfall peaks",
	},
	longTerm: []string{
		"Establish a monthly store performance review with regional management",
		"Invest in staff development and succession planning for the store",
		"Benchmark the store against the best performer in its cluster",
	},
}

// BuildFallback derives a deterministic plan from the profile's DSR
// issue text and cancellation reasons. It never fails and is schema
// identical to an advisor-produced plan.
func BuildFallback(p *ops.CorrelatedStoreProfile) ops.ActionPlan {
	text := issueText(p)

	plan := ops.ActionPlan{
		Immediate:  []string{},
		ShortTerm:  []string{},
		LongTerm:   []string{},
		Provenance: ops.ProvenanceFallback,
	}
	for _, rule := range fallbackRules {
		if !matchesAny(text, rule.keywords) {
			continue
		}
		if plan.RootCause == "" {
			plan.RootCause = rule.rootCause
			plan.RootCauseCategory = rule.category
		}
		plan.Immediate = append(plan.Immediate, rule.immediate...)
		plan.ShortTerm = append(plan.ShortTerm, rule.shortTerm...)
		plan.LongTerm = append(plan.LongTerm, rule.longTerm...)
	}
	if plan.RootCause == "" {
		plan.RootCause = "Overall store execution is below target across key metrics"
		plan.RootCauseCategory = "Operations"
	}

	plan.Immediate = pad(plan.Immediate, genericActions.immediate)
	plan.ShortTerm = pad(plan.ShortTerm, genericActions.shortTerm)
	plan.LongTerm = pad(plan.LongTerm, genericActions.longTerm)
	plan.ExpectedImpact = expectedImpact(p)
	return plan
}

func issueText(p *ops.CorrelatedStoreProfile) string {
	var parts []string
	if p.DSR != nil {
		parts = append(parts, p.DSR.RootCauses...)
	}
	if p.Cancellation != nil {
		for _, r := range p.Cancellation.TopReasons {
			parts = append(parts, r.Reason)
		}
	}
	if p.Staff != nil {
		parts = append(parts, p.Staff.AttendanceIssues...)
		if p.Staff.Tier == ops.TierCritical || p.Staff.Tier == ops.TierPoor {
			parts = append(parts, "staff conversion below target")
		}
	}
	return strings.ToLower(strings.Join(parts, " | "))
}

func matchesAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func pad(actions, generics []string) []string {
	for i := 0; len(actions) < minActionsPerTier && i < len(generics); i++ {
		actions = append(actions, generics[i])
	}
	return actions
}

func expectedImpact(p *ops.CorrelatedStoreProfile) string {
	if p.DSR != nil && p.DSR.RevenueLoss > 0 {
		return fmt.Sprintf("Recover a substantial share of the %.0f revenue currently lost and lift conversion towards target within one quarter", p.DSR.RevenueLoss)
	}
	if p.Cancellation != nil && p.Cancellation.TotalCancellations > 0 {
		return fmt.Sprintf("Reduce the %d monthly cancellations materially within one quarter", p.Cancellation.TotalCancellations)
	}
	return "Measurable improvement in conversion and customer retention within one quarter"
}
