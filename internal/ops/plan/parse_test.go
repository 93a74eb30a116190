// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Unit tests for advisor response cleaning and repair.

package plan

import (
	"strings"
	"testing"
)

const wellFormed = `{
  "rootCause": "Low conversion due to size gaps",
  "rootCauseCategory": "Inventory",
  "immediate": ["a", "b", "c", "d"],
  "shortTerm": ["a", "b", "c", "d"],
  "longTerm": ["a", "b", "c", "d"],
  "expectedImpact": "Conversion up 10 points"
}`

func TestParseWellFormed(t *testing.T) {
	p, err := ParsePlan(wellFormed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.RootCause != "Low conversion due to size gaps" {
		t.Fatalf("wrong root cause: %q", p.RootCause)
	}
	if len(p.Immediate) != 4 || len(p.ShortTerm) != 4 || len(p.LongTerm) != 4 {
		t.Fatalf("tier lengths wrong: %d/%d/%d", len(p.Immediate), len(p.ShortTerm), len(p.LongTerm))
	}
}

func TestParseStripsCodeFences(t *testing.T) {
	raw := "```json\n" + wellFormed + "\n```"
	p, err := ParsePlan(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.RootCauseCategory != "Inventory" {
		t.Fatalf("wrong category: %q", p.RootCauseCategory)
	}
}

func TestParseIsolatesOutermostObject(t *testing.T) {
	raw := "Here is the plan you asked for:\n" + wellFormed + "\nLet me know if you need more."
	if _, err := ParsePlan(raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseRepairsPercentTokens(t *testing.T) {
	raw := `{"rootCause": "x", "rootCauseCategory": "y", "immediate": [], "shortTerm": [], "longTerm": [], "expectedImpact": 20%}`
	p, err := ParsePlan(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ExpectedImpact != "20%" {
		t.Fatalf("expected quoted percent, got %q", p.ExpectedImpact)
	}
}

func TestParseRepairsBareWordsAndTrailingCommas(t *testing.T) {
	raw := `{"rootCause": Staffing gap, "rootCauseCategory": Staffing, "immediate": ["a",], "shortTerm": [], "longTerm": [], "expectedImpact": "ok",}`
	p, err := ParsePlan(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.RootCause != "Staffing gap" || p.RootCauseCategory != "Staffing" {
		t.Fatalf("bare words not repaired: %q / %q", p.RootCause, p.RootCauseCategory)
	}
	if len(p.Immediate) != 1 || p.Immediate[0] != "a" {
		t.Fatalf("trailing comma not repaired: %v", p.Immediate)
	}
}

func TestParseDefaultsMissingFields(t *testing.T) {
	p, err := ParsePlan(`{"rootCause": "only this"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Immediate == nil || p.ShortTerm == nil || p.LongTerm == nil {
		t.Fatalf("missing tiers must default to empty, got %+v", p)
	}
	if p.ExpectedImpact != "" {
		t.Fatalf("expected empty impact, got %q", p.ExpectedImpact)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "no json here", "{{{", "]["} {
		if _, err := ParsePlan(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestRepairKeepsBooleansAndNull(t *testing.T) {
	repaired := repairJSON(`{"a": true, "b": null, "c": High}`)
	if !strings.Contains(repaired, `"a": true`) || !strings.Contains(repaired, `"b": null`) {
		t.Fatalf("booleans/null must survive repair: %s", repaired)
	}
	if !strings.Contains(repaired, `"c": "High"`) {
		t.Fatalf("bare word not quoted: %s", repaired)
	}
}
