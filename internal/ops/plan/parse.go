// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Advisor response cleaning, JSON repair and plan parsing.

package plan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"storeops-mcp/internal/ops"
)

// planPayload mirrors the JSON object an advisor backend is asked to
// produce.
type planPayload struct {
	RootCause         string   `json:"rootCause"`
	RootCauseCategory string   `json:"rootCauseCategory"`
	Immediate         []string `json:"immediate"`
	ShortTerm         []string `json:"shortTerm"`
	LongTerm          []string `json:"longTerm"`
	ExpectedImpact    string   `json:"expectedImpact"`
}

// ParsePlan cleans raw advisor output and parses it into an ActionPlan.
// Cleaning strips code fences and isolates the outermost {...} span;
// when a first parse fails, common syntax defects are repaired (bare
// percentage tokens, unquoted bare-word values, trailing commas) and the
// parse retried once. Missing fields default to empty values. Provenance
// is left for the dispatcher to set.
func ParsePlan(raw string) (ops.ActionPlan, error) {
	cleaned := stripFences(raw)
	cleaned = outermostObject(cleaned)
	if cleaned == "" {
		return ops.ActionPlan{}, fmt.Errorf("no JSON object in advisor output")
	}

	var p planPayload
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		repaired := repairJSON(cleaned)
		if err2 := json.Unmarshal([]byte(repaired), &p); err2 != nil {
			return ops.ActionPlan{}, fmt.Errorf("parse advisor plan: %w", err)
		}
	}
	return ops.ActionPlan{
		RootCause:         strings.TrimSpace(p.RootCause),
		RootCauseCategory: strings.TrimSpace(p.RootCauseCategory),
		Immediate:         emptyIfNil(p.Immediate),
		ShortTerm:         emptyIfNil(p.ShortTerm),
		LongTerm:          emptyIfNil(p.LongTerm),
		ExpectedImpact:    strings.TrimSpace(p.ExpectedImpact),
	}, nil
}

func emptyIfNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// stripFences removes surrounding markdown code-fence markers.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// outermostObject returns the span from the first '{' to the last '}'.
func outermostObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

var (
	// value position: bare percentage like `: 20%` or `: 15-20%`
	rePercentValue = regexp.MustCompile(`:\s*([0-9]+(?:\.[0-9]+)?(?:\s*-\s*[0-9]+(?:\.[0-9]+)?)?\s*%)\s*([,}\]])`)
	// value position: unquoted bare words like `: High` (not true/false/null)
	reBareWordValue = regexp.MustCompile(`:\s*([A-Za-z][A-Za-z0-9 _/-]*?)\s*([,}\]])`)
	// trailing comma before a closing brace/bracket
	reTrailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// repairJSON fixes the syntax defects advisor models produce most
// often. The repairs are purely textual; anything still unparseable
// afterwards is the caller's problem (it falls back).
func repairJSON(s string) string {
	s = rePercentValue.ReplaceAllString(s, `: "$1"$2`)
	s = reBareWordValue.ReplaceAllStringFunc(s, func(m string) string {
		sub := reBareWordValue.FindStringSubmatch(m)
		word := strings.TrimSpace(sub[1])
		switch strings.ToLower(word) {
		case "true", "false", "null":
			return m
		}
		return `: "` + word + `"` + sub[2]
	})
	s = reTrailingComma.ReplaceAllString(s, `$1`)
	return s
}
