// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Unit tests for input guardrails.

package safety

import (
	"strings"
	"testing"

	"storeops-mcp/internal/config"
)

func testGuardrails() *Guardrails {
	return NewGuardrails(config.Config{
		MaxStoresPerRun: 10,
		MaxTopN:         5,
		TopN:            3,
	})
}

func TestCheckRunSize(t *testing.T) {
	g := testGuardrails()
	if err := g.CheckRunSize(0, 0, 0); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if err := g.CheckRunSize(5, 3, 2); err != nil {
		t.Fatalf("unexpected error for in-bounds input: %v", err)
	}
	if err := g.CheckRunSize(11, 0, 0); err == nil {
		t.Fatalf("expected error when one dataset exceeds the cap")
	}
}

func TestResolveTopN(t *testing.T) {
	g := testGuardrails()
	n, err := g.ResolveTopN(0)
	if err != nil || n != 3 {
		t.Fatalf("expected default 3, got %d err=%v", n, err)
	}
	n, err = g.ResolveTopN(5)
	if err != nil || n != 5 {
		t.Fatalf("expected 5, got %d err=%v", n, err)
	}
	if _, err := g.ResolveTopN(6); err == nil {
		t.Fatalf("expected error above max_top_n")
	}
	if _, err := g.ResolveTopN(-1); err == nil {
		t.Fatalf("expected error for negative top_n")
	}
}

func TestCheckStoreName(t *testing.T) {
	g := testGuardrails()
	if err := g.CheckStoreName("Z.Edapally"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.CheckStoreName("   "); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if err := g.CheckStoreName(strings.Repeat("x", 201)); err == nil {
		t.Fatalf("expected error for oversized name")
	}
}
