// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Unit tests for the plan dispatcher state machine.

package plan

import (
	"context"
	"errors"
	"testing"

	"storeops-mcp/internal/ops"
)

type fakeClient struct {
	calls int
	fn    func(call int) (string, string, error)
}

func (c *fakeClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, string, error) {
	c.calls++
	return c.fn(c.calls)
}

func profiles(names ...string) []*ops.CorrelatedStoreProfile {
	out := make([]*ops.CorrelatedStoreProfile, len(names))
	for i, n := range names {
		out[i] = &ops.CorrelatedStoreProfile{
			StoreName: n,
			Category:  ops.CategoryDSROnly,
			DSR:       &ops.StorePerformanceRecord{StoreName: n, RootCauses: []string{"size gaps"}},
		}
	}
	return out
}

func TestDispatchNoAdvisorConfigured(t *testing.T) {
	d := NewDispatcher(nil, 0, 0, nil)
	res := d.Dispatch(context.Background(), profiles("A")[0])
	if res.Provenance != ops.ProvenanceFallback {
		t.Fatalf("expected fallback, got %s", res.Provenance)
	}
	if len(res.Plan.Immediate) < minActionsPerTier {
		t.Fatalf("fallback plan underfilled")
	}
}

func TestDispatchAdvisorSuccess(t *testing.T) {
	client := &fakeClient{fn: func(int) (string, string, error) {
		return wellFormed, "anthropic/test", nil
	}}
	d := NewDispatcher(client, 0, 0, nil)
	res := d.Dispatch(context.Background(), profiles("A")[0])
	if res.Provenance != ops.ProvenanceAdvisor {
		t.Fatalf("expected advisor provenance, got %s", res.Provenance)
	}
	if res.Backend != "anthropic/test" || res.Plan.BackendUsed != "anthropic/test" {
		t.Fatalf("backend not recorded: %+v", res)
	}
}

func TestDispatchFallsBackOnAdvisorError(t *testing.T) {
	client := &fakeClient{fn: func(int) (string, string, error) {
		return "", "", errors.New("timeout")
	}}
	d := NewDispatcher(client, 0, 0, nil)
	res := d.Dispatch(context.Background(), profiles("A")[0])
	if res.Provenance != ops.ProvenanceFallback {
		t.Fatalf("expected fallback after advisor error")
	}
}

func TestDispatchFallsBackOnUnparseableResponse(t *testing.T) {
	client := &fakeClient{fn: func(int) (string, string, error) {
		return "sorry, I cannot help with that", "openai/test", nil
	}}
	d := NewDispatcher(client, 0, 0, nil)
	res := d.Dispatch(context.Background(), profiles("A")[0])
	if res.Provenance != ops.ProvenanceFallback {
		t.Fatalf("expected fallback after parse failure")
	}
}

func TestDispatchAllEveryStoreGetsAPlan(t *testing.T) {
	client := &fakeClient{fn: func(call int) (string, string, error) {
		if call%2 == 0 {
			return "", "", errors.New("timeout")
		}
		return wellFormed, "anthropic/test", nil
	}}
	d := NewDispatcher(client, 0, 0, nil)
	sel := profiles("A", "B", "C", "D")
	results := d.DispatchAll(context.Background(), sel)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, p := range sel {
		if p.Plan == nil {
			t.Fatalf("store %s missing plan", p.StoreName)
		}
		if len(p.Plan.Immediate) == 0 && results[i].Provenance == ops.ProvenanceFallback {
			t.Fatalf("fallback plan for %s underfilled", p.StoreName)
		}
	}
}

func TestDispatchAllAlwaysTimingOutAdvisor(t *testing.T) {
	client := &fakeClient{fn: func(int) (string, string, error) {
		return "", "", context.DeadlineExceeded
	}}
	d := NewDispatcher(client, 0, 0, nil)
	sel := profiles("A", "B", "C")
	results := d.DispatchAll(context.Background(), sel)
	for i, res := range results {
		if res.Provenance != ops.ProvenanceFallback {
			t.Fatalf("store %d: expected fallback", i)
		}
		if len(res.Plan.Immediate) < minActionsPerTier ||
			len(res.Plan.ShortTerm) < minActionsPerTier ||
			len(res.Plan.LongTerm) < minActionsPerTier {
			t.Fatalf("store %d: tiers underfilled", i)
		}
	}
}

func TestDispatchAllCancelledBatchStillCompletes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{fn: func(call int) (string, string, error) {
		cancel() // cancel after the first advisor call
		return wellFormed, "anthropic/test", nil
	}}
	d := NewDispatcher(client, 0, 0, nil)
	sel := profiles("A", "B", "C")
	results := d.DispatchAll(ctx, sel)
	if len(results) != 3 {
		t.Fatalf("cancelled batch must still return all results")
	}
	if results[0].Provenance != ops.ProvenanceAdvisor {
		t.Fatalf("first store should have completed via advisor")
	}
	if client.calls != 1 {
		t.Fatalf("no advisor calls may be issued after cancellation, got %d", client.calls)
	}
	for _, res := range results[1:] {
		if res.Provenance != ops.ProvenanceFallback {
			t.Fatalf("remaining stores must get fallback plans")
		}
	}
}
