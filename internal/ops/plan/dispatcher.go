// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Per-store plan dispatch: advisor call, parse, fallback.

package plan

import (
	"context"
	"time"

	"storeops-mcp/internal/ops"

	"go.uber.org/zap"
)

// AdvisorClient is the advisory surface the dispatcher depends on. It is
// satisfied by advisor.Chain. The second return value names the backend
// that served the call.
type AdvisorClient interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, string, error)
}

// Dispatcher produces exactly one ActionPlan per selected store. Stores
// are processed strictly sequentially: the advisor is a shared,
// rate-limited resource. A nil client means no advisor is configured and
// every store gets a fallback plan.
type Dispatcher struct {
	client    AdvisorClient
	logger    *zap.Logger
	delay     time.Duration
	maxTokens int
}

func NewDispatcher(client AdvisorClient, delay time.Duration, maxTokens int, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &Dispatcher{client: client, logger: logger, delay: delay, maxTokens: maxTokens}
}

// Result is the outcome of one store's dispatch. Which backend answered
// is a per-result fact, not ambient state.
type Result struct {
	Plan       ops.ActionPlan
	Provenance ops.Provenance
	Backend    string
}

// Dispatch runs the per-store state machine: build request, call
// advisor, parse response; any unrecoverable failure degrades to the
// rule-based fallback. It never returns without a plan.
func (d *Dispatcher) Dispatch(ctx context.Context, p *ops.CorrelatedStoreProfile) Result {
	if d.client == nil {
		return d.fallback(p, "no advisor configured")
	}

	prompt := BuildRequest(p).Prompt()
	text, backend, err := d.client.Complete(ctx, prompt, d.maxTokens)
	if err != nil {
		d.logger.Warn("advisor call failed, using fallback plan",
			zap.String("store", p.StoreName), zap.Error(err))
		return d.fallback(p, err.Error())
	}

	plan, err := ParsePlan(text)
	if err != nil {
		d.logger.Warn("advisor response unparseable after repair, using fallback plan",
			zap.String("store", p.StoreName),
			zap.String("backend", backend),
			zap.Error(err))
		return d.fallback(p, err.Error())
	}

	plan.Provenance = ops.ProvenanceAdvisor
	plan.BackendUsed = backend
	return Result{Plan: plan, Provenance: ops.ProvenanceAdvisor, Backend: backend}
}

func (d *Dispatcher) fallback(p *ops.CorrelatedStoreProfile, reason string) Result {
	d.logger.Info("building rule-based plan",
		zap.String("store", p.StoreName), zap.String("reason", reason))
	plan := BuildFallback(p)
	return Result{Plan: plan, Provenance: ops.ProvenanceFallback}
}

// DispatchAll plans every selected store in order and attaches the plan
// to each profile. An inter-call delay separates advisor calls but is
// not applied after the last store. If ctx is cancelled mid-batch, no
// further advisor calls are issued; the remaining stores still receive
// fallback plans so the batch always completes.
func (d *Dispatcher) DispatchAll(ctx context.Context, selected []*ops.CorrelatedStoreProfile) []Result {
	results := make([]Result, 0, len(selected))
	for i, p := range selected {
		var res Result
		if ctx.Err() != nil {
			res = d.fallback(p, "batch cancelled")
		} else {
			res = d.Dispatch(ctx, p)
		}
		plan := res.Plan
		p.Plan = &plan
		results = append(results, res)

		last := i == len(selected)-1
		if !last && d.client != nil && d.delay > 0 && ctx.Err() == nil {
			select {
			case <-time.After(d.delay):
			case <-ctx.Done():
			}
		}
	}
	return results
}
