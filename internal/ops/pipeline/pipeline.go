// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// End-to-end analysis run: gather, correlate, select, plan, report.

package pipeline

import (
	"context"

	"storeops-mcp/internal/ops"
	"storeops-mcp/internal/ops/correlate"
	"storeops-mcp/internal/ops/plan"
	"storeops-mcp/internal/ops/report"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Inputs carries the three per-source record sets for one run.
type Inputs struct {
	DSR           []ops.StorePerformanceRecord          `json:"dsr_records"`
	Cancellations map[string]ops.CancellationRecord     `json:"cancellation_records"`
	Staff         map[string]ops.StaffPerformanceRecord `json:"staff_records"`
}

// Source providers are the consumed collaborator interfaces: transport
// and parsing live behind them, outside this engine.
type (
	DSRProvider interface {
		StorePerformance(ctx context.Context) ([]ops.StorePerformanceRecord, error)
	}
	CancellationProvider interface {
		Cancellations(ctx context.Context) (map[string]ops.CancellationRecord, error)
	}
	StaffProvider interface {
		StaffPerformance(ctx context.Context) (map[string]ops.StaffPerformanceRecord, error)
	}
)

// Gather fetches the three sources concurrently. Per-store processing
// stays sequential; only the independent source fetches fan out.
func Gather(ctx context.Context, d DSRProvider, c CancellationProvider, s StaffProvider) (Inputs, error) {
	var in Inputs
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	if d != nil {
		g.Go(func() error {
			recs, err := d.StorePerformance(gctx)
			in.DSR = recs
			return err
		})
	}
	if c != nil {
		g.Go(func() error {
			recs, err := c.Cancellations(gctx)
			in.Cancellations = recs
			return err
		})
	}
	if s != nil {
		g.Go(func() error {
			recs, err := s.StaffPerformance(gctx)
			in.Staff = recs
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Inputs{}, err
	}
	return in, nil
}

// Pipeline wires the engine stages for one run shape.
type Pipeline struct {
	engine       *correlate.Engine
	selector     *correlate.Selector
	dispatcher   *plan.Dispatcher
	logger       *zap.Logger
	topN         int
	recoveryRate float64
}

func New(engine *correlate.Engine, selector *correlate.Selector, dispatcher *plan.Dispatcher,
	topN int, recoveryRate float64, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		engine:       engine,
		selector:     selector,
		dispatcher:   dispatcher,
		logger:       logger,
		topN:         topN,
		recoveryRate: recoveryRate,
	}
}

// Run executes one full analysis. topN <= 0 uses the configured cap.
// Cancellation mid-run stops further advisor calls but the run still
// returns a complete report with fallback plans for the remainder.
func (p *Pipeline) Run(ctx context.Context, in Inputs, topN int) report.Response {
	if topN <= 0 {
		topN = p.topN
	}
	res := p.engine.Correlate(in.DSR, in.Cancellations, in.Staff)
	all := res.All()
	selected := p.selector.SelectTopN(all, topN)
	p.logger.Info("selected worst stores",
		zap.Int("selected", len(selected)),
		zap.Int("total", len(all)),
		zap.Int("top_n", topN),
	)
	p.dispatcher.DispatchAll(ctx, selected)
	return report.Build(res, p.recoveryRate)
}
