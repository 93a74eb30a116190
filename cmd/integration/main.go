package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"storeops-mcp/internal/cache"
	"storeops-mcp/internal/config"
	"storeops-mcp/internal/mcpserver/tools"
	"storeops-mcp/internal/ops"
	"storeops-mcp/internal/ops/correlate"
	"storeops-mcp/internal/ops/identity"
	"storeops-mcp/internal/ops/pipeline"
	"storeops-mcp/internal/ops/plan"
	"storeops-mcp/internal/ops/severity"
	"storeops-mcp/internal/safety"
)

// Exercises the tool surface end to end with canned retail data and no
// advisor configured, so every plan comes from the rule-based fallback.
func main() {
	ctx := context.Background()

	cfg := config.Config{
		AppName:          "storeops-mcp-integration",
		TopN:             4,
		MaxTopN:          20,
		MaxStoresPerRun:  500,
		ConversionTarget: 80,
		ABSTarget:        1.8,
		ABVTarget:        4500,
		ConversionWeight: 0.70,
		ABSWeight:        0.15,
		ABVWeight:        0.15,
		RecoveryRate:     0.6,
		EnableCaching:    true,
		CacheTTLSeconds:  60,
		LogLevel:         "info",
	}

	logger, _ := zap.NewDevelopment()
	resolver := identity.NewResolver()
	engine := correlate.New(resolver, severity.TierThresholds{Critical: 40, Poor: 55, Average: 70}, logger)
	selector := correlate.NewSelector(severity.NewScorer(severity.Thresholds{
		ConversionTarget: cfg.ConversionTarget,
		ABSTarget:        cfg.ABSTarget,
		ABVTarget:        cfg.ABVTarget,
		ConversionWeight: cfg.ConversionWeight,
		ABSWeight:        cfg.ABSWeight,
		ABVWeight:        cfg.ABVWeight,
	}))
	dispatcher := plan.NewDispatcher(nil, 0, cfg.AdvisorMaxTokens, logger)
	pipe := pipeline.New(engine, selector, dispatcher, cfg.TopN, cfg.RecoveryRate, logger)

	deps := tools.Dependencies{
		Logger:       logger,
		Config:       cfg,
		Guardrails:   safety.NewGuardrails(cfg),
		Cache:        cache.New(),
		Pipeline:     pipe,
		Resolver:     resolver,
		AdvisorNames: []string{},
	}

	run("ping", func() (*mcp.CallToolResult, any, error) {
		return tools.Ping(ctx, deps, tools.PingInput{Message: "hello"})
	})
	run("server_info", func() (*mcp.CallToolResult, any, error) { return tools.ServerInfo(ctx, deps) })

	run("resolve_store", func() (*mcp.CallToolResult, any, error) {
		return tools.ResolveStore(ctx, deps, tools.ResolveStoreInput{
			Name:       "Z.Edapally",
			Candidates: []string{"SG.Edappally", "SG.Trissur", "Trivandrum"},
		})
	})

	conv := func(v float64) *float64 { return &v }
	run("analyze_stores", func() (*mcp.CallToolResult, any, error) {
		return tools.AnalyzeStores(ctx, deps, tools.AnalyzeStoresInput{
			DSRRecords: []ops.StorePerformanceRecord{
				{StoreName: "Trissur", ConversionRate: conv(45), AvgBillSize: conv(1.2), AvgBillValue: conv(3000), RevenueLoss: 120000, RootCauses: []string{"size not available"}},
				{StoreName: "Edapally", ConversionRate: conv(52), RevenueLoss: 80000, RootCauses: []string{"delivery delay"}},
				{StoreName: "Kottayam", ConversionRate: conv(85)},
			},
			CancellationRecords: map[string]ops.CancellationRecord{
				"SG.Trissur":  {StoreName: "SG.Trissur", TotalCancellations: 6, TopReasons: []ops.CancellationReason{{Reason: "size issue", Count: 4, Percentage: 66.7}}},
				"SG.Palakkad": {StoreName: "SG.Palakkad", TotalCancellations: 0},
			},
			StaffRecords: map[string]ops.StaffPerformanceRecord{
				"Trissur": {StoreName: "Trissur", ConversionRate: 38},
			},
		})
	})

	run("get_run (no store configured)", func() (*mcp.CallToolResult, any, error) {
		return tools.GetRun(ctx, deps, tools.GetRunInput{RunID: "run-missing"})
	})

	fmt.Println("Done at", time.Now().Format(time.RFC3339))
}

// run executes a tool function and prints result; returns raw output for chaining (best-effort type assert)
func run(name string, fn func() (*mcp.CallToolResult, any, error)) any {
	fmt.Printf("\n=== %s ===\n", name)
	res, out, err := fn()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return nil
	}
	if res != nil && res.IsError {
		fmt.Printf("tool error: %s\n", toJSON(res.StructuredContent))
		return nil
	}
	fmt.Println(toJSON(out))
	return out
}

func toJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("<json error: %v>", err)
	}
	return string(b)
}
