// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// analyze_stores and resolve_store tool handlers.

package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"storeops-mcp/internal/cache"
	serr "storeops-mcp/internal/errors"
	"storeops-mcp/internal/ops"
	"storeops-mcp/internal/ops/identity"
	"storeops-mcp/internal/ops/pipeline"
	"storeops-mcp/internal/ops/report"
)

type AnalyzeStoresInput struct {
	DSRRecords          []ops.StorePerformanceRecord          `json:"dsr_records" jsonschema:"daily sales report records, one per store"`
	CancellationRecords map[string]ops.CancellationRecord     `json:"cancellation_records,omitempty" jsonschema:"cancellation summaries keyed by store name"`
	StaffRecords        map[string]ops.StaffPerformanceRecord `json:"staff_records,omitempty" jsonschema:"staff performance records keyed by store name"`
	TopN                int                                   `json:"top_n,omitempty" jsonschema:"how many worst stores get advisor plans; 0 uses the configured default"`
	Persist             bool                                  `json:"persist,omitempty" jsonschema:"store the report when run persistence is configured"`
}

type AnalyzeStoresOutput struct {
	Report    report.Response `json:"report"`
	Cached    bool            `json:"cached"`
	Persisted bool            `json:"persisted"`
}

func AnalyzeStores(ctx context.Context, deps Dependencies, input AnalyzeStoresInput) (*mcp.CallToolResult, AnalyzeStoresOutput, error) {
	if err := deps.Guardrails.CheckRunSize(len(input.DSRRecords), len(input.CancellationRecords), len(input.StaffRecords)); err != nil {
		return toolError(err), AnalyzeStoresOutput{}, nil
	}
	topN, err := deps.Guardrails.ResolveTopN(input.TopN)
	if err != nil {
		return toolError(err), AnalyzeStoresOutput{}, nil
	}
	for _, rec := range input.DSRRecords {
		if err := deps.Guardrails.CheckStoreName(rec.StoreName); err != nil {
			return toolError(err), AnalyzeStoresOutput{}, nil
		}
	}

	key := cache.Key(input.DSRRecords, input.CancellationRecords, input.StaffRecords, topN)
	if deps.Config.EnableCaching && deps.Cache != nil {
		if v, ok := deps.Cache.Get(key); ok {
			if resp, ok := v.(report.Response); ok {
				deps.Logger.Debug("analyze_stores cache hit", zap.String("run_id", resp.RunID))
				return nil, AnalyzeStoresOutput{Report: resp, Cached: true}, nil
			}
		}
	}

	in := pipeline.Inputs{
		DSR:           input.DSRRecords,
		Cancellations: input.CancellationRecords,
		Staff:         input.StaffRecords,
	}
	resp := deps.Pipeline.Run(ctx, in, topN)
	resp.RunID = newRunID()

	out := AnalyzeStoresOutput{Report: resp}
	if input.Persist && deps.Store != nil {
		if err := deps.Store.SaveRun(ctx, resp); err != nil {
			deps.Logger.Warn("run persistence failed", zap.String("run_id", resp.RunID), zap.Error(err))
		} else {
			out.Persisted = true
		}
	}
	if deps.Config.EnableCaching && deps.Cache != nil {
		deps.Cache.Set(key, resp, time.Duration(deps.Config.CacheTTLSeconds)*time.Second)
	}
	return nil, out, nil
}

type ResolveStoreInput struct {
	Name       string   `json:"name" jsonschema:"required,store name to resolve"`
	Candidates []string `json:"candidates" jsonschema:"required,candidate store names to match against"`
}

type StoreMatch struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
}

type ResolveStoreOutput struct {
	Resolved string       `json:"resolved,omitempty"`
	Matches  []StoreMatch `json:"matches"`
}

func ResolveStore(ctx context.Context, deps Dependencies, input ResolveStoreInput) (*mcp.CallToolResult, ResolveStoreOutput, error) {
	if err := deps.Guardrails.CheckStoreName(input.Name); err != nil {
		return toolError(err), ResolveStoreOutput{}, nil
	}
	if len(input.Candidates) == 0 {
		return callError(serr.CodeInvalidInput, "candidates required", "provide at least one candidate store name"), ResolveStoreOutput{}, nil
	}

	matches := []StoreMatch{}
	candidateSet := make(map[string]struct{}, len(input.Candidates))
	for _, c := range input.Candidates {
		candidateSet[c] = struct{}{}
		if tier, ok := deps.Resolver.MatchTier(input.Name, c); ok {
			matches = append(matches, StoreMatch{Name: c, Tier: tier})
		}
	}
	out := ResolveStoreOutput{Matches: matches}
	if resolved, ok := identity.ResolveAgainstMap(deps.Resolver, input.Name, candidateSet); ok {
		out.Resolved = resolved
	}
	return nil, out, nil
}
