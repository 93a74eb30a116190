// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// get_run and list_runs tool handlers.

package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	serr "storeops-mcp/internal/errors"
	"storeops-mcp/internal/ops/report"
	"storeops-mcp/internal/store"
)

type GetRunInput struct {
	RunID string `json:"run_id" jsonschema:"required"`
}

type GetRunOutput struct {
	Report report.Response `json:"report"`
}

func GetRun(ctx context.Context, deps Dependencies, input GetRunInput) (*mcp.CallToolResult, GetRunOutput, error) {
	if deps.Store == nil {
		return callError(serr.CodeStoreUnavailable, "run persistence is not configured", "set database_dsn to enable stored runs"), GetRunOutput{}, nil
	}
	if input.RunID == "" {
		return callError(serr.CodeInvalidInput, "run_id required", "provide a run id from list_runs"), GetRunOutput{}, nil
	}
	resp, err := deps.Store.GetRun(ctx, input.RunID)
	if err != nil {
		return toolError(err), GetRunOutput{}, nil
	}
	return nil, GetRunOutput{Report: resp}, nil
}

type ListRunsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"max runs to return, default 20"`
}

type ListRunsOutput struct {
	Runs []store.RunSummary `json:"runs"`
}

func ListRuns(ctx context.Context, deps Dependencies, input ListRunsInput) (*mcp.CallToolResult, ListRunsOutput, error) {
	if deps.Store == nil {
		return callError(serr.CodeStoreUnavailable, "run persistence is not configured", "set database_dsn to enable stored runs"), ListRunsOutput{}, nil
	}
	runs, err := deps.Store.ListRuns(ctx, input.Limit)
	if err != nil {
		return toolError(err), ListRunsOutput{}, nil
	}
	if runs == nil {
		runs = []store.RunSummary{}
	}
	return nil, ListRunsOutput{Runs: runs}, nil
}
