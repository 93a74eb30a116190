package tools

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"storeops-mcp/internal/cache"
	"storeops-mcp/internal/config"
	serr "storeops-mcp/internal/errors"
	"storeops-mcp/internal/ops/identity"
	"storeops-mcp/internal/ops/pipeline"
	"storeops-mcp/internal/safety"
	"storeops-mcp/internal/store"
	"storeops-mcp/internal/version"
)

type Dependencies struct {
	Logger       *zap.Logger
	Config       config.Config
	Guardrails   *safety.Guardrails
	Cache        *cache.Cache
	Store        *store.Store // nil when persistence is disabled
	Pipeline     *pipeline.Pipeline
	Resolver     *identity.Resolver
	AdvisorNames []string
}

func Register(server *mcp.Server, deps Dependencies) {
	mcp.AddTool(server, &mcp.Tool{Name: "ping", Description: "ping the server"}, func(ctx context.Context, req *mcp.CallToolRequest, input PingInput) (*mcp.CallToolResult, PingOutput, error) {
		return Ping(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "server_info", Description: "returns server metadata and configured capabilities"}, func(ctx context.Context, req *mcp.CallToolRequest, input ServerInfoInput) (*mcp.CallToolResult, ServerInfoOutput, error) {
		return ServerInfo(ctx, deps)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "analyze_stores", Description: "correlate store datasets, rank worst performers, and generate action plans"}, func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeStoresInput) (*mcp.CallToolResult, AnalyzeStoresOutput, error) {
		return AnalyzeStores(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "resolve_store", Description: "resolve a store name against candidate names using fuzzy matching"}, func(ctx context.Context, req *mcp.CallToolRequest, input ResolveStoreInput) (*mcp.CallToolResult, ResolveStoreOutput, error) {
		return ResolveStore(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "get_run", Description: "fetch a stored analysis run by id"}, func(ctx context.Context, req *mcp.CallToolRequest, input GetRunInput) (*mcp.CallToolResult, GetRunOutput, error) {
		return GetRun(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "list_runs", Description: "list stored analysis runs, newest first"}, func(ctx context.Context, req *mcp.CallToolRequest, input ListRunsInput) (*mcp.CallToolResult, ListRunsOutput, error) {
		return ListRuns(ctx, deps, input)
	})
}

// Ping tool

type PingInput struct {
	Message string `json:"message,omitempty" jsonschema:"optional message to echo"`
}

type PingOutput struct {
	Pong string `json:"pong"`
}

func Ping(ctx context.Context, deps Dependencies, input PingInput) (*mcp.CallToolResult, PingOutput, error) {
	msg := input.Message
	if msg == "" {
		msg = "pong"
	}
	return nil, PingOutput{Pong: msg}, nil
}

// ServerInfo tool

type ServerInfoInput struct{}

type ServerInfoOutput struct {
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	AdvisorBackends []string `json:"advisor_backends"`
	StoreEnabled    bool     `json:"store_enabled"`
	CachingEnabled  bool     `json:"caching_enabled"`
	DefaultTopN     int      `json:"default_top_n"`
}

func ServerInfo(ctx context.Context, deps Dependencies) (*mcp.CallToolResult, ServerInfoOutput, error) {
	names := deps.AdvisorNames
	if names == nil {
		names = []string{}
	}
	return nil, ServerInfoOutput{
		Name:            deps.Config.AppName,
		Version:         version.Version,
		AdvisorBackends: names,
		StoreEnabled:    deps.Store != nil,
		CachingEnabled:  deps.Config.EnableCaching,
		DefaultTopN:     deps.Config.TopN,
	}, nil
}

// Helper error creation
func callError(code serr.ErrorCode, msg, hint string) *mcp.CallToolResult {
	errObj := map[string]any{"code": code, "message": msg}
	if hint != "" {
		errObj["hint"] = hint
	}
	return &mcp.CallToolResult{
		IsError:           true,
		StructuredContent: errObj,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%s: %s", code, msg)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	me := serr.ToToolError(err)
	return callError(me.Code, me.Message, me.Hint)
}

func newRunID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return "run-" + hex.EncodeToString(b)
}
