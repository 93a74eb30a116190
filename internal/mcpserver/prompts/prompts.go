package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"storeops-mcp/internal/mcpserver/tools"
)

// RegisterAll registers all prompts with the MCP server.
func RegisterAll(server *mcp.Server, deps tools.Dependencies) {
	server.AddPrompt(&mcp.Prompt{Name: "/storeops.triage_workflow", Title: "Store triage workflow", Description: "Step-by-step worst-store triage guidance"}, promptTriageWorkflow(deps))
	server.AddPrompt(&mcp.Prompt{Name: "/storeops.store_deep_dive", Title: "Store deep dive", Description: "Investigate one store across all three datasets"}, promptStoreDeepDive(deps))
}

func promptTriageWorkflow(deps tools.Dependencies) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var b strings.Builder
		b.WriteString("### 🏪 Store Triage Workflow\n")
		b.WriteString("1) Run the full analysis\n")
		b.WriteString("```json\n{\n  \"dsr_records\": [...],\n  \"cancellation_records\": {...},\n  \"staff_records\": {...},\n  \"persist\": true\n}\n```\nRun: `analyze_stores`\n\n")
		b.WriteString("2) Review the critical list first: stores with both sales decline and cancellations.\n")
		b.WriteString(fmt.Sprintf("   The worst %d stores carry generated action plans.\n\n", deps.Config.TopN))
		b.WriteString("3) Check plan provenance: `advisor` plans came from a model; `fallback` plans are rule-based templates.\n\n")
		b.WriteString("4) Revisit a stored run later with `get_run`, or browse history with `list_runs`.\n")
		messages := []*mcp.PromptMessage{
			{Role: mcp.Role("system"), Content: &mcp.TextContent{Text: "You are a concise retail operations assistant. Provide checklists and actionable next steps."}},
			{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: b.String()}},
		}
		return &mcp.GetPromptResult{Description: "Store triage workflow", Messages: messages}, nil
	}
}

func promptStoreDeepDive(deps tools.Dependencies) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		storeName := ""
		if req != nil && req.Params != nil && req.Params.Arguments != nil {
			storeName = strings.TrimSpace(req.Params.Arguments["store"])
		}

		if storeName == "" {
			msg := "### 🔍 Store Deep Dive\n- Provide `store` argument.\n- Example: get_prompt /storeops.store_deep_dive arguments:{\"store\":\"Z.Edapally\"}\n"
			messages := []*mcp.PromptMessage{
				{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: msg}},
			}
			return &mcp.GetPromptResult{Description: "Provide store argument", Messages: messages}, nil
		}

		var b strings.Builder
		b.WriteString("### 🔍 Store Deep Dive\n")
		b.WriteString(fmt.Sprintf("**Target store**: %s\n\n", storeName))
		b.WriteString("1) Confirm the identity across datasets\n")
		b.WriteString(fmt.Sprintf("Run: `resolve_store` with `{\"name\":\"%s\",\"candidates\":[...]}` against each dataset's store names.\n", storeName))
		b.WriteString("Dataset naming drifts (prefixes, spelling variants); `matches` shows which tier the resolution used.\n\n")
		b.WriteString("2) Run `analyze_stores` with the store's records and inspect:\n")
		b.WriteString("- badness score and category (critical vs single-dataset)\n")
		b.WriteString("- the attached action plan and its provenance\n\n")
		b.WriteString("3) If the store keeps appearing in runs, compare stored reports via `list_runs` and `get_run`.\n")

		messages := []*mcp.PromptMessage{
			{Role: mcp.Role("system"), Content: &mcp.TextContent{Text: "You are a concise retail operations assistant. Suggest next tools to run."}},
			{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: b.String()}},
		}
		return &mcp.GetPromptResult{Description: "Store deep dive", Messages: messages}, nil
	}
}
