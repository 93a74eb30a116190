// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Integration tests for the MCP server with a live Postgres run store.

//go:build integration

package integration

import "testing"

func TestIntegrationPlaceholder(t *testing.T) {
	t.Skip("integration tests require docker compose up")
}
