// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Unit tests for the TTL cache and cache key derivation.

package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New()
	c.Set("k", "v", time.Second)
	v, ok := c.Get("k")
	if !ok || v.(string) != "v" {
		t.Fatalf("expected v, got %v", v)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New()
	c.Set("k", "v", time.Nanosecond)
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected expired entry to be absent")
	}
}

func TestKeyDeterministic(t *testing.T) {
	a := Key(map[string]int{"x": 1, "y": 2}, 4)
	b := Key(map[string]int{"y": 2, "x": 1}, 4)
	if a != b {
		t.Fatalf("expected identical keys for identical inputs")
	}
	if a == Key(map[string]int{"x": 1, "y": 2}, 5) {
		t.Fatalf("expected different keys for different top-n")
	}
}
