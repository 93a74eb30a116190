// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Unit tests for the backend failover chain.

package advisor

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeBackend struct {
	name  string
	calls int
	fn    func(call int) (string, error)
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	f.calls++
	return f.fn(f.calls)
}

func fastPolicy() Policy {
	return Policy{MaxAttempts: 2, BaseBackoff: time.Millisecond, CallTimeout: time.Second}
}

func TestChainNoBackends(t *testing.T) {
	c := NewChain(fastPolicy(), nil)
	if _, _, err := c.Complete(context.Background(), "p", 100); !errors.Is(err, ErrNoBackends) {
		t.Fatalf("expected ErrNoBackends, got %v", err)
	}
}

func TestChainRateLimitFailsOver(t *testing.T) {
	primary := &fakeBackend{name: "primary", fn: func(int) (string, error) { return "", rateLimitedErr() }}
	secondary := &fakeBackend{name: "secondary", fn: func(int) (string, error) { return "{}", nil }}
	c := NewChain(fastPolicy(), nil, primary, secondary)

	text, backend, err := c.Complete(context.Background(), "p", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "{}" || backend != "secondary" {
		t.Fatalf("expected secondary to serve, got backend=%s text=%q", backend, text)
	}
	if primary.calls != 1 {
		t.Fatalf("rate limit must not retry in place, got %d calls", primary.calls)
	}
}

func rateLimitedErr() error {
	return &wrapErr{ErrRateLimited}
}

type wrapErr struct{ inner error }

func (w *wrapErr) Error() string { return "upstream 429: " + w.inner.Error() }
func (w *wrapErr) Unwrap() error { return w.inner }

func TestChainRetriesTransientThenFailsOver(t *testing.T) {
	primary := &fakeBackend{name: "primary", fn: func(int) (string, error) {
		return "", retryable("connection reset")
	}}
	secondary := &fakeBackend{name: "secondary", fn: func(int) (string, error) { return "ok", nil }}
	c := NewChain(fastPolicy(), nil, primary, secondary)

	text, backend, err := c.Complete(context.Background(), "p", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend != "secondary" || text != "ok" {
		t.Fatalf("expected failover to secondary, got %s %q", backend, text)
	}
	if primary.calls != 2 {
		t.Fatalf("expected MaxAttempts=2 calls on primary, got %d", primary.calls)
	}
}

func TestChainNonRetryableSurfacesImmediately(t *testing.T) {
	primary := &fakeBackend{name: "primary", fn: func(int) (string, error) {
		return "", errors.New("401 unauthorized")
	}}
	secondary := &fakeBackend{name: "secondary", fn: func(int) (string, error) { return "ok", nil }}
	c := NewChain(fastPolicy(), nil, primary, secondary)

	_, backend, err := c.Complete(context.Background(), "p", 100)
	if err == nil {
		t.Fatalf("expected error")
	}
	if backend != "primary" {
		t.Fatalf("expected failure attributed to primary, got %s", backend)
	}
	if primary.calls != 1 || secondary.calls != 0 {
		t.Fatalf("auth failure must not retry or fail over, calls: %d/%d", primary.calls, secondary.calls)
	}
}

func TestChainAllRateLimited(t *testing.T) {
	a := &fakeBackend{name: "a", fn: func(int) (string, error) { return "", rateLimitedErr() }}
	b := &fakeBackend{name: "b", fn: func(int) (string, error) { return "", rateLimitedErr() }}
	c := NewChain(fastPolicy(), nil, a, b)

	_, _, err := c.Complete(context.Background(), "p", 100)
	if err == nil || !IsRateLimited(err) {
		t.Fatalf("expected wrapped rate-limit error, got %v", err)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("expected one call each, got %d/%d", a.calls, b.calls)
	}
}

func TestRetryableClassification(t *testing.T) {
	if IsRetryable(rateLimitedErr()) {
		t.Fatalf("rate limit must not be retryable in place")
	}
	if !IsRetryable(retryable("boom")) {
		t.Fatalf("expected retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Fatalf("plain errors are not retryable")
	}
}
