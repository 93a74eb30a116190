// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Prioritized backend chain with explicit retry and failover policy.

package advisor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Policy bounds retry behavior per backend. Which condition does what:
// transient errors retry in place up to MaxAttempts with doubling
// backoff; a rate limit fails over to the next backend immediately; any
// other error aborts the chain and surfaces to the caller.
type Policy struct {
	MaxAttempts int
	BaseBackoff time.Duration
	CallTimeout time.Duration
}

// DefaultPolicy returns the production retry bounds.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseBackoff: time.Second, CallTimeout: 45 * time.Second}
}

// Chain tries each configured backend in priority order under Policy.
// It carries no cross-call state: the backend that served a request is
// returned with the result.
type Chain struct {
	backends []Backend
	policy   Policy
	logger   *zap.Logger
}

func NewChain(policy Policy, logger *zap.Logger, backends ...Backend) *Chain {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{backends: backends, policy: policy, logger: logger}
}

// Len reports the number of configured backends.
func (c *Chain) Len() int { return len(c.backends) }

// Names lists the configured backends in priority order.
func (c *Chain) Names() []string {
	out := make([]string, len(c.backends))
	for i, b := range c.backends {
		out[i] = b.Name()
	}
	return out
}

// Complete runs the prompt against the chain and returns the text plus
// the name of the backend that produced it.
func (c *Chain) Complete(ctx context.Context, prompt string, maxTokens int) (string, string, error) {
	if len(c.backends) == 0 {
		return "", "", ErrNoBackends
	}
	var lastErr error
	for _, b := range c.backends {
		text, err := c.completeOne(ctx, b, prompt, maxTokens)
		if err == nil {
			return text, b.Name(), nil
		}
		lastErr = err
		if IsRateLimited(err) {
			c.logger.Warn("advisor backend rate limited, failing over",
				zap.String("backend", b.Name()))
			continue
		}
		if ctx.Err() != nil {
			return "", b.Name(), ctx.Err()
		}
		if !IsRetryable(err) {
			// auth and other hard failures: no point trying siblings
			// with the same request shape
			return "", b.Name(), err
		}
		c.logger.Warn("advisor backend exhausted retries, failing over",
			zap.String("backend", b.Name()), zap.Error(err))
	}
	return "", "", fmt.Errorf("all advisor backends failed: %w", lastErr)
}

func (c *Chain) completeOne(ctx context.Context, b Backend, prompt string, maxTokens int) (string, error) {
	var lastErr error
	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := c.policy.BaseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		callCtx := ctx
		cancel := func() {}
		if c.policy.CallTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, c.policy.CallTimeout)
		}
		text, err := b.Complete(callCtx, prompt, maxTokens)
		cancel()
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return "", err
		}
	}
	return "", lastErr
}
