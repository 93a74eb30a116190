// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Pluggable advisory backends and their error taxonomy.

package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Backend turns a text prompt into free-form advisory text expected to
// contain one JSON object. Implementations must return an error wrapping
// ErrRateLimited when the upstream provider throttles, so the caller can
// fail over instead of retrying in place.
type Backend interface {
	Name() string
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ErrRateLimited marks an upstream throttle condition.
var ErrRateLimited = errors.New("advisor rate limited")

// ErrNoBackends is returned by a chain with nothing configured.
var ErrNoBackends = errors.New("no advisor backends configured")

// IsRateLimited reports whether err carries a rate-limit condition.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// retryableError wraps transient transport and server errors.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// IsRetryable reports whether err is worth retrying on the same backend.
// Rate limits are not retryable in place; they trigger failover.
func IsRetryable(err error) bool {
	if err == nil || IsRateLimited(err) {
		return false
	}
	var re *retryableError
	return errors.As(err, &re)
}

func retryable(format string, args ...any) error {
	return &retryableError{err: fmt.Errorf(format, args...)}
}

// Per-backend request pacing: conservative defaults shared by all
// providers.
const (
	defaultRatePerSecond = 50.0 / 60.0
	defaultBurst         = 5
	defaultHTTPTimeout   = 60 * time.Second
)
