// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Custom error types and error codes for MCP responses.

package errors

import (
	"fmt"
	"strings"
)

type ErrorCode string

const (
	CodeInvalidInput       ErrorCode = "INVALID_INPUT"
	CodeTimeout            ErrorCode = "TIMEOUT"
	CodeAdvisorRateLimited ErrorCode = "ADVISOR_RATE_LIMITED"
	CodeAdvisorUnavailable ErrorCode = "ADVISOR_UNAVAILABLE"
	CodeMalformedPlan      ErrorCode = "MALFORMED_PLAN"
	CodeStoreUnavailable   ErrorCode = "STORE_UNAVAILABLE"
	CodeRunNotFound        ErrorCode = "RUN_NOT_FOUND"
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

type StoreOpsError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *StoreOpsError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func New(code ErrorCode, msg, hint string, details map[string]any) *StoreOpsError {
	return &StoreOpsError{Code: code, Message: msg, Hint: hint, Details: sanitize(details)}
}

func NewInvalidInput(msg, hint string, details map[string]any) *StoreOpsError {
	return New(CodeInvalidInput, msg, hint, details)
}

func NewTimeout(msg string) *StoreOpsError {
	return New(CodeTimeout, msg, "retry or increase timeout", nil)
}

func NewAdvisorRateLimited(backend string) *StoreOpsError {
	return New(CodeAdvisorRateLimited, "advisor rate limited", "wait and retry, or configure a secondary backend", map[string]any{"backend": backend})
}

func NewAdvisorUnavailable(err error) *StoreOpsError {
	details := map[string]any{}
	if err != nil {
		details["cause"] = scrub(err.Error())
	}
	return New(CodeAdvisorUnavailable, "all advisor backends failed", "plans fall back to rule-based templates", details)
}

func NewMalformedPlan(backend string) *StoreOpsError {
	return New(CodeMalformedPlan, "advisor returned an unparseable plan", "rule-based fallback plan was used", map[string]any{"backend": backend})
}

func NewStoreUnavailable(err error) *StoreOpsError {
	details := map[string]any{}
	if err != nil {
		details["cause"] = scrub(err.Error())
	}
	return New(CodeStoreUnavailable, "run store unavailable", "check database_dsn and connectivity", details)
}

func NewRunNotFound(runID string) *StoreOpsError {
	return New(CodeRunNotFound, "run not found", "list runs to see stored run ids", map[string]any{"run_id": runID})
}

func NewInternal(err error) *StoreOpsError {
	if err == nil {
		return New(CodeInternalError, "internal error", "see logs", nil)
	}
	return New(CodeInternalError, "internal error", "see logs", map[string]any{"cause": scrub(err.Error())})
}

// ToToolError converts any error to a StoreOpsError;
// unknown errors are wrapped as internal error with scrubbed message.
func ToToolError(err error) *StoreOpsError {
	if err == nil {
		return nil
	}
	if me, ok := err.(*StoreOpsError); ok {
		return me
	}
	return NewInternal(err)
}

func sanitize(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	out := make(map[string]any, len(details))
	for k, v := range details {
		out[k] = scrub(fmt.Sprint(v))
	}
	return out
}

// scrub best-effort masks secrets/DSNs by replacing common patterns.
func scrub(s string) string {
	// lightweight scrub: do not leak raw DSNs or API keys
	replacements := []struct{ find, repl string }{
		{"postgres://", "postgres://***:***@"},
		{"postgresql://", "postgresql://***:***@"},
		{"password=", "password=***"},
		{"pwd=", "pwd=***"},
		{"sk-", "sk-***"},
		{"Bearer ", "Bearer ***"},
	}
	out := s
	for _, r := range replacements {
		out = strings.ReplaceAll(out, r.find, r.repl)
	}
	return out
}
