package safety

import (
	"strings"
	"unicode/utf8"

	"storeops-mcp/internal/config"
	serr "storeops-mcp/internal/errors"
)

const maxStoreNameBytes = 200

// Guardrails enforces input caps on analysis requests before any
// correlation or advisory work starts.
type Guardrails struct {
	maxStoresPerRun int
	maxTopN         int
	defaultTopN     int
}

func NewGuardrails(cfg config.Config) *Guardrails {
	return &Guardrails{
		maxStoresPerRun: cfg.MaxStoresPerRun,
		maxTopN:         cfg.MaxTopN,
		defaultTopN:     cfg.TopN,
	}
}

// CheckRunSize rejects inputs whose combined store count exceeds the cap.
func (g *Guardrails) CheckRunSize(dsrCount, cancellationCount, staffCount int) error {
	total := dsrCount + cancellationCount + staffCount
	if total == 0 {
		return serr.NewInvalidInput("no store records provided", "supply at least one performance, cancellation, or staff record", nil)
	}
	if dsrCount > g.maxStoresPerRun || cancellationCount > g.maxStoresPerRun || staffCount > g.maxStoresPerRun {
		return serr.NewInvalidInput("too many stores in one run", "split the input into smaller batches", map[string]any{
			"max_stores_per_run": g.maxStoresPerRun,
		})
	}
	return nil
}

// ResolveTopN applies the default when the caller passes 0 and caps the
// requested value.
func (g *Guardrails) ResolveTopN(requested int) (int, error) {
	if requested < 0 {
		return 0, serr.NewInvalidInput("top_n must be >= 0", "pass 0 to use the configured default", nil)
	}
	if requested == 0 {
		return g.defaultTopN, nil
	}
	if requested > g.maxTopN {
		return 0, serr.NewInvalidInput("top_n exceeds the configured maximum", "lower top_n or raise max_top_n", map[string]any{
			"max_top_n": g.maxTopN,
		})
	}
	return requested, nil
}

// CheckStoreName rejects empty or oversized store names.
func (g *Guardrails) CheckStoreName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return serr.NewInvalidInput("store name is empty", "every record needs a store name", nil)
	}
	if len(trimmed) > maxStoreNameBytes || !utf8.ValidString(trimmed) {
		return serr.NewInvalidInput("store name is invalid", "store names must be valid UTF-8 under 200 bytes", map[string]any{
			"store_name": trimmed[:min(len(trimmed), 40)],
		})
	}
	return nil
}
