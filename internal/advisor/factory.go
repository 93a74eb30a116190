// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Backend construction from configuration.

package advisor

import "fmt"

// Spec describes one configured backend, in priority order.
type Spec struct {
	Kind    string // anthropic|openai
	APIKey  string
	Model   string
	BaseURL string
}

// FromSpecs builds backends in the given priority order.
func FromSpecs(specs []Spec) ([]Backend, error) {
	out := make([]Backend, 0, len(specs))
	for _, s := range specs {
		var (
			b   Backend
			err error
		)
		switch s.Kind {
		case "anthropic":
			b, err = NewAnthropic(s.APIKey, s.Model, s.BaseURL)
		case "openai":
			b, err = NewOpenAI(s.APIKey, s.Model, s.BaseURL)
		default:
			return nil, fmt.Errorf("unknown advisor backend kind %q", s.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("backend %s: %w", s.Kind, err)
		}
		out = append(out, b)
	}
	return out, nil
}
