// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Store name normalization for identity comparison.

package identity

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a raw store name for comparison: lower-case,
// letters and digits only. Prefixes like "Z." or "SG.", punctuation and
// whitespace all collapse away. Any input yields a (possibly empty)
// result; there are no error conditions.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokens splits a raw name on every non-alphanumeric rune and
// lower-cases the pieces, so "Z.Edapally" yields ["z", "edapally"].
func Tokens(raw string) []string {
	return strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
