// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Fuzzy store identity matching: matcher chain and map resolution.

package identity

import (
	"sort"
	"strings"
)

// Matcher decides whether two raw store names denote the same physical
// store. Implementations must be deterministic and side-effect free.
type Matcher interface {
	Name() string
	Match(a, b string) bool
}

// ExactMatcher matches when the normalized forms are equal.
type ExactMatcher struct{}

func (ExactMatcher) Name() string { return "exact" }

func (ExactMatcher) Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	return na != "" && na == nb
}

// ContainmentMatcher matches when one normalized form contains the
// other. Handles source prefixes, e.g. "Edapally" vs "SGEdapally".
type ContainmentMatcher struct{}

func (ContainmentMatcher) Name() string { return "containment" }

func (ContainmentMatcher) Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// KeywordMatcher matches when any significant token of one name is a
// substring or superstring of a significant token of the other, after
// collapsing repeated letters. Tokens of length <= MinTokenLen and
// generic brand words are dropped first.
type KeywordMatcher struct {
	StopWords   map[string]struct{}
	MinTokenLen int
}

// NewKeywordMatcher returns a keyword matcher with the default brand
// stop list.
func NewKeywordMatcher() *KeywordMatcher {
	return &KeywordMatcher{
		StopWords: map[string]struct{}{
			"store":  {},
			"stores": {},
			"suitor": {},
			"guy":    {},
		},
		MinTokenLen: 3,
	}
}

func (m *KeywordMatcher) Name() string { return "keyword" }

func (m *KeywordMatcher) keywords(raw string) []string {
	toks := Tokens(raw)
	out := toks[:0]
	for _, t := range toks {
		if len(t) <= m.MinTokenLen {
			continue
		}
		if _, stop := m.StopWords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (m *KeywordMatcher) Match(a, b string) bool {
	ka, kb := m.keywords(a), m.keywords(b)
	for _, ta := range ka {
		for _, tb := range kb {
			ca, cb := collapseRepeats(ta), collapseRepeats(tb)
			if strings.Contains(ca, cb) || strings.Contains(cb, ca) {
				return true
			}
		}
	}
	return false
}

// collapseRepeats squashes runs of a repeated rune so the doubled-letter
// spelling drift between datasets ("Edapally" vs "Edappally") compares
// equal.
func collapseRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune = -1
	for _, r := range s {
		if r == prev {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// Resolver applies a fixed priority chain of matchers. The chain is
// intentionally permissive: downstream classification treats an
// unmatched store as "no problem on this source", so a missed
// correlation costs more than an over-eager one.
type Resolver struct {
	chain []Matcher
}

// NewResolver builds a resolver from the given matchers, or the default
// exact > containment > keyword chain when none are given.
func NewResolver(matchers ...Matcher) *Resolver {
	if len(matchers) == 0 {
		matchers = []Matcher{ExactMatcher{}, ContainmentMatcher{}, NewKeywordMatcher()}
	}
	return &Resolver{chain: matchers}
}

// Matches reports whether the two names denote the same store,
// short-circuiting on the first matching tier.
func (r *Resolver) Matches(a, b string) bool {
	_, ok := r.MatchTier(a, b)
	return ok
}

// MatchTier reports the name of the first matcher in the chain that
// accepts the pair.
func (r *Resolver) MatchTier(a, b string) (string, bool) {
	for _, m := range r.chain {
		if m.Match(a, b) {
			return m.Name(), true
		}
	}
	return "", false
}

// ResolveAgainstMap finds the key of records denoting the same store as
// name. An exact key lookup runs first; after that each matcher tier is
// scanned over the keys in sorted order, so the strongest tier wins and
// ties within a tier resolve deterministically.
func ResolveAgainstMap[V any](r *Resolver, name string, records map[string]V) (string, bool) {
	if _, ok := records[name]; ok {
		return name, true
	}
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, m := range r.chain {
		for _, k := range keys {
			if m.Match(name, k) {
				return k, true
			}
		}
	}
	return "", false
}
