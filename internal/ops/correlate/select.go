// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Badness ranking and bounded top-N selection.

package correlate

import (
	"sort"

	"storeops-mcp/internal/ops"
	"storeops-mcp/internal/ops/severity"
)

// Selector ranks correlated profiles by badness score and truncates to a
// configured cap. The cap bounds the cost of downstream advisory calls;
// it is configuration, not a business rule.
type Selector struct {
	scorer *severity.Scorer
}

func NewSelector(scorer *severity.Scorer) *Selector {
	return &Selector{scorer: scorer}
}

// ScoreAll computes and attaches the badness score to every profile.
func (s *Selector) ScoreAll(profiles []*ops.CorrelatedStoreProfile) {
	for _, p := range profiles {
		p.BadnessScore = s.scorer.Score(p)
	}
}

// SelectTopN returns at most n profiles ordered by badness score
// descending. Scores are computed first. The sort is stable so ties keep
// their original relative order and repeated calls on the same input are
// reproducible. The input slice is not reordered.
func (s *Selector) SelectTopN(profiles []*ops.CorrelatedStoreProfile, n int) []*ops.CorrelatedStoreProfile {
	s.ScoreAll(profiles)
	ranked := make([]*ops.CorrelatedStoreProfile, len(profiles))
	copy(ranked, profiles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].BadnessScore > ranked[j].BadnessScore
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
