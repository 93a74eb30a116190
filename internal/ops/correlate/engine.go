// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Correlation of DSR, cancellation and staff records into per-store profiles.

package correlate

import (
	"sort"

	"storeops-mcp/internal/ops"
	"storeops-mcp/internal/ops/identity"
	"storeops-mcp/internal/ops/severity"

	"go.uber.org/zap"
)

// Engine joins the three per-source record sets into one profile per
// resolved store identity and partitions the profiles by category.
type Engine struct {
	resolver *identity.Resolver
	tiers    severity.TierThresholds
	logger   *zap.Logger
}

func New(resolver *identity.Resolver, tiers severity.TierThresholds, logger *zap.Logger) *Engine {
	if resolver == nil {
		resolver = identity.NewResolver()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{resolver: resolver, tiers: tiers, logger: logger}
}

// Result partitions correlated profiles. A store appears in exactly one
// category.
type Result struct {
	Critical         []ops.CorrelatedStoreProfile `json:"critical"`
	DSROnly          []ops.CorrelatedStoreProfile `json:"dsr_only"`
	CancellationOnly []ops.CorrelatedStoreProfile `json:"cancellation_only"`
}

// All returns pointers to every profile in the result, critical first.
// The pointers alias the result slices so plan attachment is visible in
// the final report.
func (r *Result) All() []*ops.CorrelatedStoreProfile {
	out := make([]*ops.CorrelatedStoreProfile, 0, len(r.Critical)+len(r.DSROnly)+len(r.CancellationOnly))
	for i := range r.Critical {
		out = append(out, &r.Critical[i])
	}
	for i := range r.DSROnly {
		out = append(out, &r.DSROnly[i])
	}
	for i := range r.CancellationOnly {
		out = append(out, &r.CancellationOnly[i])
	}
	return out
}

// Correlate resolves a cancellation and a staff match for every DSR
// problem record, then sweeps the cancellation map for stores unclaimed
// by a critical profile. Cancellation records with zero cancellations
// never classify a store.
func (e *Engine) Correlate(
	dsr []ops.StorePerformanceRecord,
	cancellations map[string]ops.CancellationRecord,
	staff map[string]ops.StaffPerformanceRecord,
) Result {
	var res Result
	claimed := make(map[string]bool, len(cancellations))

	for i := range dsr {
		rec := dsr[i]
		p := ops.CorrelatedStoreProfile{StoreName: rec.StoreName, DSR: &rec}

		if key, ok := identity.ResolveAgainstMap(e.resolver, rec.StoreName, cancellations); ok {
			c := cancellations[key]
			if c.TotalCancellations > 0 {
				p.Cancellation = &c
				p.Category = ops.CategoryCritical
				claimed[key] = true
			}
		}
		p.Staff = e.resolveStaff(rec.StoreName, staff)
		if p.Category == "" {
			p.Category = ops.CategoryDSROnly
		}

		e.logger.Info("correlated store",
			zap.String("store", rec.StoreName),
			zap.String("category", string(p.Category)),
			zap.Bool("staff_matched", p.Staff != nil),
		)
		if p.Category == ops.CategoryCritical {
			res.Critical = append(res.Critical, p)
		} else {
			res.DSROnly = append(res.DSROnly, p)
		}
	}

	// Sweep the cancellation map in sorted order for a stable output.
	keys := make([]string, 0, len(cancellations))
	for k := range cancellations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if claimed[key] {
			continue
		}
		c := cancellations[key]
		if c.TotalCancellations <= 0 {
			continue
		}
		p := ops.CorrelatedStoreProfile{
			StoreName:    key,
			Category:     ops.CategoryCancellationOnly,
			Cancellation: &c,
			Staff:        e.resolveStaff(key, staff),
		}
		res.CancellationOnly = append(res.CancellationOnly, p)
	}

	e.logger.Info("correlation complete",
		zap.Int("critical", len(res.Critical)),
		zap.Int("dsr_only", len(res.DSROnly)),
		zap.Int("cancellation_only", len(res.CancellationOnly)),
	)
	return res
}

func (e *Engine) resolveStaff(name string, staff map[string]ops.StaffPerformanceRecord) *ops.StaffPerformanceRecord {
	key, ok := identity.ResolveAgainstMap(e.resolver, name, staff)
	if !ok {
		return nil
	}
	s := staff[key]
	if s.Tier == "" {
		s.Tier = severity.TierFor(s.ConversionRate, e.tiers)
	}
	return &s
}
