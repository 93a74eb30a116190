// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Postgres-backed persistence for analysis runs.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storeops-mcp/internal/config"
	serr "storeops-mcp/internal/errors"
	"storeops-mcp/internal/logging"
	"storeops-mcp/internal/ops/report"
	storesql "storeops-mcp/internal/store/sql"
)

// RunSummary is the listing shape for stored runs.
type RunSummary struct {
	RunID         string    `json:"runId"`
	CreatedAt     time.Time `json:"createdAt"`
	CriticalCount int       `json:"criticalCount"`
	TotalLoss     float64   `json:"totalLoss"`
}

// Store persists analysis reports as JSONB rows keyed by run id.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// New connects to the configured database and ensures the schema exists.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Store, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, serr.NewStoreUnavailable(err)
	}
	s := &Store{pool: pool, logger: logging.WithComponent(logger, "store")}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, serr.NewStoreUnavailable(err)
	}
	s.logger.Info("run store ready", logging.FieldDSN("dsn", cfg.DatabaseDSN))
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, storesql.SchemaAnalysisRuns); err != nil {
		return fmt.Errorf("create analysis_runs: %w", err)
	}
	return nil
}

func (s *Store) SaveRun(ctx context.Context, resp report.Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = s.pool.Exec(ctx, storesql.InsertRun,
		resp.RunID, resp.Summary.CriticalCount, resp.Summary.TotalLoss, payload)
	if err != nil {
		return serr.NewStoreUnavailable(err)
	}
	s.logger.Debug("run saved", zap.String("run_id", resp.RunID))
	return nil
}

func (s *Store) GetRun(ctx context.Context, runID string) (report.Response, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, storesql.SelectRun, runID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return report.Response{}, serr.NewRunNotFound(runID)
	}
	if err != nil {
		return report.Response{}, serr.NewStoreUnavailable(err)
	}
	var resp report.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return report.Response{}, fmt.Errorf("unmarshal stored report %s: %w", runID, err)
	}
	return resp, nil
}

func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, storesql.SelectRuns, limit)
	if err != nil {
		return nil, serr.NewStoreUnavailable(err)
	}
	defer rows.Close()

	out := make([]RunSummary, 0, limit)
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.CriticalCount, &r.TotalLoss); err != nil {
			return nil, fmt.Errorf("scan run summary: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.NewStoreUnavailable(err)
	}
	return out, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
