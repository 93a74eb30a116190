package storesql

const (
	SchemaAnalysisRuns = `CREATE TABLE IF NOT EXISTS analysis_runs (
    run_id         TEXT PRIMARY KEY,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    critical_count INT NOT NULL,
    total_loss     DOUBLE PRECISION NOT NULL,
    report         JSONB NOT NULL
)`

	InsertRun = `INSERT INTO analysis_runs (run_id, critical_count, total_loss, report)
VALUES ($1, $2, $3, $4)
ON CONFLICT (run_id) DO UPDATE SET
    critical_count = EXCLUDED.critical_count,
    total_loss     = EXCLUDED.total_loss,
    report         = EXCLUDED.report`

	SelectRun = `SELECT report FROM analysis_runs WHERE run_id = $1`

	SelectRuns = `SELECT run_id, created_at, critical_count, total_loss
FROM analysis_runs ORDER BY created_at DESC LIMIT $1`
)
