package postgres

import (
	"context"
	"fmt"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: REPORT RUNS + SUBMISSION RECORDS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create report archive tables
-- Version: 001

CREATE TABLE IF NOT EXISTS report_runs (
    id UUID PRIMARY KEY,
    repo_owner VARCHAR(100) NOT NULL,
    repo_name VARCHAR(100) NOT NULL,
    branch VARCHAR(100) NOT NULL,
    fetched_at TIMESTAMP WITH TIME ZONE NOT NULL,
    student_count INTEGER NOT NULL DEFAULT 0,
    assignment_count INTEGER NOT NULL DEFAULT 0,
    event_count INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_counts CHECK (
        student_count >= 0 AND assignment_count >= 0 AND event_count >= 0
    )
);

CREATE INDEX IF NOT EXISTS idx_report_runs_repo
    ON report_runs(repo_owner, repo_name, created_at DESC);

CREATE TABLE IF NOT EXISTS submission_records (
    id SERIAL PRIMARY KEY,
    run_id UUID NOT NULL REFERENCES report_runs(id) ON DELETE CASCADE,
    student VARCHAR(200) NOT NULL,
    assignment VARCHAR(100) NOT NULL,
    issue_id INTEGER,
    issue_status VARCHAR(20) NOT NULL,
    title TEXT NOT NULL,
    submitted_at VARCHAR(40) NOT NULL,
    delta_seconds BIGINT,
    format_label VARCHAR(120) NOT NULL,
    is_latest BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_submission_records_run
    ON submission_records(run_id);
CREATE INDEX IF NOT EXISTS idx_submission_records_pair
    ON submission_records(run_id, student, assignment);
`

// migrations lists every migration in execution order.
var migrations = []struct {
	version int
	name    string
	up      string
}{
	{1, "create report archive tables", migration001Up},
}

// Migrate applies pending migrations. Applied versions are tracked in the
// schema_migrations table; re-running is a no-op.
func Migrate(ctx context.Context, conn *Connection) error {
	const ensureTable = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`
	if _, err := conn.Exec(ctx, ensureTable); err != nil {
		return fmt.Errorf("postgres: ensure schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var applied bool
		err := conn.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`,
			m.version,
		).Scan(&applied)
		if err != nil {
			return fmt.Errorf("postgres: check migration %d: %w", m.version, err)
		}
		if applied {
			continue
		}

		if _, err := conn.Exec(ctx, m.up); err != nil {
			return fmt.Errorf("postgres: apply migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := conn.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			m.version, m.name,
		); err != nil {
			return fmt.Errorf("postgres: record migration %d: %w", m.version, err)
		}
	}

	return nil
}
