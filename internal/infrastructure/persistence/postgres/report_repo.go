package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wis-hub/course-report/internal/domain/course"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPORT ARCHIVE REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// Run identifies one archived pipeline run.
type Run struct {
	ID              string
	RepoOwner       string
	RepoName        string
	Branch          string
	FetchedAt       time.Time
	StudentCount    int
	AssignmentCount int
	EventCount      int
	CreatedAt       time.Time
}

// ArchivedRecord is one flattened submission event as stored in the
// archive. Every retained event is stored; IsLatest marks the record of
// record for its (student, assignment) pair.
type ArchivedRecord struct {
	Student      string
	Assignment   string
	IssueID      *int
	IssueStatus  string
	Title        string
	SubmittedAt  string
	DeltaSeconds *int64
	FormatLabel  string
	IsLatest     bool
}

// ReportRepository persists report runs.
type ReportRepository struct {
	conn *Connection
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(conn *Connection) *ReportRepository {
	return &ReportRepository{conn: conn}
}

// NewRun builds a Run with a fresh identifier.
func NewRun(owner, repo, branch string, fetchedAt time.Time) Run {
	return Run{
		ID:        uuid.New().String(),
		RepoOwner: owner,
		RepoName:  repo,
		Branch:    branch,
		FetchedAt: fetchedAt,
	}
}

// FlattenSubmissions converts a SubmissionSet into archive records,
// duplicates included, with the latest event of each pair flagged.
func FlattenSubmissions(set course.SubmissionSet) []ArchivedRecord {
	var out []ArchivedRecord
	for student, per := range set {
		for assignment, rec := range per {
			for _, te := range rec.History {
				ar := ArchivedRecord{
					Student:     student,
					Assignment:  assignment,
					IssueID:     te.IssueID,
					IssueStatus: string(te.Status),
					Title:       te.Title,
					SubmittedAt: te.CreatedAt,
					FormatLabel: string(te.Format),
					IsLatest:    te == rec.Latest,
				}
				if te.Delta != nil {
					seconds := te.Delta.Seconds
					ar.DeltaSeconds = &seconds
				}
				out = append(out, ar)
			}
		}
	}
	return out
}

// SaveRun stores a run and its records in one transaction.
func (r *ReportRepository) SaveRun(ctx context.Context, run Run, records []ArchivedRecord) error {
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save run: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO report_runs (
			id, repo_owner, repo_name, branch, fetched_at,
			student_count, assignment_count, event_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		run.ID,
		run.RepoOwner,
		run.RepoName,
		run.Branch,
		run.FetchedAt,
		run.StudentCount,
		run.AssignmentCount,
		run.EventCount,
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}

	for _, rec := range records {
		_, err = tx.Exec(ctx, `
			INSERT INTO submission_records (
				run_id, student, assignment, issue_id, issue_status,
				title, submitted_at, delta_seconds, format_label, is_latest
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			run.ID,
			rec.Student,
			rec.Assignment,
			rec.IssueID,
			rec.IssueStatus,
			rec.Title,
			rec.SubmittedAt,
			rec.DeltaSeconds,
			rec.FormatLabel,
			rec.IsLatest,
		)
		if err != nil {
			return fmt.Errorf("save run %s: insert record: %w", run.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("save run %s: commit: %w", run.ID, err)
	}
	return nil
}

// LatestRun returns the most recent archived run for a repository.
func (r *ReportRepository) LatestRun(ctx context.Context, owner, repo string) (*Run, error) {
	row := r.conn.QueryRow(ctx, `
		SELECT id, repo_owner, repo_name, branch, fetched_at,
		       student_count, assignment_count, event_count, created_at
		FROM report_runs
		WHERE repo_owner = $1 AND repo_name = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, owner, repo)

	var run Run
	err := row.Scan(
		&run.ID,
		&run.RepoOwner,
		&run.RepoName,
		&run.Branch,
		&run.FetchedAt,
		&run.StudentCount,
		&run.AssignmentCount,
		&run.EventCount,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("latest run %s/%s: %w", owner, repo, err)
	}
	return &run, nil
}

// RunRecords returns the archived records of a run, latest-first within
// each (student, assignment) pair.
func (r *ReportRepository) RunRecords(ctx context.Context, runID string) ([]ArchivedRecord, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT student, assignment, issue_id, issue_status, title,
		       submitted_at, delta_seconds, format_label, is_latest
		FROM submission_records
		WHERE run_id = $1
		ORDER BY student, assignment, is_latest DESC, submitted_at DESC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("run records %s: %w", runID, err)
	}
	defer rows.Close()

	var records []ArchivedRecord
	for rows.Next() {
		var rec ArchivedRecord
		err := rows.Scan(
			&rec.Student,
			&rec.Assignment,
			&rec.IssueID,
			&rec.IssueStatus,
			&rec.Title,
			&rec.SubmittedAt,
			&rec.DeltaSeconds,
			&rec.FormatLabel,
			&rec.IsLatest,
		)
		if err != nil {
			return nil, fmt.Errorf("run records %s: scan: %w", runID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("run records %s: %w", runID, err)
	}
	return records, nil
}
