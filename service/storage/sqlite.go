package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thirukguru/docdb-multiscan/model"
	_ "modernc.org/sqlite"
)

const defaultDBPath = "~/.docdb-multiscan/history.db"

// timestampLayout matches CURRENT_TIMESTAMP so DATETIME('now', ...) comparisons hold.
const timestampLayout = "2006-01-02 15:04:05"

// ErrRunNotFound is returned when a run UUID is not in the store.
var ErrRunNotFound = errors.New("run not found")

// NewService creates a SQLite-backed storage service.
func NewService(dbPath string) (Service, error) {
	resolved, err := resolvePath(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaV1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &service{db: db, dbPath: resolved}, nil
}

type service struct {
	db     *sql.DB
	dbPath string
}

// DefaultPath is the history database location used when --db-path is empty.
func DefaultPath() string {
	p, err := resolvePath("")
	if err != nil {
		return defaultDBPath
	}
	return p
}

func resolvePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		p = defaultDBPath
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timestampLayout)
}

func (s *service) SaveRun(ctx context.Context, input SaveRunInput) (int64, error) {
	sum := input.Summary
	if sum.Params.Region == "" {
		return 0, errors.New("region is required")
	}
	if sum.RunID == "" {
		sum.RunID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (
			run_uuid, region, log_file_name, start_date, end_date, started_at, finished_at,
			total_count, succeeded_count, failed_count, skipped_count, cli_version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sum.RunID, sum.Params.Region, sum.Params.OutputLabel, sum.Params.StartDate, sum.Params.EndDate,
		formatTime(sum.StartedAt), formatTime(sum.FinishedAt),
		sum.Total, len(sum.Successes), len(sum.Failures), len(sum.Skipped), input.Version)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err = s.saveOutcomesTx(ctx, tx, runID, sum.Outcomes); err != nil {
		return 0, err
	}

	err = tx.Commit()
	if err != nil {
		return 0, err
	}
	return runID, nil
}

func (s *service) saveOutcomesTx(ctx context.Context, tx *sql.Tx, runID int64, outcomes []model.ScanOutcome) error {
	for i, o := range outcomes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO outcomes (
				run_id, position, profile, status, account_id, output_file, exit_code, reason, duration_ms
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, i, o.Account, string(o.Status), o.AccountID, o.OutputFile, o.ExitCode, o.Reason,
			o.Duration.Milliseconds())
		if err != nil {
			return err
		}
	}
	return nil
}

const runColumns = `
	run_id, run_uuid, region, log_file_name, start_date, end_date, started_at, finished_at,
	total_count, succeeded_count, failed_count, skipped_count, cli_version
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var r RunRecord
	var version sql.NullString
	err := row.Scan(&r.ID, &r.RunUUID, &r.Region, &r.Label, &r.StartDate, &r.EndDate,
		&r.StartedAt, &r.FinishedAt, &r.Total, &r.Succeeded, &r.Failed, &r.Skipped, &version)
	r.Version = version.String
	return r, err
}

func (s *service) GetRecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs ORDER BY started_at DESC, run_id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []RunRecord{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *service) GetRun(ctx context.Context, runUUID string) (*RunRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE run_uuid=?", runUUID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runUUID)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *service) ListOutcomes(ctx context.Context, runUUID string) ([]OutcomeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.position, o.profile, o.status, o.account_id, o.output_file, o.exit_code, o.reason, o.duration_ms
		FROM outcomes o
		JOIN runs r ON r.run_id = o.run_id
		WHERE r.run_uuid=?
		ORDER BY o.position ASC
	`, runUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []OutcomeRecord{}
	for rows.Next() {
		var o OutcomeRecord
		var status string
		var ms int64
		if err := rows.Scan(&o.Position, &o.Profile, &status, &o.AccountID, &o.OutputFile, &o.ExitCode, &o.Reason, &ms); err != nil {
			return nil, err
		}
		o.Status = model.OutcomeStatus(status)
		o.Duration = time.Duration(ms) * time.Millisecond
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *service) GetProfileHistory(ctx context.Context, profile string, limit int) ([]ProfileEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.run_uuid, r.started_at, r.region, o.status, o.reason
		FROM outcomes o
		JOIN runs r ON r.run_id = o.run_id
		WHERE o.profile=?
		ORDER BY r.started_at DESC, r.run_id DESC
		LIMIT ?
	`, profile, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ProfileEvent{}
	for rows.Next() {
		var e ProfileEvent
		var status string
		if err := rows.Scan(&e.RunUUID, &e.StartedAt, &e.Region, &status, &e.Reason); err != nil {
			return nil, err
		}
		e.Status = model.OutcomeStatus(status)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *service) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

func (s *service) Reindex(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "REINDEX")
	return err
}

func (s *service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, errors.New("days must be > 0")
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM runs WHERE started_at < DATETIME('now', ?)
	`, fmt.Sprintf("-%d day", days))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *service) Close() error {
	return s.db.Close()
}
