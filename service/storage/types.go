package storage

import (
	"context"
	"time"

	"github.com/thirukguru/docdb-multiscan/model"
)

// Service defines run history persistence and queries.
type Service interface {
	SaveRun(ctx context.Context, input SaveRunInput) (int64, error)
	GetRecentRuns(ctx context.Context, limit int) ([]RunRecord, error)
	GetRun(ctx context.Context, runUUID string) (*RunRecord, error)
	ListOutcomes(ctx context.Context, runUUID string) ([]OutcomeRecord, error)
	GetProfileHistory(ctx context.Context, profile string, limit int) ([]ProfileEvent, error)
	Vacuum(ctx context.Context) error
	Reindex(ctx context.Context) error
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	Close() error
}

// SaveRunInput is the payload saved for a completed run.
type SaveRunInput struct {
	Summary model.RunSummary
	Version string
}

// RunRecord provides compact run metadata.
type RunRecord struct {
	ID         int64     `json:"id"`
	RunUUID    string    `json:"run_id"`
	Region     string    `json:"region"`
	Label      string    `json:"log_file_name"`
	StartDate  string    `json:"start_date,omitempty"`
	EndDate    string    `json:"end_date,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
	Version    string    `json:"version"`
}

// OutcomeRecord is one profile's stored result within a run.
type OutcomeRecord struct {
	Position   int                 `json:"position"`
	Profile    string              `json:"profile"`
	Status     model.OutcomeStatus `json:"status"`
	AccountID  string              `json:"account_id,omitempty"`
	OutputFile string              `json:"output_file"`
	ExitCode   int                 `json:"exit_code"`
	Reason     string              `json:"reason,omitempty"`
	Duration   time.Duration       `json:"duration_ns"`
}

// ProfileEvent is a profile's status in one past run.
type ProfileEvent struct {
	RunUUID   string              `json:"run_id"`
	StartedAt time.Time           `json:"started_at"`
	Region    string              `json:"region"`
	Status    model.OutcomeStatus `json:"status"`
	Reason    string              `json:"reason,omitempty"`
}
