package model

import (
	"fmt"
	"time"
)

// DateLayout is the YYYYMMDD format accepted by the scan job.
const DateLayout = "20060102"

// ScanParameters are shared by every account in a run.
type ScanParameters struct {
	Region      string `json:"region"`
	OutputLabel string `json:"log_file_name"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// Validate checks required fields and the date range. Errors wrap ErrConfiguration.
func (p ScanParameters) Validate() error {
	if p.Region == "" {
		return fmt.Errorf("%w: --region is required", ErrConfiguration)
	}
	if p.OutputLabel == "" {
		return fmt.Errorf("%w: --log-file-name is required", ErrConfiguration)
	}
	if p.StartDate != "" && p.EndDate == "" {
		return fmt.Errorf("%w: must provide --end-date when providing --start-date", ErrConfiguration)
	}
	if p.StartDate == "" && p.EndDate != "" {
		return fmt.Errorf("%w: must provide --start-date when providing --end-date", ErrConfiguration)
	}
	if !p.HasDateRange() {
		return nil
	}
	start, err := time.Parse(DateLayout, p.StartDate)
	if err != nil {
		return fmt.Errorf("%w: --start-date %q is not YYYYMMDD", ErrConfiguration, p.StartDate)
	}
	end, err := time.Parse(DateLayout, p.EndDate)
	if err != nil {
		return fmt.Errorf("%w: --end-date %q is not YYYYMMDD", ErrConfiguration, p.EndDate)
	}
	if start.After(end) {
		return fmt.Errorf("%w: --start-date %s is after --end-date %s", ErrConfiguration, p.StartDate, p.EndDate)
	}
	return nil
}

// HasDateRange reports whether both ends of the date range are set.
func (p ScanParameters) HasDateRange() bool {
	return p.StartDate != "" && p.EndDate != ""
}

// LogFileNameFor is the label handed to the scan job for one account.
func (p ScanParameters) LogFileNameFor(account string) string {
	return p.OutputLabel + "_" + account
}

// OutputFileFor is the CSV the scan job writes for one account.
func (p ScanParameters) OutputFileFor(account string) string {
	return p.LogFileNameFor(account) + ".csv"
}

// OutcomeStatus classifies a ScanOutcome.
type OutcomeStatus string

const (
	StatusSucceeded OutcomeStatus = "SUCCEEDED"
	StatusFailed    OutcomeStatus = "FAILED"
	StatusSkipped   OutcomeStatus = "SKIPPED"
)

// ScanOutcome is the result of scanning one account. It is built once and
// not modified afterwards.
type ScanOutcome struct {
	Account    string        `json:"profile"`
	Status     OutcomeStatus `json:"status"`
	OutputFile string        `json:"output_file"`
	AccountID  string        `json:"account_id,omitempty"`
	ExitCode   int           `json:"exit_code"`
	Reason     string        `json:"reason,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
	Stdout     string        `json:"-"`
	Stderr     string        `json:"-"`
}

// Succeeded reports whether the scan job completed with exit status 0.
func (o ScanOutcome) Succeeded() bool {
	return o.Status == StatusSucceeded
}

// RunSummary is derived from the ordered outcomes of one run.
type RunSummary struct {
	RunID      string         `json:"run_id"`
	Params     ScanParameters `json:"parameters"`
	Total      int            `json:"total"`
	Outcomes   []ScanOutcome  `json:"outcomes"`
	Successes  []ScanOutcome  `json:"successes"`
	Failures   []ScanOutcome  `json:"failures"`
	Skipped    []ScanOutcome  `json:"skipped,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// Summarize partitions outcomes by status, keeping processing order.
func Summarize(outcomes []ScanOutcome) RunSummary {
	sum := RunSummary{
		Total:     len(outcomes),
		Outcomes:  append([]ScanOutcome(nil), outcomes...),
		Successes: []ScanOutcome{},
		Failures:  []ScanOutcome{},
	}
	for _, o := range outcomes {
		switch o.Status {
		case StatusSucceeded:
			sum.Successes = append(sum.Successes, o)
		case StatusSkipped:
			sum.Skipped = append(sum.Skipped, o)
		default:
			sum.Failures = append(sum.Failures, o)
		}
	}
	return sum
}

// HasFailures reports whether any account failed.
func (s RunSummary) HasFailures() bool {
	return len(s.Failures) > 0
}

// DryRunEntry is one line of the dry-run preview.
type DryRunEntry struct {
	Account      string `json:"profile"`
	OutputFile   string `json:"output_file"`
	AccountID    string `json:"account_id,omitempty"`
	ClusterCount *int   `json:"docdb_clusters,omitempty"`
	Note         string `json:"note,omitempty"`
}

// DryRunPreview lists what a run would do without invoking the scan job.
type DryRunPreview struct {
	Params  ScanParameters `json:"parameters"`
	Entries []DryRunEntry  `json:"profiles"`
}

// RunConfiguration is what the reporter prints before processing starts.
type RunConfiguration struct {
	Params         ScanParameters `json:"parameters"`
	Accounts       []string       `json:"profiles"`
	ProfileSource  string         `json:"profile_source"`
	Scanner        string         `json:"scanner"`
	CredentialMode string         `json:"credential_mode"`
	MaxParallel    int            `json:"max_parallel"`
}
