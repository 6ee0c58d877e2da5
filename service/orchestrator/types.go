package orchestrator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/thirukguru/docdb-multiscan/model"
	"github.com/thirukguru/docdb-multiscan/service/precheck"
	"github.com/thirukguru/docdb-multiscan/service/scanner"
	"github.com/thirukguru/docdb-multiscan/service/storage"
)

// Invoker prepares the scan job for one profile. Credentials are resolved by
// Prepare, before any spinner starts, and the job is started by Run.
type Invoker interface {
	Prepare(ctx context.Context, profile string, params model.ScanParameters) scanner.Job
}

// Prechecker runs optional checks before a profile is scanned.
type Prechecker interface {
	Enabled() bool
	Check(ctx context.Context, region, profile string) (precheck.Result, error)
}

// Reporter receives progress and results as a run advances.
type Reporter interface {
	RenderConfiguration(cfg model.RunConfiguration) error
	RenderDryRun(preview model.DryRunPreview) error
	RenderProgress(index, total int, profile string)
	RenderOutcome(outcome model.ScanOutcome)
	RenderSummary(summary model.RunSummary) error
	StartSpinner(message string)
	StopSpinner()
}

// Store persists finished runs.
type Store interface {
	SaveRun(ctx context.Context, input storage.SaveRunInput) (int64, error)
}

// Options configures a run.
type Options struct {
	// Configuration carries the descriptive fields shown before processing.
	// Params and Accounts are filled in by Run.
	Configuration model.RunConfiguration
	// MaxParallel above 1 allows that many scan jobs at once.
	MaxParallel int
	// Store is optional; a nil Store disables history.
	Store       Store
	VersionInfo model.VersionInfo
	Logger      *slog.Logger
}

type service struct {
	invoker     Invoker
	precheck    Prechecker
	reporter    Reporter
	store       Store
	config      model.RunConfiguration
	maxParallel int
	versionInfo model.VersionInfo
	logger      *slog.Logger

	// mu serializes reporter calls when scan jobs run in parallel.
	mu sync.Mutex
}

// Service is the interface for orchestrator service.
type Service interface {
	// Run validates its inputs, then either previews the run (dryRun) or scans
	// every account in order. Per-account failures are recorded in the summary
	// and never returned as errors.
	Run(ctx context.Context, accounts []string, params model.ScanParameters, dryRun bool) (model.RunSummary, error)
}
