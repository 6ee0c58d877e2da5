// Package orchestrator runs the scan job across a list of AWS profiles and
// collects one outcome per profile.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/thirukguru/docdb-multiscan/model"
	"github.com/thirukguru/docdb-multiscan/service/precheck"
	"golang.org/x/sync/errgroup"
)

// NewService creates a new orchestrator service. pre may be nil.
func NewService(invoker Invoker, pre Prechecker, reporter Reporter, opts Options) Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &service{
		invoker:     invoker,
		precheck:    pre,
		reporter:    reporter,
		store:       opts.Store,
		config:      opts.Configuration,
		maxParallel: opts.MaxParallel,
		versionInfo: opts.VersionInfo,
		logger:      logger,
	}
}

func (s *service) Run(ctx context.Context, accounts []string, params model.ScanParameters, dryRun bool) (model.RunSummary, error) {
	if err := params.Validate(); err != nil {
		return model.RunSummary{}, err
	}
	if len(accounts) == 0 {
		return model.RunSummary{}, model.ErrNoAccountsFound
	}

	cfg := s.config
	cfg.Params = params
	cfg.Accounts = accounts
	if err := s.reporter.RenderConfiguration(cfg); err != nil {
		return model.RunSummary{}, err
	}

	if dryRun {
		return s.previewWorkflow(ctx, accounts, params)
	}
	return s.scanWorkflow(ctx, accounts, params)
}

func (s *service) prechecksEnabled() bool {
	return s.precheck != nil && s.precheck.Enabled()
}

func (s *service) previewWorkflow(ctx context.Context, accounts []string, params model.ScanParameters) (model.RunSummary, error) {
	summary := model.Summarize(nil)
	summary.Params = params

	preview := model.DryRunPreview{
		Params:  params,
		Entries: make([]model.DryRunEntry, 0, len(accounts)),
	}
	for _, acct := range accounts {
		entry := model.DryRunEntry{Account: acct, OutputFile: params.OutputFileFor(acct)}
		if s.prechecksEnabled() {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			res, err := s.precheck.Check(ctx, params.Region, acct)
			if err != nil {
				entry.Note = "pre-check failed: " + err.Error()
			} else {
				entry.AccountID = res.AccountID
				entry.ClusterCount = res.ClusterCount
				if res.Empty() {
					entry.Note = "no DocumentDB clusters, would be skipped"
				}
			}
		}
		preview.Entries = append(preview.Entries, entry)
	}

	if err := s.reporter.RenderDryRun(preview); err != nil {
		return summary, err
	}
	return summary, nil
}

func (s *service) scanWorkflow(ctx context.Context, accounts []string, params model.ScanParameters) (model.RunSummary, error) {
	startedAt := time.Now()
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)
	logger.Info("starting run", "profiles", len(accounts), "region", params.Region, "max_parallel", s.maxParallel)

	outcomes := make([]model.ScanOutcome, len(accounts))
	started := make([]bool, len(accounts))

	var runErr error
	if s.maxParallel > 1 {
		runErr = s.scanParallel(ctx, accounts, params, outcomes, started)
	} else {
		runErr = s.scanSequential(ctx, accounts, params, outcomes, started)
	}

	processed := make([]model.ScanOutcome, 0, len(accounts))
	for i := range accounts {
		if started[i] {
			processed = append(processed, outcomes[i])
		}
	}

	summary := model.Summarize(processed)
	summary.RunID = runID
	summary.Params = params
	summary.StartedAt = startedAt
	summary.FinishedAt = time.Now()

	if runErr != nil {
		logger.Warn("run interrupted", "processed", len(processed), "not_started", len(accounts)-len(processed), "error", runErr)
	}
	logger.Info("run finished",
		"total", summary.Total,
		"succeeded", len(summary.Successes),
		"failed", len(summary.Failures),
		"skipped", len(summary.Skipped),
		"duration", summary.FinishedAt.Sub(startedAt).Round(time.Millisecond),
	)

	s.persistRunIfEnabled(ctx, summary)

	if err := s.reporter.RenderSummary(summary); err != nil && runErr == nil {
		runErr = err
	}
	return summary, runErr
}

func (s *service) scanSequential(ctx context.Context, accounts []string, params model.ScanParameters, outcomes []model.ScanOutcome, started []bool) error {
	for i, acct := range accounts {
		if err := ctx.Err(); err != nil {
			return err
		}
		started[i] = true
		s.reporter.RenderProgress(i+1, len(accounts), acct)
		outcomes[i] = s.scanAccount(ctx, acct, params, true)
		s.reporter.RenderOutcome(outcomes[i])
	}
	return ctx.Err()
}

func (s *service) scanParallel(ctx context.Context, accounts []string, params model.ScanParameters, outcomes []model.ScanOutcome, started []bool) error {
	var g errgroup.Group
	g.SetLimit(s.maxParallel)

	for i, acct := range accounts {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			s.mu.Lock()
			started[i] = true
			s.reporter.RenderProgress(i+1, len(accounts), acct)
			s.mu.Unlock()

			outcome := s.scanAccount(ctx, acct, params, false)

			s.mu.Lock()
			outcomes[i] = outcome
			s.reporter.RenderOutcome(outcome)
			s.mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return ctx.Err()
}

// scanAccount never fails the batch: every problem ends up in the outcome.
func (s *service) scanAccount(ctx context.Context, acct string, params model.ScanParameters, spin bool) model.ScanOutcome {
	logger := s.logger.With("profile", acct)

	var pre precheck.Result
	if s.prechecksEnabled() {
		res, err := s.precheck.Check(ctx, params.Region, acct)
		if err != nil {
			logger.Error("pre-check failed", "error", err)
			return model.ScanOutcome{
				Account:    acct,
				Status:     model.StatusFailed,
				OutputFile: params.OutputFileFor(acct),
				ExitCode:   -1,
				Reason:     "pre-check failed: " + err.Error(),
			}
		}
		pre = res
		if res.Empty() {
			logger.Info("no DocumentDB clusters found, skipping", "region", params.Region)
			return model.ScanOutcome{
				Account:    acct,
				Status:     model.StatusSkipped,
				OutputFile: params.OutputFileFor(acct),
				AccountID:  res.AccountID,
				Reason:     fmt.Sprintf("no DocumentDB clusters in %s", params.Region),
			}
		}
	}

	job := s.invoker.Prepare(ctx, acct, params)
	if spin {
		s.reporter.StartSpinner(fmt.Sprintf("Scanning profile %s...", acct))
	}
	outcome, err := job.Run(ctx)
	if spin {
		s.reporter.StopSpinner()
	}

	if outcome.Account == "" {
		outcome.Account = acct
	}
	if outcome.OutputFile == "" {
		outcome.OutputFile = params.OutputFileFor(acct)
	}
	if outcome.AccountID == "" {
		outcome.AccountID = pre.AccountID
	}
	if err != nil {
		logger.Error("scan job could not be started", "error", err)
		outcome.Status = model.StatusFailed
		if outcome.Reason == "" {
			outcome.Reason = err.Error()
		}
	}
	if outcome.Status == "" {
		outcome.Status = model.StatusFailed
	}
	return outcome
}
