// Package scanner runs the external per-account deployment scan job.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/thirukguru/docdb-multiscan/model"
)

// NewService creates a scan invoker.
func NewService(env EnvironmentProvider, opts Options) (Service, error) {
	if len(opts.Command) == 0 || strings.TrimSpace(opts.Command[0]) == "" {
		return nil, fmt.Errorf("%w: scanner command is empty", model.ErrConfiguration)
	}
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("%w: --timeout must not be negative", model.ErrConfiguration)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		env:     env,
		command: append([]string(nil), opts.Command...),
		workDir: opts.WorkDir,
		timeout: opts.Timeout,
		logger:  logger,
	}, nil
}

// ParseCommand splits a scanner command line on whitespace.
func ParseCommand(raw string) []string {
	return strings.Fields(raw)
}

// BuildArgs returns the scan job arguments for one profile.
func BuildArgs(profile string, params model.ScanParameters) []string {
	args := []string{
		"--region", params.Region,
		"--log-file-name", params.LogFileNameFor(profile),
	}
	if params.HasDateRange() {
		args = append(args, "--start-date", params.StartDate, "--end-date", params.EndDate)
	}
	return args
}

func (s *service) Invoke(ctx context.Context, profile string, params model.ScanParameters) (model.ScanOutcome, error) {
	return s.Prepare(ctx, profile, params).Run(ctx)
}

func (s *service) Prepare(ctx context.Context, profile string, params model.ScanParameters) Job {
	j := &job{
		svc:     s,
		profile: profile,
		params:  params,
		logger:  s.logger.With("profile", profile),
	}
	start := time.Now()
	env, err := s.env.Environment(ctx, params.Region, profile)
	if err != nil {
		j.credErr = err
		j.credTime = time.Since(start)
		j.logger.Warn("credential setup failed", "error", err)
		return j
	}
	j.env = env
	return j
}

// job is one profile's scan job with its environment already resolved.
type job struct {
	svc      *service
	profile  string
	params   model.ScanParameters
	env      []string
	credErr  error
	credTime time.Duration
	logger   *slog.Logger
}

func (j *job) Run(ctx context.Context) (model.ScanOutcome, error) {
	s, profile, params, logger := j.svc, j.profile, j.params, j.logger
	outcome := model.ScanOutcome{
		Account:    profile,
		Status:     model.StatusFailed,
		OutputFile: params.OutputFileFor(profile),
		ExitCode:   -1,
	}
	if j.credErr != nil {
		outcome.Reason = fmt.Sprintf("credential setup failed: %v", j.credErr)
		outcome.Duration = j.credTime
		return outcome, nil
	}

	start := time.Now()
	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	argv := append(append([]string(nil), s.command[1:]...), BuildArgs(profile, params)...)
	cmd := exec.CommandContext(runCtx, s.command[0], argv...)
	cmd.Dir = s.workDir
	cmd.Env = j.env
	cmd.WaitDelay = 5 * time.Second
	stdout := newTailBuffer(outputTailBytes)
	stderr := newTailBuffer(outputTailBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logger.Info("starting scan job", "command", s.command[0], "log_file_name", params.LogFileNameFor(profile))
	if err := cmd.Start(); err != nil {
		outcome.Reason = fmt.Sprintf("could not start %s: %v", s.command[0], err)
		outcome.Duration = time.Since(start)
		logger.Error("scan job could not be started", "error", err)
		return outcome, fmt.Errorf("%w: %s: %w", model.ErrInvocation, s.command[0], err)
	}
	waitErr := cmd.Wait()

	outcome.Duration = time.Since(start)
	outcome.Stdout = stdout.String()
	outcome.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		outcome.Status = model.StatusSucceeded
		outcome.ExitCode = 0
	case ctx.Err() != nil:
		outcome.Reason = "cancelled: " + ctx.Err().Error()
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		outcome.Reason = fmt.Sprintf("timed out after %s", s.timeout)
	case errors.As(waitErr, &exitErr):
		outcome.ExitCode = exitErr.ExitCode()
		outcome.Reason = fmt.Sprintf("exit status %d", outcome.ExitCode)
		if line := lastLine(outcome.Stderr); line != "" {
			outcome.Reason += ": " + line
		}
	default:
		outcome.Reason = waitErr.Error()
	}

	if outcome.Succeeded() {
		logger.Info("scan job finished", "duration", outcome.Duration.Round(time.Millisecond), "output_file", outcome.OutputFile)
	} else {
		logger.Warn("scan job failed", "duration", outcome.Duration.Round(time.Millisecond), "reason", outcome.Reason)
	}
	logger.Debug("scan job output", "stdout", outcome.Stdout, "stderr", outcome.Stderr)
	return outcome, nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
