package scanner

import (
	"context"
	"log/slog"
	"time"

	"github.com/thirukguru/docdb-multiscan/model"
)

// DefaultCommand runs the deployment scanner script from the working directory.
const DefaultCommand = "python3 deployment-scanner.py"

// DefaultTimeout bounds one account's scan job.
const DefaultTimeout = 5 * time.Minute

// outputTailBytes is how much of each output stream is kept per invocation.
const outputTailBytes = 64 << 10

// EnvironmentProvider builds the child environment for one profile.
type EnvironmentProvider interface {
	Environment(ctx context.Context, region, profile string) ([]string, error)
}

// Options configures how the scan job is started.
type Options struct {
	// Command is the executable and any leading arguments.
	Command []string
	WorkDir string
	// Timeout of zero disables the per-account limit.
	Timeout time.Duration
	Logger  *slog.Logger
}

type service struct {
	env     EnvironmentProvider
	command []string
	workDir string
	timeout time.Duration
	logger  *slog.Logger
}

// Service is the interface for the scan invoker.
type Service interface {
	// Invoke runs the scan job for one profile. A failed or timed-out scan is
	// reported through the outcome with a nil error; the error is non-nil
	// only when the job could not be started (wrapping model.ErrInvocation).
	Invoke(ctx context.Context, profile string, params model.ScanParameters) (model.ScanOutcome, error)
	// Prepare resolves the profile's credentials without starting anything.
	// In explicit mode this is where an MFA prompt reads stdin, so callers
	// start spinners only after Prepare returns.
	Prepare(ctx context.Context, profile string, params model.ScanParameters) Job
}

// Job is a prepared scan job. Run follows the same error contract as Invoke.
type Job interface {
	Run(ctx context.Context) (model.ScanOutcome, error)
}
