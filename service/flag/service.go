// Package flag parses the command line of the scan orchestrator.
package flag

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/thirukguru/docdb-multiscan/model"
	"github.com/thirukguru/docdb-multiscan/service/scanner"
)

// NewService creates a new flag service printing usage to stderr.
func NewService() Service {
	return NewServiceWithOutput(os.Stderr)
}

// NewServiceWithOutput creates a flag service printing usage to w.
func NewServiceWithOutput(w io.Writer) Service {
	return &service{out: w}
}

// GetParsedFlags parses and returns the command-line flags.
func (s *service) GetParsedFlags(args []string) (model.Flags, error) {
	fs := pflag.NewFlagSet(model.AppName, pflag.ContinueOnError)
	fs.SetOutput(s.out)
	fs.SortFlags = false

	var flags model.Flags
	fs.StringVar(&flags.Region, "region", "", "AWS region to scan (required)")
	fs.StringVar(&flags.LogFileName, "log-file-name", "", "Base name for output files; each profile writes <name>_<profile>.csv (required)")
	fs.StringVar(&flags.StartDate, "start-date", "", "Start date YYYYMMDD (requires --end-date)")
	fs.StringVar(&flags.EndDate, "end-date", "", "End date YYYYMMDD (requires --start-date)")
	fs.StringVar(&flags.Profiles, "profiles", "", "Comma-separated profiles to process (default: all profiles in the AWS config file)")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "Show what would be executed without running the scanner")
	fs.StringVar(&flags.ConfigFile, "config-file", "", "AWS config file to discover profiles from (default $AWS_CONFIG_FILE or ~/.aws/config)")
	fs.StringVar(&flags.SettingsPath, "settings", "", "Defaults file (.yaml, .yml, .toml or .json)")
	fs.StringVar(&flags.Scanner, "scanner", scanner.DefaultCommand, "Scan job command line")
	fs.StringVar(&flags.WorkDir, "work-dir", "", "Working directory for the scan job (default: current directory)")
	fs.DurationVar(&flags.Timeout, "timeout", scanner.DefaultTimeout, "Per-profile scan timeout, 0 disables")
	fs.StringVar(&flags.CredentialMode, "credential-mode", DefaultCredentialMode, "How credentials reach the scan job: profile or explicit")
	fs.BoolVar(&flags.VerifyIdentity, "verify-identity", false, "Resolve each profile's account ID with STS before scanning")
	fs.BoolVar(&flags.SkipEmpty, "skip-empty", false, "Skip profiles with no DocumentDB clusters in the region")
	fs.IntVar(&flags.MaxParallel, "max-parallel", DefaultMaxParallel, "Number of profiles to scan at once")
	fs.StringVarP(&flags.Output, "output", "o", DefaultOutput, "Output format (table or json)")
	fs.BoolVar(&flags.Store, "store", false, "Persist the run in the local history database")
	fs.StringVar(&flags.DBPath, "db-path", "", "Custom SQLite database path (default ~/.docdb-multiscan/history.db)")
	fs.BoolVar(&flags.FailOnError, "fail-on-error", false, "Exit with status 3 when any profile fails")
	fs.StringVar(&flags.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&flags.LogFormat, "log-format", DefaultLogFormat, "Log format (text or json)")
	fs.BoolVar(&flags.NoBanner, "no-banner", false, "Do not print the banner")
	fs.BoolVarP(&flags.Version, "version", "v", false, "Show version information")
	fs.BoolVarP(&flags.Help, "help", "h", false, "Show this help message")

	fs.Usage = func() {
		fmt.Fprintf(s.out, "Run the DocumentDB deployment scanner for multiple AWS profiles.\n\n")
		fmt.Fprintf(s.out, "Usage:\n  %s --region REGION --log-file-name NAME [options]\n", model.AppName)
		fmt.Fprintf(s.out, "  %s history list|show <run-id>|profile <name>\n", model.AppName)
		fmt.Fprintf(s.out, "  %s db vacuum|reindex|purge [--older-than DAYS]\n\n", model.AppName)
		fmt.Fprintf(s.out, "Options:\n%s\n", fs.FlagUsages())
		fmt.Fprintf(s.out, "Examples:\n")
		fmt.Fprintf(s.out, "  %s --region us-east-1 --log-file-name docdb_analysis\n", model.AppName)
		fmt.Fprintf(s.out, "  %s --region us-east-1 --log-file-name docdb_analysis --start-date 20240101 --end-date 20240131\n", model.AppName)
		fmt.Fprintf(s.out, "  %s --region us-east-1 --log-file-name docdb_analysis --profiles dev,prod --dry-run\n", model.AppName)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			flags.Help = true
			return flags, nil
		}
		return flags, fmt.Errorf("%w: %w", model.ErrUsage, err)
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return flags, fmt.Errorf("%w: unexpected arguments: %v", model.ErrUsage, fs.Args())
	}
	if flags.Help {
		fs.Usage()
	}

	flags.Changed = map[string]bool{}
	fs.Visit(func(f *pflag.Flag) {
		flags.Changed[f.Name] = true
	})

	return flags, nil
}
