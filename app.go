// Package main is the entry point for the docdb-multiscan application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/thirukguru/docdb-multiscan/model"
	"github.com/thirukguru/docdb-multiscan/service/flag"
	"github.com/thirukguru/docdb-multiscan/service/settings"
	"github.com/thirukguru/docdb-multiscan/shared/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Process exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitUsage       = 2
	exitFailures    = 3
	exitInterrupted = 130
)

// errProfilesFailed is returned under --fail-on-error when any profile failed.
var errProfilesFailed = errors.New("one or more profiles failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := dispatch(ctx, args, stdout, stderr)
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	switch {
	case errors.Is(err, model.ErrUsage):
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", model.AppName)
		return exitUsage
	case errors.Is(err, errProfilesFailed):
		return exitFailures
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return exitError
	}
}

func dispatch(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "db", "history":
			return runStorageCommand(ctx, args[0], args[1:], stdout)
		}
	}

	flags, err := flag.NewServiceWithOutput(stdout).GetParsedFlags(args)
	if err != nil {
		return err
	}
	if flags.Help {
		return nil
	}

	versionInfo := model.VersionInfo{Version: version, Commit: commit, Date: date}
	if flags.Version {
		printVersion(stdout, versionInfo)
		return nil
	}

	flags, err = settings.NewService().Apply(flags)
	if err != nil {
		return err
	}

	logger, err := logging.New(flags.LogFormat, flags.LogLevel, stderr)
	if err != nil {
		return err
	}

	return runScan(ctx, flags, versionInfo, logger, stdout)
}

func printVersion(w io.Writer, info model.VersionInfo) {
	fmt.Fprintf(w, "%s version %s\n", model.AppName, info.Version)
	fmt.Fprintf(w, "commit: %s\n", info.Commit)
	fmt.Fprintf(w, "built at: %s\n", info.Date)
}
