package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/thirukguru/docdb-multiscan/model"
	awsconfig "github.com/thirukguru/docdb-multiscan/service/aws_config"
	"github.com/thirukguru/docdb-multiscan/service/orchestrator"
	"github.com/thirukguru/docdb-multiscan/service/output"
	"github.com/thirukguru/docdb-multiscan/service/precheck"
	"github.com/thirukguru/docdb-multiscan/service/profile"
	"github.com/thirukguru/docdb-multiscan/service/scanner"
	"github.com/thirukguru/docdb-multiscan/service/storage"
	"github.com/thirukguru/docdb-multiscan/shared/banner"
	"github.com/thirukguru/docdb-multiscan/shared/spinner"
)

func runScan(ctx context.Context, flags model.Flags, versionInfo model.VersionInfo, logger *slog.Logger, stdout io.Writer) error {
	params := flags.ScanParameters()
	if err := params.Validate(); err != nil {
		return err
	}
	if flags.MaxParallel < 1 {
		return fmt.Errorf("%w: --max-parallel must be at least 1", model.ErrConfiguration)
	}

	outputService, err := output.NewServiceWithWriter(flags.Output, stdout, output.DefaultRenderer())
	if err != nil {
		return err
	}

	awsConfigService, err := awsconfig.NewService(flags.CredentialMode, flags.ConfigFile)
	if err != nil {
		return err
	}

	scannerService, err := scanner.NewService(awsConfigService, scanner.Options{
		Command: scanner.ParseCommand(flags.Scanner),
		WorkDir: flags.WorkDir,
		Timeout: flags.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	profileService := profile.NewService(flags.ConfigFile)
	accounts, err := profileService.Resolve(flags.Profiles)
	if err != nil {
		return err
	}
	source := "--profiles"
	if strings.TrimSpace(flags.Profiles) == "" {
		source = profileService.StorePath()
	}
	logger.Debug("profiles resolved", "count", len(accounts), "source", source)

	precheckService := precheck.NewService(awsConfigService, precheck.Options{
		VerifyIdentity: flags.VerifyIdentity,
		CountClusters:  flags.SkipEmpty,
	})

	var storageService storage.Service
	if flags.Store && !flags.DryRun {
		storageService, err = storage.NewService(flags.DBPath)
		if err != nil {
			logger.Warn("run history disabled", "error", err)
		} else {
			defer storageService.Close()
		}
	}

	if !flags.NoBanner && outputService.Format() == output.FormatTable && spinner.Enabled() {
		banner.Draw(stdout, versionInfo)
	}

	opts := orchestrator.Options{
		Configuration: model.RunConfiguration{
			ProfileSource:  source,
			Scanner:        flags.Scanner,
			CredentialMode: awsConfigService.Mode(),
			MaxParallel:    flags.MaxParallel,
		},
		MaxParallel: flags.MaxParallel,
		VersionInfo: versionInfo,
		Logger:      logger,
	}
	if storageService != nil {
		opts.Store = storageService
	}

	orchestratorService := orchestrator.NewService(scannerService, precheckService, outputService, opts)
	summary, err := orchestratorService.Run(ctx, accounts, params, flags.DryRun)
	if err != nil {
		return err
	}

	if flags.FailOnError && summary.HasFailures() {
		return fmt.Errorf("%w: %d of %d", errProfilesFailed, len(summary.Failures), summary.Total)
	}
	return nil
}
