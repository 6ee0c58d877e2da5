package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"github.com/thirukguru/docdb-multiscan/model"
	"github.com/thirukguru/docdb-multiscan/service/storage"
	summarytable "github.com/thirukguru/docdb-multiscan/shared/summary_table"
)

func runStorageCommand(ctx context.Context, cmd string, args []string, stdout io.Writer) error {
	switch cmd {
	case "db":
		return runDBCommand(ctx, args, stdout)
	case "history":
		return runHistoryCommand(ctx, args, stdout)
	default:
		return fmt.Errorf("%w: unsupported command: %s", model.ErrUsage, cmd)
	}
}

func runDBCommand(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("db", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	dbPath := fs.String("db-path", "", "SQLite database path")
	olderThan := fs.Int("older-than", 30, "Purge runs older than N days")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", model.ErrUsage, err)
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("%w: usage: %s db <vacuum|reindex|purge> [--db-path ...] [--older-than N]", model.ErrUsage, model.AppName)
	}

	sub := rest[0]
	switch sub {
	case "vacuum", "reindex", "purge":
	default:
		return fmt.Errorf("%w: unsupported db command: %s", model.ErrUsage, sub)
	}

	store, err := storage.NewService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch sub {
	case "vacuum":
		if err := store.Vacuum(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Database vacuumed")
	case "reindex":
		if err := store.Reindex(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Database reindexed")
	case "purge":
		count, err := store.PurgeOlderThan(ctx, *olderThan)
		if err != nil {
			return fmt.Errorf("%w: %w", model.ErrConfiguration, err)
		}
		fmt.Fprintf(stdout, "Purged %d runs\n", count)
	}
	return nil
}

func runHistoryCommand(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	dbPath := fs.String("db-path", "", "SQLite database path")
	limit := fs.Int("limit", 20, "Number of rows to list")
	format := fs.StringP("output", "o", "table", "Output format (table or json)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", model.ErrUsage, err)
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("%w: usage: %s history <list|show <run-id>|profile <name>>", model.ErrUsage, model.AppName)
	}
	if *format != "table" && *format != "json" {
		return fmt.Errorf("%w: unsupported --output %q (want table or json)", model.ErrConfiguration, *format)
	}
	asJSON := *format == "json"

	sub := rest[0]
	switch sub {
	case "list":
	case "show":
		if len(rest) < 2 {
			return fmt.Errorf("%w: usage: %s history show <run-id>", model.ErrUsage, model.AppName)
		}
	case "profile":
		if len(rest) < 2 {
			return fmt.Errorf("%w: usage: %s history profile <name>", model.ErrUsage, model.AppName)
		}
	default:
		return fmt.Errorf("%w: unsupported history command: %s", model.ErrUsage, sub)
	}

	store, err := storage.NewService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch sub {
	case "list":
		runs, err := store.GetRecentRuns(ctx, *limit)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(stdout, runs)
		}
		summarytable.DrawRunList(stdout, runs)
	case "show":
		run, err := store.GetRun(ctx, rest[1])
		if err != nil {
			return err
		}
		outcomes, err := store.ListOutcomes(ctx, rest[1])
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(stdout, struct {
				storage.RunRecord
				Outcomes []storage.OutcomeRecord `json:"outcomes"`
			}{*run, outcomes})
		}
		summarytable.DrawRunDetail(stdout, *run, outcomes)
	case "profile":
		events, err := store.GetProfileHistory(ctx, rest[1], *limit)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(stdout, events)
		}
		summarytable.DrawProfileHistory(stdout, rest[1], events)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
