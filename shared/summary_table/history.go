package summarytable

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/thirukguru/docdb-multiscan/service/storage"
)

const historyTimeLayout = "2006-01-02 15:04:05"

// DrawRunList prints stored runs, newest first.
func DrawRunList(w io.Writer, runs []storage.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No stored runs found.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Recent Runs")
	t.AppendHeader(table.Row{"Run ID", "Started (UTC)", "Region", "Log File Name", "Total", "OK", "Failed", "Skipped"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.RunUUID,
			r.StartedAt.UTC().Format(historyTimeLayout),
			r.Region,
			r.Label,
			r.Total,
			r.Succeeded,
			r.Failed,
			r.Skipped,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// DrawRunDetail prints one stored run with its per-profile outcomes.
func DrawRunDetail(w io.Writer, run storage.RunRecord, outcomes []storage.OutcomeRecord) {
	fmt.Fprintf(w, "Run %s\n", run.RunUUID)
	fmt.Fprintf(w, "  Started: %s UTC\n", run.StartedAt.UTC().Format(historyTimeLayout))
	fmt.Fprintf(w, "  Region: %s\n", run.Region)
	fmt.Fprintf(w, "  Base log file name: %s\n", run.Label)
	if run.StartDate != "" && run.EndDate != "" {
		fmt.Fprintf(w, "  Date range: %s to %s\n", run.StartDate, run.EndDate)
	}
	if run.Version != "" {
		fmt.Fprintf(w, "  Version: %s\n", run.Version)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Profile", "Status", "Account", "Output File", "Exit", "Reason"})
	for _, o := range outcomes {
		t.AppendRow(table.Row{o.Position + 1, o.Profile, statusText(o.Status), dash(o.AccountID), o.OutputFile, o.ExitCode, dash(o.Reason)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// DrawProfileHistory prints a profile's status across past runs.
func DrawProfileHistory(w io.Writer, profile string, events []storage.ProfileEvent) {
	if len(events) == 0 {
		fmt.Fprintf(w, "No stored runs include profile %s.\n", profile)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Profile " + profile)
	t.AppendHeader(table.Row{"Run ID", "Started (UTC)", "Region", "Status", "Reason"})
	for _, e := range events {
		t.AppendRow(table.Row{e.RunUUID, e.StartedAt.UTC().Format(historyTimeLayout), e.Region, statusText(e.Status), dash(e.Reason)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
