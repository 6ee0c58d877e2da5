// Package summarytable renders run configuration, dry-run previews and run
// summaries as console text.
package summarytable

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/thirukguru/docdb-multiscan/model"
)

const rule = "================================================================================"

// DrawConfiguration prints the resolved run configuration.
func DrawConfiguration(w io.Writer, cfg model.RunConfiguration) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "  Region: %s\n", cfg.Params.Region)
	fmt.Fprintf(w, "  Base log file name: %s\n", cfg.Params.OutputLabel)
	fmt.Fprintf(w, "  Date range: %s\n", DateRange(cfg.Params))
	if cfg.ProfileSource != "" {
		fmt.Fprintf(w, "  Profile source: %s\n", cfg.ProfileSource)
	}
	fmt.Fprintf(w, "  Profiles to process: [%s]\n", strings.Join(cfg.Accounts, ", "))
	if cfg.Scanner != "" {
		fmt.Fprintf(w, "  Scanner: %s\n", cfg.Scanner)
	}
	if cfg.CredentialMode != "" {
		fmt.Fprintf(w, "  Credential mode: %s\n", cfg.CredentialMode)
	}
	if cfg.MaxParallel > 1 {
		fmt.Fprintf(w, "  Max parallel scans: %d\n", cfg.MaxParallel)
	}
}

// DateRange describes the scan window.
func DateRange(p model.ScanParameters) string {
	if p.HasDateRange() {
		return p.StartDate + " to " + p.EndDate
	}
	return "Last 30 days (default)"
}

// DrawDryRun prints the files a run would produce.
func DrawDryRun(w io.Writer, preview model.DryRunPreview) {
	fmt.Fprintf(w, "\nDRY RUN - Would process %d profiles:\n", len(preview.Entries))
	for _, e := range preview.Entries {
		line := fmt.Sprintf("  Profile: %s -> %s", e.Account, e.OutputFile)
		var notes []string
		if e.AccountID != "" {
			notes = append(notes, "account "+e.AccountID)
		}
		if e.ClusterCount != nil {
			notes = append(notes, fmt.Sprintf("%d DocumentDB clusters", *e.ClusterCount))
		}
		if e.Note != "" {
			notes = append(notes, e.Note)
		}
		if len(notes) > 0 {
			line += " (" + strings.Join(notes, ", ") + ")"
		}
		fmt.Fprintln(w, line)
	}
}

// DrawProgress prints the per-iteration header.
func DrawProgress(w io.Writer, index, total int, profile string) {
	fmt.Fprintf(w, "\n[%d/%d] Processing profile: %s\n", index, total, profile)
}

// DrawOutcome prints the status line for one finished account.
func DrawOutcome(w io.Writer, o model.ScanOutcome) {
	switch o.Status {
	case model.StatusSucceeded:
		fmt.Fprintln(w, text.FgGreen.Sprintf("✅ Successfully processed profile: %s", o.Account))
	case model.StatusSkipped:
		fmt.Fprintln(w, text.FgYellow.Sprintf("⏭️  Skipped profile: %s (%s)", o.Account, o.Reason))
	default:
		fmt.Fprintln(w, text.FgRed.Sprintf("❌ Error processing profile: %s", o.Account))
		if o.Reason != "" {
			fmt.Fprintf(w, "Error: %s\n", o.Reason)
		}
	}
}

// DrawSummary prints the final report: per-account status table in
// processing order, totals, then itemised successes and failures.
func DrawSummary(w io.Writer, sum model.RunSummary) {
	fmt.Fprintf(w, "\n%s\nSCAN COMPLETED\n%s\n", rule, rule)

	if len(sum.Outcomes) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"#", "Profile", "Status", "Account", "Output File", "Duration"})
		for i, o := range sum.Outcomes {
			t.AppendRow(table.Row{i + 1, o.Account, statusText(o.Status), dash(o.AccountID), o.OutputFile, formatDuration(o.Duration)})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	}

	fmt.Fprintf(w, "Total profiles processed: %d\n", sum.Total)
	fmt.Fprintf(w, "Successful: %d\n", len(sum.Successes))
	fmt.Fprintf(w, "Failed: %d\n", len(sum.Failures))
	if len(sum.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped: %d\n", len(sum.Skipped))
	}

	if len(sum.Successes) > 0 {
		fmt.Fprintln(w, "\n✅ Successful profiles:")
		for _, o := range sum.Successes {
			fmt.Fprintf(w, "  %s -> %s\n", o.Account, o.OutputFile)
		}
	}
	if len(sum.Failures) > 0 {
		fmt.Fprintln(w, "\n❌ Failed profiles:")
		for _, o := range sum.Failures {
			fmt.Fprintf(w, "  %s -> %s%s\n", o.Account, o.OutputFile, reasonSuffix(o.Reason))
		}
	}
	if len(sum.Skipped) > 0 {
		fmt.Fprintln(w, "\n⏭️  Skipped profiles:")
		for _, o := range sum.Skipped {
			fmt.Fprintf(w, "  %s%s\n", o.Account, reasonSuffix(o.Reason))
		}
	}
	if len(sum.Successes) > 0 {
		fmt.Fprintln(w, "\nCSV files have been generated in the scanner working directory.")
	}
}

func statusText(s model.OutcomeStatus) string {
	switch s {
	case model.StatusSucceeded:
		return text.FgGreen.Sprint(string(s))
	case model.StatusSkipped:
		return text.FgYellow.Sprint(string(s))
	default:
		return text.FgRed.Sprint(string(s))
	}
}

func reasonSuffix(reason string) string {
	if reason == "" {
		return ""
	}
	return " (" + reason + ")"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Second {
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	}
	return d.Round(time.Second).String()
}
