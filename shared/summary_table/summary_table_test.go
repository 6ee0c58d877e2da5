package summarytable

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/thirukguru/docdb-multiscan/model"
)

func TestMain(m *testing.M) {
	text.DisableColors()
	m.Run()
}

func TestDrawConfigurationDefaultDateRange(t *testing.T) {
	var buf bytes.Buffer
	DrawConfiguration(&buf, model.RunConfiguration{
		Params:   model.ScanParameters{Region: "us-east-1", OutputLabel: "analysis"},
		Accounts: []string{"dev", "prod"},
	})
	out := buf.String()
	assert.Contains(t, out, "Region: us-east-1")
	assert.Contains(t, out, "Base log file name: analysis")
	assert.Contains(t, out, "Date range: Last 30 days (default)")
	assert.Contains(t, out, "Profiles to process: [dev, prod]")
	assert.NotContains(t, out, "Max parallel")
}

func TestDrawConfigurationDateRange(t *testing.T) {
	var buf bytes.Buffer
	DrawConfiguration(&buf, model.RunConfiguration{
		Params:      model.ScanParameters{Region: "us-east-1", OutputLabel: "analysis", StartDate: "20240101", EndDate: "20240131"},
		MaxParallel: 4,
	})
	assert.Contains(t, buf.String(), "Date range: 20240101 to 20240131")
	assert.Contains(t, buf.String(), "Max parallel scans: 4")
}

func TestDrawDryRun(t *testing.T) {
	two := 2
	var buf bytes.Buffer
	DrawDryRun(&buf, model.DryRunPreview{Entries: []model.DryRunEntry{
		{Account: "a", OutputFile: "analysis_a.csv"},
		{Account: "b", OutputFile: "analysis_b.csv", AccountID: "123456789012", ClusterCount: &two},
	}})
	want := "\nDRY RUN - Would process 2 profiles:\n" +
		"  Profile: a -> analysis_a.csv\n" +
		"  Profile: b -> analysis_b.csv (account 123456789012, 2 DocumentDB clusters)\n"
	assert.Equal(t, want, buf.String())
}

func TestDrawOutcome(t *testing.T) {
	var buf bytes.Buffer
	DrawOutcome(&buf, model.ScanOutcome{Account: "a", Status: model.StatusSucceeded})
	DrawOutcome(&buf, model.ScanOutcome{Account: "b", Status: model.StatusFailed, Reason: "exit status 1"})
	out := buf.String()
	assert.Contains(t, out, "Successfully processed profile: a")
	assert.Contains(t, out, "Error processing profile: b")
	assert.Contains(t, out, "Error: exit status 1")
}

func TestDrawSummaryOrderingAndTotals(t *testing.T) {
	outcomes := []model.ScanOutcome{
		{Account: "a", Status: model.StatusSucceeded, OutputFile: "analysis_a.csv", Duration: 1500 * time.Millisecond},
		{Account: "b", Status: model.StatusFailed, OutputFile: "analysis_b.csv", Reason: "exit status 2"},
		{Account: "c", Status: model.StatusSucceeded, OutputFile: "analysis_c.csv"},
	}
	var buf bytes.Buffer
	DrawSummary(&buf, model.Summarize(outcomes))
	out := buf.String()

	assert.Contains(t, out, "SCAN COMPLETED")
	assert.Contains(t, out, "Total profiles processed: 3")
	assert.Contains(t, out, "Successful: 2")
	assert.Contains(t, out, "Failed: 1")
	assert.NotContains(t, out, "Skipped:")
	assert.Contains(t, out, "  a -> analysis_a.csv\n  c -> analysis_c.csv\n")
	assert.Contains(t, out, "  b -> analysis_b.csv (exit status 2)\n")

	// status table rows appear in processing order
	ia := strings.Index(out, "analysis_a.csv")
	ib := strings.Index(out, "analysis_b.csv")
	ic := strings.Index(out, "analysis_c.csv")
	assert.True(t, ia < ib && ib < ic, "rows out of order:\n%s", out)
	assert.Less(t, strings.Index(out, "Successful profiles"), strings.Index(out, "Failed profiles"))
}

func TestDrawSummaryAllFailedHasNoGeneratedFilesNote(t *testing.T) {
	var buf bytes.Buffer
	DrawSummary(&buf, model.Summarize([]model.ScanOutcome{{Account: "a", Status: model.StatusFailed, OutputFile: "x_a.csv"}}))
	assert.NotContains(t, buf.String(), "CSV files have been generated")
	assert.NotContains(t, buf.String(), "Successful profiles")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "-", formatDuration(0))
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "2s", formatDuration(1600*time.Millisecond))
}
