package summarytable

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thirukguru/docdb-multiscan/model"
	"github.com/thirukguru/docdb-multiscan/service/storage"
)

func TestDrawRunListEmpty(t *testing.T) {
	var buf bytes.Buffer
	DrawRunList(&buf, nil)
	assert.Equal(t, "No stored runs found.\n", buf.String())
}

func TestDrawRunList(t *testing.T) {
	var buf bytes.Buffer
	started := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	DrawRunList(&buf, []storage.RunRecord{
		{RunUUID: "run-1", StartedAt: started, Region: "us-east-1", Label: "analysis", Total: 3, Succeeded: 2, Failed: 1},
	})
	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "2026-03-01 10:30:00")
	assert.Contains(t, out, "analysis")
}

func TestDrawRunDetail(t *testing.T) {
	var buf bytes.Buffer
	DrawRunDetail(&buf,
		storage.RunRecord{RunUUID: "run-1", Region: "us-east-1", Label: "analysis", StartDate: "20240101", EndDate: "20240131"},
		[]storage.OutcomeRecord{
			{Position: 0, Profile: "dev", Status: model.StatusSucceeded, OutputFile: "analysis_dev.csv"},
			{Position: 1, Profile: "prod", Status: model.StatusFailed, OutputFile: "analysis_prod.csv", ExitCode: 2, Reason: "exit status 2"},
		})
	out := buf.String()
	assert.Contains(t, out, "Run run-1")
	assert.Contains(t, out, "Date range: 20240101 to 20240131")
	assert.Contains(t, out, "analysis_prod.csv")
	assert.Contains(t, out, "exit status 2")
	assert.Contains(t, out, "FAILED")
}

func TestDrawProfileHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	DrawProfileHistory(&buf, "dev", nil)
	assert.Equal(t, "No stored runs include profile dev.\n", buf.String())
}
