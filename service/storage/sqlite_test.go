package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/thirukguru/docdb-multiscan/model"
)

func newTestStorage(t *testing.T) Service {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	svc, err := NewService(dbPath)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func testSummary(runID string, startedAt time.Time) model.RunSummary {
	params := model.ScanParameters{Region: "us-east-1", OutputLabel: "analysis"}
	sum := model.Summarize([]model.ScanOutcome{
		{Account: "dev", Status: model.StatusSucceeded, OutputFile: params.OutputFileFor("dev"), Duration: 1500 * time.Millisecond},
		{Account: "prod", Status: model.StatusFailed, OutputFile: params.OutputFileFor("prod"), ExitCode: 2, Reason: "exit status 2: AccessDenied"},
		{Account: "sandbox", Status: model.StatusSkipped, OutputFile: params.OutputFileFor("sandbox"), Reason: "no DocumentDB clusters"},
	})
	sum.RunID = runID
	sum.Params = params
	sum.StartedAt = startedAt
	sum.FinishedAt = startedAt.Add(time.Minute)
	return sum
}

func TestSaveRunAndQueries(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	id, err := svc.SaveRun(ctx, SaveRunInput{Summary: testSummary("run-1", time.Now()), Version: "1.2.3"})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive run id, got %d", id)
	}

	recent, err := svc.GetRecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 recent run, got %d", len(recent))
	}
	r := recent[0]
	if r.RunUUID != "run-1" || r.Region != "us-east-1" || r.Label != "analysis" || r.Version != "1.2.3" {
		t.Fatalf("unexpected run record: %+v", r)
	}
	if r.Total != 3 || r.Succeeded != 1 || r.Failed != 1 || r.Skipped != 1 {
		t.Fatalf("unexpected run counts: %+v", r)
	}

	got, err := svc.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.ID != id {
		t.Fatalf("expected run id %d, got %d", id, got.ID)
	}

	outcomes, err := svc.ListOutcomes(ctx, "run-1")
	if err != nil {
		t.Fatalf("ListOutcomes failed: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	order := []string{outcomes[0].Profile, outcomes[1].Profile, outcomes[2].Profile}
	if order[0] != "dev" || order[1] != "prod" || order[2] != "sandbox" {
		t.Fatalf("outcomes out of processing order: %v", order)
	}
	if outcomes[1].Status != model.StatusFailed || outcomes[1].ExitCode != 2 {
		t.Fatalf("unexpected failed outcome: %+v", outcomes[1])
	}
	if outcomes[0].Duration != 1500*time.Millisecond {
		t.Fatalf("unexpected duration: %v", outcomes[0].Duration)
	}
	if outcomes[0].OutputFile != "analysis_dev.csv" {
		t.Fatalf("unexpected output file: %s", outcomes[0].OutputFile)
	}
}

func TestGetRunNotFound(t *testing.T) {
	svc := newTestStorage(t)

	_, err := svc.GetRun(context.Background(), "missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestSaveRunGeneratesRunID(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	if _, err := svc.SaveRun(ctx, SaveRunInput{Summary: testSummary("", time.Now())}); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	recent, err := svc.GetRecentRuns(ctx, 1)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(recent) != 1 || recent[0].RunUUID == "" {
		t.Fatalf("expected generated run uuid, got %+v", recent)
	}
}

func TestSaveRunRequiresRegion(t *testing.T) {
	svc := newTestStorage(t)

	sum := testSummary("run-x", time.Now())
	sum.Params.Region = ""
	if _, err := svc.SaveRun(context.Background(), SaveRunInput{Summary: sum}); err == nil {
		t.Fatalf("expected error for missing region")
	}
}

func TestProfileHistory(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	now := time.Now()
	if _, err := svc.SaveRun(ctx, SaveRunInput{Summary: testSummary("run-old", now.Add(-2*time.Hour))}); err != nil {
		t.Fatalf("SaveRun #1 failed: %v", err)
	}
	if _, err := svc.SaveRun(ctx, SaveRunInput{Summary: testSummary("run-new", now)}); err != nil {
		t.Fatalf("SaveRun #2 failed: %v", err)
	}

	events, err := svc.GetProfileHistory(ctx, "prod", 10)
	if err != nil {
		t.Fatalf("GetProfileHistory failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].RunUUID != "run-new" || events[1].RunUUID != "run-old" {
		t.Fatalf("expected newest first, got %s, %s", events[0].RunUUID, events[1].RunUUID)
	}
	if events[0].Status != model.StatusFailed {
		t.Fatalf("unexpected status: %s", events[0].Status)
	}
}

func TestPurgeOlderThanRemovesRunsAndOutcomes(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	if _, err := svc.SaveRun(ctx, SaveRunInput{Summary: testSummary("run-stale", time.Now().Add(-10*24*time.Hour))}); err != nil {
		t.Fatalf("SaveRun stale failed: %v", err)
	}
	if _, err := svc.SaveRun(ctx, SaveRunInput{Summary: testSummary("run-fresh", time.Now())}); err != nil {
		t.Fatalf("SaveRun fresh failed: %v", err)
	}

	n, err := svc.PurgeOlderThan(ctx, 5)
	if err != nil {
		t.Fatalf("PurgeOlderThan failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 purged run, got %d", n)
	}

	outcomes, err := svc.ListOutcomes(ctx, "run-stale")
	if err != nil {
		t.Fatalf("ListOutcomes failed: %v", err)
	}
	if len(outcomes) != 0 {
		t.Fatalf("expected outcomes of purged run to be removed, got %d", len(outcomes))
	}
	if _, err := svc.GetRun(ctx, "run-fresh"); err != nil {
		t.Fatalf("fresh run should survive purge: %v", err)
	}
}

func TestMaintenanceCommands(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	if err := svc.Vacuum(ctx); err != nil {
		t.Fatalf("Vacuum failed: %v", err)
	}
	if err := svc.Reindex(ctx); err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}
	if _, err := svc.PurgeOlderThan(ctx, 0); err == nil {
		t.Fatalf("expected error for invalid purge days")
	}
}

func TestResolvePathExpandsHome(t *testing.T) {
	t.Setenv("HOME", "/tmp/home-test")

	p, err := resolvePath("")
	if err != nil {
		t.Fatalf("resolvePath failed: %v", err)
	}
	if p != filepath.Join("/tmp/home-test", ".docdb-multiscan", "history.db") {
		t.Fatalf("unexpected default path: %s", p)
	}
}
