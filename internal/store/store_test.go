// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/litreview/internal/registry"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(id string, created time.Time) *registry.Run {
	completed := created.Add(2 * time.Minute)
	return &registry.Run{
		ID:          id,
		Topic:       "graph neural networks",
		PaperLimit:  3,
		Status:      registry.StatusCompleted,
		ReportPath:  "reports/out.md",
		CreatedAt:   created,
		CompletedAt: &completed,
	}
}

func TestRecordAndListRuns(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		if err := s.RecordRun(testRun(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	runs, err := s.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	// Newest first.
	if runs[0].ID != "run-c" || runs[2].ID != "run-a" {
		t.Errorf("order = %s, %s, %s", runs[0].ID, runs[1].ID, runs[2].ID)
	}
	got := runs[0]
	if got.Topic != "graph neural networks" || got.PaperLimit != 3 {
		t.Errorf("run = %+v", got)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt not restored")
	}
}

func TestListRunsLimit(t *testing.T) {
	s := openTestStore(t)
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		run := testRun(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		if err := s.RecordRun(run); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs, want 2", len(runs))
	}
}

func TestRecordRunUpsert(t *testing.T) {
	s := openTestStore(t)
	created := time.Now().UTC().Truncate(time.Second)

	run := &registry.Run{
		ID:        "run-x",
		Topic:     "t",
		Status:    registry.StatusFailed,
		CreatedAt: created,
	}
	run.ErrorMessage = "analysis failed for every extracted paper"
	if err := s.RecordRun(run); err != nil {
		t.Fatal(err)
	}

	// Re-record with a terminal success; the row is replaced, not duplicated.
	run.Status = registry.StatusCompleted
	run.ErrorMessage = ""
	run.ReportPath = "reports/x.md"
	if err := s.RecordRun(run); err != nil {
		t.Fatal(err)
	}

	runs, err := s.ListRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Status != registry.StatusCompleted || runs[0].ReportPath != "reports/x.md" {
		t.Errorf("run = %+v", runs[0])
	}
	if runs[0].ErrorMessage != "" {
		t.Errorf("ErrorMessage = %q, want cleared", runs[0].ErrorMessage)
	}
}
