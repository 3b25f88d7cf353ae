package runstore

import (
	"path/filepath"
	"testing"
	"time"

	"tmxmine/internal/domain"
)

func TestBoltStore_PutAndListRuns(t *testing.T) {
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "history", "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	first := domain.RunRecord{
		ID:           "2026-01-02T10:00:00.000000001Z",
		InputPath:    "a.tmx",
		OutputPath:   "a_matches.csv",
		SourceLang:   "eu",
		TargetLang:   "es",
		Keywords:     []string{"herria"},
		TotalUnits:   10,
		MatchedUnits: 3,
		Counts:       map[string]int{"herria": 3},
		StartedAt:    time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		Duration:     2 * time.Second,
	}
	second := first
	second.ID = "2026-01-02T11:00:00.000000001Z"
	second.InputPath = "b.tmx"

	if err := st.PutRun(first); err != nil {
		t.Fatal(err)
	}
	if err := st.PutRun(second); err != nil {
		t.Fatal(err)
	}

	runs, err := st.ListRuns()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].InputPath != "a.tmx" || runs[1].InputPath != "b.tmx" {
		t.Errorf("expected chronological order, got %s then %s", runs[0].InputPath, runs[1].InputPath)
	}
	if runs[0].Counts["herria"] != 3 {
		t.Errorf("counts not round-tripped: %v", runs[0].Counts)
	}
	if runs[0].Duration != 2*time.Second {
		t.Errorf("duration not round-tripped: %v", runs[0].Duration)
	}
}

func TestMemoryStore(t *testing.T) {
	st := NewMemoryStore()
	defer st.Close()

	if err := st.PutRun(domain.RunRecord{ID: "1", InputPath: "a.tmx"}); err != nil {
		t.Fatal(err)
	}

	runs, err := st.ListRuns()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].InputPath != "a.tmx" {
		t.Errorf("unexpected runs: %v", runs)
	}
}
