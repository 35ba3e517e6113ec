package records

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndTotals(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	runs := []Run{
		{PartyName: "The Donnelly Party", Seed: 1, Difficulty: "normal", Pace: "steady",
			Outcome: "victory", Days: 92, Miles: 2400, Survivors: 4, Deaths: 0},
		{PartyName: "The Hale Party", Seed: 2, Difficulty: "hard", Pace: "fast",
			Outcome: "game_over", Days: 40, Miles: 900, Survivors: 0, Deaths: 5},
	}
	for _, run := range runs {
		id, err := store.Record(ctx, run)
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		if id <= 0 {
			t.Fatalf("expected a row id, got %d", id)
		}
	}

	totals, err := store.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Runs != 2 || totals.Victories != 1 || totals.Deaths != 5 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestBestRunsOrdering(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, run := range []Run{
		{PartyName: "Slow", Outcome: "victory", Days: 120, Survivors: 3},
		{PartyName: "Fast", Outcome: "victory", Days: 85, Survivors: 2},
		{PartyName: "FastFull", Outcome: "victory", Days: 85, Survivors: 5},
		{PartyName: "Lost", Outcome: "game_over", Days: 10, Survivors: 0},
	} {
		if _, err := store.Record(ctx, run); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	best, err := store.BestRuns(ctx, 10)
	if err != nil {
		t.Fatalf("best runs: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("expected 3 victories, got %d", len(best))
	}
	if best[0].PartyName != "FastFull" || best[1].PartyName != "Fast" || best[2].PartyName != "Slow" {
		t.Fatalf("wrong ordering: %s, %s, %s", best[0].PartyName, best[1].PartyName, best[2].PartyName)
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"first", "second", "third"} {
		run := Run{PartyName: name, Outcome: "game_over", RecordedAt: base.Add(time.Duration(i) * time.Hour)}
		if _, err := store.Record(ctx, run); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	recent, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(recent))
	}
	if recent[0].PartyName != "third" || recent[1].PartyName != "second" {
		t.Fatalf("wrong ordering: %s, %s", recent[0].PartyName, recent[1].PartyName)
	}
	if !recent[0].RecordedAt.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("recorded time lost: %s", recent[0].RecordedAt)
	}
}

func TestCloseNilStoreIsSafe(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}
