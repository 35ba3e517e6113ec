package game

import (
	"encoding/json"
	"testing"
)

func TestSnapshotRoundTripThroughJSON(t *testing.T) {
	e := testEngine(t, 99)
	for day := 0; day < 3; day++ {
		e.ResolveDay(DayCommand{Action: ActionTravel, ConfirmTravel: true})
	}

	data, err := json.Marshal(e.Snapshot())
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	restored, err := Restore(snap, ContentPack{
		Events:    []Event{testEvent("broken_axle")},
		Locations: testLocations(),
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if restored.Trail.MilesTraveled != e.Trail.MilesTraveled {
		t.Fatalf("miles lost in the round trip: %d vs %d",
			restored.Trail.MilesTraveled, e.Trail.MilesTraveled)
	}
	if restored.Party.DaysTraveled != e.Party.DaysTraveled {
		t.Fatalf("days lost: %d vs %d", restored.Party.DaysTraveled, e.Party.DaysTraveled)
	}
	if restored.Date != e.Date {
		t.Fatalf("date lost: %s vs %s", restored.Date.String(), e.Date.String())
	}
	if restored.Sky.Current != e.Sky.Current {
		t.Fatalf("weather lost: %s vs %s", restored.Sky.Current, e.Sky.Current)
	}
	for _, kind := range AllResourceKinds() {
		got := restored.Party.Ledger.Quantity(kind)
		want := e.Party.Ledger.Quantity(kind)
		if got != want {
			t.Fatalf("%s lost in the round trip: %.2f vs %.2f", kind, got, want)
		}
	}
	if len(restored.Party.Members) != len(e.Party.Members) {
		t.Fatalf("members lost: %d vs %d", len(restored.Party.Members), len(e.Party.Members))
	}
}

func TestRestoreRebindsCrossingByID(t *testing.T) {
	crossings := []Crossing{{
		ID: "arkansas", Name: "Arkansas Crossing", RiverName: "Arkansas River",
		MileMarker: 30, CurrentStrength: 5, SpringFloodPct: 30, SummerLowPct: 40,
	}}
	trail, err := NewTrail(testLocations(), crossings, nil)
	if err != nil {
		t.Fatalf("new trail: %v", err)
	}
	e := NewEngine(EngineConfig{
		Seed: 23, Party: testParty(), Trail: trail,
		Difficulty: DifficultyNormal, Pace: PaceSteady,
	})
	for day := 0; day < 10; day++ {
		e.ResolveDay(DayCommand{Action: ActionTravel, ConfirmTravel: true})
		if _, _, at := e.CurrentCrossing(); at {
			break
		}
	}
	if _, _, at := e.CurrentCrossing(); !at {
		t.Fatalf("never reached the crossing")
	}

	data, err := json.Marshal(e.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored, err := Restore(snap, ContentPack{Locations: testLocations(), Crossings: crossings})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	crossing, condition, at := restored.CurrentCrossing()
	if !at {
		t.Fatalf("restored engine forgot the crossing")
	}
	if crossing.ID != "arkansas" {
		t.Fatalf("rebound to the wrong crossing: %s", crossing.ID)
	}
	origCrossing, origCondition, _ := e.CurrentCrossing()
	if condition != origCondition {
		t.Fatalf("river condition lost: %s vs %s", condition, origCondition)
	}
	// The restored pointer must belong to the rebuilt trail, not the snapshot.
	if crossing == origCrossing {
		t.Fatalf("restored crossing aliases the old engine's trail")
	}
}

func TestRestoreRebindsForkAndDetour(t *testing.T) {
	e := forkEngine(t, 23)
	e.detourMiles = 12

	data, err := json.Marshal(e.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored, err := Restore(snap, ContentPack{
		Locations: testLocations(),
		Forks:     []RouteFork{testFork()},
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	fork, at := restored.CurrentFork()
	if !at {
		t.Fatalf("restored engine forgot the fork")
	}
	if fork.ID != "raton_fork" {
		t.Fatalf("rebound to the wrong fork: %s", fork.ID)
	}
	origFork, _ := e.CurrentFork()
	// The restored pointer must belong to the rebuilt trail, not the snapshot.
	if fork == origFork {
		t.Fatalf("restored fork aliases the old engine's trail")
	}
	if restored.detourMiles != 12 {
		t.Fatalf("detour miles lost in the round trip: %d", restored.detourMiles)
	}
}

func TestRestorePreservesRouteChoices(t *testing.T) {
	e := forkEngine(t, 23)
	e.ResolveDay(DayCommand{Action: ActionRoute, RouteID: "high_line"})
	if !e.Trail.HasRouted("raton_fork") {
		t.Fatalf("the route choice was not recorded")
	}

	data, err := json.Marshal(e.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	restored, err := Restore(snap, ContentPack{
		Locations: testLocations(),
		Forks:     []RouteFork{testFork()},
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !restored.Trail.HasRouted("raton_fork") {
		t.Fatalf("route choices lost in the round trip")
	}
	if _, at := restored.CurrentFork(); at {
		t.Fatalf("a decided fork should not pin the restored party")
	}
}

func TestRestorePreservesClearedCrossings(t *testing.T) {
	trail, err := NewTrail(testLocations(), nil, nil)
	if err != nil {
		t.Fatalf("new trail: %v", err)
	}
	trail.MarkCleared("arkansas")
	trail.MarkCleared("arkansas") // idempotent
	if len(trail.Cleared) != 1 {
		t.Fatalf("expected one cleared entry, got %d", len(trail.Cleared))
	}

	e := NewEngine(EngineConfig{
		Seed: 7, Party: testParty(), Trail: trail,
		Difficulty: DifficultyNormal, Pace: PaceSteady,
	})
	data, err := json.Marshal(e.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	restored, err := Restore(snap, ContentPack{Locations: testLocations()})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !restored.Trail.HasCleared("arkansas") {
		t.Fatalf("cleared crossings lost in the round trip")
	}
}

func TestRestoreRejectsEmptySnapshot(t *testing.T) {
	if _, err := Restore(Snapshot{}, ContentPack{Locations: testLocations()}); err == nil {
		t.Fatalf("expected a refusal to restore without a party")
	}
}

func TestRestoreDefaultsMissingSubsystems(t *testing.T) {
	snap := Snapshot{Party: testParty()}
	e, err := Restore(snap, ContentPack{Locations: testLocations()})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if e.Difficulty != DifficultyNormal {
		t.Fatalf("expected the default difficulty, got %s", e.Difficulty)
	}
	if e.Pace != PaceSteady {
		t.Fatalf("expected the default pace, got %s", e.Pace)
	}
	if e.Date.Year != 1846 {
		t.Fatalf("expected the default start date, got %s", e.Date.String())
	}
	if e.Kit == nil || len(e.Kit.Items) == 0 {
		t.Fatalf("expected a starting kit")
	}
}
