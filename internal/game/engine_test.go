package game

import (
	"reflect"
	"strings"
	"testing"
)

func testLocations() []Location {
	return []Location{
		{ID: "santa_fe", Name: "Santa Fe", Region: "southwest", MileMarker: 0,
			Terrain: TerrainPlains, IsSettlement: true, WaterNearby: true},
		{ID: "bents_fort", Name: "Bent's Fort", Region: "southwest", MileMarker: 40,
			Terrain: TerrainPlains, IsSettlement: true, Milestone: "Crossed the open plains"},
		{ID: "dawson_city", Name: "Dawson City", Region: "yukon", MileMarker: 80,
			Terrain: TerrainPlains, IsDestination: true},
	}
}

func testEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	trail, err := NewTrail(testLocations(), nil, nil)
	if err != nil {
		t.Fatalf("new trail: %v", err)
	}
	return NewEngine(EngineConfig{
		Seed:       seed,
		Party:      testParty(),
		Trail:      trail,
		Difficulty: DifficultyNormal,
		Pace:       PaceSteady,
		Events:     []Event{testEvent("broken_axle")},
	})
}

func TestResolveDayTravelAdvancesEverything(t *testing.T) {
	e := testEngine(t, 1846)
	report := e.ResolveDay(DayCommand{Action: ActionTravel})

	if report.MilesTraveled < 1 {
		t.Fatalf("expected at least a mile of progress, got %d", report.MilesTraveled)
	}
	if report.Day != 1 || e.Party.DaysTraveled != 1 {
		t.Fatalf("expected day 1, got report %d party %d", report.Day, e.Party.DaysTraveled)
	}
	if e.Date.Day != 2 {
		t.Fatalf("expected the calendar to advance to April 2, got %s", e.Date.String())
	}
	if report.State != StateRunning {
		t.Fatalf("one day in, the run should still be going, got %s", report.State)
	}
}

func TestSeededRunsAreIdentical(t *testing.T) {
	a := testEngine(t, 77)
	b := testEngine(t, 77)

	for day := 0; day < 10; day++ {
		ra := a.ResolveDay(DayCommand{Action: ActionTravel, ConfirmTravel: true})
		rb := b.ResolveDay(DayCommand{Action: ActionTravel, ConfirmTravel: true})
		if !reflect.DeepEqual(ra, rb) {
			t.Fatalf("day %d diverged:\n%+v\nvs\n%+v", day, ra, rb)
		}
		if ra.State != StateRunning {
			break
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := testEngine(t, 1)
	b := testEngine(t, 2)

	same := true
	for day := 0; day < 10 && same; day++ {
		ra := a.ResolveDay(DayCommand{Action: ActionTravel, ConfirmTravel: true})
		rb := b.ResolveDay(DayCommand{Action: ActionTravel, ConfirmTravel: true})
		if !reflect.DeepEqual(ra, rb) {
			same = false
		}
	}
	if same {
		t.Fatalf("ten days under different seeds never diverged")
	}
}

func TestTravelReachesTheDestination(t *testing.T) {
	e := testEngine(t, 4)
	for day := 0; day < 60 && e.State() == StateRunning; day++ {
		e.ResolveDay(DayCommand{Action: ActionTravel, ConfirmTravel: true})
	}
	if e.State() != StateVictory {
		t.Fatalf("expected an 80-mile trail finished within 60 days, state %s at mile %d",
			e.State(), e.Trail.MilesTraveled)
	}
}

func TestBlizzardGatesTravel(t *testing.T) {
	e := testEngine(t, 10)
	e.Sky.Current = WeatherBlizzard

	report := e.ResolveDay(DayCommand{Action: ActionTravel})
	if !report.ConfirmationRequired {
		t.Fatalf("expected a confirmation gate in a blizzard")
	}
	if e.Party.DaysTraveled != 0 {
		t.Fatalf("an unconfirmed day must not be consumed, day counter %d", e.Party.DaysTraveled)
	}

	report = e.ResolveDay(DayCommand{Action: ActionTravel, ConfirmTravel: true})
	if report.ConfirmationRequired {
		t.Fatalf("confirmation should carry the party through")
	}
	if e.Party.DaysTraveled != 1 {
		t.Fatalf("expected the confirmed day consumed, got %d", e.Party.DaysTraveled)
	}
}

func TestRestDayHealsWithoutMoving(t *testing.T) {
	e := testEngine(t, 12)
	e.Party.MemberByName("Marcus").Health = 40

	report := e.ResolveDay(DayCommand{Action: ActionRest, RestDays: 2})
	if report.MilesTraveled != 0 {
		t.Fatalf("resting must not move the party, got %d miles", report.MilesTraveled)
	}
	if e.Party.MemberByName("Marcus").Health <= 40 {
		t.Fatalf("expected rest to heal")
	}
	if e.Party.DaysTraveled != 2 {
		t.Fatalf("expected 2 days spent, got %d", e.Party.DaysTraveled)
	}
}

func TestMultiDayRestAdvancesTheCalendar(t *testing.T) {
	e := testEngine(t, 12)

	e.ResolveDay(DayCommand{Action: ActionRest, RestDays: 3})
	if e.Party.DaysTraveled != 3 {
		t.Fatalf("expected 3 days spent resting, got %d", e.Party.DaysTraveled)
	}
	if e.Date.Month != 4 || e.Date.Day != 4 {
		t.Fatalf("three rested days from April 1 should land on April 4, got %s", e.Date.String())
	}
}

func TestPaceWearDeathLandsInTheDeathLog(t *testing.T) {
	e := testEngine(t, 8)
	e.Pace = PaceGrueling
	weak := e.Party.MemberByName("Elias")
	weak.Health = 3 // under the grueling drain

	e.ResolveDay(DayCommand{Action: ActionTravel, ConfirmTravel: true})
	if weak.IsAlive() {
		t.Fatalf("expected the grueling pace to finish a traveler at 3 health")
	}
	var record *DeathRecord
	for i := range e.Party.DeathLog {
		if e.Party.DeathLog[i].Name == "Elias" {
			record = &e.Party.DeathLog[i]
		}
	}
	if record == nil {
		t.Fatalf("a pace death must be logged, log %+v", e.Party.DeathLog)
	}
	if record.Cause != "worked to death by the pace" {
		t.Fatalf("unexpected cause %q", record.Cause)
	}
}

func TestWorkInjuryDeathLandsInTheDeathLog(t *testing.T) {
	e := testEngine(t, 16)
	m := e.Party.MemberByName("Marcus")
	m.Health = 2

	result := ActivityResult{InjuryDamage: 10}
	e.applyActivity(&result, "Marcus")
	if m.IsAlive() {
		t.Fatalf("expected a 10-damage injury to finish a traveler at 2 health")
	}
	if len(result.Deaths) != 1 || result.Deaths[0] != "Marcus" {
		t.Fatalf("expected the death reported on the result, got %v", result.Deaths)
	}
	if len(e.Party.DeathLog) != 1 || e.Party.DeathLog[0].Cause != "injuries while working" {
		t.Fatalf("expected one logged work-injury death, got %+v", e.Party.DeathLog)
	}
	if m.HasCondition(ConditionInjured) {
		t.Fatalf("the dead carry no conditions")
	}
}

func TestCrossingInjuryDeathLandsInTheDeathLog(t *testing.T) {
	// A flooded ford against a battered party: sweep seeds until the
	// injured member is killed outright and check the death is logged.
	observed := false
	for seed := int64(1); seed <= 100 && !observed; seed++ {
		crossings := []Crossing{{
			ID: "arkansas", Name: "Arkansas Crossing", RiverName: "Arkansas River",
			MileMarker: 30, CurrentStrength: 5, SpringFloodPct: 30, SummerLowPct: 40,
		}}
		trail, err := NewTrail(testLocations(), crossings, nil)
		if err != nil {
			t.Fatalf("new trail: %v", err)
		}
		e := NewEngine(EngineConfig{
			Seed: seed, Party: testParty(), Trail: trail,
			Difficulty: DifficultyNormal, Pace: PaceSteady,
		})
		e.atCrossing = &trail.Crossings[0]
		e.riverCondition = RiverFlood
		for _, m := range e.Party.Members {
			m.Health = 5
		}

		report := e.ResolveDay(DayCommand{Action: ActionCrossRiver, CrossingMethod: CrossFord})
		if report.Crossing == nil || report.Crossing.Injured == "" {
			continue
		}
		injured := e.Party.MemberByName(report.Crossing.Injured)
		if injured == nil || injured.IsAlive() {
			continue
		}
		observed = true
		logged := false
		for _, d := range e.Party.DeathLog {
			if d.Name == injured.Name && d.Cause == "injuries at Arkansas Crossing" {
				logged = true
			}
		}
		if !logged {
			t.Fatalf("seed %d: %s died of crossing injuries but the log has %+v",
				seed, injured.Name, e.Party.DeathLog)
		}
	}
	if !observed {
		t.Fatalf("no seed in 100 produced a fatal crossing injury")
	}
}

func TestInjuryDamageScalesWithPace(t *testing.T) {
	e := testEngine(t, 5)

	e.Pace = PaceGrueling
	if got := e.scaleInjury(10); got != 18 {
		t.Fatalf("expected 10 damage scaled to 18 at a grueling pace, got %d", got)
	}
	e.Pace = PaceSlow
	if got := e.scaleInjury(10); got != 6 {
		t.Fatalf("expected 10 damage scaled to 6 at a careful pace, got %d", got)
	}
	if got := e.scaleInjury(0); got != 0 {
		t.Fatalf("no injury stays no injury, got %d", got)
	}
}

func TestStateGameOverWhenAllDead(t *testing.T) {
	e := testEngine(t, 3)
	for _, m := range e.Party.Members {
		m.TakeDamage(m.Health)
	}
	if e.State() != StateGameOver {
		t.Fatalf("expected game over, got %s", e.State())
	}
}

func TestBuyRequiresSettlementAndMoney(t *testing.T) {
	e := testEngine(t, 5)

	bought, err := e.Buy(ResourceFood, 10)
	if err != nil {
		t.Fatalf("buying at the starting settlement: %v", err)
	}
	if bought != 10 {
		t.Fatalf("expected 10 lbs bought, got %.0f", bought)
	}
	// 10 lbs at $0.50 on normal difficulty.
	if money := e.Party.Ledger.Quantity(ResourceMoney); money != 195 {
		t.Fatalf("expected $195 left, got %.2f", money)
	}

	e.Party.Ledger.SetQuantity(ResourceMoney, 1)
	if _, err := e.Buy(ResourceTools, 10); err == nil {
		t.Fatalf("expected a refusal when the party cannot pay")
	}

	e.Trail.LocationIndex = 1
	e.Trail.Locations[1].IsSettlement = false
	if _, err := e.Buy(ResourceFood, 1); err == nil {
		t.Fatalf("expected a refusal away from a settlement")
	}
}

func TestSellHalvesThePrice(t *testing.T) {
	e := testEngine(t, 5)
	moneyBefore := e.Party.Ledger.Quantity(ResourceMoney)

	sold, err := e.Sell(ResourceFood, 20)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if sold != 20 {
		t.Fatalf("expected 20 lbs sold, got %.0f", sold)
	}
	if money := e.Party.Ledger.Quantity(ResourceMoney); money != moneyBefore+5 {
		t.Fatalf("expected $5 for 20 lbs at half of $0.50, got %.2f", money-moneyBefore)
	}
}

func TestTradePriceCarriesDifficultyMarkup(t *testing.T) {
	e := testEngine(t, 5)
	e.Difficulty = DifficultyHard
	if price := e.TradePrice(ResourceFood); price != 0.625 {
		t.Fatalf("expected $0.625 on hard, got %.3f", price)
	}
}

func TestArrivingAtCrossingPinsTheRiver(t *testing.T) {
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
	crossing, condition, at := e.CurrentCrossing()
	if !at {
		t.Fatalf("expected the party held at the crossing by mile %d", e.Trail.MilesTraveled)
	}
	if crossing.ID != "arkansas" {
		t.Fatalf("unexpected crossing %s", crossing.ID)
	}
	switch condition {
	case RiverLow, RiverNormal, RiverHigh, RiverFlood:
	default:
		t.Fatalf("invalid river condition %q", condition)
	}
}

func testFork() RouteFork {
	return RouteFork{
		ID: "raton_fork", Name: "Raton Fork", MileMarker: 30,
		Description: "The ruts split at the foot of the pass.",
		Options: []RouteOption{
			{ID: "high_line", Name: "High Line", Kind: RouteShortcut,
				Distance: 10, BaseDistance: 30, DangerLevel: 0},
			{ID: "river_road", Name: "River Road", Kind: RouteSafe,
				Distance: 70, BaseDistance: 30, DangerLevel: 0},
			{ID: "goat_track", Name: "Goat Track", Kind: RouteScenic,
				Distance: 25, BaseDistance: 30, DangerLevel: 0, MinHealth: 60},
		},
	}
}

func forkEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	trail, err := NewTrail(testLocations(), nil, []RouteFork{testFork()})
	if err != nil {
		t.Fatalf("new trail: %v", err)
	}
	e := NewEngine(EngineConfig{
		Seed: seed, Party: testParty(), Trail: trail,
		Difficulty: DifficultyNormal, Pace: PaceSteady,
	})
	for day := 0; day < 10; day++ {
		e.ResolveDay(DayCommand{Action: ActionTravel, ConfirmTravel: true})
		if _, at := e.CurrentFork(); at {
			return e
		}
	}
	t.Fatalf("never reached the fork, stopped at mile %d", e.Trail.MilesTraveled)
	return nil
}

func TestArrivingAtForkPinsTheTrail(t *testing.T) {
	e := forkEngine(t, 23)
	fork, at := e.CurrentFork()
	if !at || fork.ID != "raton_fork" {
		t.Fatalf("expected the party held at the fork, got %v %v", fork, at)
	}

	before := e.Trail.MilesTraveled
	e.ResolveDay(DayCommand{Action: ActionTravel, ConfirmTravel: true})
	if e.Trail.MilesTraveled != before {
		t.Fatalf("travel should hold at the split: mile %d moved to %d",
			before, e.Trail.MilesTraveled)
	}
}

func TestShortcutBanksTheSavedMiles(t *testing.T) {
	e := forkEngine(t, 23)
	before := e.Trail.MilesTraveled

	report := e.ResolveDay(DayCommand{Action: ActionRoute, RouteID: "high_line"})
	if _, at := e.CurrentFork(); at {
		t.Fatalf("choosing a route should release the party")
	}
	if !e.Trail.HasRouted("raton_fork") {
		t.Fatalf("the choice was not recorded on the trail")
	}
	if e.Trail.MilesTraveled != before+20 {
		t.Fatalf("a 20-mile cutoff should land at mile %d, got %d",
			before+20, e.Trail.MilesTraveled)
	}
	if report.MilesTraveled != 20 {
		t.Fatalf("expected the saved miles in the day's report, got %d", report.MilesTraveled)
	}
}

func TestLongerRouteWalksOffBeforeTrailProgress(t *testing.T) {
	e := forkEngine(t, 23)
	e.ResolveDay(DayCommand{Action: ActionRoute, RouteID: "river_road"})
	if e.detourMiles != 40 {
		t.Fatalf("a 40-mile detour should be owed, got %d", e.detourMiles)
	}

	forkMile := e.Trail.MilesTraveled
	report := e.ResolveDay(DayCommand{Action: ActionTravel, ConfirmTravel: true})
	if report.MilesTraveled < 1 {
		t.Fatalf("detour miles still count as ground covered")
	}
	if e.Trail.MilesTraveled != forkMile {
		t.Fatalf("trail progress should wait for the detour: mile %d moved to %d",
			forkMile, e.Trail.MilesTraveled)
	}
	if e.detourMiles >= 40 {
		t.Fatalf("a day's travel should pay the detour down, still owing %d", e.detourMiles)
	}
}

func TestRouteRequirementsGateTheChoice(t *testing.T) {
	e := forkEngine(t, 23)
	for _, m := range e.Party.Members {
		m.Health = 40
	}

	standings := e.ForkOptions()
	var goat *RouteStanding
	for i := range standings {
		if standings[i].Option.ID == "goat_track" {
			goat = &standings[i]
		}
	}
	if goat == nil || goat.Available {
		t.Fatalf("a worn-down party should not rate the goat track: %+v", goat)
	}

	report := e.ResolveDay(DayCommand{Action: ActionRoute, RouteID: "goat_track"})
	if _, at := e.CurrentFork(); !at {
		t.Fatalf("a refused choice should leave the party pinned")
	}
	if report.Activity == nil || !strings.Contains(report.Activity.Message, "beyond the party") {
		t.Fatalf("expected the refusal in the report, got %+v", report.Activity)
	}
}

func TestResolveEventAppliesEffects(t *testing.T) {
	e := testEngine(t, 9)
	foodBefore := e.Party.Ledger.Quantity(ResourceFood)
	event := &e.Events.Events[0]

	// Choice 1 has no requirements and always loses 20 food.
	outcome, effects, err := e.ResolveEvent(event, 1)
	if err != nil {
		t.Fatalf("resolve event: %v", err)
	}
	if outcome.Type != "failure" {
		t.Fatalf("expected the fixed outcome, got %s", outcome.Type)
	}
	if e.Party.Ledger.Quantity(ResourceFood) != foodBefore-20 {
		t.Fatalf("expected 20 lbs lost, have %.0f of %.0f", e.Party.Ledger.Quantity(ResourceFood), foodBefore)
	}
	if len(effects.Messages) == 0 {
		t.Fatalf("expected effect messages")
	}
}

func TestScoutAheadSeesUpcomingLocations(t *testing.T) {
	e := testEngine(t, 14)
	e.Trail.MilesTraveled = 25 // Bent's Fort at mile 40 is within scouting range

	report, err := e.ScoutAhead()
	if err != nil {
		t.Fatalf("scout: %v", err)
	}
	if report.Scout != "June" {
		t.Fatalf("expected the scout to go, got %s", report.Scout)
	}
	if report.DistanceScouted <= 20 {
		t.Fatalf("a skilled scout ranges past the base 20 miles, got %d", report.DistanceScouted)
	}
	if len(report.Locations) != 1 || report.Locations[0].ID != "bents_fort" {
		t.Fatalf("expected Bent's Fort spotted, got %v", report.Locations)
	}
}

func TestHuntConsumesAmmoFromTheLedger(t *testing.T) {
	e := testEngine(t, 30)
	ammoBefore := e.Party.Ledger.Quantity(ResourceAmmunition)

	report := e.ResolveDay(DayCommand{Action: ActionHunt, Style: StyleNormal})
	if report.Activity == nil {
		t.Fatalf("expected an activity result")
	}
	if report.Activity.AmmoUsed > 0 && e.Party.Ledger.Quantity(ResourceAmmunition) >= ammoBefore {
		t.Fatalf("ammo used but the ledger never moved")
	}
	if report.Activity.FoodGained > 0 && e.Party.Ledger.Quantity(ResourceFood) <= 0 {
		t.Fatalf("food gained but the ledger never moved")
	}
}
