package game

import (
	"reflect"
	"testing"
)

func testCrossing() *Crossing {
	return &Crossing{
		ID:              "green_river",
		Name:            "Green River Crossing",
		RiverName:       "Green River",
		MileMarker:      650,
		BaseWidth:       120,
		BaseDepth:       6,
		CurrentStrength: 7,
		HasFerry:        true,
		FerryCost:       35,
		SpringFloodPct:  40,
		SummerLowPct:    50,
	}
}

func TestAvailableMethodsGateFerryOnMoney(t *testing.T) {
	c := testCrossing()

	find := func(options []MethodOption, m CrossingMethod) *MethodOption {
		for i := range options {
			if options[i].Method == m {
				return &options[i]
			}
		}
		return nil
	}

	rich := find(c.AvailableMethods(RiverNormal, true, 100), CrossFerry)
	if rich == nil || !rich.Available {
		t.Fatalf("expected the ferry to run for a paying party, got %+v", rich)
	}
	poor := find(c.AvailableMethods(RiverNormal, true, 5), CrossFerry)
	if poor == nil || poor.Available {
		t.Fatalf("expected the ferry refused without $35, got %+v", poor)
	}
	flood := find(c.AvailableMethods(RiverFlood, true, 100), CrossFerry)
	if flood == nil || flood.Available {
		t.Fatalf("the ferry does not run in flood, got %+v", flood)
	}
}

func TestAvailableMethodsRequireToolsForCaulking(t *testing.T) {
	c := testCrossing()
	for _, opt := range c.AvailableMethods(RiverNormal, false, 100) {
		if opt.Method == CrossCaulk && opt.Available {
			t.Fatalf("caulking needs tools")
		}
		if opt.Method == CrossWait && !opt.Available {
			t.Fatalf("waiting is always available")
		}
	}
}

func TestDetermineConditionWinterRunsLow(t *testing.T) {
	rng := SeededRNG(2)
	c := testCrossing()
	if got := c.DetermineCondition(rng, SeasonWinter, 0); got != RiverLow {
		t.Fatalf("winter rivers run low, got %s", got)
	}
}

func TestDetermineConditionRainRaisesTheRiver(t *testing.T) {
	rng := SeededRNG(2)
	c := testCrossing()
	c.SpringFloodPct = 0 // force the normal base level
	if got := c.DetermineCondition(rng, SeasonFall, 4); got != RiverHigh {
		t.Fatalf("three wet days push normal to high, got %s", got)
	}
}

func TestAttemptCrossingWaitCancels(t *testing.T) {
	rng := SeededRNG(8)
	c := testCrossing()
	result := c.AttemptCrossing(rng, CrossParams{Method: CrossWait, Condition: RiverHigh, Weather: WeatherClear})
	if result.Outcome != OutcomeCancelled {
		t.Fatalf("waiting cancels the attempt, got %s", result.Outcome)
	}
	if result.MoneySpent != 0 {
		t.Fatalf("waiting costs nothing, spent %d", result.MoneySpent)
	}
}

func TestAttemptCrossingFerryChargesTheFare(t *testing.T) {
	rng := SeededRNG(8)
	c := testCrossing()
	result := c.AttemptCrossing(rng, CrossParams{
		Method:       CrossFerry,
		Condition:    RiverNormal,
		Weather:      WeatherClear,
		PartyMembers: []string{"Marcus", "Sarah"},
		Supplies:     map[ResourceKind]float64{ResourceFood: 100},
	})
	if result.MoneySpent != 35 {
		t.Fatalf("expected the $35 fare, spent %d", result.MoneySpent)
	}
	switch result.Outcome {
	case OutcomeSuccess, OutcomePartialLoss, OutcomeMajorLoss, OutcomeDisaster:
	default:
		t.Fatalf("unexpected outcome %s", result.Outcome)
	}
}

func TestAttemptCrossingIsSeedReproducible(t *testing.T) {
	// Several supply kinds: loss rolls must land on the same kinds in the
	// same order every run.
	params := func() CrossParams {
		return CrossParams{
			Method:       CrossFord,
			Condition:    RiverHigh,
			Weather:      WeatherRain,
			PartyMembers: []string{"Marcus", "Sarah", "Elias"},
			Supplies: map[ResourceKind]float64{
				ResourceFood:       200,
				ResourceAmmunition: 80,
				ResourceClothing:   6,
				ResourceMedical:    10,
			},
			SkillBonus: 25,
		}
	}
	for seed := int64(1); seed <= 20; seed++ {
		a := testCrossing().AttemptCrossing(SeededRNG(seed), params())
		b := testCrossing().AttemptCrossing(SeededRNG(seed), params())
		if a.Outcome != b.Outcome || a.Injured != b.Injured || a.InjuryDamage != b.InjuryDamage {
			t.Fatalf("seed %d diverged: %s/%s vs %s/%s", seed, a.Outcome, a.Injured, b.Outcome, b.Injured)
		}
		if !reflect.DeepEqual(a.SuppliesLost, b.SuppliesLost) {
			t.Fatalf("seed %d supply losses diverged:\n%v\nvs\n%v", seed, a.SuppliesLost, b.SuppliesLost)
		}
	}
}

func TestWaitForConditionsCompounds(t *testing.T) {
	// Waiting 20 days leaves a ~0.08% chance of no improvement; any
	// reasonable seed improves.
	improved, msg := WaitForConditions(SeededRNG(4), 20)
	if !improved {
		t.Fatalf("expected the river to drop after 20 days: %s", msg)
	}
	if msg == "" {
		t.Fatalf("expected a message either way")
	}
}
