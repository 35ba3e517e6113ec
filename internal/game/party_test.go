package game

import "testing"

func testParty() *Party {
	p := NewParty("The Donnelly Party")
	p.AddMember(NewTraveler("Marcus", RoleTrailLeader))
	p.AddMember(NewTraveler("Sarah", RoleHunter))
	p.AddMember(NewTraveler("Elias", RoleMedic))
	p.AddMember(NewTraveler("June", RoleScout))
	return p
}

func TestBestForSkillPrefersRoleBonus(t *testing.T) {
	p := testParty()
	if best := p.BestForSkill(SkillHunting); best == nil || best.Name != "Sarah" {
		t.Fatalf("expected the hunter to lead on hunting, got %v", best)
	}
	if best := p.BestForSkill(SkillScouting); best == nil || best.Name != "June" {
		t.Fatalf("expected the scout to lead on scouting, got %v", best)
	}
}

func TestTravelSpeedModifierUsesSlowestMember(t *testing.T) {
	p := testParty()
	if mod := p.TravelSpeedModifier(); mod != 0 {
		t.Fatalf("a healthy party travels at full speed, got %d", mod)
	}

	p.MemberByName("Elias").AddCondition(ConditionInjured)
	// Worst member is -15; the trail leader's 25 navigation softens it:
	// -15 * (1 - 25/200) = -13.
	if mod := p.TravelSpeedModifier(); mod != -13 {
		t.Fatalf("expected navigation-softened -13, got %d", mod)
	}
}

func TestDailyMilesFloorsAtOne(t *testing.T) {
	p := NewParty("Stragglers")
	m := NewTraveler("Last One", RoleTraveler)
	m.Health = 10
	m.AddCondition(ConditionHypothermia)
	m.AddCondition(ConditionDehydrated)
	m.AddCondition(ConditionDysentery)
	p.AddMember(m)

	if miles := p.DailyMiles(10, 0); miles != 1 {
		t.Fatalf("a party that can move at all covers at least one mile, got %d", miles)
	}
}

func TestDailyMilesCapsAtDoubleBase(t *testing.T) {
	p := testParty()
	if miles := p.DailyMiles(15, 150); miles != 30 {
		t.Fatalf("no modifier stack betters twice the terrain base, got %d", miles)
	}
	if miles := p.DailyMiles(15, 20); miles != 18 {
		t.Fatalf("expected 15 miles boosted 20%% to 18, got %d", miles)
	}
}

func TestProcessDayStarvationFallout(t *testing.T) {
	rng := SeededRNG(11)
	p := testParty()
	p.Ledger.SetQuantity(ResourceWater, 50)
	// No food at all.

	report := p.ProcessDay(rng, TerrainPlains, WeatherCloudy, DifficultyNormal.Modifiers())
	if !report.Consumption.ShortOn(ResourceFood) {
		t.Fatalf("expected a food shortage")
	}
	for _, m := range p.AliveMembers() {
		if !m.HasCondition(ConditionStarving) {
			t.Fatalf("expected %s to be starving", m.Name)
		}
	}
	if p.DaysTraveled != 1 {
		t.Fatalf("expected the day counter to advance, got %d", p.DaysTraveled)
	}
}

func TestProcessDayRecordsDeath(t *testing.T) {
	rng := SeededRNG(3)
	p := testParty()
	p.Ledger.SetStartingSupplies(4, DifficultyNormal)

	doomed := p.MemberByName("June")
	doomed.Health = 2
	doomed.AddCondition(ConditionDysentery) // drains 4 per day

	report := p.ProcessDay(rng, TerrainPlains, WeatherCloudy, DifficultyNormal.Modifiers())
	if len(report.Deaths) != 1 || report.Deaths[0] != "June" {
		t.Fatalf("expected June to die, got %v", report.Deaths)
	}
	if doomed.IsAlive() {
		t.Fatalf("expected the traveler to be dead")
	}
	if len(p.DeathLog) != 1 || p.DeathLog[0].Cause != "conditions" {
		t.Fatalf("expected one death log entry with cause conditions, got %+v", p.DeathLog)
	}
	if p.AliveCount() != 3 {
		t.Fatalf("expected 3 survivors, got %d", p.AliveCount())
	}
}

func TestRestHealsAndConsumes(t *testing.T) {
	rng := SeededRNG(5)
	p := testParty()
	p.Ledger.SetStartingSupplies(4, DifficultyNormal)
	foodBefore := p.Ledger.Quantity(ResourceFood)

	hurt := p.MemberByName("Marcus")
	hurt.Health = 40

	report := p.Rest(rng, 2, TerrainPlains, DifficultyNormal.Modifiers())
	if report.DaysRested != 2 {
		t.Fatalf("expected 2 days rested, got %d", report.DaysRested)
	}
	if hurt.Health <= 40 {
		t.Fatalf("expected rest to restore health, still at %d", hurt.Health)
	}
	if p.Ledger.Quantity(ResourceFood) >= foodBefore {
		t.Fatalf("resting still consumes supplies")
	}
	if p.DaysTraveled != 2 {
		t.Fatalf("expected 2 days to pass, got %d", p.DaysTraveled)
	}
}

func TestRestHealingScalesWithDifficulty(t *testing.T) {
	healed := func(d Difficulty) int {
		rng := SeededRNG(5)
		p := testParty()
		p.Ledger.SetStartingSupplies(4, DifficultyNormal)
		for _, m := range p.Members {
			m.Health = 30
		}
		return p.Rest(rng, 3, TerrainPlains, d.Modifiers()).HealthRestored
	}
	// Same seed, same rolls; only the healing rate differs.
	if easy, extreme := healed(DifficultyEasy), healed(DifficultyExtreme); easy <= extreme {
		t.Fatalf("expected easy camps to heal faster: easy %d extreme %d", easy, extreme)
	}
}

func TestPartyStatusLine(t *testing.T) {
	p := testParty()
	if got := p.Status(); got != "4 alive, all healthy" {
		t.Fatalf("unexpected status: %q", got)
	}
	p.MemberByName("Sarah").AddCondition(ConditionInjured)
	if got := p.Status(); got != "4 alive (1 sick/injured)" {
		t.Fatalf("unexpected status: %q", got)
	}
}
