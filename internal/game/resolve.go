package game

import (
	"fmt"
	"math/rand/v2"
)

// Style is how boldly an activity is attempted. It trades success chance
// and yield against resource cost and injury risk.
type Style string

const (
	StyleConservative Style = "conservative"
	StyleNormal       Style = "normal"
	StyleAggressive   Style = "aggressive"
)

func AllStyles() []Style {
	return []Style{StyleConservative, StyleNormal, StyleAggressive}
}

func ParseStyle(s string) (Style, error) {
	for _, st := range AllStyles() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown style %q", s)
}

type styleModifiers struct {
	successMod int
	yieldMult  float64
	costMult   float64
	dangerMult float64
	timeHours  int
}

func (s Style) modifiers() styleModifiers {
	switch s {
	case StyleConservative:
		return styleModifiers{successMod: -10, yieldMult: 0.7, costMult: 0.6, dangerMult: 0.3, timeHours: 2}
	case StyleNormal:
		return styleModifiers{yieldMult: 1.0, costMult: 1.0, dangerMult: 1.0, timeHours: 4}
	case StyleAggressive:
		return styleModifiers{successMod: 15, yieldMult: 1.3, costMult: 1.5, dangerMult: 2.0, timeHours: 6}
	default:
		panic(fmt.Sprintf("unknown style: %s", string(s)))
	}
}

// Attempt parametrizes one resolution of a risky activity. Hunting,
// foraging, fishing and river crossings all feed this one shape.
type Attempt struct {
	// Success probability in percent, already summed from base rate,
	// terrain, weather, style and skill. Clamped to [MinChance,MaxChance]
	// with inclusive bounds before the roll.
	Chance    int
	MinChance int
	MaxChance int

	// Yield range; multiplier applies before truncation. On failure the
	// yield collapses to FailureFraction of the would-be amount. Zero
	// fraction means failure yields nothing.
	MinYield        int
	MaxYield        int
	YieldMultiplier float64
	FailureFraction float64

	// Danger is rolled independently of success on its own draw.
	DangerChance float64
	MinInjury    int
	MaxInjury    int

	// Resource cost (ammo, money, time) drawn then scaled, clamped to
	// what is on hand.
	MinCost        int
	MaxCost        int
	CostMultiplier float64
	CostAvailable  int
}

// Outcome is the uniform shape of a resolved attempt.
type Outcome struct {
	Success      bool
	Chance       int
	Yield        int
	Injured      bool
	InjuryDamage int
	Cost         int
}

// resolveAttempt runs the shared resolution algorithm. Draw order is
// fixed (cost, success, danger, injury, yield) so a seeded source
// replays an identical outcome.
func resolveAttempt(rng *rand.Rand, a Attempt) Outcome {
	var out Outcome

	if a.MaxCost > 0 {
		cost := int(float64(rollBetween(rng, a.MinCost, a.MaxCost)) * a.CostMultiplier)
		out.Cost = min(cost, a.CostAvailable)
	}

	chance := a.Chance
	if chance < a.MinChance {
		chance = a.MinChance
	}
	if chance > a.MaxChance {
		chance = a.MaxChance
	}
	out.Chance = chance
	out.Success = rollPercent(rng) <= chance

	if a.DangerChance > 0 && float64(rollPercent(rng)) <= a.DangerChance {
		out.Injured = true
		out.InjuryDamage = rollBetween(rng, a.MinInjury, a.MaxInjury)
	}

	if a.MaxYield > 0 {
		amount := float64(rollBetween(rng, a.MinYield, a.MaxYield)) * a.YieldMultiplier
		if !out.Success {
			amount *= a.FailureFraction
		}
		out.Yield = int(amount)
	}

	return out
}

// ActivityResult is the engine-facing record every activity converges on.
type ActivityResult struct {
	Success      bool
	FoodGained   int
	WaterGained  int
	AmmoUsed     int
	MoneySpent   int
	TimeHours    int
	Injured      string // name of the injured member, empty when unhurt
	InjuryDamage int
	Deaths       []string
	SuppliesLost map[ResourceKind]float64
	Message      string
	Details      []string
}

// NoOpResult is the trivial success returned when a day's activity is
// cancelled, such as choosing to wait at a river.
func NoOpResult(message string) ActivityResult {
	return ActivityResult{Success: true, Message: message}
}
