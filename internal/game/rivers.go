package game

import (
	"fmt"
	"math/rand/v2"
)

type CrossingMethod string

const (
	CrossFord   CrossingMethod = "ford"
	CrossCaulk  CrossingMethod = "caulk"
	CrossFerry  CrossingMethod = "ferry"
	CrossBridge CrossingMethod = "bridge"
	CrossWait   CrossingMethod = "wait"
)

func AllCrossingMethods() []CrossingMethod {
	return []CrossingMethod{CrossFord, CrossCaulk, CrossFerry, CrossBridge, CrossWait}
}

func ParseCrossingMethod(s string) (CrossingMethod, error) {
	for _, m := range AllCrossingMethods() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown crossing method %q", s)
}

type methodInfo struct {
	name          string
	description   string
	timeHours     int
	cost          int
	requiresTools bool
	dangerBase    int
}

func (m CrossingMethod) info() methodInfo {
	switch m {
	case CrossFord:
		return methodInfo{
			name:        "Ford the River",
			description: "Wade through the water. Fast but risky if water is high.",
			timeHours:   2, dangerBase: 30,
		}
	case CrossCaulk:
		return methodInfo{
			name:        "Caulk and Float",
			description: "Waterproof the wagon and float across. Requires tools and time.",
			timeHours:   6, requiresTools: true, dangerBase: 20,
		}
	case CrossFerry:
		return methodInfo{
			name:        "Take the Ferry",
			description: "Pay for safe passage on a ferry. Safest but costs money.",
			timeHours:   3, cost: 25, dangerBase: 5,
		}
	case CrossBridge:
		return methodInfo{
			name:        "Cross the Bridge",
			description: "Use an available bridge. Safest option when available.",
			timeHours:   1, cost: 5, dangerBase: 2,
		}
	case CrossWait:
		return methodInfo{
			name:        "Wait for Better Conditions",
			description: "Camp and wait for the water level to drop. Uses supplies.",
		}
	default:
		panic(fmt.Sprintf("unknown crossing method: %s", string(m)))
	}
}

func (m CrossingMethod) Name() string { return m.info().name }

// baseSuccessPercent is the method's unmodified success rate.
func (m CrossingMethod) baseSuccessPercent() int {
	switch m {
	case CrossFord:
		return 70
	case CrossCaulk:
		return 80
	case CrossFerry:
		return 95
	case CrossBridge:
		return 99
	case CrossWait:
		return 100
	default:
		panic(fmt.Sprintf("unknown crossing method: %s", string(m)))
	}
}

type RiverCondition string

const (
	RiverLow    RiverCondition = "low"
	RiverNormal RiverCondition = "normal"
	RiverHigh   RiverCondition = "high"
	RiverFlood  RiverCondition = "flood"
)

func (c RiverCondition) successMultiplier() float64 {
	switch c {
	case RiverLow:
		return 1.3
	case RiverNormal:
		return 1.0
	case RiverHigh:
		return 0.6
	case RiverFlood:
		return 0.3
	default:
		panic(fmt.Sprintf("unknown river condition: %s", string(c)))
	}
}

func (c RiverCondition) Description() string {
	switch c {
	case RiverLow:
		return "The water is low, exposing sandbars and rocks."
	case RiverNormal:
		return "The river flows at its usual level."
	case RiverHigh:
		return "Recent rains have swollen the river. It runs swift and high."
	case RiverFlood:
		return "The river is in flood! Brown water races past, carrying debris."
	default:
		panic(fmt.Sprintf("unknown river condition: %s", string(c)))
	}
}

func weatherCrossingMultiplier(w Weather) float64 {
	switch w {
	case WeatherClear:
		return 1.1
	case WeatherCloudy, WeatherHot, WeatherCold:
		return 1.0
	case WeatherRain:
		return 0.8
	case WeatherStorm:
		return 0.5
	case WeatherSnow:
		return 0.9
	case WeatherBlizzard:
		return 0.6
	default:
		panic(fmt.Sprintf("unknown weather: %s", string(w)))
	}
}

type CrossingOutcome string

const (
	OutcomeSuccess     CrossingOutcome = "success"
	OutcomePartialLoss CrossingOutcome = "partial"
	OutcomeMajorLoss   CrossingOutcome = "major"
	OutcomeDisaster    CrossingOutcome = "disaster"
	OutcomeCancelled   CrossingOutcome = "cancelled"
)

// Crossing is a river crossing point on the trail.
type Crossing struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	RiverName       string `json:"river_name"`
	MileMarker      int    `json:"mile_marker"`
	Description     string `json:"description"`
	BaseWidth       int    `json:"base_width"`
	BaseDepth       int    `json:"base_depth"`
	CurrentStrength int    `json:"current_strength"`
	HasFerry        bool   `json:"has_ferry,omitempty"`
	HasBridge       bool   `json:"has_bridge,omitempty"`
	FerryCost       int    `json:"ferry_cost,omitempty"`
	BridgeToll      int    `json:"bridge_toll,omitempty"`
	SpringFloodPct  int    `json:"spring_flood_pct"`
	SummerLowPct    int    `json:"summer_low_pct"`
}

// DetermineCondition derives the river's state from the season and the
// recent weather window. Three or more wet days push the level up a
// notch; a summer dry spell drops it.
func (c *Crossing) DetermineCondition(rng *rand.Rand, season Season, recentRainDays int) RiverCondition {
	var base RiverCondition
	switch season {
	case SeasonSpring:
		if rollPercent(rng) <= c.SpringFloodPct {
			base = RiverHigh
		} else {
			base = RiverNormal
		}
	case SeasonSummer:
		if rollPercent(rng) <= c.SummerLowPct {
			base = RiverLow
		} else {
			base = RiverNormal
		}
	case SeasonFall:
		base = RiverNormal
	case SeasonWinter:
		base = RiverLow
	default:
		panic(fmt.Sprintf("unknown season: %s", string(season)))
	}

	if recentRainDays >= 3 {
		switch base {
		case RiverNormal:
			return RiverHigh
		case RiverHigh:
			return RiverFlood
		}
	} else if recentRainDays == 0 && season == SeasonSummer && base == RiverNormal {
		return RiverLow
	}
	return base
}

// DangerRating scores the crossing for presentation.
func (c *Crossing) DangerRating(condition RiverCondition) int {
	danger := c.CurrentStrength * 5
	switch condition {
	case RiverLow:
		danger -= 15
	case RiverHigh:
		danger += 20
	case RiverFlood:
		danger += 50
	}
	return danger
}

// MethodOption is one crossing choice with its availability computed
// before the player can pick it.
type MethodOption struct {
	Method      CrossingMethod
	Available   bool
	Reason      string
	Cost        int
	TimeHours   int
	Description string
}

// AvailableMethods lists every method at this crossing with whether it
// can be taken and why not.
func (c *Crossing) AvailableMethods(condition RiverCondition, hasTools bool, money int) []MethodOption {
	var options []MethodOption

	fordReason := ""
	if condition == RiverFlood {
		fordReason = "EXTREMELY DANGEROUS in flood conditions!"
	}
	options = append(options, MethodOption{
		Method: CrossFord, Available: true, Reason: fordReason,
		TimeHours: CrossFord.info().timeHours, Description: CrossFord.info().description,
	})

	caulkReason := ""
	if !hasTools {
		caulkReason = "Requires tools"
	}
	options = append(options, MethodOption{
		Method: CrossCaulk, Available: hasTools, Reason: caulkReason,
		TimeHours: CrossCaulk.info().timeHours, Description: CrossCaulk.info().description,
	})

	if c.HasFerry {
		available := money >= c.FerryCost
		reason := ""
		if !available {
			reason = fmt.Sprintf("Need $%d", c.FerryCost)
		}
		if condition == RiverFlood {
			available = false
			reason = "Ferry not operating in flood conditions"
		}
		options = append(options, MethodOption{
			Method: CrossFerry, Available: available, Reason: reason, Cost: c.FerryCost,
			TimeHours: CrossFerry.info().timeHours, Description: CrossFerry.info().description,
		})
	}

	if c.HasBridge {
		available := money >= c.BridgeToll
		reason := ""
		if !available {
			reason = fmt.Sprintf("Need $%d toll", c.BridgeToll)
		}
		options = append(options, MethodOption{
			Method: CrossBridge, Available: available, Reason: reason, Cost: c.BridgeToll,
			TimeHours: CrossBridge.info().timeHours, Description: CrossBridge.info().description,
		})
	}

	options = append(options, MethodOption{
		Method: CrossWait, Available: true, Description: CrossWait.info().description,
	})
	return options
}

// CrossingResult extends the activity record with the crossing outcome
// tier for presentation.
type CrossingResult struct {
	ActivityResult
	Outcome CrossingOutcome
	Method  CrossingMethod
}

// CrossParams gathers the inputs to one crossing attempt.
type CrossParams struct {
	Method       CrossingMethod
	Condition    RiverCondition
	Weather      Weather
	PartyMembers []string
	Supplies     map[ResourceKind]float64
	SkillBonus   int
}

// AttemptCrossing resolves a crossing. Success is one clean roll; a
// failure escalates through partial loss, major loss and disaster based
// on an independent severity draw worsened by high water.
func (c *Crossing) AttemptCrossing(rng *rand.Rand, p CrossParams) CrossingResult {
	info := p.Method.info()

	if p.Method == CrossWait {
		return CrossingResult{
			ActivityResult: NoOpResult("You decide to wait for better conditions."),
			Outcome:        OutcomeCancelled,
			Method:         CrossWait,
		}
	}

	chance := int(float64(p.Method.baseSuccessPercent()) *
		p.Condition.successMultiplier() *
		weatherCrossingMultiplier(p.Weather) *
		(1 + float64(p.SkillBonus)/200))

	details := []string{
		fmt.Sprintf("Attempting to cross via %s...", info.name),
		fmt.Sprintf("River condition: %s", string(p.Condition)),
	}

	moneySpent := info.cost
	switch p.Method {
	case CrossFerry:
		moneySpent = c.FerryCost
	case CrossBridge:
		moneySpent = c.BridgeToll
	}

	out := resolveAttempt(rng, Attempt{
		Chance:    chance,
		MinChance: 5,
		MaxChance: 98,
	})
	details = append(details, fmt.Sprintf("Estimated success: %d%%", out.Chance))

	result := CrossingResult{Method: p.Method}
	result.TimeHours = info.timeHours
	result.MoneySpent = moneySpent

	if out.Success {
		result.Success = true
		result.Outcome = OutcomeSuccess
		result.Message = fmt.Sprintf("Successfully crossed the %s!", c.RiverName)
		result.Details = append(details, "The crossing went smoothly.")
		return result
	}

	severity := float64(rollPercent(rng)) / 100
	switch p.Condition {
	case RiverHigh:
		severity *= 1.3
	case RiverFlood:
		severity *= 2.0
	}

	// Fixed iteration order keeps seeded runs reproducible.
	kinds := make([]ResourceKind, 0, len(p.Supplies))
	for _, kind := range AllResourceKinds() {
		if _, ok := p.Supplies[kind]; ok {
			kinds = append(kinds, kind)
		}
	}

	lost := make(map[ResourceKind]float64)
	switch {
	case severity < 0.5:
		result.Outcome = OutcomePartialLoss
		for _, kind := range kinds {
			if rollPercent(rng) <= 30 {
				if l := float64(int(p.Supplies[kind] * float64(rollBetween(rng, 10, 30)) / 100)); l > 0 {
					lost[kind] = l
				}
			}
		}
		result.Message = fmt.Sprintf("The crossing was rough. Some supplies were lost to the %s.", c.RiverName)
		details = append(details, "Water rushed into the wagon. Some items were swept away.")

	case severity < 0.85:
		result.Outcome = OutcomeMajorLoss
		for _, kind := range kinds {
			if rollPercent(rng) <= 50 {
				if l := float64(int(p.Supplies[kind] * float64(rollBetween(rng, 20, 50)) / 100)); l > 0 {
					lost[kind] = l
				}
			}
		}
		if len(p.PartyMembers) > 0 {
			injured := p.PartyMembers[rng.IntN(len(p.PartyMembers))]
			result.Injured = injured
			result.InjuryDamage = rollBetween(rng, 10, 25)
		}
		result.Message = fmt.Sprintf("Disaster at the %s! Supplies lost and someone was hurt.", c.RiverName)
		details = append(details, "The wagon tipped in the current. Frantic moments of chaos followed.")

	default:
		result.Outcome = OutcomeDisaster
		for _, kind := range kinds {
			if l := float64(int(p.Supplies[kind] * float64(rollBetween(rng, 40, 70)) / 100)); l > 0 {
				lost[kind] = l
			}
		}
		if len(p.PartyMembers) > 0 {
			injured := p.PartyMembers[rng.IntN(len(p.PartyMembers))]
			result.Injured = injured
			result.InjuryDamage = rollBetween(rng, 20, 40)

			deathChance := 15
			if p.Condition == RiverFlood {
				deathChance = 30
			}
			if rollPercent(rng) <= deathChance {
				others := make([]string, 0, len(p.PartyMembers))
				for _, m := range p.PartyMembers {
					if m != injured {
						others = append(others, m)
					}
				}
				if len(others) == 0 {
					others = p.PartyMembers
				}
				result.Deaths = []string{others[rng.IntN(len(others))]}
			}
		}
		result.Message = fmt.Sprintf("Catastrophe! The %s has claimed lives and supplies.", c.RiverName)
		details = append(details, "The river's fury was merciless. Screams were swallowed by rushing water.")
	}

	result.SuppliesLost = lost
	result.Details = details
	return result
}

// WaitForConditions fast-forwards camp days at the river bank. Chance of
// improvement compounds per day waited.
func WaitForConditions(rng *rand.Rand, days int) (bool, string) {
	chance := 100
	remain := 100
	for range days {
		remain = remain * 70 / 100
	}
	chance -= remain
	if rollPercent(rng) <= chance {
		return true, fmt.Sprintf("After %d day(s), the river level has dropped.", days)
	}
	return false, fmt.Sprintf("After %d day(s), conditions remain the same.", days)
}
