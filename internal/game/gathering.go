package game

import (
	"fmt"
	"math/rand/v2"
)

type ForageTarget string

const (
	ForageBerries ForageTarget = "berries"
	ForageHerbs   ForageTarget = "herbs"
	ForageWater   ForageTarget = "water"
)

func AllForageTargets() []ForageTarget {
	return []ForageTarget{ForageBerries, ForageHerbs, ForageWater}
}

func ParseForageTarget(s string) (ForageTarget, error) {
	for _, t := range AllForageTargets() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown forage target %q", s)
}

// forageYield is the base range per terrain, lbs for food and gallons
// for water. A zero max means the terrain has none worth gathering.
func forageYield(terrain Terrain, target ForageTarget) (int, int) {
	type span struct{ lo, hi int }
	var byTarget map[ForageTarget]span
	switch terrain {
	case TerrainDesert:
		byTarget = map[ForageTarget]span{ForageBerries: {0, 2}, ForageHerbs: {0, 1}, ForageWater: {0, 5}}
	case TerrainPlains:
		byTarget = map[ForageTarget]span{ForageBerries: {2, 8}, ForageHerbs: {1, 3}, ForageWater: {5, 15}}
	case TerrainMountains:
		byTarget = map[ForageTarget]span{ForageBerries: {3, 10}, ForageHerbs: {2, 5}, ForageWater: {10, 25}}
	case TerrainForest:
		byTarget = map[ForageTarget]span{ForageBerries: {5, 15}, ForageHerbs: {3, 8}, ForageWater: {10, 20}}
	case TerrainTundra:
		byTarget = map[ForageTarget]span{ForageBerries: {1, 4}, ForageHerbs: {0, 2}, ForageWater: {5, 15}}
	case TerrainRiver:
		byTarget = map[ForageTarget]span{ForageBerries: {2, 8}, ForageHerbs: {1, 4}, ForageWater: {15, 30}}
	default:
		panic(fmt.Sprintf("unknown terrain: %s", string(terrain)))
	}
	s := byTarget[target]
	return s.lo, s.hi
}

func weatherForagingMultiplier(w Weather) float64 {
	switch w {
	case WeatherClear:
		return 1.2
	case WeatherCloudy:
		return 1.0
	case WeatherRain:
		return 0.8
	case WeatherStorm:
		return 0.5
	case WeatherHot:
		return 0.9
	case WeatherCold:
		return 0.8
	case WeatherSnow:
		return 0.6
	case WeatherBlizzard:
		return 0.3
	default:
		panic(fmt.Sprintf("unknown weather: %s", string(w)))
	}
}

func seasonForagingMultiplier(season Season, target ForageTarget) float64 {
	switch season {
	case SeasonSpring:
		switch target {
		case ForageBerries:
			return 0.5
		case ForageHerbs:
			return 1.2
		case ForageWater:
			return 1.0
		}
	case SeasonSummer:
		switch target {
		case ForageBerries:
			return 1.5
		case ForageHerbs:
			return 1.0
		case ForageWater:
			return 0.9
		}
	case SeasonFall:
		switch target {
		case ForageBerries:
			return 1.2
		case ForageHerbs:
			return 0.8
		case ForageWater:
			return 1.0
		}
	case SeasonWinter:
		switch target {
		case ForageBerries:
			return 0.1
		case ForageHerbs:
			return 0.2
		case ForageWater:
			return 1.1
		}
	default:
		panic(fmt.Sprintf("unknown season: %s", string(season)))
	}
	panic(fmt.Sprintf("unknown forage target: %s", string(target)))
}

// CanForage reports whether the terrain offers anything of the target
// kind, with a reason when it does not.
func CanForage(terrain Terrain, target ForageTarget) (bool, string) {
	if _, hi := forageYield(terrain, target); hi == 0 {
		return false, fmt.Sprintf("No %s available in this terrain", string(target))
	}
	return true, ""
}

// ForageParams gathers the inputs to one foraging expedition.
type ForageParams struct {
	Terrain      Terrain
	Weather      Weather
	Season       Season
	Target       ForageTarget
	ForagerSkill int
	PartySize    int
	Mods         DifficultyModifiers
}

// Forage gathers berries, herbs or water. Failure still turns up a
// partial yield; only barren terrain comes back empty-handed.
func Forage(rng *rand.Rand, p ForageParams) ActivityResult {
	ok, reason := CanForage(p.Terrain, p.Target)
	if !ok {
		return ActivityResult{TimeHours: 1, Message: reason, Details: []string{reason}}
	}

	lo, hi := forageYield(p.Terrain, p.Target)

	weatherMult := weatherForagingMultiplier(p.Weather)
	seasonMult := seasonForagingMultiplier(p.Season, p.Target)
	skillMult := 0.5 + float64(p.ForagerSkill)/100
	partyMult := 1 + float64(p.PartySize-1)*0.3
	totalMult := weatherMult * seasonMult * skillMult * partyMult * p.Mods.ForagingYield

	chance := 60 + p.ForagerSkill/3

	timeHours := 3
	if p.Target == ForageWater {
		timeHours = 1
	}

	out := resolveAttempt(rng, Attempt{
		Chance:          chance,
		MinChance:       5,
		MaxChance:       95,
		MinYield:        lo,
		MaxYield:        hi,
		YieldMultiplier: totalMult,
		FailureFraction: 0.3,
	})

	result := ActivityResult{Success: out.Success, TimeHours: timeHours}
	if p.Target == ForageWater {
		result.WaterGained = out.Yield
		result.Details = []string{fmt.Sprintf("Gathered %d gallons of water", out.Yield)}
	} else {
		result.FoodGained = out.Yield
		switch p.Target {
		case ForageBerries:
			result.Details = []string{fmt.Sprintf("Gathered %d lbs of berries and edible plants", out.Yield)}
		case ForageHerbs:
			result.Details = []string{fmt.Sprintf("Gathered %d lbs of edible herbs and roots", out.Yield)}
		}
	}

	switch {
	case out.Success && out.Yield > hi*7/10:
		result.Message = fmt.Sprintf("Excellent foraging! Found plenty of %s.", string(p.Target))
	case out.Success:
		result.Message = fmt.Sprintf("Successfully foraged for %s.", string(p.Target))
	default:
		result.Message = fmt.Sprintf("Foraging was difficult, but you found some %s.", string(p.Target))
	}
	return result
}

type FishingMethod string

const (
	FishLine  FishingMethod = "line"
	FishNet   FishingMethod = "net"
	FishSpear FishingMethod = "spear"
)

func AllFishingMethods() []FishingMethod {
	return []FishingMethod{FishLine, FishNet, FishSpear}
}

func ParseFishingMethod(s string) (FishingMethod, error) {
	for _, m := range AllFishingMethods() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown fishing method %q", s)
}

func (m FishingMethod) yieldRange() (int, int) {
	switch m {
	case FishLine:
		return 2, 10
	case FishNet:
		return 10, 25
	case FishSpear:
		return 5, 15
	default:
		panic(fmt.Sprintf("unknown fishing method: %s", string(m)))
	}
}

func (m FishingMethod) baseSuccess() int {
	switch m {
	case FishLine:
		return 70
	case FishNet:
		return 85
	case FishSpear:
		return 60
	default:
		panic(fmt.Sprintf("unknown fishing method: %s", string(m)))
	}
}

func weatherFishingMultiplier(w Weather) float64 {
	switch w {
	case WeatherClear:
		return 1.2
	case WeatherCloudy:
		return 1.1
	case WeatherRain:
		return 0.9
	case WeatherStorm:
		return 0.5
	case WeatherHot:
		return 1.0
	case WeatherCold:
		return 0.8
	case WeatherSnow:
		return 0.7
	case WeatherBlizzard:
		return 0.3
	default:
		panic(fmt.Sprintf("unknown weather: %s", string(w)))
	}
}

// CanFish checks water and equipment requirements for a method.
func CanFish(waterNearby, hasTools bool, method FishingMethod) (bool, string) {
	if !waterNearby {
		return false, "No suitable water nearby for fishing"
	}
	if method == FishNet && !hasTools {
		return false, "Need tools/equipment to fish with a net"
	}
	return true, ""
}

// FishParams gathers the inputs to one fishing expedition.
type FishParams struct {
	WaterNearby bool
	Method      FishingMethod
	FisherSkill int
	HasTools    bool
	Weather     Weather
	Mods        DifficultyModifiers
}

// Fish works the water with the chosen method. Nets yield best but can
// break; a failed day still lands a small catch.
func Fish(rng *rand.Rand, p FishParams) ActivityResult {
	ok, reason := CanFish(p.WaterNearby, p.HasTools, p.Method)
	if !ok {
		return ActivityResult{TimeHours: 1, Message: reason, Details: []string{reason}}
	}

	details := []string{fmt.Sprintf("Fishing with %s...", string(p.Method))}

	lo, hi := p.Method.yieldRange()
	totalMult := weatherFishingMultiplier(p.Weather) * (0.5 + float64(p.FisherSkill)/100)

	chance := int(float64(p.Method.baseSuccess()+p.FisherSkill/5) * p.Mods.FishingSuccess)

	out := resolveAttempt(rng, Attempt{
		Chance:          chance,
		MinChance:       5,
		MaxChance:       95,
		MinYield:        lo,
		MaxYield:        hi,
		YieldMultiplier: totalMult,
		FailureFraction: 0.2,
	})

	result := ActivityResult{Success: out.Success, FoodGained: out.Yield, TimeHours: 4}

	if p.Method == FishNet && rollPercent(rng) <= 10 {
		details = append(details, "The fishing net was damaged!")
		result.SuppliesLost = map[ResourceKind]float64{ResourceTools: 1}
	}

	switch {
	case out.Success && out.Yield > hi*8/10:
		result.Message = "Excellent catch! The fish are biting well."
	case out.Success:
		result.Message = fmt.Sprintf("Successful fishing with %s.", string(p.Method))
	default:
		result.Message = "The fish weren't biting today."
	}
	details = append(details, fmt.Sprintf("Caught %d lbs of fish", out.Yield))
	result.Details = details
	return result
}
