package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

type Animal string

const (
	AnimalRabbit       Animal = "rabbit"
	AnimalWaterfowl    Animal = "waterfowl"
	AnimalDeer         Animal = "deer"
	AnimalElk          Animal = "elk"
	AnimalMountainGoat Animal = "mountain_goat"
	AnimalBison        Animal = "bison"
	AnimalMoose        Animal = "moose"
	AnimalBear         Animal = "bear"
)

func AllAnimals() []Animal {
	return []Animal{
		AnimalRabbit, AnimalWaterfowl, AnimalDeer, AnimalElk,
		AnimalMountainGoat, AnimalBison, AnimalMoose, AnimalBear,
	}
}

type animalData struct {
	name       string
	yieldMin   int
	yieldMax   int
	difficulty int
	ammoMin    int
	ammoMax    int
	danger     int
	terrains   []Terrain
}

func (a Animal) data() animalData {
	switch a {
	case AnimalRabbit:
		return animalData{
			name: "Rabbit", yieldMin: 5, yieldMax: 10, difficulty: 20,
			ammoMin: 1, ammoMax: 2,
			terrains: []Terrain{TerrainPlains, TerrainForest, TerrainMountains, TerrainDesert},
		}
	case AnimalWaterfowl:
		return animalData{
			name: "Waterfowl", yieldMin: 8, yieldMax: 15, difficulty: 35,
			ammoMin: 2, ammoMax: 4,
			terrains: []Terrain{TerrainPlains, TerrainForest},
		}
	case AnimalDeer:
		return animalData{
			name: "Deer", yieldMin: 30, yieldMax: 50, difficulty: 40,
			ammoMin: 2, ammoMax: 4, danger: 5,
			terrains: []Terrain{TerrainForest, TerrainPlains, TerrainMountains},
		}
	case AnimalElk:
		return animalData{
			name: "Elk", yieldMin: 100, yieldMax: 150, difficulty: 50,
			ammoMin: 3, ammoMax: 6, danger: 10,
			terrains: []Terrain{TerrainForest, TerrainMountains},
		}
	case AnimalMountainGoat:
		return animalData{
			name: "Mountain Goat", yieldMin: 40, yieldMax: 60, difficulty: 60,
			ammoMin: 2, ammoMax: 5, danger: 15,
			terrains: []Terrain{TerrainMountains, TerrainTundra},
		}
	case AnimalBison:
		return animalData{
			name: "Bison", yieldMin: 200, yieldMax: 400, difficulty: 55,
			ammoMin: 4, ammoMax: 8, danger: 20,
			terrains: []Terrain{TerrainPlains},
		}
	case AnimalMoose:
		return animalData{
			name: "Moose", yieldMin: 150, yieldMax: 250, difficulty: 50,
			ammoMin: 3, ammoMax: 6, danger: 25,
			terrains: []Terrain{TerrainForest, TerrainTundra},
		}
	case AnimalBear:
		return animalData{
			name: "Bear", yieldMin: 150, yieldMax: 200, difficulty: 65,
			ammoMin: 5, ammoMax: 10, danger: 40,
			terrains: []Terrain{TerrainForest, TerrainMountains},
		}
	default:
		panic(fmt.Sprintf("unknown animal: %s", string(a)))
	}
}

func (a Animal) Name() string {
	return a.data().name
}

// injuryRange keys severity to the target. Bigger game hits harder.
func (a Animal) injuryRange() (int, int) {
	switch a {
	case AnimalBear, AnimalMoose, AnimalBison:
		return 20, 40
	case AnimalElk, AnimalMountainGoat:
		return 10, 25
	default:
		return 5, 15
	}
}

func weatherHuntingModifier(w Weather) int {
	switch w {
	case WeatherClear:
		return 10
	case WeatherCloudy:
		return 5
	case WeatherRain:
		return -15
	case WeatherStorm:
		return -40
	case WeatherHot:
		return -10
	case WeatherCold:
		return -5
	case WeatherSnow:
		return -25
	case WeatherBlizzard:
		return -50
	default:
		panic(fmt.Sprintf("unknown weather: %s", string(w)))
	}
}

// AvailableGame lists the animals found in a terrain.
func AvailableGame(terrain Terrain) []Animal {
	var available []Animal
	for _, a := range AllAnimals() {
		if slices.Contains(a.data().terrains, terrain) {
			available = append(available, a)
		}
	}
	return available
}

// selectGame picks the animal encountered. Weights run inverse to
// difficulty; skilled hunters find bigger game, and a careful hunter
// shies away from the dangerous kind. Empty terrain yields no animal.
func selectGame(rng *rand.Rand, terrain Terrain, hunterSkill int, preferSafe bool) (Animal, bool) {
	available := AvailableGame(terrain)
	if len(available) == 0 {
		return "", false
	}

	weights := make([]int, len(available))
	for i, a := range available {
		data := a.data()
		weight := float64(max(10, 100-data.difficulty))
		if hunterSkill > 50 {
			skillBonus := float64(hunterSkill-50) / 50
			weight += float64(data.yieldMax) * skillBonus * 0.1
		}
		if preferSafe && data.danger > 20 {
			weight *= 0.3
		}
		weights[i] = max(1, int(weight))
	}

	if idx := weightedIndex(rng, weights); idx >= 0 {
		return available[idx], true
	}
	return available[0], true
}

// huntSuccessChance folds skill against the animal with terrain, weather
// and style adjustments, clamped to [5,95].
func huntSuccessChance(animal Animal, hunterSkill int, terrain Terrain, weather Weather, style Style) int {
	chance := hunterSkill - animal.data().difficulty + 50 +
		terrain.HuntingModifier() + weatherHuntingModifier(weather) +
		style.modifiers().successMod
	if chance < 5 {
		return 5
	}
	if chance > 95 {
		return 95
	}
	return chance
}

const minHuntingAmmo = 2

// HuntParams gathers the inputs to one hunting expedition.
type HuntParams struct {
	Terrain       Terrain
	Weather       Weather
	HunterSkill   int
	AmmoAvailable int
	Style         Style
	Mods          DifficultyModifiers
}

// Hunt runs one expedition through the shared resolver and reports the
// food taken, ammunition spent and any mauling received.
func Hunt(rng *rand.Rand, p HuntParams) ActivityResult {
	style := p.Style.modifiers()

	if p.AmmoAvailable < minHuntingAmmo {
		return ActivityResult{
			TimeHours: 1,
			Message:   "Not enough ammunition to hunt!",
			Details:   []string{"You need at least 2 rounds of ammunition."},
		}
	}

	animal, found := selectGame(rng, p.Terrain, p.HunterSkill, p.Style == StyleConservative)
	if !found {
		return ActivityResult{
			TimeHours: style.timeHours,
			Message:   "No game could be found in this area.",
			Details:   []string{fmt.Sprintf("The %s terrain offers little in the way of wildlife.", p.Terrain.Name())},
		}
	}

	data := animal.data()
	details := []string{fmt.Sprintf("Tracking %s...", strings.ToLower(data.name))}

	chance := huntSuccessChance(animal, p.HunterSkill, p.Terrain, p.Weather, p.Style)
	chance = int(float64(chance) * p.Mods.HuntingSuccess)
	details = append(details, fmt.Sprintf("Estimated success chance: %d%%", chance))

	injuryMin, injuryMax := animal.injuryRange()
	out := resolveAttempt(rng, Attempt{
		Chance:          chance,
		MinChance:       5,
		MaxChance:       95,
		MinYield:        data.yieldMin,
		MaxYield:        data.yieldMax,
		YieldMultiplier: style.yieldMult * p.Mods.HuntingYield,
		DangerChance:    float64(data.danger) * style.dangerMult,
		MinInjury:       injuryMin,
		MaxInjury:       injuryMax,
		MinCost:         data.ammoMin,
		MaxCost:         data.ammoMax,
		CostMultiplier:  style.costMult,
		CostAvailable:   p.AmmoAvailable,
	})

	result := ActivityResult{
		Success:      out.Success,
		AmmoUsed:     out.Cost,
		TimeHours:    style.timeHours,
		InjuryDamage: out.InjuryDamage,
	}
	lower := strings.ToLower(data.name)

	if out.Success {
		result.FoodGained = out.Yield
		if out.Injured {
			result.Message = fmt.Sprintf("Brought down a %s, but the hunter was injured in the process!", lower)
			details = append(details,
				fmt.Sprintf("The %s fought back before going down.", lower),
				fmt.Sprintf("Hunter took %d damage.", out.InjuryDamage))
		} else {
			result.Message = fmt.Sprintf("Successfully hunted a %s!", lower)
		}
		details = append(details,
			fmt.Sprintf("Gained %d lbs of meat.", result.FoodGained),
			fmt.Sprintf("Used %d ammunition.", result.AmmoUsed))
	} else {
		if out.Injured {
			result.Message = "The hunt failed, and the hunter was injured!"
			details = append(details,
				fmt.Sprintf("The %s attacked during the failed hunt.", lower),
				fmt.Sprintf("Hunter took %d damage.", out.InjuryDamage))
		} else {
			result.Message = fmt.Sprintf("The %s escaped.", lower)
		}
		details = append(details, fmt.Sprintf("Wasted %d ammunition.", result.AmmoUsed))
	}
	result.Details = details
	return result
}
