package game

import "fmt"

type Terrain string

const (
	TerrainPlains    Terrain = "plains"
	TerrainForest    Terrain = "forest"
	TerrainMountains Terrain = "mountains"
	TerrainDesert    Terrain = "desert"
	TerrainTundra    Terrain = "tundra"
	TerrainRiver     Terrain = "river"
)

func AllTerrains() []Terrain {
	return []Terrain{TerrainPlains, TerrainForest, TerrainMountains, TerrainDesert, TerrainTundra, TerrainRiver}
}

func (t Terrain) Name() string {
	switch t {
	case TerrainPlains:
		return "Plains"
	case TerrainForest:
		return "Forest"
	case TerrainMountains:
		return "Mountains"
	case TerrainDesert:
		return "Desert"
	case TerrainTundra:
		return "Tundra"
	case TerrainRiver:
		return "River Valley"
	default:
		panic(fmt.Sprintf("unknown terrain: %s", string(t)))
	}
}

// ConsumptionMultiplier scales daily food/water needs for the terrain.
// Deserts double water; mountains and tundra demand more calories; forest
// and river valleys offer easy water.
func (t Terrain) ConsumptionMultiplier(kind ResourceKind) float64 {
	switch t {
	case TerrainDesert:
		if kind == ResourceWater {
			return 2.0
		}
		return 1.0
	case TerrainPlains:
		return 1.0
	case TerrainMountains:
		if kind == ResourceFood {
			return 1.5
		}
		return 1.0
	case TerrainForest:
		if kind == ResourceWater {
			return 0.8
		}
		return 1.0
	case TerrainTundra:
		switch kind {
		case ResourceWater:
			return 0.5
		case ResourceFood:
			return 1.5
		}
		return 1.0
	case TerrainRiver:
		if kind == ResourceWater {
			return 0.5
		}
		return 1.0
	default:
		panic(fmt.Sprintf("unknown terrain: %s", string(t)))
	}
}

// BaseMilesPerDay is the unmodified daily travel distance.
func (t Terrain) BaseMilesPerDay() int {
	switch t {
	case TerrainPlains:
		return 18
	case TerrainForest:
		return 14
	case TerrainMountains:
		return 10
	case TerrainDesert:
		return 15
	case TerrainTundra:
		return 12
	case TerrainRiver:
		return 16
	default:
		panic(fmt.Sprintf("unknown terrain: %s", string(t)))
	}
}

// HuntingModifier is the percentage-point adjustment to hunting success.
func (t Terrain) HuntingModifier() int {
	switch t {
	case TerrainDesert:
		return -30
	case TerrainPlains:
		return 10
	case TerrainMountains:
		return -10
	case TerrainForest:
		return 20
	case TerrainTundra:
		return -20
	case TerrainRiver:
		return 5
	default:
		panic(fmt.Sprintf("unknown terrain: %s", string(t)))
	}
}

// DangerFactor feeds event trigger probability; harsher country breeds
// more trouble.
func (t Terrain) DangerFactor() float64 {
	switch t {
	case TerrainMountains, TerrainTundra:
		return 1.2
	case TerrainDesert:
		return 1.1
	default:
		return 1.0
	}
}

// Hazards names the hazard types native to the terrain.
func (t Terrain) Hazards() []string {
	switch t {
	case TerrainPlains:
		return []string{"wildlife"}
	case TerrainForest:
		return []string{"wildlife", "lost"}
	case TerrainMountains:
		return []string{"avalanche", "altitude", "rockslide", "injury"}
	case TerrainDesert:
		return []string{"dehydration", "heat"}
	case TerrainTundra:
		return []string{"cold", "frostbite", "crevasse"}
	case TerrainRiver:
		return []string{"river_crossing"}
	default:
		panic(fmt.Sprintf("unknown terrain: %s", string(t)))
	}
}
