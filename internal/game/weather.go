package game

import (
	"fmt"
	"math/rand/v2"
)

type Weather string

const (
	WeatherClear    Weather = "clear"
	WeatherCloudy   Weather = "cloudy"
	WeatherRain     Weather = "rain"
	WeatherStorm    Weather = "storm"
	WeatherHot      Weather = "hot"
	WeatherCold     Weather = "cold"
	WeatherSnow     Weather = "snow"
	WeatherBlizzard Weather = "blizzard"
)

func AllWeathers() []Weather {
	return []Weather{
		WeatherClear, WeatherCloudy, WeatherRain, WeatherStorm,
		WeatherHot, WeatherCold, WeatherSnow, WeatherBlizzard,
	}
}

// WeatherEffects are the day's cross-cutting weather modifiers.
type WeatherEffects struct {
	SpeedModifier  int // percentage points
	MoraleModifier int
	HealthRisk     int
	Description    string
}

func (w Weather) Effects() WeatherEffects {
	switch w {
	case WeatherClear:
		return WeatherEffects{Description: "Clear skies"}
	case WeatherCloudy:
		return WeatherEffects{Description: "Overcast skies"}
	case WeatherRain:
		return WeatherEffects{SpeedModifier: -15, MoraleModifier: -5, HealthRisk: 5, Description: "Steady rain"}
	case WeatherStorm:
		return WeatherEffects{SpeedModifier: -30, MoraleModifier: -10, HealthRisk: 15, Description: "Heavy storm"}
	case WeatherHot:
		return WeatherEffects{SpeedModifier: -10, MoraleModifier: -5, HealthRisk: 10, Description: "Scorching heat"}
	case WeatherCold:
		return WeatherEffects{SpeedModifier: -10, MoraleModifier: -5, HealthRisk: 10, Description: "Bitter cold"}
	case WeatherSnow:
		return WeatherEffects{SpeedModifier: -25, MoraleModifier: -5, HealthRisk: 15, Description: "Snowfall"}
	case WeatherBlizzard:
		return WeatherEffects{SpeedModifier: -50, MoraleModifier: -15, HealthRisk: 30, Description: "Deadly blizzard"}
	default:
		panic(fmt.Sprintf("unknown weather: %s", string(w)))
	}
}

// DecayMultiplier scales daily spoilage. Cold preserves, heat and wet spoil.
func (w Weather) DecayMultiplier() float64 {
	switch w {
	case WeatherClear, WeatherCloudy:
		return 1.0
	case WeatherRain:
		return 1.5
	case WeatherStorm:
		return 2.0
	case WeatherSnow, WeatherBlizzard, WeatherCold:
		return 0.5
	case WeatherHot:
		return 2.5
	default:
		panic(fmt.Sprintf("unknown weather: %s", string(w)))
	}
}

func (w Weather) IsSevere() bool {
	return w == WeatherStorm || w == WeatherBlizzard
}

// DangerFactor feeds event trigger probability.
func (w Weather) DangerFactor() float64 {
	if w.IsSevere() {
		return 1.3
	}
	return 1.0
}

// weatherHistoryLimit bounds the rolling history consumed by river
// condition logic.
const weatherHistoryLimit = 5

// Sky holds the current weather and its bounded recent history.
type Sky struct {
	Current Weather
	History []Weather // most recent last, at most weatherHistoryLimit
}

func NewSky() *Sky {
	return &Sky{Current: WeatherClear}
}

func (s *Sky) push(w Weather) {
	s.Current = w
	s.History = append(s.History, w)
	if len(s.History) > weatherHistoryLimit {
		s.History = s.History[len(s.History)-weatherHistoryLimit:]
	}
}

// RecentRainDays counts rain or storm days in the history window.
func (s *Sky) RecentRainDays() int {
	count := 0
	for _, w := range s.History {
		if w == WeatherRain || w == WeatherStorm {
			count++
		}
	}
	return count
}

func seasonBaseWeights(season Season) map[Weather]int {
	switch season {
	case SeasonSpring:
		return map[Weather]int{
			WeatherClear: 30, WeatherCloudy: 25, WeatherRain: 25,
			WeatherStorm: 10, WeatherCold: 5, WeatherSnow: 5,
		}
	case SeasonSummer:
		return map[Weather]int{
			WeatherClear: 40, WeatherCloudy: 20, WeatherRain: 15,
			WeatherStorm: 10, WeatherHot: 15,
		}
	case SeasonFall:
		return map[Weather]int{
			WeatherClear: 30, WeatherCloudy: 30, WeatherRain: 20,
			WeatherStorm: 5, WeatherCold: 10, WeatherSnow: 5,
		}
	case SeasonWinter:
		return map[Weather]int{
			WeatherClear: 20, WeatherCloudy: 20, WeatherCold: 25,
			WeatherSnow: 20, WeatherBlizzard: 10, WeatherStorm: 5,
		}
	default:
		panic(fmt.Sprintf("unknown season: %s", string(season)))
	}
}

// GenerateWeather draws the day's weather from the season table, skewed by
// terrain and elevation, then pushes it onto the history. Draw order over
// AllWeathers is fixed so a seed reproduces the sequence.
func (s *Sky) GenerateWeather(rng *rand.Rand, season Season, terrain Terrain, elevation int, blizzardChance float64) Weather {
	weights := seasonBaseWeights(season)

	adjusted := make(map[Weather]int, len(weights))
	for w, v := range weights {
		adjusted[w] = v
	}

	switch terrain {
	case TerrainMountains:
		adjusted[WeatherStorm] += 10
		if elevation > 8000 {
			adjusted[WeatherSnow] += 15
		}
	case TerrainDesert:
		adjusted[WeatherHot] += 20
		adjusted[WeatherRain] -= 15
		if adjusted[WeatherRain] < 0 {
			adjusted[WeatherRain] = 0
		}
	case TerrainTundra:
		adjusted[WeatherCold] += 20
		adjusted[WeatherSnow] += 15
		adjusted[WeatherBlizzard] += 5
	}

	if blizzardChance != 1.0 {
		adjusted[WeatherBlizzard] = int(float64(adjusted[WeatherBlizzard]) * blizzardChance)
	}

	ordered := AllWeathers()
	flat := make([]int, len(ordered))
	for i, w := range ordered {
		flat[i] = adjusted[w]
	}

	chosen := WeatherClear
	if idx := weightedIndex(rng, flat); idx >= 0 {
		chosen = ordered[idx]
	}
	s.push(chosen)
	return chosen
}
