package game

import "fmt"

type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyNormal  Difficulty = "normal"
	DifficultyHard    Difficulty = "hard"
	DifficultyExtreme Difficulty = "extreme"
)

func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExtreme}
}

func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range AllDifficulties() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// DifficultyModifiers is a pure multiplier table. Components read from it;
// nothing here carries game logic of its own.
type DifficultyModifiers struct {
	Name        string
	Description string

	StartingResources float64
	ResourceDecay     float64
	ConsumptionRate   float64

	EventFrequency      float64
	NegativeEventChance float64

	HealingRate     float64
	DiseaseSeverity float64
	NaturalRecovery float64

	HuntingSuccess float64
	HuntingYield   float64
	ForagingYield  float64
	FishingSuccess float64

	WeatherSeverity float64
	BlizzardChance  float64

	TradePrices float64
}

func (d Difficulty) Modifiers() DifficultyModifiers {
	switch d {
	case DifficultyEasy:
		return DifficultyModifiers{
			Name:                "Easy",
			Description:         "Forgiving journey with ample supplies",
			StartingResources:   1.5,
			ResourceDecay:       0.7,
			ConsumptionRate:     0.85,
			EventFrequency:      0.6,
			NegativeEventChance: 0.7,
			HealingRate:         1.3,
			DiseaseSeverity:     0.7,
			NaturalRecovery:     1.5,
			HuntingSuccess:      1.2,
			HuntingYield:        1.3,
			ForagingYield:       1.3,
			FishingSuccess:      1.2,
			WeatherSeverity:     0.8,
			BlizzardChance:      0.5,
			TradePrices:         0.85,
		}
	case DifficultyNormal:
		return DifficultyModifiers{
			Name:                "Normal",
			Description:         "Balanced challenge for most players",
			StartingResources:   1.0,
			ResourceDecay:       1.0,
			ConsumptionRate:     1.0,
			EventFrequency:      1.0,
			NegativeEventChance: 1.0,
			HealingRate:         1.0,
			DiseaseSeverity:     1.0,
			NaturalRecovery:     1.0,
			HuntingSuccess:      1.0,
			HuntingYield:        1.0,
			ForagingYield:       1.0,
			FishingSuccess:      1.0,
			WeatherSeverity:     1.0,
			BlizzardChance:      1.0,
			TradePrices:         1.0,
		}
	case DifficultyHard:
		return DifficultyModifiers{
			Name:                "Hard",
			Description:         "Harsh wilderness tests your survival skills",
			StartingResources:   0.7,
			ResourceDecay:       1.4,
			ConsumptionRate:     1.15,
			EventFrequency:      1.4,
			NegativeEventChance: 1.3,
			HealingRate:         0.8,
			DiseaseSeverity:     1.3,
			NaturalRecovery:     0.7,
			HuntingSuccess:      0.85,
			HuntingYield:        0.8,
			ForagingYield:       0.8,
			FishingSuccess:      0.85,
			WeatherSeverity:     1.2,
			BlizzardChance:      1.5,
			TradePrices:         1.25,
		}
	case DifficultyExtreme:
		return DifficultyModifiers{
			Name:                "Extreme",
			Description:         "Brutal survival for experts only",
			StartingResources:   0.5,
			ResourceDecay:       1.8,
			ConsumptionRate:     1.3,
			EventFrequency:      1.8,
			NegativeEventChance: 1.5,
			HealingRate:         0.6,
			DiseaseSeverity:     1.6,
			NaturalRecovery:     0.5,
			HuntingSuccess:      0.7,
			HuntingYield:        0.6,
			ForagingYield:       0.6,
			FishingSuccess:      0.7,
			WeatherSeverity:     1.5,
			BlizzardChance:      2.0,
			TradePrices:         1.5,
		}
	default:
		panic(fmt.Sprintf("unknown difficulty: %s", string(d)))
	}
}

type Pace string

const (
	PaceSlow     Pace = "slow"
	PaceSteady   Pace = "steady"
	PaceFast     Pace = "fast"
	PaceGrueling Pace = "grueling"
)

func AllPaces() []Pace {
	return []Pace{PaceSlow, PaceSteady, PaceFast, PaceGrueling}
}

func ParsePace(s string) (Pace, error) {
	for _, p := range AllPaces() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown pace %q", s)
}

// PaceSettings trade travel speed against wear on the party.
type PaceSettings struct {
	Name        string
	Description string

	SpeedModifier    int // percentage points
	HealthDrain      int // per day
	MoraleChange     int // per day
	ExhaustionChance float64

	InjuryChanceMult float64
	HuntingTimeMult  float64
	ScoutingBonus    int
}

func (p Pace) Settings() PaceSettings {
	switch p {
	case PaceSlow:
		return PaceSettings{
			Name:             "Slow and Careful",
			Description:      "Cautious travel, safer but slower progress",
			SpeedModifier:    -30,
			MoraleChange:     2,
			InjuryChanceMult: 0.6,
			HuntingTimeMult:  1.3,
			ScoutingBonus:    5,
		}
	case PaceSteady:
		return PaceSettings{
			Name:             "Steady Pace",
			Description:      "Normal, sustainable travel pace",
			InjuryChanceMult: 1.0,
			HuntingTimeMult:  1.0,
		}
	case PaceFast:
		return PaceSettings{
			Name:             "Fast Pace",
			Description:      "Pushed pace, good progress but tiring",
			SpeedModifier:    20,
			HealthDrain:      2,
			MoraleChange:     -3,
			ExhaustionChance: 0.15,
			InjuryChanceMult: 1.3,
			HuntingTimeMult:  0.7,
			ScoutingBonus:    -5,
		}
	case PaceGrueling:
		return PaceSettings{
			Name:             "Grueling Pace",
			Description:      "Maximum speed, dangerous and exhausting",
			SpeedModifier:    40,
			HealthDrain:      5,
			MoraleChange:     -8,
			ExhaustionChance: 0.35,
			InjuryChanceMult: 1.8,
			HuntingTimeMult:  0.4,
			ScoutingBonus:    -10,
		}
	default:
		panic(fmt.Sprintf("unknown pace: %s", string(p)))
	}
}
