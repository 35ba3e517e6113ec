package game

import "fmt"

// Snapshot is the complete serializable state of a run. Content-pack
// data (events, locations, crossings) is not stored; Restore rebinds
// it from the loaded pack.
type Snapshot struct {
	Seed           int64          `json:"seed"`
	Difficulty     Difficulty     `json:"difficulty"`
	Pace           Pace           `json:"pace"`
	Date           GameDate       `json:"date"`
	Weather        Weather        `json:"weather"`
	WeatherHistory []Weather      `json:"weather_history,omitempty"`
	Party          *Party         `json:"party"`
	Kit            *Kit           `json:"equipment"`
	Trail          *Trail         `json:"trail"`
	Events         *EventState    `json:"events"`
	CrossingID     string         `json:"crossing_id,omitempty"`
	RiverCondition RiverCondition `json:"river_condition,omitempty"`
	ForkID         string         `json:"fork_id,omitempty"`
	DetourMiles    int            `json:"detour_miles,omitempty"`
}

// Snapshot captures the engine's state for persistence.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Seed:           e.seed,
		Difficulty:     e.Difficulty,
		Pace:           e.Pace,
		Date:           e.Date,
		Weather:        e.Sky.Current,
		WeatherHistory: e.Sky.History,
		Party:          e.Party,
		Kit:            e.Kit,
		Trail:          e.Trail,
		Events:         e.Events,
	}
	if e.atCrossing != nil {
		snap.CrossingID = e.atCrossing.ID
		snap.RiverCondition = e.riverCondition
	}
	if e.atFork != nil {
		snap.ForkID = e.atFork.ID
	}
	snap.DetourMiles = e.detourMiles
	return snap
}

// ContentPack carries the static data a restored engine must rebind.
type ContentPack struct {
	Events    []Event
	Locations []Location
	Crossings []Crossing
	Forks     []RouteFork
}

// Restore rebuilds an engine from a snapshot. Missing subsystems fall
// back to fresh defaults so older saves still load.
func Restore(snap Snapshot, pack ContentPack) (*Engine, error) {
	if snap.Party == nil {
		return nil, fmt.Errorf("snapshot has no party")
	}

	trail, err := NewTrail(pack.Locations, pack.Crossings, pack.Forks)
	if err != nil {
		return nil, fmt.Errorf("rebuilding trail: %w", err)
	}
	if snap.Trail != nil {
		trail.MilesTraveled = snap.Trail.MilesTraveled
		trail.LocationIndex = clamp(snap.Trail.LocationIndex, 0, len(trail.Locations)-1)
		trail.Cleared = snap.Trail.Cleared
		trail.RoutesTaken = snap.Trail.RoutesTaken
	}

	sky := NewSky()
	if snap.Weather != "" {
		sky.Current = snap.Weather
	}
	sky.History = snap.WeatherHistory

	date := snap.Date
	if date.Year == 0 {
		date = NewGameDate()
	}

	difficulty := snap.Difficulty
	if difficulty == "" {
		difficulty = DifficultyNormal
	}
	pace := snap.Pace
	if pace == "" {
		pace = PaceSteady
	}

	kit := snap.Kit
	if kit == nil || len(kit.Items) == 0 {
		kit = StartingKit(len(snap.Party.Members), difficulty)
	}

	events := NewEventState(pack.Events)
	if snap.Events != nil {
		events.Recent = snap.Events.Recent
		events.History = snap.Events.History
	}

	e := &Engine{
		Party:      snap.Party,
		Trail:      trail,
		Sky:        sky,
		Date:       date,
		Difficulty: difficulty,
		Pace:       pace,
		Kit:        kit,
		Events:     events,
		rng:        SeededRNG(snap.Seed + int64(snap.Party.DaysTraveled)),
		seed:       snap.Seed,
	}

	if snap.CrossingID != "" {
		for i := range trail.Crossings {
			if trail.Crossings[i].ID == snap.CrossingID {
				e.atCrossing = &trail.Crossings[i]
				e.riverCondition = snap.RiverCondition
				break
			}
		}
	}
	if snap.ForkID != "" {
		for i := range trail.Forks {
			if trail.Forks[i].ID == snap.ForkID {
				e.atFork = &trail.Forks[i]
				break
			}
		}
	}
	e.detourMiles = snap.DetourMiles
	return e, nil
}
