package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// EventOutcome is one possible result of an event choice, drawn by
// cumulative chance.
type EventOutcome struct {
	Chance      int            `json:"chance"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Effects     map[string]int `json:"effects,omitempty"`
}

// EventRequirement is a skill or resource floor gating a choice.
type EventRequirement struct {
	Skill    string `json:"skill,omitempty"`
	Resource string `json:"resource,omitempty"`
	MinValue int    `json:"min_value,omitempty"`
}

// EventChoice is one option the player may take during an event.
type EventChoice struct {
	ID           string            `json:"id"`
	Text         string            `json:"text"`
	Requirements *EventRequirement `json:"requirements,omitempty"`
	Outcomes     []EventOutcome    `json:"outcomes"`
}

// EventContext carries the party state requirement checks read from.
type EventContext struct {
	Skills    map[string]int
	Resources map[ResourceKind]float64
}

// CheckRequirements reports whether the choice can be taken and why not.
func (c *EventChoice) CheckRequirements(ctx EventContext) (bool, string) {
	req := c.Requirements
	if req == nil {
		return true, ""
	}
	if req.Skill != "" {
		if ctx.Skills[req.Skill] < req.MinValue {
			return false, fmt.Sprintf("Requires %s skill of %d+", req.Skill, req.MinValue)
		}
	}
	if req.Resource != "" {
		if ctx.Resources[ResourceKind(req.Resource)] < float64(req.MinValue) {
			return false, fmt.Sprintf("Requires %d+ %s", req.MinValue, req.Resource)
		}
	}
	return true, ""
}

// Resolve draws one outcome by cumulative chance. An empty outcome list
// resolves to a harmless default.
func (c *EventChoice) Resolve(rng *rand.Rand) EventOutcome {
	if len(c.Outcomes) == 0 {
		return EventOutcome{Chance: 100, Type: "success", Description: "Nothing happens."}
	}
	roll := rollPercent(rng)
	cumulative := 0
	for _, o := range c.Outcomes {
		cumulative += o.Chance
		if roll <= cumulative {
			return o
		}
	}
	return c.Outcomes[len(c.Outcomes)-1]
}

// Event is a random trail event with a terrain/season filter, a
// selection weight and the choices it offers.
type Event struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Terrains    []string      `json:"terrain,omitempty"`
	Seasons     []string      `json:"season,omitempty"`
	Regions     []string      `json:"regions,omitempty"`
	Weight      int           `json:"weight"`
	Choices     []EventChoice `json:"choices"`
}

// Matches reports whether the event can fire under the given
// conditions. Empty filter lists match anything.
func (e *Event) Matches(terrain Terrain, season Season, region string) bool {
	if len(e.Terrains) > 0 && !slices.Contains(e.Terrains, string(terrain)) {
		return false
	}
	if len(e.Seasons) > 0 && !slices.Contains(e.Seasons, string(season)) {
		return false
	}
	if len(e.Regions) > 0 && region != "" && !slices.Contains(e.Regions, region) {
		return false
	}
	return true
}

// ChoiceOption pairs a choice with its computed availability.
type ChoiceOption struct {
	Choice    *EventChoice
	Available bool
	Reason    string
}

// AvailableChoices evaluates every choice's requirements ahead of
// selection.
func (e *Event) AvailableChoices(ctx EventContext) []ChoiceOption {
	options := make([]ChoiceOption, len(e.Choices))
	for i := range e.Choices {
		available, reason := e.Choices[i].CheckRequirements(ctx)
		options[i] = ChoiceOption{Choice: &e.Choices[i], Available: available, Reason: reason}
	}
	return options
}

// eventCooldown is how many events must pass before an id may repeat.
const eventCooldown = 3

// EventState tracks the rolling cooldown window and event history.
type EventState struct {
	Events  []Event  `json:"-"`
	Recent  []string `json:"recent,omitempty"`
	History []string `json:"history,omitempty"`
}

func NewEventState(events []Event) *EventState {
	return &EventState{Events: events}
}

// Eligible filters events by cooldown and conditions.
func (s *EventState) Eligible(terrain Terrain, season Season, region string) []*Event {
	var eligible []*Event
	for i := range s.Events {
		e := &s.Events[i]
		if slices.Contains(s.Recent, e.ID) {
			continue
		}
		if !e.Matches(terrain, season, region) {
			continue
		}
		eligible = append(eligible, e)
	}
	return eligible
}

// SelectEvent weighted-draws one eligible event, or nil when nothing
// can fire.
func (s *EventState) SelectEvent(rng *rand.Rand, terrain Terrain, season Season, region string) *Event {
	eligible := s.Eligible(terrain, season, region)
	if len(eligible) == 0 {
		return nil
	}
	weights := make([]int, len(eligible))
	for i, e := range eligible {
		weights[i] = e.Weight
	}
	if idx := weightedIndex(rng, weights); idx >= 0 {
		return eligible[idx]
	}
	return eligible[len(eligible)-1]
}

// ShouldTrigger rolls the day's event gate. Scouting suppresses,
// dangerous terrain and weather amplify.
func (s *EventState) ShouldTrigger(rng *rand.Rand, baseChance float64, scoutBonus int, terrainDanger, weatherDanger float64) bool {
	chance := baseChance * (1 - float64(scoutBonus)/200) * terrainDanger * weatherDanger
	return float64(rollPercent(rng)) <= chance*100
}

// ResolveChoice resolves a selected choice, records it and refreshes
// the cooldown window.
func (s *EventState) ResolveChoice(rng *rand.Rand, event *Event, choiceIndex int, ctx EventContext) (EventOutcome, error) {
	if choiceIndex < 0 || choiceIndex >= len(event.Choices) {
		return EventOutcome{}, fmt.Errorf("invalid choice index %d", choiceIndex)
	}
	choice := &event.Choices[choiceIndex]
	if available, reason := choice.CheckRequirements(ctx); !available {
		return EventOutcome{}, fmt.Errorf("cannot select this choice: %s", reason)
	}
	outcome := choice.Resolve(rng)

	s.History = append(s.History, event.ID)
	s.Recent = append(s.Recent, event.ID)
	if len(s.Recent) > eventCooldown {
		s.Recent = s.Recent[len(s.Recent)-eventCooldown:]
	}
	return outcome, nil
}

// EffectReport lists what an outcome's effects did to the party.
type EffectReport struct {
	Messages   []string
	MilesBonus int
	DaysLost   int
}

// ApplyEffects applies an outcome's effect map to the party: resource
// deltas, spread damage, healing, morale swings, conditions and lost
// time.
func ApplyEffects(rng *rand.Rand, effects map[string]int, party *Party) EffectReport {
	var report EffectReport
	if len(effects) == 0 {
		return report
	}

	type resourceEffect struct {
		kind ResourceKind
		gain bool
	}
	resourceEffects := map[string]resourceEffect{
		"food_gained":     {ResourceFood, true},
		"food_lost":       {ResourceFood, false},
		"water_gained":    {ResourceWater, true},
		"water_lost":      {ResourceWater, false},
		"ammo_gained":     {ResourceAmmunition, true},
		"ammo_lost":       {ResourceAmmunition, false},
		"medical_gained":  {ResourceMedical, true},
		"medical_lost":    {ResourceMedical, false},
		"money_gained":    {ResourceMoney, true},
		"money_lost":      {ResourceMoney, false},
		"clothing_gained": {ResourceClothing, true},
		"clothing_lost":   {ResourceClothing, false},
		"tools_lost":      {ResourceTools, false},
	}

	// Fixed iteration order keeps seeded runs reproducible.
	names := make([]string, 0, len(effects))
	for name := range effects {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		amount := effects[name]
		if re, ok := resourceEffects[name]; ok {
			if re.gain {
				party.Ledger.Add(re.kind, float64(amount))
				report.Messages = append(report.Messages, fmt.Sprintf("Gained %d %s", amount, re.kind.Name()))
			} else {
				party.Ledger.Remove(re.kind, float64(amount))
				report.Messages = append(report.Messages, fmt.Sprintf("Lost %d %s", amount, re.kind.Name()))
			}
			continue
		}
		switch name {
		case "health_damage":
			alive := party.AliveMembers()
			if len(alive) > 0 {
				per := amount / len(alive)
				for _, m := range alive {
					m.TakeDamage(per)
				}
				report.Messages = append(report.Messages, fmt.Sprintf("Party took %d damage", amount))
			}
		case "health_healed":
			party.HealParty(amount)
			report.Messages = append(report.Messages, fmt.Sprintf("Party healed %d HP", amount))
		case "morale":
			party.ChangeMorale(amount)
			if amount > 0 {
				report.Messages = append(report.Messages, fmt.Sprintf("Morale increased by %d", amount))
			} else if amount < 0 {
				report.Messages = append(report.Messages, fmt.Sprintf("Morale decreased by %d", -amount))
			}
		case "condition_injured":
			if float64(rollPercent(rng)) <= float64(amount) {
				alive := party.AliveMembers()
				if len(alive) > 0 {
					target := alive[rng.IntN(len(alive))]
					target.AddCondition(ConditionInjured)
					report.Messages = append(report.Messages, fmt.Sprintf("%s was injured", target.Name))
				}
			}
		case "condition_dysentery":
			if float64(rollPercent(rng)) <= float64(amount) {
				alive := party.AliveMembers()
				if len(alive) > 0 {
					target := alive[rng.IntN(len(alive))]
					target.AddCondition(ConditionDysentery)
					report.Messages = append(report.Messages, fmt.Sprintf("%s contracted dysentery", target.Name))
				}
			}
		case "days_lost":
			report.DaysLost = amount
			report.Messages = append(report.Messages, fmt.Sprintf("Lost %d day(s)", amount))
		case "miles_bonus":
			report.MilesBonus = amount
			report.Messages = append(report.Messages, fmt.Sprintf("Travel bonus: %d miles", amount))
		}
	}
	return report
}
