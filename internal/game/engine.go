package game

import (
	"fmt"
	"math/rand/v2"
)

// Action is the day's chosen command.
type Action string

const (
	ActionTravel     Action = "travel"
	ActionRest       Action = "rest"
	ActionHunt       Action = "hunt"
	ActionForage     Action = "forage"
	ActionFish       Action = "fish"
	ActionCrossRiver Action = "cross"
	ActionRoute      Action = "route"
	ActionTrade      Action = "trade"
	ActionWait       Action = "wait"
)

func AllActions() []Action {
	return []Action{
		ActionTravel, ActionRest, ActionHunt, ActionForage,
		ActionFish, ActionCrossRiver, ActionRoute, ActionTrade, ActionWait,
	}
}

// DayCommand is one day's decision with its parameters.
type DayCommand struct {
	Action         Action
	Style          Style          // hunting
	ForageTarget   ForageTarget   // foraging
	FishingMethod  FishingMethod  // fishing
	CrossingMethod CrossingMethod // river crossing
	RouteID        string         // branch chosen at a fork
	RestDays       int
	ConfirmTravel  bool // acknowledge traveling into a blizzard
}

// RunState is the engine's terminal-state signal, checked after every
// resolved day.
type RunState string

const (
	StateRunning  RunState = "running"
	StateVictory  RunState = "victory"
	StateGameOver RunState = "game_over"
)

// HazardEvent is a triggered travel hazard.
type HazardEvent struct {
	Type        string
	Severity    string
	Description string
}

// DayReport summarizes everything one resolved day changed.
type DayReport struct {
	Day           int
	Date          GameDate
	Weather       Weather
	Terrain       Terrain
	MilesTraveled int
	TotalMiles    int
	Party         PartyDayReport
	Activity      *ActivityResult
	Crossing      *CrossingResult
	Milestones    []string
	Hazards       []HazardEvent
	PendingEvent  *Event
	Messages      []string
	State         RunState

	// ConfirmationRequired is set instead of resolving the day when
	// travel was ordered into a blizzard without ConfirmTravel.
	ConfirmationRequired bool
}

// Engine owns the full simulation state and resolves one day at a
// time. It performs no I/O; the caller feeds DayCommands and renders
// DayReports.
type Engine struct {
	Party      *Party
	Trail      *Trail
	Sky        *Sky
	Date       GameDate
	Difficulty Difficulty
	Pace       Pace
	Kit        *Kit
	Events     *EventState

	rng  *rand.Rand
	seed int64

	// riverCondition is pinned while the party is held at a crossing so
	// waiting days act on a consistent river state.
	riverCondition RiverCondition
	atCrossing     *Crossing

	// atFork holds the party at a split until a branch is chosen;
	// detourMiles is the extra distance a longer branch still owes.
	atFork      *RouteFork
	detourMiles int
}

// EngineConfig assembles a new run.
type EngineConfig struct {
	Seed       int64
	Party      *Party
	Trail      *Trail
	Difficulty Difficulty
	Pace       Pace
	Events     []Event
}

func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		Party:      cfg.Party,
		Trail:      cfg.Trail,
		Sky:        NewSky(),
		Date:       NewGameDate(),
		Difficulty: cfg.Difficulty,
		Pace:       cfg.Pace,
		Kit:        StartingKit(len(cfg.Party.Members), cfg.Difficulty),
		Events:     NewEventState(cfg.Events),
		rng:        SeededRNG(cfg.Seed),
		seed:       cfg.Seed,
	}
	e.Party.Ledger.SetStartingSupplies(len(e.Party.Members), e.Difficulty)
	return e
}

// RNG exposes the engine's random source for collaborators that must
// share the deterministic draw sequence.
func (e *Engine) RNG() *rand.Rand { return e.rng }

func (e *Engine) State() RunState {
	if !e.Party.IsAlive() {
		return StateGameOver
	}
	if e.Trail.AtDestination() {
		return StateVictory
	}
	return StateRunning
}

// baseEventChance is the per-day event probability before modifiers.
const baseEventChance = 0.25

// ResolveDay runs one full day. Order: blizzard gate, travel, party
// daily processing, activity resolution, event trigger, date and
// weather advance.
func (e *Engine) ResolveDay(cmd DayCommand) DayReport {
	terrain := e.Trail.CurrentTerrain()
	weather := e.Sky.Current
	mods := e.Difficulty.Modifiers()

	report := DayReport{
		Date:       e.Date,
		Weather:    weather,
		Terrain:    terrain,
		TotalMiles: e.Trail.MilesTraveled,
		State:      StateRunning,
	}

	if weather == WeatherBlizzard && cmd.Action == ActionTravel && !cmd.ConfirmTravel {
		report.ConfirmationRequired = true
		report.Messages = append(report.Messages,
			"A deadly blizzard rages outside. Traveling now could be fatal.")
		return report
	}

	if cmd.Action == ActionTravel {
		e.travel(&report, terrain, weather)
	}

	if cmd.Action == ActionRest {
		days := max(1, cmd.RestDays)
		rest := e.Party.Rest(e.rng, days, terrain, mods)
		report.Messages = append(report.Messages,
			fmt.Sprintf("Rested %d day(s): restored %d health.", rest.DaysRested, rest.HealthRestored))
		report.Messages = append(report.Messages, rest.ConditionsCleared...)
		// Each rested day spends a calendar day, not just the last one.
		if rest.DaysRested > 1 {
			e.Date.Advance(rest.DaysRested - 1)
		}
	} else {
		report.Party = e.Party.ProcessDay(e.rng, terrain, weather, mods)
	}
	report.Day = e.Party.DaysTraveled

	e.resolveActivity(cmd, &report, terrain, weather, mods)

	if state := e.State(); state != StateRunning {
		report.State = state
		report.TotalMiles = e.Trail.MilesTraveled
		return report
	}

	scoutBonus := e.Party.SkillBonus(SkillScouting) + e.Pace.Settings().ScoutingBonus
	if e.Events.ShouldTrigger(e.rng,
		baseEventChance*mods.EventFrequency,
		scoutBonus,
		terrain.DangerFactor(),
		weather.DangerFactor()) {
		report.PendingEvent = e.Events.SelectEvent(e.rng, terrain, e.Date.Season(), e.Trail.CurrentLocation().Region)
	}

	e.Date.Advance(1)
	e.Sky.GenerateWeather(e.rng, e.Date.Season(), terrain, e.Trail.CurrentLocation().Elevation, mods.BlizzardChance)

	report.State = e.State()
	report.TotalMiles = e.Trail.MilesTraveled
	return report
}

// travel advances the party, sums every speed modifier once, and rolls
// pace wear and milestone morale.
func (e *Engine) travel(report *DayReport, terrain Terrain, weather Weather) {
	if e.atCrossing != nil {
		report.Messages = append(report.Messages,
			fmt.Sprintf("The %s blocks the trail. The party must cross or wait for conditions to improve.",
				e.atCrossing.RiverName))
		return
	}
	if e.atFork != nil {
		report.Messages = append(report.Messages,
			fmt.Sprintf("The trail splits at %s. The party must choose a route before pushing on.",
				e.atFork.Name))
		return
	}

	pace := e.Pace.Settings()

	outsideModifier := weather.Effects().SpeedModifier +
		pace.SpeedModifier +
		e.Kit.Bonus(BonusTravelSpeed) +
		e.Trail.CurrentLocation().TravelBonus

	miles := e.Party.DailyMiles(terrain.BaseMilesPerDay(), outsideModifier)
	if e.detourMiles > 0 {
		// A longer branch is walked off before main-trail progress resumes.
		walked := min(miles, e.detourMiles)
		e.detourMiles -= walked
		miles -= walked
		report.MilesTraveled += walked
		if e.detourMiles > 0 {
			report.Messages = append(report.Messages,
				fmt.Sprintf("The long way around: %d miles until the main trail rejoins.", e.detourMiles))
		} else {
			report.Messages = append(report.Messages, "The detour rejoins the main trail.")
		}
	}
	e.advanceTrail(report, miles)

	e.applyPaceWear(report)
	e.Kit.DegradeDaily(weather)
	report.Hazards = e.checkHazards(terrain, weather)
	for _, h := range report.Hazards {
		e.applyHazard(h, report)
	}
}

// advanceTrail moves the party down the trail and folds the progress
// into the report, pinning any crossing or fork that now bars the way.
func (e *Engine) advanceTrail(report *DayReport, miles int) {
	progress := e.Trail.Travel(miles)
	report.MilesTraveled += progress.MilesTraveled
	report.Milestones = append(report.Milestones, progress.Milestones...)

	for _, loc := range progress.LocationsReached {
		report.Messages = append(report.Messages, fmt.Sprintf("Reached %s.", loc.Name))
		if loc.IsLandmark || loc.IsSettlement {
			e.Party.ApplyMoraleEvent(MoraleReachedLandmark)
		}
	}
	if progress.CrossingAhead != nil &&
		progress.CrossingAhead.MileMarker >= e.Trail.MilesTraveled &&
		!e.Trail.HasCleared(progress.CrossingAhead.ID) {
		e.arriveAtCrossing(progress.CrossingAhead)
		report.Messages = append(report.Messages,
			fmt.Sprintf("%s lies ahead. The party must cross the %s.",
				progress.CrossingAhead.Name, progress.CrossingAhead.RiverName))
	}
	if progress.ForkAhead != nil &&
		progress.ForkAhead.MileMarker >= e.Trail.MilesTraveled &&
		!e.Trail.HasRouted(progress.ForkAhead.ID) && e.atFork == nil {
		e.atFork = progress.ForkAhead
		report.Messages = append(report.Messages,
			fmt.Sprintf("The trail splits at %s. %s", progress.ForkAhead.Name, progress.ForkAhead.Description))
	}
}

// applyPaceWear charges the day's pace against the party.
func (e *Engine) applyPaceWear(report *DayReport) {
	pace := e.Pace.Settings()
	if pace.HealthDrain == 0 && pace.MoraleChange == 0 && pace.ExhaustionChance == 0 {
		return
	}
	for _, m := range e.Party.AliveMembers() {
		if pace.HealthDrain > 0 {
			if _, died := m.TakeDamage(pace.HealthDrain); died {
				e.Party.recordDeath(m, "worked to death by the pace")
				e.Party.ApplyMoraleEvent(MoraleDeath)
				report.Messages = append(report.Messages, fmt.Sprintf("%s has died. The pace was too much.", m.Name))
				continue
			}
		}
		if pace.MoraleChange != 0 {
			m.ChangeMorale(pace.MoraleChange)
		}
		if pace.ExhaustionChance > 0 && float64(rollPercent(e.rng)) <= pace.ExhaustionChance*100 {
			if m.AddCondition(ConditionExhausted) {
				report.Messages = append(report.Messages, fmt.Sprintf("%s is exhausted from the pace.", m.Name))
			}
		}
	}
}

// arriveAtCrossing pins the river condition until the party crosses or
// the water drops.
func (e *Engine) arriveAtCrossing(c *Crossing) {
	if e.atCrossing != nil && e.atCrossing.ID == c.ID {
		return
	}
	e.atCrossing = c
	e.riverCondition = c.DetermineCondition(e.rng, e.Date.Season(), e.Sky.RecentRainDays())
}

// CurrentCrossing reports the crossing holding the party, if any.
func (e *Engine) CurrentCrossing() (*Crossing, RiverCondition, bool) {
	if e.atCrossing == nil {
		return nil, "", false
	}
	return e.atCrossing, e.riverCondition, true
}

// CurrentFork reports the fork holding the party, if any.
func (e *Engine) CurrentFork() (*RouteFork, bool) {
	if e.atFork == nil {
		return nil, false
	}
	return e.atFork, true
}

// RouteStanding is how an available branch looks to this party right
// now, for presentation before the choice.
type RouteStanding struct {
	Option    *RouteOption
	Available bool
	Reason    string
}

// ForkOptions sizes up every branch at the pinned fork.
func (e *Engine) ForkOptions() []RouteStanding {
	if e.atFork == nil {
		return nil
	}
	standings := make([]RouteStanding, 0, len(e.atFork.Options))
	for i := range e.atFork.Options {
		opt := &e.atFork.Options[i]
		ok, reason := opt.CheckRequirements(e.Party.AverageHealth(), e.routeSkill(opt))
		standings = append(standings, RouteStanding{Option: opt, Available: ok, Reason: reason})
	}
	return standings
}

func (e *Engine) routeSkill(opt *RouteOption) int {
	if opt.Skill == "" {
		return 0
	}
	best := e.Party.BestForSkill(opt.Skill)
	if best == nil {
		return 0
	}
	return best.EffectiveSkill(opt.Skill, 50)
}

func (e *Engine) resolveActivity(cmd DayCommand, report *DayReport, terrain Terrain, weather Weather, mods DifficultyModifiers) {
	switch cmd.Action {
	case ActionTravel, ActionRest, ActionTrade:
		return

	case ActionHunt:
		hunter := e.Party.BestForSkill(SkillHunting)
		if hunter == nil {
			report.Activity = &ActivityResult{Message: "No one is fit to hunt."}
			return
		}
		skill := hunter.EffectiveSkill(SkillHunting, 50) +
			e.Trail.CurrentLocation().HuntingBonus +
			e.Kit.Bonus(BonusHunting)
		result := Hunt(e.rng, HuntParams{
			Terrain:       terrain,
			Weather:       weather,
			HunterSkill:   skill,
			AmmoAvailable: int(e.Party.Ledger.Quantity(ResourceAmmunition)),
			Style:         cmd.Style,
			Mods:          mods,
		})
		result.TimeHours = max(1, int(float64(result.TimeHours)*e.Pace.Settings().HuntingTimeMult))
		e.applyActivity(&result, hunter.Name)
		if result.Success {
			e.Party.ApplyMoraleEvent(MoraleSuccessfulHunt)
		} else if result.AmmoUsed > 0 {
			e.Party.ApplyMoraleEvent(MoraleFailedHunt)
		}
		report.Activity = &result

	case ActionForage:
		forager := e.Party.BestForSkill(SkillScouting)
		if forager == nil {
			report.Activity = &ActivityResult{Message: "No one is fit to forage."}
			return
		}
		result := Forage(e.rng, ForageParams{
			Terrain:      terrain,
			Weather:      weather,
			Season:       e.Date.Season(),
			Target:       cmd.ForageTarget,
			ForagerSkill: forager.EffectiveSkill(SkillScouting, 50),
			PartySize:    len(e.Party.WorkingMembers()),
			Mods:         mods,
		})
		e.applyActivity(&result, forager.Name)
		report.Activity = &result

	case ActionFish:
		fisher := e.Party.BestForSkill(SkillHunting)
		if fisher == nil {
			report.Activity = &ActivityResult{Message: "No one is fit to fish."}
			return
		}
		result := Fish(e.rng, FishParams{
			WaterNearby: e.Trail.CurrentLocation().WaterNearby || e.atCrossing != nil,
			Method:      cmd.FishingMethod,
			FisherSkill: fisher.EffectiveSkill(SkillHunting, 50),
			HasTools:    e.Party.Ledger.HasEnough(ResourceTools, 1) || e.Kit.Has(EquipFishingNet),
			Weather:     weather,
			Mods:        mods,
		})
		e.applyActivity(&result, fisher.Name)
		report.Activity = &result

	case ActionCrossRiver:
		e.crossRiver(cmd.CrossingMethod, report, weather)

	case ActionRoute:
		e.chooseRoute(cmd.RouteID, report)

	case ActionWait:
		if e.atCrossing != nil {
			improved, msg := WaitForConditions(e.rng, 1)
			if improved && e.riverCondition != RiverLow {
				e.riverCondition = lowerRiverCondition(e.riverCondition)
			}
			report.Messages = append(report.Messages, msg)
		}
		result := NoOpResult("The party waits out the day.")
		report.Activity = &result

	default:
		panic(fmt.Sprintf("unknown action: %s", string(cmd.Action)))
	}
}

func lowerRiverCondition(c RiverCondition) RiverCondition {
	switch c {
	case RiverFlood:
		return RiverHigh
	case RiverHigh:
		return RiverNormal
	case RiverNormal, RiverLow:
		return RiverLow
	default:
		panic(fmt.Sprintf("unknown river condition: %s", string(c)))
	}
}

func (e *Engine) crossRiver(method CrossingMethod, report *DayReport, weather Weather) {
	crossing := e.atCrossing
	if crossing == nil {
		result := NoOpResult("There is no river to cross here.")
		report.Activity = &result
		return
	}

	members := make([]string, 0, e.Party.AliveCount())
	for _, m := range e.Party.AliveMembers() {
		members = append(members, m.Name)
	}
	supplies := make(map[ResourceKind]float64)
	for _, kind := range []ResourceKind{ResourceFood, ResourceAmmunition, ResourceClothing, ResourceMedical} {
		supplies[kind] = e.Party.Ledger.Quantity(kind)
	}

	result := crossing.AttemptCrossing(e.rng, CrossParams{
		Method:       method,
		Condition:    e.riverCondition,
		Weather:      weather,
		PartyMembers: members,
		Supplies:     supplies,
		SkillBonus:   e.Party.SkillBonus(SkillNavigation),
	})
	report.Crossing = &result

	if result.MoneySpent > 0 {
		e.Party.Ledger.Remove(ResourceMoney, float64(result.MoneySpent))
	}
	for kind, amount := range result.SuppliesLost {
		e.Party.Ledger.Remove(kind, amount)
	}
	if result.Injured != "" {
		if m := e.Party.MemberByName(result.Injured); m != nil && m.IsAlive() {
			if _, died := m.TakeDamage(e.scaleInjury(result.InjuryDamage)); died {
				e.Party.recordDeath(m, "injuries at "+crossing.Name)
				e.Party.ApplyMoraleEvent(MoraleDeath)
			} else {
				m.AddCondition(ConditionInjured)
				e.Party.ApplyMoraleEvent(MoraleInjury)
			}
		}
	}
	for _, name := range result.Deaths {
		if m := e.Party.MemberByName(name); m != nil && m.IsAlive() {
			m.TakeDamage(m.Health)
			e.Party.recordDeath(m, "drowned at "+crossing.Name)
			e.Party.ApplyMoraleEvent(MoraleDeath)
		}
	}

	if result.Outcome == OutcomeSuccess || result.Outcome == OutcomePartialLoss || result.Outcome == OutcomeMajorLoss {
		// The party is across unless the attempt was a disaster or
		// cancelled outright.
		e.Trail.MarkCleared(crossing.ID)
		e.atCrossing = nil
	}
}

// chooseRoute commits the party to a branch at the pinned fork. A
// shortcut banks its saved miles at once; a longer branch becomes a
// detour debt that travel days pay down before main-trail progress
// resumes. The branch's danger is rolled once on commitment.
func (e *Engine) chooseRoute(optionID string, report *DayReport) {
	fork := e.atFork
	if fork == nil {
		result := NoOpResult("The trail does not split here.")
		report.Activity = &result
		return
	}
	opt := fork.Option(optionID)
	if opt == nil {
		result := NoOpResult(fmt.Sprintf("There is no route %q at %s.", optionID, fork.Name))
		report.Activity = &result
		return
	}
	if ok, reason := opt.CheckRequirements(e.Party.AverageHealth(), e.routeSkill(opt)); !ok {
		result := NoOpResult(fmt.Sprintf("%s is beyond the party: %s.", opt.Name, reason))
		report.Activity = &result
		return
	}

	e.Trail.MarkRouted(fork.ID, opt.ID)
	e.atFork = nil
	report.Messages = append(report.Messages,
		fmt.Sprintf("The party takes %s. %s", opt.Name, opt.Description))

	if saved := opt.MilesSaved(); saved > 0 {
		report.Messages = append(report.Messages,
			fmt.Sprintf("The cutoff saves %d miles over the main line.", saved))
		e.advanceTrail(report, saved)
	} else if saved < 0 {
		e.detourMiles += -saved
		report.Messages = append(report.Messages,
			fmt.Sprintf("The longer way adds %d miles before the main trail rejoins.", -saved))
	}

	danger := int(float64(opt.DangerLevel) * e.Difficulty.Modifiers().NegativeEventChance)
	if len(opt.Hazards) > 0 && rollPercent(e.rng) <= min(danger, 95) {
		h := opt.Hazards[e.rng.IntN(len(opt.Hazards))]
		event := HazardEvent{Type: h, Severity: hazardSeverity(h), Description: hazardDescription(h)}
		report.Hazards = append(report.Hazards, event)
		e.applyHazard(event, report)
	}
	if opt.MoraleReward > 0 && e.Party.IsAlive() {
		e.Party.ChangeMorale(opt.MoraleReward)
		report.Messages = append(report.Messages, "Spirits lift at the choice of trail.")
	}
}

// scaleInjury runs incidental injury damage through the pace's risk
// multiplier. A careless pace makes every accident worse.
func (e *Engine) scaleInjury(damage int) int {
	if damage <= 0 {
		return 0
	}
	return max(1, int(float64(damage)*e.Pace.Settings().InjuryChanceMult))
}

// applyActivity folds an activity's yields and injuries back into
// party state.
func (e *Engine) applyActivity(result *ActivityResult, actor string) {
	if result.FoodGained > 0 {
		result.FoodGained = int(e.Party.Ledger.Add(ResourceFood, float64(result.FoodGained)))
	}
	if result.WaterGained > 0 {
		result.WaterGained = int(e.Party.Ledger.Add(ResourceWater, float64(result.WaterGained)))
	}
	if result.AmmoUsed > 0 {
		e.Party.Ledger.Remove(ResourceAmmunition, float64(result.AmmoUsed))
	}
	if result.MoneySpent > 0 {
		e.Party.Ledger.Remove(ResourceMoney, float64(result.MoneySpent))
	}
	for kind, amount := range result.SuppliesLost {
		e.Party.Ledger.Remove(kind, amount)
	}
	if result.InjuryDamage > 0 {
		result.Injured = actor
		if m := e.Party.MemberByName(actor); m != nil && m.IsAlive() {
			if _, died := m.TakeDamage(e.scaleInjury(result.InjuryDamage)); died {
				result.Deaths = append(result.Deaths, m.Name)
				e.Party.recordDeath(m, "injuries while working")
				e.Party.ApplyMoraleEvent(MoraleDeath)
			} else {
				m.AddCondition(ConditionInjured)
				e.Party.ApplyMoraleEvent(MoraleInjury)
			}
		}
	}
}

// ResolveEvent resolves the player's choice for a pending event and
// applies its effects.
func (e *Engine) ResolveEvent(event *Event, choiceIndex int) (EventOutcome, EffectReport, error) {
	outcome, err := e.Events.ResolveChoice(e.rng, event, choiceIndex, e.EventContext())
	if err != nil {
		return EventOutcome{}, EffectReport{}, err
	}
	effects := ApplyEffects(e.rng, outcome.Effects, e.Party)
	if effects.MilesBonus > 0 {
		e.Trail.Travel(effects.MilesBonus)
	}
	if effects.DaysLost > 0 {
		e.Date.Advance(effects.DaysLost)
	}
	return outcome, effects, nil
}

// EventContext snapshots party skills and resources for event
// requirement checks.
func (e *Engine) EventContext() EventContext {
	skills := make(map[string]int)
	for _, skill := range []Skill{SkillNavigation, SkillHunting, SkillHealing, SkillScouting, SkillRepair} {
		if best := e.Party.BestForSkill(skill); best != nil {
			skills[string(skill)] = best.EffectiveSkill(skill, 50)
		}
	}
	resources := make(map[ResourceKind]float64)
	for _, kind := range AllResourceKinds() {
		resources[kind] = e.Party.Ledger.Quantity(kind)
	}
	return EventContext{Skills: skills, Resources: resources}
}

// tradeBasePrice is the per-unit settlement price before the
// difficulty markup.
func tradeBasePrice(kind ResourceKind) float64 {
	switch kind {
	case ResourceFood:
		return 0.5
	case ResourceWater:
		return 0.25
	case ResourceAmmunition:
		return 0.75
	case ResourceMedical:
		return 5
	case ResourceClothing:
		return 8
	case ResourceTools:
		return 12
	case ResourceMoney:
		return 1
	default:
		panic(fmt.Sprintf("unknown resource kind: %s", string(kind)))
	}
}

// TradePrice quotes the settlement price for one unit.
func (e *Engine) TradePrice(kind ResourceKind) float64 {
	return tradeBasePrice(kind) * e.Difficulty.Modifiers().TradePrices
}

// Buy purchases goods at the current settlement. Fails as a reported
// state when there is no settlement or not enough money.
func (e *Engine) Buy(kind ResourceKind, amount float64) (float64, error) {
	loc := e.Trail.CurrentLocation()
	if !loc.IsSettlement {
		return 0, fmt.Errorf("no one to trade with at %s", loc.Name)
	}
	cost := e.TradePrice(kind) * amount
	if !e.Party.Ledger.HasEnough(ResourceMoney, cost) {
		return 0, fmt.Errorf("cannot afford %.0f %s ($%.2f needed)", amount, kind.Name(), cost)
	}
	bought := e.Party.Ledger.Add(kind, amount)
	e.Party.Ledger.Remove(ResourceMoney, e.TradePrice(kind)*bought)
	if bought > 0 {
		e.Party.ApplyMoraleEvent(MoraleFoundSupplies)
	}
	return bought, nil
}

// Sell trades goods back at half price.
func (e *Engine) Sell(kind ResourceKind, amount float64) (float64, error) {
	loc := e.Trail.CurrentLocation()
	if !loc.IsSettlement {
		return 0, fmt.Errorf("no one to trade with at %s", loc.Name)
	}
	sold := e.Party.Ledger.Remove(kind, amount)
	e.Party.Ledger.Add(ResourceMoney, e.TradePrice(kind)/2*sold)
	return sold, nil
}

// ScoutReport is what a scouting pass ahead turned up.
type ScoutReport struct {
	Scout           string
	DistanceScouted int
	Locations       []*Location
	HazardsSpotted  []string
}

// ScoutAhead sends the best scout down the trail. Range scales with
// skill; hazards are only spotted on a skill check.
func (e *Engine) ScoutAhead() (ScoutReport, error) {
	scout := e.Party.BestForSkill(SkillScouting)
	if scout == nil {
		return ScoutReport{}, fmt.Errorf("no one is available to scout")
	}
	skill := scout.EffectiveSkill(SkillScouting, 50)
	report := ScoutReport{
		Scout:           scout.Name,
		DistanceScouted: 20 * (100 + skill) / 100,
	}
	report.Locations = e.Trail.UpcomingLocations(report.DistanceScouted)
	for _, loc := range report.Locations {
		if len(loc.Hazards) > 0 && rollPercent(e.rng) <= skill {
			report.HazardsSpotted = append(report.HazardsSpotted, loc.Hazards...)
		}
	}
	return report, nil
}

// checkHazards rolls the location, terrain and weather hazard lists.
func (e *Engine) checkHazards(terrain Terrain, weather Weather) []HazardEvent {
	seen := make(map[string]bool)
	var pool []string
	add := func(hazards ...string) {
		for _, h := range hazards {
			if !seen[h] {
				seen[h] = true
				pool = append(pool, h)
			}
		}
	}
	add(e.Trail.CurrentLocation().Hazards...)
	add(terrain.Hazards()...)
	switch weather {
	case WeatherBlizzard:
		add("hypothermia", "lost")
	case WeatherStorm:
		add("injury")
	}

	negMult := e.Difficulty.Modifiers().NegativeEventChance
	var triggered []HazardEvent
	for _, h := range pool {
		if float64(rollPercent(e.rng)) <= float64(hazardChancePercent(h))*negMult {
			triggered = append(triggered, HazardEvent{
				Type:        h,
				Severity:    hazardSeverity(h),
				Description: hazardDescription(h),
			})
		}
	}
	return triggered
}

func hazardChancePercent(hazard string) int {
	switch hazard {
	case "avalanche", "ambush":
		return 5
	case "injury", "heat", "frostbite":
		return 8
	case "altitude", "dehydration", "cold", "lost":
		return 10
	case "wildlife":
		return 12
	case "river_crossing":
		return 15
	case "hypothermia", "rockslide":
		return 6
	case "geothermal":
		return 3
	case "crevasse":
		return 4
	default:
		return 5
	}
}

func hazardSeverity(hazard string) string {
	switch hazard {
	case "avalanche", "crevasse", "ambush", "hypothermia":
		return "severe"
	case "rockslide", "wildlife", "frostbite", "dehydration":
		return "moderate"
	default:
		return "minor"
	}
}

func hazardDescription(hazard string) string {
	switch hazard {
	case "avalanche":
		return "Snow thunders down the slope above the trail."
	case "rockslide":
		return "Loose rock gives way along the canyon wall."
	case "wildlife":
		return "A predator stalks the edge of camp."
	case "frostbite":
		return "The cold bites through worn clothing."
	case "hypothermia":
		return "The chill drains the warmth from everyone."
	case "dehydration":
		return "The heat wrings the party dry."
	case "heat":
		return "The sun beats down without mercy."
	case "cold":
		return "A bitter wind cuts to the bone."
	case "altitude":
		return "The thin air leaves everyone lightheaded."
	case "lost":
		return "The trail vanishes in the whiteout."
	case "injury":
		return "Treacherous footing on the storm-slick trail."
	case "ambush":
		return "Strangers shadow the party from the ridgeline."
	case "geothermal":
		return "Scalding springs hide under a thin crust."
	case "crevasse":
		return "A hidden crevasse opens underfoot."
	case "river_crossing":
		return "A swollen creek blocks the path."
	default:
		return "Trouble on the trail."
	}
}

// applyHazard converts a triggered hazard into damage or conditions on
// a random member.
func (e *Engine) applyHazard(h HazardEvent, report *DayReport) {
	alive := e.Party.AliveMembers()
	if len(alive) == 0 {
		return
	}
	target := alive[e.rng.IntN(len(alive))]

	var damage int
	switch h.Severity {
	case "severe":
		damage = rollBetween(e.rng, 10, 25)
	case "moderate":
		damage = rollBetween(e.rng, 5, 15)
	default:
		damage = rollBetween(e.rng, 1, 8)
	}
	weatherDriven := h.Type == "cold" || h.Type == "frostbite" || h.Type == "hypothermia" || h.Type == "heat"
	if weatherDriven {
		damage = int(float64(damage) * e.Difficulty.Modifiers().WeatherSeverity)
	}
	weatherProtection := e.Kit.Bonus(BonusWeatherProtection)
	if weatherProtection > 0 && weatherDriven {
		damage = damage * (100 - min(weatherProtection, 75)) / 100
	}
	if damage > 0 {
		_, died := target.TakeDamage(damage)
		report.Messages = append(report.Messages, fmt.Sprintf("%s: %s takes %d damage.", h.Description, target.Name, damage))
		if died {
			e.Party.recordDeath(target, h.Type)
			e.Party.ApplyMoraleEvent(MoraleDeath)
			report.Messages = append(report.Messages, fmt.Sprintf("%s has died.", target.Name))
		}
	}

	switch h.Type {
	case "frostbite":
		target.AddCondition(ConditionFrostbite)
	case "hypothermia":
		target.AddCondition(ConditionHypothermia)
	case "dehydration", "heat":
		target.AddCondition(ConditionDehydrated)
	case "injury", "wildlife", "rockslide", "avalanche", "crevasse":
		target.AddCondition(ConditionInjured)
	}
}
