package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

const (
	MinPartySize = 1
	MaxPartySize = 5
)

type Rationing string

const (
	RationFilling  Rationing = "filling"
	RationNormal   Rationing = "normal"
	RationMeager   Rationing = "meager"
	RationStarving Rationing = "starving"
)

func AllRationings() []Rationing {
	return []Rationing{RationFilling, RationNormal, RationMeager, RationStarving}
}

func ParseRationing(s string) (Rationing, error) {
	for _, r := range AllRationings() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown rationing level %q", s)
}

func (r Rationing) ConsumptionMultiplier() float64 {
	switch r {
	case RationFilling:
		return 1.5
	case RationNormal:
		return 1.0
	case RationMeager:
		return 0.5
	case RationStarving:
		return 0.25
	default:
		panic(fmt.Sprintf("unknown rationing level: %s", string(r)))
	}
}

// MoraleDelta is the daily morale cost or boon of eating at this level.
func (r Rationing) MoraleDelta() int {
	switch r {
	case RationFilling:
		return 5
	case RationNormal:
		return 0
	case RationMeager:
		return -3
	case RationStarving:
		return -8
	default:
		panic(fmt.Sprintf("unknown rationing level: %s", string(r)))
	}
}

func (r Rationing) Description() string {
	switch r {
	case RationFilling:
		return "Full rations (1.5x consumption, +5 morale/day)"
	case RationNormal:
		return "Normal rations (standard consumption)"
	case RationMeager:
		return "Reduced rations (0.5x consumption, -3 morale/day)"
	case RationStarving:
		return "Bare minimum (0.25x consumption, -8 morale/day, health risk)"
	default:
		panic(fmt.Sprintf("unknown rationing level: %s", string(r)))
	}
}

// MoraleEvent is a named trigger with a fixed party-wide morale delta.
type MoraleEvent string

const (
	MoraleDeath           MoraleEvent = "death"
	MoraleSuccessfulHunt  MoraleEvent = "successful_hunt"
	MoraleFailedHunt      MoraleEvent = "failed_hunt"
	MoraleRestDay         MoraleEvent = "rest_day"
	MoraleGoodWeather     MoraleEvent = "good_weather"
	MoraleBadWeather      MoraleEvent = "bad_weather"
	MoraleFoundSupplies   MoraleEvent = "found_supplies"
	MoraleLowFood         MoraleEvent = "low_food"
	MoraleNoFood          MoraleEvent = "no_food"
	MoraleReachedLandmark MoraleEvent = "reached_landmark"
	MoraleInjury          MoraleEvent = "injury"
	MoraleHealed          MoraleEvent = "healed"
)

func (e MoraleEvent) Delta() int {
	switch e {
	case MoraleDeath:
		return -25
	case MoraleSuccessfulHunt:
		return 10
	case MoraleFailedHunt:
		return -5
	case MoraleRestDay:
		return 15
	case MoraleGoodWeather:
		return 5
	case MoraleBadWeather:
		return -5
	case MoraleFoundSupplies:
		return 10
	case MoraleLowFood:
		return -10
	case MoraleNoFood:
		return -20
	case MoraleReachedLandmark:
		return 15
	case MoraleInjury:
		return -10
	case MoraleHealed:
		return 5
	default:
		panic(fmt.Sprintf("unknown morale event: %s", string(e)))
	}
}

// DeathRecord is one entry in the party's append-only death log.
type DeathRecord struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Day          int    `json:"day"`
	Cause        string `json:"cause"`
	DaysSurvived int    `json:"days_survived"`
}

// Party is the traveling group: members in join order, shared supplies,
// and the running journey tally. Members are never removed, only marked
// dead, so the log and history stay intact.
type Party struct {
	Name          string        `json:"name"`
	Members       []*Traveler   `json:"members"`
	Ledger        *Ledger       `json:"resources"`
	DaysTraveled  int           `json:"days_traveled"`
	MilesTraveled int           `json:"miles_traveled"`
	Rationing     Rationing     `json:"rationing"`
	DeathLog      []DeathRecord `json:"death_log,omitempty"`
}

func NewParty(name string) *Party {
	return &Party{
		Name:      name,
		Ledger:    NewLedger(),
		Rationing: RationNormal,
	}
}

func (p *Party) AddMember(t *Traveler) bool {
	if len(p.Members) >= MaxPartySize {
		return false
	}
	p.Members = append(p.Members, t)
	return true
}

func (p *Party) MemberByName(name string) *Traveler {
	for _, m := range p.Members {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}

func (p *Party) AliveMembers() []*Traveler {
	alive := make([]*Traveler, 0, len(p.Members))
	for _, m := range p.Members {
		if m.IsAlive() {
			alive = append(alive, m)
		}
	}
	return alive
}

func (p *Party) AliveCount() int {
	return len(p.AliveMembers())
}

func (p *Party) IsAlive() bool {
	return p.AliveCount() > 0
}

// WorkingMembers are the living members fit for hunting and scouting.
func (p *Party) WorkingMembers() []*Traveler {
	working := make([]*Traveler, 0, len(p.Members))
	for _, m := range p.Members {
		if m.IsAlive() && m.CanWork() {
			working = append(working, m)
		}
	}
	return working
}

func (p *Party) HasRole(role Role) bool {
	for _, m := range p.AliveMembers() {
		if m.Role == role {
			return true
		}
	}
	return false
}

// BestForSkill picks the working member with the highest effective skill.
// Returns nil when no one can work.
func (p *Party) BestForSkill(skill Skill) *Traveler {
	var best *Traveler
	bestValue := -1
	for _, m := range p.WorkingMembers() {
		if v := m.EffectiveSkill(skill, 50); v > bestValue {
			bestValue = v
			best = m
		}
	}
	return best
}

// SkillBonus is the highest role bonus among living members.
func (p *Party) SkillBonus(skill Skill) int {
	best := 0
	for _, m := range p.AliveMembers() {
		if b := m.Role.Bonus(skill); b > best {
			best = b
		}
	}
	return best
}

func (p *Party) AverageHealth() float64 {
	alive := p.AliveMembers()
	if len(alive) == 0 {
		return 0
	}
	total := 0
	for _, m := range alive {
		total += m.Health
	}
	return float64(total) / float64(len(alive))
}

func (p *Party) AverageMorale() float64 {
	alive := p.AliveMembers()
	if len(alive) == 0 {
		return 0
	}
	total := 0
	for _, m := range alive {
		total += m.Morale
	}
	return float64(total) / float64(len(alive))
}

func (p *Party) SickMembers() []*Traveler {
	sick := make([]*Traveler, 0, len(p.Members))
	for _, m := range p.AliveMembers() {
		if !m.IsHealthy() {
			sick = append(sick, m)
		}
	}
	return sick
}

// ChangeMorale shifts every living member's morale by the same amount.
func (p *Party) ChangeMorale(amount int) {
	for _, m := range p.AliveMembers() {
		m.ChangeMorale(amount)
	}
}

// ApplyMoraleEvent looks up the event's fixed delta and applies it to
// every living member, returning the delta.
func (p *Party) ApplyMoraleEvent(event MoraleEvent) int {
	delta := event.Delta()
	if delta != 0 {
		p.ChangeMorale(delta)
	}
	return delta
}

// HealParty heals every living member, with the medic bonus when a
// living medic is present. Returns total health restored.
func (p *Party) HealParty(amount int) int {
	hasMedic := p.HasRole(RoleMedic)
	total := 0
	for _, m := range p.AliveMembers() {
		total += m.Heal(amount, hasMedic)
	}
	return total
}

// TravelSpeedModifier is the slowest member's modifier; the party moves
// at its worst member's pace. The best navigation bonus in the party
// softens the penalty by up to half.
func (p *Party) TravelSpeedModifier() int {
	alive := p.AliveMembers()
	if len(alive) == 0 {
		return -100
	}
	worst := 0
	for _, m := range alive {
		if mod := m.TravelSpeedModifier(); mod < worst {
			worst = mod
		}
	}
	if navBonus := p.SkillBonus(SkillNavigation); navBonus > 0 && worst < 0 {
		worst = int(float64(worst) * (1 - float64(navBonus)/200))
	}
	return worst
}

// DailyMiles converts base terrain miles through the party's speed
// modifier plus any outside modifiers (weather, pace, gear). A party
// that can move at all covers at least one mile, and no day betters
// twice the terrain base.
func (p *Party) DailyMiles(baseMiles, outsideModifier int) int {
	total := p.TravelSpeedModifier() + outsideModifier
	miles := int(float64(baseMiles) * (1 + float64(total)/100))
	return max(1, min(miles, baseMiles*2))
}

// MemberUpdate pairs a traveler with the outcome of their daily update.
type MemberUpdate struct {
	Name   string
	Result DailyResult
}

// PartyDayReport collects everything one processed day did to the party.
type PartyDayReport struct {
	Day           int
	Consumption   ConsumptionResult
	Decay         map[ResourceKind]float64
	MemberUpdates []MemberUpdate
	Deaths        []string
	Warnings      []string
	Events        []string
}

// ProcessDay runs the party's share of the daily turn. The order is
// load-bearing: shortages are detected and penalized before decay, and
// the death morale event fires once per death, not once per day.
func (p *Party) ProcessDay(rng *rand.Rand, terrain Terrain, weather Weather, mods DifficultyModifiers) PartyDayReport {
	p.DaysTraveled++
	report := PartyDayReport{Day: p.DaysTraveled}

	if p.AliveCount() > 0 {
		report.Consumption = p.Ledger.ConsumeDaily(p.AliveCount(), terrain, p.Rationing, mods.ConsumptionRate)
		report.Warnings = append(report.Warnings, report.Consumption.Warnings...)

		if report.Consumption.ShortOn(ResourceFood) {
			p.ApplyMoraleEvent(MoraleNoFood)
			report.Events = append(report.Events, "The party is starving!")
			for _, m := range p.AliveMembers() {
				m.AddCondition(ConditionStarving)
			}
		}
		if report.Consumption.ShortOn(ResourceWater) {
			report.Events = append(report.Events, "The party is dehydrated!")
			for _, m := range p.AliveMembers() {
				m.AddCondition(ConditionDehydrated)
			}
		}
	}

	report.Decay = p.Ledger.ApplyDailyDecay(weather, mods.ResourceDecay)

	for _, m := range p.Members {
		if !m.IsAlive() {
			continue
		}
		update := m.DailyUpdate(rng, mods)
		report.MemberUpdates = append(report.MemberUpdates, MemberUpdate{Name: m.Name, Result: update})
		if update.Died {
			p.recordDeath(m, "conditions")
			report.Deaths = append(report.Deaths, m.Name)
			report.Events = append(report.Events, fmt.Sprintf("%s has died.", m.Name))
			p.ApplyMoraleEvent(MoraleDeath)
		}
	}

	if weather.IsSevere() {
		p.ApplyMoraleEvent(MoraleBadWeather)
		report.Events = append(report.Events, "The harsh weather dampens spirits.")
	} else if weather == WeatherClear && rollPercent(rng) <= 30 {
		p.ApplyMoraleEvent(MoraleGoodWeather)
	}

	if delta := p.Rationing.MoraleDelta(); delta != 0 {
		p.ChangeMorale(delta)
	}

	foodDays := p.Ledger.DaysOfSupplies(p.AliveCount(), p.Rationing, mods.ConsumptionRate)[ResourceFood]
	if foodDays > 0 && foodDays < 3 {
		p.ApplyMoraleEvent(MoraleLowFood)
		report.Warnings = append(report.Warnings, "Food supplies are critically low!")
	}

	return report
}

func (p *Party) recordDeath(m *Traveler, cause string) {
	p.DeathLog = append(p.DeathLog, DeathRecord{
		Name:         m.Name,
		Role:         m.Role.Name(),
		Day:          p.DaysTraveled,
		Cause:        cause,
		DaysSurvived: m.DaysSurvived,
	})
}

// RestReport summarizes a stretch of camp days.
type RestReport struct {
	DaysRested        int
	HealthRestored    int
	MoraleBoost       int
	ConditionsCleared []string
}

// Rest spends days in camp. Each day heals every living member 5 to 15
// health scaled by the difficulty's healing rate and the medic bonus,
// rolls a clear chance for Exhausted and Injured, boosts morale, and
// still consumes supplies. Decay does not run while camped; that stays
// with the daily turn.
func (p *Party) Rest(rng *rand.Rand, days int, terrain Terrain, mods DifficultyModifiers) RestReport {
	report := RestReport{DaysRested: days}
	hasMedic := p.HasRole(RoleMedic)
	clearChance := int(30 * mods.NaturalRecovery)

	for range days {
		p.DaysTraveled++
		for _, m := range p.AliveMembers() {
			heal := max(1, int(float64(rollBetween(rng, 5, 15))*mods.HealingRate))
			report.HealthRestored += m.Heal(heal, hasMedic)
			for _, c := range slices.Clone(m.Conditions) {
				if c != ConditionExhausted && c != ConditionInjured {
					continue
				}
				if rollPercent(rng) <= clearChance {
					m.RemoveCondition(c)
					report.ConditionsCleared = append(report.ConditionsCleared,
						fmt.Sprintf("%s: %s", m.Name, c.Name()))
				}
			}
		}
		report.MoraleBoost += p.ApplyMoraleEvent(MoraleRestDay)
		p.Ledger.ConsumeDaily(p.AliveCount(), terrain, p.Rationing, mods.ConsumptionRate)
	}
	return report
}

func (p *Party) Status() string {
	if !p.IsAlive() {
		return "All party members have perished"
	}
	if sick := len(p.SickMembers()); sick > 0 {
		return fmt.Sprintf("%d alive (%d sick/injured)", p.AliveCount(), sick)
	}
	return fmt.Sprintf("%d alive, all healthy", p.AliveCount())
}
