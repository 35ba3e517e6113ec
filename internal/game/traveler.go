package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

type Role string

const (
	RoleTraveler    Role = "traveler"
	RoleTrailLeader Role = "trail_leader"
	RoleHunter      Role = "hunter"
	RoleMedic       Role = "medic"
	RoleScout       Role = "scout"
	RoleMechanic    Role = "mechanic"
)

func AllRoles() []Role {
	return []Role{RoleTraveler, RoleTrailLeader, RoleHunter, RoleMedic, RoleScout, RoleMechanic}
}

func ParseRole(s string) (Role, error) {
	for _, r := range AllRoles() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Name() string {
	switch r {
	case RoleTraveler:
		return "Traveler"
	case RoleTrailLeader:
		return "Trail Leader"
	case RoleHunter:
		return "Hunter"
	case RoleMedic:
		return "Medic"
	case RoleScout:
		return "Scout"
	case RoleMechanic:
		return "Mechanic"
	default:
		panic(fmt.Sprintf("unknown role: %s", string(r)))
	}
}

type Skill string

const (
	SkillNavigation Skill = "navigation"
	SkillHunting    Skill = "hunting"
	SkillHealing    Skill = "healing"
	SkillScouting   Skill = "scouting"
	SkillRepair     Skill = "repair"
)

// Bonus is the flat percentage a role adds to a skill.
func (r Role) Bonus(skill Skill) int {
	switch r {
	case RoleTraveler:
		return 0
	case RoleTrailLeader:
		switch skill {
		case SkillNavigation:
			return 25
		case SkillScouting:
			return 10
		}
		return 0
	case RoleHunter:
		switch skill {
		case SkillHunting:
			return 30
		case SkillScouting:
			return 5
		}
		return 0
	case RoleMedic:
		if skill == SkillHealing {
			return 35
		}
		return 0
	case RoleScout:
		switch skill {
		case SkillNavigation:
			return 15
		case SkillHunting:
			return 10
		case SkillScouting:
			return 40
		}
		return 0
	case RoleMechanic:
		if skill == SkillRepair {
			return 40
		}
		return 0
	default:
		panic(fmt.Sprintf("unknown role: %s", string(r)))
	}
}

type Condition string

const (
	ConditionInjured     Condition = "injured"
	ConditionHypothermia Condition = "hypothermia"
	ConditionDysentery   Condition = "dysentery"
	ConditionScurvy      Condition = "scurvy"
	ConditionFrostbite   Condition = "frostbite"
	ConditionInfection   Condition = "infection"
	ConditionExhausted   Condition = "exhausted"
	ConditionStarving    Condition = "starving"
	ConditionDehydrated  Condition = "dehydrated"
)

func AllConditions() []Condition {
	return []Condition{
		ConditionInjured, ConditionHypothermia, ConditionDysentery,
		ConditionScurvy, ConditionFrostbite, ConditionInfection,
		ConditionExhausted, ConditionStarving, ConditionDehydrated,
	}
}

func (c Condition) Name() string {
	switch c {
	case ConditionInjured:
		return "Injured"
	case ConditionHypothermia:
		return "Hypothermia"
	case ConditionDysentery:
		return "Dysentery"
	case ConditionScurvy:
		return "Scurvy"
	case ConditionFrostbite:
		return "Frostbite"
	case ConditionInfection:
		return "Infection"
	case ConditionExhausted:
		return "Exhausted"
	case ConditionStarving:
		return "Starving"
	case ConditionDehydrated:
		return "Dehydrated"
	default:
		panic(fmt.Sprintf("unknown condition: %s", string(c)))
	}
}

// conditionEffects is a condition's daily toll on its carrier.
type conditionEffects struct {
	healthDrain int
	moraleDrain int
	travelSpeed int // percentage points, negative slows
	canWork     bool
}

func (c Condition) effects() conditionEffects {
	switch c {
	case ConditionInjured:
		return conditionEffects{healthDrain: 2, moraleDrain: 3, travelSpeed: -15, canWork: true}
	case ConditionHypothermia:
		return conditionEffects{healthDrain: 5, moraleDrain: 5, travelSpeed: -25}
	case ConditionDysentery:
		return conditionEffects{healthDrain: 4, moraleDrain: 4, travelSpeed: -20}
	case ConditionScurvy:
		return conditionEffects{healthDrain: 2, moraleDrain: 3, travelSpeed: -10, canWork: true}
	case ConditionFrostbite:
		return conditionEffects{healthDrain: 3, moraleDrain: 4, travelSpeed: -15, canWork: true}
	case ConditionInfection:
		return conditionEffects{healthDrain: 6, moraleDrain: 5, travelSpeed: -20}
	case ConditionExhausted:
		return conditionEffects{healthDrain: 1, moraleDrain: 5, travelSpeed: -20, canWork: true}
	case ConditionStarving:
		return conditionEffects{healthDrain: 5, moraleDrain: 8, travelSpeed: -25}
	case ConditionDehydrated:
		return conditionEffects{healthDrain: 6, moraleDrain: 6, travelSpeed: -30}
	default:
		panic(fmt.Sprintf("unknown condition: %s", string(c)))
	}
}

const maxHealth = 100

// Traveler is a single party member. Health and morale live on 0..100;
// health at zero is death and death is final.
type Traveler struct {
	Name         string      `json:"name"`
	Role         Role        `json:"role"`
	Health       int         `json:"health"`
	MaxHealth    int         `json:"max_health"`
	Morale       int         `json:"morale"`
	Conditions   []Condition `json:"conditions,omitempty"`
	DaysSurvived int         `json:"days_survived"`
	Dead         bool        `json:"dead,omitempty"`
}

func NewTraveler(name string, role Role) *Traveler {
	return &Traveler{
		Name:      name,
		Role:      role,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Morale:    75,
	}
}

func (t *Traveler) IsAlive() bool {
	return !t.Dead && t.Health > 0
}

// IsHealthy reports whether the traveler carries no conditions.
func (t *Traveler) IsHealthy() bool {
	return len(t.Conditions) == 0
}

// CanWork reports whether the traveler may hunt, forage, or scout today.
func (t *Traveler) CanWork() bool {
	if !t.IsAlive() {
		return false
	}
	for _, c := range t.Conditions {
		if !c.effects().canWork {
			return false
		}
	}
	return true
}

// EffectiveSkill folds the role bonus, health, and morale into a single
// usable skill value. Morale scales between half and full strength.
func (t *Traveler) EffectiveSkill(skill Skill, base int) int {
	bonus := t.Role.Bonus(skill)
	healthMod := float64(t.Health) / 100
	moraleMod := 0.5 + float64(t.Morale)/200
	return int(float64(base) * (1 + float64(bonus)/100) * healthMod * moraleMod)
}

// TakeDamage applies damage and reports the actual amount taken and
// whether it killed the traveler. The dead take no further damage.
func (t *Traveler) TakeDamage(amount int) (int, bool) {
	if !t.IsAlive() {
		return 0, true
	}
	actual := min(amount, t.Health)
	t.Health -= actual
	if t.Health <= 0 {
		t.Health = 0
		t.Dead = true
		return actual, true
	}
	return actual, false
}

// Heal restores health, boosted when a medic tends the patient.
// Returns the amount actually restored.
func (t *Traveler) Heal(amount int, medicTended bool) int {
	if !t.IsAlive() {
		return 0
	}
	if medicTended {
		amount = int(float64(amount) * 1.35)
	}
	before := t.Health
	t.Health = min(t.MaxHealth, t.Health+amount)
	return t.Health - before
}

// AddCondition attaches a condition once; re-adding is a no-op.
func (t *Traveler) AddCondition(c Condition) bool {
	if t.HasCondition(c) {
		return false
	}
	t.Conditions = append(t.Conditions, c)
	return true
}

func (t *Traveler) RemoveCondition(c Condition) bool {
	for i, have := range t.Conditions {
		if have == c {
			t.Conditions = slices.Delete(t.Conditions, i, i+1)
			return true
		}
	}
	return false
}

func (t *Traveler) HasCondition(c Condition) bool {
	return slices.Contains(t.Conditions, c)
}

func (t *Traveler) ChangeMorale(amount int) int {
	t.Morale = clamp(t.Morale+amount, 0, 100)
	return t.Morale
}

// DailyResult records what one day did to a traveler.
type DailyResult struct {
	HealthChange        int
	MoraleChange        int
	ConditionsWorsened  []Condition
	ConditionsRecovered []Condition
	Died                bool
}

// DailyUpdate applies one day of condition wear. Drains are summed across
// conditions and applied once, then natural morale recovery runs for the
// healthy, then each condition rolls escalation and recovery. Difficulty
// scales how hard conditions bite and how readily they clear.
func (t *Traveler) DailyUpdate(rng *rand.Rand, mods DifficultyModifiers) DailyResult {
	var res DailyResult
	if !t.IsAlive() {
		return res
	}
	t.DaysSurvived++

	healthDrain := 0
	moraleDrain := 0
	for _, c := range t.Conditions {
		eff := c.effects()
		healthDrain += eff.healthDrain
		moraleDrain += eff.moraleDrain
	}

	if healthDrain > 0 {
		healthDrain = max(1, int(float64(healthDrain)*mods.DiseaseSeverity))
		taken, died := t.TakeDamage(healthDrain)
		res.HealthChange -= taken
		res.Died = died
	}
	if moraleDrain > 0 {
		t.ChangeMorale(-moraleDrain)
		res.MoraleChange -= moraleDrain
	}

	if t.IsHealthy() && t.Morale < 50 {
		recovery := rollBetween(rng, 1, 3)
		t.ChangeMorale(recovery)
		res.MoraleChange += recovery
	}

	infectChance := int(10 * mods.DiseaseSeverity)
	recoverChance := max(1, int(5*mods.NaturalRecovery))
	for _, c := range slices.Clone(t.Conditions) {
		if c == ConditionInjured && rollPercent(rng) <= infectChance {
			if t.AddCondition(ConditionInfection) {
				res.ConditionsWorsened = append(res.ConditionsWorsened, ConditionInfection)
			}
		}
		if c == ConditionExhausted || c == ConditionInjured {
			if rollPercent(rng) <= recoverChance {
				t.RemoveCondition(c)
				res.ConditionsRecovered = append(res.ConditionsRecovered, c)
			}
		}
	}
	return res
}

// TravelSpeedModifier sums condition slowdowns with the health penalty.
// The health bands do not stack; only the worst applies.
func (t *Traveler) TravelSpeedModifier() int {
	modifier := 0
	for _, c := range t.Conditions {
		modifier += c.effects().travelSpeed
	}
	switch {
	case t.Health < 30:
		modifier -= 20
	case t.Health < 50:
		modifier -= 10
	}
	return modifier
}

func (t *Traveler) String() string {
	status := "DEAD"
	if t.IsAlive() {
		status = fmt.Sprintf("HP:%d M:%d", t.Health, t.Morale)
	}
	conditions := "Healthy"
	if len(t.Conditions) > 0 {
		names := make([]string, len(t.Conditions))
		for i, c := range t.Conditions {
			names[i] = c.Name()
		}
		conditions = strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s (%s) %s [%s]", t.Name, t.Role.Name(), status, conditions)
}
