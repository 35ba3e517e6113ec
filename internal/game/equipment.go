package game

import (
	"fmt"
	"math/rand/v2"
)

// EquipmentBonus names the flat bonuses the engine folds into its
// modifier sums.
type EquipmentBonus string

const (
	BonusHunting           EquipmentBonus = "hunting"
	BonusTravelSpeed       EquipmentBonus = "travel_speed"
	BonusWeatherProtection EquipmentBonus = "weather_protection"
	BonusMorale            EquipmentBonus = "morale"
	BonusRepair            EquipmentBonus = "repair"
)

type EquipmentKind string

const (
	EquipFlintlockRifle EquipmentKind = "flintlock_rifle"
	EquipKentuckyRifle  EquipmentKind = "kentucky_rifle"
	EquipCanvasTent     EquipmentKind = "canvas_tent"
	EquipLeatherTent    EquipmentKind = "leather_tent"
	EquipOxWagon        EquipmentKind = "ox_wagon"
	EquipRepairKit      EquipmentKind = "repair_kit"
	EquipWinterClothes  EquipmentKind = "winter_clothes"
	EquipFishingNet     EquipmentKind = "fishing_net"
)

func AllEquipmentKinds() []EquipmentKind {
	return []EquipmentKind{
		EquipFlintlockRifle, EquipKentuckyRifle, EquipCanvasTent,
		EquipLeatherTent, EquipOxWagon, EquipRepairKit,
		EquipWinterClothes, EquipFishingNet,
	}
}

type equipmentData struct {
	name             string
	maxDurability    float64
	degradationRate  float64
	repairDifficulty int
	bonuses          map[EquipmentBonus]int
}

func (k EquipmentKind) data() equipmentData {
	switch k {
	case EquipFlintlockRifle:
		return equipmentData{
			name: "Flintlock Rifle", maxDurability: 100, degradationRate: 2,
			repairDifficulty: 40, bonuses: map[EquipmentBonus]int{BonusHunting: 15},
		}
	case EquipKentuckyRifle:
		return equipmentData{
			name: "Kentucky Long Rifle", maxDurability: 120, degradationRate: 1.5,
			repairDifficulty: 50, bonuses: map[EquipmentBonus]int{BonusHunting: 25},
		}
	case EquipCanvasTent:
		return equipmentData{
			name: "Canvas Tent", maxDurability: 100, degradationRate: 0.5,
			repairDifficulty: 20, bonuses: map[EquipmentBonus]int{BonusWeatherProtection: 50, BonusMorale: 5},
		}
	case EquipLeatherTent:
		return equipmentData{
			name: "Leather Tent", maxDurability: 150, degradationRate: 0.3,
			repairDifficulty: 35, bonuses: map[EquipmentBonus]int{BonusWeatherProtection: 70, BonusMorale: 10},
		}
	case EquipOxWagon:
		return equipmentData{
			name: "Ox Wagon", maxDurability: 200, degradationRate: 1,
			repairDifficulty: 45, bonuses: map[EquipmentBonus]int{BonusTravelSpeed: 10},
		}
	case EquipRepairKit:
		return equipmentData{
			name: "Repair Kit", maxDurability: 50, degradationRate: 1,
			repairDifficulty: 10, bonuses: map[EquipmentBonus]int{BonusRepair: 30},
		}
	case EquipWinterClothes:
		return equipmentData{
			name: "Winter Clothes", maxDurability: 80, degradationRate: 0.8,
			repairDifficulty: 15, bonuses: map[EquipmentBonus]int{BonusWeatherProtection: 40},
		}
	case EquipFishingNet:
		return equipmentData{
			name: "Fishing Net", maxDurability: 60, degradationRate: 1.5,
			repairDifficulty: 25, bonuses: map[EquipmentBonus]int{},
		}
	default:
		panic(fmt.Sprintf("unknown equipment kind: %s", string(k)))
	}
}

func (k EquipmentKind) Name() string { return k.data().name }

// EquipmentItem is one piece of gear with wear state.
type EquipmentItem struct {
	Kind          EquipmentKind `json:"kind"`
	Durability    float64       `json:"durability"`
	MaxDurability float64       `json:"max_durability"`
	TimesRepaired int           `json:"times_repaired,omitempty"`
}

func NewEquipmentItem(kind EquipmentKind) *EquipmentItem {
	d := kind.data()
	return &EquipmentItem{Kind: kind, Durability: d.maxDurability, MaxDurability: d.maxDurability}
}

func (i *EquipmentItem) DurabilityPercentage() float64 {
	if i.MaxDurability <= 0 {
		return 0
	}
	return i.Durability / i.MaxDurability * 100
}

func (i *EquipmentItem) IsBroken() bool {
	return i.Durability <= 0
}

// conditionMultiplier scales bonuses down as the item wears.
func (i *EquipmentItem) conditionMultiplier() float64 {
	pct := i.DurabilityPercentage()
	switch {
	case pct <= 0:
		return 0
	case pct <= 25:
		return 0.5
	case pct <= 50:
		return 0.7
	case pct <= 75:
		return 0.85
	default:
		return 1.0
	}
}

// EffectiveBonuses returns the item's bonuses adjusted for wear. Broken
// gear contributes nothing.
func (i *EquipmentItem) EffectiveBonuses() map[EquipmentBonus]int {
	if i.IsBroken() {
		return nil
	}
	mult := i.conditionMultiplier()
	effective := make(map[EquipmentBonus]int)
	for bonus, value := range i.Kind.data().bonuses {
		effective[bonus] = int(float64(value) * mult)
	}
	return effective
}

// Degrade wears the item by one use. Worn gear wears faster.
func (i *EquipmentItem) Degrade(usageIntensity float64) float64 {
	if i.IsBroken() {
		return 0
	}
	wearPenalty := 1.0
	if i.DurabilityPercentage() < 50 {
		wearPenalty = 1.2
	}
	if i.DurabilityPercentage() < 25 {
		wearPenalty = 1.5
	}
	loss := i.Kind.data().degradationRate * usageIntensity * wearPenalty
	before := i.Durability
	i.Durability = max(0, i.Durability-loss)
	return before - i.Durability
}

// Repair attempts to restore durability. Success depends on the item's
// repair difficulty against mechanic skill; a botched attempt can make
// things worse. Repeated repairs restore less each time.
func (i *EquipmentItem) Repair(rng *rand.Rand, amount float64, hasRepairKit bool, mechanicBonus int) (float64, bool) {
	if i.Durability >= i.MaxDurability {
		return 0, false
	}

	skill := 50 + mechanicBonus
	if hasRepairKit {
		skill += 30
	}
	chance := skill - i.Kind.data().repairDifficulty + 50
	if chance < 10 {
		chance = 10
	}
	if chance > 95 {
		chance = 95
	}

	if rollPercent(rng) > chance {
		if rollPercent(rng) <= 10 {
			damage := float64(rollBetween(rng, 5, 15))
			i.Durability = max(0, i.Durability-damage)
			return -damage, false
		}
		return 0, false
	}

	mult := 1.0
	if hasRepairKit {
		mult = 1.5
	}
	qualityPenalty := max(0.5, 1.0-float64(i.TimesRepaired)*0.05)

	before := i.Durability
	i.Durability = min(i.MaxDurability, i.Durability+amount*mult*qualityPenalty)
	i.TimesRepaired++
	return i.Durability - before, true
}

// Kit is the party's equipment as the engine sees it: a bag of items
// whose usable bonuses sum into flat modifiers.
type Kit struct {
	Items []*EquipmentItem `json:"items"`
}

func NewKit(items ...*EquipmentItem) *Kit {
	return &Kit{Items: items}
}

// StartingKit outfits a new expedition. Harder difficulties set out
// with less.
func StartingKit(partySize int, difficulty Difficulty) *Kit {
	kit := NewKit(
		NewEquipmentItem(EquipFlintlockRifle),
		NewEquipmentItem(EquipCanvasTent),
		NewEquipmentItem(EquipOxWagon),
	)
	switch difficulty {
	case DifficultyEasy:
		kit.Items = append(kit.Items,
			NewEquipmentItem(EquipRepairKit),
			NewEquipmentItem(EquipWinterClothes),
			NewEquipmentItem(EquipFishingNet))
	case DifficultyNormal:
		kit.Items = append(kit.Items, NewEquipmentItem(EquipRepairKit))
	case DifficultyHard, DifficultyExtreme:
	default:
		panic(fmt.Sprintf("unknown difficulty: %s", string(difficulty)))
	}
	if partySize >= 4 {
		kit.Items = append(kit.Items, NewEquipmentItem(EquipCanvasTent))
	}
	return kit
}

// Bonus sums one named bonus across all usable items.
func (k *Kit) Bonus(bonus EquipmentBonus) int {
	total := 0
	for _, item := range k.Items {
		total += item.EffectiveBonuses()[bonus]
	}
	return total
}

// Has reports whether a working item of the kind is carried.
func (k *Kit) Has(kind EquipmentKind) bool {
	for _, item := range k.Items {
		if item.Kind == kind && !item.IsBroken() {
			return true
		}
	}
	return false
}

// DegradeDaily wears travel gear for one day on the move. Severe
// weather is harder on everything.
func (k *Kit) DegradeDaily(weather Weather) {
	intensity := 1.0
	if weather.IsSevere() {
		intensity = 1.5
	}
	for _, item := range k.Items {
		item.Degrade(intensity)
	}
}
