package game

import (
	"encoding/json"
	"fmt"
)

type ResourceKind string

const (
	ResourceFood       ResourceKind = "food"
	ResourceWater      ResourceKind = "water"
	ResourceAmmunition ResourceKind = "ammunition"
	ResourceMedical    ResourceKind = "medical"
	ResourceClothing   ResourceKind = "clothing"
	ResourceTools      ResourceKind = "tools"
	ResourceMoney      ResourceKind = "money"
)

// AllResourceKinds returns every kind in display/serialization order.
func AllResourceKinds() []ResourceKind {
	return []ResourceKind{
		ResourceFood,
		ResourceWater,
		ResourceAmmunition,
		ResourceMedical,
		ResourceClothing,
		ResourceTools,
		ResourceMoney,
	}
}

func ParseResourceKind(s string) (ResourceKind, error) {
	for _, k := range AllResourceKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown resource %q", s)
}

func (k ResourceKind) Name() string {
	switch k {
	case ResourceFood:
		return "Food"
	case ResourceWater:
		return "Water"
	case ResourceAmmunition:
		return "Ammunition"
	case ResourceMedical:
		return "Medical Supplies"
	case ResourceClothing:
		return "Clothing"
	case ResourceTools:
		return "Tools"
	case ResourceMoney:
		return "Money"
	default:
		panic(fmt.Sprintf("unknown resource kind: %s", string(k)))
	}
}

func (k ResourceKind) Unit() string {
	switch k {
	case ResourceFood:
		return "lbs"
	case ResourceWater:
		return "gallons"
	case ResourceAmmunition:
		return "rounds"
	case ResourceMedical:
		return "units"
	case ResourceClothing:
		return "sets"
	case ResourceTools:
		return "kits"
	case ResourceMoney:
		return "dollars"
	default:
		panic(fmt.Sprintf("unknown resource kind: %s", string(k)))
	}
}

func defaultCapacity(kind ResourceKind) float64 {
	switch kind {
	case ResourceFood:
		return 500
	case ResourceWater:
		return 100
	case ResourceAmmunition:
		return 200
	case ResourceMedical:
		return 50
	case ResourceClothing:
		return 20
	case ResourceTools:
		return 10
	case ResourceMoney:
		return 10000
	default:
		panic(fmt.Sprintf("unknown resource kind: %s", string(kind)))
	}
}

// Daily per-person consumption for the kinds consumed every day.
func dailyConsumptionRate(kind ResourceKind) float64 {
	switch kind {
	case ResourceFood:
		return 2 // lbs per person per day
	case ResourceWater:
		return 1 // gallon per person per day
	default:
		return 0
	}
}

// Daily decay rates. Only perishables decay; everything else holds.
func baseDecayRate(kind ResourceKind) float64 {
	switch kind {
	case ResourceFood:
		return 0.02
	case ResourceWater:
		return 0.01
	case ResourceClothing:
		return 0.005
	default:
		return 0
	}
}

// Stock tracks one resource kind's quantity, carrying capacity and quality.
type Stock struct {
	Kind     ResourceKind `json:"kind"`
	Quantity float64      `json:"quantity"`
	Capacity float64      `json:"capacity"`
	Quality  float64      `json:"quality"` // 0-100
}

func newStock(kind ResourceKind) *Stock {
	return &Stock{Kind: kind, Capacity: defaultCapacity(kind), Quality: 100}
}

func (s *Stock) IsEmpty() bool {
	return s.Quantity <= 0
}

func (s *Stock) IsFull() bool {
	return s.Quantity >= s.Capacity
}

// Percentage of capacity in use. Zero-capacity stocks report 0.
func (s *Stock) Percentage() float64 {
	if s.Capacity <= 0 {
		return 0
	}
	return s.Quantity / s.Capacity * 100
}

// Add increases quantity, clamped at capacity, and returns the amount
// actually stored. Callers compare against the requested amount to detect
// partial fulfillment.
func (s *Stock) Add(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	space := s.Capacity - s.Quantity
	actual := amount
	if actual > space {
		actual = space
	}
	s.Quantity += actual
	return actual
}

// Remove decreases quantity, clamped at zero, returning the amount removed.
func (s *Stock) Remove(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > s.Quantity {
		actual = s.Quantity
	}
	s.Quantity -= actual
	return actual
}

// ApplyDecay removes the daily spoilage fraction and degrades quality at
// ten times the effective rate. Quality never recovers on its own.
func (s *Stock) ApplyDecay(rateMultiplier float64) float64 {
	base := baseDecayRate(s.Kind)
	if base <= 0 || s.Quantity <= 0 {
		return 0
	}
	rate := base * rateMultiplier
	loss := s.Quantity * rate
	s.Quantity -= loss
	if s.Quantity < 0 {
		s.Quantity = 0
	}
	s.Quality -= rate * 10
	if s.Quality < 0 {
		s.Quality = 0
	}
	return loss
}

// Ledger holds the party's supplies, one stock per kind.
type Ledger struct {
	stocks map[ResourceKind]*Stock
}

func NewLedger() *Ledger {
	l := &Ledger{stocks: make(map[ResourceKind]*Stock, len(AllResourceKinds()))}
	for _, kind := range AllResourceKinds() {
		l.stocks[kind] = newStock(kind)
	}
	return l
}

// MarshalJSON writes the stocks keyed by kind so saves stay readable.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.stocks)
}

// UnmarshalJSON rebuilds the ledger from a save, filling any kind the
// save predates with a fresh empty stock.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	saved := make(map[ResourceKind]*Stock)
	if err := json.Unmarshal(data, &saved); err != nil {
		return err
	}
	l.stocks = make(map[ResourceKind]*Stock, len(AllResourceKinds()))
	for _, kind := range AllResourceKinds() {
		if s, ok := saved[kind]; ok && s != nil {
			s.Kind = kind
			l.stocks[kind] = s
		} else {
			l.stocks[kind] = newStock(kind)
		}
	}
	return nil
}

func (l *Ledger) Stock(kind ResourceKind) *Stock {
	s, ok := l.stocks[kind]
	if !ok {
		panic(fmt.Sprintf("unknown resource kind: %s", string(kind)))
	}
	return s
}

func (l *Ledger) Quantity(kind ResourceKind) float64 {
	return l.Stock(kind).Quantity
}

func (l *Ledger) Add(kind ResourceKind, amount float64) float64 {
	return l.Stock(kind).Add(amount)
}

func (l *Ledger) Remove(kind ResourceKind, amount float64) float64 {
	return l.Stock(kind).Remove(amount)
}

func (l *Ledger) HasEnough(kind ResourceKind, amount float64) bool {
	return l.Quantity(kind) >= amount
}

func (l *Ledger) SetQuantity(kind ResourceKind, amount float64) {
	s := l.Stock(kind)
	s.Quantity = clampFloat(amount, 0, s.Capacity)
}

// SetStartingSupplies stocks the ledger for a new journey, scaled by party
// size and the difficulty's starting-resources multiplier.
func (l *Ledger) SetStartingSupplies(partySize int, difficulty Difficulty) {
	mult := difficulty.Modifiers().StartingResources
	base := map[ResourceKind]float64{
		ResourceFood:       100 * float64(partySize),
		ResourceWater:      20 * float64(partySize),
		ResourceAmmunition: 50,
		ResourceMedical:    10,
		ResourceClothing:   float64(partySize + 2),
		ResourceTools:      3,
		ResourceMoney:      200,
	}
	for kind, amount := range base {
		l.SetQuantity(kind, float64(int(amount*mult)))
	}
}

// Shortage records a consumption request that could not be fully met.
type Shortage struct {
	Kind      ResourceKind
	Requested float64
	Actual    float64
}

func (s Shortage) Missing() float64 {
	return s.Requested - s.Actual
}

// ConsumptionResult reports one day's consumption in full: what was taken,
// what ran short and any low-supply warnings.
type ConsumptionResult struct {
	Consumed  map[ResourceKind]float64
	Shortages []Shortage
	Warnings  []string
}

func (r ConsumptionResult) ShortOn(kind ResourceKind) bool {
	for _, s := range r.Shortages {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// DailyNeed computes the day's consumption per kind for the given party
// size, terrain, rationing and difficulty consumption multiplier:
// base × size × rationMult × terrainMult × consumptionMult.
func (l *Ledger) DailyNeed(partySize int, terrain Terrain, rationing Rationing, consumptionMult float64) map[ResourceKind]float64 {
	need := make(map[ResourceKind]float64, 2)
	for _, kind := range []ResourceKind{ResourceFood, ResourceWater} {
		base := dailyConsumptionRate(kind)
		need[kind] = base * float64(partySize) * rationing.ConsumptionMultiplier() *
			terrain.ConsumptionMultiplier(kind) * consumptionMult
	}
	return need
}

// ConsumeDaily removes the day's food and water. Shortages are recorded,
// never raised; condition fallout is the caller's concern.
func (l *Ledger) ConsumeDaily(partySize int, terrain Terrain, rationing Rationing, consumptionMult float64) ConsumptionResult {
	result := ConsumptionResult{Consumed: make(map[ResourceKind]float64, 2)}

	need := l.DailyNeed(partySize, terrain, rationing, consumptionMult)
	for _, kind := range []ResourceKind{ResourceFood, ResourceWater} {
		requested := need[kind]
		available := l.Quantity(kind)
		actual := l.Remove(kind, requested)
		result.Consumed[kind] = actual
		if actual < requested {
			result.Shortages = append(result.Shortages, Shortage{Kind: kind, Requested: requested, Actual: actual})
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Not enough %s! Needed %.1f, had %.1f", kind.Name(), requested, available))
		}
	}

	for _, kind := range []ResourceKind{ResourceFood, ResourceWater, ResourceAmmunition} {
		s := l.Stock(kind)
		if s.Quantity > 0 && s.Percentage() < 20 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s supplies are running low (%d %s remaining)", s.Kind.Name(), int(s.Quantity), s.Kind.Unit()))
		}
	}

	return result
}

// ApplyDailyDecay spoils the perishable stocks under the given weather.
func (l *Ledger) ApplyDailyDecay(weather Weather, decayMultiplier float64) map[ResourceKind]float64 {
	weatherMult := weather.DecayMultiplier() * decayMultiplier
	losses := make(map[ResourceKind]float64)
	for _, kind := range AllResourceKinds() {
		if baseDecayRate(kind) <= 0 {
			continue
		}
		loss := l.Stock(kind).ApplyDecay(weatherMult)
		if loss > 0 {
			losses[kind] = loss
		}
	}
	return losses
}

// DaysOfSupplies estimates how many days each consumable lasts at current
// rationing. Kinds that are not consumed daily report a large sentinel.
func (l *Ledger) DaysOfSupplies(partySize int, rationing Rationing, consumptionMult float64) map[ResourceKind]int {
	need := l.DailyNeed(partySize, TerrainPlains, rationing, consumptionMult)
	days := make(map[ResourceKind]int, len(need))
	for kind, daily := range need {
		if daily > 0 {
			days[kind] = int(l.Quantity(kind) / daily)
		} else {
			days[kind] = 999
		}
	}
	return days
}
