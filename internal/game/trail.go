package game

import "fmt"

// Location is a point on the trail: a landmark, settlement or the
// destination itself.
type Location struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Region        string   `json:"region"`
	MileMarker    int      `json:"mile_marker"`
	Terrain       Terrain  `json:"terrain"`
	Description   string   `json:"description"`
	IsLandmark    bool     `json:"is_landmark,omitempty"`
	IsSettlement  bool     `json:"is_settlement,omitempty"`
	IsDestination bool     `json:"is_destination,omitempty"`
	TradeGoods    []string `json:"trade_goods,omitempty"`
	Hazards       []string `json:"hazards,omitempty"`
	HuntingBonus  int      `json:"hunting_bonus,omitempty"`
	TravelBonus   int      `json:"travel_bonus,omitempty"`
	WaterNearby   bool     `json:"water_available,omitempty"`
	Elevation     int      `json:"elevation,omitempty"`
	Milestone     string   `json:"milestone,omitempty"`
}

// Trail is the route: an ordered location list, the river crossings
// and route forks along it, and the party's position.
type Trail struct {
	Locations     []Location          `json:"-"`
	Crossings     []Crossing          `json:"-"`
	Forks         []RouteFork         `json:"-"`
	MilesTraveled int                 `json:"miles_traveled"`
	LocationIndex int                 `json:"location_index"`
	Cleared       []string            `json:"crossings_cleared,omitempty"`
	RoutesTaken   []RouteChoiceRecord `json:"routes_taken,omitempty"`
}

// NewTrail builds a trail from content-provided locations, crossings
// and forks. Locations must be ordered by mile marker.
func NewTrail(locations []Location, crossings []Crossing, forks []RouteFork) (*Trail, error) {
	if len(locations) < 2 {
		return nil, fmt.Errorf("trail needs at least a start and a destination, got %d locations", len(locations))
	}
	for i := 1; i < len(locations); i++ {
		if locations[i].MileMarker < locations[i-1].MileMarker {
			return nil, fmt.Errorf("locations out of order: %s at mile %d after %s at mile %d",
				locations[i].ID, locations[i].MileMarker, locations[i-1].ID, locations[i-1].MileMarker)
		}
	}
	if !locations[len(locations)-1].IsDestination {
		return nil, fmt.Errorf("last location %s is not marked as the destination", locations[len(locations)-1].ID)
	}
	return &Trail{Locations: locations, Crossings: crossings, Forks: forks}, nil
}

func (t *Trail) CurrentLocation() *Location {
	if t.LocationIndex >= 0 && t.LocationIndex < len(t.Locations) {
		return &t.Locations[t.LocationIndex]
	}
	return &t.Locations[0]
}

func (t *Trail) NextLocation() *Location {
	if t.LocationIndex+1 < len(t.Locations) {
		return &t.Locations[t.LocationIndex+1]
	}
	return nil
}

func (t *Trail) TotalDistance() int {
	return t.Locations[len(t.Locations)-1].MileMarker
}

func (t *Trail) DistanceToNext() int {
	next := t.NextLocation()
	if next == nil {
		return 0
	}
	return next.MileMarker - t.MilesTraveled
}

func (t *Trail) ProgressPercentage() float64 {
	total := t.TotalDistance()
	if total <= 0 {
		return 0
	}
	return float64(t.MilesTraveled) / float64(total) * 100
}

func (t *Trail) AtDestination() bool {
	return t.CurrentLocation().IsDestination
}

// CurrentTerrain is the terrain of the last location passed.
func (t *Trail) CurrentTerrain() Terrain {
	return t.CurrentLocation().Terrain
}

// TravelProgress reports what one leg of travel passed and found.
type TravelProgress struct {
	MilesTraveled    int
	LocationsReached []*Location
	Milestones       []string
	Hazards          []string
	AtDestination    bool
	CrossingAhead    *Crossing
	ForkAhead        *RouteFork
}

// Travel advances down the trail, collecting every location crossed.
// Movement stops at the destination, at the first river crossing the
// party has not yet cleared, and at the first fork still undecided.
func (t *Trail) Travel(miles int) TravelProgress {
	var progress TravelProgress
	start := t.MilesTraveled
	target := min(start+miles, t.TotalDistance())

	for i := range t.Crossings {
		c := &t.Crossings[i]
		if c.MileMarker > start && c.MileMarker < target && !t.HasCleared(c.ID) {
			target = c.MileMarker
		}
	}
	for i := range t.Forks {
		f := &t.Forks[i]
		if f.MileMarker > start && f.MileMarker < target && !t.HasRouted(f.ID) {
			target = f.MileMarker
		}
	}

	for i := range t.Locations {
		loc := &t.Locations[i]
		if loc.MileMarker > start && loc.MileMarker <= target {
			progress.LocationsReached = append(progress.LocationsReached, loc)
			if loc.Milestone != "" {
				progress.Milestones = append(progress.Milestones, loc.Milestone)
			}
			progress.Hazards = append(progress.Hazards, loc.Hazards...)
			t.LocationIndex = i
		}
	}

	t.MilesTraveled = target
	progress.MilesTraveled = target - start
	progress.AtDestination = t.AtDestination()
	progress.CrossingAhead = t.CrossingNear(t.MilesTraveled, 10)
	progress.ForkAhead = t.ForkNear(t.MilesTraveled, 10)
	return progress
}

// MarkCleared records that the party is across the named crossing, so
// later travel is not held there again.
func (t *Trail) MarkCleared(crossingID string) {
	if !t.HasCleared(crossingID) {
		t.Cleared = append(t.Cleared, crossingID)
	}
}

func (t *Trail) HasCleared(crossingID string) bool {
	for _, id := range t.Cleared {
		if id == crossingID {
			return true
		}
	}
	return false
}

// MarkRouted records the branch taken at a fork, so later travel is
// not held there again.
func (t *Trail) MarkRouted(forkID, optionID string) {
	if !t.HasRouted(forkID) {
		t.RoutesTaken = append(t.RoutesTaken, RouteChoiceRecord{ForkID: forkID, OptionID: optionID})
	}
}

func (t *Trail) HasRouted(forkID string) bool {
	for _, r := range t.RoutesTaken {
		if r.ForkID == forkID {
			return true
		}
	}
	return false
}

// ForkNear finds a fork within tolerance miles of the position.
func (t *Trail) ForkNear(mile, tolerance int) *RouteFork {
	for i := range t.Forks {
		f := &t.Forks[i]
		if mile >= f.MileMarker-tolerance && mile <= f.MileMarker+tolerance {
			return f
		}
	}
	return nil
}

// CrossingNear finds a crossing within tolerance miles of the position.
func (t *Trail) CrossingNear(mile, tolerance int) *Crossing {
	for i := range t.Crossings {
		c := &t.Crossings[i]
		if mile >= c.MileMarker-tolerance && mile <= c.MileMarker+tolerance {
			return c
		}
	}
	return nil
}

// UpcomingLocations lists landmarks within range miles ahead, for
// scouting reports.
func (t *Trail) UpcomingLocations(rangeMiles int) []*Location {
	var upcoming []*Location
	for i := range t.Locations {
		loc := &t.Locations[i]
		if loc.MileMarker > t.MilesTraveled && loc.MileMarker <= t.MilesTraveled+rangeMiles {
			upcoming = append(upcoming, loc)
		}
	}
	return upcoming
}
