package game

import "fmt"

// RouteKind classifies a branch at a trail fork.
type RouteKind string

const (
	RouteMain     RouteKind = "main"
	RouteShortcut RouteKind = "shortcut"
	RouteSafe     RouteKind = "safe"
	RouteScenic   RouteKind = "scenic"
)

// RouteOption is one branch of a fork: its length against the main
// line, the danger it carries, and what it demands of the party.
type RouteOption struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Kind         RouteKind `json:"kind"`
	Description  string    `json:"description"`
	Distance     int       `json:"distance"`
	BaseDistance int       `json:"base_distance"`
	DangerLevel  int       `json:"danger_level"`
	Hazards      []string  `json:"hazards,omitempty"`
	MinHealth    int       `json:"min_health,omitempty"`
	Skill        Skill     `json:"skill,omitempty"`
	MinSkill     int       `json:"min_skill,omitempty"`
	MoraleReward int       `json:"morale_reward,omitempty"`
}

// MilesSaved is positive when the branch beats the main line and
// negative when it winds the long way around.
func (r *RouteOption) MilesSaved() int {
	return r.BaseDistance - r.Distance
}

// CheckRequirements reports whether the party is up to this branch,
// with the reason when it is not.
func (r *RouteOption) CheckRequirements(avgHealth float64, skillValue int) (bool, string) {
	if r.MinHealth > 0 && avgHealth < float64(r.MinHealth) {
		return false, fmt.Sprintf("the party is too weak (needs %d+ average health)", r.MinHealth)
	}
	if r.MinSkill > 0 && skillValue < r.MinSkill {
		return false, fmt.Sprintf("needs %s skill of %d+", string(r.Skill), r.MinSkill)
	}
	return true, ""
}

// RouteFork is a decision point where the trail splits and the party
// must pick a branch before travel continues.
type RouteFork struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	MileMarker  int           `json:"mile_marker"`
	Description string        `json:"description"`
	Options     []RouteOption `json:"options"`
}

// Option finds a branch by id, or nil.
func (f *RouteFork) Option(id string) *RouteOption {
	for i := range f.Options {
		if f.Options[i].ID == id {
			return &f.Options[i]
		}
	}
	return nil
}

// RouteChoiceRecord remembers which branch the party took at a fork.
type RouteChoiceRecord struct {
	ForkID   string `json:"fork_id"`
	OptionID string `json:"option_id"`
}
