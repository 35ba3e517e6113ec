// Package config loads the expedition run configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/divide-trail/internal/game"
)

type Config struct {
	Seed       int64        `yaml:"seed"`
	Difficulty string       `yaml:"difficulty"`
	Pace       string       `yaml:"pace"`
	Rationing  string       `yaml:"rationing"`
	PartyName  string       `yaml:"party_name"`
	Members    []MemberSpec `yaml:"members"`
	Content    ContentSpec  `yaml:"content,omitempty"`
	SavesDir   string       `yaml:"saves_dir"`
	RecordsDB  string       `yaml:"records_db"`
}

type MemberSpec struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

// ContentSpec points at optional data pack overrides.
type ContentSpec struct {
	TrailPath  string `yaml:"trail,omitempty"`
	EventsPath string `yaml:"events,omitempty"`
}

// Load reads a config file, falling back to defaults when the path is
// empty. Bad files fail rather than half-apply.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Seed:       1846,
		Difficulty: string(game.DifficultyNormal),
		Pace:       string(game.PaceSteady),
		Rationing:  string(game.RationNormal),
		PartyName:  "The Donnelly Party",
		Members: []MemberSpec{
			{Name: "Marcus", Role: string(game.RoleTrailLeader)},
			{Name: "Sarah", Role: string(game.RoleHunter)},
			{Name: "Elias", Role: string(game.RoleMedic)},
			{Name: "June", Role: string(game.RoleScout)},
		},
		SavesDir:  "saves",
		RecordsDB: "records.db",
	}
}

func (c *Config) Normalize() {
	c.Difficulty = strings.ToLower(strings.TrimSpace(c.Difficulty))
	c.Pace = strings.ToLower(strings.TrimSpace(c.Pace))
	c.Rationing = strings.ToLower(strings.TrimSpace(c.Rationing))
	for i := range c.Members {
		c.Members[i].Name = strings.TrimSpace(c.Members[i].Name)
		c.Members[i].Role = strings.ToLower(strings.TrimSpace(c.Members[i].Role))
	}
}

func (c *Config) Validate() error {
	if _, err := game.ParseDifficulty(c.Difficulty); err != nil {
		return err
	}
	if _, err := game.ParsePace(c.Pace); err != nil {
		return err
	}
	if _, err := game.ParseRationing(c.Rationing); err != nil {
		return err
	}
	if len(c.Members) < game.MinPartySize || len(c.Members) > game.MaxPartySize {
		return fmt.Errorf("party must have between %d and %d members, got %d",
			game.MinPartySize, game.MaxPartySize, len(c.Members))
	}
	seen := make(map[string]bool)
	for _, m := range c.Members {
		if m.Name == "" {
			return fmt.Errorf("every member needs a name")
		}
		key := strings.ToLower(m.Name)
		if seen[key] {
			return fmt.Errorf("duplicate member name %q", m.Name)
		}
		seen[key] = true
		if _, err := game.ParseRole(m.Role); err != nil {
			return err
		}
	}
	return nil
}

// BuildParty constructs the configured party.
func (c *Config) BuildParty() (*game.Party, error) {
	party := game.NewParty(c.PartyName)
	rationing, err := game.ParseRationing(c.Rationing)
	if err != nil {
		return nil, err
	}
	party.Rationing = rationing
	for _, m := range c.Members {
		role, err := game.ParseRole(m.Role)
		if err != nil {
			return nil, err
		}
		if !party.AddMember(game.NewTraveler(m.Name, role)) {
			return nil, fmt.Errorf("party is full at %d members", game.MaxPartySize)
		}
	}
	return party, nil
}
