// Package content loads the trail and event data packs. Packs are
// embedded JSON validated against embedded schemas; override files on
// disk go through the same validation.
package content

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/appengine-ltd/divide-trail/internal/game"
)

//go:embed data/*.json schemas/*.json
var files embed.FS

// Pack is the loaded static content for one run.
type Pack struct {
	Events    []game.Event
	Locations []game.Location
	Crossings []game.Crossing
	Forks     []game.RouteFork
}

// GamePack adapts the pack for engine restore.
func (p *Pack) GamePack() game.ContentPack {
	return game.ContentPack{Events: p.Events, Locations: p.Locations, Crossings: p.Crossings, Forks: p.Forks}
}

type trailDocument struct {
	Locations []game.Location  `json:"locations"`
	Crossings []game.Crossing  `json:"crossings"`
	Forks     []game.RouteFork `json:"forks"`
}

type eventsDocument struct {
	Events []game.Event `json:"events"`
}

// Load returns the embedded default packs.
func Load() (*Pack, error) {
	return load("", "")
}

// LoadWithOverrides loads packs, replacing embedded data with the
// given files where paths are non-empty.
func LoadWithOverrides(trailPath, eventsPath string) (*Pack, error) {
	return load(trailPath, eventsPath)
}

func load(trailPath, eventsPath string) (*Pack, error) {
	trailData, err := readPack("data/trail.json", trailPath)
	if err != nil {
		return nil, err
	}
	eventsData, err := readPack("data/events.json", eventsPath)
	if err != nil {
		return nil, err
	}

	if err := validate("trail.schema.json", trailData); err != nil {
		return nil, fmt.Errorf("trail pack: %w", err)
	}
	if err := validate("events.schema.json", eventsData); err != nil {
		return nil, fmt.Errorf("events pack: %w", err)
	}

	var trail trailDocument
	if err := json.Unmarshal(trailData, &trail); err != nil {
		return nil, fmt.Errorf("decoding trail pack: %w", err)
	}
	var events eventsDocument
	if err := json.Unmarshal(eventsData, &events); err != nil {
		return nil, fmt.Errorf("decoding events pack: %w", err)
	}

	if err := checkTrail(trail); err != nil {
		return nil, err
	}
	if err := checkEvents(events.Events); err != nil {
		return nil, err
	}

	return &Pack{
		Events:    events.Events,
		Locations: trail.Locations,
		Crossings: trail.Crossings,
		Forks:     trail.Forks,
	}, nil
}

func readPack(embedded, override string) ([]byte, error) {
	if override != "" {
		data, err := os.ReadFile(override)
		if err != nil {
			return nil, fmt.Errorf("reading content override: %w", err)
		}
		return data, nil
	}
	data, err := files.ReadFile(embedded)
	if err != nil {
		return nil, fmt.Errorf("reading embedded pack %s: %w", embedded, err)
	}
	return data, nil
}

func validate(schemaName string, document []byte) error {
	schemaData, err := files.ReadFile("schemas/" + schemaName)
	if err != nil {
		return fmt.Errorf("reading schema %s: %w", schemaName, err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaName, bytes.NewReader(schemaData)); err != nil {
		return fmt.Errorf("loading schema %s: %w", schemaName, err)
	}
	schema, err := compiler.Compile(schemaName)
	if err != nil {
		return fmt.Errorf("compiling schema %s: %w", schemaName, err)
	}

	var decoded any
	if err := json.Unmarshal(document, &decoded); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	if err := schema.Validate(decoded); err != nil {
		return fmt.Errorf("validating against %s: %w", schemaName, err)
	}
	return nil
}

// checkTrail enforces the structural rules the schema cannot express:
// ordering, uniqueness and a single destination at the end.
func checkTrail(doc trailDocument) error {
	seen := make(map[string]bool)
	lastMile := -1
	for i, loc := range doc.Locations {
		if seen[loc.ID] {
			return fmt.Errorf("duplicate location id %q", loc.ID)
		}
		seen[loc.ID] = true
		if loc.MileMarker <= lastMile && i > 0 {
			return fmt.Errorf("location %q out of mile order", loc.ID)
		}
		lastMile = loc.MileMarker
		if loc.IsDestination && i != len(doc.Locations)-1 {
			return fmt.Errorf("destination %q is not the final location", loc.ID)
		}
	}
	last := doc.Locations[len(doc.Locations)-1]
	if !last.IsDestination {
		return fmt.Errorf("final location %q is not marked as the destination", last.ID)
	}

	total := last.MileMarker
	crossingSeen := make(map[string]bool)
	for _, c := range doc.Crossings {
		if crossingSeen[c.ID] {
			return fmt.Errorf("duplicate crossing id %q", c.ID)
		}
		crossingSeen[c.ID] = true
		if c.MileMarker <= 0 || c.MileMarker >= total {
			return fmt.Errorf("crossing %q mile marker %d is off the trail", c.ID, c.MileMarker)
		}
	}

	forkSeen := make(map[string]bool)
	for _, f := range doc.Forks {
		if forkSeen[f.ID] {
			return fmt.Errorf("duplicate fork id %q", f.ID)
		}
		forkSeen[f.ID] = true
		if f.MileMarker <= 0 || f.MileMarker >= total {
			return fmt.Errorf("fork %q mile marker %d is off the trail", f.ID, f.MileMarker)
		}
		if len(f.Options) < 2 {
			return fmt.Errorf("fork %q needs at least two routes, has %d", f.ID, len(f.Options))
		}
		optionSeen := make(map[string]bool)
		for _, opt := range f.Options {
			if optionSeen[opt.ID] {
				return fmt.Errorf("fork %q has duplicate route id %q", f.ID, opt.ID)
			}
			optionSeen[opt.ID] = true
			if opt.Distance <= 0 || opt.BaseDistance <= 0 {
				return fmt.Errorf("fork %q route %q needs positive distances", f.ID, opt.ID)
			}
		}
	}
	return nil
}

// checkEvents verifies outcome chances sum to 100 per choice and ids
// are unique.
func checkEvents(events []game.Event) error {
	seen := make(map[string]bool)
	for _, ev := range events {
		if seen[ev.ID] {
			return fmt.Errorf("duplicate event id %q", ev.ID)
		}
		seen[ev.ID] = true
		for _, choice := range ev.Choices {
			total := 0
			for _, outcome := range choice.Outcomes {
				total += outcome.Chance
			}
			if total != 100 {
				return fmt.Errorf("event %q choice %q outcome chances sum to %d, want 100",
					ev.ID, choice.ID, total)
			}
		}
	}
	return nil
}

// Summary describes the loaded pack for logs.
func (p *Pack) Summary() string {
	return fmt.Sprintf("%d locations, %d crossings, %d forks, %d events",
		len(p.Locations), len(p.Crossings), len(p.Forks), len(p.Events))
}
