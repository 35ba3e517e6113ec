package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/appengine-ltd/divide-trail/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Difficulty != "normal" || cfg.Pace != "steady" {
		t.Fatalf("unexpected defaults: %s / %s", cfg.Difficulty, cfg.Pace)
	}
	if len(cfg.Members) != 4 {
		t.Fatalf("expected a 4-member default party, got %d", len(cfg.Members))
	}
}

func TestLoadNormalizesCase(t *testing.T) {
	path := writeConfig(t, `
difficulty: "  HARD "
pace: Fast
rationing: MEAGER
party_name: Test Party
members:
  - {name: " Ada ", role: TRAIL_LEADER}
  - {name: Ben, role: hunter}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Difficulty != "hard" || cfg.Pace != "fast" || cfg.Rationing != "meager" {
		t.Fatalf("normalization failed: %s / %s / %s", cfg.Difficulty, cfg.Pace, cfg.Rationing)
	}
	if cfg.Members[0].Name != "Ada" || cfg.Members[0].Role != "trail_leader" {
		t.Fatalf("member normalization failed: %+v", cfg.Members[0])
	}
}

func TestLoadRejectsUnknownDifficulty(t *testing.T) {
	path := writeConfig(t, `
difficulty: nightmare
pace: steady
rationing: normal
members:
  - {name: Ada, role: hunter}
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an unknown difficulty to be rejected")
	}
}

func TestLoadRejectsDuplicateMembers(t *testing.T) {
	path := writeConfig(t, `
difficulty: normal
pace: steady
rationing: normal
members:
  - {name: Ada, role: hunter}
  - {name: ada, role: scout}
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "duplicate member") {
		t.Fatalf("expected a duplicate-name error, got %v", err)
	}
}

func TestLoadRejectsOversizedParty(t *testing.T) {
	path := writeConfig(t, `
difficulty: normal
pace: steady
rationing: normal
members:
  - {name: A, role: hunter}
  - {name: B, role: hunter}
  - {name: C, role: hunter}
  - {name: D, role: hunter}
  - {name: E, role: hunter}
  - {name: F, role: hunter}
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected a six-member party to be rejected")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected a missing file to fail")
	}
}

func TestBuildPartyFromDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	party, err := cfg.BuildParty()
	if err != nil {
		t.Fatalf("build party: %v", err)
	}
	if len(party.Members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(party.Members))
	}
	if party.Rationing != game.RationNormal {
		t.Fatalf("expected normal rationing, got %s", party.Rationing)
	}
	if m := party.MemberByName("Sarah"); m == nil || m.Role != game.RoleHunter {
		t.Fatalf("expected Sarah the hunter, got %+v", m)
	}
}

func TestBuildPartyRejectsBadRole(t *testing.T) {
	cfg := Config{
		PartyName: "Test",
		Rationing: "normal",
		Members:   []MemberSpec{{Name: "Ada", Role: "wizard"}},
	}
	if _, err := cfg.BuildParty(); err == nil {
		t.Fatalf("expected an unknown role to be rejected")
	}
}
