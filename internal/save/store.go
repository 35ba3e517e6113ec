// Package save persists run snapshots as zstd-compressed JSON slot
// files with a latest-slot pointer.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/appengine-ltd/divide-trail/internal/game"
)

const (
	slotExtension = ".json.zst"
	latestFile    = "latest"
)

var slotNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ErrNoSaves is returned when no usable snapshot exists.
var ErrNoSaves = errors.New("no saves found")

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// SlotInfo describes one saved run without decoding its snapshot.
type SlotInfo struct {
	Name     string
	Modified int64
}

func (s *Store) slotPath(slot string) string {
	return filepath.Join(s.dir, slot+slotExtension)
}

// Save writes a snapshot to the named slot and points latest at it.
// The write goes through a temp file so a crash never corrupts an
// existing slot.
func (s *Store) Save(slot string, snap game.Snapshot) error {
	if !slotNamePattern.MatchString(slot) {
		return fmt.Errorf("invalid slot name %q", slot)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, slot+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc, err := zstd.NewWriter(tmp, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		tmp.Close()
		return err
	}
	if err := json.NewEncoder(enc).Encode(snap); err != nil {
		enc.Close()
		tmp.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.slotPath(slot)); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, latestFile), []byte(slot+"\n"), 0o644)
}

// Load reads one slot's snapshot.
func (s *Store) Load(slot string) (game.Snapshot, error) {
	var snap game.Snapshot
	f, err := os.Open(s.slotPath(slot))
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, fmt.Errorf("slot %s: %w", slot, err)
	}
	defer dec.Close()

	if err := json.NewDecoder(dec.IOReadCloser()).Decode(&snap); err != nil {
		return snap, fmt.Errorf("slot %s: decoding snapshot: %w", slot, err)
	}
	return snap, nil
}

// LoadLatest loads the most recent snapshot. A missing or corrupt
// latest pointer falls back to the newest readable slot; a corrupt
// slot file is skipped rather than failing the whole load.
func (s *Store) LoadLatest() (game.Snapshot, string, error) {
	if data, err := os.ReadFile(filepath.Join(s.dir, latestFile)); err == nil {
		slot := strings.TrimSpace(string(data))
		if slotNamePattern.MatchString(slot) {
			if snap, err := s.Load(slot); err == nil {
				return snap, slot, nil
			}
		}
	}

	slots, err := s.Slots()
	if err != nil {
		return game.Snapshot{}, "", err
	}
	for _, info := range slots {
		if snap, err := s.Load(info.Name); err == nil {
			return snap, info.Name, nil
		}
	}
	return game.Snapshot{}, "", ErrNoSaves
}

// Slots lists saved slots, newest first.
func (s *Store) Slots() ([]SlotInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var slots []SlotInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, slotExtension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		slots = append(slots, SlotInfo{
			Name:     strings.TrimSuffix(name, slotExtension),
			Modified: info.ModTime().Unix(),
		})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Modified > slots[j].Modified })
	return slots, nil
}

// Delete removes a slot. Deleting the latest slot leaves the pointer
// dangling; LoadLatest handles that.
func (s *Store) Delete(slot string) error {
	if !slotNamePattern.MatchString(slot) {
		return fmt.Errorf("invalid slot name %q", slot)
	}
	err := os.Remove(s.slotPath(slot))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
