package telemetry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version: SnapshotVersion,
		Tick:    1000,
		SimTime: 16.6,
		Portals: []PortalState{
			{Slot: "left", Wall: "wall-0", Position: [3]float64{10, 1.5, 0}, Yaw: 90},
			{Slot: "right", Wall: "wall-3", Position: [3]float64{0, 1.5, 10}, Yaw: 0},
		},
		Bodies: []BodyState{
			{ID: 1, Kind: "prop", Position: [3]float64{2, 0.3, 2}, Latch: "idle"},
			{ID: 2, Kind: "player", Position: [3]float64{0, 0, 0}, Rotation: [3]float64{10, 45, 0}, Velocity: [3]float64{0, 0, 6}, Latch: "cooling"},
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_1000.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.Tick != snapshot.Tick || loaded.SimTime != snapshot.SimTime {
		t.Errorf("tick/time = %d/%v", loaded.Tick, loaded.SimTime)
	}
	if len(loaded.Portals) != 2 || loaded.Portals[1].Wall != "wall-3" {
		t.Errorf("portals = %+v", loaded.Portals)
	}

	player, ok := loaded.Player()
	if !ok {
		t.Fatal("player missing from loaded snapshot")
	}
	if player.Rotation != [3]float64{10, 45, 0} || player.Latch != "cooling" {
		t.Errorf("player = %+v", player)
	}
}

func TestSnapshotWithoutPlayer(t *testing.T) {
	s := &Snapshot{Bodies: []BodyState{{Kind: "prop"}}}
	if _, ok := s.Player(); ok {
		t.Error("found a player among props")
	}
}

func TestLoadSnapshotErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnapshot(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	old := filepath.Join(dir, "old.json")
	if err := os.WriteFile(old, []byte(`{"version": 99, "tick": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(old); !errors.Is(err, ErrSnapshotVersion) {
		t.Errorf("err = %v, want ErrSnapshotVersion", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(bad); err == nil {
		t.Error("expected error for malformed json")
	}
}
