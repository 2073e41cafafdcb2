package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// ErrSnapshotVersion is returned when loading a snapshot written by a
// different format version.
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// Snapshot holds the arena state needed to restore a scene: both portals
// and every body.
type Snapshot struct {
	Version int     `json:"version"`
	Tick    int32   `json:"tick"`
	SimTime float64 `json:"sim_time"`

	Portals []PortalState `json:"portals"`
	Bodies  []BodyState   `json:"bodies"`
}

// PortalState is one placed portal.
type PortalState struct {
	Slot     string     `json:"slot"`
	Wall     string     `json:"wall"`
	Position [3]float64 `json:"position"`
	Yaw      float64    `json:"yaw"`
}

// BodyState is one physical body.
type BodyState struct {
	ID       uint32     `json:"id"`
	Kind     string     `json:"kind"` // "player" or "prop"
	Position [3]float64 `json:"position"`
	Rotation [3]float64 `json:"rotation"`
	Velocity [3]float64 `json:"velocity"`
	Latch    string     `json:"latch"`
}

// Player returns the player's body state, if the snapshot has one.
func (s *Snapshot) Player() (BodyState, bool) {
	for _, b := range s.Bodies {
		if b.Kind == "player" {
			return b, true
		}
	}
	return BodyState{}, false
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Tick))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, snapshot.Version)
	}

	return &snapshot, nil
}
