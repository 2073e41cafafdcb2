package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Portal.Width != 3 || cfg.Portal.Height != 3 {
		t.Errorf("portal size = %gx%g, want 3x3", cfg.Portal.Width, cfg.Portal.Height)
	}
	if cfg.Crossing.NearClipCrossing != 0.01 || cfg.Crossing.NearClipDefault != 0.3 {
		t.Errorf("near clips = %g/%g", cfg.Crossing.NearClipCrossing, cfg.Crossing.NearClipDefault)
	}
	if cfg.Crossing.Cooldown != 0.1 || cfg.Crossing.ExitImpulse != 5 {
		t.Errorf("cooldown=%g impulse=%g", cfg.Crossing.Cooldown, cfg.Crossing.ExitImpulse)
	}
	if len(cfg.Derived.Corners) != 4 {
		t.Fatalf("expected 4 arena corners, got %d", len(cfg.Derived.Corners))
	}
	if cfg.Derived.Corners[0] != (mgl64.Vec2{10, 10}) {
		t.Errorf("first corner = %v", cfg.Derived.Corners[0])
	}
	if len(cfg.Derived.WallColors) != 4 || cfg.Derived.WallColors[0].A != 255 {
		t.Errorf("wall colors = %v", cfg.Derived.WallColors)
	}
	if cfg.Derived.TextureW != 640 || cfg.Derived.TextureH != 360 {
		t.Errorf("texture = %dx%d, want 640x360", cfg.Derived.TextureW, cfg.Derived.TextureH)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := "crossing:\n  exit_impulse: 8\nplayer:\n  spawn: [1, 0, -2]\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Crossing.ExitImpulse != 8 {
		t.Errorf("exit impulse = %g, want 8", cfg.Crossing.ExitImpulse)
	}
	// Untouched fields keep their defaults.
	if cfg.Crossing.Cooldown != 0.1 {
		t.Errorf("cooldown = %g, want default 0.1", cfg.Crossing.Cooldown)
	}
	if cfg.Derived.PlayerSpawn != (mgl64.Vec3{1, 0, -2}) {
		t.Errorf("spawn = %v", cfg.Derived.PlayerSpawn)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	testCases := []struct {
		name    string
		overlay string
		want    string
	}{
		{"too few corners", "arena:\n  corners: [[0, 0], [1, 1]]\n", "corners"},
		{"portal taller than wall", "portal:\n  height: 50\n", "exceeds wall height"},
		{"zero mass", "props:\n  mass: 0\n", "mass"},
		{"bad yaml", "physics: [\n", "parsing config file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Crossing.ExitImpulse = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.Crossing.ExitImpulse != 7 {
		t.Errorf("exit impulse = %g after round trip", back.Crossing.ExitImpulse)
	}
	if len(back.Derived.Corners) != len(cfg.Derived.Corners) {
		t.Errorf("corners lost in round trip")
	}
}

func TestInitAndCfg(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatal(err)
	}
	if Cfg().Screen.Width != 1280 {
		t.Errorf("screen width = %d", Cfg().Screen.Width)
	}
}
