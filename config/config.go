// Package config provides configuration loading and access for the portal arena.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Arena     ArenaConfig     `yaml:"arena"`
	Portal    PortalConfig    `yaml:"portal"`
	Crossing  CrossingConfig  `yaml:"crossing"`
	Player    PlayerConfig    `yaml:"player"`
	Props     PropsConfig     `yaml:"props"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	Fovy      float64 `yaml:"fovy"` // vertical field of view, degrees
	FarClip   float64 `yaml:"far_clip"`
}

// PhysicsConfig holds rigid body integration parameters.
type PhysicsConfig struct {
	DT      float64 `yaml:"dt"`
	Gravity float64 `yaml:"gravity"` // downward acceleration
	Drag    float64 `yaml:"drag"`    // fraction of horizontal velocity lost per second on the ground
	FloorY  float64 `yaml:"floor_y"`
	Bounce  float64 `yaml:"bounce"` // restitution against floor and walls
}

// ArenaConfig describes the walled arena. Corners are (x, z) pairs in
// order; one wall is built per edge.
type ArenaConfig struct {
	Corners    [][2]float64 `yaml:"corners"`
	WallHeight float64      `yaml:"wall_height"`
	WallColors [][4]uint8   `yaml:"wall_colors"`
}

// PortalConfig holds portal geometry and presentation.
type PortalConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	TextureScale float64 `yaml:"texture_scale"` // render texture size relative to the screen
	OpenDuration float64 `yaml:"open_duration"` // seconds for the opening animation
}

// CrossingConfig holds teleport tunables.
type CrossingConfig struct {
	NearClipCrossing float64 `yaml:"near_clip_crossing"`
	NearClipDefault  float64 `yaml:"near_clip_default"`
	Cooldown         float64 `yaml:"cooldown"`      // seconds before a body may cross again
	ExitImpulse      float64 `yaml:"exit_impulse"`  // push out of the exit portal
	TriggerDepth     float64 `yaml:"trigger_depth"` // trigger volume half-depth beyond the body radius
}

// PlayerConfig holds the first-person body.
type PlayerConfig struct {
	Spawn       [3]float64 `yaml:"spawn"`
	SpawnYaw    float64    `yaml:"spawn_yaw"`
	Radius      float64    `yaml:"radius"`
	Mass        float64    `yaml:"mass"`
	EyeHeight   float64    `yaml:"eye_height"`
	WalkSpeed   float64    `yaml:"walk_speed"`
	JumpSpeed   float64    `yaml:"jump_speed"`
	Sensitivity float64    `yaml:"sensitivity"` // degrees per pixel
}

// PropsConfig holds the loose physics props dropped into the arena.
type PropsConfig struct {
	Count       int     `yaml:"count"`
	Radius      float64 `yaml:"radius"`
	Mass        float64 `yaml:"mass"`
	SpawnHeight float64 `yaml:"spawn_height"`
	SpawnRing   float64 `yaml:"spawn_ring"` // props start on a circle of this radius
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32        float32      // Physics.DT as float32
	ScreenW32   float32      // Screen.Width as float32
	ScreenH32   float32      // Screen.Height as float32
	Corners     []mgl64.Vec2 // Arena.Corners as vectors
	WallColors  []color.RGBA
	PlayerSpawn mgl64.Vec3
	TextureW    int32 // portal render texture size
	TextureH    int32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Arena.Corners) < 3 {
		return fmt.Errorf("arena: need at least 3 corners, got %d", len(c.Arena.Corners))
	}
	if c.Arena.WallHeight <= 0 {
		return fmt.Errorf("arena: wall_height must be positive")
	}
	if c.Portal.Width <= 0 || c.Portal.Height <= 0 {
		return fmt.Errorf("portal: size must be positive, got %gx%g", c.Portal.Width, c.Portal.Height)
	}
	if c.Portal.Height > c.Arena.WallHeight {
		return fmt.Errorf("portal: height %g exceeds wall height %g", c.Portal.Height, c.Arena.WallHeight)
	}
	if c.Player.Mass <= 0 || c.Props.Mass <= 0 {
		return fmt.Errorf("mass must be positive")
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics: dt must be positive")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.Corners = make([]mgl64.Vec2, len(c.Arena.Corners))
	for i, p := range c.Arena.Corners {
		c.Derived.Corners[i] = mgl64.Vec2{p[0], p[1]}
	}

	c.Derived.WallColors = make([]color.RGBA, len(c.Arena.WallColors))
	for i, rgba := range c.Arena.WallColors {
		c.Derived.WallColors[i] = color.RGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	}

	c.Derived.PlayerSpawn = mgl64.Vec3(c.Player.Spawn)

	scale := c.Portal.TextureScale
	if scale <= 0 {
		scale = 1
	}
	c.Derived.TextureW = int32(float64(c.Screen.Width) * scale)
	c.Derived.TextureH = int32(float64(c.Screen.Height) * scale)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
