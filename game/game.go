// Package game wires the portal arena together: the ECS world, the portal
// pair and its systems, rendering and telemetry.
package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/portals/camera"
	"github.com/pthm-cable/portals/components"
	"github.com/pthm-cable/portals/config"
	"github.com/pthm-cable/portals/inspector"
	"github.com/pthm-cable/portals/placement"
	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/renderer"
	"github.com/pthm-cable/portals/systems"
	"github.com/pthm-cable/portals/telemetry"
	"github.com/pthm-cable/portals/ui"
)

// Options configures a game instance.
type Options struct {
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string
	LoadSnapshot   string // restore this snapshot after start-up
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Colours used for bodies.
var (
	playerColor = color.RGBA{R: 60, G: 90, B: 200, A: 255}
	propColors  = []color.RGBA{
		{R: 220, G: 80, B: 60, A: 255},
		{R: 240, G: 200, B: 60, A: 255},
		{R: 90, G: 190, B: 110, A: 255},
		{R: 170, G: 90, B: 200, A: 255},
	}
)

// Game holds the complete game state.
type Game struct {
	world *ecs.World
	walls []*placement.Surface

	// Portal pair and the machinery around it
	pairs      *portal.PairManager
	sched      *portal.Scheduler
	teleporter *portal.Teleporter
	viewSync   *portal.Synchronizer
	cam        *camera.Camera

	// Systems, in tick order
	placement *systems.PlacementSystem
	physics   *systems.PhysicsSystem
	triggers  *systems.TriggerSystem
	crossing  *systems.CrossingSystem
	registry  *systems.SystemRegistry

	// Entity mappers
	playerMapper *ecs.Map5[
		components.Transform,
		components.RigidBody,
		components.Collider,
		components.Crossing,
		components.Player,
	]
	propMapper *ecs.Map5[
		components.Transform,
		components.RigidBody,
		components.Collider,
		components.Crossing,
		components.Prop,
	]
	transforms *ecs.Map[components.Transform]
	bodies     *ecs.Map[components.RigidBody]
	colliders  *ecs.Map[components.Collider]
	crossings  *ecs.Map[components.Crossing]
	players    *ecs.Map[components.Player]
	propMap    *ecs.Map[components.Prop]

	player ecs.Entity
	props  []ecs.Entity

	// Input gathered once per frame, consumed by the next tick
	intent systems.MoveIntent
	fire   [2]bool

	// Rendering (nil when headless)
	scene          *renderer.Scene
	portalRenderer *renderer.PortalRenderer
	inspector      *inspector.Inspector
	hud            *ui.HUD
	perfPanel      *ui.PerfPanel
	controlsPanel  *ui.ControlsPanel
	portalControls *ui.PortalControls
	uiOverlays     *ui.OverlayRegistry
	mouseCaptured  bool

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	pendingCrossings []telemetry.CrossingEvent
	totalCrossings   int
	logStats         bool
	snapshotDir      string

	// Scripted input for headless runs
	demo *demoScript

	// State
	tick           int32
	simTime        float64
	paused         bool
	headless       bool
	stepsPerUpdate int

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game from the global config. Graphical mode
// needs an open raylib window.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	walls, err := placement.ArenaWalls(cfg.Derived.Corners, cfg.Arena.WallHeight, cfg.Derived.WallColors)
	if err != nil {
		// config.validate already checked the corners
		panic(fmt.Sprintf("building arena: %v", err))
	}

	world := ecs.NewWorld()

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	g := &Game{
		world:          world,
		walls:          walls,
		headless:       opts.Headless,
		stepsPerUpdate: stepsPerUpdate,
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
	}

	g.playerMapper = ecs.NewMap5[
		components.Transform,
		components.RigidBody,
		components.Collider,
		components.Crossing,
		components.Player,
	](g.world)
	g.propMapper = ecs.NewMap5[
		components.Transform,
		components.RigidBody,
		components.Collider,
		components.Crossing,
		components.Prop,
	](g.world)
	g.transforms = ecs.NewMap[components.Transform](g.world)
	g.bodies = ecs.NewMap[components.RigidBody](g.world)
	g.colliders = ecs.NewMap[components.Collider](g.world)
	g.crossings = ecs.NewMap[components.Crossing](g.world)
	g.players = ecs.NewMap[components.Player](g.world)
	g.propMap = ecs.NewMap[components.Prop](g.world)

	// Viewer
	eye := cfg.Derived.PlayerSpawn.Add(mgl64.Vec3{0, cfg.Player.EyeHeight, 0})
	g.cam = camera.New(eye, cfg.Crossing.NearClipDefault, cfg.Screen.FarClip, cfg.Screen.Fovy)
	g.cam.Sensitivity = cfg.Player.Sensitivity
	g.cam.Yaw = cfg.Player.SpawnYaw

	// Portal pair
	g.pairs = portal.NewPairManager(cfg.Portal.Width, cfg.Portal.Height)
	g.sched = portal.NewScheduler()
	g.teleporter = portal.NewTeleporter(g.pairs, g.cam, g.sched, portal.TeleportConfig{
		NearClipCrossing: cfg.Crossing.NearClipCrossing,
		NearClipDefault:  cfg.Crossing.NearClipDefault,
		Cooldown:         cfg.Crossing.Cooldown,
		ExitImpulse:      cfg.Crossing.ExitImpulse,
	})
	g.viewSync = portal.NewSynchronizer(g.pairs)

	// Systems
	g.registry = systems.NewSystemRegistry()
	g.placement = systems.NewPlacementSystem(walls, g.pairs)
	g.physics = systems.NewPhysicsSystem(g.world, walls, systems.PhysicsParams{
		Gravity: cfg.Physics.Gravity,
		Drag:    cfg.Physics.Drag,
		FloorY:  cfg.Physics.FloorY,
		Bounce:  cfg.Physics.Bounce,
	})
	g.triggers = systems.NewTriggerSystem(g.world, cfg.Crossing.TriggerDepth)
	g.crossing = systems.NewCrossingSystem(g.world, g.teleporter)
	g.physics.SetPortals(g.pairs, g.triggers)

	g.spawnPlayer()
	g.spawnProps()

	// Telemetry
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT32)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if opts.Headless {
		g.demo = newDemoScript()
	} else {
		g.initGraphics()
	}

	if opts.LoadSnapshot != "" {
		if err := g.loadSnapshot(opts.LoadSnapshot); err != nil {
			slog.Error("failed to restore snapshot", "path", opts.LoadSnapshot, "error", err)
		}
	}

	slog.Info("arena ready",
		"walls", len(walls),
		"props", len(g.props),
		"headless", opts.Headless,
	)
	return g
}

// initGraphics creates the raylib-backed renderers and UI.
func (g *Game) initGraphics() {
	cfg := config.Cfg()

	g.scene = renderer.NewScene(g.walls)
	g.portalRenderer = renderer.NewPortalRenderer(
		cfg.Derived.TextureW, cfg.Derived.TextureH,
		g.screenWidth, g.screenHeight,
		cfg.Portal.OpenDuration,
	)
	g.inspector = inspector.NewInspector(g.world, int32(g.screenWidth))
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 100, g.registry)
	g.controlsPanel = ui.NewControlsPanel(10, 100, 220)
	g.portalControls = ui.NewPortalControls(int32(g.screenWidth)-230, int32(g.screenHeight)-200, 220)
	g.uiOverlays = ui.NewOverlayRegistry()
	g.uiOverlays.SetEnabled(ui.OverlayInspector, true)

	rl.DisableCursor()
	g.mouseCaptured = true
}

// spawnPlayer creates the player body the camera rides on.
func (g *Game) spawnPlayer() {
	cfg := config.Cfg()

	tr := components.Transform{
		Position: cfg.Derived.PlayerSpawn,
		Rotation: mgl64.Vec3{0, cfg.Player.SpawnYaw, 0},
	}
	rb := components.RigidBody{Mass: cfg.Player.Mass, UseGravity: true}
	col := components.Collider{Radius: cfg.Player.Radius}
	cross := components.Crossing{}
	pl := components.Player{
		EyeHeight: cfg.Player.EyeHeight,
		WalkSpeed: cfg.Player.WalkSpeed,
		JumpSpeed: cfg.Player.JumpSpeed,
	}

	g.player = g.playerMapper.NewEntity(&tr, &rb, &col, &cross, &pl)
}

// spawnProps drops loose bodies on a ring around the arena centre.
func (g *Game) spawnProps() {
	cfg := config.Cfg()
	n := cfg.Props.Count

	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pos := mgl64.Vec3{
			cfg.Props.SpawnRing * math.Sin(angle),
			cfg.Props.SpawnHeight,
			cfg.Props.SpawnRing * math.Cos(angle),
		}

		tr := components.Transform{Position: pos}
		rb := components.RigidBody{Mass: cfg.Props.Mass, UseGravity: true}
		col := components.Collider{Radius: cfg.Props.Radius}
		cross := components.Crossing{}
		prop := components.Prop{ID: uint32(i), Color: propColors[i%len(propColors)]}

		g.props = append(g.props, g.propMapper.NewEntity(&tr, &rb, &col, &cross, &prop))
	}
}

// bodyEntities returns the player followed by every prop still alive.
func (g *Game) bodyEntities() []ecs.Entity {
	out := make([]ecs.Entity, 0, len(g.props)+1)
	if g.world.Alive(g.player) {
		out = append(out, g.player)
	}
	for _, e := range g.props {
		if g.world.Alive(e) {
			out = append(out, e)
		}
	}
	return out
}

// portalsOpen counts placed portals.
func (g *Game) portalsOpen() (open [2]bool, n int) {
	g.pairs.Each(func(p *portal.Portal) {
		open[p.Slot] = true
		n++
	})
	return open, n
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Unload flushes telemetry and releases all resources.
func (g *Game) Unload() {
	if err := g.outputManager.WriteCrossings(g.pendingCrossings); err != nil {
		slog.Error("failed to write crossings", "error", err)
	}
	g.pendingCrossings = g.pendingCrossings[:0]

	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if g.portalRenderer != nil {
		g.portalRenderer.Unload()
	}
}
