package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/portals/systems"
	"github.com/pthm-cable/portals/telemetry"
)

// Slot colours for the crosshair halves, matching the portal frames.
var (
	ColorLeftPortal  = rl.Color{R: 40, G: 140, B: 255, A: 255}
	ColorRightPortal = rl.Color{R: 255, G: 140, B: 30, A: 255}
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Tick        int32
	SimTime     float64
	FPS         int32
	Paused      bool
	PortalsOpen [2]bool
	Latch       string
	Speed       float64
	Crossings   int
	Bodies      int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Time: %.1fs | FPS: %d | Bodies: %d", data.Tick, data.SimTime, data.FPS, data.Bodies),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Speed: %.1f | Latch: %s | Crossings: %d", data.Speed, data.Latch, data.Crossings),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawCrosshair draws the aiming reticle. Each half is lit when the
// portal it fires is placed.
func (h *HUD) DrawCrosshair(screenWidth, screenHeight int32, open [2]bool) {
	cx := float32(screenWidth) / 2
	cy := float32(screenHeight) / 2
	centre := rl.Vector2{X: cx, Y: cy}

	dim := func(c rl.Color, lit bool) rl.Color {
		if lit {
			return c
		}
		return rl.Fade(c, 0.3)
	}
	rl.DrawRing(centre, 8, 11, 90, 270, 16, dim(ColorLeftPortal, open[0]))
	rl.DrawRing(centre, 8, 11, -90, 90, 16, dim(ColorRightPortal, open[1]))
	rl.DrawCircleV(centre, 1.5, rl.White)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the tick phase timings.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32, registry *systems.SystemRegistry) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: registry,
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Avg: %s  Max: %s  %.0f ticks/s", stats.AvgTickDuration.Round(time.Microsecond), stats.MaxTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 14, rl.Yellow,
	)
	y += 16

	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		displayName := phase
		if p.registry != nil {
			displayName = p.registry.GetName(systemID(phase))
		}

		rl.DrawText(
			fmt.Sprintf("%-16s %8s %5.1f%%", displayName, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// systemID maps a telemetry phase name to its registry id.
func systemID(phase string) string {
	if phase == telemetry.PhaseViewSync {
		return "viewSync"
	}
	return phase
}
