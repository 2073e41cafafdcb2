package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/renderer"
	"github.com/pthm-cable/portals/ui"
)

// Draw renders one frame: the portal views into their textures, then the
// scene from the player's eye, then the HUD and panels.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	bodies := g.renderBodies()
	fovy := g.cam.Fovy

	// Portal cameras use the default near plane; only the player's own
	// view shrinks it while crossing.
	rl.SetClipPlanes(g.teleporter.Config().NearClipDefault, g.cam.FarClip)
	g.portalRenderer.RenderViews(g.pairs, fovy, func(skip *portal.Portal) {
		g.scene.Draw(bodies, skip.Wall)
		g.portalRenderer.DrawFlat(g.pairs)
	})

	rl.BeginDrawing()
	rl.ClearBackground(rl.SkyBlue)

	rl.SetClipPlanes(g.cam.NearClip, g.cam.FarClip)
	rl.BeginMode3D(renderer.CameraFor(g.cam.Pose(), fovy))
	g.scene.Draw(bodies, nil)
	if g.uiOverlays.IsEnabled(ui.OverlayFlatPortals) {
		g.portalRenderer.DrawFlat(g.pairs)
	} else {
		g.portalRenderer.Draw(g.pairs)
	}
	g.drawActiveOverlays()
	rl.EndMode3D()

	g.drawHUD()

	rl.EndDrawing()
}

// drawHUD renders the 2D layer.
func (g *Game) drawHUD() {
	w, h := int32(g.screenWidth), int32(g.screenHeight)
	open, _ := g.portalsOpen()

	g.hud.Draw(ui.HUDData{
		Title:       "Portals",
		Tick:        g.tick,
		SimTime:     g.simTime,
		FPS:         rl.GetFPS(),
		Paused:      g.paused,
		PortalsOpen: open,
		Latch:       g.playerLatch(),
		Speed:       g.playerSpeed(),
		Crossings:   g.totalCrossings,
		Bodies:      len(g.bodyEntities()),
	})
	g.hud.DrawCrosshair(w, h, open)
	g.hud.DrawControls(w, h, controlsLegend)

	panelY := int32(100)
	if g.controlsPanel.IsVisible() {
		panelY += g.controlsPanel.Draw(g.uiOverlays) + 10
	}
	if g.uiOverlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.SetPosition(10, panelY)
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	// Sliders need the cursor, so they only show while it is free
	if !g.mouseCaptured {
		g.drawPortalControls()
	}

	g.inspector.Draw()
}

// drawPortalControls renders the raygui panel and applies its changes.
func (g *Game) drawPortalControls() {
	tc := g.teleporter.Config()
	res := g.portalControls.Draw(ui.PortalSettings{
		ExitImpulse: float32(tc.ExitImpulse),
		Cooldown:    float32(tc.Cooldown),
		NearClip:    float32(g.cam.NearClip),
	})

	if float64(res.ExitImpulse) != tc.ExitImpulse {
		g.teleporter.SetExitImpulse(float64(res.ExitImpulse))
	}
	if float64(res.Cooldown) != tc.Cooldown {
		g.teleporter.SetCooldown(float64(res.Cooldown))
	}
	if res.ResetPortals {
		g.resetPortals()
	}
}

// renderBodies collects every body for the scene renderer.
func (g *Game) renderBodies() []renderer.Body {
	entities := g.bodyEntities()
	out := make([]renderer.Body, 0, len(entities))
	for _, e := range entities {
		b := renderer.Body{
			Position: g.transforms.Get(e).Position,
			Radius:   g.colliders.Get(e).Radius,
			Color:    playerColor,
		}
		if g.propMap.Has(e) {
			b.Color = g.propMap.Get(e).Color
		}
		out = append(out, b)
	}
	return out
}

// toRL converts a world vector for raylib.
func toRL(v mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X()), Y: float32(v.Y()), Z: float32(v.Z())}
}
