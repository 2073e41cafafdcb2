package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/config"
	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/ui"
)

// slotColor returns the frame colour of a portal slot.
func slotColor(s portal.Slot) rl.Color {
	if s == portal.SlotLeft {
		return ui.ColorLeftPortal
	}
	return ui.ColorRightPortal
}

// drawActiveOverlays renders all currently enabled 3D overlays.
// Must be called between BeginMode3D and EndMode3D.
func (g *Game) drawActiveOverlays() {
	for _, id := range g.uiOverlays.EnabledOverlays() {
		switch id {
		case ui.OverlayTriggers:
			g.drawTriggers()
		case ui.OverlayPortalCameras:
			g.drawPortalCameras()
		case ui.OverlayVelocity:
			g.drawVelocities()
		case ui.OverlayWallNormals:
			g.drawWallNormals()
		// Flat portals and the panels are handled in Draw
		}
	}
}

// drawTriggers outlines each portal's trigger box.
func (g *Game) drawTriggers() {
	depth := config.Cfg().Crossing.TriggerDepth

	g.pairs.Each(func(p *portal.Portal) {
		rect := p.Rect()
		n := rect.Normal().Mul(depth)
		corners := rect.Corners()
		c := rl.Fade(slotColor(p.Slot), 0.8)

		for i := range corners {
			a, b := corners[i], corners[(i+1)%4]
			rl.DrawLine3D(toRL(a.Add(n)), toRL(b.Add(n)), c)
			rl.DrawLine3D(toRL(a.Sub(n)), toRL(b.Sub(n)), c)
			rl.DrawLine3D(toRL(a.Add(n)), toRL(a.Sub(n)), c)
		}

		// Highlight the trigger while a body is in it
		for _, e := range g.bodyEntities() {
			if g.triggers.Inside(e, p.Slot) {
				rl.DrawSphereWires(toRL(g.transforms.Get(e).Position), float32(g.colliders.Get(e).Radius)+0.05, 4, 6, rl.Yellow)
			}
		}
	})
}

// drawPortalCameras marks each enabled portal camera and its view direction.
func (g *Game) drawPortalCameras() {
	g.pairs.Each(func(p *portal.Portal) {
		if !p.Camera.Enabled {
			return
		}
		pose := p.Camera.Pose
		c := slotColor(p.Slot)
		rl.DrawSphere(toRL(pose.Position), 0.15, c)
		rl.DrawLine3D(toRL(pose.Position), toRL(pose.Position.Add(pose.Forward().Mul(1.5))), c)
	})
}

// drawVelocities draws each body's velocity, a quarter second ahead.
func (g *Game) drawVelocities() {
	for _, e := range g.bodyEntities() {
		pos := g.transforms.Get(e).Position
		vel := g.bodies.Get(e).Velocity
		if vel.Len() < 1e-3 {
			continue
		}
		rl.DrawLine3D(toRL(pos), toRL(pos.Add(vel.Mul(0.25))), rl.Magenta)
	}
}

// drawWallNormals draws the outward normal of each wall, red while a
// body may pass through it.
func (g *Game) drawWallNormals() {
	for _, w := range g.walls {
		rect := w.Rect()
		from := rect.Pose.Position.Add(mgl64.Vec3{0, 1 - rect.Pose.Position.Y(), 0})
		to := from.Add(rect.Normal().Mul(2))

		c := rl.Green
		if w.Passable {
			c = rl.Red
		}
		rl.DrawLine3D(toRL(from), toRL(to), c)
		rl.DrawSphere(toRL(to), 0.08, c)
	}
}
