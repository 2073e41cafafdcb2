package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/systems"
	"github.com/pthm-cable/portals/ui"
)

// controlsLegend is shown at the bottom of the screen.
const controlsLegend = "WASD move | Mouse look | LMB/RMB portals | Jump [Ctrl] | Pick [E] | Reset [R] | Pause [Space] | Cursor [Tab] | Panels [H] | Snapshot [F5]"

// handleInput processes keyboard and mouse input for this frame.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.setMouseCaptured(!g.mouseCaptured)
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.controlsPanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.resetPortals()
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.saveSnapshot()
	}

	g.handleOverlayKeys()

	if rl.IsKeyPressed(rl.KeyE) {
		if !g.inspector.Pick(g.cam.Ray()) {
			g.inspector.Deselect()
		}
	}

	g.handleLookInput()
	g.handleMoveInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	if g.portalRenderer != nil {
		g.portalRenderer.Resize(w, h)
	}
	if g.inspector != nil {
		g.inspector.Resize(int32(w))
	}
	if g.portalControls != nil {
		g.portalControls.SetPosition(int32(w)-230, int32(h)-200)
	}
}

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, desc := range g.uiOverlays.All() {
		if desc.Key == 0 || !rl.IsKeyPressed(desc.Key) {
			continue
		}
		g.uiOverlays.Toggle(desc.ID)

		// The inspector keeps its own visibility in step with the overlay
		if desc.ID == ui.OverlayInspector {
			g.inspector.Toggle()
		}
	}
}

// setMouseCaptured locks the cursor for mouse look, or frees it for the UI.
func (g *Game) setMouseCaptured(captured bool) {
	g.mouseCaptured = captured
	if captured {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
}

// handleLookInput turns the camera and reads the fire buttons. Both need
// the captured cursor; a free cursor belongs to the panels.
func (g *Game) handleLookInput() {
	if !g.mouseCaptured {
		return
	}
	d := rl.GetMouseDelta()
	g.cam.Look(float64(d.X), float64(d.Y))

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.fire[portal.SlotLeft] = true
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.fire[portal.SlotRight] = true
	}
}

// handleMoveInput reads the walk keys into the pending move intent.
func (g *Game) handleMoveInput() {
	var in systems.MoveIntent
	if rl.IsKeyDown(rl.KeyW) {
		in.Forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Strafe++
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Strafe--
	}
	// A jump stays pending until a tick consumes it.
	in.Jump = g.intent.Jump || rl.IsKeyPressed(rl.KeyLeftControl)
	g.intent = in
}
