package game

import rl "github.com/gen2brain/raylib-go/raylib"

// Update handles input and runs the simulation steps for one frame.
func (g *Game) Update() {
	g.handleInput()

	if g.portalRenderer != nil {
		g.portalRenderer.Update(rl.GetFrameTime())
	}

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless runs simulation steps without graphics, driven by the
// demo script.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		in, fire := g.demo.input(g.tick, g.cam)
		g.intent = in
		g.fire = fire
		g.step()
	}
}
