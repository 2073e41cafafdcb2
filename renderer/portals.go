package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/portal"
)

// surfaceOffset lifts portal quads off their wall to avoid z-fighting.
const surfaceOffset = 0.01

// Slot colours, used for the frame and for a portal with no partner yet.
var slotColors = [2]rl.Color{
	{R: 40, G: 140, B: 255, A: 255},
	{R: 255, G: 140, B: 30, A: 255},
}

// PortalRenderer owns one render texture per portal camera and draws each
// portal's surface with its partner camera's image.
type PortalRenderer struct {
	targets    [2]rl.RenderTexture2D
	shader     rl.Shader
	screenLoc  int32
	screenSize []float32

	// Opening animation, scale of the portal quad in [0, 1]
	openDuration float32
	tweens       [2]*gween.Tween
	scale        [2]float32
}

// NewPortalRenderer allocates the render targets. Requires an open window.
func NewPortalRenderer(texW, texH int32, screenW, screenH float32, openDuration float64) *PortalRenderer {
	r := &PortalRenderer{
		openDuration: float32(openDuration),
		screenSize:   []float32{screenW, screenH},
	}
	for i := range r.targets {
		r.targets[i] = rl.LoadRenderTexture(texW, texH)
	}

	r.shader = rl.LoadShader("", "shaders/portal.fs")
	r.screenLoc = rl.GetShaderLocation(r.shader, "screenSize")
	rl.SetShaderValue(r.shader, r.screenLoc, r.screenSize, rl.ShaderUniformVec2)

	return r
}

// Resize updates the screen size used to map fragments into the textures.
func (r *PortalRenderer) Resize(screenW, screenH float32) {
	r.screenSize[0] = screenW
	r.screenSize[1] = screenH
	rl.SetShaderValue(r.shader, r.screenLoc, r.screenSize, rl.ShaderUniformVec2)
}

// Opened starts the opening animation for slot.
func (r *PortalRenderer) Opened(s portal.Slot) {
	if !s.Valid() {
		return
	}
	if r.openDuration <= 0 {
		r.tweens[s] = nil
		r.scale[s] = 1
		return
	}
	r.tweens[s] = gween.New(0, 1, r.openDuration, ease.OutBack)
	r.scale[s] = 0
}

// Reset closes both portals visually.
func (r *PortalRenderer) Reset() {
	r.tweens = [2]*gween.Tween{}
	r.scale = [2]float32{}
}

// Update advances the opening animations by dt seconds.
func (r *PortalRenderer) Update(dt float32) {
	for i, tw := range r.tweens {
		if tw == nil {
			continue
		}
		v, done := tw.Update(dt)
		r.scale[i] = v
		if done {
			r.scale[i] = 1
			r.tweens[i] = nil
		}
	}
}

// RenderViews renders each enabled portal camera into its texture. draw
// renders the scene; it receives the wall to leave out, since the camera
// stands behind the wall its portal is mounted on.
func (r *PortalRenderer) RenderViews(pairs *portal.PairManager, fovy float64, draw func(skip *portal.Portal)) {
	pairs.Each(func(p *portal.Portal) {
		if !p.Camera.Enabled {
			return
		}
		rl.BeginTextureMode(r.targets[p.Slot])
		rl.ClearBackground(rl.SkyBlue)
		rl.BeginMode3D(CameraFor(p.Camera.Pose, fovy))
		draw(p)
		rl.EndMode3D()
		rl.EndTextureMode()
	})
}

// Draw draws every placed portal. A portal whose partner camera is enabled
// shows the partner's view; a lone portal is a flat disc of its colour.
// Must be called between BeginMode3D and EndMode3D.
func (r *PortalRenderer) Draw(pairs *portal.PairManager) {
	rl.DisableBackfaceCulling()
	pairs.Each(func(p *portal.Portal) {
		rect := r.surface(p)
		if rect.Width <= 0 {
			return
		}

		partner, err := pairs.Get(p.Slot.Partner())
		if err == nil && partner.Camera.Enabled {
			rl.BeginShaderMode(r.shader)
			rl.SetTexture(r.targets[partner.Slot].Texture.ID)
			drawQuad(rect, rl.White)
			rl.SetTexture(0)
			rl.EndShaderMode()
		} else {
			drawQuad(rect, rl.Fade(slotColors[p.Slot], 0.6))
		}
		r.drawFrame(rect, slotColors[p.Slot])
	})
	rl.EnableBackfaceCulling()
}

// DrawFlat draws placed portals as outlines only, for use inside portal
// views where recursion stops.
func (r *PortalRenderer) DrawFlat(pairs *portal.PairManager) {
	pairs.Each(func(p *portal.Portal) {
		r.drawFrame(r.surface(p), slotColors[p.Slot])
	})
}

// surface returns the animated portal rectangle, lifted off the wall.
func (r *PortalRenderer) surface(p *portal.Portal) geom.Rect {
	rect := p.Rect()
	s := float64(r.scale[p.Slot])
	rect.Width *= s
	rect.Height *= s
	rect.Pose.Position = rect.Pose.Position.Sub(p.Forward().Mul(surfaceOffset))
	return rect
}

func (r *PortalRenderer) drawFrame(rect geom.Rect, c rl.Color) {
	corners := rect.Corners()
	for i := range corners {
		rl.DrawLine3D(vec3(corners[i]), vec3(corners[(i+1)%4]), c)
	}
}

// Unload releases GPU resources.
func (r *PortalRenderer) Unload() {
	for _, t := range r.targets {
		rl.UnloadRenderTexture(t)
	}
	rl.UnloadShader(r.shader)
}
