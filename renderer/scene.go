// Package renderer draws the arena and the portal views with raylib.
package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/placement"
)

// Body is a sphere to draw.
type Body struct {
	Position mgl64.Vec3
	Radius   float64
	Color    color.RGBA
}

// Scene draws the static arena and the bodies in it.
type Scene struct {
	walls     []*placement.Surface
	floorSize float32
	floor     rl.Color
}

// NewScene creates a scene renderer for walls.
func NewScene(walls []*placement.Surface) *Scene {
	size := float32(0)
	for _, w := range walls {
		p := w.Pose.Position
		if d := float32(2 * (math.Abs(p.X()) + w.Width/2)); d > size {
			size = d
		}
		if d := float32(2 * (math.Abs(p.Z()) + w.Width/2)); d > size {
			size = d
		}
	}
	return &Scene{
		walls:     walls,
		floorSize: size,
		floor:     rl.Color{R: 70, G: 72, B: 80, A: 255},
	}
}

// Draw renders floor, walls and bodies. skip, if not nil, is left out;
// a portal camera stands behind its own wall and must see through it.
// Must be called between BeginMode3D and EndMode3D.
func (s *Scene) Draw(bodies []Body, skip *placement.Surface) {
	rl.DrawPlane(rl.Vector3{}, rl.Vector2{X: s.floorSize, Y: s.floorSize}, s.floor)
	rl.DrawGrid(int32(s.floorSize), 1)

	rl.DisableBackfaceCulling()
	for _, w := range s.walls {
		if w == skip {
			continue
		}
		drawQuad(w.Rect(), rl.NewColor(w.Color.R, w.Color.G, w.Color.B, w.Color.A))
	}
	rl.EnableBackfaceCulling()

	for _, b := range bodies {
		c := rl.NewColor(b.Color.R, b.Color.G, b.Color.B, b.Color.A)
		rl.DrawSphere(vec3(b.Position), float32(b.Radius), c)
		rl.DrawSphereWires(vec3(b.Position), float32(b.Radius), 6, 8, rl.Fade(rl.Black, 0.3))
	}
}

// drawQuad emits r as one immediate-mode quad in the current colour.
func drawQuad(r geom.Rect, c rl.Color) {
	corners := r.Corners()
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	rl.Begin(rl.Quads)
	rl.Color4ub(c.R, c.G, c.B, c.A)
	for i, p := range corners {
		rl.TexCoord2f(uvs[i][0], uvs[i][1])
		rl.Vertex3f(float32(p.X()), float32(p.Y()), float32(p.Z()))
	}
	rl.End()
}

// CameraFor converts a pose to a raylib camera.
func CameraFor(p geom.Pose, fovy float64) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(p.Position),
		Target:     vec3(p.Position.Add(p.Forward())),
		Up:         vec3(p.Up()),
		Fovy:       float32(fovy),
		Projection: rl.CameraPerspective,
	}
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X()), Y: float32(v.Y()), Z: float32(v.Z())}
}
