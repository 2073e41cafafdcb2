// Package placement decides where a portal may sit on a wall.
package placement

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/geom"
)

// ErrSurfaceNotFound is returned when a placement cast hits no wall.
var ErrSurfaceNotFound = errors.New("no wall surface hit")

// Surface is a planar rectangular wall that can host a portal.
// The scene owns surfaces; portals only point at them.
type Surface struct {
	Name   string
	Pose   geom.Pose
	Width  float64
	Height float64
	Color  color.RGBA

	// Passable is set while a body is crossing a portal mounted here,
	// letting it through the wall instead of colliding.
	Passable bool
}

// Rect returns the surface as a rectangle. The normal points out of the arena.
func (s *Surface) Rect() geom.Rect {
	return geom.Rect{Pose: s.Pose, Width: s.Width, Height: s.Height}
}

// Hit describes where a placement ray struck a wall.
type Hit struct {
	Surface  *Surface
	Point    mgl64.Vec3
	UV       mgl64.Vec2
	Distance float64
}

// Cast finds the nearest wall struck by ray.
func Cast(ray geom.Ray, walls []*Surface) (Hit, error) {
	best := Hit{Distance: math.Inf(1)}
	for _, w := range walls {
		h, ok := w.Rect().Intersect(ray)
		if !ok || h.Distance >= best.Distance {
			continue
		}
		best = Hit{Surface: w, Point: h.Point, UV: h.UV, Distance: h.Distance}
	}
	if best.Surface == nil {
		return Hit{}, ErrSurfaceNotFound
	}
	return best, nil
}

// ArenaWalls builds one wall per edge of a closed ground outline.
// corners are (x, z) points; the last edge closes back to the first.
// Each wall is centred at height/2. Its normal is the edge direction turned
// a quarter to the left of +Y, so the default outline's walls all face outward.
func ArenaWalls(corners []mgl64.Vec2, height float64, colors []color.RGBA) ([]*Surface, error) {
	if len(corners) < 3 {
		return nil, fmt.Errorf("arena needs at least 3 corners, got %d", len(corners))
	}
	walls := make([]*Surface, 0, len(corners))
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		edge := b.Sub(a)
		length := edge.Len()
		if length == 0 {
			return nil, fmt.Errorf("arena edge %d has zero length", i)
		}

		mid := a.Add(b).Mul(0.5)
		yaw := geom.NormalizeAngle(mgl64.RadToDeg(math.Atan2(-edge.Y(), edge.X())))

		col := color.RGBA{R: 200, G: 200, B: 200, A: 255}
		if len(colors) > 0 {
			col = colors[i%len(colors)]
		}

		walls = append(walls, &Surface{
			Name:   fmt.Sprintf("wall-%d", i),
			Pose:   geom.NewPose(mgl64.Vec3{mid.X(), height / 2, mid.Y()}, yaw),
			Width:  length,
			Height: height,
			Color:  col,
		})
	}
	return walls, nil
}
