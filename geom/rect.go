package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// parallelEpsilon is the smallest |n·d| treated as a real intersection.
const parallelEpsilon = 1e-9

// Ray is a half-line from Origin along Direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Sphere returns the distance along the ray to the first point of a
// sphere. A ray starting inside the sphere does not hit it.
func (r Ray) Sphere(centre mgl64.Vec3, radius float64) (float64, bool) {
	dir := r.Direction.Normalize()
	oc := r.Origin.Sub(centre)
	c := oc.Dot(oc) - radius*radius
	if c <= 0 {
		return 0, false
	}
	b := oc.Dot(dir)
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Rect is a flat rectangle centred on Pose, spanning the local X/Y plane.
// Its normal is the pose's forward axis.
type Rect struct {
	Pose          Pose
	Width, Height float64
}

// RectHit describes a ray striking a rectangle.
// UV is the hit position normalized to [0,1]x[0,1] across the surface,
// with U running along local +X and V along local +Y.
type RectHit struct {
	Point    mgl64.Vec3
	Distance float64
	UV       mgl64.Vec2
}

// Normal returns the rectangle's facing.
func (r Rect) Normal() mgl64.Vec3 {
	return r.Pose.Forward()
}

// SignedDistance is the distance from p to the rectangle's plane along its normal.
func (r Rect) SignedDistance(p mgl64.Vec3) float64 {
	return r.Normal().Dot(p.Sub(r.Pose.Position))
}

// Contains reports whether the projection of p onto the plane lies inside
// the rectangle, grown by margin on every side.
func (r Rect) Contains(p mgl64.Vec3, margin float64) bool {
	local := r.Pose.ToLocal(p)
	return math.Abs(local.X()) <= r.Width/2+margin && math.Abs(local.Y()) <= r.Height/2+margin
}

// UV returns the normalized surface coordinate of p.
func (r Rect) UV(p mgl64.Vec3) mgl64.Vec2 {
	local := r.Pose.ToLocal(p)
	return mgl64.Vec2{local.X()/r.Width + 0.5, local.Y()/r.Height + 0.5}
}

// Intersect casts ray against both faces of the rectangle.
func (r Rect) Intersect(ray Ray) (RectHit, bool) {
	n := r.Normal()
	denom := n.Dot(ray.Direction)
	if math.Abs(denom) < parallelEpsilon {
		return RectHit{}, false
	}
	t := n.Dot(r.Pose.Position.Sub(ray.Origin)) / denom
	if t < 0 {
		return RectHit{}, false
	}
	p := ray.At(t)
	if !r.Contains(p, 0) {
		return RectHit{}, false
	}
	return RectHit{
		Point:    p,
		Distance: t * ray.Direction.Len(),
		UV:       r.UV(p),
	}, true
}

// Corners returns the four corners counter-clockwise seen from behind the normal,
// starting bottom-left.
func (r Rect) Corners() [4]mgl64.Vec3 {
	hw, hh := r.Width/2, r.Height/2
	return [4]mgl64.Vec3{
		r.Pose.ToWorld(mgl64.Vec3{-hw, -hh, 0}),
		r.Pose.ToWorld(mgl64.Vec3{hw, -hh, 0}),
		r.Pose.ToWorld(mgl64.Vec3{hw, hh, 0}),
		r.Pose.ToWorld(mgl64.Vec3{-hw, hh, 0}),
	}
}
