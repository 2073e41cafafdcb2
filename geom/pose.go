// Package geom holds the engine-independent 3D math shared by placement,
// portals and cameras.
//
// The world is Y-up. Rotations are Euler angles in degrees applied roll (Z)
// first, then pitch (X), then yaw (Y), so yaw is always the outermost turn.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Local axes.
var (
	Up      = mgl64.Vec3{0, 1, 0}
	Right   = mgl64.Vec3{1, 0, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

// Pose is a world position plus an orientation as Euler angles in degrees.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
}

// NewPose builds a pose from a position and a yaw in degrees.
func NewPose(position mgl64.Vec3, yaw float64) Pose {
	return Pose{Position: position, Rotation: mgl64.Vec3{0, yaw, 0}}
}

// EulerQuat converts Euler angles in degrees to a quaternion.
func EulerQuat(e mgl64.Vec3) mgl64.Quat {
	yaw := mgl64.QuatRotate(mgl64.DegToRad(e.Y()), Up)
	pitch := mgl64.QuatRotate(mgl64.DegToRad(e.X()), Right)
	roll := mgl64.QuatRotate(mgl64.DegToRad(e.Z()), Forward)
	return yaw.Mul(pitch).Mul(roll)
}

// YawQuat is a rotation about the world up axis.
func YawQuat(degrees float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(degrees), Up)
}

// Quat returns the pose orientation as a quaternion.
func (p Pose) Quat() mgl64.Quat {
	return EulerQuat(p.Rotation)
}

// Yaw returns the rotation about the up axis in degrees.
func (p Pose) Yaw() float64 {
	return p.Rotation.Y()
}

// Forward returns the local +Z axis in world space.
func (p Pose) Forward() mgl64.Vec3 {
	return p.Quat().Rotate(Forward)
}

// Right returns the local +X axis in world space.
func (p Pose) Right() mgl64.Vec3 {
	return p.Quat().Rotate(Right)
}

// Up returns the local +Y axis in world space.
func (p Pose) Up() mgl64.Vec3 {
	return p.Quat().Rotate(Up)
}

// Translate moves the pose by d.
func (p Pose) Translate(d mgl64.Vec3) Pose {
	p.Position = p.Position.Add(d)
	return p
}

// RotateAround turns the pose about a vertical axis through pivot.
// Both the position and the facing are rotated.
func (p Pose) RotateAround(pivot mgl64.Vec3, degrees float64) Pose {
	rel := p.Position.Sub(pivot)
	p.Position = pivot.Add(YawQuat(degrees).Rotate(rel))
	p.Rotation[1] = NormalizeAngle(p.Rotation[1] + degrees)
	return p
}

// ToLocal expresses a world point in the pose's frame.
func (p Pose) ToLocal(world mgl64.Vec3) mgl64.Vec3 {
	return p.Quat().Inverse().Rotate(world.Sub(p.Position))
}

// ToWorld maps a point in the pose's frame to world space.
func (p Pose) ToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return p.Position.Add(p.Quat().Rotate(local))
}

// NormalizeAngle wraps an angle in degrees to [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngleDelta returns the shortest signed difference a-b in degrees, in (-180, 180].
func AngleDelta(a, b float64) float64 {
	d := NormalizeAngle(a - b)
	if d > 180 {
		d -= 360
	}
	return d
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
