package portal

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/geom"
)

// halfTurn flips the exit view: leaving a portal you face out of the
// partner, not into it.
const halfTurn = 180.0

// Offset is the rigid motion that carries a pose from the entry portal's
// frame to the exit portal's frame.
type Offset struct {
	Pivot    mgl64.Vec3 // entry portal centre
	Position mgl64.Vec3 // exit centre minus entry centre
	Rotation mgl64.Vec3 // Euler degrees
}

// CrossingOffset computes the offset for a body entering `from` and
// leaving through `to`.
func CrossingOffset(from, to geom.Pose) Offset {
	return Offset{
		Pivot:    from.Position,
		Position: to.Position.Sub(from.Position),
		Rotation: to.Rotation.Add(mgl64.Vec3{0, halfTurn, 0}).Sub(from.Rotation),
	}
}

// Yaw returns the turn about the up axis in degrees.
func (o Offset) Yaw() float64 {
	return o.Rotation.Y()
}

// ApplyPose rotates p about the entry centre by the offset yaw, then
// translates it by the centre difference. A body's placement relative to
// the entry portal becomes the same placement relative to the exit.
func (o Offset) ApplyPose(p geom.Pose) geom.Pose {
	return p.RotateAround(o.Pivot, o.Yaw()).Translate(o.Position)
}

// ApplyVelocity re-expresses a velocity in the exit portal's frame.
func (o Offset) ApplyVelocity(v mgl64.Vec3) mgl64.Vec3 {
	return geom.EulerQuat(o.Rotation).Rotate(v)
}

// ApplyPoint maps a world point the way ApplyPose maps positions.
func (o Offset) ApplyPoint(p mgl64.Vec3) mgl64.Vec3 {
	return o.Pivot.Add(geom.YawQuat(o.Yaw()).Rotate(p.Sub(o.Pivot))).Add(o.Position)
}
