// Package camera provides the first-person viewer camera.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/geom"
)

// Camera is the player's eye. It follows a body and can be turned by
// mouse look or, when the body crosses a portal, by a forced rotation.
type Camera struct {
	// Position is the eye point in world coordinates
	Position mgl64.Vec3

	// Euler angles in degrees. Positive pitch looks down.
	Yaw, Pitch, Roll float64

	// Clip planes and vertical field of view (degrees)
	NearClip, FarClip float64
	Fovy              float64

	// Degrees of turn per pixel of mouse motion
	Sensitivity float64

	// Pitch is kept within +-MaxPitch
	MaxPitch float64
}

// New creates a camera at position looking along +Z.
func New(position mgl64.Vec3, nearClip, farClip, fovy float64) *Camera {
	return &Camera{
		Position:    position,
		NearClip:    nearClip,
		FarClip:     farClip,
		Fovy:        fovy,
		Sensitivity: 0.1,
		MaxPitch:    89,
	}
}

// Pose returns the eye pose.
func (c *Camera) Pose() geom.Pose {
	return geom.Pose{Position: c.Position, Rotation: c.Rotation()}
}

// Rotation returns the Euler angles as (pitch, yaw, roll).
func (c *Camera) Rotation() mgl64.Vec3 {
	return mgl64.Vec3{c.Pitch, c.Yaw, c.Roll}
}

// Forward returns the view direction.
func (c *Camera) Forward() mgl64.Vec3 {
	return c.Pose().Forward()
}

// Up returns the camera's up vector.
func (c *Camera) Up() mgl64.Vec3 {
	return c.Pose().Up()
}

// Target returns a point one unit ahead, for look-at style renderers.
func (c *Camera) Target() mgl64.Vec3 {
	return c.Position.Add(c.Forward())
}

// Ray returns the view ray from the eye.
func (c *Camera) Ray() geom.Ray {
	return geom.Ray{Origin: c.Position, Direction: c.Forward()}
}

// Look turns the camera by a mouse delta in pixels. Moving the mouse
// right turns right, moving it down looks down.
func (c *Camera) Look(dx, dy float64) {
	c.Yaw = geom.NormalizeAngle(c.Yaw - dx*c.Sensitivity)
	c.Pitch = geom.Clamp(c.Pitch+dy*c.Sensitivity, -c.MaxPitch, c.MaxPitch)
}

// ForceRotate adds a rotation offset in degrees to the current view,
// ignoring mouse input for this step.
func (c *Camera) ForceRotate(offset mgl64.Vec3) {
	c.Pitch = geom.Clamp(c.Pitch+offset.X(), -c.MaxPitch, c.MaxPitch)
	c.Yaw = geom.NormalizeAngle(c.Yaw + offset.Y())
	c.Roll += offset.Z()
}

// SetNearClip moves the near clip plane.
func (c *Camera) SetNearClip(distance float64) {
	c.NearClip = distance
}

// Follow places the eye above a body's position.
func (c *Camera) Follow(body mgl64.Vec3, eyeHeight float64) {
	c.Position = body.Add(mgl64.Vec3{0, eyeHeight, 0})
}

// MoveBasis returns the horizontal forward and right directions used for
// walking, independent of pitch. The world is right-handed, so screen
// right is forward x up.
func (c *Camera) MoveBasis() (forward, right mgl64.Vec3) {
	forward = geom.NewPose(mgl64.Vec3{}, c.Yaw).Forward()
	return forward, forward.Cross(geom.Up)
}
