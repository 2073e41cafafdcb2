// Package components defines ECS components for bodies in the arena.
package components

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/portal"
)

// Transform is an entity's world pose. Rotation is Euler degrees.
type Transform struct {
	Position mgl64.Vec3 `inspect:"vec,fmt:%.2f"`
	Rotation mgl64.Vec3 `inspect:"vec,fmt:%.0f"`
}

// Pose returns the transform as a geom.Pose.
func (t *Transform) Pose() geom.Pose {
	return geom.Pose{Position: t.Position, Rotation: t.Rotation}
}

// SetPose overwrites the transform.
func (t *Transform) SetPose(p geom.Pose) {
	t.Position = p.Position
	t.Rotation = p.Rotation
}

// RigidBody holds the simulated motion state of an entity.
type RigidBody struct {
	Velocity   mgl64.Vec3 `inspect:"vec,fmt:%.2f"`
	Mass       float64    `inspect:"label,fmt:%.1f"`
	UseGravity bool       `inspect:"bool"`
	Grounded   bool       `inspect:"bool"`
}

// Speed returns the velocity magnitude.
func (r *RigidBody) Speed() float64 {
	return r.Velocity.Len()
}

// Collider is a sphere around the entity's position.
type Collider struct {
	Radius float64 `inspect:"label,fmt:%.2f"`
}

// Crossing holds an entity's portal crossing latch.
// Entities without it never trigger portals.
type Crossing struct {
	Latch portal.Latch `inspect:"skip"`
}
