package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/components"
)

// MoveIntent is one tick of player movement input.
type MoveIntent struct {
	Forward float64 // -1..1
	Strafe  float64 // -1..1, positive is right
	Jump    bool
}

// Idle reports whether the intent asks for nothing.
func (in MoveIntent) Idle() bool {
	return in.Forward == 0 && in.Strafe == 0 && !in.Jump
}

// ApplyWalk sets the player's horizontal velocity from input while it
// stands on the floor. In the air the body keeps its momentum, so a
// portal's exit push is not cancelled by held keys.
func ApplyWalk(rb *components.RigidBody, pl *components.Player, forward, right mgl64.Vec3, in MoveIntent) {
	if !rb.Grounded {
		return
	}
	dir := forward.Mul(in.Forward).Add(right.Mul(in.Strafe))
	dir[1] = 0
	if l := dir.Len(); l > 1e-9 {
		dir = dir.Mul(pl.WalkSpeed / l)
		rb.Velocity[0] = dir.X()
		rb.Velocity[2] = dir.Z()
	}
	if in.Jump {
		rb.Velocity[1] = pl.JumpSpeed
		rb.Grounded = false
	}
}
