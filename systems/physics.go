// Package systems contains ECS systems for the portal arena.
package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/portals/components"
	"github.com/pthm-cable/portals/placement"
	"github.com/pthm-cable/portals/portal"
)

// wallThickness is how far behind a wall face a body is still pushed back
// out. Bodies further behind are outside the arena and left alone.
const wallThickness = 1.0

// PhysicsParams holds the integration constants.
type PhysicsParams struct {
	Gravity float64
	Drag    float64 // fraction of horizontal velocity lost per second while grounded
	FloorY  float64
	Bounce  float64
}

// PhysicsSystem integrates rigid bodies and resolves floor and wall contact.
// A wall flagged Passable does not collide. Once portals are attached, the
// opening of a linked portal does not collide either for a body that is
// free to cross and not yet inside its trigger.
type PhysicsSystem struct {
	filter    *ecs.Filter3[components.Transform, components.RigidBody, components.Collider]
	crossings *ecs.Map[components.Crossing]
	walls     []*placement.Surface
	params    PhysicsParams

	pairs    *portal.PairManager
	triggers *TriggerSystem
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, walls []*placement.Surface, params PhysicsParams) *PhysicsSystem {
	return &PhysicsSystem{
		filter:    ecs.NewFilter3[components.Transform, components.RigidBody, components.Collider](w),
		crossings: ecs.NewMap[components.Crossing](w),
		walls:     walls,
		params:    params,
	}
}

// SetPortals attaches the portal pair and the trigger state that decide
// where walls have holes. triggers may be nil.
func (s *PhysicsSystem) SetPortals(pairs *portal.PairManager, triggers *TriggerSystem) {
	s.pairs = pairs
	s.triggers = triggers
}

// Update advances every body by dt seconds.
func (s *PhysicsSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		tr, rb, col := query.Get()
		s.step(query.Entity(), tr, rb, col.Radius, dt)
	}
}

func (s *PhysicsSystem) step(e ecs.Entity, tr *components.Transform, rb *components.RigidBody, radius, dt float64) {
	if rb.UseGravity {
		rb.Velocity[1] -= s.params.Gravity * dt
	}
	if rb.Grounded && s.params.Drag > 0 {
		keep := 1 - s.params.Drag*dt
		if keep < 0 {
			keep = 0
		}
		rb.Velocity[0] *= keep
		rb.Velocity[2] *= keep
	}

	tr.Position = tr.Position.Add(rb.Velocity.Mul(dt))

	// Floor
	rb.Grounded = false
	if floor := s.params.FloorY + radius; tr.Position.Y() <= floor {
		tr.Position[1] = floor
		if rb.Velocity.Y() < 0 {
			rb.Velocity[1] = -rb.Velocity.Y() * s.params.Bounce
			if rb.Velocity.Y() < s.params.Gravity*dt {
				rb.Velocity[1] = 0
			}
		}
		rb.Grounded = true
	}

	for _, w := range s.walls {
		if w.Passable || s.throughPortal(e, w, tr.Position) {
			continue
		}
		tr.Position, rb.Velocity = s.collideWall(w, tr.Position, rb.Velocity, radius)
	}
}

// throughPortal reports whether a body at pos meets w inside the opening
// of a linked portal that will take it this tick. The trigger then sees
// the body with its velocity untouched.
func (s *PhysicsSystem) throughPortal(e ecs.Entity, w *placement.Surface, pos mgl64.Vec3) bool {
	if s.pairs == nil || !s.pairs.Complete() || !s.crossings.Has(e) {
		return false
	}
	if s.crossings.Get(e).Latch.Held() {
		return false
	}
	hole := false
	s.pairs.Each(func(p *portal.Portal) {
		if p.Wall != w || !p.Rect().Contains(pos, 0) {
			return
		}
		// A body already overlapping was refused on entry; keep the wall solid.
		if s.triggers == nil || !s.triggers.Inside(e, p.Slot) {
			hole = true
		}
	})
	return hole
}

// collideWall pushes a sphere out of the slab behind a wall face and
// removes the velocity heading into the wall.
func (s *PhysicsSystem) collideWall(w *placement.Surface, pos, vel mgl64.Vec3, radius float64) (mgl64.Vec3, mgl64.Vec3) {
	rect := w.Rect()
	d := rect.SignedDistance(pos)
	if d <= -radius || d > wallThickness+radius {
		return pos, vel
	}
	if !rect.Contains(pos, radius) {
		return pos, vel
	}

	n := rect.Normal()
	pos = pos.Sub(n.Mul(d + radius))
	if vn := vel.Dot(n); vn > 0 {
		vel = vel.Sub(n.Mul(vn * (1 + s.params.Bounce)))
	}
	return pos, vel
}
