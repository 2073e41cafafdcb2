package systems

import (
	"errors"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/portals/components"
	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/portal"
)

// CrossingRecord is one applied teleport with the entity that made it.
type CrossingRecord struct {
	Entity ecs.Entity
	portal.Crossing
}

// CrossingSystem feeds trigger events to the teleporter, adapting ECS
// entities to the portal package's body interfaces.
type CrossingSystem struct {
	world      *ecs.World
	transforms *ecs.Map[components.Transform]
	bodies     *ecs.Map[components.RigidBody]
	crossings  *ecs.Map[components.Crossing]
	players    *ecs.Map[components.Player]
	teleporter *portal.Teleporter

	records  []CrossingRecord
	unpaired int
}

// NewCrossingSystem creates a crossing system over w.
func NewCrossingSystem(w *ecs.World, teleporter *portal.Teleporter) *CrossingSystem {
	return &CrossingSystem{
		world:      w,
		transforms: ecs.NewMap[components.Transform](w),
		bodies:     ecs.NewMap[components.RigidBody](w),
		crossings:  ecs.NewMap[components.Crossing](w),
		players:    ecs.NewMap[components.Player](w),
		teleporter: teleporter,
	}
}

// Teleporter returns the wrapped teleporter.
func (s *CrossingSystem) Teleporter() *portal.Teleporter {
	return s.teleporter
}

// Body returns the portal-facing view of entity e.
func (s *CrossingSystem) Body(e ecs.Entity) portal.Crossable {
	return &bodyHandle{s: s, e: e}
}

// Handle applies trigger events in order and returns the crossings made.
// The returned slice is reused on the next call.
func (s *CrossingSystem) Handle(events []TriggerEvent) []CrossingRecord {
	s.records = s.records[:0]
	s.unpaired = 0
	for _, ev := range events {
		if !s.world.Alive(ev.Entity) || !s.crossings.Has(ev.Entity) {
			continue
		}
		body := s.Body(ev.Entity)
		if !ev.Enter {
			s.teleporter.Exit(body, ev.Slot)
			continue
		}

		c, ok, err := s.teleporter.Enter(body, ev.Slot)
		switch {
		case errors.Is(err, portal.ErrMissingPhysicsBody):
			slog.Warn("crossing without rigid body", "entity", ev.Entity.ID(), "slot", ev.Slot.String())
		case errors.Is(err, portal.ErrPortalSlotUnoccupied):
			// One portal alone is just a decal.
			s.unpaired++
			continue
		case err != nil:
			slog.Error("crossing failed", "entity", ev.Entity.ID(), "slot", ev.Slot.String(), "error", err)
			continue
		}
		if !ok {
			continue
		}
		slog.Debug("crossed",
			"entity", ev.Entity.ID(),
			"from", c.From.String(),
			"to", c.To.String(),
			"speed_in", c.VelocityIn.Len(),
			"speed_out", c.VelocityOut.Len(),
		)
		s.records = append(s.records, CrossingRecord{Entity: ev.Entity, Crossing: c})
	}
	return s.records
}

// Unpaired returns how many enters in the last Handle found no partner.
func (s *CrossingSystem) Unpaired() int {
	return s.unpaired
}

// RemoveBody cancels any pending cooldown for e and removes it from the world.
func (s *CrossingSystem) RemoveBody(e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	if s.crossings.Has(e) {
		s.teleporter.Forget(s.Body(e))
	}
	s.world.RemoveEntity(e)
}

// bodyHandle resolves components on every call; ark may move component
// storage between ticks.
type bodyHandle struct {
	s *CrossingSystem
	e ecs.Entity
}

func (h *bodyHandle) Pose() geom.Pose {
	return h.s.transforms.Get(h.e).Pose()
}

func (h *bodyHandle) SetPose(p geom.Pose) {
	h.s.transforms.Get(h.e).SetPose(p)
}

func (h *bodyHandle) PortalLink() *portal.Latch {
	if !h.s.world.Alive(h.e) || !h.s.crossings.Has(h.e) {
		return nil
	}
	return &h.s.crossings.Get(h.e).Latch
}

func (h *bodyHandle) RigidBody() portal.RigidBody {
	if !h.s.bodies.Has(h.e) {
		return nil
	}
	return rigidHandle(*h)
}

func (h *bodyHandle) CarriesViewer() bool {
	return h.s.players.Has(h.e)
}

type rigidHandle bodyHandle

func (r rigidHandle) Velocity() mgl64.Vec3 {
	return r.s.bodies.Get(r.e).Velocity
}

func (r rigidHandle) SetVelocity(v mgl64.Vec3) {
	r.s.bodies.Get(r.e).Velocity = v
}

// AddImpulse changes velocity by j/m.
func (r rigidHandle) AddImpulse(j mgl64.Vec3) {
	rb := r.s.bodies.Get(r.e)
	if rb.Mass <= 0 {
		rb.Velocity = rb.Velocity.Add(j)
		return
	}
	rb.Velocity = rb.Velocity.Add(j.Mul(1 / rb.Mass))
}
