package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/portals/components"
	"github.com/pthm-cable/portals/portal"
)

// TriggerEvent is a body starting or ending overlap with a portal's trigger volume.
type TriggerEvent struct {
	Entity ecs.Entity
	Slot   portal.Slot
	Enter  bool
}

// TriggerSystem tracks which bodies overlap which portal trigger and
// reports the changes each tick.
//
// A portal's trigger is a box over the portal rectangle reaching depth
// beyond a body's radius on both sides of the surface.
type TriggerSystem struct {
	filter *ecs.Filter3[components.Transform, components.Collider, components.Crossing]
	depth  float64
	inside map[ecs.Entity][2]bool

	events []TriggerEvent
}

// NewTriggerSystem creates a trigger system.
func NewTriggerSystem(w *ecs.World, depth float64) *TriggerSystem {
	return &TriggerSystem{
		filter: ecs.NewFilter3[components.Transform, components.Collider, components.Crossing](w),
		depth:  depth,
		inside: make(map[ecs.Entity][2]bool),
	}
}

// Overlaps reports whether a sphere at the given centre touches p's trigger.
func Overlaps(p *portal.Portal, centre mgl64.Vec3, radius, depth float64) bool {
	rect := p.Rect()
	if math.Abs(rect.SignedDistance(centre)) > radius+depth {
		return false
	}
	return rect.Contains(centre, 0)
}

// Update recomputes overlaps against the placed portals. Exits are listed
// before enters so a body leaving one trigger and entering another in the
// same tick has its latch cooled first. The returned slice is reused on
// the next call.
func (s *TriggerSystem) Update(pairs *portal.PairManager) []TriggerEvent {
	s.events = s.events[:0]
	var enters []TriggerEvent

	seen := make(map[ecs.Entity]struct{}, len(s.inside))
	query := s.filter.Query()
	for query.Next() {
		tr, col, _ := query.Get()
		e := query.Entity()
		seen[e] = struct{}{}

		prev := s.inside[e]
		var now [2]bool
		pairs.Each(func(p *portal.Portal) {
			now[p.Slot] = Overlaps(p, tr.Position, col.Radius, s.depth)
		})

		for _, slot := range portal.Slots {
			switch {
			case now[slot] && !prev[slot]:
				enters = append(enters, TriggerEvent{Entity: e, Slot: slot, Enter: true})
			case !now[slot] && prev[slot]:
				s.events = append(s.events, TriggerEvent{Entity: e, Slot: slot})
			}
		}
		if now == ([2]bool{}) {
			delete(s.inside, e)
		} else {
			s.inside[e] = now
		}
	}

	// Entities that disappeared stop being tracked without events.
	for e := range s.inside {
		if _, ok := seen[e]; !ok {
			delete(s.inside, e)
		}
	}

	s.events = append(s.events, enters...)
	return s.events
}

// Inside reports whether e currently overlaps the trigger of slot.
func (s *TriggerSystem) Inside(e ecs.Entity, slot portal.Slot) bool {
	return s.inside[e][slot]
}

// Forget drops tracking for e.
func (s *TriggerSystem) Forget(e ecs.Entity) {
	delete(s.inside, e)
}

// Reset clears all overlaps, e.g. after the portals were removed.
func (s *TriggerSystem) Reset() {
	clear(s.inside)
}
