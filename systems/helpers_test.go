package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/portals/components"
	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/placement"
	"github.com/pthm-cable/portals/portal"
)

func near(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < 1e-6
}

// arena returns the 20x20 test arena: wall-0 east (+X), wall-1 south (-Z),
// wall-2 west (-X), wall-3 north (+Z). All walls face outward.
func arena(t *testing.T) []*placement.Surface {
	t.Helper()
	corners := []mgl64.Vec2{{10, 10}, {10, -10}, {-10, -10}, {-10, 10}}
	walls, err := placement.ArenaWalls(corners, 20, nil)
	if err != nil {
		t.Fatal(err)
	}
	return walls
}

// shootFromCentre places the portal for slot by firing along dir from the
// arena centre at portal height.
func shootFromCentre(t *testing.T, ps *PlacementSystem, slot portal.Slot, dir mgl64.Vec3) *portal.Portal {
	t.Helper()
	p, err := ps.Shoot(slot, geom.Ray{Origin: mgl64.Vec3{0, 1.5, 0}, Direction: dir})
	if err != nil {
		t.Fatalf("shoot %s: %v", slot, err)
	}
	return p
}

type testWorld struct {
	world     *ecs.World
	full      *ecs.Map4[components.Transform, components.RigidBody, components.Collider, components.Crossing]
	noBody    *ecs.Map3[components.Transform, components.Collider, components.Crossing]
	transform *ecs.Map[components.Transform]
	rigid     *ecs.Map[components.RigidBody]
	crossing  *ecs.Map[components.Crossing]
	player    *ecs.Map[components.Player]
}

func newTestWorld() *testWorld {
	w := ecs.NewWorld()
	return &testWorld{
		world:     w,
		full:      ecs.NewMap4[components.Transform, components.RigidBody, components.Collider, components.Crossing](w),
		noBody:    ecs.NewMap3[components.Transform, components.Collider, components.Crossing](w),
		transform: ecs.NewMap[components.Transform](w),
		rigid:     ecs.NewMap[components.RigidBody](w),
		crossing:  ecs.NewMap[components.Crossing](w),
		player:    ecs.NewMap[components.Player](w),
	}
}

func (tw *testWorld) body(pos, vel mgl64.Vec3, radius float64) ecs.Entity {
	return tw.full.NewEntity(
		&components.Transform{Position: pos},
		&components.RigidBody{Velocity: vel, Mass: 1},
		&components.Collider{Radius: radius},
		&components.Crossing{},
	)
}

func (tw *testWorld) ghost(pos mgl64.Vec3, radius float64) ecs.Entity {
	return tw.noBody.NewEntity(
		&components.Transform{Position: pos},
		&components.Collider{Radius: radius},
		&components.Crossing{},
	)
}
