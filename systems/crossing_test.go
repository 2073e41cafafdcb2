package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/camera"
	"github.com/pthm-cable/portals/components"
	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/placement"
	"github.com/pthm-cable/portals/portal"
)

type crossingRig struct {
	tw    *testWorld
	pairs *portal.PairManager
	trig  *TriggerSystem
	cross *CrossingSystem
	sched *portal.Scheduler
	cam   *camera.Camera
	walls []*placement.Surface
}

// newCrossingRig puts the left portal on the east wall and the right
// portal on the north wall.
func newCrossingRig(t *testing.T) *crossingRig {
	t.Helper()
	walls := arena(t)
	pairs := portal.NewPairManager(3, 3)
	ps := NewPlacementSystem(walls, pairs)
	shootFromCentre(t, ps, portal.SlotLeft, mgl64.Vec3{1, 0, 0})
	shootFromCentre(t, ps, portal.SlotRight, mgl64.Vec3{0, 0, 1})

	tw := newTestWorld()
	sched := portal.NewScheduler()
	cam := camera.New(mgl64.Vec3{}, 0.3, 100, 70)
	tp := portal.NewTeleporter(pairs, cam, sched, portal.DefaultTeleportConfig())
	return &crossingRig{
		tw:    tw,
		pairs: pairs,
		trig:  NewTriggerSystem(tw.world, 0.1),
		cross: NewCrossingSystem(tw.world, tp),
		sched: sched,
		cam:   cam,
		walls: walls,
	}
}

func (r *crossingRig) step() []CrossingRecord {
	return r.cross.Handle(r.trig.Update(r.pairs))
}

func TestCrossingEastToNorth(t *testing.T) {
	r := newCrossingRig(t)
	e := r.tw.body(mgl64.Vec3{9.6, 1.5, 0}, mgl64.Vec3{5, 0, 0}, 0.4)

	recs := r.step()
	if len(recs) != 1 {
		t.Fatalf("crossings = %d, want 1", len(recs))
	}
	if recs[0].Entity != e || recs[0].From != portal.SlotLeft || recs[0].To != portal.SlotRight {
		t.Errorf("record = %+v", recs[0])
	}

	tr, rb := r.tw.transform.Get(e), r.tw.rigid.Get(e)
	if !near(tr.Position, mgl64.Vec3{0, 1.5, 10.4}) {
		t.Errorf("position = %v, want (0, 1.5, 10.4)", tr.Position)
	}
	if math.Abs(geom.AngleDelta(tr.Rotation.Y(), 90)) > 1e-9 {
		t.Errorf("yaw = %f, want 90", tr.Rotation.Y())
	}
	// (5,0,0) turned a quarter becomes (0,0,-5); the exit push adds another -5.
	if !near(rb.Velocity, mgl64.Vec3{0, 0, -10}) {
		t.Errorf("velocity = %v, want (0, 0, -10)", rb.Velocity)
	}
	if !r.walls[0].Passable {
		t.Error("east wall should be passable during the crossing")
	}
	if r.tw.crossing.Get(e).Latch.State() != portal.InCrossing {
		t.Errorf("latch = %s", r.tw.crossing.Get(e).Latch.State())
	}

	// Next tick: left exit, right enter. The enter is swallowed by the latch.
	if recs := r.step(); len(recs) != 0 {
		t.Errorf("second tick crossed again: %+v", recs)
	}
	if r.walls[0].Passable {
		t.Error("east wall should be solid after the exit")
	}
	if r.tw.crossing.Get(e).Latch.State() != portal.Cooling {
		t.Errorf("latch = %s, want cooling", r.tw.crossing.Get(e).Latch.State())
	}

	r.sched.Advance(0.2)
	if r.tw.crossing.Get(e).Latch.Held() {
		t.Error("latch should be released after the cooldown")
	}
}

func TestCrossingTurnsViewerOnly(t *testing.T) {
	r := newCrossingRig(t)
	prop := r.tw.body(mgl64.Vec3{9.6, 1.5, 1}, mgl64.Vec3{}, 0.4)
	r.step()
	if r.cam.Yaw != 0 || r.cam.NearClip != 0.3 {
		t.Errorf("prop crossing moved the camera: yaw=%f near=%f", r.cam.Yaw, r.cam.NearClip)
	}
	r.cross.RemoveBody(prop)

	player := r.tw.body(mgl64.Vec3{9.6, 1.5, 0}, mgl64.Vec3{}, 0.4)
	r.tw.player.Add(player, &components.Player{EyeHeight: 1.6})
	r.cam.Yaw = 90

	r.step()
	if math.Abs(r.cam.Yaw-180) > 1e-9 {
		t.Errorf("camera yaw = %f, want 180", r.cam.Yaw)
	}
	if r.cam.NearClip != 0.01 {
		t.Errorf("near clip = %f, want 0.01", r.cam.NearClip)
	}

	r.step()
	if r.cam.NearClip != 0.3 {
		t.Errorf("near clip after exit = %f, want 0.3", r.cam.NearClip)
	}
}

func TestCrossingWithoutRigidBody(t *testing.T) {
	r := newCrossingRig(t)
	e := r.tw.ghost(mgl64.Vec3{9.6, 1.5, 0}, 0.4)

	recs := r.step()
	if len(recs) != 1 || recs[0].Physical {
		t.Fatalf("records = %+v, want one non-physical crossing", recs)
	}
	if !near(r.tw.transform.Get(e).Position, mgl64.Vec3{0, 1.5, 10.4}) {
		t.Errorf("position = %v", r.tw.transform.Get(e).Position)
	}
	if body := r.cross.Body(e); body.RigidBody() != nil {
		t.Error("ghost should report no rigid body")
	}
}

func TestRemoveBodyCancelsCooldown(t *testing.T) {
	r := newCrossingRig(t)
	e := r.tw.body(mgl64.Vec3{9.6, 1.5, 0}, mgl64.Vec3{}, 0.4)
	r.step()
	r.step()
	if r.sched.Pending() != 1 {
		t.Fatalf("pending = %d, want a cooldown", r.sched.Pending())
	}

	r.cross.RemoveBody(e)
	if r.tw.world.Alive(e) {
		t.Error("entity still alive")
	}
	if r.sched.Pending() != 0 {
		t.Errorf("pending = %d after removal", r.sched.Pending())
	}
	if n := r.sched.Advance(1); n != 0 {
		t.Errorf("%d callbacks fired for a removed body", n)
	}
	if recs := r.step(); len(recs) != 0 {
		t.Errorf("removed body crossed: %+v", recs)
	}
}

func TestCrossingNeedsBothPortals(t *testing.T) {
	walls := arena(t)
	pairs := portal.NewPairManager(3, 3)
	shootFromCentre(t, NewPlacementSystem(walls, pairs), portal.SlotLeft, mgl64.Vec3{1, 0, 0})

	tw := newTestWorld()
	trig := NewTriggerSystem(tw.world, 0.1)
	cross := NewCrossingSystem(tw.world, portal.NewTeleporter(pairs, nil, portal.NewScheduler(), portal.DefaultTeleportConfig()))

	e := tw.body(mgl64.Vec3{9.6, 1.5, 0}, mgl64.Vec3{1, 0, 0}, 0.4)
	if recs := cross.Handle(trig.Update(pairs)); len(recs) != 0 {
		t.Errorf("crossed with one portal: %+v", recs)
	}
	if cross.Unpaired() != 1 {
		t.Errorf("unpaired = %d, want 1", cross.Unpaired())
	}
	if tw.crossing.Get(e).Latch.Held() {
		t.Error("latch taken with one portal")
	}
}

func TestRigidHandleImpulse(t *testing.T) {
	r := newCrossingRig(t)
	e := r.tw.body(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 0.4)
	r.tw.rigid.Get(e).Mass = 2

	rb := r.cross.Body(e).RigidBody()
	rb.AddImpulse(mgl64.Vec3{0, 4, 0})
	if !near(rb.Velocity(), mgl64.Vec3{1, 2, 0}) {
		t.Errorf("velocity = %v, want (1, 2, 0)", rb.Velocity())
	}
}

func TestPlacementMiss(t *testing.T) {
	pairs := portal.NewPairManager(3, 3)
	ps := NewPlacementSystem(arena(t), pairs)

	_, err := ps.Shoot(portal.SlotLeft, geom.Ray{Origin: mgl64.Vec3{0, 1.5, 0}, Direction: mgl64.Vec3{0, 1, 0}})
	if !errors.Is(err, placement.ErrSurfaceNotFound) {
		t.Errorf("err = %v, want ErrSurfaceNotFound", err)
	}
	if _, err := pairs.Get(portal.SlotLeft); !errors.Is(err, portal.ErrPortalSlotUnoccupied) {
		t.Error("missed shot created a portal")
	}
}

func TestPlacementMovesPortal(t *testing.T) {
	walls := arena(t)
	pairs := portal.NewPairManager(3, 3)
	ps := NewPlacementSystem(walls, pairs)

	first := shootFromCentre(t, ps, portal.SlotLeft, mgl64.Vec3{1, 0, 0})
	second := shootFromCentre(t, ps, portal.SlotLeft, mgl64.Vec3{0, 0, -1})
	if first != second {
		t.Error("second shot should move the existing portal")
	}
	if second.Wall != walls[1] {
		t.Errorf("portal on %s, want %s", second.Wall.Name, walls[1].Name)
	}
	if !near(second.Position(), mgl64.Vec3{0, 1.5, -10}) {
		t.Errorf("position = %v", second.Position())
	}
}

func TestRegistryOrder(t *testing.T) {
	reg := NewSystemRegistry()
	ids := reg.IDs()
	if len(ids) == 0 || ids[0] != "input" || ids[len(ids)-1] != "telemetry" {
		t.Errorf("ids = %v", ids)
	}
	if reg.GetName("viewSync") != "View Sync" || reg.GetName("nope") != "nope" {
		t.Error("GetName lookup failed")
	}
}

// loopRig links the east wall to the west wall and runs the full tick.
type loopRig struct {
	*crossingRig
	phys *PhysicsSystem
	now  float64
}

func newLoopRig(t *testing.T, both bool) *loopRig {
	t.Helper()
	walls := arena(t)
	pairs := portal.NewPairManager(3, 3)
	ps := NewPlacementSystem(walls, pairs)
	shootFromCentre(t, ps, portal.SlotLeft, mgl64.Vec3{1, 0, 0})
	if both {
		shootFromCentre(t, ps, portal.SlotRight, mgl64.Vec3{-1, 0, 0})
	}

	tw := newTestWorld()
	sched := portal.NewScheduler()
	trig := NewTriggerSystem(tw.world, 0.1)
	phys := NewPhysicsSystem(tw.world, walls, PhysicsParams{})
	phys.SetPortals(pairs, trig)
	return &loopRig{
		crossingRig: &crossingRig{
			tw:    tw,
			pairs: pairs,
			trig:  trig,
			cross: NewCrossingSystem(tw.world, portal.NewTeleporter(pairs, nil, sched, portal.DefaultTeleportConfig())),
			sched: sched,
			walls: walls,
		},
		phys: phys,
	}
}

func (r *loopRig) tick(dt float64) []CrossingRecord {
	r.phys.Update(dt)
	recs := r.step()
	r.now += dt
	r.sched.Advance(r.now)
	return recs
}

func TestFastBodyKeepsVelocityThroughPortal(t *testing.T) {
	r := newLoopRig(t, true)
	e := r.tw.body(mgl64.Vec3{0, 1.5, 0}, mgl64.Vec3{15, 0, 0}, 0.4)

	const dt = 1.0 / 60
	var speeds []float64
	for i := 0; i < 600 && len(speeds) < 4; i++ {
		for _, rec := range r.tick(dt) {
			if rec.Entity != e {
				continue
			}
			in, out := rec.VelocityIn.Len(), rec.VelocityOut.Len()
			if math.Abs(out-in-5) > 1e-9 {
				t.Errorf("crossing %d: speed %f -> %f, want +5", len(speeds), in, out)
			}
			speeds = append(speeds, in)
		}
	}

	want := []float64{15, 20, 25, 30}
	if len(speeds) != len(want) {
		t.Fatalf("crossings = %d, want %d (speeds %v)", len(speeds), len(want), speeds)
	}
	for i := range want {
		if math.Abs(speeds[i]-want[i]) > 1e-9 {
			t.Errorf("crossing %d entered at %f, want %f", i, speeds[i], want[i])
		}
	}
}

func TestPortalOpeningCollision(t *testing.T) {
	tests := []struct {
		name  string
		both  bool
		z     float64
		solid bool
	}{
		{"linked opening lets body in", true, 0, false},
		{"lone portal is solid", false, 0, true},
		{"wall beside the opening is solid", true, 4, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newLoopRig(t, tc.both)
			e := r.tw.body(mgl64.Vec3{9.3, 1.5, tc.z}, mgl64.Vec3{30, 0, 0}, 0.4)

			// 0.5 per tick puts the centre past the wall face before the
			// trigger runs.
			r.phys.Update(1.0 / 60)
			x, vx := r.tw.transform.Get(e).Position.X(), r.tw.rigid.Get(e).Velocity.X()
			if tc.solid {
				if math.Abs(x-9.6) > 1e-9 || math.Abs(vx) > 1e-9 {
					t.Errorf("x=%f vx=%f, want stopped at 9.6", x, vx)
				}
				return
			}
			if math.Abs(x-9.8) > 1e-9 || vx != 30 {
				t.Errorf("x=%f vx=%f, want 9.8 moving at 30", x, vx)
			}
		})
	}
}

func TestRefusedBodyMeetsSolidOpening(t *testing.T) {
	r := newLoopRig(t, true)
	e := r.tw.body(mgl64.Vec3{9.3, 1.5, 0}, mgl64.Vec3{}, 0.4)

	// Take the latch by crossing from the west side, then let the body
	// leave so it is cooling.
	body := r.cross.Body(e)
	if _, ok, err := r.cross.Teleporter().Enter(body, portal.SlotRight); !ok || err != nil {
		t.Fatalf("enter: ok=%v err=%v", ok, err)
	}
	r.cross.Teleporter().Exit(body, portal.SlotRight)

	tr := r.tw.transform.Get(e)
	tr.Position = mgl64.Vec3{9.3, 1.5, 0}
	r.tw.rigid.Get(e).Velocity = mgl64.Vec3{30, 0, 0}

	r.phys.Update(1.0 / 60)
	if x := r.tw.transform.Get(e).Position.X(); math.Abs(x-9.6) > 1e-9 {
		t.Errorf("x = %f, want a latched body stopped at 9.6", x)
	}
}
