package portal

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/placement"
)

const tol = 1e-9

func vecNear(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() <= 1e-6
}

// newPair places both portals on their own walls and pins their poses.
func newPair(t *testing.T, a, b geom.Pose) (*PairManager, *placement.Surface, *placement.Surface) {
	t.Helper()
	m := NewPairManager(3, 3)
	wa := &placement.Surface{Name: "wall-a", Pose: a, Width: 20, Height: 20}
	wb := &placement.Surface{Name: "wall-b", Pose: b, Width: 20, Height: 20}

	for _, tc := range []struct {
		slot Slot
		wall *placement.Surface
		pose geom.Pose
	}{
		{SlotLeft, wa, a},
		{SlotRight, wb, b},
	} {
		hit := placement.Hit{Surface: tc.wall, Point: tc.pose.Position, UV: mgl64.Vec2{0.5, 0.5}}
		p, _, err := m.Place(tc.slot, hit)
		if err != nil {
			t.Fatalf("placing %s: %v", tc.slot, err)
		}
		p.Pose = tc.pose
	}
	return m, wa, wb
}

type fakeRigidBody struct {
	velocity mgl64.Vec3
	mass     float64
	sets     int
}

func (r *fakeRigidBody) Velocity() mgl64.Vec3 { return r.velocity }

func (r *fakeRigidBody) SetVelocity(v mgl64.Vec3) {
	r.velocity = v
	r.sets++
}

func (r *fakeRigidBody) AddImpulse(j mgl64.Vec3) {
	r.velocity = r.velocity.Add(j.Mul(1 / r.mass))
}

type fakeBody struct {
	pose   geom.Pose
	latch  Latch
	rb     *fakeRigidBody
	viewer bool
}

func (b *fakeBody) Pose() geom.Pose     { return b.pose }
func (b *fakeBody) SetPose(p geom.Pose) { b.pose = p }
func (b *fakeBody) PortalLink() *Latch  { return &b.latch }
func (b *fakeBody) CarriesViewer() bool { return b.viewer }

func (b *fakeBody) RigidBody() RigidBody {
	if b.rb == nil {
		return nil
	}
	return b.rb
}

type fakeViewer struct {
	near    float64
	rotated []mgl64.Vec3
}

func (v *fakeViewer) ForceRotate(offset mgl64.Vec3) { v.rotated = append(v.rotated, offset) }
func (v *fakeViewer) SetNearClip(d float64)         { v.near = d }
