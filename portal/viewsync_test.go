package portal

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/placement"
)

func TestSyncNeedsBothPortals(t *testing.T) {
	pairs := NewPairManager(3, 3)
	wall := &placement.Surface{Name: "w", Pose: geom.NewPose(mgl64.Vec3{0, 5, 10}, 0), Width: 20, Height: 10}
	p, _, err := pairs.Place(SlotLeft, placement.Hit{Surface: wall, Point: mgl64.Vec3{0, 5, 10}, UV: mgl64.Vec2{0.5, 0.5}})
	if err != nil {
		t.Fatal(err)
	}
	before := p.Camera

	err = NewSynchronizer(pairs).Sync(geom.NewPose(mgl64.Vec3{1, 2, 3}, 40))
	if !errors.Is(err, ErrPortalSlotUnoccupied) {
		t.Errorf("err = %v, want ErrPortalSlotUnoccupied", err)
	}
	if p.Camera != before {
		t.Errorf("camera moved with one portal placed: %+v", p.Camera)
	}
	if p.Camera.Enabled {
		t.Error("camera enabled without a partner")
	}
}

func TestCameraPoseOppositeWalls(t *testing.T) {
	a := geom.NewPose(mgl64.Vec3{10, 10, 0}, 90)
	b := geom.NewPose(mgl64.Vec3{-10, 10, 0}, 270)
	viewer := geom.NewPose(mgl64.Vec3{0, 10, 0}, 90)

	// diff = 180 + 180 = 360: the camera stands behind B exactly as far as
	// the viewer stands in front of A.
	got := CameraPose(viewer, a, b)
	if !vecNear(got.Position, mgl64.Vec3{-20, 10, 0}) {
		t.Errorf("position = %v, want (-20, 10, 0)", got.Position)
	}
	if math.Abs(geom.AngleDelta(got.Yaw(), 90)) > 1e-9 {
		t.Errorf("yaw = %v, want 90", got.Yaw())
	}
}

func TestCameraPoseIsTeleportImage(t *testing.T) {
	cases := []struct {
		name   string
		a, b   geom.Pose
		viewer geom.Pose
	}{
		{"adjacent", geom.NewPose(mgl64.Vec3{10, 4, 3}, 90), geom.NewPose(mgl64.Vec3{2, 6, -10}, 180), geom.NewPose(mgl64.Vec3{1, 2, 1}, 30)},
		{"same facing", geom.NewPose(mgl64.Vec3{0, 0, 0}, 0), geom.NewPose(mgl64.Vec3{10, 0, 0}, 0), geom.NewPose(mgl64.Vec3{0, 0, -3}, 0)},
		{"pitched viewer", geom.NewPose(mgl64.Vec3{1, 1, 1}, 45), geom.NewPose(mgl64.Vec3{-5, 2, 0}, 300), geom.Pose{Position: mgl64.Vec3{2, 1, -4}, Rotation: mgl64.Vec3{20, 10, 0}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CameraPose(tc.viewer, tc.a, tc.b)
			want := CrossingOffset(tc.a, tc.b).ApplyPose(tc.viewer)
			if !vecNear(got.Position, want.Position) {
				t.Errorf("position = %v, want %v", got.Position, want.Position)
			}
			if math.Abs(geom.AngleDelta(got.Yaw(), want.Yaw())) > 1e-9 {
				t.Errorf("yaw = %v, want %v", got.Yaw(), want.Yaw())
			}
			if got.Rotation.X() != tc.viewer.Rotation.X() {
				t.Errorf("pitch = %v, want %v", got.Rotation.X(), tc.viewer.Rotation.X())
			}
		})
	}
}

func TestSyncUpdatesBothCameras(t *testing.T) {
	a := geom.NewPose(mgl64.Vec3{10, 4, 3}, 90)
	b := geom.NewPose(mgl64.Vec3{2, 6, -10}, 180)
	pairs, _, _ := newPair(t, a, b)
	viewer := geom.NewPose(mgl64.Vec3{0, 1.7, 0}, 15)

	if err := NewSynchronizer(pairs).Sync(viewer); err != nil {
		t.Fatal(err)
	}
	left, _ := pairs.Get(SlotLeft)
	right, _ := pairs.Get(SlotRight)

	// Right's camera renders what the viewer sees through left, and vice versa.
	if want := CameraPose(viewer, a, b); !vecNear(right.Camera.Pose.Position, want.Position) {
		t.Errorf("right camera = %v, want %v", right.Camera.Pose.Position, want.Position)
	}
	if want := CameraPose(viewer, b, a); !vecNear(left.Camera.Pose.Position, want.Position) {
		t.Errorf("left camera = %v, want %v", left.Camera.Pose.Position, want.Position)
	}
	if !left.Camera.Enabled || !right.Camera.Enabled {
		t.Error("cameras should be enabled once both portals exist")
	}
}
