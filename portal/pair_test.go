package portal

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/placement"
)

func wallAt(name string, pos mgl64.Vec3, yaw float64) *placement.Surface {
	return &placement.Surface{Name: name, Pose: geom.NewPose(pos, yaw), Width: 20, Height: 20}
}

func centreHit(w *placement.Surface) placement.Hit {
	return placement.Hit{Surface: w, Point: w.Pose.Position, UV: mgl64.Vec2{0.5, 0.5}}
}

func TestPlaceCreatesThenMoves(t *testing.T) {
	m := NewPairManager(3, 3)
	east := wallAt("east", mgl64.Vec3{10, 10, 0}, 90)
	north := wallAt("north", mgl64.Vec3{0, 10, 10}, 0)

	p1, created, err := m.Place(SlotLeft, centreHit(east))
	if err != nil || !created {
		t.Fatalf("first place: created=%v err=%v", created, err)
	}
	p2, created, err := m.Place(SlotLeft, centreHit(north))
	if err != nil || created {
		t.Fatalf("second place: created=%v err=%v", created, err)
	}
	if p1 != p2 {
		t.Error("moving a portal should keep the same instance")
	}
	if p2.Wall != north {
		t.Errorf("wall = %s, want north", p2.Wall.Name)
	}
	if !vecNear(p2.Position(), north.Pose.Position) {
		t.Errorf("position = %v, want %v", p2.Position(), north.Pose.Position)
	}
	if p2.Pose.Rotation != north.Pose.Rotation {
		t.Errorf("rotation = %v, want wall rotation %v", p2.Pose.Rotation, north.Pose.Rotation)
	}
}

func TestPlaceEnablesCamerasWhenComplete(t *testing.T) {
	m := NewPairManager(3, 3)
	left, _, _ := m.Place(SlotLeft, centreHit(wallAt("east", mgl64.Vec3{10, 10, 0}, 90)))
	if left.Camera.Enabled || m.Complete() {
		t.Fatal("one portal should not enable cameras")
	}
	right, _, _ := m.Place(SlotRight, centreHit(wallAt("west", mgl64.Vec3{-10, 10, 0}, 270)))
	if !m.Complete() {
		t.Fatal("pair should be complete")
	}
	if !left.Camera.Enabled || !right.Camera.Enabled {
		t.Error("both cameras should be enabled")
	}

	self, partner, err := m.Pair(SlotRight)
	if err != nil || self != right || partner != left {
		t.Errorf("Pair(right) = %v, %v, %v", self, partner, err)
	}
}

func TestPlaceErrors(t *testing.T) {
	m := NewPairManager(3, 3)
	if _, _, err := m.Place(Slot(2), centreHit(wallAt("w", mgl64.Vec3{}, 0))); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("invalid slot: err = %v", err)
	}
	if _, _, err := m.Place(SlotLeft, placement.Hit{}); !errors.Is(err, placement.ErrSurfaceNotFound) {
		t.Errorf("missing surface: err = %v", err)
	}
	if _, err := m.Get(SlotLeft); !errors.Is(err, ErrPortalSlotUnoccupied) {
		t.Errorf("empty slot: err = %v", err)
	}
	if _, err := m.Get(Slot(-1)); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("negative slot: err = %v", err)
	}
}

func TestMovedPortalClosesOldWall(t *testing.T) {
	m := NewPairManager(3, 3)
	east := wallAt("east", mgl64.Vec3{10, 10, 0}, 90)
	north := wallAt("north", mgl64.Vec3{0, 10, 10}, 0)

	m.Place(SlotLeft, centreHit(east))
	east.Passable = true
	m.Place(SlotLeft, centreHit(north))
	if east.Passable {
		t.Error("old wall left passable after the portal moved")
	}
}

func TestReset(t *testing.T) {
	pairs, wa, wb := newPair(t, geom.NewPose(mgl64.Vec3{}, 0), geom.NewPose(mgl64.Vec3{10, 0, 0}, 0))
	wa.Passable = true
	wb.Passable = true

	pairs.Reset()
	if pairs.Complete() {
		t.Error("pair still complete after reset")
	}
	n := 0
	pairs.Each(func(*Portal) { n++ })
	if n != 0 {
		t.Errorf("%d portals left after reset", n)
	}
	if wa.Passable || wb.Passable {
		t.Error("reset left a wall open")
	}
}

func TestSlotPartner(t *testing.T) {
	if SlotLeft.Partner() != SlotRight || SlotRight.Partner() != SlotLeft {
		t.Error("partner slots are not each other")
	}
	if SlotLeft.String() != "left" || SlotRight.String() != "right" {
		t.Errorf("names: %s %s", SlotLeft, SlotRight)
	}
}

func TestRestoreKeepsPose(t *testing.T) {
	m := NewPairManager(3, 3)
	w := wallAt("wall-0", mgl64.Vec3{10, 10, 0}, 90)
	pose := geom.NewPose(mgl64.Vec3{10, 1.6, -2}, 90)

	p, err := m.Restore(SlotLeft, w, pose)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !vecNear(p.Position(), pose.Position) || p.Wall != w {
		t.Errorf("restored portal at %v on %v", p.Position(), p.Wall)
	}
	if p.Camera.Enabled {
		t.Error("camera enabled with one portal")
	}

	if _, err := m.Restore(SlotRight, w, geom.NewPose(mgl64.Vec3{10, 1.6, 4}, 90)); err != nil {
		t.Fatalf("restore right: %v", err)
	}
	if !p.Camera.Enabled {
		t.Error("camera not enabled once both portals were restored")
	}

	if _, err := m.Restore(Slot(2), w, pose); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("invalid slot: got %v", err)
	}
	if _, err := m.Restore(SlotLeft, nil, pose); !errors.Is(err, placement.ErrSurfaceNotFound) {
		t.Errorf("nil wall: got %v", err)
	}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		name    string
		want    Slot
		wantErr bool
	}{
		{"left", SlotLeft, false},
		{"right", SlotRight, false},
		{"middle", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSlot(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
