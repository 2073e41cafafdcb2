package portal

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/geom"
)

// CameraPose places the camera of portal b so that its image, shown on
// portal a, continues the scene the viewer sees through a.
//
// The camera stands to b where the viewer stands to a, turned by the
// relative yaw of the two portals plus a half turn.
func CameraPose(viewer, a, b geom.Pose) geom.Pose {
	diff := halfTurn + (b.Yaw() - a.Yaw())
	toPortal := a.Position.Sub(viewer.Position)
	return geom.Pose{
		Position: b.Position.Sub(geom.YawQuat(diff).Rotate(toPortal)),
		Rotation: viewer.Rotation.Add(mgl64.Vec3{0, diff, 0}),
	}
}

// Synchronizer repositions both portal cameras every tick.
type Synchronizer struct {
	pairs *PairManager
}

// NewSynchronizer creates a synchronizer over pairs.
func NewSynchronizer(pairs *PairManager) *Synchronizer {
	return &Synchronizer{pairs: pairs}
}

// Sync moves each portal's camera for the current viewer pose. Nothing is
// cached: the viewer moves every tick. With a slot empty it returns
// ErrPortalSlotUnoccupied and leaves every camera where it was.
func (s *Synchronizer) Sync(viewer geom.Pose) error {
	if !s.pairs.Complete() {
		return ErrPortalSlotUnoccupied
	}
	for _, slot := range Slots {
		a, b, err := s.pairs.Pair(slot)
		if err != nil {
			return err
		}
		b.Camera.Pose = CameraPose(viewer, a.Pose, b.Pose)
	}
	return nil
}
