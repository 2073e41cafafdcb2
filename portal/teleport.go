package portal

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/geom"
)

// RigidBody is the physics side of a crossing body.
type RigidBody interface {
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	AddImpulse(j mgl64.Vec3)
}

// Crossable is anything the teleporter can carry through a portal.
type Crossable interface {
	Pose() geom.Pose
	SetPose(p geom.Pose)
	// PortalLink returns the body's crossing latch.
	PortalLink() *Latch
	// RigidBody returns nil for bodies that are not physically simulated.
	RigidBody() RigidBody
}

// ViewerCarrier is implemented by bodies the primary viewer rides on.
// Only those bodies turn the view and move its near clip plane.
type ViewerCarrier interface {
	CarriesViewer() bool
}

// Viewer is the primary player camera.
type Viewer interface {
	ForceRotate(offset mgl64.Vec3)
	SetNearClip(distance float64)
}

// TeleportConfig holds the crossing tunables.
type TeleportConfig struct {
	NearClipCrossing float64 // near plane while the viewer is inside a trigger
	NearClipDefault  float64
	Cooldown         float64 // seconds the latch stays held after a trigger exit
	ExitImpulse      float64 // push out of the exit portal
}

// DefaultTeleportConfig returns the stock tunables.
func DefaultTeleportConfig() TeleportConfig {
	return TeleportConfig{
		NearClipCrossing: 0.01,
		NearClipDefault:  0.3,
		Cooldown:         0.1,
		ExitImpulse:      5,
	}
}

// Crossing records one applied teleport.
type Crossing struct {
	From, To    Slot
	Offset      Offset
	Before      geom.Pose
	After       geom.Pose
	VelocityIn  mgl64.Vec3
	VelocityOut mgl64.Vec3
	Physical    bool
	Viewer      bool
}

// Teleporter turns trigger enter/exit events into crossings.
type Teleporter struct {
	pairs  *PairManager
	viewer Viewer
	sched  *Scheduler
	cfg    TeleportConfig
}

// NewTeleporter wires a teleporter. viewer may be nil in headless tools.
func NewTeleporter(pairs *PairManager, viewer Viewer, sched *Scheduler, cfg TeleportConfig) *Teleporter {
	return &Teleporter{pairs: pairs, viewer: viewer, sched: sched, cfg: cfg}
}

// Config returns the active tunables.
func (t *Teleporter) Config() TeleportConfig {
	return t.cfg
}

// SetExitImpulse changes the exit push for future crossings.
func (t *Teleporter) SetExitImpulse(j float64) {
	t.cfg.ExitImpulse = j
}

// MinCooldown is the shortest cooldown SetCooldown accepts.
const MinCooldown = 0.1

// SetCooldown changes the post-exit cooldown for future exits.
func (t *Teleporter) SetCooldown(seconds float64) {
	t.cfg.Cooldown = max(seconds, MinCooldown)
}

func carriesViewer(body Crossable) bool {
	vc, ok := body.(ViewerCarrier)
	return ok && vc.CarriesViewer()
}

// Enter handles a body entering the trigger of the portal in slot.
//
// It applies the teleport at most once per overlap: while the body's latch
// is held the call is a no-op and ok is false. Both slots must be placed,
// otherwise ErrPortalSlotUnoccupied is returned and nothing changes.
//
// A body without a rigid body is still moved; ok is true and
// ErrMissingPhysicsBody is returned to say the velocity step was skipped.
//
// Velocity is zeroed before the pose changes and restored after, all
// within this call, so the integrator never sees the intermediate state.
func (t *Teleporter) Enter(body Crossable, slot Slot) (c Crossing, ok bool, err error) {
	latch := body.PortalLink()
	if latch.Held() {
		return Crossing{}, false, nil
	}
	self, partner, err := t.pairs.Pair(slot)
	if err != nil {
		return Crossing{}, false, err
	}
	latch.acquire(slot)

	c.Viewer = carriesViewer(body) && t.viewer != nil
	if c.Viewer {
		t.viewer.SetNearClip(t.cfg.NearClipCrossing)
	}
	if self.Wall != nil {
		self.Wall.Passable = true
	}

	off := CrossingOffset(self.Pose, partner.Pose)
	c.From, c.To, c.Offset = slot, partner.Slot, off
	c.Before = body.Pose()

	rb := body.RigidBody()
	var stored mgl64.Vec3
	if rb != nil {
		stored = rb.Velocity()
		rb.SetVelocity(mgl64.Vec3{})
	}

	if c.Viewer {
		t.viewer.ForceRotate(off.Rotation)
	}

	c.After = off.ApplyPose(c.Before)
	body.SetPose(c.After)

	if rb == nil {
		return c, true, ErrMissingPhysicsBody
	}

	c.Physical = true
	c.VelocityIn = stored
	rb.SetVelocity(off.ApplyVelocity(stored))
	rb.AddImpulse(partner.Forward().Mul(-t.cfg.ExitImpulse))
	c.VelocityOut = rb.Velocity()
	return c, true, nil
}

// Exit handles a body leaving the trigger of the portal in slot.
//
// The near clip plane and the wall collider are restored at once. A held
// latch is released only after the cooldown; another exit during the
// cooldown restarts it.
func (t *Teleporter) Exit(body Crossable, slot Slot) {
	if carriesViewer(body) && t.viewer != nil {
		t.viewer.SetNearClip(t.cfg.NearClipDefault)
	}
	if p, err := t.pairs.Get(slot); err == nil && p.Wall != nil {
		p.Wall.Passable = false
	}

	latch := body.PortalLink()
	if !latch.Held() {
		return
	}

	var id TimerID
	id = t.sched.After(t.cfg.Cooldown, func() {
		// Resolve the latch again: the body's storage may have moved.
		l := body.PortalLink()
		if l != nil && l.timer == id {
			l.release()
		}
	})
	if prev := latch.cool(id); prev != 0 {
		t.sched.Cancel(prev)
	}
}

// Forget drops any pending cooldown for a body that is being destroyed.
func (t *Teleporter) Forget(body Crossable) {
	latch := body.PortalLink()
	if latch.timer != 0 {
		t.sched.Cancel(latch.timer)
	}
	if latch.state == InCrossing && carriesViewer(body) && t.viewer != nil {
		t.viewer.SetNearClip(t.cfg.NearClipDefault)
	}
	latch.release()
	slog.Debug("crossing latch dropped")
}
