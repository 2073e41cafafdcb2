// Package portal implements the linked portal pair: the two-slot registry,
// the teleport transform applied to bodies crossing a portal, and the
// per-tick placement of each portal's virtual camera.
package portal

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/placement"
)

// Errors reported by the portal pair. None of them are fatal: callers skip
// the operation for this tick.
var (
	ErrPortalSlotUnoccupied = errors.New("portal slot unoccupied")
	ErrMissingPhysicsBody   = errors.New("crossing body has no rigid body")
	ErrInvalidSlot          = errors.New("invalid portal slot")
)

// Slot identifies one of the two portals.
type Slot int

// The two portal slots, bound to the left and right fire buttons.
const (
	SlotLeft  Slot = 0
	SlotRight Slot = 1
)

// Slots lists both slots in index order.
var Slots = [2]Slot{SlotLeft, SlotRight}

// Partner returns the linked slot.
func (s Slot) Partner() Slot {
	return 1 - s
}

// Valid reports whether s is 0 or 1.
func (s Slot) Valid() bool {
	return s == SlotLeft || s == SlotRight
}

func (s Slot) String() string {
	switch s {
	case SlotLeft:
		return "left"
	case SlotRight:
		return "right"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// ParseSlot is the inverse of Slot.String.
func ParseSlot(name string) (Slot, error) {
	switch name {
	case "left":
		return SlotLeft, nil
	case "right":
		return SlotRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, name)
}

// Camera is the off-screen camera owned by a portal. Its image is shown on
// the partner portal's surface.
type Camera struct {
	Pose    geom.Pose
	Enabled bool
}

// Portal is one placed portal.
type Portal struct {
	Slot   Slot
	Pose   geom.Pose
	Width  float64
	Height float64
	Camera Camera

	// Wall is the surface the portal is mounted on. Owned by the scene.
	Wall *placement.Surface
}

// Rect returns the portal surface.
func (p *Portal) Rect() geom.Rect {
	return geom.Rect{Pose: p.Pose, Width: p.Width, Height: p.Height}
}

// Position returns the portal centre.
func (p *Portal) Position() mgl64.Vec3 {
	return p.Pose.Position
}

// Forward returns the portal normal. It points into the host wall.
func (p *Portal) Forward() mgl64.Vec3 {
	return p.Pose.Forward()
}
