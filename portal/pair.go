package portal

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/placement"
)

// PairManager owns the two portal slots. Every component that needs a
// portal goes through it; nothing else holds portals by index.
type PairManager struct {
	slots  [2]*Portal
	width  float64
	height float64
}

// NewPairManager creates an empty pair for portals of the given size.
func NewPairManager(width, height float64) *PairManager {
	return &PairManager{width: width, height: height}
}

// Size returns the portal footprint.
func (m *PairManager) Size() (width, height float64) {
	return m.width, m.height
}

// Get returns the portal in slot s.
func (m *PairManager) Get(s Slot) (*Portal, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, int(s))
	}
	p := m.slots[s]
	if p == nil {
		return nil, fmt.Errorf("%s: %w", s, ErrPortalSlotUnoccupied)
	}
	return p, nil
}

// Pair returns the portal in slot s and its partner. Both must be placed.
func (m *PairManager) Pair(s Slot) (self, partner *Portal, err error) {
	if self, err = m.Get(s); err != nil {
		return nil, nil, err
	}
	if partner, err = m.Get(s.Partner()); err != nil {
		return nil, nil, err
	}
	return self, partner, nil
}

// Complete reports whether both slots are occupied.
func (m *PairManager) Complete() bool {
	return m.slots[SlotLeft] != nil && m.slots[SlotRight] != nil
}

// Place mounts the portal for slot s at hit. The first placement creates
// the portal; later ones move it and re-home it on the new wall. Once both
// slots are filled both portal cameras are enabled.
func (m *PairManager) Place(s Slot, hit placement.Hit) (p *Portal, created bool, err error) {
	if !s.Valid() {
		return nil, false, fmt.Errorf("%w: %d", ErrInvalidSlot, int(s))
	}
	if hit.Surface == nil {
		return nil, false, placement.ErrSurfaceNotFound
	}

	pose := placement.PortalPose(hit, m.width, m.height)
	p = m.slots[s]
	if p == nil {
		p = &Portal{
			Slot:   s,
			Width:  m.width,
			Height: m.height,
		}
		m.slots[s] = p
		created = true
	}
	p.Pose = pose

	// A moved portal must not leave its old wall open.
	if p.Wall != nil && p.Wall != hit.Surface {
		p.Wall.Passable = false
	}
	p.Wall = hit.Surface

	if m.Complete() {
		m.slots[SlotLeft].Camera.Enabled = true
		m.slots[SlotRight].Camera.Enabled = true
	}

	slog.Debug("portal placed",
		"slot", s.String(),
		"created", created,
		"wall", hit.Surface.Name,
		"x", pose.Position.X(), "y", pose.Position.Y(), "z", pose.Position.Z(),
		"yaw", pose.Yaw(),
	)
	return p, created, nil
}

// Restore mounts the portal for slot s at an already clamped pose on wall,
// as saved by a snapshot. Unlike Place it does not clamp again.
func (m *PairManager) Restore(s Slot, wall *placement.Surface, pose geom.Pose) (*Portal, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, int(s))
	}
	if wall == nil {
		return nil, placement.ErrSurfaceNotFound
	}
	p := m.slots[s]
	if p == nil {
		p = &Portal{Slot: s, Width: m.width, Height: m.height}
		m.slots[s] = p
	}
	p.Pose = pose
	p.Wall = wall
	if m.Complete() {
		m.slots[SlotLeft].Camera.Enabled = true
		m.slots[SlotRight].Camera.Enabled = true
	}
	return p, nil
}

// Each calls fn for every placed portal in slot order.
func (m *PairManager) Each(fn func(*Portal)) {
	for _, p := range m.slots {
		if p != nil {
			fn(p)
		}
	}
}

// Reset removes both portals and closes any wall they left open.
func (m *PairManager) Reset() {
	for i, p := range m.slots {
		if p != nil && p.Wall != nil {
			p.Wall.Passable = false
		}
		m.slots[i] = nil
	}
}
