package systems

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/placement"
	"github.com/pthm-cable/portals/portal"
)

// PlacementSystem turns fire requests into portal placements.
type PlacementSystem struct {
	walls []*placement.Surface
	pairs *portal.PairManager
}

// NewPlacementSystem creates a placement system shooting at walls.
func NewPlacementSystem(walls []*placement.Surface, pairs *portal.PairManager) *PlacementSystem {
	return &PlacementSystem{walls: walls, pairs: pairs}
}

// Shoot casts ray against the walls and mounts the portal for slot where
// it lands. A ray that hits no wall leaves the portal where it was and
// returns placement.ErrSurfaceNotFound.
func (s *PlacementSystem) Shoot(slot portal.Slot, ray geom.Ray) (*portal.Portal, error) {
	hit, err := placement.Cast(ray, s.walls)
	if err != nil {
		if errors.Is(err, placement.ErrSurfaceNotFound) {
			slog.Debug("portal shot missed", "slot", slot.String())
		}
		return nil, err
	}

	p, created, err := s.pairs.Place(slot, hit)
	if err != nil {
		return nil, fmt.Errorf("placing %s portal: %w", slot, err)
	}
	if created {
		slog.Info("portal opened", "slot", slot.String(), "wall", hit.Surface.Name)
	}
	return p, nil
}
