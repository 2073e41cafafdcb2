package placement

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/geom"
)

// horizontalShiftDivisor scales the pull toward the wall centre when the
// aim point is too close to a side edge. Empirical; it does not bound the
// portal inside the wall for every wall/portal size ratio.
const horizontalShiftDivisor = 10

// Range is the valid span of a normalized surface coordinate for a
// portal of the given size ratio to the wall.
type Range struct {
	Min, Max float64
}

// ValidRange returns [ratio/2, 1-ratio/2].
func ValidRange(ratio float64) Range {
	return Range{Min: ratio / 2, Max: 1 - ratio/2}
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ClampV clamps the vertical surface coordinate so a portal of the given
// height stays inside the wall.
func ClampV(v, portalHeight, wallHeight float64) float64 {
	r := ValidRange(portalHeight / wallHeight)
	return geom.Clamp(v, r.Min, r.Max)
}

// ClampPosition returns the world position for a portal of the given size
// aimed at hit. The vertical extent always stays within the wall; the
// horizontal correction is a best-effort pull toward the wall centre.
// The wall must have non-zero size.
func ClampPosition(hit Hit, portalWidth, portalHeight float64) mgl64.Vec3 {
	wall := hit.Surface
	center := wall.Pose.Position

	clampedV := ClampV(hit.UV.Y(), portalHeight, wall.Height)

	point := hit.Point
	if !ValidRange(portalWidth / wall.Width).Contains(hit.UV.X()) {
		toHit := hit.Point.Sub(center)
		shift := wall.Width/2 - portalWidth/2
		point = center.Add(toHit.Mul(shift / horizontalShiftDivisor))
	}

	point[1] = center.Y() - wall.Height/2 + clampedV*wall.Height
	return point
}

// PortalRotation returns the orientation a portal takes on a wall: the
// wall's own, so the portal's forward points into the wall.
func PortalRotation(wall *Surface) mgl64.Vec3 {
	return wall.Pose.Rotation
}

// PortalPose combines ClampPosition and PortalRotation.
func PortalPose(hit Hit, portalWidth, portalHeight float64) geom.Pose {
	return geom.Pose{
		Position: ClampPosition(hit, portalWidth, portalHeight),
		Rotation: PortalRotation(hit.Surface),
	}
}
