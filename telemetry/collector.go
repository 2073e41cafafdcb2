package telemetry

import (
	"math"

	"github.com/pthm-cable/portals/portal"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	crossings       int
	viewerCrossings int
	placements      int
	missedShots     int
	unpaired        int
	speedsOut       []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordCrossing records an applied teleport.
func (c *Collector) RecordCrossing(cr portal.Crossing) {
	c.crossings++
	if cr.Viewer {
		c.viewerCrossings++
	}
	if cr.Physical {
		c.speedsOut = append(c.speedsOut, cr.VelocityOut.Len())
	}
}

// RecordPlacement records a portal shot; hit is false when it struck no wall.
func (c *Collector) RecordPlacement(hit bool) {
	if hit {
		c.placements++
	} else {
		c.missedShots++
	}
}

// RecordUnpaired records a trigger enter that found no partner portal.
func (c *Collector) RecordUnpaired() {
	c.unpaired++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// bodies and portalsOpen describe the scene at the end of the window.
func (c *Collector) Flush(currentTick int32, bodies, portalsOpen int) WindowStats {
	mean, std, p50, p90, peak := SpeedStats(c.speedsOut)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Bodies:      bodies,
		PortalsOpen: portalsOpen,

		Crossings:       c.crossings,
		ViewerCrossings: c.viewerCrossings,
		Placements:      c.placements,
		MissedShots:     c.missedShots,
		Unpaired:        c.unpaired,

		SpeedOutMean: mean,
		SpeedOutStd:  std,
		SpeedOutP50:  p50,
		SpeedOutP90:  p90,
		SpeedOutMax:  peak,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.crossings = 0
	c.viewerCrossings = 0
	c.placements = 0
	c.missedShots = 0
	c.unpaired = 0
	c.speedsOut = c.speedsOut[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
