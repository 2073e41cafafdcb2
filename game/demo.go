package game

import (
	"github.com/pthm-cable/portals/camera"
	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/systems"
)

// demoStep is one scripted action, run when the tick count reaches At.
type demoStep struct {
	At    int32
	Yaw   float64
	Fire  portal.Slot
	Shoot bool
	Walk  bool
}

// demoScript drives the player in headless runs: it opens a portal on the
// east and the west wall, then walks east forever. Entering the east
// portal puts the player back in through the west one, so the run loops
// through the pair and every crossing path gets exercised.
type demoScript struct {
	steps []demoStep
	next  int
	walk  bool
}

func newDemoScript() *demoScript {
	return &demoScript{
		steps: []demoStep{
			{At: 10, Yaw: 90, Fire: portal.SlotLeft, Shoot: true},
			{At: 20, Yaw: 270, Fire: portal.SlotRight, Shoot: true},
			{At: 30, Yaw: 90, Walk: true},
		},
	}
}

// input applies any due steps to cam and returns the intent and fire
// requests for this tick.
func (d *demoScript) input(tick int32, cam *camera.Camera) (in systems.MoveIntent, fire [2]bool) {
	for d.next < len(d.steps) && d.steps[d.next].At <= tick {
		s := d.steps[d.next]
		d.next++

		cam.Yaw = s.Yaw
		cam.Pitch = 0
		if s.Shoot {
			fire[s.Fire] = true
		}
		if s.Walk {
			d.walk = true
		}
	}
	if d.walk {
		in.Forward = 1
	}
	return in, fire
}
