// Package telemetry records portal crossings, window statistics and
// performance for the arena.
package telemetry

import "github.com/pthm-cable/portals/portal"

// CrossingEvent is one teleport, flattened for CSV output.
type CrossingEvent struct {
	Tick     int32   `csv:"tick"`
	SimTime  float64 `csv:"sim_time"`
	EntityID uint32  `csv:"entity"`
	Viewer   bool    `csv:"viewer"`
	Physical bool    `csv:"physical"`
	From     string  `csv:"from"`
	To       string  `csv:"to"`

	// Positions before and after
	InX  float64 `csv:"in_x"`
	InY  float64 `csv:"in_y"`
	InZ  float64 `csv:"in_z"`
	OutX float64 `csv:"out_x"`
	OutY float64 `csv:"out_y"`
	OutZ float64 `csv:"out_z"`

	YawOffset float64 `csv:"yaw_offset"`
	SpeedIn   float64 `csv:"speed_in"`
	SpeedOut  float64 `csv:"speed_out"`
}

// NewCrossingEvent builds an event for entity id from an applied crossing.
func NewCrossingEvent(tick int32, simTime float64, id uint32, c portal.Crossing) CrossingEvent {
	return CrossingEvent{
		Tick:      tick,
		SimTime:   simTime,
		EntityID:  id,
		Viewer:    c.Viewer,
		Physical:  c.Physical,
		From:      c.From.String(),
		To:        c.To.String(),
		InX:       c.Before.Position.X(),
		InY:       c.Before.Position.Y(),
		InZ:       c.Before.Position.Z(),
		OutX:      c.After.Position.X(),
		OutY:      c.After.Position.Y(),
		OutZ:      c.After.Position.Z(),
		YawOffset: c.Offset.Yaw(),
		SpeedIn:   c.VelocityIn.Len(),
		SpeedOut:  c.VelocityOut.Len(),
	}
}
