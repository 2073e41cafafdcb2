package game

import (
	"errors"
	"log/slog"

	"github.com/pthm-cable/portals/config"
	"github.com/pthm-cable/portals/placement"
	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/systems"
	"github.com/pthm-cable/portals/telemetry"
)

// step advances the simulation by one tick.
//
// Order: input, placement, physics, triggers, crossing, scheduler, view
// sync, telemetry. A teleport and its velocity change both happen inside
// the crossing phase, so the integrator never sees a half-moved body.
func (g *Game) step() {
	dt := config.Cfg().Physics.DT
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.applyInput()

	g.perfCollector.StartPhase(telemetry.PhasePlacement)
	g.firePortals()

	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.physics.Update(dt)

	g.perfCollector.StartPhase(telemetry.PhaseTriggers)
	events := g.triggers.Update(g.pairs)

	g.perfCollector.StartPhase(telemetry.PhaseCrossing)
	g.handleCrossings(events)

	g.tick++
	g.simTime += dt

	g.perfCollector.StartPhase(telemetry.PhaseScheduler)
	g.sched.Advance(g.simTime)

	g.perfCollector.StartPhase(telemetry.PhaseViewSync)
	g.syncViews()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// applyInput turns the pending move intent into player velocity and keeps
// the player body facing where the camera looks.
func (g *Game) applyInput() {
	if !g.world.Alive(g.player) {
		return
	}
	tr := g.transforms.Get(g.player)
	rb := g.bodies.Get(g.player)
	pl := g.players.Get(g.player)

	tr.Rotation[1] = g.cam.Yaw

	forward, right := g.cam.MoveBasis()
	systems.ApplyWalk(rb, pl, forward, right, g.intent)
	g.intent.Jump = false
}

// firePortals shoots any portal requested since the last tick along the
// view ray.
func (g *Game) firePortals() {
	for _, slot := range portal.Slots {
		if !g.fire[slot] {
			continue
		}
		g.fire[slot] = false

		_, err := g.placement.Shoot(slot, g.cam.Ray())
		g.collector.RecordPlacement(err == nil)
		switch {
		case err == nil:
			if g.portalRenderer != nil {
				g.portalRenderer.Opened(slot)
			}
		case errors.Is(err, placement.ErrSurfaceNotFound):
		default:
			slog.Warn("portal placement failed", "slot", slot.String(), "error", err)
		}
	}
}

// handleCrossings applies trigger events and records the teleports made.
func (g *Game) handleCrossings(events []systems.TriggerEvent) {
	records := g.crossing.Handle(events)
	for _, rec := range records {
		g.collector.RecordCrossing(rec.Crossing)
		g.pendingCrossings = append(g.pendingCrossings,
			telemetry.NewCrossingEvent(g.tick, g.simTime, rec.Entity.ID(), rec.Crossing))
		g.totalCrossings++
	}
	for i := 0; i < g.crossing.Unpaired(); i++ {
		g.collector.RecordUnpaired()
	}
}

// syncViews moves the eye onto the player body and the portal cameras
// after it.
func (g *Game) syncViews() {
	if g.world.Alive(g.player) {
		tr := g.transforms.Get(g.player)
		pl := g.players.Get(g.player)
		g.cam.Follow(tr.Position, pl.EyeHeight)
	}

	err := g.viewSync.Sync(g.cam.Pose())
	if err != nil && !errors.Is(err, portal.ErrPortalSlotUnoccupied) {
		slog.Warn("view sync failed", "error", err)
	}
}

// resetPortals removes both portals. Bodies standing in a trigger get their
// exit first so their latches cool down and the near clip is restored.
func (g *Game) resetPortals() {
	for _, e := range g.bodyEntities() {
		if !g.crossings.Has(e) {
			continue
		}
		for _, slot := range portal.Slots {
			if g.triggers.Inside(e, slot) {
				g.teleporter.Exit(g.crossing.Body(e), slot)
			}
		}
	}
	g.pairs.Reset()
	g.triggers.Reset()
	if g.portalRenderer != nil {
		g.portalRenderer.Reset()
	}
	slog.Info("portals reset", "tick", g.tick)
}

// playerLatch returns the player's crossing state name.
func (g *Game) playerLatch() string {
	if !g.world.Alive(g.player) || !g.crossings.Has(g.player) {
		return "-"
	}
	return g.crossings.Get(g.player).Latch.State().String()
}

// playerSpeed returns the player's speed.
func (g *Game) playerSpeed() float64 {
	if !g.world.Alive(g.player) {
		return 0
	}
	return g.bodies.Get(g.player).Speed()
}
