package game

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/placement"
	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/telemetry"
)

// defaultSnapshotDir is used for manual snapshots when no directory was given.
const defaultSnapshotDir = "snapshots"

// flushTelemetry writes this tick's crossings and, at the end of a stats
// window, the window and perf summaries.
func (g *Game) flushTelemetry() {
	if len(g.pendingCrossings) > 0 {
		if err := g.outputManager.WriteCrossings(g.pendingCrossings); err != nil {
			slog.Error("failed to write crossings", "error", err)
		}
		g.pendingCrossings = g.pendingCrossings[:0]
	}

	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	_, open := g.portalsOpen()
	stats := g.collector.Flush(g.tick, len(g.bodyEntities()), open)
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// saveSnapshot writes the current state to the snapshot directory.
func (g *Game) saveSnapshot() {
	dir := g.snapshotDir
	if dir == "" {
		dir = defaultSnapshotDir
	}

	path, err := telemetry.SaveSnapshot(g.createSnapshot(), dir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot() *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version: telemetry.SnapshotVersion,
		Tick:    g.tick,
		SimTime: g.simTime,
	}

	g.pairs.Each(func(p *portal.Portal) {
		state := telemetry.PortalState{
			Slot:     p.Slot.String(),
			Position: p.Pose.Position,
			Yaw:      p.Pose.Yaw(),
		}
		if p.Wall != nil {
			state.Wall = p.Wall.Name
		}
		snapshot.Portals = append(snapshot.Portals, state)
	})

	for _, e := range g.bodyEntities() {
		tr := g.transforms.Get(e)
		rb := g.bodies.Get(e)

		state := telemetry.BodyState{
			ID:       e.ID(),
			Kind:     "player",
			Position: tr.Position,
			Rotation: tr.Rotation,
			Velocity: rb.Velocity,
			Latch:    g.crossings.Get(e).Latch.State().String(),
		}
		if g.propMap.Has(e) {
			state.ID = g.propMap.Get(e).ID
			state.Kind = "prop"
		}
		snapshot.Bodies = append(snapshot.Bodies, state)
	}

	return snapshot
}

// loadSnapshot restores portals and bodies from a snapshot file. Latches
// and pending cooldowns are not saved; the simulation clock keeps running
// from the current tick so scheduled cooldowns stay valid.
func (g *Game) loadSnapshot(path string) error {
	snapshot, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return err
	}
	if err := g.restoreSnapshot(snapshot); err != nil {
		return fmt.Errorf("restore %s: %w", path, err)
	}
	slog.Info("snapshot restored", "path", path, "tick", snapshot.Tick)
	return nil
}

// restoreSnapshot applies s to the running game.
func (g *Game) restoreSnapshot(s *telemetry.Snapshot) error {
	g.resetPortals()

	for _, ps := range s.Portals {
		slot, err := portal.ParseSlot(ps.Slot)
		if err != nil {
			return err
		}
		wall := g.wallByName(ps.Wall)
		if wall == nil {
			return fmt.Errorf("portal %s: wall %q: %w", ps.Slot, ps.Wall, placement.ErrSurfaceNotFound)
		}
		pose := geom.NewPose(mgl64.Vec3(ps.Position), ps.Yaw)
		if _, err := g.pairs.Restore(slot, wall, pose); err != nil {
			return err
		}
		if g.portalRenderer != nil {
			g.portalRenderer.Opened(slot)
		}
	}

	props := make(map[uint32]int, len(g.props))
	for i, e := range g.props {
		if g.world.Alive(e) {
			props[g.propMap.Get(e).ID] = i
		}
	}

	for _, bs := range s.Bodies {
		e := g.player
		if bs.Kind == "prop" {
			i, ok := props[bs.ID]
			if !ok {
				slog.Warn("snapshot prop not in arena", "id", bs.ID)
				continue
			}
			e = g.props[i]
		}
		if !g.world.Alive(e) {
			continue
		}

		tr := g.transforms.Get(e)
		tr.Position = bs.Position
		tr.Rotation = bs.Rotation
		rb := g.bodies.Get(e)
		rb.Velocity = bs.Velocity
		rb.Grounded = false

		if e == g.player {
			g.cam.Yaw = bs.Rotation[1]
			g.cam.SetNearClip(g.teleporter.Config().NearClipDefault)
		}
	}

	g.syncViews()
	return nil
}

// wallByName finds an arena wall.
func (g *Game) wallByName(name string) *placement.Surface {
	for _, w := range g.walls {
		if w.Name == name {
			return w
		}
	}
	return nil
}
