package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// State at window end
	Bodies      int `csv:"bodies"`
	PortalsOpen int `csv:"portals_open"`

	// Events during window
	Crossings       int `csv:"crossings"`
	ViewerCrossings int `csv:"viewer_crossings"`
	Placements      int `csv:"placements"`
	MissedShots     int `csv:"missed_shots"`
	Unpaired        int `csv:"unpaired"` // trigger enters with only one portal open

	// Exit speed distribution over the window's physical crossings
	SpeedOutMean float64 `csv:"speed_out_mean"`
	SpeedOutStd  float64 `csv:"speed_out_std"`
	SpeedOutP50  float64 `csv:"speed_out_p50"`
	SpeedOutP90  float64 `csv:"speed_out_p90"`
	SpeedOutMax  float64 `csv:"speed_out_max"`
}

// SpeedStats summarizes a set of speeds. The input is not modified.
func SpeedStats(values []float64) (mean, std, p50, p90, peak float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	if n > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	peak = sorted[n-1]
	return mean, std, p50, p90, peak
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("portals_open", s.PortalsOpen),
		slog.Int("crossings", s.Crossings),
		slog.Int("viewer_crossings", s.ViewerCrossings),
		slog.Int("placements", s.Placements),
		slog.Int("missed_shots", s.MissedShots),
		slog.Int("unpaired", s.Unpaired),
		slog.Float64("speed_out_mean", s.SpeedOutMean),
		slog.Float64("speed_out_std", s.SpeedOutStd),
		slog.Float64("speed_out_p50", s.SpeedOutP50),
		slog.Float64("speed_out_p90", s.SpeedOutP90),
		slog.Float64("speed_out_max", s.SpeedOutMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
