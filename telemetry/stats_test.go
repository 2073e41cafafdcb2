package telemetry

import (
	"math"
	"testing"
)

func TestSpeedStats(t *testing.T) {
	tests := []struct {
		name                     string
		values                   []float64
		mean, std, p50, p90, max float64
	}{
		{"empty", nil, 0, 0, 0, 0, 0},
		{"single", []float64{5}, 5, 0, 5, 5, 5},
		{"one to ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 5.5, 3.0277, 5, 9, 10},
		{"constant", []float64{10, 10, 10}, 10, 0, 10, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p50, p90, peak := SpeedStats(tt.values)
			got := []float64{mean, std, p50, p90, peak}
			want := []float64{tt.mean, tt.std, tt.p50, tt.p90, tt.max}
			for i := range got {
				if math.Abs(got[i]-want[i]) > 0.001 {
					t.Errorf("SpeedStats(%v) = %v, want %v", tt.values, got, want)
					break
				}
			}
		})
	}
}

func TestSpeedStatsLeavesInputAlone(t *testing.T) {
	values := []float64{3, 1, 2}
	SpeedStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}
