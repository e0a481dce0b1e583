package capacity

import (
	"testing"

	"github.com/artplanhq/artplan/internal/art"
)

func TestForIteration(t *testing.T) {
	tests := []struct {
		name string
		team art.Team
		want float64
	}{
		{
			name: "full dedication",
			team: art.Team{AverageVelocity: 20, CapacityFactor: 1.0},
			want: 20,
		},
		{
			name: "partial dedication",
			team: art.Team{AverageVelocity: 20, CapacityFactor: 0.5},
			want: 10,
		},
		{
			name: "velocity trend scales velocity",
			team: art.Team{AverageVelocity: 20, VelocityTrend: 1.2, CapacityFactor: 1.0},
			want: 24,
		},
		{
			name: "missing trend defaults to 1.0",
			team: art.Team{AverageVelocity: 20, VelocityTrend: 0, CapacityFactor: 1.0},
			want: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForIteration(tt.team); got != tt.want {
				t.Errorf("ForIteration() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestUsable(t *testing.T) {
	tests := []struct {
		name     string
		capacity float64
		buffer   float64
		want     float64
	}{
		{"default buffer", 10, DefaultBuffer, 8},
		{"zero buffer", 10, 0, 10},
		{"negative buffer clamps to zero", 10, -0.5, 10},
		{"buffer above one clamps", 10, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Usable(tt.capacity, tt.buffer); got != tt.want {
				t.Errorf("Usable(%g, %g) = %g, want %g", tt.capacity, tt.buffer, got, tt.want)
			}
		})
	}
}

func TestTotalUsable(t *testing.T) {
	teams := []art.Team{
		{AverageVelocity: 12.5, CapacityFactor: 1.0},
		{AverageVelocity: 10, CapacityFactor: 1.0},
	}
	if got := TotalUsable(teams, DefaultBuffer); got != 18 {
		t.Errorf("TotalUsable() = %g, want 18", got)
	}
	if got := TotalUsable(nil, DefaultBuffer); got != 0 {
		t.Errorf("TotalUsable(nil) = %g, want 0", got)
	}
}
