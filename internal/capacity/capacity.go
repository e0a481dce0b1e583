// Package capacity converts team profiles into per-iteration capacity
// numbers. Every function here is pure: same inputs, same outputs, no
// side effects.
package capacity

import (
	"github.com/artplanhq/artplan/internal/art"
)

// DefaultBuffer is the fraction of capacity withheld from allocation
// as a safety margin.
const DefaultBuffer = 0.2

// ForIteration returns the team's raw capacity for one iteration in
// points: historical velocity scaled by the velocity trend and the
// team's dedication factor. A missing trend defaults to 1.0.
func ForIteration(team art.Team) float64 {
	trend := team.VelocityTrend
	if trend <= 0 {
		trend = 1.0
	}
	return team.AverageVelocity * trend * team.CapacityFactor
}

// Usable withholds the buffer fraction from a raw capacity. The buffer
// is clamped to [0, 1] so a misconfigured value can't produce negative
// capacity.
func Usable(capacityPoints, buffer float64) float64 {
	if buffer < 0 {
		buffer = 0
	}
	if buffer >= 1 {
		buffer = 1
	}
	return capacityPoints * (1 - buffer)
}

// UsableForIteration combines ForIteration and Usable.
func UsableForIteration(team art.Team, buffer float64) float64 {
	return Usable(ForIteration(team), buffer)
}

// TotalUsable sums the usable per-iteration capacity across teams.
func TotalUsable(teams []art.Team, buffer float64) float64 {
	total := 0.0
	for _, team := range teams {
		total += UsableForIteration(team, buffer)
	}
	return total
}
