// Package metrics scans a sampled trajectory for summary statistics.
package metrics

import (
	"math"

	"github.com/san-kum/odeint/internal/sampler"
)

// EnergyFunc computes a scalar invariant (e.g. total energy) from a
// state vector.
type EnergyFunc func(x []float64) float64

// EnergyDrift reports the largest relative deviation of energy(x) from
// its initial value across traj, a normalized measure of how well a
// stepper conserves a Hamiltonian System's invariant.
func EnergyDrift(traj *sampler.Trajectory, energy EnergyFunc) float64 {
	if traj.Len() == 0 {
		return 0
	}
	_, x0, _ := traj.At(0)
	initial := energy(x0)

	maxDrift := 0.0
	for i := 0; i < traj.Len(); i++ {
		_, x, _ := traj.At(i)
		e := energy(x)
		if initial == 0 {
			continue
		}
		drift := math.Abs(e-initial) / math.Abs(initial)
		if drift > maxDrift {
			maxDrift = drift
		}
	}
	return maxDrift
}

// Boundedness reports the fraction of traj's samples whose state stayed
// within [xmin, xmax] componentwise.
func Boundedness(traj *sampler.Trajectory, xmin, xmax []float64) float64 {
	if traj.Len() == 0 {
		return 1.0
	}
	violations := 0
	for i := 0; i < traj.Len(); i++ {
		_, x, _ := traj.At(i)
		if outOfRange(x, xmin, xmax) {
			violations++
		}
	}
	return 1.0 - float64(violations)/float64(traj.Len())
}

func outOfRange(x, xmin, xmax []float64) bool {
	for i, v := range x {
		if xmin != nil && i < len(xmin) && v < xmin[i] {
			return true
		}
		if xmax != nil && i < len(xmax) && v > xmax[i] {
			return true
		}
	}
	return false
}
