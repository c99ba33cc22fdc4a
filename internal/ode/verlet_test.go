package ode

import (
	"math"
	"testing"
)

// springSystem returns [q, v] -> [v, -q], the unit harmonic oscillator
// in Verlet's expected position/velocity layout.
func springSystem(t *testing.T) *System {
	sys, err := NewSystem(2, func(x []float64, _ float64, _ map[string]float64) ([]float64, error) {
		return []float64{x[1], -x[0]}, nil
	}, nil)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	return sys
}

func TestVerlet_Properties(t *testing.T) {
	v := NewVerlet()
	p := v.Properties()
	if p.HasErrorEstimate {
		t.Fatal("verlet has no embedded error estimate")
	}
	if p.DerivativesPerStep != 1 {
		t.Fatalf("expected 1 extra derivative evaluation per step, got %d", p.DerivativesPerStep)
	}
}

func TestVerlet_ConservesEnergyOverLongRun(t *testing.T) {
	sys := springSystem(t)
	d, err := NewDriver(sys, NewVerlet(), []float64{1.0, 0.0}, 0.0)
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	if err := d.SetStepSize(0.01); err != nil {
		t.Fatalf("SetStepSize: %v", err)
	}

	energy := func(x []float64) float64 { return 0.5 * (x[0]*x[0] + x[1]*x[1]) }
	e0 := energy(d.CurrentX())

	if _, err := d.SolveFixed(200.0); err != nil {
		t.Fatalf("SolveFixed: %v", err)
	}

	drift := math.Abs(energy(d.CurrentX()) - e0)
	if drift > 1e-2 {
		t.Fatalf("expected bounded energy drift for a symplectic integrator over a long run, got %v", drift)
	}
}

func stepVerletOnce(t *testing.T, v *Verlet, sys *System, x0 []float64, t0, h float64) StepContext {
	dx, err := sys.Derivatives(x0, t0)
	if err != nil {
		t.Fatalf("Derivatives: %v", err)
	}
	ctx := StepContext{System: sys, T: t0, X: x0, DX: dx, H: h}
	if err := v.Step(&ctx); err != nil {
		t.Fatalf("Step: %v", err)
	}
	return ctx
}

func TestVerlet_ScratchReuseAcrossDimensions(t *testing.T) {
	v := NewVerlet()
	small := springSystem(t)
	stepVerletOnce(t, v, small, []float64{1.0, 0.0}, 0.0, 0.01)

	bigSys, err := NewSystem(4, func(x []float64, _ float64, _ map[string]float64) ([]float64, error) {
		return []float64{x[2], x[3], -x[0], -x[1]}, nil
	}, nil)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	stepVerletOnce(t, v, bigSys, []float64{1.0, 1.0, 0.0, 0.0}, 0.0, 0.01)
}
