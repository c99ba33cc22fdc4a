package ode

import (
	"math"
	"testing"
)

func decaySystem(t *testing.T, k float64) *System {
	sys, err := NewSystem(1, func(x []float64, t float64, p map[string]float64) ([]float64, error) {
		return []float64{-p["k"] * x[0]}, nil
	}, map[string]float64{"k": k})
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	return sys
}

func stepOnce(t *testing.T, s Stepper, sys *System, x0 float64, t0, h float64) StepContext {
	dx, err := sys.Derivatives([]float64{x0}, t0)
	if err != nil {
		t.Fatalf("Derivatives: %v", err)
	}
	ctx := StepContext{System: sys, T: t0, X: []float64{x0}, DX: dx, H: h}
	if err := s.Step(&ctx); err != nil {
		t.Fatalf("Step: %v", err)
	}
	return ctx
}

func TestEuler_ExactLinearStep(t *testing.T) {
	sys := decaySystem(t, 1.0)
	ctx := stepOnce(t, NewEuler(), sys, 1.0, 0, 0.1)
	want := 1.0 + 0.1*(-1.0)
	if math.Abs(ctx.NewX[0]-want) > 1e-12 {
		t.Fatalf("expected %v, got %v", want, ctx.NewX[0])
	}
	if ctx.NewT != 0.1 {
		t.Fatalf("expected NewT=0.1, got %v", ctx.NewT)
	}
	if ctx.ErrX != nil {
		t.Fatal("euler must not produce an error estimate")
	}
}

func TestRK4_MatchesAnalyticDecay(t *testing.T) {
	sys := decaySystem(t, 1.0)
	ctx := stepOnce(t, NewRK4(), sys, 1.0, 0, 0.1)
	want := math.Exp(-0.1)
	if math.Abs(ctx.NewX[0]-want) > 1e-6 {
		t.Fatalf("expected ~%v, got %v", want, ctx.NewX[0])
	}
}

func TestRK4_Properties(t *testing.T) {
	p := NewRK4().Properties()
	if p.Name != "rk4" || p.DerivativesPerStep != 3 || p.HasErrorEstimate {
		t.Fatalf("unexpected properties: %+v", p)
	}
}

func embeddedSteppers() map[string]Stepper {
	return map[string]Stepper{
		"fehlberg45":      NewFehlberg45(),
		"cashkarp45":      NewCashKarp45(),
		"dormandprince45": NewDormandPrince45(),
	}
}

func TestEmbeddedSteppers_HaveErrorEstimate(t *testing.T) {
	for name, s := range embeddedSteppers() {
		if !s.Properties().HasErrorEstimate {
			t.Errorf("%s: expected HasErrorEstimate=true", name)
		}
	}
}

func TestEmbeddedSteppers_MatchAnalyticDecay(t *testing.T) {
	sys := decaySystem(t, 1.0)
	for name, s := range embeddedSteppers() {
		ctx := stepOnce(t, s, sys, 1.0, 0, 0.1)
		want := math.Exp(-0.1)
		if math.Abs(ctx.NewX[0]-want) > 1e-7 {
			t.Errorf("%s: expected ~%v, got %v", name, want, ctx.NewX[0])
		}
		if len(ctx.ErrX) != 1 {
			t.Errorf("%s: expected a 1-length error estimate, got %d", name, len(ctx.ErrX))
		}
		if math.Abs(ctx.ErrX[0]) > 1e-4 {
			t.Errorf("%s: error estimate implausibly large: %v", name, ctx.ErrX[0])
		}
	}
}

func TestEmbeddedSteppers_DerivativesPerStep(t *testing.T) {
	want := map[string]int{"fehlberg45": 5, "cashkarp45": 5, "dormandprince45": 6}
	for name, s := range embeddedSteppers() {
		if got := s.Properties().DerivativesPerStep; got != want[name] {
			t.Errorf("%s: expected DerivativesPerStep=%d, got %d", name, want[name], got)
		}
	}
}

func TestEmbeddedSteppers_ScratchReuseAcrossDimensions(t *testing.T) {
	// stepping a 1-d system and then a 2-d harmonic oscillator with the
	// same stepper instance must not retain stale scratch sizing.
	harmonic, err := NewSystem(2, func(x []float64, t float64, p map[string]float64) ([]float64, error) {
		return []float64{x[1], -x[0]}, nil
	}, nil)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	for name, s := range embeddedSteppers() {
		_ = stepOnce(t, s, decaySystem(t, 1.0), 1.0, 0, 0.1)
		dx, err := harmonic.Derivatives([]float64{1, 0}, 0)
		if err != nil {
			t.Fatalf("%s: Derivatives: %v", name, err)
		}
		ctx := StepContext{System: harmonic, T: 0, X: []float64{1, 0}, DX: dx, H: 0.1}
		if err := s.Step(&ctx); err != nil {
			t.Fatalf("%s: Step on 2-d system after 1-d use: %v", name, err)
		}
		if len(ctx.NewX) != 2 {
			t.Fatalf("%s: expected NewX length 2, got %d", name, len(ctx.NewX))
		}
	}
}
