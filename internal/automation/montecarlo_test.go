package automation

import (
	"testing"

	"github.com/san-kum/odeint/internal/ode"
	"github.com/san-kum/odeint/internal/systems"
)

func TestRunMonteCarlo_DecayTrialsStayBounded(t *testing.T) {
	sys, _, err := systems.Get("decay", map[string]float64{"k": 1.0})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	cfg := MonteCarloConfig{
		BaseState:    []float64{1.0},
		Perturbation: 0.1,
		NumTrials:    5,
		Seed:         42,
		T0:           0,
		T1:           2,
		TimeStep:     0.1,
		XMin:         []float64{-10},
		XMax:         []float64{10},
	}

	results, err := RunMonteCarlo(sys, &ode.RK4{}, cfg)
	if err != nil {
		t.Fatalf("RunMonteCarlo: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 trial results, got %d", len(results))
	}

	bounded, unbounded := Summarize(results)
	if bounded != 5 || unbounded != 0 {
		t.Fatalf("expected all decay trials bounded, got bounded=%d unbounded=%d", bounded, unbounded)
	}
}

func TestRunMonteCarlo_PerturbsEachTrialDifferently(t *testing.T) {
	sys, _, err := systems.Get("decay", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	cfg := MonteCarloConfig{
		BaseState:    []float64{1.0},
		Perturbation: 0.5,
		NumTrials:    3,
		Seed:         7,
		T0:           0,
		T1:           1,
		TimeStep:     0.1,
	}

	results, err := RunMonteCarlo(sys, &ode.RK4{}, cfg)
	if err != nil {
		t.Fatalf("RunMonteCarlo: %v", err)
	}

	if results[0].InitialX[0] == results[1].InitialX[0] && results[1].InitialX[0] == results[2].InitialX[0] {
		t.Fatal("expected distinct perturbed initial conditions across trials")
	}
}
