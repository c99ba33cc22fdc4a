// Package automation runs batches of randomly perturbed trials over an
// ode.System and classifies each trial's long-run boundedness, built
// over sampler.Sampler and metrics.Boundedness.
package automation

import (
	"math/rand"

	"github.com/san-kum/odeint/internal/metrics"
	"github.com/san-kum/odeint/internal/ode"
	"github.com/san-kum/odeint/internal/sampler"
)

// TrialResult is the outcome of one perturbed-initial-condition run.
type TrialResult struct {
	TrialID     int
	InitialX    []float64
	FinalX      []float64
	Boundedness float64
	Bounded     bool
}

// MonteCarloConfig configures a batch of perturbed-initial-condition
// trials against the same System.
type MonteCarloConfig struct {
	BaseState    []float64
	Perturbation float64
	NumTrials    int
	Seed         int64
	T0, T1       float64
	TimeStep     float64
	XMin, XMax   []float64 // bounds for the Boundedness metric
}

// RunMonteCarlo perturbs BaseState by up to +/-Perturbation per
// component, runs NumTrials independent Sampler passes, and classifies
// each as bounded if every sample stayed within [XMin, XMax].
func RunMonteCarlo(sys *ode.System, stepper ode.Stepper, cfg MonteCarloConfig) ([]TrialResult, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	results := make([]TrialResult, 0, cfg.NumTrials)

	for trial := 0; trial < cfg.NumTrials; trial++ {
		x0 := make([]float64, len(cfg.BaseState))
		for i, v := range cfg.BaseState {
			x0[i] = v + (rng.Float64()-0.5)*2*cfg.Perturbation
		}

		driver, err := ode.NewDriver(sys, stepper, x0, cfg.T0)
		if err != nil {
			return results, err
		}
		s := sampler.New(driver)
		traj, err := s.GetSolutionAtPoints(x0, cfg.T0, cfg.T0, cfg.T1, cfg.TimeStep, sampler.Options{
			XMin: cfg.XMin,
			XMax: cfg.XMax,
		})
		if err != nil {
			return results, err
		}

		boundedness := metrics.Boundedness(traj, cfg.XMin, cfg.XMax)
		_, finalX, _ := traj.At(traj.Len() - 1)

		results = append(results, TrialResult{
			TrialID:     trial,
			InitialX:    x0,
			FinalX:      finalX,
			Boundedness: boundedness,
			Bounded:     boundedness == 1.0,
		})
	}

	return results, nil
}

// Summarize reports how many trials stayed fully bounded.
func Summarize(results []TrialResult) (bounded, unbounded int) {
	for _, r := range results {
		if r.Bounded {
			bounded++
		} else {
			unbounded++
		}
	}
	return
}
