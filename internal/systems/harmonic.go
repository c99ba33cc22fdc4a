package systems

import "github.com/san-kum/odeint/internal/ode"

// newHarmonic builds the undamped unit harmonic oscillator [x2, -x1],
// n=2: energy is conserved exactly, a useful check on a stepper's
// conservation properties.
func newHarmonic(overrides map[string]float64) (*ode.System, error) {
	params := mergeDefaults(nil, overrides)
	return ode.NewSystem(2, func(x []float64, t float64, p map[string]float64) ([]float64, error) {
		return []float64{x[1], -x[0]}, nil
	}, params)
}

// Energy returns x1^2+x2^2 for a harmonic-oscillator state, for use with
// internal/metrics.EnergyDrift.
func Energy(x []float64) float64 {
	return x[0]*x[0] + x[1]*x[1]
}
