package systems

import "github.com/san-kum/odeint/internal/ode"

// newDecay builds dx/dt = -k*x, n=1: exponential decay.
func newDecay(overrides map[string]float64) (*ode.System, error) {
	params := mergeDefaults(map[string]float64{"k": 1.0}, overrides)
	return ode.NewSystem(1, func(x []float64, t float64, p map[string]float64) ([]float64, error) {
		return []float64{-p["k"] * x[0]}, nil
	}, params)
}
