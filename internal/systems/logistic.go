package systems

import "github.com/san-kum/odeint/internal/ode"

// newLogistic builds dx/dt = r*x*(1-x), n=1.
func newLogistic(overrides map[string]float64) (*ode.System, error) {
	params := mergeDefaults(map[string]float64{"r": 1.0}, overrides)
	return ode.NewSystem(1, func(x []float64, t float64, p map[string]float64) ([]float64, error) {
		return []float64{p["r"] * x[0] * (1 - x[0])}, nil
	}, params)
}
