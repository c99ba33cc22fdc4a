package systems

import "github.com/san-kum/odeint/internal/ode"

// newLorenz builds the Lorenz attractor [sigma*(x2-x1), x1*(rho-x3)-x2,
// x1*x2-beta*x3], n=3, a chaotic example exercising the adaptive Driver
// over a long interval.
func newLorenz(overrides map[string]float64) (*ode.System, error) {
	params := mergeDefaults(map[string]float64{
		"sigma": 10.0,
		"rho":   28.0,
		"beta":  8.0 / 3.0,
	}, overrides)
	return ode.NewSystem(3, func(x []float64, t float64, p map[string]float64) ([]float64, error) {
		return []float64{
			p["sigma"] * (x[1] - x[0]),
			x[0]*(p["rho"]-x[2]) - x[1],
			x[0]*x[1] - p["beta"]*x[2],
		}, nil
	}, params)
}
