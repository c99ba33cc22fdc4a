package systems

import "github.com/san-kum/odeint/internal/ode"

// newRossler builds the Rossler attractor [-x2-x3, x1+a*x2, b+x3*(x1-c)],
// n=3, a second chaotic example alongside lorenz for internal/analysis's
// Lyapunov exponent estimation.
func newRossler(overrides map[string]float64) (*ode.System, error) {
	params := mergeDefaults(map[string]float64{"a": 0.2, "b": 0.2, "c": 5.7}, overrides)
	return ode.NewSystem(3, func(x []float64, t float64, p map[string]float64) ([]float64, error) {
		return []float64{
			-x[1] - x[2],
			x[0] + p["a"]*x[1],
			p["b"] + x[2]*(x[0]-p["c"]),
		}, nil
	}, params)
}
