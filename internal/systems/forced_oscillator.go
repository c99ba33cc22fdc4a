package systems

import (
	"math"

	"github.com/san-kum/odeint/internal/ode"
)

// newForcedOscillator builds [x2, -k*x1 - c*x2 + A*sin(w*t)], n=2.
func newForcedOscillator(overrides map[string]float64) (*ode.System, error) {
	params := mergeDefaults(map[string]float64{
		"k": 1.0,
		"c": 0.0,
		"A": 0.0,
		"w": 1.0,
	}, overrides)
	return ode.NewSystem(2, func(x []float64, t float64, p map[string]float64) ([]float64, error) {
		return []float64{
			x[1],
			-p["k"]*x[0] - p["c"]*x[1] + p["A"]*math.Sin(p["w"]*t),
		}, nil
	}, params)
}
