package systems

import (
	"math"

	"github.com/san-kum/odeint/internal/ode"
)

// newDuffing builds the periodically forced Duffing oscillator
// [v, -delta*v - alpha*x - beta*x^3 + gamma*cos(omega*t)], n=2, using t
// directly for the forcing phase rather than tracking it as a third
// state component.
func newDuffing(overrides map[string]float64) (*ode.System, error) {
	params := mergeDefaults(map[string]float64{
		"alpha": -1.0,
		"beta":  1.0,
		"delta": 0.3,
		"gamma": 0.5,
		"omega": 1.2,
	}, overrides)
	return ode.NewSystem(2, func(x []float64, t float64, p map[string]float64) ([]float64, error) {
		return []float64{
			x[1],
			-p["delta"]*x[1] - p["alpha"]*x[0] - p["beta"]*x[0]*x[0]*x[0] + p["gamma"]*math.Cos(p["omega"]*t),
		}, nil
	}, params)
}
