package systems

import "github.com/san-kum/odeint/internal/ode"

// newDoubleWell builds a damped particle in the bistable potential
// V(x) = A*(x^2-B)^2, n=2: [v, (-4*A*x*(x^2-B) - damping*v) / mass].
func newDoubleWell(overrides map[string]float64) (*ode.System, error) {
	params := mergeDefaults(map[string]float64{"A": 1.0, "B": 1.0, "mass": 1.0, "damping": 0.1}, overrides)
	return ode.NewSystem(2, func(x []float64, t float64, p map[string]float64) ([]float64, error) {
		v := x[1]
		accel := (-4*p["A"]*x[0]*(x[0]*x[0]-p["B"]) - p["damping"]*v) / p["mass"]
		return []float64{v, accel}, nil
	}, params)
}

// DoubleWellEnergy is the energy invariant of the undamped (damping=0)
// double well, for use with internal/metrics.EnergyDrift.
func DoubleWellEnergy(params map[string]float64) func(x []float64) float64 {
	a, b, mass := params["A"], params["B"], params["mass"]
	return func(x []float64) float64 {
		v := x[1]
		return 0.5*mass*v*v + a*(x[0]*x[0]-b)*(x[0]*x[0]-b)
	}
}
