package systems

import "github.com/san-kum/odeint/internal/ode"

// newVanDerPol builds the Van der Pol oscillator [x2, mu*(1-x1^2)*x2 -
// x1], n=2. Its relaxation spikes exercise the sampler's maxChange
// densification.
func newVanDerPol(overrides map[string]float64) (*ode.System, error) {
	params := mergeDefaults(map[string]float64{"mu": 5.0}, overrides)
	return ode.NewSystem(2, func(x []float64, t float64, p map[string]float64) ([]float64, error) {
		return []float64{
			x[1],
			p["mu"]*(1-x[0]*x[0])*x[1] - x[0],
		}, nil
	}, params)
}
