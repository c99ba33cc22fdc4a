package analysis

import (
	"math"

	"github.com/san-kum/odeint/internal/ode"
)

// LyapunovExponent estimates the largest Lyapunov exponent of sys from
// x0 using the trajectory-separation method: two initially close
// trajectories are advanced in lockstep, their separation is
// renormalized back to the initial perturbation after every step, and
// the exponent is the time-averaged log growth rate of that separation. A positive value
// indicates sensitivity to initial conditions (chaos); near zero or
// negative indicates regular (periodic or fixed-point) behavior.
func LyapunovExponent(sys *ode.System, stepper ode.Stepper, x0 []float64, t0, dt, duration, perturbation float64) (float64, error) {
	if len(x0) == 0 {
		return 0, nil
	}

	x0p := append([]float64(nil), x0...)
	x0p[0] += perturbation

	d, err := ode.NewDriver(sys, stepper, x0, t0)
	if err != nil {
		return 0, err
	}
	dp, err := ode.NewDriver(sys, stepper, x0p, t0)
	if err != nil {
		return 0, err
	}
	if err := d.SetStepSize(dt); err != nil {
		return 0, err
	}
	if err := dp.SetStepSize(dt); err != nil {
		return 0, err
	}

	d0 := perturbation
	sumLog := 0.0
	count := 0

	t := t0
	for t < t0+duration {
		t += dt
		if _, err := d.SolveFixed(t); err != nil {
			return 0, err
		}
		if _, err := dp.SolveFixed(t); err != nil {
			return 0, err
		}

		x, xp := d.CurrentX(), dp.CurrentX()
		sep := separation(x, xp)

		if sep > 0 && d0 > 0 {
			sumLog += math.Log(sep / d0)
			count++
			renormalize(x, xp, d0/sep)
			if err := dp.SetInitialCondition(xp, t); err != nil {
				return 0, err
			}
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}

// LyapunovSpectrum estimates one exponent per state dimension by
// perturbing each dimension independently, holding the others fixed.
func LyapunovSpectrum(sys *ode.System, stepper ode.Stepper, x0 []float64, t0, dt, duration, perturbation float64) ([]float64, error) {
	n := len(x0)
	spectrum := make([]float64, n)
	for i := 0; i < n; i++ {
		xp := append([]float64(nil), x0...)
		xp[i] += perturbation

		lam, err := lyapunovBetween(sys, stepper, x0, xp, t0, dt, duration, perturbation)
		if err != nil {
			return nil, err
		}
		spectrum[i] = lam
	}
	return spectrum, nil
}

func lyapunovBetween(sys *ode.System, stepper ode.Stepper, x0, x0p []float64, t0, dt, duration, d0 float64) (float64, error) {
	d, err := ode.NewDriver(sys, stepper, x0, t0)
	if err != nil {
		return 0, err
	}
	dp, err := ode.NewDriver(sys, stepper, x0p, t0)
	if err != nil {
		return 0, err
	}
	if err := d.SetStepSize(dt); err != nil {
		return 0, err
	}
	if err := dp.SetStepSize(dt); err != nil {
		return 0, err
	}

	sumLog := 0.0
	count := 0
	t := t0
	for t < t0+duration {
		t += dt
		if _, err := d.SolveFixed(t); err != nil {
			return 0, err
		}
		if _, err := dp.SolveFixed(t); err != nil {
			return 0, err
		}

		x, xp := d.CurrentX(), dp.CurrentX()
		sep := separation(x, xp)

		if sep > 0 && d0 > 0 {
			sumLog += math.Log(sep / d0)
			count++
			renormalize(x, xp, d0/sep)
			if err := dp.SetInitialCondition(xp, t); err != nil {
				return 0, err
			}
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}

func separation(x, xp []float64) float64 {
	sep := 0.0
	for i := range x {
		diff := xp[i] - x[i]
		sep += diff * diff
	}
	return math.Sqrt(sep)
}

func renormalize(x, xp []float64, scale float64) {
	for i := range xp {
		xp[i] = x[i] + (xp[i]-x[i])*scale
	}
}
