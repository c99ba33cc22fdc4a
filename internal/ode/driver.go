package ode

import "math"

// Numerical Recipes adaptive step-size control constants.
const (
	adaptiveTau     = 1e-30
	adaptiveSafety  = 0.9
	adaptivePShrink = -0.25
	adaptivePGrow   = -0.2
)

// adaptiveErrcon = (5/SAFETY)^(1/PGROW) = (50/9)^(-5).
var adaptiveErrcon = math.Pow(50.0/9.0, -5)

// Driver holds the mutable marching state for a single-stepper advance of
// a System and exposes a fixed-step and an adaptive, error-controlled
// marching algorithm. A Driver is not safe for concurrent use; distinct
// Drivers over the same System are independent as long as the System's
// parameters are not mutated mid-solve.
type Driver struct {
	system  *System
	stepper Stepper

	cT  float64
	cX  []float64
	cDX []float64

	tolerance   float64
	stepsize    float64
	maxSteps    int
	minStepsize float64

	evalCount int64

	ctx StepContext
}

// NewDriver constructs a Driver bound to system and stepper with an
// initial condition (x0, t0), applying default tuning: tolerance 1e-6,
// step 0.01, 10000 max steps, minimum step 1e-8.
func NewDriver(system *System, stepper Stepper, x0 []float64, t0 float64) (*Driver, error) {
	if stepper == nil {
		return nil, newError("NewDriver", ErrInvalidRequest, "stepper is nil")
	}
	d := &Driver{
		stepper:     stepper,
		tolerance:   1e-6,
		stepsize:    0.01,
		maxSteps:    10000,
		minStepsize: 1e-8,
	}
	if err := d.SetSystem(system, x0, t0); err != nil {
		return nil, err
	}
	return d, nil
}

// SetSystem rebinds the Driver to system with a new initial condition,
// re-evaluating cDX.
func (d *Driver) SetSystem(system *System, x0 []float64, t0 float64) error {
	if system == nil {
		return newError("SetSystem", ErrNullSystem, "")
	}
	d.system = system
	return d.SetInitialCondition(x0, t0)
}

// SetInitialCondition rebinds the current state without changing the
// bound System, re-evaluating cDX.
func (d *Driver) SetInitialCondition(x0 []float64, t0 float64) error {
	if d.system == nil {
		return newError("SetInitialCondition", ErrNoSystem, "")
	}
	if len(x0) != d.system.Dimension() {
		return newError("SetInitialCondition", ErrDimensionMismatch, "")
	}
	d.cX = append([]float64(nil), x0...)
	d.cT = t0
	dx, err := d.system.Derivatives(d.cX, d.cT)
	if err != nil {
		return err
	}
	d.cDX = dx
	return nil
}

// SetTolerance sets the adaptive error tolerance; tol must be > 0.
func (d *Driver) SetTolerance(tol float64) error {
	if tol <= 0 {
		return newError("SetTolerance", ErrInvalidTuning, "tolerance must be > 0")
	}
	d.tolerance = tol
	return nil
}

// SetStepSize sets the persistent step size; h must be != 0. The check is
// against the incoming argument, not the stored field, so a previously
// rejected call can never leave the field itself at zero.
func (d *Driver) SetStepSize(h float64) error {
	if h == 0 {
		return newError("SetStepSize", ErrInvalidTuning, "stepsize must be != 0")
	}
	d.stepsize = h
	return nil
}

// SetMaxSteps sets the outer adaptive loop bound; m must be >= 1.
func (d *Driver) SetMaxSteps(m int) error {
	if m < 1 {
		return newError("SetMaxSteps", ErrInvalidTuning, "maxSteps must be >= 1")
	}
	d.maxSteps = m
	return nil
}

// SetMinStepsize sets the minimum accepted adaptive step magnitude; m
// must be > 0.
func (d *Driver) SetMinStepsize(m float64) error {
	if m <= 0 {
		return newError("SetMinStepsize", ErrInvalidTuning, "minStepsize must be > 0")
	}
	d.minStepsize = m
	return nil
}

// CurrentT returns the current committed time.
func (d *Driver) CurrentT() float64 { return d.cT }

// CurrentX returns a copy of the current committed state.
func (d *Driver) CurrentX() []float64 { return append([]float64(nil), d.cX...) }

// Evaluations returns the running count of derivative evaluations.
func (d *Driver) Evaluations() int64 { return d.evalCount }

// HasError reports whether the bound stepper produces an embedded error
// estimate (and is therefore usable with SolveAdaptive).
func (d *Driver) HasError() bool { return d.stepper.Properties().HasErrorEstimate }

func (d *Driver) alignStepSize(tEnd float64) {
	if (tEnd-d.cT)*d.stepsize < 0 {
		d.stepsize = -d.stepsize
	}
}

// commit advances the committed state from a filled-in d.ctx, re-evaluates
// cDX, and bumps the evaluation counter by the stepper's per-step count
// plus the one evaluation commit itself performs.
func (d *Driver) commit() error {
	d.cT = d.ctx.NewT
	if len(d.cX) != len(d.ctx.NewX) {
		d.cX = make([]float64, len(d.ctx.NewX))
	}
	copy(d.cX, d.ctx.NewX)
	dx, err := d.system.Derivatives(d.cX, d.cT)
	if err != nil {
		return err
	}
	d.cDX = dx
	d.evalCount += int64(d.stepper.Properties().DerivativesPerStep) + 1
	return nil
}

func (d *Driver) loadContext(h float64) {
	d.ctx.System = d.system
	d.ctx.T = d.cT
	d.ctx.X = d.cX
	d.ctx.DX = d.cDX
	d.ctx.H = h
}

// SolveFixed marches with the persistent step size, realigned toward
// tEnd, taking whole steps until a further one would overshoot and then a
// single final partial step exactly to tEnd.
func (d *Driver) SolveFixed(tEnd float64) ([]float64, error) {
	if d.system == nil {
		return nil, newError("SolveFixed", ErrNoSystem, "")
	}
	d.alignStepSize(tEnd)

	for {
		remaining := tEnd - d.cT
		if remaining == 0 {
			break
		}
		dir := 1.0
		if d.stepsize < 0 {
			dir = -1.0
		}
		if remaining*dir <= math.Abs(d.stepsize) {
			break
		}
		d.loadContext(d.stepsize)
		if err := d.stepper.Step(&d.ctx); err != nil {
			return nil, err
		}
		if err := d.commit(); err != nil {
			return nil, err
		}
	}

	if remaining := tEnd - d.cT; remaining != 0 {
		d.loadContext(remaining)
		if err := d.stepper.Step(&d.ctx); err != nil {
			return nil, err
		}
		if err := d.commit(); err != nil {
			return nil, err
		}
	}
	return d.CurrentX(), nil
}

// SolveAdaptive marches with embedded-error step-size control, shrinking
// or growing the step to keep the scaled local error near 1. It fails
// with ErrNoErrorEstimate if the bound stepper has no embedded error
// estimate, with ErrNoSystem if unbound.
func (d *Driver) SolveAdaptive(tEnd float64) ([]float64, error) {
	if d.system == nil {
		return nil, newError("SolveAdaptive", ErrNoSystem, "")
	}
	if !d.HasError() {
		return nil, newError("SolveAdaptive", ErrNoErrorEstimate, "")
	}

	if d.stepsize == 0 {
		d.stepsize = tEnd - d.cT
	}
	d.alignStepSize(tEnd)

	derivsPerStep := int64(d.stepper.Properties().DerivativesPerStep)

	for iter := 0; iter < d.maxSteps; iter++ {
		hTry := d.stepsize
		remaining := tEnd - d.cT
		if remaining*(d.stepsize-remaining) > 0 {
			hTry = remaining
		}

		var errMax float64
		for {
			d.loadContext(hTry)
			if err := d.stepper.Step(&d.ctx); err != nil {
				return nil, err
			}
			d.evalCount += derivsPerStep

			errMax = 0
			for i := range d.cX {
				scale := math.Abs(d.cX[i]) + math.Abs(hTry*d.cDX[i]) + adaptiveTau
				e := math.Abs(d.ctx.ErrX[i]) / scale
				if e > errMax {
					errMax = e
				}
			}
			errMax /= d.tolerance

			if errMax < 1 {
				break
			}

			hTemp := adaptiveSafety * hTry * math.Pow(errMax, adaptivePShrink)
			if hTry >= 0 {
				hTry = math.Max(hTemp, 0.1*hTry)
			} else {
				hTry = math.Min(hTemp, 0.1*hTry)
			}
			if d.cT+hTry == d.cT {
				return nil, newError("SolveAdaptive", ErrStepUnderflow, "")
			}
		}

		if err := d.commitAdaptive(); err != nil {
			return nil, err
		}

		if errMax > adaptiveErrcon {
			d.stepsize = adaptiveSafety * d.stepsize * math.Pow(errMax, adaptivePGrow)
		} else {
			d.stepsize *= 5
		}

		if math.Abs(tEnd-d.cT) <= adaptiveTau {
			return d.CurrentX(), nil
		}

		d.stepsize = hTry
		if math.Abs(d.stepsize) < d.minStepsize {
			return nil, newError("SolveAdaptive", ErrStepTooSmall, "")
		}
	}
	return nil, newError("SolveAdaptive", ErrMaxIterationsExceeded, "")
}

// commitAdaptive is SolveAdaptive's commit step: cT<-nT; cX<-nX;
// cDX<-f(cX,cT); evalCount += 1 (the inner acceptance loop already
// counted the stepper's own evaluations as they happened).
func (d *Driver) commitAdaptive() error {
	d.cT = d.ctx.NewT
	if len(d.cX) != len(d.ctx.NewX) {
		d.cX = make([]float64, len(d.ctx.NewX))
	}
	copy(d.cX, d.ctx.NewX)
	dx, err := d.system.Derivatives(d.cX, d.cT)
	if err != nil {
		return err
	}
	d.cDX = dx
	d.evalCount++
	return nil
}
