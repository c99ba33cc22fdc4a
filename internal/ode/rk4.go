package ode

// RK4 is the classic 4th-order Runge-Kutta method: 3 additional
// evaluations per step (k2, k3, k4), no embedded error estimate. Stage
// scratch is owned by the stepper and reused across steps.
type RK4 struct {
	k2, k3, k4 []float64
	scratch    []float64
}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Properties() Properties {
	return Properties{Name: "rk4", DerivativesPerStep: 3, HasErrorEstimate: false}
}

func (r *RK4) ensure(n int) {
	if len(r.k2) == n {
		return
	}
	r.k2 = make([]float64, n)
	r.k3 = make([]float64, n)
	r.k4 = make([]float64, n)
	r.scratch = make([]float64, n)
}

func (r *RK4) Step(ctx *StepContext) error {
	n := len(ctx.X)
	r.ensure(n)
	h := ctx.H
	x, k1 := ctx.X, ctx.DX

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*0.5*k1[i]
	}
	k2, err := ctx.System.Derivatives(r.scratch, ctx.T+h*0.5)
	if err != nil {
		return err
	}
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*0.5*r.k2[i]
	}
	k3, err := ctx.System.Derivatives(r.scratch, ctx.T+h*0.5)
	if err != nil {
		return err
	}
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*r.k3[i]
	}
	k4, err := ctx.System.Derivatives(r.scratch, ctx.T+h)
	if err != nil {
		return err
	}
	copy(r.k4, k4)

	if len(ctx.NewX) != n {
		ctx.NewX = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		ctx.NewX[i] = x[i] + h*((k1[i]+r.k4[i])/6.0+(r.k2[i]+r.k3[i])/3.0)
	}
	ctx.NewT = ctx.T + h
	ctx.ErrX = nil
	return nil
}
