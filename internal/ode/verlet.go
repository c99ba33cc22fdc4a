package ode

// Verlet is velocity Verlet, a symplectic second-order method for
// systems whose state is laid out as n/2 positions followed by n/2
// velocities ([q..., v...]), with derivatives of the form
// [v..., a(q, v, t)...]. Two evaluations per step (the free one at
// (T, X) plus one at the half-updated position), no embedded error
// estimate. Symplectic steppers bound energy drift over long integrations
// where RK4 would slowly gain or lose it.
type Verlet struct {
	scratch []float64
}

func NewVerlet() *Verlet { return &Verlet{} }

func (v *Verlet) Properties() Properties {
	return Properties{Name: "verlet", DerivativesPerStep: 1, HasErrorEstimate: false}
}

func (v *Verlet) ensure(n int) {
	if len(v.scratch) == n {
		return
	}
	v.scratch = make([]float64, n)
}

func (v *Verlet) Step(ctx *StepContext) error {
	n := len(ctx.X)
	half := n / 2
	v.ensure(n)

	if len(ctx.NewX) != n {
		ctx.NewX = make([]float64, n)
	}

	h := ctx.H
	h2 := h * h
	x, dx := ctx.X, ctx.DX

	for i := 0; i < half; i++ {
		ctx.NewX[i] = x[i] + x[half+i]*h + 0.5*dx[half+i]*h2
	}
	for i := 0; i < half; i++ {
		v.scratch[i] = ctx.NewX[i]
		v.scratch[half+i] = x[half+i]
	}

	dxNew, err := ctx.System.Derivatives(v.scratch, ctx.T+h)
	if err != nil {
		return err
	}

	halfH := 0.5 * h
	for i := 0; i < half; i++ {
		ctx.NewX[half+i] = x[half+i] + (dx[half+i]+dxNew[half+i])*halfH
	}

	ctx.NewT = ctx.T + h
	ctx.ErrX = nil
	return nil
}
