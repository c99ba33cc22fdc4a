package ode

// Leapfrog is kick-drift-kick leapfrog integration, a symplectic
// second-order method for systems whose state is laid out as n/2
// positions followed by n/2 velocities ([q..., v...]), with derivatives
// of the form [v..., a(q, v, t)...]. It differs from Verlet in its
// intermediate half-step velocity: position advances using a half-kicked
// velocity rather than the averaged accelerations Verlet uses for the
// velocity update. One additional evaluation per step (the free one at
// (T, X) plus one at the updated position with the half-kicked
// velocity), no embedded error estimate.
type Leapfrog struct {
	scratch []float64
}

func NewLeapfrog() *Leapfrog { return &Leapfrog{} }

func (l *Leapfrog) Properties() Properties {
	return Properties{Name: "leapfrog", DerivativesPerStep: 1, HasErrorEstimate: false}
}

func (l *Leapfrog) ensure(n int) {
	if len(l.scratch) == n {
		return
	}
	l.scratch = make([]float64, n)
}

func (l *Leapfrog) Step(ctx *StepContext) error {
	n := len(ctx.X)
	half := n / 2
	l.ensure(n)

	if len(ctx.NewX) != n {
		ctx.NewX = make([]float64, n)
	}

	h := ctx.H
	halfH := 0.5 * h
	x, dx := ctx.X, ctx.DX

	for i := 0; i < half; i++ {
		l.scratch[half+i] = x[half+i] + dx[half+i]*halfH
	}
	for i := 0; i < half; i++ {
		ctx.NewX[i] = x[i] + l.scratch[half+i]*h
		l.scratch[i] = ctx.NewX[i]
	}

	dxNew, err := ctx.System.Derivatives(l.scratch, ctx.T+h)
	if err != nil {
		return err
	}

	for i := 0; i < half; i++ {
		ctx.NewX[half+i] = l.scratch[half+i] + dxNew[half+i]*halfH
	}

	ctx.NewT = ctx.T + h
	ctx.ErrX = nil
	return nil
}
