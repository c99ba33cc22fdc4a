package ode

// Euler is the explicit Euler method: one free evaluation per step, no
// embedded error estimate.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Properties() Properties {
	return Properties{Name: "euler", DerivativesPerStep: 0, HasErrorEstimate: false}
}

func (e *Euler) Step(ctx *StepContext) error {
	n := len(ctx.X)
	if len(ctx.NewX) != n {
		ctx.NewX = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		ctx.NewX[i] = ctx.X[i] + ctx.H*ctx.DX[i]
	}
	ctx.NewT = ctx.T + ctx.H
	ctx.ErrX = nil
	return nil
}
