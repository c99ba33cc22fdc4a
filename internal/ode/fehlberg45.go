package ode

// Fehlberg45 is the classic Runge-Kutta-Fehlberg 4(5) pair (Fehlberg 1969,
// as tabulated in Numerical Recipes). It advances with the 5th-order
// solution and reports the 4th/5th-order difference as the embedded error
// estimate. 6 stages total, 5 additional evaluations per step (k2..k6).
type Fehlberg45 struct {
	k2, k3, k4, k5, k6 []float64
	scratch            []float64
}

func NewFehlberg45() *Fehlberg45 { return &Fehlberg45{} }

func (r *Fehlberg45) Properties() Properties {
	return Properties{Name: "fehlberg45", DerivativesPerStep: 5, HasErrorEstimate: true}
}

const (
	rkf45c2 = 1.0 / 4.0
	rkf45c3 = 3.0 / 8.0
	rkf45c4 = 12.0 / 13.0
	rkf45c5 = 1.0
	rkf45c6 = 1.0 / 2.0

	rkf45a21 = 1.0 / 4.0

	rkf45a31 = 3.0 / 32.0
	rkf45a32 = 9.0 / 32.0

	rkf45a41 = 1932.0 / 2197.0
	rkf45a42 = -7200.0 / 2197.0
	rkf45a43 = 7296.0 / 2197.0

	rkf45a51 = 439.0 / 216.0
	rkf45a52 = -8.0
	rkf45a53 = 3680.0 / 513.0
	rkf45a54 = -845.0 / 4104.0

	rkf45a61 = -8.0 / 27.0
	rkf45a62 = 2.0
	rkf45a63 = -3544.0 / 2565.0
	rkf45a64 = 1859.0 / 4104.0
	rkf45a65 = -11.0 / 40.0

	rkf45b1 = 16.0 / 135.0
	rkf45b3 = 6656.0 / 12825.0
	rkf45b4 = 28561.0 / 56430.0
	rkf45b5 = -9.0 / 50.0
	rkf45b6 = 2.0 / 55.0

	rkf45b1s = 25.0 / 216.0
	rkf45b3s = 1408.0 / 2565.0
	rkf45b4s = 2197.0 / 4104.0
	rkf45b5s = -1.0 / 5.0
	rkf45b6s = 0.0

	rkf45e1 = rkf45b1 - rkf45b1s
	rkf45e3 = rkf45b3 - rkf45b3s
	rkf45e4 = rkf45b4 - rkf45b4s
	rkf45e5 = rkf45b5 - rkf45b5s
	rkf45e6 = rkf45b6 - rkf45b6s
)

func (r *Fehlberg45) ensure(n int) {
	if len(r.k2) == n {
		return
	}
	r.k2 = make([]float64, n)
	r.k3 = make([]float64, n)
	r.k4 = make([]float64, n)
	r.k5 = make([]float64, n)
	r.k6 = make([]float64, n)
	r.scratch = make([]float64, n)
}

func (r *Fehlberg45) Step(ctx *StepContext) error {
	n := len(ctx.X)
	r.ensure(n)
	h := ctx.H
	x, k1 := ctx.X, ctx.DX

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*rkf45a21*k1[i]
	}
	k2, err := ctx.System.Derivatives(r.scratch, ctx.T+rkf45c2*h)
	if err != nil {
		return err
	}
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*(rkf45a31*k1[i]+rkf45a32*r.k2[i])
	}
	k3, err := ctx.System.Derivatives(r.scratch, ctx.T+rkf45c3*h)
	if err != nil {
		return err
	}
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*(rkf45a41*k1[i]+rkf45a42*r.k2[i]+rkf45a43*r.k3[i])
	}
	k4, err := ctx.System.Derivatives(r.scratch, ctx.T+rkf45c4*h)
	if err != nil {
		return err
	}
	copy(r.k4, k4)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*(rkf45a51*k1[i]+rkf45a52*r.k2[i]+rkf45a53*r.k3[i]+rkf45a54*r.k4[i])
	}
	k5, err := ctx.System.Derivatives(r.scratch, ctx.T+rkf45c5*h)
	if err != nil {
		return err
	}
	copy(r.k5, k5)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*(rkf45a61*k1[i]+rkf45a62*r.k2[i]+rkf45a63*r.k3[i]+rkf45a64*r.k4[i]+rkf45a65*r.k5[i])
	}
	k6, err := ctx.System.Derivatives(r.scratch, ctx.T+rkf45c6*h)
	if err != nil {
		return err
	}
	copy(r.k6, k6)

	if len(ctx.NewX) != n {
		ctx.NewX = make([]float64, n)
	}
	if len(ctx.ErrX) != n {
		ctx.ErrX = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		ctx.NewX[i] = x[i] + h*(rkf45b1*k1[i]+rkf45b3*r.k3[i]+rkf45b4*r.k4[i]+rkf45b5*r.k5[i]+rkf45b6*r.k6[i])
		ctx.ErrX[i] = h * (rkf45e1*k1[i] + rkf45e3*r.k3[i] + rkf45e4*r.k4[i] + rkf45e5*r.k5[i] + rkf45e6*r.k6[i])
	}
	ctx.NewT = ctx.T + h
	return nil
}
