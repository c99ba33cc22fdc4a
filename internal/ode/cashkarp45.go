package ode

// CashKarp45 is the Cash-Karp 4(5) embedded pair (Cash & Karp, 1990). 6
// stages total, 5 additional evaluations per step (k2..k6).
type CashKarp45 struct {
	k2, k3, k4, k5, k6 []float64
	scratch            []float64
}

func NewCashKarp45() *CashKarp45 { return &CashKarp45{} }

func (r *CashKarp45) Properties() Properties {
	return Properties{Name: "cashkarp45", DerivativesPerStep: 5, HasErrorEstimate: true}
}

const (
	ck45c2 = 1.0 / 5.0
	ck45c3 = 3.0 / 10.0
	ck45c4 = 3.0 / 5.0
	ck45c5 = 1.0
	ck45c6 = 7.0 / 8.0

	ck45a21 = 1.0 / 5.0

	ck45a31 = 3.0 / 40.0
	ck45a32 = 9.0 / 40.0

	ck45a41 = 3.0 / 10.0
	ck45a42 = -9.0 / 10.0
	ck45a43 = 6.0 / 5.0

	ck45a51 = -11.0 / 54.0
	ck45a52 = 5.0 / 2.0
	ck45a53 = -70.0 / 27.0
	ck45a54 = 35.0 / 27.0

	ck45a61 = 1631.0 / 55296.0
	ck45a62 = 175.0 / 512.0
	ck45a63 = 575.0 / 13824.0
	ck45a64 = 44275.0 / 110592.0
	ck45a65 = 253.0 / 4096.0

	ck45b1 = 37.0 / 378.0
	ck45b3 = 250.0 / 621.0
	ck45b4 = 125.0 / 594.0
	ck45b6 = 512.0 / 1771.0

	ck45b1s = 2825.0 / 27648.0
	ck45b3s = 18575.0 / 48384.0
	ck45b4s = 13525.0 / 55296.0
	ck45b5s = 277.0 / 14336.0
	ck45b6s = 1.0 / 4.0

	ck45e1 = ck45b1 - ck45b1s
	ck45e3 = ck45b3 - ck45b3s
	ck45e4 = ck45b4 - ck45b4s
	ck45e5 = 0.0 - ck45b5s
	ck45e6 = ck45b6 - ck45b6s
)

func (r *CashKarp45) ensure(n int) {
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

func (r *CashKarp45) Step(ctx *StepContext) error {
	n := len(ctx.X)
	r.ensure(n)
	h := ctx.H
	x, k1 := ctx.X, ctx.DX

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*ck45a21*k1[i]
	}
	k2, err := ctx.System.Derivatives(r.scratch, ctx.T+ck45c2*h)
	if err != nil {
		return err
	}
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*(ck45a31*k1[i]+ck45a32*r.k2[i])
	}
	k3, err := ctx.System.Derivatives(r.scratch, ctx.T+ck45c3*h)
	if err != nil {
		return err
	}
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*(ck45a41*k1[i]+ck45a42*r.k2[i]+ck45a43*r.k3[i])
	}
	k4, err := ctx.System.Derivatives(r.scratch, ctx.T+ck45c4*h)
	if err != nil {
		return err
	}
	copy(r.k4, k4)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*(ck45a51*k1[i]+ck45a52*r.k2[i]+ck45a53*r.k3[i]+ck45a54*r.k4[i])
	}
	k5, err := ctx.System.Derivatives(r.scratch, ctx.T+ck45c5*h)
	if err != nil {
		return err
	}
	copy(r.k5, k5)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*(ck45a61*k1[i]+ck45a62*r.k2[i]+ck45a63*r.k3[i]+ck45a64*r.k4[i]+ck45a65*r.k5[i])
	}
	k6, err := ctx.System.Derivatives(r.scratch, ctx.T+ck45c6*h)
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
		ctx.NewX[i] = x[i] + h*(ck45b1*k1[i]+ck45b3*r.k3[i]+ck45b4*r.k4[i]+ck45b6*r.k6[i])
		ctx.ErrX[i] = h * (ck45e1*k1[i] + ck45e3*r.k3[i] + ck45e4*r.k4[i] + ck45e5*r.k5[i] + ck45e6*r.k6[i])
	}
	ctx.NewT = ctx.T + h
	return nil
}
