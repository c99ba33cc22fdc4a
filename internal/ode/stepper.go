package ode

// StepContext is the per-step in/out value a Stepper reads and writes.
// The Driver owns cT/cX/cDX and hands the Stepper a context instead of
// itself, keeping the dependency one-way.
type StepContext struct {
	// In: read-only for the duration of Step.
	System *System
	T      float64
	X      []float64 // length n, current state
	DX     []float64 // length n, f(X, T); pre-filled by the Driver
	H      float64   // requested step, sign encodes direction

	// Out: written by Step.
	NewT float64
	NewX []float64 // length n
	ErrX []float64 // length n if Properties().HasErrorEstimate, else nil
}

// Properties describes a Stepper's static shape: how many additional
// derivative evaluations it performs per step (beyond the free base
// evaluation the Driver guarantees is already in DX), and whether it
// produces an embedded error estimate.
type Properties struct {
	Name               string
	DerivativesPerStep int
	HasErrorEstimate   bool
}

// Stepper advances a StepContext's state by ctx.H. A Stepper never
// evaluates f at the base point (ctx.T, ctx.X) — ctx.DX is guaranteed
// pre-filled by the Driver. Stage scratch vectors are owned by the
// Stepper and reused across calls; they must be sized for ctx lazily on
// first use, since n is not known until then.
type Stepper interface {
	Step(ctx *StepContext) error
	Properties() Properties
}
