// Package analysis provides post-hoc diagnostics over an ode.System:
// chaos detection via Lyapunov exponents, periodicity detection via FFT
// power spectra, 2D phase portraits, and parameter-sweep bifurcation
// diagrams.
//
// Poincare sections are deliberately not provided: a section is an
// event-crossing detector, and this package does no event location.
package analysis
