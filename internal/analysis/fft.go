package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT computes the discrete Fourier transform of a real-valued
// component history via github.com/mjibson/go-dsp/fft.FFTReal, which
// has no power-of-two length restriction.
func FFT(data []float64) []complex128 {
	return fft.FFTReal(data)
}

// PowerSpectrum returns the magnitude of the first half of FFT(data),
// the usable (non-mirrored) band for a real-valued signal.
func PowerSpectrum(data []float64) []float64 {
	spectrum := FFT(data)
	ps := make([]float64, len(spectrum)/2+1)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantPeriod reports the sampling-interval count corresponding to
// the strongest non-DC frequency bin in the power spectrum of a
// uniformly-sampled component history. It returns 0 if data has fewer
// than 4 points.
func DominantPeriod(data []float64) float64 {
	if len(data) < 4 {
		return 0
	}
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}
	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if best == 0 {
		return 0
	}
	return float64(len(data)) / float64(best)
}
