package analysis

import (
	"math"
	"testing"
)

func TestFFT_ConstantSignalIsAllDC(t *testing.T) {
	data := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	result := FFT(data)
	if real(result[0]) != 8 {
		t.Fatalf("expected DC bin = 8, got %v", real(result[0]))
	}
	for i := 1; i < len(result); i++ {
		if math.Abs(real(result[i])) > 1e-9 || math.Abs(imag(result[i])) > 1e-9 {
			t.Fatalf("expected bin %d to be ~0 for a constant signal, got %v", i, result[i])
		}
	}
}

func TestFFT_SingleSamplePassthrough(t *testing.T) {
	result := FFT([]float64{3.5})
	if len(result) != 1 || result[0] != complex(3.5, 0) {
		t.Fatalf("expected passthrough for length 1, got %v", result)
	}
}

func TestPowerSpectrum_DetectsDominantFrequency(t *testing.T) {
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 4 * float64(i) / float64(n))
	}
	ps := PowerSpectrum(data)
	maxIdx := 0
	for i, v := range ps {
		if v > ps[maxIdx] {
			maxIdx = i
		}
	}
	if maxIdx != 4 {
		t.Fatalf("expected peak at bin 4, got %d", maxIdx)
	}
}

func TestDominantPeriod_ShortSignalReturnsZero(t *testing.T) {
	if got := DominantPeriod([]float64{1, 2}); got != 0 {
		t.Fatalf("expected 0 for a too-short signal, got %v", got)
	}
}
