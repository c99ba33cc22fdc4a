package analysis

import (
	"testing"

	"github.com/san-kum/odeint/internal/ode"
	"github.com/san-kum/odeint/internal/systems"
)

func TestGeneratePhasePortrait_HarmonicOrbit(t *testing.T) {
	sys, _, err := systems.Get("harmonic", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	portrait, err := GeneratePhasePortrait(sys, &ode.RK4{}, []float64{1.0, 0.0}, 0, 1, 0, 0.01, 1.0)
	if err != nil {
		t.Fatalf("GeneratePhasePortrait: %v", err)
	}
	if portrait == nil || len(portrait.Points) == 0 {
		t.Fatal("expected a non-empty portrait")
	}
}

func TestGeneratePhasePortrait_IndexOutOfRange(t *testing.T) {
	sys, _, err := systems.Get("decay", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	portrait, err := GeneratePhasePortrait(sys, &ode.RK4{}, []float64{1.0}, 0, 5, 0, 0.01, 1.0)
	if err != nil {
		t.Fatalf("GeneratePhasePortrait: %v", err)
	}
	if portrait != nil {
		t.Fatalf("expected nil for an out-of-range index, got %v", portrait)
	}
}

func TestPhasePortraitToASCII_RendersNonEmpty(t *testing.T) {
	portrait := &PhasePortrait2D{Points: []struct{ X, Y float64 }{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: -1, Y: 1}}}
	out := PhasePortraitToASCII(portrait, 20, 10)
	if out == "" {
		t.Fatal("expected non-empty ASCII render")
	}
}

func TestPhasePortraitToASCII_EmptyPortrait(t *testing.T) {
	if out := PhasePortraitToASCII(&PhasePortrait2D{}, 20, 10); out != "" {
		t.Fatalf("expected empty string for an empty portrait, got %q", out)
	}
}
