package analysis

import (
	"testing"

	"github.com/san-kum/odeint/internal/ode"
	"github.com/san-kum/odeint/internal/systems"
)

func TestBifurcationDiagram_OneResultPerParamStep(t *testing.T) {
	sys, _, err := systems.Get("logistic", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	results, err := BifurcationDiagram(sys, &ode.RK4{}, "r", 0.5, 2.0, 4, 0, []float64{0.1}, 0, 0.05, 1.0, 1.0)
	if err != nil {
		t.Fatalf("BifurcationDiagram: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
}

func TestBifurcationDiagram_RestoresOriginalParameters(t *testing.T) {
	sys, _, err := systems.Get("logistic", map[string]float64{"r": 0.75})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := BifurcationDiagram(sys, &ode.RK4{}, "r", 0.1, 1.0, 3, 0, []float64{0.2}, 0, 0.05, 0.5, 0.5); err != nil {
		t.Fatalf("BifurcationDiagram: %v", err)
	}
	if got := sys.Parameters()["r"]; got != 0.75 {
		t.Fatalf("expected original r=0.75 to be restored, got %v", got)
	}
}

func TestBifurcationToASCII_EmptyData(t *testing.T) {
	if out := BifurcationToASCII(nil, 20, 10); out != "" {
		t.Fatalf("expected empty string for nil data, got %q", out)
	}
}

func TestBifurcationToASCII_RendersNonEmpty(t *testing.T) {
	data := []BifurcationPoint{
		{Param: 0.5, Values: []float64{0.1, 0.2}},
		{Param: 1.0, Values: []float64{0.3}},
	}
	out := BifurcationToASCII(data, 20, 10)
	if out == "" {
		t.Fatal("expected non-empty ASCII render")
	}
}
