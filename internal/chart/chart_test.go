package chart

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/odeint/internal/ode"
	"github.com/san-kum/odeint/internal/sampler"
)

func fixture() *sampler.Trajectory {
	tr := &sampler.Trajectory{
		TVals: []float64{0, 1, 2, 3},
		XVals: [][]float64{{0, 1}, {1, 0}, {0, -1}, {-1, 0}},
	}
	return tr
}

func TestComponent(t *testing.T) {
	series, err := Component(fixture(), 0)
	if err != nil {
		t.Fatalf("Component: %v", err)
	}
	want := []float64{0, 1, 0, -1}
	for i, v := range want {
		if series[i] != v {
			t.Errorf("index %d: expected %v, got %v", i, v, series[i])
		}
	}
}

func TestComponent_OutOfRange(t *testing.T) {
	if _, err := Component(fixture(), 5); !errors.Is(err, ode.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestRender_ProducesNonEmptyChart(t *testing.T) {
	out, err := Render(fixture(), 0, "x0", 40, 10)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "x0") {
		t.Fatalf("expected caption x0 in output, got: %s", out)
	}
}

func TestRenderAll_EmptyTrajectory(t *testing.T) {
	if _, err := RenderAll(&sampler.Trajectory{}, 40, 10); !errors.Is(err, ode.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestRenderAll_OneBlockPerDimension(t *testing.T) {
	out, err := RenderAll(fixture(), 40, 10)
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if !strings.Contains(out, "x0") || !strings.Contains(out, "x1") {
		t.Fatalf("expected captions for both dimensions, got: %s", out)
	}
}
