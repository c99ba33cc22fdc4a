package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.System != "decay" {
		t.Errorf("expected system decay, got %s", cfg.System)
	}
	if cfg.Tuning.StepSize <= 0 {
		t.Error("step size should be positive")
	}
	if cfg.Tuning.Tolerance <= 0 {
		t.Error("tolerance should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("decay", "fast")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Parameters["k"] != 5.0 {
		t.Errorf("expected k=5.0, got %f", cfg.Parameters["k"])
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("decay", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "fast"); cfg != nil {
		t.Error("expected nil for nonexistent system")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("decay")
	if len(presets) == 0 {
		t.Error("expected presets for decay")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent system")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	cfg := GetPreset("vanderpol", "relaxation")
	if cfg == nil {
		t.Fatal("expected preset")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.System != cfg.System || loaded.Stepper != cfg.Stepper {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", loaded, cfg)
	}
	if loaded.Parameters["mu"] != cfg.Parameters["mu"] {
		t.Fatalf("expected mu=%v, got %v", cfg.Parameters["mu"], loaded.Parameters["mu"])
	}
}

func TestLoad_PartialFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(path, []byte("system: logistic\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.System != "logistic" {
		t.Fatalf("expected overridden system logistic, got %s", cfg.System)
	}
	if cfg.Tuning.Tolerance != DefaultTolerance {
		t.Fatalf("expected default tolerance to survive a partial file, got %v", cfg.Tuning.Tolerance)
	}
}
