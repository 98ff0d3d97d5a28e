package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Method != "rk4" {
		t.Errorf("expected method rk4, got %s", cfg.Method)
	}
	if cfg.Dx0 <= 0 {
		t.Error("dx0 should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dx0 = -0.1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative dx0")
	}

	cfg = DefaultConfig()
	cfg.Xend = cfg.X0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty span")
	}

	// An explicit grid makes dx0 and the span irrelevant.
	cfg = DefaultConfig()
	cfg.Dx0 = 0
	cfg.Grid = []float64{0, 0.5, 1}
	if err := cfg.Validate(); err != nil {
		t.Errorf("grid config should validate: %v", err)
	}
}

func TestStepperOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Options = map[string]float64{"banded": 1}

	opts := cfg.StepperOptions(true)
	if opts["tol_iter"] != cfg.TolIter {
		t.Errorf("expected tol_iter %g, got %g", cfg.TolIter, opts["tol_iter"])
	}
	if opts["banded"] != 1 {
		t.Error("passthrough option lost")
	}

	opts = cfg.StepperOptions(false)
	if _, ok := opts["tol_iter"]; ok {
		t.Error("tol_iter should not be set for methods that do not recognize it")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	cfg := DefaultConfig()
	cfg.Method = "bdf2"
	cfg.Problem = "vanderpol"
	cfg.Grid = []float64{0, 0.1, 0.3}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Method != "bdf2" || loaded.Problem != "vanderpol" {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if len(loaded.Grid) != 3 || loaded.Grid[2] != 0.3 {
		t.Errorf("round trip lost grid: %v", loaded.Grid)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(os.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("decay", "coarse")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Method != "rk4" {
		t.Errorf("expected rk4, got %s", cfg.Method)
	}
	if cfg.TolIter != DefaultTolIter {
		t.Error("preset should have Newton defaults filled in")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("decay", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "coarse") != nil {
		t.Error("expected nil for nonexistent problem")
	}
}

func TestListPresets(t *testing.T) {
	if len(ListPresets("decay")) == 0 {
		t.Error("expected presets for decay")
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent problem")
	}
}
