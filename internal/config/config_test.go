package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate, got %v", err)
	}

	if cfg.Globe.Detail != 12 {
		t.Errorf("Expected detail 12, got %d", cfg.Globe.Detail)
	}
	if cfg.Stars.Count != 7000 || cfg.Stars.Radius != 1000 {
		t.Errorf("Unexpected star defaults: %+v", cfg.Stars)
	}
	if cfg.Camera.Near != 0.1 || cfg.Camera.Far != 2000 {
		t.Errorf("Unexpected clip planes: %+v", cfg.Camera)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Missing config should not fail, got %v", err)
	}
	if cfg.Globe.RotationSpeed != 0.002 {
		t.Errorf("Expected default rotation speed, got %v", cfg.Globe.RotationSpeed)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "globe.yaml")
	data := []byte("stars:\n  count: 10\n  seed: 42\nassets:\n  fallback: noise\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Stars.Count != 10 || cfg.Stars.Seed != 42 {
		t.Errorf("Overrides not applied: %+v", cfg.Stars)
	}
	if cfg.Stars.Radius != 1000 {
		t.Errorf("Unset fields should keep defaults, got radius %v", cfg.Stars.Radius)
	}
	if cfg.Assets.Fallback != FallbackNoise {
		t.Errorf("Expected noise fallback, got %q", cfg.Assets.Fallback)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("stars: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected parse error for malformed YAML")
	}
}

func TestValidateRejectsBadScaleOrdering(t *testing.T) {
	cfg := Default()
	cfg.Globe.CloudScale = 1.02

	if err := cfg.Validate(); err == nil {
		t.Error("Clouds above glow should be rejected")
	}
}

func TestValidateRejectsClipPlanes(t *testing.T) {
	cfg := Default()
	cfg.Camera.Near = 3000

	if err := cfg.Validate(); err == nil {
		t.Error("near >= far should be rejected")
	}
}

func TestValidateRejectsUnknownFallback(t *testing.T) {
	cfg := Default()
	cfg.Assets.Fallback = "checkerboard"

	if err := cfg.Validate(); err == nil {
		t.Error("Unknown fallback should be rejected")
	}
}

func TestValidateRejectsSunAtOrigin(t *testing.T) {
	cfg := Default()
	cfg.Lights.SunPosition = [3]float32{0, 0, 0}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an error for a sun at the origin")
	}

	cfg.Lights.SunPosition = [3]float32{0, 0, 1}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Unexpected error for a sun on +Z: %v", err)
	}
}
