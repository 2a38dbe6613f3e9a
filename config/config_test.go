package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestDefaultValid checks that defaults pass validation
func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default configuration should be valid: %v", err)
	}
}

// TestLoadExample loads the example configuration shipped with the repository
func TestLoadExample(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "config.example.yml"))
	if err != nil {
		t.Fatalf("Failed to load config.example.yml: %v", err)
	}
	if cfg.MicronsPerPixel != 0.16 || cfg.FramesPerSecond != 30 {
		t.Errorf("Unexpected units: %v um/px, %v fps", cfg.MicronsPerPixel, cfg.FramesPerSecond)
	}
	if cfg.Linking.Algorithm != "hungarian" || cfg.Linking.MinAppearances != 10 {
		t.Errorf("Unexpected linking: %+v", cfg.Linking)
	}
	if cfg.Layout != "tracker" {
		t.Errorf("Unexpected layout: %s", cfg.Layout)
	}
}

// TestPartialOverDefaults checks that missing keys keep their defaults
func TestPartialOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte("microns_per_pixel: 0.2\nlinking:\n  max_displacement: 7\n"))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	def := Default()
	if cfg.MaxInterval != def.MaxInterval {
		t.Errorf("max_interval should default to %d, got %d", def.MaxInterval, cfg.MaxInterval)
	}
	if cfg.Thresholds != def.Thresholds {
		t.Errorf("thresholds should keep defaults, got %+v", cfg.Thresholds)
	}
	if cfg.Linking.Memory != def.Linking.Memory || cfg.Linking.Algorithm != "greedy" {
		t.Errorf("linking should keep defaults, got %+v", cfg.Linking)
	}
	params := cfg.Linking.Params()
	if params.MaxDisplacement != 7 || params.Memory != 3 {
		t.Errorf("Unexpected link params: %+v", params)
	}
}

// TestInvalid checks validation failures
func TestInvalid(t *testing.T) {
	cases := map[string]string{
		"negative scale":     "microns_per_pixel: -1\n",
		"zero fps":           "frames_per_second: 0\n",
		"unknown algorithm":  "linking:\n  algorithm: iou\n",
		"unknown layout":     "layout: columns\n",
		"negative memory":    "linking:\n  memory: -1\n",
		"crossed thresholds": "thresholds:\n  diffusive: 0.3\n  localized: 0.5\n",
		"broken yaml":        "microns_per_pixel: [\n",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("%s: configuration should be rejected", name)
		}
	}
}

// TestMissingFile tests error handling for missing config
func TestMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "config.yml")); err == nil {
		t.Error("Loading non-existent config should return error")
	}
}

// TestWrittenConfig writes defaults as YAML and reads them back
func TestWrittenConfig(t *testing.T) {
	data, err := yaml.Marshal(Default())
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Written config differs: %+v", cfg)
	}
}
