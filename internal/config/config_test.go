package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Export.FrameWidth != 512 {
		t.Errorf("expected frame width 512, got %d", cfg.Export.FrameWidth)
	}
	if cfg.Export.FrameHeight != 512 {
		t.Errorf("expected frame height 512, got %d", cfg.Export.FrameHeight)
	}
	if cfg.Export.Angle != "side" {
		t.Errorf("expected angle 'side', got %s", cfg.Export.Angle)
	}
	if cfg.Export.Padding != 0.2 {
		t.Errorf("expected padding 0.2, got %f", cfg.Export.Padding)
	}
	if cfg.Export.Format != "png" {
		t.Errorf("expected format 'png', got %s", cfg.Export.Format)
	}
	if cfg.Export.Mode != "sheet" {
		t.Errorf("expected mode 'sheet', got %s", cfg.Export.Mode)
	}
	if !cfg.Export.AutoGrid {
		t.Error("expected auto_grid to be true by default")
	}
	if cfg.Export.FrameStep != 1 {
		t.Errorf("expected frame step 1, got %d", cfg.Export.FrameStep)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "spriteforge.yaml")

	yamlContent := `
export:
  frame_width: 256
  frame_height: 128
  angle: "isometric"
  padding: 0.1
  mirror: true
  format: "webp"
  mode: "frames"
  frame_step: 2
  auto_grid: false
  rows: 3
  cols: 5

output:
  dir: "/tmp/sprites"

logging:
  level: "debug"
  log_file: "export.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Export.FrameWidth != 256 {
		t.Errorf("expected frame width 256, got %d", cfg.Export.FrameWidth)
	}
	if cfg.Export.FrameHeight != 128 {
		t.Errorf("expected frame height 128, got %d", cfg.Export.FrameHeight)
	}
	if cfg.Export.Angle != "isometric" {
		t.Errorf("expected angle 'isometric', got %s", cfg.Export.Angle)
	}
	if !cfg.Export.Mirror {
		t.Error("expected mirror to be true")
	}
	if cfg.Export.Format != "webp" {
		t.Errorf("expected format 'webp', got %s", cfg.Export.Format)
	}
	if cfg.Export.AutoGrid {
		t.Error("expected auto_grid to be false")
	}
	if cfg.Export.Rows != 3 || cfg.Export.Cols != 5 {
		t.Errorf("expected manual grid 3x5, got %dx%d", cfg.Export.Rows, cfg.Export.Cols)
	}
	if cfg.Output.Dir != "/tmp/sprites" {
		t.Errorf("expected output dir /tmp/sprites, got %s", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "spriteforge.yaml")

	if err := os.WriteFile(configPath, []byte("export:\n  angle: \"front\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Export.Angle != "front" {
		t.Errorf("expected angle 'front', got %s", cfg.Export.Angle)
	}
	if cfg.Export.FrameWidth != 512 {
		t.Errorf("partial file should keep default width 512, got %d", cfg.Export.FrameWidth)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Export.Angle = "front"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if loaded.Export.Angle != "front" {
		t.Errorf("round-trip lost angle, got %s", loaded.Export.Angle)
	}
}
