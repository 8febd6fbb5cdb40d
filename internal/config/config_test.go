package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := load("", nil)
	if err != nil {
		t.Fatalf("load() failed: %v", err)
	}

	def := Default()
	if cfg.Board.CellSize != def.Board.CellSize || cfg.Sim.FrameRate != def.Sim.FrameRate ||
		cfg.Sim.StepEvery != def.Sim.StepEvery || cfg.Guides.Visible != def.Guides.Visible {
		t.Errorf("embedded default %+v disagrees with Default() %+v", cfg, def)
	}
	if len(cfg.Palette) != 11 {
		t.Errorf("embedded palette has %d colors, expected 11", len(cfg.Palette))
	}
	if len(cfg.Board.Layers) != 7 || cfg.Board.Layers[6] != "markers" {
		t.Errorf("embedded layers = %v", cfg.Board.Layers)
	}
}

func TestCustomPathYAMLAndTOMLAgree(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "c.yaml", `
board:
  cell_size: 8
  grid_lines: false
sim:
  frame_rate: 20
  rule: highlife
palette:
  live: "#ff0000"
`)
	tomlPath := writeFile(t, dir, "c.toml", `
[board]
cell_size = 8
grid_lines = false

[sim]
frame_rate = 20
rule = "highlife"

[palette]
live = "#ff0000"
`)

	fromYAML, err := load(yamlPath, nil)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	fromTOML, err := load(tomlPath, nil)
	if err != nil {
		t.Fatalf("toml: %v", err)
	}
	if diff := cmp.Diff(fromYAML, fromTOML); diff != "" {
		t.Errorf("formats disagree (-yaml +toml):\n%s", diff)
	}

	if fromYAML.Board.CellSize != 8 || fromYAML.Board.GridLines {
		t.Errorf("board = %+v", fromYAML.Board)
	}
	// Unset fields keep their defaults
	if fromYAML.Sim.StepEvery != 6 || !fromYAML.Guides.Visible || fromYAML.Board.MaxDirtyRects != 16 {
		t.Errorf("defaults lost: %+v", fromYAML)
	}
}

func TestCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := load(filepath.Join(dir, "missing.yaml"), nil); err == nil {
		t.Error("missing custom path should fail")
	}
	broken := writeFile(t, dir, "broken.yaml", "board: [")
	if _, err := load(broken, nil); err == nil {
		t.Error("broken custom config should fail")
	}
	odd := writeFile(t, dir, "c.json", "{}")
	if _, err := load(odd, nil); err == nil {
		t.Error("unsupported extension should fail")
	}
}

func TestCandidateOrder(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.yaml", "sim: [")
	good := writeFile(t, dir, "good.yaml", "sim:\n  frame_rate: 12\n")
	later := writeFile(t, dir, "later.yaml", "sim:\n  frame_rate: 99\n")

	cfg, err := load("", []string{filepath.Join(dir, "absent.yaml"), broken, good, later})
	if err != nil {
		t.Fatalf("load() failed: %v", err)
	}
	if cfg.Sim.FrameRate != 12 {
		t.Errorf("FrameRate = %d, expected 12 from the first readable candidate", cfg.Sim.FrameRate)
	}
}

func TestNormalize(t *testing.T) {
	cfg := Config{Sim: SimConfig{FrameRate: -1}}
	cfg.Normalize()

	if cfg.Sim.FrameRate != 30 || cfg.Sim.StepEvery != 6 || cfg.Board.CellSize != 16 || cfg.Board.MaxDirtyRects != 16 {
		t.Errorf("Normalize() = %+v", cfg)
	}
}
