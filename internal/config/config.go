// Package config provides YAML and TOML runtime configuration loading for
// lifeguide sessions.
package config

// Config contains all runtime configuration.
type Config struct {
	Board   BoardConfig       `yaml:"board" toml:"board"`
	Palette map[string]string `yaml:"palette" toml:"palette"` // "#rrggbb" per compositor color slot
	Sim     SimConfig         `yaml:"sim" toml:"sim"`
	Guides  GuidesConfig      `yaml:"guides" toml:"guides"`
}

// BoardConfig defines how the board is drawn and where levels come from.
type BoardConfig struct {
	CellSize      int      `yaml:"cell_size" toml:"cell_size"` // pixels per cell for PNG and web frames
	GridLines     bool     `yaml:"grid_lines" toml:"grid_lines"`
	MaxDirtyRects int      `yaml:"max_dirty_rects" toml:"max_dirty_rects"`
	Layers        []string `yaml:"layers" toml:"layers"` // paint order; empty means the default
	LevelsDir     string   `yaml:"levels_dir" toml:"levels_dir"` // empty means builtin levels
	BrushFile     string   `yaml:"brush_file" toml:"brush_file"` // empty means builtin brushes
}

// SimConfig defines automaton pacing.
type SimConfig struct {
	FrameRate int    `yaml:"frame_rate" toml:"frame_rate"`
	StepEvery int    `yaml:"step_every" toml:"step_every"` // frames per generation while running
	Rule      string `yaml:"rule" toml:"rule"`             // overrides the level rule when set
}

// GuidesConfig defines guidance line display.
type GuidesConfig struct {
	Visible bool `yaml:"visible" toml:"visible"`
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	def := Default()
	if c.Board.CellSize <= 0 {
		c.Board.CellSize = def.Board.CellSize
	}
	if c.Board.MaxDirtyRects <= 0 {
		c.Board.MaxDirtyRects = def.Board.MaxDirtyRects
	}
	if c.Sim.FrameRate <= 0 {
		c.Sim.FrameRate = def.Sim.FrameRate
	}
	if c.Sim.StepEvery <= 0 {
		c.Sim.StepEvery = def.Sim.StepEvery
	}
}
