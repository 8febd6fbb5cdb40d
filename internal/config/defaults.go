package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			CellSize:      16,
			GridLines:     true,
			MaxDirtyRects: 16,
		},
		Sim: SimConfig{
			FrameRate: 30,
			StepEvery: 6,
		},
		Guides: GuidesConfig{
			Visible: true,
		},
	}
}
