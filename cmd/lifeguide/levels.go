package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/lifeguide/internal/config"
	"github.com/vovakirdan/lifeguide/internal/level"
	"github.com/vovakirdan/lifeguide/internal/storage"
)

// loadConfig resolves the runtime configuration for a command.
func loadConfig(ctx context.Context) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	loggerFromContext(ctx).Debug("config loaded", "cell", cfg.Board.CellSize, "rule", cfg.Sim.Rule)
	return cfg, nil
}

// loadLevels reads levels from --levels, the configured directory, or the
// built-in set, resolving brushes against the built-in library overlaid by
// the configured brush file.
func loadLevels(ctx context.Context, cfg config.Config) ([]level.Level, error) {
	logger := loggerFromContext(ctx)

	lib, err := level.BuiltinLibrary()
	if err != nil {
		return nil, err
	}
	if cfg.Board.BrushFile != "" {
		data, err := os.ReadFile(cfg.Board.BrushFile)
		if err != nil {
			return nil, fmt.Errorf("reading brush file: %w", err)
		}
		custom, err := level.LoadLibrary(data, filepath.Ext(cfg.Board.BrushFile))
		if err != nil {
			return nil, err
		}
		lib = lib.Merge(custom)
		logger.Debug("brush file loaded", "path", cfg.Board.BrushFile, "brushes", custom.Len())
	}

	opts := []level.LoaderOption{level.WithLibrary(lib), level.WithLogger(logger)}

	dir := flagLevelsDir
	if dir == "" {
		dir = cfg.Board.LevelsDir
	}
	loader := level.Builtin(opts...)
	if dir != "" {
		loader = level.NewLoader(dir, opts...)
	}

	levels, err := loader.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading levels: %w", err)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no levels found in %q", dir)
	}
	logger.Debug("levels loaded", "count", len(levels))
	return levels, nil
}

// findLevel returns the index of the level with id.
func findLevel(levels []level.Level, id string) (int, error) {
	for i, lvl := range levels {
		if lvl.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q (run 'lifeguide list' to see levels)", id)
}

// openStore opens the results database. Commands that can run without it
// log the failure and continue with a nil store.
func openStore(ctx context.Context) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		loggerFromContext(ctx).Warn("could not open results database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
