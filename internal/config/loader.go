package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const configFile = "config.yaml"

// Load loads the runtime configuration.
// Search order: customPath -> ~/.lifeguide/config.yaml -> ./configs/config.yaml -> embedded default
func Load(customPath string) (Config, error) {
	var candidates []string
	if p := userConfigPath(configFile); p != "" {
		candidates = append(candidates, p)
	}
	candidates = append(candidates, filepath.Join("configs", configFile))
	return load(customPath, candidates)
}

func load(customPath string, candidates []string) (Config, error) {
	// An explicit path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data, filepath.Ext(customPath))
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Implicit locations are skipped when missing or broken
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data, filepath.Ext(p)); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultConfigYAML, ".yaml")
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a YAML or TOML configuration, chosen by file extension.
// Fields left out keep their Default values.
func Parse(data []byte, ext string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", ext)
	}
	cfg.Normalize()
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or "" without a home directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lifeguide", filename)
}
