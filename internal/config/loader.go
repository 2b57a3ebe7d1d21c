package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Tuning sources reported by LoadPlumber.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// LoadPlumber loads the tuning and reports where it came from.
// Search order: customPath -> ~/.dr-plumber/configs/plumber.yaml ->
// ./configs/plumber.yaml -> embedded default -> hardcoded default.
// Files are overlaid on the defaults, so they may set only some keys.
// A custom path that cannot be read, parsed or validated is an error;
// broken files on the search path are skipped.
func LoadPlumber(customPath string) (PlumberConfig, string, error) {
	if customPath != "" {
		cfg, err := readPlumber(customPath)
		if err != nil {
			return DefaultPlumberConfig(), "", err
		}
		return cfg, customPath, nil
	}

	for _, path := range []string{userConfigPath("plumber.yaml"), filepath.Join("configs", "plumber.yaml")} {
		if path == "" {
			continue
		}
		if cfg, err := readPlumber(path); err == nil {
			return cfg, path, nil
		}
	}

	cfg := DefaultPlumberConfig()
	if err := yaml.Unmarshal(defaultPlumberYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultPlumberConfig(), SourceBuiltin, nil
	}
	return cfg, SourceEmbedded, nil
}

// readPlumber reads one YAML file over the defaults and validates it.
func readPlumber(path string) (PlumberConfig, error) {
	cfg := DefaultPlumberConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dr-plumber", "configs", filename)
}
