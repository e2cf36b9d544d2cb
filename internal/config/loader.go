package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "clicker.yaml"

// LoadClicker loads the clicker configuration.
// Search order: customPath -> ~/.clicker/configs/clicker.yaml -> ./configs/clicker.yaml -> embedded default
//
// Only a custom path surfaces read or parse errors. Fallback locations that
// fail to parse or validate are skipped.
func LoadClicker(customPath string) (ClickerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ClickerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return ClickerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultClickerYAML)
	if err != nil {
		return DefaultClickerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the hard-coded defaults so omitted fields keep
// their default values, then validates the result.
func parse(data []byte) (ClickerConfig, error) {
	cfg := DefaultClickerConfig()
	cfg.Upgrades = nil // A config that lists upgrades replaces the catalog entirely

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ClickerConfig{}, err
	}
	if len(cfg.Upgrades) == 0 {
		cfg.Upgrades = DefaultClickerConfig().Upgrades
	}
	if err := cfg.Validate(); err != nil {
		return ClickerConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".clicker", "configs", filename)
}
