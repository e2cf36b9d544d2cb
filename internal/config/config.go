// Package config provides YAML-based configuration loading for the clicker:
// the upgrade catalog, economy constants, timing and save settings.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-clicker/internal/engine"
	"github.com/vovakirdan/tui-clicker/internal/progression"
)

// ClickerConfig contains all configuration for the clicker.
type ClickerConfig struct {
	Save      SaveConfig      `yaml:"save"`
	Timing    TimingConfig    `yaml:"timing"`
	Economy   EconomyConfig   `yaml:"economy"`
	Prestige  PrestigeConfig  `yaml:"prestige"`
	RareEvent RareEventConfig `yaml:"rare_event"`
	Upgrades  []UpgradeConfig `yaml:"upgrades"`
}

// SaveConfig defines persistence parameters.
type SaveConfig struct {
	Version         string  `yaml:"version"`           // Save format version, part of the save key
	AutosaveMs      int     `yaml:"autosave_ms"`       // Slow tick period
	MaxOfflineHours float64 `yaml:"max_offline_hours"` // Cap on idle time credited at startup
}

// TimingConfig defines the fast tick cadence.
type TimingConfig struct {
	TickRate int `yaml:"tick_rate"` // Ticks per second
}

// EconomyConfig defines the cost curve and base manual gain.
type EconomyConfig struct {
	BaseActionGain float64 `yaml:"base_action_gain"`
	CostMultiplier float64 `yaml:"cost_multiplier"` // Must be > 1
}

// PrestigeConfig defines ascension.
type PrestigeConfig struct {
	Base      float64 `yaml:"base"`      // Multiplier = base^prestige
	Threshold float64 `yaml:"threshold"` // Primary counter needed for eligibility
	Exponent  float64 `yaml:"exponent"`  // Eligibility = (primary/threshold)^exponent
}

// RareEventConfig defines the per-action rare roll.
type RareEventConfig struct {
	Odds int `yaml:"odds"` // One in Odds
}

// UpgradeConfig is a single catalog entry.
type UpgradeConfig struct {
	Title            string  `yaml:"title"`
	BaseCost         float64 `yaml:"base_cost"`
	ProductionDelta  float64 `yaml:"production_delta"`
	PassiveRateDelta float64 `yaml:"passive_rate_delta"`
}

// Validate checks the invariants the engine relies on.
func (c ClickerConfig) Validate() error {
	var errs []error
	if c.Save.Version == "" {
		errs = append(errs, errors.New("save.version must be set"))
	}
	if c.Save.AutosaveMs <= 0 {
		errs = append(errs, fmt.Errorf("save.autosave_ms must be positive, got %d", c.Save.AutosaveMs))
	}
	if c.Timing.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_rate must be positive, got %d", c.Timing.TickRate))
	}
	if c.Economy.CostMultiplier <= 1 {
		errs = append(errs, fmt.Errorf("economy.cost_multiplier must be > 1, got %v", c.Economy.CostMultiplier))
	}
	if c.Prestige.Base < 1 {
		errs = append(errs, fmt.Errorf("prestige.base must be >= 1, got %v", c.Prestige.Base))
	}
	if c.Prestige.Threshold <= 0 {
		errs = append(errs, fmt.Errorf("prestige.threshold must be positive, got %v", c.Prestige.Threshold))
	}
	if c.RareEvent.Odds < 1 {
		errs = append(errs, fmt.Errorf("rare_event.odds must be >= 1, got %d", c.RareEvent.Odds))
	}
	if len(c.Upgrades) == 0 {
		errs = append(errs, errors.New("upgrades must not be empty"))
	}
	for i, u := range c.Upgrades {
		if u.BaseCost < 0 {
			errs = append(errs, fmt.Errorf("upgrades[%d] %q: negative base_cost", i, u.Title))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Model converts the economy settings and catalog into a progression model.
func (c ClickerConfig) Model() progression.Model {
	catalog := make([]progression.Upgrade, len(c.Upgrades))
	for i, u := range c.Upgrades {
		catalog[i] = progression.Upgrade{
			Title:            u.Title,
			BaseCost:         u.BaseCost,
			ProductionDelta:  u.ProductionDelta,
			PassiveRateDelta: u.PassiveRateDelta,
		}
	}
	return progression.Model{
		Catalog:        catalog,
		CostMultiplier: c.Economy.CostMultiplier,
		BaseActionGain: c.Economy.BaseActionGain,
		PrestigeBase:   c.Prestige.Base,
	}
}

// Rules converts the timing, prestige and rare-event settings into engine rules.
func (c ClickerConfig) Rules() engine.Rules {
	return engine.Rules{
		TickRate:         c.Timing.TickRate,
		AutosaveInterval: time.Duration(c.Save.AutosaveMs) * time.Millisecond,
		MaxOffline:       time.Duration(c.Save.MaxOfflineHours * float64(time.Hour)),
		AscendThreshold:  c.Prestige.Threshold,
		AscendExponent:   c.Prestige.Exponent,
		RareOdds:         c.RareEvent.Odds,
	}
}
