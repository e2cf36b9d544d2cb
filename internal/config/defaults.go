package config

import (
	_ "embed"
)

//go:embed defaults/clicker.yaml
var defaultClickerYAML []byte

// DefaultClickerConfig returns the hard-coded default configuration.
func DefaultClickerConfig() ClickerConfig {
	return ClickerConfig{
		Save: SaveConfig{
			Version:         "1.0.0",
			AutosaveMs:      1000,
			MaxOfflineHours: 24,
		},
		Timing: TimingConfig{
			TickRate: 60,
		},
		Economy: EconomyConfig{
			BaseActionGain: 1,
			CostMultiplier: 1.15,
		},
		Prestige: PrestigeConfig{
			Base:      2,
			Threshold: 1e12,
			Exponent:  0.5,
		},
		RareEvent: RareEventConfig{
			Odds: 512,
		},
		Upgrades: []UpgradeConfig{
			{Title: "Auto Clicker", BaseCost: 15, PassiveRateDelta: 0.1},
			{Title: "Better Mouse", BaseCost: 100, ProductionDelta: 1},
			{Title: "Intern", BaseCost: 1100, PassiveRateDelta: 8},
			{Title: "Ergonomic Keyboard", BaseCost: 12000, ProductionDelta: 25},
			{Title: "Factory", BaseCost: 130000, PassiveRateDelta: 260},
			{Title: "Research Lab", BaseCost: 1.4e6, PassiveRateDelta: 1400},
			{Title: "Portal", BaseCost: 2e7, PassiveRateDelta: 7800},
			{Title: "Time Machine", BaseCost: 3.3e8, PassiveRateDelta: 44000},
			{Title: "Quantum Core", BaseCost: 5.1e9, PassiveRateDelta: 260000},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultClickerYAML
}
