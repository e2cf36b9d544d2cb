package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-clicker/internal/config"
	"github.com/vovakirdan/tui-clicker/internal/engine"
	"github.com/vovakirdan/tui-clicker/internal/storage"
)

// loadConfig loads the clicker config and applies the global flags to it.
func loadConfig() (config.ClickerConfig, error) {
	cfg, err := config.LoadClicker(flagConfig)
	if err != nil {
		return config.ClickerConfig{}, err
	}

	pace, err := config.ParsePacePreset(flagPace)
	if err != nil {
		return config.ClickerConfig{}, err
	}
	config.ApplyPacePreset(&cfg, pace)

	if flagFPS > 0 {
		cfg.Timing.TickRate = flagFPS
	}
	return cfg, nil
}

// mustLoadConfig loads the config or exits.
func mustLoadConfig() config.ClickerConfig {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// saveKey returns the versioned save key for a config.
func saveKey(cfg config.ClickerConfig) string {
	return storage.Key(cfg.Save.Version)
}

// seed returns the --seed value, or a time-based seed when it is 0.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// openLogger returns a logger writing to --log-file, or to fallback when the
// flag is empty. A nil fallback discards logs. The returned func closes the file.
func openLogger(fallback io.Writer) (*log.Logger, func(), error) {
	if flagLogFile == "" {
		if fallback == nil {
			fallback = io.Discard
		}
		return log.NewWithOptions(fallback, log.Options{ReportTimestamp: true, Prefix: "clicker"}), func() {}, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "clicker",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}

// newEngine builds and starts an engine for the current profile.
func newEngine(cfg config.ClickerConfig, store engine.StateStore, logger *log.Logger, onAutosave func(engine.DisplayState)) *engine.Engine {
	eng := engine.New(engine.Options{
		Model:      cfg.Model(),
		Rules:      cfg.Rules(),
		Store:      store,
		SaveKey:    saveKey(cfg),
		Seed:       seed(),
		Logger:     logger,
		OnAutosave: onAutosave,
	})
	eng.Start()
	return eng
}
