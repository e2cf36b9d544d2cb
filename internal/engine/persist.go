package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-clicker/internal/core"
)

// Snapshot returns a deep copy of the state stamped with the current time,
// ready to hand to a store from any goroutine.
func (e *Engine) Snapshot() core.GameState {
	snap := e.state.Clone()
	snap.SavedAt = e.clock.Now()
	return snap
}

// Key returns the save key.
func (e *Engine) Key() string {
	return e.key
}

// Save persists a snapshot and reports failure.
func (e *Engine) Save() error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Save(e.key, e.Snapshot()); err != nil {
		return fmt.Errorf("engine: save %s: %w", e.key, err)
	}
	return nil
}

// Autosave is the slow tick. Failures are logged and never interrupt play.
func (e *Engine) Autosave() {
	if err := e.Save(); err != nil {
		e.logger.Error("autosave failed", "error", err)
	}
	if e.onAutosave != nil {
		e.onAutosave(e.DisplayState())
	}
}
