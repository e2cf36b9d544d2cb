package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-clicker/internal/core"
)

// ErrNotFound is returned by Load when a save is absent or cannot be parsed.
// Callers treat both cases as "no save".
var ErrNotFound = errors.New("storage: save not found")

// Key returns the save key for a save format version.
func Key(version string) string {
	return "gameState-v" + version
}

// Encode serializes a state to its stored JSON form.
func Encode(st core.GameState) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot encode state: %w", err)
	}
	return data, nil
}

// Decode parses a stored payload. Any parse failure maps to ErrNotFound.
func Decode(data []byte) (core.GameState, error) {
	var st core.GameState
	if len(data) == 0 {
		return st, ErrNotFound
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return core.GameState{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return st, nil
}
