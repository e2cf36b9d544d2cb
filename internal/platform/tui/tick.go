// Package tui provides the Bubble Tea integration for the clicker.
// It handles the terminal UI loop, input mapping and autosave scheduling.
package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/engine"
)

// TickMsg is sent to trigger a fast simulation tick.
type TickMsg time.Time

// AutosaveMsg is sent to trigger the slow tick.
type AutosaveMsg time.Time

// SavedMsg reports the outcome of a snapshot write.
type SavedMsg struct {
	Err error
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := core.RuntimeConfig{TickRate: tickRate}.TickInterval()
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// autosaveCmd schedules the next slow tick.
func autosaveCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = time.Second
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return AutosaveMsg(t)
	})
}

// saver serializes snapshot writes. Each snapshot takes a generation when it
// is captured; a write older than the last one attempted is dropped, so a
// slow autosave can never overwrite a newer save.
type saver struct {
	store engine.StateStore

	mu      sync.Mutex
	next    uint64 // Generation of the next snapshot
	written uint64 // Generation of the last write attempted
}

func newSaver(store engine.StateStore) *saver {
	if store == nil {
		return nil
	}
	return &saver{store: store}
}

// ticket reserves the generation for a snapshot taken now.
func (s *saver) ticket() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

// save writes snap unless a newer snapshot was already written. It blocks
// while another write is in flight.
func (s *saver) save(gen uint64, key string, snap core.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.written {
		return nil
	}
	s.written = gen
	return s.store.Save(key, snap)
}

// saveCmd writes a snapshot off the update loop. The snapshot is a deep
// copy, so the live state is never shared with the writer.
func saveCmd(sv *saver, key string, snap core.GameState, done func(error) tea.Msg) tea.Cmd {
	if sv == nil {
		return nil
	}
	gen := sv.ticket()
	return func() tea.Msg {
		return done(sv.save(gen, key, snap))
	}
}

func autosaved(err error) tea.Msg { return SavedMsg{Err: err} }

func manuallySaved(err error) tea.Msg { return manualSavedMsg{Err: err} }
