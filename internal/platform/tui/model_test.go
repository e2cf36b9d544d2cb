package tui

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/engine"
	"github.com/vovakirdan/tui-clicker/internal/progression"
	"github.com/vovakirdan/tui-clicker/internal/storage"
)

const testKey = "gameState-vtest"

var testStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type brokenStore struct{}

func (brokenStore) Load(string) (core.GameState, error) { return core.GameState{}, storage.ErrNotFound }
func (brokenStore) Save(string, core.GameState) error { return errors.New("read-only") }

func testCatalog() progression.Model {
	return progression.Model{
		Catalog: []progression.Upgrade{
			{Title: "Cursor", BaseCost: 10, PassiveRateDelta: 1},
			{Title: "Mouse", BaseCost: 100, ProductionDelta: 2},
		},
		CostMultiplier: 1.15,
		BaseActionGain: 1,
		PrestigeBase:   2,
	}
}

func newTestModel(t *testing.T, store engine.StateStore) Model {
	t.Helper()
	rules := engine.DefaultRules()
	rules.RareOdds = 1 << 30
	rules.AscendThreshold = 1000

	eng := engine.New(engine.Options{
		Model:   testCatalog(),
		Rules:   rules,
		Store:   store,
		SaveKey: testKey,
		Clock:   fixedClock{now: testStart},
		Seed:    7,
	})
	eng.Start()

	cfg := core.DefaultConfig()
	cfg.Profile = "tester"
	return NewModel(eng, store, cfg, nil)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func click(t *testing.T, m Model, n int) Model {
	t.Helper()
	for range n {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	return m
}

func TestModelClick(t *testing.T) {
	m := newTestModel(t, storage.NewMemory())

	m = click(t, m, 3)
	if got := m.Display().Primary; got != "3" {
		t.Errorf("Primary = %q after 3 clicks, expected \"3\"", got)
	}
	if got, _ := m.Display().SecondaryValue(core.CounterActions); got != "3" {
		t.Errorf("actions = %q, expected \"3\"", got)
	}
}

func TestModelBuyRejected(t *testing.T) {
	m := newTestModel(t, storage.NewMemory())

	m, _ = send(t, m, runeKey('1'))
	if !strings.Contains(m.Status(), "Need 10 for Cursor") {
		t.Errorf("Status() = %q, expected an insufficient funds message", m.Status())
	}
	if m.Display().Upgrades[0].Owned != 0 {
		t.Error("rejected purchase changed ownership")
	}
}

func TestModelBuyAndReveal(t *testing.T) {
	m := newTestModel(t, storage.NewMemory())
	if len(m.rows) != 1 {
		t.Fatalf("expected 1 visible upgrade initially, got %d", len(m.rows))
	}

	m = click(t, m, 10)
	m, _ = send(t, m, runeKey('1'))
	if m.Status() != "Bought Cursor." {
		t.Errorf("Status() = %q, expected \"Bought Cursor.\"", m.Status())
	}
	if m.Display().Upgrades[0].Owned != 1 || m.Display().Primary != "0" {
		t.Errorf("unexpected display after purchase: %+v", m.Display())
	}
	if len(m.rows) != 2 {
		t.Errorf("owning the first upgrade should reveal the second, got %d rows", len(m.rows))
	}
}

func TestModelCursor(t *testing.T) {
	m := newTestModel(t, storage.NewMemory())

	// Only one row is visible, so the cursor cannot move
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 0 {
		t.Errorf("Cursor() = %d with one row, expected 0", m.Cursor())
	}

	m = click(t, m, 10)
	m, _ = send(t, m, runeKey('1'))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 1 {
		t.Errorf("Cursor() = %d after down, expected 1", m.Cursor())
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 1 {
		t.Errorf("Cursor() = %d past the last row, expected 1", m.Cursor())
	}

	// Buying under the cursor targets the second upgrade
	m, _ = send(t, m, runeKey('b'))
	if !strings.Contains(m.Status(), "Mouse") {
		t.Errorf("Status() = %q, expected the Mouse upgrade", m.Status())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor() != 0 {
		t.Errorf("Cursor() = %d after two ups, expected 0", m.Cursor())
	}
}

func TestModelTickUsesRealElapsed(t *testing.T) {
	mem := storage.NewMemory()
	st := core.NewGameState(2)
	st.OwnedUpgrades[0] = 1
	if err := mem.Save(testKey, st); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, mem)

	m, cmd := send(t, m, TickMsg(testStart))
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	m, _ = send(t, m, TickMsg(testStart.Add(time.Second)))

	// First tick is nominal, the second covers the full second
	want := 1.0/60 + 1
	if got := m.engine.State().PrimaryCounter; math.Abs(got-want) > 1e-6 {
		t.Errorf("PrimaryCounter = %v, expected %v", got, want)
	}
}

func TestModelAscendNotEligible(t *testing.T) {
	m := newTestModel(t, storage.NewMemory())

	m, _ = send(t, m, runeKey('a'))
	if m.Status() != "Not eligible to ascend yet." {
		t.Errorf("Status() = %q", m.Status())
	}
}

func TestModelAscend(t *testing.T) {
	mem := storage.NewMemory()
	st := core.NewGameState(2)
	st.PrimaryCounter = 4000
	mem.Save(testKey, st)
	m := newTestModel(t, mem)

	// Eligibility is computed on the first pass over the loaded state
	m, _ = send(t, m, TickMsg(testStart))
	if !m.Display().CanAscend {
		t.Fatal("expected ascension to be available at 4000")
	}

	m, _ = send(t, m, runeKey('a'))
	if m.Status() != "Ascended! Prestige is now 2." {
		t.Errorf("Status() = %q", m.Status())
	}
	if m.Display().Primary != "0" || m.Display().Multiplier != "x4" {
		t.Errorf("unexpected display after ascending: %+v", m.Display())
	}
}

func TestModelAutosave(t *testing.T) {
	mem := storage.NewMemory()
	m := newTestModel(t, mem)
	m = click(t, m, 5)

	_, cmd := send(t, m, AutosaveMsg(testStart))
	if cmd == nil {
		t.Fatal("autosave returned no command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok || len(batch) != 2 {
		t.Fatalf("expected a batch of save and reschedule, got %T", cmd())
	}

	// Only run the save; the second command waits for the next slow tick
	if msg, ok := batch[0]().(SavedMsg); !ok || msg.Err != nil {
		t.Fatalf("save command returned %+v", msg)
	}
	got, err := mem.Load(testKey)
	if err != nil {
		t.Fatalf("Load() after autosave failed: %v", err)
	}
	if got.PrimaryCounter != 5 || !got.SavedAt.Equal(testStart) {
		t.Errorf("saved %+v, expected primary 5 stamped at %v", got, testStart)
	}
}

func TestModelAutosaveFailureShown(t *testing.T) {
	m := newTestModel(t, brokenStore{})

	m, _ = send(t, m, SavedMsg{Err: errors.New("read-only")})
	if !strings.Contains(m.Status(), "read-only") {
		t.Errorf("Status() = %q, expected the save error", m.Status())
	}
}

func TestModelManualSave(t *testing.T) {
	m := newTestModel(t, brokenStore{})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("manual save returned no command")
	}
	m, _ = send(t, m, cmd())
	if m.Status() != "save failed: read-only" {
		t.Errorf("Status() = %q", m.Status())
	}

	m = newTestModel(t, storage.NewMemory())
	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = send(t, m, cmd())
	if m.Status() != "Saved." {
		t.Errorf("Status() = %q, expected \"Saved.\"", m.Status())
	}
}

func TestModelQuitSaves(t *testing.T) {
	mem := storage.NewMemory()
	m := newTestModel(t, mem)
	m = click(t, m, 2)

	m, cmd := send(t, m, runeKey('q'))
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("q did not quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
	got, err := mem.Load(testKey)
	if err != nil || got.PrimaryCounter != 2 {
		t.Errorf("final save = %+v, %v; expected primary 2", got, err)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, storage.NewMemory())
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	for _, want := range []string{"CLICKER - tester", "Cursor", "1 more upgrades not yet discovered", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m, _ = send(t, m, runeKey('?'))
	if !strings.Contains(m.View(), "save") {
		t.Error("full help should list the save binding")
	}
}

// An autosave captured before quitting but delivered after the final save
// must not roll the save back.
func TestModelQuitSupersedesPendingAutosave(t *testing.T) {
	mem := storage.NewMemory()
	m := newTestModel(t, mem)
	m = click(t, m, 3)

	_, cmd := send(t, m, AutosaveMsg(testStart))
	batch, ok := cmd().(tea.BatchMsg)
	if !ok || len(batch) != 2 {
		t.Fatalf("expected a batch of save and reschedule, got %T", cmd())
	}
	pending := batch[0]

	m = click(t, m, 4)
	if _, quit := send(t, m, runeKey('q')); quit == nil {
		t.Fatal("q did not quit")
	}

	// The stale autosave runs last
	if msg, ok := pending().(SavedMsg); !ok || msg.Err != nil {
		t.Fatalf("pending save returned %+v", msg)
	}

	got, err := mem.Load(testKey)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.PrimaryCounter != 7 {
		t.Errorf("PrimaryCounter = %v, expected the quit save's 7", got.PrimaryCounter)
	}
}
