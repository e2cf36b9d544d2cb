package engine

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/storage"
)

type failingStore struct {
	loadErr error
	saveErr error
	saves   int
}

func (f *failingStore) Load(string) (core.GameState, error) {
	return core.GameState{}, f.loadErr
}

func (f *failingStore) Save(string, core.GameState) error {
	f.saves++
	return f.saveErr
}

func TestStartLoadsSave(t *testing.T) {
	mem := storage.NewMemory()
	key := storage.Key("1.0.0")

	saved := core.NewGameState(1) // short: catalog has 2 entries
	saved.PrimaryCounter = 42
	saved.OwnedUpgrades[0] = 3
	saved.SetCounter(core.CounterPrestige, 1)
	if err := mem.Save(key, saved); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	e := newTestEngine(t, Options{Store: mem, SaveKey: key})
	st := e.State()

	if st.PrimaryCounter != 42 {
		t.Errorf("PrimaryCounter = %v, expected 42", st.PrimaryCounter)
	}
	if len(st.OwnedUpgrades) != 2 || st.OwnedUpgrades[0] != 3 || st.OwnedUpgrades[1] != 0 {
		t.Errorf("OwnedUpgrades = %v, expected [3 0]", st.OwnedUpgrades)
	}
	// Rates reflect the loaded state, prestige included
	if e.Rates().PerTick != 6 {
		t.Errorf("PerTick = %v, expected 6", e.Rates().PerTick)
	}
}

func TestStartMalformedFallsBack(t *testing.T) {
	mem := storage.NewMemory()
	key := storage.Key("1.0.0")
	mem.SetRaw(key, []byte(`{"primaryCounter": 9000, "owned`))

	e := newTestEngine(t, Options{Store: mem, SaveKey: key})
	st := e.State()
	if st.PrimaryCounter != 0 {
		t.Errorf("PrimaryCounter = %v, expected default 0", st.PrimaryCounter)
	}
	if len(st.OwnedUpgrades) != 2 {
		t.Errorf("len(OwnedUpgrades) = %d, expected 2", len(st.OwnedUpgrades))
	}
}

func TestStartStoreErrorFallsBack(t *testing.T) {
	var buf bytes.Buffer
	fs := &failingStore{loadErr: errors.New("disk on fire")}

	e := newTestEngine(t, Options{Store: fs, Logger: log.New(&buf)})
	if e.State().PrimaryCounter != 0 {
		t.Error("engine should start from defaults when the store fails")
	}
	if !strings.Contains(buf.String(), "disk on fire") {
		t.Errorf("load failure should be logged, got %q", buf.String())
	}
}

func TestStartCreditsOfflineTime(t *testing.T) {
	mem := storage.NewMemory()
	key := storage.Key("1.0.0")
	clk := newFakeClock(testStart)

	saved := core.NewGameState(2)
	saved.OwnedUpgrades[0] = 2 // 2 per second
	saved.SavedAt = testStart.Add(-10 * time.Minute)
	mem.Save(key, saved)

	e := newTestEngine(t, Options{Store: mem, SaveKey: key, Clock: clk})
	if got := e.State().PrimaryCounter; math.Abs(got-1200) > 1e-6 {
		t.Errorf("PrimaryCounter = %v, expected 1200 from 10 offline minutes", got)
	}
}

func TestStartCapsOfflineTime(t *testing.T) {
	mem := storage.NewMemory()
	key := storage.Key("1.0.0")

	saved := core.NewGameState(2)
	saved.OwnedUpgrades[0] = 1
	saved.SavedAt = testStart.Add(-72 * time.Hour)
	mem.Save(key, saved)

	rules := testRules()
	rules.MaxOffline = time.Hour
	e := newTestEngine(t, Options{Store: mem, SaveKey: key, Rules: rules})

	if got := e.State().PrimaryCounter; math.Abs(got-3600) > 1e-6 {
		t.Errorf("PrimaryCounter = %v, expected 3600 with a one hour cap", got)
	}
}

func TestStartIgnoresFutureSave(t *testing.T) {
	mem := storage.NewMemory()
	key := storage.Key("1.0.0")

	saved := core.NewGameState(2)
	saved.OwnedUpgrades[0] = 1
	saved.SavedAt = testStart.Add(time.Hour)
	mem.Save(key, saved)

	e := newTestEngine(t, Options{Store: mem, SaveKey: key})
	if got := e.State().PrimaryCounter; got != 0 {
		t.Errorf("PrimaryCounter = %v, expected 0 for a save from the future", got)
	}
}

func TestAutosaveWritesSnapshot(t *testing.T) {
	mem := storage.NewMemory()
	key := storage.Key("1.0.0")
	clk := newFakeClock(testStart)

	e := newTestEngine(t, Options{Store: mem, SaveKey: key, Clock: clk})
	e.PerformAction()
	clk.Advance(5 * time.Second)
	e.Autosave()

	got, err := mem.Load(key)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.PrimaryCounter != 1 {
		t.Errorf("saved PrimaryCounter = %v, expected 1", got.PrimaryCounter)
	}
	if !got.SavedAt.Equal(testStart.Add(5 * time.Second)) {
		t.Errorf("SavedAt = %v, expected %v", got.SavedAt, testStart.Add(5*time.Second))
	}

	// Live state is not stamped
	if !e.State().SavedAt.IsZero() {
		t.Error("Snapshot should not stamp the live state")
	}
}

func TestAutosaveFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	fs := &failingStore{loadErr: storage.ErrNotFound, saveErr: errors.New("read-only")}
	var hooked int

	e := newTestEngine(t, Options{
		Store:      fs,
		Logger:     log.New(&buf),
		OnAutosave: func(DisplayState) { hooked++ },
	})
	e.Autosave()

	if fs.saves != 1 {
		t.Errorf("saves = %d, expected 1", fs.saves)
	}
	if !strings.Contains(buf.String(), "autosave failed") {
		t.Errorf("autosave failure should be logged, got %q", buf.String())
	}
	if hooked != 1 {
		t.Errorf("OnAutosave ran %d times, expected 1", hooked)
	}

	if err := e.Save(); err == nil {
		t.Error("Save() should report the store error")
	}
}

func TestSaveWithoutStore(t *testing.T) {
	e := newTestEngine(t, Options{})
	if err := e.Save(); err != nil {
		t.Errorf("Save() without store = %v, expected nil", err)
	}
	e.Autosave() // must not panic
}

func TestRunSavesOnCancel(t *testing.T) {
	mem := storage.NewMemory()
	key := storage.Key("1.0.0")

	rules := testRules()
	rules.TickRate = 1000
	rules.AutosaveInterval = 5 * time.Millisecond

	e := newTestEngine(t, Options{Store: mem, SaveKey: key, Rules: rules, Clock: core.RealClock{}})
	e.state.OwnedUpgrades[0] = 100

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := e.Run(ctx); err != nil {
		t.Fatalf("Run() = %v, expected nil", err)
	}

	if e.Ticks() == 0 {
		t.Error("Run() should have ticked")
	}
	if e.State().PrimaryCounter <= 0 {
		t.Error("Run() should accumulate idle gain")
	}

	got, err := mem.Load(key)
	if err != nil {
		t.Fatalf("Load() after Run failed: %v", err)
	}
	if got.PrimaryCounter != e.State().PrimaryCounter {
		t.Errorf("final save PrimaryCounter = %v, live %v", got.PrimaryCounter, e.State().PrimaryCounter)
	}
}
