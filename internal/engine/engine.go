package engine

import (
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/progression"
	"github.com/vovakirdan/tui-clicker/internal/storage"
)

// StateStore persists game state snapshots under a key.
// Load returns storage.ErrNotFound for absent and malformed data alike.
type StateStore interface {
	Load(key string) (core.GameState, error)
	Save(key string, st core.GameState) error
}

// Rules are the engine constants that are not part of the upgrade economy.
type Rules struct {
	TickRate         int           // Fast ticks per second
	AutosaveInterval time.Duration // Slow tick period
	MaxOffline       time.Duration // Cap on idle time credited at startup
	AscendThreshold  float64       // Primary counter at which eligibility becomes positive
	AscendExponent   float64       // Eligibility = (primary/threshold)^exponent
	RareOdds         int           // Rare event chance is 1/RareOdds per action
}

// DefaultRules returns the rules used when none are configured.
func DefaultRules() Rules {
	return Rules{
		TickRate:         60,
		AutosaveInterval: time.Second,
		MaxOffline:       24 * time.Hour,
		AscendThreshold:  1e12,
		AscendExponent:   0.5,
		RareOdds:         512,
	}
}

func (r Rules) tickInterval() time.Duration {
	if r.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(r.TickRate)
}

func (r Rules) autosaveInterval() time.Duration {
	if r.AutosaveInterval <= 0 {
		return time.Second
	}
	return r.AutosaveInterval
}

// Options configure a new Engine. Zero values get defaults.
type Options struct {
	Model   progression.Model
	Rules   Rules
	Store   StateStore // nil disables persistence
	SaveKey string     // defaults to storage.Key("dev")
	Clock   core.Clock // defaults to core.RealClock
	Seed    int64      // seeds the rare-event source when Rand is nil
	Rand    *rand.Rand
	Logger  *log.Logger // defaults to a discarding logger

	// OnAutosave, if set, runs after every slow tick with the fresh display state.
	OnAutosave func(DisplayState)
}

// ActionResult reports the outcome of a manual action.
type ActionResult struct {
	Gain float64
	Rare bool
}

// Engine owns the live game state.
type Engine struct {
	model      progression.Model
	rules      Rules
	store      StateStore
	key        string
	clock      core.Clock
	rng        *rand.Rand
	logger     *log.Logger
	onAutosave func(DisplayState)

	state core.GameState
	rates progression.Rates
	ticks uint64
}

// New creates an engine holding the default state.
// Call Start to load the saved game.
func New(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = core.RealClock{}
	}
	if opts.Rand == nil {
		seed := uint64(opts.Seed)
		opts.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.SaveKey == "" {
		opts.SaveKey = storage.Key("dev")
	}
	if opts.Rules.RareOdds < 1 {
		opts.Rules.RareOdds = 1
	}

	e := &Engine{
		model:      opts.Model,
		rules:      opts.Rules,
		store:      opts.Store,
		key:        opts.SaveKey,
		clock:      opts.Clock,
		rng:        opts.Rand,
		logger:     opts.Logger,
		onAutosave: opts.OnAutosave,
		state:      core.NewGameState(opts.Model.Len()),
	}
	e.rates = e.model.DerivedRates(e.state)
	return e
}

// Start loads the saved state and credits idle time since it was saved.
// Absent, malformed or unreadable saves fall back to the default state.
func (e *Engine) Start() {
	e.state = e.load()
	e.rates = e.model.DerivedRates(e.state)
	e.reconcile()
}

func (e *Engine) load() core.GameState {
	if e.store == nil {
		return core.NewGameState(e.model.Len())
	}

	st, err := e.store.Load(e.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		e.logger.Info("no usable save, starting fresh", "key", e.key)
		return core.NewGameState(e.model.Len())
	case err != nil:
		e.logger.Warn("could not load save, starting fresh", "key", e.key, "error", err)
		return core.NewGameState(e.model.Len())
	}

	st.Normalize(e.model.Len())
	return st
}

// reconcile applies idle accumulation for the time the game was not running.
func (e *Engine) reconcile() {
	if e.state.SavedAt.IsZero() {
		return
	}

	offline := e.clock.Now().Sub(e.state.SavedAt)
	if offline <= 0 {
		return
	}
	if e.rules.MaxOffline > 0 && offline > e.rules.MaxOffline {
		offline = e.rules.MaxOffline
	}

	before := e.state.PrimaryCounter
	e.Tick(offline)
	e.logger.Info("credited offline progress",
		"offline", offline.Round(time.Second),
		"gained", e.state.PrimaryCounter-before,
	)
}

// Tick advances the simulation by elapsed.
// Rates are recomputed before they are consumed, so a tick never uses a
// rate from a previous pass.
func (e *Engine) Tick(elapsed time.Duration) {
	e.rates = e.model.DerivedRates(e.state)
	if elapsed > 0 {
		e.state.AddPrimary(e.rates.PerTick * elapsed.Seconds())
	}
	e.updateEligibility()
	e.ticks++
}

// Step advances the simulation by one nominal fast tick.
func (e *Engine) Step() {
	e.Tick(e.rules.tickInterval())
}

// PerformAction applies one manual action and rolls the rare event once.
func (e *Engine) PerformAction() ActionResult {
	e.rates = e.model.DerivedRates(e.state)
	gain := e.rates.PerAction

	e.state.AddPrimary(gain)
	e.state.AddCounter(core.CounterActions, 1)

	rare := e.rng.IntN(e.rules.RareOdds) == 0
	if rare {
		e.state.AddCounter(core.CounterRare, 1)
	}

	e.updateEligibility()
	return ActionResult{Gain: gain, Rare: rare}
}

// Purchase buys one level of upgrade i.
// A rejection (progression.ErrInsufficientFunds, progression.ErrUnknownUpgrade)
// leaves the state unchanged.
func (e *Engine) Purchase(i int) error {
	next, err := e.model.Purchase(i, e.state)
	if err != nil {
		return err
	}
	e.state = next
	e.rates = e.model.DerivedRates(e.state)
	e.updateEligibility()
	return nil
}

// Eligibility returns the current ascension eligibility.
func (e *Engine) Eligibility() float64 {
	return e.state.Counter(core.CounterEligibility)
}

// CanAscend reports whether Ascend would do anything.
func (e *Engine) CanAscend() bool {
	return e.Eligibility() >= 1
}

// updateEligibility keeps eligibility at zero below the threshold and
// non-decreasing at or above it.
func (e *Engine) updateEligibility() {
	p := e.state.PrimaryCounter
	if math.IsNaN(p) || e.rules.AscendThreshold <= 0 || p < e.rules.AscendThreshold {
		e.state.SetCounter(core.CounterEligibility, 0)
		return
	}

	v := math.Pow(p/e.rules.AscendThreshold, e.rules.AscendExponent)
	if v > e.Eligibility() {
		e.state.SetCounter(core.CounterEligibility, v)
	}
}

// Ascend converts eligibility into prestige and resets the run.
// It is a no-op returning false while eligibility is below 1.
func (e *Engine) Ascend() bool {
	elig := e.Eligibility()
	if elig < 1 {
		return false
	}

	gained := math.Floor(elig)
	e.state.AddCounter(core.CounterPrestige, gained)
	e.state.AddCounter(core.CounterAscensions, 1)
	e.state.PrimaryCounter = 0
	for i := range e.state.OwnedUpgrades {
		e.state.OwnedUpgrades[i] = 0
	}
	e.state.SetCounter(core.CounterEligibility, 0)
	e.rates = e.model.DerivedRates(e.state)

	e.logger.Info("ascended",
		"prestige_gained", gained,
		"prestige", e.state.Counter(core.CounterPrestige),
	)
	return true
}

// Reset discards all progress, prestige included.
func (e *Engine) Reset() {
	e.state = core.NewGameState(e.model.Len())
	e.rates = e.model.DerivedRates(e.state)
	e.ticks = 0
}

// State returns a deep copy of the live state.
func (e *Engine) State() core.GameState {
	return e.state.Clone()
}

// Rates returns the rates computed by the most recent pass.
func (e *Engine) Rates() progression.Rates {
	return e.rates
}

// Ticks returns the number of fast ticks since start or reset.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// Model returns the progression model.
func (e *Engine) Model() progression.Model {
	return e.model
}

// Rules returns the engine rules.
func (e *Engine) Rules() Rules {
	return e.rules
}
