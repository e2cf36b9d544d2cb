package tui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/engine"
	"github.com/vovakirdan/tui-clicker/internal/format"
	"github.com/vovakirdan/tui-clicker/internal/progression"
)

// Model is the Bubble Tea model for playing the clicker.
// It owns the engine for the lifetime of the program; only snapshot
// writes leave the update loop.
type Model struct {
	engine   *engine.Engine
	saver    *saver
	logger   *log.Logger
	config   core.RuntimeConfig
	mapper   *KeyMapper
	help     help.Model
	table    table.Model
	display  engine.DisplayState
	rows     []int // Catalog indices of visible upgrades, in table order
	cursor   int
	status   string
	lastTick time.Time
	quitting bool
}

// NewModel creates a new Bubble Tea model around a started engine.
func NewModel(eng *engine.Engine, store engine.StateStore, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = eng.Rules().TickRate
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		engine: eng,
		saver:  newSaver(store),
		logger: logger,
		config: cfg,
		mapper: NewKeyMapper(DefaultKeyMap()),
		help:   h,
	}
	m.table = newUpgradeTable(cfg.ScreenH)
	m.refresh()
	return m
}

// Init starts the fast and slow tick loops.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.config.TickRate),
		autosaveCmd(m.engine.Rules().AutosaveInterval),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.table = newUpgradeTable(msg.Height)
		m.refresh()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case AutosaveMsg:
		return m, tea.Batch(
			saveCmd(m.saver, m.engine.Key(), m.engine.Snapshot(), autosaved),
			autosaveCmd(m.engine.Rules().AutosaveInterval),
		)

	case SavedMsg:
		if msg.Err != nil {
			m.logger.Error("autosave failed", "key", m.engine.Key(), "error", msg.Err)
			m.status = "save failed: " + msg.Err.Error()
		}
		return m, nil

	case manualSavedMsg:
		if msg.Err != nil {
			m.logger.Error("save failed", "key", m.engine.Key(), "error", msg.Err)
			m.status = "save failed: " + msg.Err.Error()
		} else {
			m.status = "Saved."
		}
		return m, nil
	}

	return m, nil
}

// manualSavedMsg reports a save the player asked for.
type manualSavedMsg SavedMsg

// handleTick advances the engine by the real time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := m.config.TickInterval()
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now

	m.engine.Tick(elapsed)
	m.refresh()
	return m, tickCmd(m.config.TickRate)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, row := m.mapper.MapKey(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		// Blocks on an in-flight write; older pending snapshots are dropped
		if m.saver != nil {
			if err := m.saver.save(m.saver.ticket(), m.engine.Key(), m.engine.Snapshot()); err != nil {
				m.logger.Error("final save failed", "key", m.engine.Key(), "error", err)
			}
		}
		return m, tea.Quit

	case core.ActionClick:
		if res := m.engine.PerformAction(); res.Rare {
			m.status = "Rare find! +1 rare"
		}

	case core.ActionBuy:
		if row < len(m.rows) {
			m.purchase(m.rows[row])
		}

	case core.ActionBuyCursor:
		if m.cursor < len(m.rows) {
			m.purchase(m.rows[m.cursor])
		}

	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case core.ActionDown:
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case core.ActionAscend:
		if m.engine.Ascend() {
			st := m.engine.State()
			m.status = fmt.Sprintf("Ascended! Prestige is now %s.", format.Number(st.Counter(core.CounterPrestige)))
			m.cursor = 0
		} else {
			m.status = "Not eligible to ascend yet."
		}

	case core.ActionSave:
		m.status = "Saving..."
		m.refresh()
		return m, saveCmd(m.saver, m.engine.Key(), m.engine.Snapshot(), manuallySaved)

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

// purchase buys an upgrade and reports a rejection on the status line.
func (m *Model) purchase(i int) {
	err := m.engine.Purchase(i)
	if err == nil {
		m.status = "Bought " + m.engine.Model().Catalog[i].Title + "."
		return
	}

	var funds *progression.InsufficientFundsError
	if errors.As(err, &funds) {
		m.status = fmt.Sprintf("Need %s for %s (have %s).",
			format.Number(funds.Cost), m.engine.Model().Catalog[i].Title, format.Number(funds.Have))
		return
	}
	m.status = err.Error()
}

// refresh rebuilds the cached display state and the upgrade table.
func (m *Model) refresh() {
	m.display = m.engine.DisplayState()

	rows := make([]int, 0, len(m.display.Upgrades))
	for _, u := range m.display.Upgrades {
		if u.Visible {
			rows = append(rows, u.Index)
		}
	}
	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}

	m.table.SetRows(upgradeRows(m.display, m.rows))
	m.table.SetCursor(m.cursor)
}

// Display returns the last rendered display state.
func (m Model) Display() engine.DisplayState {
	return m.display
}

// Status returns the current status line.
func (m Model) Status() string {
	return m.status
}

// Cursor returns the selected table row.
func (m Model) Cursor() int {
	return m.cursor
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given engine.
func Run(eng *engine.Engine, store engine.StateStore, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(eng, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
