package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/engine"
)

// Layout constants
const (
	minTableRows  = 3
	chromeHeight  = 14 // Header, counters, ascension, status and help lines
	titleColWidth = 22
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	primaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	readyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	hiddenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// newUpgradeTable creates the upgrade table sized for the screen height.
func newUpgradeTable(screenH int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Upgrade", Width: titleColWidth},
		{Title: "Owned", Width: 6},
		{Title: "Cost", Width: 16},
		{Title: "", Width: 7},
	}

	height := screenH - chromeHeight
	if height < minTableRows {
		height = minTableRows
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// upgradeRows converts the visible upgrades to table rows.
func upgradeRows(d engine.DisplayState, visible []int) []table.Row {
	rows := make([]table.Row, len(visible))
	for n, i := range visible {
		u := d.Upgrades[i]
		state := "ready"
		if u.Locked {
			state = "locked"
		}
		rows[n] = table.Row{
			strconv.Itoa(n + 1),
			truncate(u.Title, titleColWidth),
			strconv.Itoa(u.Owned),
			u.CostText,
			state,
		}
	}
	return rows
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	d := m.display
	var b strings.Builder

	title := "CLICKER"
	if m.config.Profile != "" {
		title = fmt.Sprintf("CLICKER - %s", m.config.Profile)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.config.ScreenW)))
	b.WriteString("\n\n")

	b.WriteString(primaryStyle.Render(d.Primary))
	b.WriteString("\n")
	b.WriteString(stat("per click", d.PerAction) + "  " + stat("rate", d.PerTick) + "  " + stat("multiplier", d.Multiplier))
	b.WriteString("\n")
	b.WriteString(renderCounters(d))
	b.WriteString("\n\n")

	b.WriteString(panelStyle.Render(m.table.View()))
	b.WriteString("\n")
	if hidden := len(d.Upgrades) - len(m.rows); hidden > 0 {
		b.WriteString(hiddenStyle.Render(fmt.Sprintf("%d more upgrades not yet discovered", hidden)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderAscension(d))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.mapper.Keys())))

	return b.String()
}

// renderCounters renders the secondary counters, skipping the ones shown elsewhere.
func renderCounters(d engine.DisplayState) string {
	parts := make([]string, 0, len(d.Secondary))
	for _, c := range d.Secondary {
		if c.Name == core.CounterEligibility {
			continue
		}
		parts = append(parts, stat(c.Name, c.Value))
	}
	return strings.Join(parts, "  ")
}

func renderAscension(d engine.DisplayState) string {
	line := stat("ascension", d.Eligibility)
	if d.CanAscend {
		line += "  " + readyStyle.Render("ready, press a")
	}
	return line
}

func stat(label, value string) string {
	return labelStyle.Render(label+" ") + valueStyle.Render(value)
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}
