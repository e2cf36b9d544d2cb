package engine

import (
	"sort"

	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/format"
)

// UpgradeView is the UI-facing view of one catalog entry.
type UpgradeView struct {
	Index    int
	Title    string
	Visible  bool
	Locked   bool
	Cost     float64
	CostText string
	Owned    int
}

// CounterView is one formatted secondary counter.
type CounterView struct {
	Name  string
	Value string
}

// DisplayState is everything a renderer needs, already formatted.
type DisplayState struct {
	Primary     string
	Secondary   []CounterView // Sorted by name
	Upgrades    []UpgradeView
	PerAction   string
	PerTick     string
	Multiplier  string
	Eligibility string
	CanAscend   bool
}

// SecondaryValue returns a formatted secondary counter by name.
func (d DisplayState) SecondaryValue(name string) (string, bool) {
	for _, c := range d.Secondary {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// DisplayState builds the display view of the current state.
func (e *Engine) DisplayState() DisplayState {
	st := e.state

	upgrades := make([]UpgradeView, e.model.Len())
	for i, u := range e.model.Catalog {
		cost := e.model.EffectiveCost(i, st)
		upgrades[i] = UpgradeView{
			Index:    i,
			Title:    u.Title,
			Visible:  e.model.Visible(i, st),
			Locked:   e.model.Locked(i, st),
			Cost:     cost,
			CostText: format.Number(cost),
			Owned:    st.OwnedUpgrades[i],
		}
	}

	names := make([]string, 0, len(st.SecondaryCounters))
	for name := range st.SecondaryCounters {
		names = append(names, name)
	}
	sort.Strings(names)
	secondary := make([]CounterView, 0, len(names))
	for _, name := range names {
		secondary = append(secondary, CounterView{Name: name, Value: format.Number(st.Counter(name))})
	}

	return DisplayState{
		Primary:     format.Number(st.PrimaryCounter),
		Secondary:   secondary,
		Upgrades:    upgrades,
		PerAction:   format.Number(e.rates.PerAction),
		PerTick:     format.Rate(e.rates.PerTick),
		Multiplier:  "x" + format.Number(e.model.Multiplier(st)),
		Eligibility: format.Number(st.Counter(core.CounterEligibility)),
		CanAscend:   e.CanAscend(),
	}
}
