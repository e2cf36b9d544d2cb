// Package progression implements the upgrade economy: cost curves, purchases,
// derived production rates and progressive disclosure of the catalog.
//
// All functions are pure. A purchase returns a new state and never mutates
// its input.
package progression

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-clicker/internal/core"
)

// ErrInsufficientFunds is matched by every *InsufficientFundsError.
var ErrInsufficientFunds = errors.New("progression: insufficient funds")

// ErrUnknownUpgrade is returned for a catalog index out of range.
var ErrUnknownUpgrade = errors.New("progression: unknown upgrade")

// InsufficientFundsError is the typed rejection of a purchase.
type InsufficientFundsError struct {
	Index int
	Cost  float64
	Have  float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("progression: upgrade %d costs %.0f, have %.2f", e.Index, e.Cost, e.Have)
}

// Is reports ErrInsufficientFunds as a match.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// Upgrade is a static catalog entry.
type Upgrade struct {
	Title            string
	BaseCost         float64
	ProductionDelta  float64 // Added to the per-action gain per owned level
	PassiveRateDelta float64 // Added to the passive per-second gain per owned level
}

// Rates are the production rates derived from a state.
type Rates struct {
	PerAction float64 // Gain of one manual action
	PerTick   float64 // Passive gain over one nominal second
}

// Model holds the catalog and the deployment-wide economy constants.
type Model struct {
	Catalog        []Upgrade
	CostMultiplier float64 // > 1
	BaseActionGain float64 // Per-action gain with no upgrades
	PrestigeBase   float64 // Multiplier base, raised to the prestige count
}

// Len returns the catalog size.
func (m Model) Len() int {
	return len(m.Catalog)
}

// EffectiveCost returns ceil(BaseCost * CostMultiplier^owned) for upgrade i.
// The result is integral but kept as float64 since late-game costs exceed int64.
func (m Model) EffectiveCost(i int, st core.GameState) float64 {
	if i < 0 || i >= len(m.Catalog) {
		return math.Inf(1)
	}
	return math.Ceil(m.Catalog[i].BaseCost * math.Pow(m.CostMultiplier, float64(owned(st, i))))
}

// CanAfford reports whether the primary counter covers the effective cost.
func (m Model) CanAfford(i int, st core.GameState) bool {
	return st.PrimaryCounter >= m.EffectiveCost(i, st)
}

// Purchase buys one level of upgrade i.
// On rejection the returned state is st unchanged.
func (m Model) Purchase(i int, st core.GameState) (core.GameState, error) {
	if i < 0 || i >= len(m.Catalog) {
		return st, fmt.Errorf("%w: index %d", ErrUnknownUpgrade, i)
	}

	cost := m.EffectiveCost(i, st)
	if st.PrimaryCounter < cost {
		return st, &InsufficientFundsError{Index: i, Cost: cost, Have: st.PrimaryCounter}
	}

	next := st.Clone()
	next.Normalize(len(m.Catalog))
	next.PrimaryCounter -= cost
	next.OwnedUpgrades[i]++
	return next, nil
}

// Multiplier returns PrestigeBase^prestige, capped at math.MaxFloat64.
func (m Model) Multiplier(st core.GameState) float64 {
	return core.Saturate(math.Pow(m.PrestigeBase, st.Counter(core.CounterPrestige)))
}

// DerivedRates sums the owned upgrades and scales by the prestige multiplier.
func (m Model) DerivedRates(st core.GameState) Rates {
	perAction := m.BaseActionGain
	var perTick float64
	for i, u := range m.Catalog {
		n := float64(owned(st, i))
		perAction += n * u.ProductionDelta
		perTick += n * u.PassiveRateDelta
	}

	mult := m.Multiplier(st)
	return Rates{
		PerAction: scale(perAction, mult),
		PerTick:   scale(perTick, mult),
	}
}

// scale multiplies a rate by the prestige multiplier. A zero rate stays zero
// whatever the multiplier, and the product never leaves the finite range.
func scale(rate, mult float64) float64 {
	if rate == 0 {
		return 0
	}
	return core.Saturate(rate * mult)
}

// Visible reports whether upgrade i is disclosed to the player.
// The first upgrade is always visible. Any later one needs its predecessor
// owned at least once, or a primary counter above the predecessor's base cost.
func (m Model) Visible(i int, st core.GameState) bool {
	if i < 0 || i >= len(m.Catalog) {
		return false
	}
	if i == 0 {
		return true
	}
	return owned(st, i-1) >= 1 || st.PrimaryCounter > m.Catalog[i-1].BaseCost
}

// Locked reports whether upgrade i is currently unaffordable.
func (m Model) Locked(i int, st core.GameState) bool {
	return !m.CanAfford(i, st)
}

func owned(st core.GameState, i int) int {
	if i < 0 || i >= len(st.OwnedUpgrades) {
		return 0
	}
	return st.OwnedUpgrades[i]
}
