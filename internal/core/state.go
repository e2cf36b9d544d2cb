package core

import (
	"math"
	"time"
)

// Well-known secondary counter names.
const (
	CounterPrestige    = "prestige"    // Prestige currency, never reset by ascension
	CounterRare        = "rare"        // Rare events rolled on manual actions
	CounterEligibility = "eligibility" // Ascension eligibility, see engine
	CounterAscensions  = "ascensions"  // Completed ascensions
	CounterActions     = "actions"     // Lifetime manual actions
)

// GameState is the persisted game record.
// OwnedUpgrades is index-aligned with the upgrade catalog.
type GameState struct {
	PrimaryCounter    float64            `json:"primaryCounter"`
	SecondaryCounters map[string]float64 `json:"secondaryCounters"`
	OwnedUpgrades     []int              `json:"ownedUpgrades"`
	SavedAt           time.Time          `json:"savedAt,omitzero"`
}

// NewGameState returns the all-zero default state for a catalog of n upgrades.
func NewGameState(n int) GameState {
	return GameState{
		SecondaryCounters: make(map[string]float64),
		OwnedUpgrades:     make([]int, n),
	}
}

// Normalize enforces the state invariants against a catalog of n upgrades.
// Short upgrade arrays are padded with zero, long ones truncated, and
// non-finite or negative values become zero.
func (s *GameState) Normalize(n int) {
	s.PrimaryCounter = sanitize(s.PrimaryCounter)

	if s.SecondaryCounters == nil {
		s.SecondaryCounters = make(map[string]float64)
	}
	for name, v := range s.SecondaryCounters {
		s.SecondaryCounters[name] = sanitize(v)
	}

	switch {
	case len(s.OwnedUpgrades) < n:
		padded := make([]int, n)
		copy(padded, s.OwnedUpgrades)
		s.OwnedUpgrades = padded
	case len(s.OwnedUpgrades) > n:
		s.OwnedUpgrades = s.OwnedUpgrades[:n]
	}
	for i, owned := range s.OwnedUpgrades {
		if owned < 0 {
			s.OwnedUpgrades[i] = 0
		}
	}
}

// Clone returns a deep copy that shares no memory with s.
func (s GameState) Clone() GameState {
	c := s
	c.SecondaryCounters = make(map[string]float64, len(s.SecondaryCounters))
	for name, v := range s.SecondaryCounters {
		c.SecondaryCounters[name] = v
	}
	c.OwnedUpgrades = append([]int(nil), s.OwnedUpgrades...)
	if c.OwnedUpgrades == nil {
		c.OwnedUpgrades = []int{}
	}
	return c
}

// Counter returns a secondary counter, or 0 if it was never set.
func (s GameState) Counter(name string) float64 {
	return s.SecondaryCounters[name]
}

// SetCounter sets a secondary counter.
func (s *GameState) SetCounter(name string, v float64) {
	if s.SecondaryCounters == nil {
		s.SecondaryCounters = make(map[string]float64)
	}
	s.SecondaryCounters[name] = v
}

// AddCounter increments a secondary counter by delta, saturating at the
// largest finite float64.
func (s *GameState) AddCounter(name string, delta float64) {
	s.SetCounter(name, Saturate(s.Counter(name)+delta))
}

// AddPrimary increments the primary counter by delta, saturating at the
// largest finite float64.
func (s *GameState) AddPrimary(delta float64) {
	s.PrimaryCounter = Saturate(s.PrimaryCounter + delta)
}

// Saturate keeps v finite: infinities clamp to ±math.MaxFloat64 and NaN
// becomes 0. Saves cannot encode non-finite values.
func Saturate(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxFloat64:
		return math.MaxFloat64
	case v < -math.MaxFloat64:
		return -math.MaxFloat64
	}
	return v
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
