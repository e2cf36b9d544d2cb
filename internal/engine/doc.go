// Package engine contains the tick engine that owns the live game state.
//
// An Engine is an explicit context object: it holds the state, the
// progression model, the store and the random source, and every operation
// goes through it. It is not safe for concurrent use; exactly one goroutine
// (the Bubble Tea update loop or Run's select loop) drives it.
//
// Two clocks drive the engine:
//
//	fast tick (Tick)     recompute rates, accumulate idle gain, update eligibility
//	slow tick (Autosave) snapshot and persist
//
// Tick takes an explicit elapsed duration, so tests drive it without
// wall-clock waits.
package engine
