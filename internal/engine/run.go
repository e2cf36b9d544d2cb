package engine

import (
	"context"
	"time"
)

// Run drives the engine headlessly until ctx is done.
// Both clocks are serviced from this goroutine, so the state has a single
// writer. On cancellation both tickers stop and a final save is attempted.
func (e *Engine) Run(ctx context.Context) error {
	fast := time.NewTicker(e.rules.tickInterval())
	defer fast.Stop()
	slow := time.NewTicker(e.rules.autosaveInterval())
	defer slow.Stop()

	e.logger.Debug("engine running",
		"tick_rate", e.rules.TickRate,
		"autosave", e.rules.autosaveInterval(),
	)

	last := e.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return e.Save()
		case <-fast.C:
			// Real elapsed time, since the host may deliver ticks late
			now := e.clock.Now()
			e.Tick(now.Sub(last))
			last = now
		case <-slow.C:
			e.Autosave()
		}
	}
}
