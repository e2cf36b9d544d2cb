package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-clicker/internal/engine"
	"github.com/vovakirdan/tui-clicker/internal/format"
	"github.com/vovakirdan/tui-clicker/internal/storage"
)

var flagIdleFor time.Duration

var idleCmd = &cobra.Command{
	Use:   "idle",
	Short: "Run the game headless for a while",
	Long: `Run the tick engine without a UI, autosaving as it goes, and log
progress at every autosave. Stops after --for or on Ctrl+C, then saves.

Examples:
  clicker idle --for 10m
  clicker idle --for 8h --profile alice --log-file idle.log`,
	Args: cobra.NoArgs,
	Run:  runIdle,
}

func init() {
	idleCmd.Flags().DurationVar(&flagIdleFor, "for", time.Minute, "How long to run")
}

func runIdle(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	logger, closeLog, err := openLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	db, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening saves database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	progress := func(d engine.DisplayState) {
		logger.Info("progress", "primary", d.Primary, "rate", d.PerTick, "ascension", d.Eligibility)
	}
	eng := newEngine(cfg, db.Profile(flagProfile), logger, progress)
	before := eng.State().PrimaryCounter

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, flagIdleFor)
	defer cancel()

	logger.Info("idling", "profile", flagProfile, "for", flagIdleFor, "rate", eng.DisplayState().PerTick)
	if err := eng.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving: %v\n", err)
		os.Exit(1)
	}

	st := eng.State()
	fmt.Printf("Earned %s, now at %s.\n",
		format.Number(st.PrimaryCounter-before), format.Number(st.PrimaryCounter))
}
