package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/engine"
	"github.com/vovakirdan/tui-clicker/internal/platform/tui"
	"github.com/vovakirdan/tui-clicker/internal/storage"
)

var flagEphemeral bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the clicker in the terminal.

Controls:
  Space/Enter  - Click
  1-9          - Buy the upgrade in that row
  Up/Down, j/k - Move the upgrade cursor
  B            - Buy the upgrade under the cursor
  A            - Ascend (when eligible)
  Ctrl+S       - Save now
  ?            - Toggle full help
  Q/Ctrl+C     - Save and quit

Pace options:
  relaxed - Cheaper upgrades, 12h offline cap
  normal  - Configured economy
  grind   - Steeper upgrades, 48h offline cap

Examples:
  clicker play
  clicker play --profile alice
  clicker play --pace grind
  clicker play --ephemeral
  clicker play --config ./my-clicker.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEphemeral, "ephemeral", false, "Play without reading or writing the saves database")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	logger, closeLog, err := openLogger(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Timing.TickRate,
		Seed:     flagSeed,
		Profile:  flagProfile,
	}

	// Open save storage
	var gameStore engine.StateStore = storage.NewMemory()
	var db *storage.Store
	if !flagEphemeral {
		db, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open saves database: %v\n", err)
			fmt.Fprintln(os.Stderr, "Progress will not be saved.")
			// Continue with in-memory storage - game still works
		} else {
			gameStore = db.Profile(flagProfile)
		}
	}

	eng := newEngine(cfg, gameStore, logger, nil)
	runErr := tui.Run(eng, gameStore, rt, logger)

	// Close store before potential exit
	if db != nil {
		db.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
