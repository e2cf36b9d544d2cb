// clicker is a terminal incremental game with idle accumulation.
//
// Usage:
//
//	clicker play             - Play in the terminal
//	clicker serve            - Start SSH server for remote play
//	clicker status           - Show a profile's progress
//	clicker catalog          - List the upgrade catalog
//	clicker reset            - Erase a profile's save
//	clicker idle --for 10m   - Run the game headless
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: from config, 60)
//	--seed <value>     - Set RNG seed for reproducible rare events
//	--db <path>        - Set database path (default: ~/.clicker/saves.db)
//	--config <path>    - Use a custom config YAML
//	--profile <name>   - Save profile (default: local)
//	--pace <preset>    - Economy pace: relaxed, normal, grind
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagProfile string
	flagPace    string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clicker",
	Short: "TUI Clicker - an incremental game for your terminal",
	Long: `TUI Clicker is a terminal incremental game. Click to earn, buy
upgrades that earn for you, and ascend for a permanent multiplier.
Progress keeps accumulating while the game is closed.

Available commands:
  play     - Play in the terminal
  serve    - Start SSH server for remote play
  status   - Show a profile's progress
  catalog  - List the upgrade catalog
  reset    - Erase a profile's save
  idle     - Run the game headless for a while

Examples:
  clicker play
  clicker play --profile alice --pace relaxed
  clicker serve --ssh :2222
  clicker status --all
  clicker idle --for 30m`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.clicker/saves.db", "Path to saves database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom clicker config YAML")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "local", "Save profile")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Economy pace preset: relaxed, normal, grind")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(idleCmd)
}
