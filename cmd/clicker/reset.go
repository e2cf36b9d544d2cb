package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-clicker/internal/storage"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase a profile's save",
	Long: `Erase all progress of a profile, prestige included.

Examples:
  clicker reset --yes
  clicker reset --profile alice --yes`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "Confirm erasing the save")
}

func runReset(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	if !flagResetYes {
		fmt.Fprintf(os.Stderr, "This erases all progress of profile %q, prestige included.\n", flagProfile)
		fmt.Fprintln(os.Stderr, "Re-run with --yes to confirm.")
		os.Exit(1)
	}

	db, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening saves database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Delete(flagProfile, saveKey(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error erasing save: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Profile %q reset.\n", flagProfile)
}
