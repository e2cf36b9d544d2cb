package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/storage"
)

var flagStatusAll bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a profile's progress",
	Long: `Display the saved progress of a profile, including the idle
progress earned since it was last saved. Nothing is written back.

Examples:
  clicker status
  clicker status --profile alice
  clicker status --all`,
	Args: cobra.NoArgs,
	Run:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&flagStatusAll, "all", false, "List every save in the database")
}

func runStatus(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	// Open save storage
	db, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening saves database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if flagStatusAll {
		printSaves(db)
		return
	}

	slot := db.Profile(flagProfile)
	saved, err := slot.Load(saveKey(cfg))
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Printf("No save for profile %q yet.\n", flagProfile)
		fmt.Println()
		fmt.Println("Run 'clicker play' to start one.")
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading save: %v\n", err)
		os.Exit(1)
	}

	// A read-only view of the engine, offline progress included
	eng := newEngine(cfg, slot, nil, nil)
	d := eng.DisplayState()

	fmt.Printf("Profile %s\n", flagProfile)
	if !saved.SavedAt.IsZero() {
		fmt.Printf("Last saved %s\n", humanize.Time(saved.SavedAt))
	}
	fmt.Println()

	fmt.Printf("  %-12s %s\n", "Primary", d.Primary)
	fmt.Printf("  %-12s %s\n", "Per click", d.PerAction)
	fmt.Printf("  %-12s %s\n", "Rate", d.PerTick)
	fmt.Printf("  %-12s %s\n", "Multiplier", d.Multiplier)
	ascend := d.Eligibility
	if d.CanAscend {
		ascend += " (ready)"
	}
	fmt.Printf("  %-12s %s\n", "Ascension", ascend)
	for _, c := range d.Secondary {
		if c.Name == core.CounterEligibility {
			continue
		}
		fmt.Printf("  %-12s %s\n", c.Name, c.Value)
	}

	fmt.Println()
	fmt.Printf("  %-3s  %-22s  %-5s  %s\n", "#", "Upgrade", "Owned", "Next cost")
	fmt.Printf("  %-3s  %-22s  %-5s  %s\n", "-", "-------", "-----", "---------")
	for _, u := range d.Upgrades {
		if !u.Visible {
			continue
		}
		fmt.Printf("  %-3d  %-22s  %-5d  %s\n", u.Index+1, u.Title, u.Owned, u.CostText)
	}
}

// printSaves lists every stored save.
func printSaves(db *storage.Store) {
	saves, err := db.Saves()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing saves: %v\n", err)
		os.Exit(1)
	}

	if len(saves) == 0 {
		fmt.Println("No saves recorded yet.")
		return
	}

	// Calculate column widths
	maxProfileLen := len("Profile")
	for _, s := range saves {
		if len(s.Profile) > maxProfileLen {
			maxProfileLen = len(s.Profile)
		}
	}

	fmt.Printf("  %-*s  %-16s  %-8s  %s\n", maxProfileLen, "Profile", "Key", "Size", "Updated")
	fmt.Printf("  %-*s  %-16s  %-8s  %s\n", maxProfileLen, "-------", "---", "----", "-------")
	for _, s := range saves {
		fmt.Printf("  %-*s  %-16s  %-8s  %s\n",
			maxProfileLen, s.Profile, s.Key, humanize.Bytes(uint64(s.Size)), humanize.Time(s.UpdatedAt))
	}
}
