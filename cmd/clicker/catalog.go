package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-clicker/internal/format"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the upgrade catalog",
	Long: `Shows every upgrade in the active config with its base cost and
what one level adds. Pace presets and --config apply.`,
	Args: cobra.NoArgs,
	Run:  runCatalog,
}

func runCatalog(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	model := cfg.Model()

	fmt.Printf("Upgrades (cost x%s per level owned):\n", format.Number(model.CostMultiplier))
	fmt.Println()

	// Calculate column widths
	maxTitleLen := len("Upgrade")
	for _, u := range model.Catalog {
		if len(u.Title) > maxTitleLen {
			maxTitleLen = len(u.Title)
		}
	}

	fmt.Printf("  %-3s  %-*s  %-16s  %-12s  %s\n", "#", maxTitleLen, "Upgrade", "Base cost", "Per click", "Per second")
	fmt.Printf("  %-3s  %-*s  %-16s  %-12s  %s\n", "-", maxTitleLen, "-------", "---------", "---------", "----------")
	for i, u := range model.Catalog {
		fmt.Printf("  %-3d  %-*s  %-16s  %-12s  %s\n",
			i+1, maxTitleLen, u.Title,
			format.Number(u.BaseCost),
			delta(u.ProductionDelta),
			delta(u.PassiveRateDelta),
		)
	}

	fmt.Println()
	fmt.Printf("Ascension unlocks at %s.\n", format.Number(cfg.Prestige.Threshold))
}

func delta(v float64) string {
	if v == 0 {
		return "-"
	}
	return "+" + format.Number(v)
}
