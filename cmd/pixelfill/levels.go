package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the builtin levels plus any loaded from --levels, with the best
run recorded for each.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	logger := newLogger("pixelfill")
	cfg := loadConfig()
	cat := loadCatalog(logger)
	store := openStore(cfg, logger, true)
	if store != nil {
		defer store.Close()
	}

	all := cat.All()
	maxIDLen := 2 // "ID" header
	for _, lvl := range all {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Println("Available levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-16s  %-5s  %-5s  %-10s  %s\n", "#", maxIDLen, "ID", "Name", "Size", "Cells", "Containers", "Best")
	fmt.Printf("  %-3s  %-*s  %-16s  %-5s  %-5s  %-10s  %s\n", "-", maxIDLen, "--", "----", "----", "-----", "----------", "----")

	for i, lvl := range all {
		best := "-"
		if store != nil {
			if run, err := store.BestRun(lvl.ID); err == nil && run != nil {
				best = fmt.Sprintf("%d shooters", run.ShootersDeployed)
			}
		}
		fmt.Printf("  %-3d  %-*s  %-16s  %-5s  %-5d  %-10d  %s\n",
			i+1, maxIDLen, lvl.ID, lvl.Name,
			fmt.Sprintf("%dx%d", lvl.Size, lvl.Size),
			lvl.TotalCells(), len(lvl.Containers), best)
	}

	if store != nil {
		if h, err := store.HighestLevel(); err == nil && h > 0 {
			fmt.Println()
			fmt.Printf("Highest level cleared: %d\n", h)
		}
	}

	fmt.Println()
	fmt.Println("Run 'pixelfill play <id>' to play a level.")
}
