package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/levels"
	"github.com/vovakirdan/pixelfill/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var bestCmd = &cobra.Command{
	Use:   "best [level]",
	Short: "Show best runs",
	Long: `Without a level, show the best run of every level. With a level, show its
top winning runs (fewest shooters deployed first) and play statistics.

Examples:
  pixelfill best
  pixelfill best 01-heart --limit 5
  pixelfill best 02-gem --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBest,
}

func init() {
	bestCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	bestCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the level's runs")
}

func runBest(_ *cobra.Command, args []string) {
	logger := newLogger("pixelfill")
	cfg := loadConfig()
	cat := loadCatalog(logger)
	store := openStore(cfg, logger, false)
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			fail("--clear needs a level")
		}
		printAllBest(cat, store)
		return
	}

	lvl := resolveLevel(cat, args[0])
	if flagClear {
		if err := store.ClearRuns(lvl.ID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared runs for %s\n", levelLabel(lvl))
		return
	}
	printLevelRuns(lvl, store)
}

func printAllBest(cat *levels.Catalog, store *storage.Store) {
	fmt.Println("Best runs")
	fmt.Println()
	fmt.Printf("  %-3s  %-16s  %-8s  %-6s  %-12s  %s\n", "#", "Level", "Shooters", "Ticks", "Player", "Date")
	fmt.Printf("  %-3s  %-16s  %-8s  %-6s  %-12s  %s\n", "-", "-----", "--------", "-----", "------", "----")
	for i, lvl := range cat.All() {
		run, err := store.BestRun(lvl.ID)
		if err != nil {
			fail("%v", err)
		}
		if run == nil {
			fmt.Printf("  %-3d  %-16s  %s\n", i+1, lvl.Name, "-")
			continue
		}
		fmt.Printf("  %-3d  %-16s  %-8d  %-6d  %-12s  %s\n",
			i+1, lvl.Name, run.ShootersDeployed, run.ElapsedTicks, run.Player,
			run.CreatedAt.Format("2006-01-02 15:04"))
	}

	if h, err := store.HighestLevel(); err == nil {
		fmt.Println()
		fmt.Printf("Highest level cleared: %d of %d\n", h, cat.Len())
	}
}

func printLevelRuns(lvl levels.Level, store *storage.Store) {
	runs, err := store.TopRuns(lvl.ID, flagLimit)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Best runs - %s\n", levelLabel(lvl))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No winning runs yet.")
		fmt.Println()
		fmt.Printf("Play 'pixelfill play %s' to set the first record!\n", lvl.ID)
	} else {
		fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-12s  %s\n", "Rank", "Shooters", "Laps", "Ticks", "Player", "Date")
		fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-12s  %s\n", "----", "--------", "----", "-----", "------", "----")
		for i, r := range runs {
			fmt.Printf("  %-4d  %-8d  %-5d  %-6d  %-12s  %s\n",
				i+1, r.ShootersDeployed, r.LapsCompleted, r.ElapsedTicks, r.Player,
				r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	stats, err := store.GetLevelStats(lvl.ID)
	if err != nil {
		fail("%v", err)
	}
	if stats.Plays > 0 {
		fmt.Println()
		fmt.Printf("Played %d times, won %d, last %s\n",
			stats.Plays, stats.Wins, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
