package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/levels"
	"github.com/vovakirdan/pixelfill/internal/platform/tui"
	"github.com/vovakirdan/pixelfill/internal/storage"
)

var (
	flagRuns     int
	flagMaxTicks int
	flagSave     bool
	flagQuiet    bool
)

var simCmd = &cobra.Command{
	Use:   "sim <level>",
	Short: "Run the auto-deploy bot headless",
	Long: `Play a level with the greedy bot: before every tick it deploys the
candidate whose preview lap hits the most cells. Useful for checking that a
level is winnable and for tuning the generator.

Seeds are --seed, --seed+1, ... for each run (time-based without --seed).

Examples:
  pixelfill sim 01-heart
  pixelfill sim 2 --runs 50 --quiet
  pixelfill sim 01-heart --seed 42 --debug`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of runs")
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 20000, "Give up after this many ticks")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Store finished runs in the database as player \"bot\"")
	simCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Do not print the final board")
}

func runSim(_ *cobra.Command, args []string) {
	logger := newLogger("pixelfill-sim")
	cfg := loadConfig()
	cat := loadCatalog(logger)
	lvl := resolveLevel(cat, args[0])

	var store *storage.Store
	if flagSave {
		store = openStore(cfg, logger, false)
		defer store.Close()
	}

	wins := 0
	for i := 0; i < max(flagRuns, 1); i++ {
		seed := seedFor(i)
		session, err := core.NewSession(lvl.Level, cfg.CoreRules(), cfg.GenParams(), core.NewRNG(seed))
		if err != nil {
			fail("level %s: %v", lvl.ID, err)
		}

		st := simulate(session, logger)
		if st.Status == core.StatusWon {
			wins++
		}
		logger.Info("run finished",
			"level", lvl.ID,
			"seed", seed,
			"status", st.Status,
			"deployed", st.Stats.ShootersDeployed,
			"laps", st.Stats.LapsCompleted,
			"ticks", st.Stats.ElapsedTicks,
			"solid", fmt.Sprintf("%d/%d", st.Stats.CellsSolidified, st.Stats.TotalCells),
		)

		if store != nil && !st.IsPlaying() {
			run := tui.RunRecord(st, cat.Index(lvl.ID), "bot", seed)
			if _, err := store.SaveRun(run); err != nil {
				logger.Warn("could not save run", "error", err)
			}
		}
		if !flagQuiet {
			fmt.Print(core.RenderASCII(st))
		}
	}

	if flagRuns > 1 {
		fmt.Printf("%s: %d/%d runs won\n", levelLabel(lvl), wins, flagRuns)
	}
}

// simulate drives one session with the greedy bot, logging tick events at
// debug level.
func simulate(session *core.Session, logger *log.Logger) *core.State {
	graph := session.State().Graph()
	for t := 0; t < flagMaxTicks && session.State().IsPlaying(); t++ {
		session.Run(core.Greedy{}, 1)
		st := session.State()
		if len(st.RecentHits) > 0 {
			logger.Debug("tick",
				"n", st.Stats.ElapsedTicks,
				"hits", len(st.RecentHits),
				"solidified", len(st.RecentSolidified),
				"conveyor", len(st.Conveyor),
				"held", st.Holding.Count(),
			)
		}
		for _, id := range st.RecentExposed {
			logger.Debug("region exposed", "n", st.Stats.ElapsedTicks, "container", graph.Name(id))
		}
	}
	return session.State()
}

func levelLabel(lvl levels.Level) string {
	return fmt.Sprintf("%s (%s)", lvl.Name, lvl.ID)
}
