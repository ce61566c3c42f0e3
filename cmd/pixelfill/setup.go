package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixelfill/internal/config"
	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/levels"
	"github.com/vovakirdan/pixelfill/internal/storage"
)

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger returns a stderr logger honouring --debug.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the config file and applies --difficulty.
func loadConfig() config.PixelFillConfig {
	cfg, err := config.LoadPixelFill(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	config.ApplyPreset(&cfg, preset)
	return cfg
}

// loadCatalog loads builtin and --levels levels. Level files that fail to
// load are reported as warnings.
func loadCatalog(logger *log.Logger) *levels.Catalog {
	cat, err := levels.LoadCatalog(flagLevelsDir)
	if err != nil {
		fail("%v", err)
	}
	for _, skipped := range cat.Skipped {
		logger.Warn("skipped level file", "error", skipped)
	}
	if cat.Len() == 0 {
		fail("no levels found")
	}
	return cat
}

// resolveLevel finds a level by ID or 1-based number.
func resolveLevel(cat *levels.Catalog, ref string) levels.Level {
	lvl, err := cat.Resolve(ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'pixelfill levels' to see available levels.")
		os.Exit(1)
	}
	return lvl
}

// dbPath returns --db, falling back to the config.
func dbPath(cfg config.PixelFillConfig) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.Storage.DBPath
}

// openStore opens the runs database. When optional is set, a failure is
// logged and nil is returned so play can continue without storage.
func openStore(cfg config.PixelFillConfig, logger *log.Logger, optional bool) *storage.Store {
	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		if optional {
			logger.Warn("could not open runs database", "error", err)
			return nil
		}
		fail("opening runs database: %v", err)
	}
	return store
}

// seedFor returns the seed of the i-th run: --seed + i, or time-based.
func seedFor(i int) uint64 {
	if flagSeed == 0 {
		return uint64(time.Now().UnixNano()) + uint64(i)
	}
	return flagSeed + uint64(i)
}
