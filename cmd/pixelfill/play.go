package main

import (
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pixelfill/internal/platform/tui"
)

var flagTheme string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play in the terminal",
	Long: `Start the terminal front-end. With a level ID or number the game starts
right away; without one the level picker opens.

Controls:
  1-3        - Deploy the front shooter of a lane
  a-g        - Deploy a held shooter (one key per holding slot)
  R          - Play again (after the run ends)
  Esc/B      - Back to the level picker
  ?          - More keys
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - More holding slots and conveyor room
  normal - The standard limits
  hard   - Fewer slots, and foreign cells block the line of sight

Examples:
  pixelfill play
  pixelfill play 01-heart
  pixelfill play 2 --difficulty hard
  pixelfill play --levels ./my-levels --theme mono`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTheme, "theme", "default", "Colour theme: default, mono")
}

func runPlay(_ *cobra.Command, args []string) {
	logger := newLogger("pixelfill")
	cfg := loadConfig()
	cat := loadCatalog(logger)

	var startID string
	if len(args) == 1 {
		startID = resolveLevel(cat, args[0]).ID
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore(cfg, logger, true)

	// The alt screen hides log output; only warnings and errors are kept.
	if !flagDebug {
		logger.SetLevel(log.WarnLevel)
	}

	runErr := tui.RunApp(tui.AppOptions{
		Catalog: cat,
		Rules:   cfg.CoreRules(),
		Gen:     cfg.GenParams(),
		Seed:    flagSeed,
		Player:  playerName(),
		Store:   store,
		Logger:  logger,
		Theme:   tui.ParseTheme(flagTheme),
		StartID: startID,
		Width:   width,
		Height:  height,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

// playerName is the local user's name, stored with every run.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
