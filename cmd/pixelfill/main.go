// pixelfill is a terminal puzzle game: deploy colour shooters onto a conveyor
// around a pixel picture and fill it layer by layer.
//
// Usage:
//
//	pixelfill levels                     - List available levels
//	pixelfill play [level]               - Play in the terminal
//	pixelfill sim <level>                - Headless auto-deploy run
//	pixelfill replay <level> <script>    - Apply a scripted command run
//	pixelfill best [level]               - Show best runs
//	pixelfill serve                      - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>        - RNG seed for reproducible queues
//	--db <path>           - Database path (default from config)
//	--levels <dir>        - Extra level directory
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - easy, normal or hard
//	--debug               - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed       uint64
	flagDBPath     string
	flagLevelsDir  string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
)

// envDefaults maps persistent flags to environment variables that provide
// their default when the flag is not given.
var envDefaults = map[string]string{
	"db":     "PIXELFILL_DB",
	"config": "PIXELFILL_CONFIG",
	"levels": "PIXELFILL_LEVELS",
}

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pixelfill",
	Short: "PixelFill - fill pixel pictures with conveyor shooters",
	Long: `PixelFill is a terminal puzzle game. Shooters travel a conveyor around a
pixel picture and fill the cells of their colour. Regions unlock once the
regions they depend on are complete. Shooters that finish a lap with ammo
left wait in a small holding zone; overflow it and the run is lost.

Available commands:
  levels   - Show all available levels
  play     - Play in the terminal
  sim      - Run the auto-deploy bot headless
  replay   - Apply a scripted command run
  best     - Show best runs
  serve    - Start SSH server for remote play

Examples:
  pixelfill levels
  pixelfill play 01-heart
  pixelfill sim 1 --runs 20
  pixelfill replay 02-gem ./script.yaml --seed 42
  pixelfill serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		for name, env := range envDefaults {
			v := os.Getenv(env)
			if v == "" || cmd.Flags().Changed(name) {
				continue
			}
			if err := cmd.Flags().Set(name, v); err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(serveCmd)
}
