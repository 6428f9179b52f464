// candyrun is an endless runner for the terminal with per-player profiles,
// a cookie shop and an SSH server for classroom play.
//
// Usage:
//
//	candyrun list             - List game modes
//	candyrun play             - Open the lobby (or --now to start running)
//	candyrun records          - Show the best runs
//	candyrun profile          - Show a player's profile
//	candyrun shop <action>    - Buy upgrades from the command line
//	candyrun equip <slot> <item> - Toggle a cosmetic item
//	candyrun skin|candy|title - Pick a body skin, candy look or title
//	candyrun config <name>    - Print the default runner or economy YAML
//	candyrun serve            - Start SSH server for remote play
//	candyrun reset            - Schedule a global progress reset
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.candyrun/candyrun.db)
//	--config <path>     - Runner config YAML
//	--economy <path>    - Economy config YAML
//	--log-level <level> - debug, info, warn, error
//
// Environment (also read from .env): CANDYRUN_DB, CANDYRUN_CONFIG,
// CANDYRUN_ECONOMY, CANDYRUN_PLAYER.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultDBPath = "~/.candyrun/candyrun.db"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagEconomy  string
	flagLogLevel string
	flagPlayer   string
	logger       *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "candyrun",
	Short: "Candy Run - an endless runner in your terminal",
	Long: `Candy Run is a side-scrolling endless runner. Jump over cacti, slide
under bees, skip the pits and collect candy to spend on upgrades.

Available commands:
  list     - Show the game modes
  play     - Open the lobby and play
  records  - View the best runs
  profile  - Show a player's profile
  shop     - Buy upgrades, gacha rolls and cookie exchanges
  equip    - Toggle cosmetic items
  skin     - Pick an unlocked body color
  candy    - Pick an unlocked candy look
  title    - Show an unlocked title next to your name
  config   - Print the default runner or economy YAML
  serve    - Start SSH server for remote play
  reset    - Schedule a global progress reset

Examples:
  candyrun play --player S01
  candyrun play --now --hard
  candyrun records --hard
  candyrun shop upgrade --player S01
  candyrun serve --ssh :2222`,
	PersistentPreRun: setup,
}

// setup loads .env, applies environment defaults and builds the logger.
func setup(cmd *cobra.Command, _ []string) {
	// A missing .env is normal.
	_ = godotenv.Load()

	flags := cmd.Flags()
	envDefault(flags.Changed("db"), &flagDBPath, "CANDYRUN_DB")
	envDefault(flags.Changed("config"), &flagConfig, "CANDYRUN_CONFIG")
	envDefault(flags.Changed("economy"), &flagEconomy, "CANDYRUN_ECONOMY")
	envDefault(flags.Changed("player"), &flagPlayer, "CANDYRUN_PLAYER")

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "candyrun",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
}

// envDefault fills dst from the environment unless the flag was given.
func envDefault(changed bool, dst *string, key string) {
	if changed {
		return
	}
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to profiles database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagEconomy, "economy", "", "Path to custom economy config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(equipCmd)
	rootCmd.AddCommand(skinCmd)
	rootCmd.AddCommand(candyCmd)
	rootCmd.AddCommand(titleCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
}
