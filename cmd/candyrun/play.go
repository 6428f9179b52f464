package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/candy-run/internal/audio"
	"github.com/vovakirdan/candy-run/internal/config"
	"github.com/vovakirdan/candy-run/internal/core"
	"github.com/vovakirdan/candy-run/internal/platform/tui"
)

var (
	flagDifficulty string
	flagHard       bool
	flagNow        bool
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the lobby and play",
	Long: `Open the Candy Run lobby for a player. From the lobby you can start a
normal or hard run, visit the shop and browse the records.

Controls:
  Space/Up/W  - Jump (press again in the air to double jump)
  Down/S      - Slide
  P           - Pause
  R           - Restart (after game over)
  B/Esc       - Back to lobby (paused or game over)
  M           - Mute/unmute sound effects
  Ctrl+S      - Save a text screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  normal - Speed and density grow in stages (default)
  hard   - Same, with the hard multiplier guaranteed
  fixed  - No progression, stays at the config's base speed

Examples:
  candyrun play --player S01
  candyrun play --now
  candyrun play --now --hard --sound
  candyrun play --difficulty fixed --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player code (empty = guest)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagHard, "hard", false, "Start a hard run (with --now)")
	playCmd.Flags().BoolVar(&flagNow, "now", false, "Skip the lobby and start running")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
}

func runPlay(_ *cobra.Command, _ []string) {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store := openStore(false)
	arcade := openArcade(store)
	arcade.Preset = flagDifficulty
	if err := arcade.CheckConfig(); err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error loading runner config: %v\n", err)
		os.Exit(1)
	}

	if flagSound {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			arcade.Cues = sm
			defer sm.Cleanup()
		}
	}

	runErr := tui.RunSession(arcade, cfg, flagNow, flagHard)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
