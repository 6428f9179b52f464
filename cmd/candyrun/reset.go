package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagResetYes  bool
	flagResetRuns bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Schedule a global progress reset",
	Long: `Mark every profile for a progress reset. Each player is reset the next
time their profile is opened: upgrades, candies, cosmetics and stats go
back to the start, while the cookie wallet and identity are kept.
Recorded runs are kept unless --runs is given.

Examples:
  candyrun reset --yes
  candyrun reset --yes --runs`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "Confirm the reset")
	resetCmd.Flags().BoolVar(&flagResetRuns, "runs", false, "Also clear both records boards")
}

func runReset(_ *cobra.Command, _ []string) {
	if !flagResetYes {
		fmt.Fprintln(os.Stderr, "This resets every player's progress. Re-run with --yes to confirm.")
		os.Exit(1)
	}

	store := openStore(true)
	defer store.Close()

	ts := time.Now().Unix()
	if err := store.SetGlobalReset(ts); err != nil {
		fmt.Fprintf(os.Stderr, "Error scheduling reset: %v\n", err)
		os.Exit(1)
	}
	if flagResetRuns {
		for _, hard := range []bool{false, true} {
			if err := store.ClearRuns(hard); err != nil {
				fmt.Fprintf(os.Stderr, "Error clearing records: %v\n", err)
				os.Exit(1)
			}
		}
	}
	logger.Info("global reset scheduled", "at", time.Unix(ts, 0).Format(time.RFC3339))
	fmt.Println("Reset scheduled. Players are reset on their next login.")
}
