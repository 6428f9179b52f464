package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagRecordsHard  bool
	flagRecordsLimit int
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show the best runs",
	Long: `Display the best runs across all players. Normal and hard runs are
ranked separately; ties on score go to the longer run.

Examples:
  candyrun records
  candyrun records --hard --limit 20`,
	Args: cobra.NoArgs,
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().BoolVar(&flagRecordsHard, "hard", false, "Show the hard mode board")
	recordsCmd.Flags().IntVar(&flagRecordsLimit, "limit", 10, "Number of runs to show")
}

func runRecords(_ *cobra.Command, _ []string) {
	store := openStore(true)
	defer store.Close()

	runs, err := store.TopRuns(flagRecordsHard, flagRecordsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving records: %v\n", err)
		return
	}

	board := "Normal"
	if flagRecordsHard {
		board = "Hard"
	}
	fmt.Printf("Records - %s\n", board)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'candyrun play' to set the first record!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-6s  %-5s  %s\n", "Rank", "Player", "Score", "Time", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %-5s  %s\n", "----", "------", "-----", "----", "----")

	for i, r := range runs {
		name := r.PlayerName
		if name == "" {
			name = r.PlayerCode
		}
		fmt.Printf("  %-4d  %-16s  %-6d  %-5s  %s\n", i+1, name, r.Score, r.TimeString(), r.At.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.GetRunStats(flagRecordsHard)
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Candies: %d\n",
			stats.Runs, stats.HighScore, stats.AvgScore, stats.TotalCandies)
	}
}
