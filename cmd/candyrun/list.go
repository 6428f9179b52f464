package main

import (
	"fmt"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/candy-run/internal/games/candyrun"
	"github.com/vovakirdan/candy-run/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes",
	Long: `Display the registered game modes and their record board IDs.

Example:
  candyrun list`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	fmt.Println("Game modes:")
	fmt.Println()
	for _, g := range games {
		fmt.Printf("  %-16s %s\n", g.ID, g.Title)
	}
	fmt.Println()
	fmt.Println("Use 'candyrun play --now' or 'candyrun play --now --hard' to start one.")
}
