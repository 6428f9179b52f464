package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-run/internal/profile"
)

var skinCmd = &cobra.Command{
	Use:   "skin [name]",
	Short: "Pick an unlocked body color",
	Long: `Change the runner's body color. Without a name, list the unlocked
colors and mark the one in use.

Examples:
  candyrun skin --player S01
  candyrun skin cocoa --player S01`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSkin,
}

var candyCmd = &cobra.Command{
	Use:   "candy [number]",
	Short: "Pick an unlocked candy look",
	Long: `Change how candies look during runs. One look unlocks per candy
level. Without a number, show which looks are unlocked.

Examples:
  candyrun candy --player S01
  candyrun candy 3 --player S01`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCandy,
}

var titleCmd = &cobra.Command{
	Use:   "title [id|none]",
	Short: "Show an unlocked title next to your name",
	Long: `Pick the title shown before the player's name in the lobby, the
game and the records. Without an argument, list every title and how
to earn it.

Examples:
  candyrun title --player S01
  candyrun title survivor --player S01
  candyrun title none --player S01`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTitle,
}

func init() {
	for _, c := range []*cobra.Command{skinCmd, candyCmd, titleCmd} {
		c.Flags().StringVar(&flagPlayer, "player", "", "Player code (empty = guest)")
	}
}

func runSkin(_ *cobra.Command, args []string) {
	store := openStore(true)
	defer store.Close()
	arcade := openArcade(store)
	p := arcade.Profile

	if len(args) == 0 {
		for _, s := range p.UnlockedSkins {
			fmt.Printf("%s %s\n", marker(s == p.Skin), s)
		}
		return
	}
	if err := arcade.SetSkin(strings.ToLower(args[0])); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Skin is now %s\n", p.Skin)
}

func runCandy(_ *cobra.Command, args []string) {
	store := openStore(true)
	defer store.Close()
	arcade := openArcade(store)
	p := arcade.Profile

	if len(args) == 0 {
		fmt.Printf("Using candy #%d, %d of %d unlocked\n", p.CandySkin+1, min(p.CandyLevel, profile.CandySkins), profile.CandySkins)
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: candy must be a number, got %q\n", args[0])
		return
	}
	// Looks are numbered from 1 for players.
	if err := arcade.SetCandySkin(n - 1); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Candy is now #%d\n", n)
}

func runTitle(_ *cobra.Command, args []string) {
	store := openStore(true)
	defer store.Close()
	arcade := openArcade(store)
	p := arcade.Profile

	if len(args) == 0 {
		for _, a := range profile.Achievements {
			state := "locked"
			if p.HasTitle(a.ID) {
				state = "unlocked"
			}
			fmt.Printf("%s %-14s %-14s %-9s %s\n", marker(a.ID == p.ActiveTitle), a.ID, a.Title, state, a.Desc)
		}
		return
	}

	id := strings.ToLower(args[0])
	if id == "none" {
		id = ""
	}
	if err := arcade.SetTitle(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(p.DisplayName())
}

func marker(on bool) string {
	if on {
		return "*"
	}
	return " "
}
