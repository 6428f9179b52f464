package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-run/internal/profile"
)

var (
	flagProfileTx  int
	flagProfileAll bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show a player's profile",
	Long: `Print a player's wallet, upgrades, cosmetics, titles and recent
transactions. The profile is created on first use.

Examples:
  candyrun profile --player S01
  candyrun profile --player S01 --tx 20
  candyrun profile --all`,
	Args: cobra.NoArgs,
	Run:  runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&flagPlayer, "player", "", "Player code (empty = guest)")
	profileCmd.Flags().IntVar(&flagProfileTx, "tx", 5, "Number of recent runs and transactions to show")
	profileCmd.Flags().BoolVar(&flagProfileAll, "all", false, "List every player code instead")
}

func runProfile(_ *cobra.Command, _ []string) {
	store := openStore(true)
	defer store.Close()

	if flagProfileAll {
		codes, err := store.ProfileCodes()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing profiles: %v\n", err)
			return
		}
		for _, c := range codes {
			fmt.Println(c)
		}
		return
	}

	arcade := openArcade(store)
	p := arcade.Profile
	eco := arcade.Economy.Config()

	fmt.Printf("%s (%s, %s)\n", p.DisplayName(), p.Code, p.Mode)
	fmt.Println()
	fmt.Printf("  Cookies      %d\n", p.Wallet)
	fmt.Printf("  Candies      %d\n", p.TotalCandies)
	fmt.Printf("  Candy level  %d (next upgrade %d cookies)\n", p.CandyLevel, arcade.Economy.UpgradeCost(p))
	fmt.Printf("  Hearts       %d/%d\n", p.MaxHearts, eco.MaxHearts)
	fmt.Printf("  Jump bonus   %d/%d\n", p.JumpBonus, eco.MaxJumpBonus)
	fmt.Printf("  Skin         %s\n", p.Skin)
	if p.Mode == profile.ModeStudent {
		fmt.Printf("  Today        %d/%d plays, %d/%d shop visits\n",
			p.Daily.Plays, eco.DailyLimit, p.Daily.ShopVisits, eco.ShopLimit)
	}

	fmt.Println()
	fmt.Printf("Equipment (%d/%d collected)\n", p.Inventory.Count(), profile.CatalogSize())
	for _, s := range profile.Slots {
		worn := p.Equipped.Get(s)
		if worn == "" {
			worn = "-"
		}
		fmt.Printf("  %-8s %-14s owned: %s\n", s, worn, strings.Join(p.Inventory.Items(s), ", "))
	}

	st := p.Stats
	fmt.Println()
	fmt.Println("Stats")
	fmt.Printf("  Plays %d (hard %d)  Falls %d  Best %d  Longest %ds  Candies %d\n",
		st.Plays, st.HardRuns, st.Falls, st.BestScore, st.MaxTimeSec, st.CandiesCollected)

	if len(p.Titles) > 0 {
		names := make([]string, 0, len(p.Titles))
		for _, id := range p.Titles {
			if a, ok := profile.LookupAchievement(id); ok {
				names = append(names, a.Title)
			}
		}
		fmt.Printf("  Titles: %s\n", strings.Join(names, ", "))
	}

	if flagProfileTx <= 0 {
		return
	}
	if runs, err := store.PlayerRuns(p.Code, flagProfileTx); err == nil && len(runs) > 0 {
		fmt.Println()
		fmt.Println("Recent runs")
		for _, r := range runs {
			end := "hit"
			if r.Fell {
				end = "fell"
			}
			fmt.Printf("  %s  %-6s %5d pts  %3d candies  %s  %s\n",
				r.At.Local().Format("01-02 15:04"), r.Difficulty(), r.Score, r.Candies, r.TimeString(), end)
		}
	}

	txs, err := store.Transactions(p.Code, flagProfileTx)
	if err != nil || len(txs) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent transactions")
	for _, t := range txs {
		fmt.Printf("  %s  %+5d %-6s %s\n", t.At.Local().Format("01-02 15:04"), t.Amount, t.Currency, t.Desc)
	}
}
