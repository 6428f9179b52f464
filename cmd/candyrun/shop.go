package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-run/internal/platform/tui"
	"github.com/vovakirdan/candy-run/internal/profile"
)

var shopActions = map[string]tui.ShopAction{
	"upgrade":  tui.ShopCandyLevel,
	"hearts":   tui.ShopHearts,
	"jump":     tui.ShopJump,
	"gacha":    tui.ShopGacha,
	"exchange": tui.ShopExchange,
}

var shopCmd = &cobra.Command{
	Use:   "shop <upgrade|hearts|jump|gacha|exchange> [count]",
	Short: "Buy from the shop",
	Long: `Spend cookies on upgrades and gacha rolls, or exchange candies for
cookies. Each call is one shop visit, and students get a limited number
of visits per gaming day. A visit may hold any number of purchases.

  upgrade   - Raise the candy level (more points per candy)
  hearts    - One more heart per run
  jump      - Higher jumps
  gacha     - A random cosmetic item you don't own yet
  exchange  - Trade candies for cookies; count repeats the trade

Examples:
  candyrun shop upgrade --player S01
  candyrun shop exchange 3 --player S01`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runShop,
}

var equipCmd = &cobra.Command{
	Use:   "equip <slot> <item>",
	Short: "Toggle a cosmetic item",
	Long: `Wear an owned item, or take it off if it is already worn.
Slots: hat, weapon, clothes, shoes.

Examples:
  candyrun equip hat crown --player S01`,
	Args: cobra.ExactArgs(2),
	Run:  runEquip,
}

func init() {
	shopCmd.Flags().StringVar(&flagPlayer, "player", "", "Player code (empty = guest)")
	equipCmd.Flags().StringVar(&flagPlayer, "player", "", "Player code (empty = guest)")
}

func runShop(_ *cobra.Command, args []string) {
	action, ok := shopActions[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown shop action %q\n", args[0])
		os.Exit(1)
	}
	count := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "Error: count must be a positive number, got %q\n", args[1])
			os.Exit(1)
		}
		count = n
	}

	store := openStore(true)
	defer store.Close()
	arcade := openArcade(store)

	if err := arcade.OpenShop(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	for range count {
		msg, err := arcade.Buy(action)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		fmt.Println(msg)
	}
	arcade.CloseShop()
	p := arcade.Profile
	fmt.Printf("Wallet: %d cookies, %d candies\n", p.Wallet, p.TotalCandies)
}

func runEquip(_ *cobra.Command, args []string) {
	slot, err := profile.ParseSlot(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	item := strings.ToLower(args[1])
	if !profile.InCatalog(slot, item) {
		fmt.Fprintf(os.Stderr, "Error: there is no %s called %q\n", slot, args[1])
		os.Exit(1)
	}

	store := openStore(true)
	defer store.Close()
	arcade := openArcade(store)

	worn, err := arcade.Equip(slot, item)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if worn {
		fmt.Printf("Now wearing %s (%s)\n", item, slot)
	} else {
		fmt.Printf("Took off %s (%s)\n", item, slot)
	}
}
