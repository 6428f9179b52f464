package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/vovakirdan/candy-run/internal/config"
	"github.com/vovakirdan/candy-run/internal/platform/tui"
	"github.com/vovakirdan/candy-run/internal/profile"
	"github.com/vovakirdan/candy-run/internal/storage"
)

// openStore opens the database, or exits when required is set.
// Without it the caller gets nil and plays with a throwaway profile.
func openStore(required bool) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err == nil {
		return store
	}
	if required {
		fmt.Fprintf(os.Stderr, "Error opening profiles database: %v\n", err)
		os.Exit(1)
	}
	logger.Warn("could not open profiles database, progress will not be saved", "error", err)
	return nil
}

// playerIdentity resolves --player into a profile code and mode.
// No player means a guest without daily limits.
func playerIdentity() (string, profile.Mode) {
	code := strings.ToUpper(strings.TrimSpace(flagPlayer))
	if code == "" {
		return "GUEST", profile.ModeGuest
	}
	return code, profile.ModeStudent
}

// openArcade opens the selected player's profile.
func openArcade(store *storage.Store) *tui.Arcade {
	eco, err := config.LoadEconomy(flagEconomy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading economy config: %v\n", err)
		os.Exit(1)
	}

	code, mode := playerIdentity()
	arcade, err := tui.OpenArcade(store, eco, code, "", mode, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening profile %s: %v\n", code, err)
		os.Exit(1)
	}
	arcade.ConfigPath = flagConfig
	return arcade
}
