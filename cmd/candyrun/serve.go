package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-run/internal/config"
	"github.com/vovakirdan/candy-run/internal/platform/tui"
	"github.com/vovakirdan/candy-run/internal/profile"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagGuests      bool
	flagIdleTimeout int
	flagServePreset string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Candy Run SSH server",
	Long: `Start an SSH server that allows players to connect and play.

The SSH user name is the player code: "ssh s01@host -p 23234" opens the
profile S01. Profiles, runs and records are shared by everyone connected
to the same server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.candyrun/host_key

Examples:
  candyrun serve                           # Listen on :23234 with auto-generated key
  candyrun serve --ssh :2222               # Listen on port 2222
  candyrun serve --guests                  # No daily limits
  candyrun serve --db ./candyrun.db        # Use specific database`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().BoolVar(&flagGuests, "guests", false, "Open profiles in guest mode (no daily limits)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServePreset, "difficulty", "", "Difficulty preset: normal, hard, fixed")
}

func runServe(_ *cobra.Command, _ []string) {
	if _, err := config.ParsePreset(flagServePreset); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.ConfigPath = flagConfig
	cfg.EconomyPath = flagEconomy
	cfg.Preset = flagServePreset
	cfg.Logger = logger
	if flagGuests {
		cfg.Mode = profile.ModeGuest
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Candy Run SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh <player>@localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
