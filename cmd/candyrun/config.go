package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-run/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [runner|economy]",
	Short: "Print a default config file",
	Long: `Print the built-in defaults for the runner or the economy as YAML.
Save the output, edit it and pass it back with --config or --economy.

Examples:
  candyrun config runner > runner.yaml
  candyrun config economy > economy.yaml`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"runner", "economy"},
	Run:       runConfig,
}

func runConfig(_ *cobra.Command, args []string) {
	data := config.GetDefaultYAML(args[0])
	if data == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown config %q (want runner or economy)\n", args[0])
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
