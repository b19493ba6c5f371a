// Package main is the entry point for the XP optimizer CLI and server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/xp-optimizer/cmd/server/client"
	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
)

// Version of the optimizer
const Version = "1.5"

func versionString() string {
	return fmt.Sprintf("%s (Wrath & Glory core rules version %s)", Version, wrathglory.RulesVersion)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xp-optimizer",
		Short: "XP optimizer for Wrath & Glory",
		Long: `Finds the cheapest way to spend XP on attributes and skills so that every
requested attribute, skill and trait reaches its target value.`,
		Version:      versionString(),
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newOptimizeCmd())
	rootCmd.AddCommand(newTargetsCmd())
	rootCmd.AddCommand(newRollCmd())
	rootCmd.AddCommand(newServerCmd())
	rootCmd.AddCommand(client.NewClientCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
