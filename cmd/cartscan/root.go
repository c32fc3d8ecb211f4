// Package main provides the entry point for the cartscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for cartscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cartscan",
		Short: "Shopping list manager with barcode scanning",
		Long: `cartscan manages a shopping list from the command line.

Items can be typed in directly, or added by scanning product barcodes:
a scan session reads decode attempts from a scanner device (or stdin),
confirms the code against misreads, looks the product up in public
databases, and appends the product name to the list.

The list is stored locally and survives between runs.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAddCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewEditCmd())
	cmd.AddCommand(NewRemoveCmd())
	cmd.AddCommand(NewClearCmd())
	cmd.AddCommand(NewShareCmd())
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewResolveCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
