package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cmdspider",
		Short:         "Extract admin commands from a game-server repository and check them against the docs",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.AddCommand(scanCmd(), patternsCmd())
	return cmd
}
