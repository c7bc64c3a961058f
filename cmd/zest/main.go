package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "zest",
		Short: "The Zest language front end",
	}

	rootCmd.AddCommand(newDumpTokensCmd())
	rootCmd.AddCommand(newDumpParseTreeCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
