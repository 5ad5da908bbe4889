// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the mtgprice application.
// It implements subcommands for card search, price history, launch-window price
// aggregates, and warehouse connection management using the Cobra CLI framework.
// The package renders results with a terminal UI built on pterm.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
// It serves as the entry point for the mtgprice CLI application.
var rootCmd = &cobra.Command{
	Use:           "mtgprice",
	Short:         "MTG card price lookups from the Postgres warehouse",
	Long:          `mtgprice is a command-line tool for exploring Magic: The Gathering card prices stored in a Postgres data warehouse. Query results are cached in memory for 24 hours per parameter set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("mtgprice %s\n", Version)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	// Populate the environment from a local .env file when one exists.
	// Explicit environment variables are never overridden.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
}
