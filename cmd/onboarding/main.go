// Package main provides the entry point for the onboarding CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "onboarding",
	Short: "Onboarding session wizard",
	Long:  "Onboarding drives the multi-step profile setup wizard against the onboarding API, with durable resume across devices and sessions.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
