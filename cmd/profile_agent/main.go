// Package main provides the entry point for the profile agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
	apiURL     string
	apiCookie  string
	timeoutSec int
)

var rootCmd = &cobra.Command{
	Use:   "profile_agent",
	Short: "Profile Agent CLI",
	Long:  "Profile Agent extracts structured candidate profiles from rendered profile pages and saves them to the candidate service.",
	// Command errors are already reported by main.
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Candidate service base URL (overrides PROFILE_AGENT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&apiCookie, "api-cookie", "", "Cookie header for the candidate service (overrides PROFILE_AGENT_API_COOKIE)")
	rootCmd.PersistentFlags().IntVar(&timeoutSec, "timeout", 0, "Per-request timeout in seconds")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
