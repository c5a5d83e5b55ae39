// Package main provides the entry point for the skill matcher CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skill_matcher",
	Short: "Bucketed skill matching between job postings and a candidate profile",
	Long: "skill_matcher extracts skills from job and candidate records, groups them into " +
		"semantic buckets and scores each job with weighted per-bucket comparisons backed " +
		"by an LLM reasoning service and a durable comparison cache.",
}

var (
	flagConfig   string
	flagVerbose  bool
	flagDebug    bool
	flagJSONLogs bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print formatted summaries")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLogs, "json-logs", false, "Emit logs as JSON")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
