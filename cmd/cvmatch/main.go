// Package main provides the entry point for the résumé/job compatibility
// analyzer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvmatch",
	Short: "Resume/job compatibility analyzer",
	Long:  "cvmatch scores a resume against a job posting, audits resume quality, and generates AI feedback and rewrite suggestions.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
