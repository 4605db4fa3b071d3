package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cvmatch version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("cvmatch " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
