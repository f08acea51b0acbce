// ABOUTME: CLI command printing the readiness version.
// ABOUTME: Runs without opening the store or preference database.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the readiness version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("readiness %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
