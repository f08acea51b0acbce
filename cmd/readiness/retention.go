// ABOUTME: CLI commands for retention cleanup and full data wipe.
// ABOUTME: cleanup ages out old rows; wipe deletes everything, gated by --force.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cleanupDays int
	wipeForce   bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete data older than the retention window",
	Long: `Delete measurements, daily summaries, and readiness scores older than
the retention window.

The window defaults to the retention_days in your privacy settings
(365 unless changed). Pass --days to use a different window for this
run. A window of 0 or less disables retention and deletes nothing.

All three tables are cleaned in a single transaction; a failure leaves
everything in place.

EXAMPLES:

  readiness cleanup              # Use the privacy-settings window
  readiness cleanup --days 90    # Keep only the last 90 days`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var removed int64
		var err error
		if cmd.Flags().Changed("days") {
			removed, err = agg.CleanupOldData(cleanupDays)
		} else {
			removed, err = agg.EnforceRetention()
		}
		if err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}

		color.Green("✓ Cleanup complete")
		fmt.Printf("  removed %d measurements\n", removed)
		return nil
	},
}

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all stored health data",
	Long: `Delete all measurements, daily summaries, and readiness scores.

This is the privacy / account-deletion path. It removes every row from
the local store in one transaction. Preferences and sync cursors are
kept; clear those by deleting the data directory.

CAUTION:

  This permanently deletes your local health history. There is no undo.
  Requires --force.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !wipeForce {
			return fmt.Errorf("refusing to wipe without --force")
		}
		if err := agg.DeleteAllData(); err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		color.Yellow("✗ All health data deleted")
		return nil
	},
}

func init() {
	cleanupCmd.Flags().IntVar(&cleanupDays, "days", 0, "retention window in days (overrides privacy settings)")
	wipeCmd.Flags().BoolVar(&wipeForce, "force", false, "confirm deletion of all data")
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(wipeCmd)
}
