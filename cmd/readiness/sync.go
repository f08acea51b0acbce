// ABOUTME: CLI command for syncing all configured health sources.
// ABOUTME: Fetches new data, rebuilds today's stats, and rescores the day.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/readiness/internal/models"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync health sources and rescore today",
	Long: `Sync all configured health sources.

For each source with granted permissions, fetches measurements recorded
since the source's last sync (or the last 7 days on first sync), stores
them, rebuilds today's daily statistics, and recomputes today's
readiness score. Retention from your privacy settings is applied after
a successful sync.

Sources that fail leave their cursor untouched, so the next sync
re-covers the same window. Storage is idempotent; nothing duplicates.

EXAMPLES:

  readiness sync          # Sync everything that's configured
  readiness score         # See the resulting score`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := agg.SyncAll(cmd.Context()); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		if removed, err := agg.EnforceRetention(); err != nil {
			color.Yellow("⚠ Retention cleanup failed: %v", err)
		} else if removed > 0 {
			fmt.Printf("  aged out %d old measurements\n", removed)
		}

		color.Green("✓ Sync complete")

		today := time.Now().Format(models.DateFormat)
		score, err := store.GetReadinessScore(today)
		if err == nil && score != nil {
			fmt.Printf("  readiness for %s: %d/100 (%s)\n",
				today, score.OverallScore, score.Recommendation)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
