// ABOUTME: CLI commands for storage disclosure and daily statistics.
// ABOUTME: 'stats' shows what the store holds; 'day' shows one day's summary.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/readiness/internal/models"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show what the local store holds",
	Long: `Show storage statistics: how many measurements, daily summaries, and
readiness scores are stored locally, and the time span they cover.

Everything listed here lives on this machine only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := store.GetStorageStats()
		if err != nil {
			return fmt.Errorf("failed to get storage stats: %w", err)
		}

		fmt.Printf("measurements:     %d\n", stats.DataPointCount)
		fmt.Printf("daily summaries:  %d\n", stats.DailyStatsCount)
		fmt.Printf("readiness scores: %d\n", stats.ScoreCount)
		if stats.OldestPoint != nil && stats.NewestPoint != nil {
			fmt.Printf("data span:        %s - %s\n",
				stats.OldestPoint.Format("2006-01-02"),
				stats.NewestPoint.Format("2006-01-02"))
		}
		fmt.Printf("database:         %s\n", color.New(color.Faint).Sprint(store.Path()))
		return nil
	},
}

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show the daily statistics for a date",
	Long: `Show the aggregated daily statistics for a date (default today):
sleep, steps, HRV, recovery, and the sources that contributed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now().Format(models.DateFormat)
		if len(args) == 1 {
			if _, err := time.Parse(models.DateFormat, args[0]); err != nil {
				return fmt.Errorf("invalid date: %s (want YYYY-MM-DD)", args[0])
			}
			date = args[0]
		}

		stats, err := store.GetDailyStats(date)
		if err != nil {
			return fmt.Errorf("failed to get daily stats: %w", err)
		}
		if stats == nil {
			fmt.Printf("No daily statistics for %s.\n", date)
			return nil
		}

		color.New(color.Bold).Printf("%s\n", date)
		printDayValue("sleep", stats.SleepMinutes, "min")
		printDayValue("deep sleep", stats.DeepSleepMinutes, "min")
		if stats.Steps != nil {
			fmt.Printf("  %-14s %d\n", "steps", *stats.Steps)
		}
		printDayValue("resting hr", stats.RestingHeartRate, "bpm")
		printDayValue("hrv", stats.HRV, "ms")
		printDayValue("recovery", stats.RecoveryScore, "%")
		printDayValue("active energy", stats.ActiveEnergyBurned, "kcal")
		printDayValue("workout", stats.WorkoutMinutes, "min")
		if len(stats.Sources) > 0 {
			faint := color.New(color.Faint)
			faint.Printf("  sources:")
			for _, src := range stats.Sources {
				faint.Printf(" %s", src)
			}
			fmt.Println()
		}
		return nil
	},
}

func printDayValue(name string, v *float64, unit string) {
	if v == nil {
		return
	}
	fmt.Printf("  %-14s %.1f %s\n", name, *v, unit)
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dayCmd)
}
