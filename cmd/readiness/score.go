// ABOUTME: CLI command for showing and recomputing readiness scores.
// ABOUTME: Renders overall score, sub-scores, confidence, and guidance.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/readiness/internal/models"
	"github.com/spf13/cobra"
)

var scoreRecompute bool

var scoreCmd = &cobra.Command{
	Use:     "score [date]",
	Aliases: []string{"sc"},
	Short:   "Show the readiness score for a date",
	Long: `Show the readiness score for a date (default today).

If no score has been computed for that date yet, one is computed from
the stored daily statistics and persisted. Use --recompute to force a
fresh computation, e.g. after importing data.

EXAMPLES:

  readiness score                  # Today
  readiness score 2026-08-29       # A specific date
  readiness score --recompute      # Recompute today from current stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now().Format(models.DateFormat)
		if len(args) == 1 {
			if _, err := time.Parse(models.DateFormat, args[0]); err != nil {
				return fmt.Errorf("invalid date: %s (want YYYY-MM-DD)", args[0])
			}
			date = args[0]
		}

		score, err := store.GetReadinessScore(date)
		if err != nil {
			return fmt.Errorf("failed to load score: %w", err)
		}
		if score == nil || scoreRecompute {
			score, err = agg.CalculateReadiness(cmd.Context(), date)
			if err != nil {
				return fmt.Errorf("failed to compute score: %w", err)
			}
		}

		printScore(score)
		return nil
	},
}

func printScore(s *models.DailyReadinessScore) {
	headline := color.New(color.Bold)
	switch {
	case s.OverallScore >= 80:
		headline = headline.Add(color.FgGreen)
	case s.OverallScore >= 60:
		headline = headline.Add(color.FgYellow)
	default:
		headline = headline.Add(color.FgRed)
	}

	headline.Printf("%s  %d/100\n", s.Date, s.OverallScore)
	fmt.Printf("  %s\n", s.Recommendation)
	fmt.Printf("  confidence %.2f\n", s.ConfidenceLevel)

	printSubScore("sleep", s.SleepScore)
	printSubScore("recovery", s.RecoveryScore)
	printSubScore("activity", s.ActivityScore)
	printSubScore("hrv", s.HRVScore)

	for _, r := range s.HabitRecommendations {
		fmt.Printf("  habit: %s\n", r)
	}
	for _, r := range s.ActivityRecommendations {
		fmt.Printf("  activity: %s\n", r)
	}
	if len(s.DataSourcesUsed) > 0 {
		faint := color.New(color.Faint)
		faint.Printf("  sources:")
		for _, src := range s.DataSourcesUsed {
			faint.Printf(" %s", src)
		}
		fmt.Println()
	}
}

func printSubScore(name string, score *int) {
	faint := color.New(color.Faint)
	if score == nil {
		faint.Printf("  %-10s -\n", name)
		return
	}
	fmt.Printf("  %-10s %d\n", name, *score)
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreRecompute, "recompute", false, "recompute from current daily stats")
	rootCmd.AddCommand(scoreCmd)
}
