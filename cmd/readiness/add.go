// ABOUTME: CLI command for manually adding health measurements.
// ABOUTME: Manual entries bypass adapters but flow through the aggregator.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/readiness/internal/models"
	"github.com/spf13/cobra"
)

var addAt string

var addCmd = &cobra.Command{
	Use:     "add <type> <value>",
	Aliases: []string{"a"},
	Short:   "Add a health measurement manually",
	Long: `Add a health measurement manually.

Manual entries are stored alongside adapter data, marked as manual, and
included in daily statistics on the next sync.

VALID TYPES:

  steps, sleepAsleep, sleepDeep, sleepREM, heartRate, restingHeartRate,
  heartRateVariability, activeEnergyBurned, distanceWalkingRunning,
  weight, bodyMassIndex, workoutMinutes, recoveryScore

EXAMPLES:

  readiness add steps 8500
  readiness add heartRateVariability 52 --at "2026-08-29 07:00"
  readiness add sleepAsleep 450`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataType := args[0]
		if !models.IsValidDataType(dataType) {
			return fmt.Errorf("unknown measurement type: %s\nRun 'readiness add --help' for the list of valid types", dataType)
		}

		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[1])
		}

		ts := time.Now()
		if addAt != "" {
			ts, err = parseTime(addAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", addAt)
			}
		}

		p := models.NewManualDataPoint(models.DataType(dataType), value, ts)
		if err := agg.RecordManual(cmd.Context(), p); err != nil {
			return fmt.Errorf("failed to record measurement: %w", err)
		}

		color.Green("✓ Added %s", dataType)
		fmt.Printf("  %s %.2f %s\n",
			color.New(color.Faint).Sprint(p.ID),
			p.Value, p.Unit)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "", "timestamp of the measurement (default now)")
	rootCmd.AddCommand(addCmd)
}
