// ABOUTME: CLI command for listing stored health measurements.
// ABOUTME: Supports filtering by type, source, and date range.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/storage"
	"github.com/spf13/cobra"
)

var (
	listTypes   []string
	listSources []string
	listFrom    string
	listTo      string
	listLimit   int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List stored health measurements",
	Long: `List stored health measurements, most recent first.

OUTPUT FORMAT:

  Each line shows: TIMESTAMP  TYPE  VALUE  UNIT  SOURCE

FILTERING:

  --type and --source may be given multiple times; a measurement matches
  if it has any of the listed types AND any of the listed sources.
  --from and --to bound the timestamp range inclusively.

EXAMPLES:

  readiness list                          # Last 20 measurements
  readiness list --type steps -n 50       # Last 50 step counts
  readiness list --source manual          # Only manual entries
  readiness list --from 2026-08-01 --to 2026-08-07`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := storage.QueryFilter{Limit: listLimit}

		for _, t := range listTypes {
			if !models.IsValidDataType(t) {
				return fmt.Errorf("unknown measurement type: %s", t)
			}
			filter.Types = append(filter.Types, models.DataType(t))
		}
		for _, s := range listSources {
			filter.Sources = append(filter.Sources, models.NormalizeSource(s))
		}
		if listFrom != "" {
			t, err := parseTime(listFrom)
			if err != nil {
				return fmt.Errorf("invalid --from: %s", listFrom)
			}
			filter.Start = &t
		}
		if listTo != "" {
			t, err := parseTime(listTo)
			if err != nil {
				return fmt.Errorf("invalid --to: %s", listTo)
			}
			filter.End = &t
		}

		points, err := store.QueryDataPoints(filter)
		if err != nil {
			return fmt.Errorf("failed to query measurements: %w", err)
		}

		if len(points) == 0 {
			fmt.Println("No measurements found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range points {
			manual := ""
			if p.IsManualEntry {
				manual = faint.Sprint(" (manual)")
			}
			fmt.Printf("%s %s %.2f %s %s%s\n",
				faint.Sprint(p.Timestamp.Format("2006-01-02 15:04")),
				padRight(string(p.Type), 22),
				p.Value,
				p.Unit,
				p.Source,
				manual)
		}
		return nil
	},
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().StringSliceVarP(&listTypes, "type", "t", nil, "filter by measurement type (repeatable)")
	listCmd.Flags().StringSliceVarP(&listSources, "source", "s", nil, "filter by source (repeatable)")
	listCmd.Flags().StringVar(&listFrom, "from", "", "inclusive start of the timestamp range")
	listCmd.Flags().StringVar(&listTo, "to", "", "inclusive end of the timestamp range")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}
