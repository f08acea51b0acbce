// ABOUTME: CLI commands for privacy settings and integration status.
// ABOUTME: Settings live in the local preference store, never elsewhere.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	privacyRetentionDays int
	privacyAllowManual   bool
	privacyDiagnostics   bool
)

var privacyCmd = &cobra.Command{
	Use:   "privacy",
	Short: "Show or change privacy settings",
	Long: `Show or change privacy settings.

Settings are stored locally and control retention and manual entry.
'readiness privacy' with no subcommand shows the current values
(defaults if nothing has been saved).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := agg.LoadPrivacySettings()
		if err != nil {
			return fmt.Errorf("failed to load privacy settings: %w", err)
		}

		fmt.Printf("retention days:     %d\n", settings.RetentionDays)
		fmt.Printf("local only:         %t\n", settings.LocalOnly)
		fmt.Printf("allow manual entry: %t\n", settings.AllowManualEntry)
		fmt.Printf("share diagnostics:  %t\n", settings.ShareDiagnostics)
		return nil
	},
}

var privacySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change privacy settings",
	Long: `Change privacy settings. Only flags you pass are changed.

EXAMPLES:

  readiness privacy set --retention-days 90
  readiness privacy set --allow-manual=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := agg.LoadPrivacySettings()
		if err != nil {
			return fmt.Errorf("failed to load privacy settings: %w", err)
		}

		if cmd.Flags().Changed("retention-days") {
			settings.RetentionDays = privacyRetentionDays
		}
		if cmd.Flags().Changed("allow-manual") {
			settings.AllowManualEntry = privacyAllowManual
		}
		if cmd.Flags().Changed("diagnostics") {
			settings.ShareDiagnostics = privacyDiagnostics
		}

		if err := agg.SavePrivacySettings(settings); err != nil {
			return fmt.Errorf("failed to save privacy settings: %w", err)
		}
		color.Green("✓ Privacy settings saved")
		return nil
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show health source integration status",
	Long: `Show the connection status of every health source that has synced,
including when each last completed a sync.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		integrations, err := agg.LoadIntegrations()
		if err != nil {
			return fmt.Errorf("failed to load integrations: %w", err)
		}

		if len(integrations) == 0 {
			fmt.Println("No sources have synced yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, in := range integrations {
			status := "disconnected"
			if in.Connected {
				status = "connected"
			}
			last := "never"
			if in.LastSyncedAt != nil {
				last = in.LastSyncedAt.Format("2006-01-02 15:04")
			}
			fmt.Printf("%s %s %s\n",
				padRight(string(in.Source), 16),
				padRight(status, 12),
				faint.Sprintf("last sync %s", last))
		}
		return nil
	},
}

func init() {
	privacySetCmd.Flags().IntVar(&privacyRetentionDays, "retention-days", 365, "days of history to keep (0 disables retention)")
	privacySetCmd.Flags().BoolVar(&privacyAllowManual, "allow-manual", true, "allow manual measurement entry")
	privacySetCmd.Flags().BoolVar(&privacyDiagnostics, "diagnostics", false, "share anonymous diagnostics")
	privacyCmd.AddCommand(privacySetCmd)
	rootCmd.AddCommand(privacyCmd)
	rootCmd.AddCommand(sourcesCmd)
}
