// ABOUTME: Root Cobra command for readiness CLI.
// ABOUTME: Opens store, prefs, and aggregator via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"time"

	"github.com/harperreed/readiness/internal/aggregator"
	"github.com/harperreed/readiness/internal/config"
	"github.com/harperreed/readiness/internal/prefs"
	"github.com/harperreed/readiness/internal/source"
	"github.com/harperreed/readiness/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfg        *config.Config
	lazyStore  *storage.LazyDB
	store      *storage.DB
	prefsStore *prefs.Store
	agg        *aggregator.Aggregator
	logger     *zap.Logger

	flagDataDir string
	flagDropDir string
)

var rootCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Local health aggregation and readiness scoring",
	Long: `Readiness aggregates health data from your devices into a local,
privacy-first store and computes a daily readiness score.

WHAT IT DOES:

  Ingests measurements (sleep, steps, heart rate, HRV, recovery) from
  configured sources, keeps them in a local SQLite database, derives
  per-day statistics, and scores each day 0-100 with recommendations.

QUICK START:

  $ readiness sync                      # Pull new data and score today
  $ readiness score                     # Show today's readiness
  $ readiness add steps 8500            # Manually log a measurement
  $ readiness list --type heartRate     # Inspect stored measurements
  $ readiness stats                     # What the local store holds

PRIVACY:

  All data stays on this machine. 'readiness privacy' shows and adjusts
  retention; 'readiness cleanup' ages out old rows; 'readiness wipe'
  deletes everything.

MCP INTEGRATION:

  Run 'readiness mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  SQLite database and preferences live under ~/.local/share/readiness.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't touch the store
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}
		if flagDropDir != "" {
			cfg.DropDir = flagDropDir
		}

		logger, err = newLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}

		// All store access, CLI and MCP alike, goes through the lazy
		// handle so concurrent first users share one creation path.
		lazyStore = cfg.LazyStore()
		store, err = lazyStore.Get()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}

		prefsStore, err = cfg.OpenPrefs()
		if err != nil {
			_ = store.Close()
			return fmt.Errorf("failed to open preference store: %w", err)
		}

		agg = aggregator.New(store, prefsStore, logger, configuredSources()...)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if prefsStore != nil {
			_ = prefsStore.Close()
		}
		if lazyStore != nil {
			return lazyStore.Close()
		}
		return nil
	},
}

// configuredSources builds the source list from config. Only the file
// drop source ships in-tree; provider adapters register themselves the
// same way.
func configuredSources() []source.Source {
	var sources []source.Source
	if dir := cfg.GetDropDir(); dir != "" {
		sources = append(sources, source.NewFileSource(dir, prefsStore))
	}
	return sources
}

// newLogger builds the aggregator logger. CLI runs keep it quiet on
// stderr; raise log_level in the config to debug a sync.
func newLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.WarnLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapLevel)
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}

// parseTime accepts the timestamp formats the CLI flags take.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Override the data directory (database and preferences)")
	rootCmd.PersistentFlags().StringVar(&flagDropDir, "drop-dir", "", "Override the drop directory watched by the file source")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
