// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/readiness/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to interact with your readiness data
through a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "readiness": {
        "command": "readiness",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  record_measurement   Record a health measurement
  query_measurements   Query stored measurements with filters
  delete_measurement   Delete a measurement by ID
  get_readiness        Get (or compute) the readiness score for a date
  get_daily_stats      Get the daily statistics for a date
  sync_sources         Sync all configured sources
  storage_stats        Report local storage contents

AVAILABLE RESOURCES:

  readiness://today    Today's score and daily statistics
  readiness://week     Last seven days of scores
  readiness://storage  Storage disclosure`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, agg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
