// ABOUTME: MCP server setup for the readiness store.
// ABOUTME: Wraps MCP server with store and aggregator access.
package mcp

import (
	"context"

	"github.com/harperreed/readiness/internal/aggregator"
	"github.com/harperreed/readiness/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage and aggregator access.
type Server struct {
	mcpServer *mcp.Server
	store     storage.Store
	agg       *aggregator.Aggregator
}

// NewServer creates a new MCP server over the given store and aggregator.
func NewServer(store storage.Store, agg *aggregator.Aggregator) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "readiness",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
		agg:       agg,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
