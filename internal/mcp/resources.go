// ABOUTME: MCP resource implementations for the readiness store.
// ABOUTME: Provides readiness://today, readiness://week, and readiness://storage.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/readiness/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// readiness://today - today's score and stats
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "readiness://today",
		Name:        "Today's Readiness",
		Description: "Today's readiness score, sub-scores, and daily statistics",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// readiness://week - last 7 scores
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "readiness://week",
		Name:        "Weekly Readiness Trend",
		Description: "Readiness scores for the last seven days",
		MIMEType:    "application/json",
	}, s.handleWeekResource)

	// readiness://storage - storage disclosure
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "readiness://storage",
		Name:        "Storage Disclosure",
		Description: "Row counts and data span of the local health store",
		MIMEType:    "application/json",
	}, s.handleStorageResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := time.Now().Format(models.DateFormat)

	score, err := s.store.GetReadinessScore(today)
	if err != nil {
		return nil, fmt.Errorf("failed to get readiness score: %w", err)
	}
	stats, err := s.store.GetDailyStats(today)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	result := map[string]interface{}{
		"date":        today,
		"score":       score,
		"daily_stats": stats,
	}
	return resourceResult("readiness://today", result)
}

func (s *Server) handleWeekResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	scores, err := s.store.ListReadinessScores(7)
	if err != nil {
		return nil, fmt.Errorf("failed to list readiness scores: %w", err)
	}
	return resourceResult("readiness://week", map[string]interface{}{"scores": scores})
}

func (s *Server) handleStorageResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	stats, err := s.store.GetStorageStats()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage stats: %w", err)
	}
	return resourceResult("readiness://storage", stats)
}

func resourceResult(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
