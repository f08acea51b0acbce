// ABOUTME: MCP tool implementations for the readiness store.
// ABOUTME: Measurement CRUD, readiness queries, sync, and storage stats.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// record_measurement
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_measurement",
		Description: "Record a health measurement (steps, heartRate, heartRateVariability, etc.)",
	}, s.handleRecordMeasurement)

	// query_measurements
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "query_measurements",
		Description: "Query stored measurements, optionally filtered by type, source, and date range",
	}, s.handleQueryMeasurements)

	// delete_measurement
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_measurement",
		Description: "Delete a measurement by ID",
	}, s.handleDeleteMeasurement)

	// get_readiness
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_readiness",
		Description: "Get the readiness score for a date (default today), computing it if needed",
	}, s.handleGetReadiness)

	// get_daily_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_daily_stats",
		Description: "Get the aggregated daily statistics for a date",
	}, s.handleGetDailyStats)

	// sync_sources
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "sync_sources",
		Description: "Sync all configured health sources and recompute today's readiness",
	}, s.handleSyncSources)

	// storage_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "storage_stats",
		Description: "Report how many rows the local store holds and the data point span",
	}, s.handleStorageStats)
}

// Tool input/output types

type recordMeasurementInput struct {
	Type       string  `json:"type" jsonschema:"description=Measurement type (steps, sleepAsleep, sleepDeep, sleepREM, heartRate, restingHeartRate, heartRateVariability, activeEnergyBurned, distanceWalkingRunning, weight, bodyMassIndex, workoutMinutes, recoveryScore),required"`
	Value      float64 `json:"value" jsonschema:"description=The measurement value,required"`
	RecordedAt string  `json:"recorded_at,omitempty" jsonschema:"description=Timestamp (ISO 8601), defaults to now"`
}

type measurementOutput struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"`
	Message string  `json:"message"`
}

type queryMeasurementsInput struct {
	Types   []string `json:"types,omitempty" jsonschema:"description=Filter by measurement types"`
	Sources []string `json:"sources,omitempty" jsonschema:"description=Filter by source adapters"`
	Start   string   `json:"start,omitempty" jsonschema:"description=Inclusive start date/time (ISO 8601)"`
	End     string   `json:"end,omitempty" jsonschema:"description=Inclusive end date/time (ISO 8601)"`
	Limit   int      `json:"limit,omitempty" jsonschema:"description=Max results (default 20)"`
}

type deleteMeasurementInput struct {
	ID string `json:"id" jsonschema:"description=Measurement ID,required"`
}

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"description=Calendar date (YYYY-MM-DD), defaults to today"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleRecordMeasurement(ctx context.Context, req *mcp.CallToolRequest, input recordMeasurementInput) (*mcp.CallToolResult, measurementOutput, error) {
	if !models.IsValidDataType(input.Type) {
		return nil, measurementOutput{}, fmt.Errorf("unknown measurement type: %s", input.Type)
	}

	ts := time.Now()
	if input.RecordedAt != "" {
		t, err := time.Parse(time.RFC3339, input.RecordedAt)
		if err != nil {
			t, err = time.Parse("2006-01-02 15:04", input.RecordedAt)
		}
		if err == nil {
			ts = t
		}
	}

	p := models.NewManualDataPoint(models.DataType(input.Type), input.Value, ts)
	if err := s.agg.RecordManual(ctx, p); err != nil {
		return nil, measurementOutput{}, fmt.Errorf("failed to record measurement: %w", err)
	}

	return nil, measurementOutput{
		ID:      p.ID,
		Type:    input.Type,
		Value:   p.Value,
		Unit:    string(p.Unit),
		Message: fmt.Sprintf("Recorded %s: %.2f %s", input.Type, p.Value, p.Unit),
	}, nil
}

func (s *Server) handleQueryMeasurements(ctx context.Context, req *mcp.CallToolRequest, input queryMeasurementsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	filter := storage.QueryFilter{Limit: input.Limit}
	for _, t := range input.Types {
		if !models.IsValidDataType(t) {
			return nil, nil, fmt.Errorf("unknown measurement type: %s", t)
		}
		filter.Types = append(filter.Types, models.DataType(t))
	}
	for _, src := range input.Sources {
		filter.Sources = append(filter.Sources, models.NormalizeSource(src))
	}
	if input.Start != "" {
		t, err := parseFlexibleTime(input.Start)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start: %s", input.Start)
		}
		filter.Start = &t
	}
	if input.End != "" {
		t, err := parseFlexibleTime(input.End)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end: %s", input.End)
		}
		filter.End = &t
	}

	points, err := s.store.QueryDataPoints(filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query measurements: %w", err)
	}

	if len(points) == 0 {
		return nil, map[string]interface{}{"message": "No measurements found."}, nil
	}
	return nil, points, nil
}

func (s *Server) handleDeleteMeasurement(ctx context.Context, req *mcp.CallToolRequest, input deleteMeasurementInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.store.DeleteDataPoint(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete measurement: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted measurement: %s", input.ID),
	}, nil
}

func (s *Server) handleGetReadiness(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, any, error) {
	date := input.Date
	if date == "" {
		date = time.Now().Format(models.DateFormat)
	}

	score, err := s.store.GetReadinessScore(date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get readiness score: %w", err)
	}
	if score == nil {
		score, err = s.agg.CalculateReadiness(ctx, date)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to compute readiness score: %w", err)
		}
	}
	return nil, score, nil
}

func (s *Server) handleGetDailyStats(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, any, error) {
	date := input.Date
	if date == "" {
		date = time.Now().Format(models.DateFormat)
	}

	stats, err := s.store.GetDailyStats(date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get daily stats: %w", err)
	}
	if stats == nil {
		return nil, map[string]interface{}{"message": fmt.Sprintf("No daily stats for %s.", date)}, nil
	}
	return nil, stats, nil
}

func (s *Server) handleSyncSources(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.agg.SyncAll(ctx); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("sync failed: %w", err)
	}
	return nil, simpleOutput{Message: "Sync complete."}, nil
}

func (s *Server) handleStorageStats(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	stats, err := s.store.GetStorageStats()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get storage stats: %w", err)
	}
	return nil, stats, nil
}

func parseFlexibleTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04", s); err == nil {
		return t, nil
	}
	return time.Parse(models.DateFormat, s)
}
