// ABOUTME: Export and import functionality for health data.
// ABOUTME: Supports JSON and YAML export formats for data portability.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/readiness/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for health data.
type ExportData struct {
	Version    string                        `json:"version" yaml:"version"`
	ExportedAt time.Time                     `json:"exported_at" yaml:"exported_at"`
	Tool       string                        `json:"tool" yaml:"tool"`
	DataPoints []*models.HealthDataPoint     `json:"data_points" yaml:"data_points"`
	DailyStats []*models.DailyStats          `json:"daily_stats" yaml:"daily_stats"`
	Scores     []*models.DailyReadinessScore `json:"readiness_scores" yaml:"readiness_scores"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	points, err := d.QueryDataPoints(QueryFilter{})
	if err != nil {
		return nil, fmt.Errorf("export data points: %w", err)
	}

	rows, err := d.db.Query("SELECT date FROM daily_stats ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("export daily stats: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("export daily stats: %w", err)
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var stats []*models.DailyStats
	for _, date := range dates {
		s, err := d.GetDailyStats(date)
		if err != nil {
			return nil, err
		}
		if s != nil {
			stats = append(stats, s)
		}
	}

	scores, err := d.ListReadinessScores(0)
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "readiness",
		DataPoints: points,
		DailyStats: stats,
		Scores:     scores,
	}, nil
}

// ImportData imports data from an export file. Upsert semantics make
// re-importing the same export a no-op.
func (d *DB) ImportData(data *ExportData) error {
	if err := d.PutDataPoints(data.DataPoints); err != nil {
		return fmt.Errorf("import data points: %w", err)
	}
	for _, s := range data.DailyStats {
		if err := d.PutDailyStats(s); err != nil {
			return fmt.Errorf("import daily stats %s: %w", s.Date, err)
		}
	}
	for _, s := range data.Scores {
		if err := d.PutReadinessScore(s); err != nil {
			return fmt.Errorf("import readiness score %s: %w", s.Date, err)
		}
	}
	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}
