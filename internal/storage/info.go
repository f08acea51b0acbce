// ABOUTME: Storage statistics for user-facing disclosures.
// ABOUTME: Row counts plus the oldest/newest data point timestamps.
package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// StorageStats describes what the store currently holds.
type StorageStats struct {
	DataPointCount  int64
	DailyStatsCount int64
	ScoreCount      int64
	OldestPoint     *time.Time
	NewestPoint     *time.Time
}

// GetStorageStats returns row counts and the span of stored data points.
func (d *DB) GetStorageStats() (*StorageStats, error) {
	var stats StorageStats

	counts := map[string]*int64{
		"health_data_points": &stats.DataPointCount,
		"daily_stats":        &stats.DailyStatsCount,
		"readiness_scores":   &stats.ScoreCount,
	}
	for table, dest := range counts {
		if err := d.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(dest); err != nil {
			return nil, fmt.Errorf("storage stats: count %s: %w", table, err)
		}
	}

	var oldest, newest sql.NullInt64
	err := d.db.QueryRow(
		"SELECT MIN(timestamp), MAX(timestamp) FROM health_data_points",
	).Scan(&oldest, &newest)
	if err != nil {
		return nil, fmt.Errorf("storage stats: span: %w", err)
	}
	if oldest.Valid {
		t := time.UnixMilli(oldest.Int64)
		stats.OldestPoint = &t
	}
	if newest.Valid {
		t := time.UnixMilli(newest.Int64)
		stats.NewestPoint = &t
	}

	return &stats, nil
}
