// ABOUTME: Retention operations: full wipe and age-based cleanup.
// ABOUTME: Each runs in one transaction so all three tables move together.
package storage

import (
	"fmt"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// DeleteAll wipes all three tables atomically. Privacy/account-deletion path.
func (d *DB) DeleteAll() error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("delete all: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"health_data_points", "daily_stats", "readiness_scores"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("delete all: clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete all: %w", err)
	}
	return nil
}

// DeleteOlderThan removes data points recorded strictly before cutoff and
// per-day rows for dates strictly before cutoff's local date. A point
// timestamped exactly at the cutoff survives.
func (d *DB) DeleteOlderThan(cutoff time.Time) (int64, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("cleanup: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec("DELETE FROM health_data_points WHERE timestamp < ?", cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("cleanup: data points: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cleanup: %w", err)
	}

	cutoffDate := cutoff.Format(models.DateFormat)
	if _, err := tx.Exec("DELETE FROM daily_stats WHERE date < ?", cutoffDate); err != nil {
		return 0, fmt.Errorf("cleanup: daily stats: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM readiness_scores WHERE date < ?", cutoffDate); err != nil {
		return 0, fmt.Errorf("cleanup: readiness scores: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("cleanup: %w", err)
	}
	return removed, nil
}
