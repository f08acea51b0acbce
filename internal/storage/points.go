// ABOUTME: HealthDataPoint upsert and query operations for SQLite storage.
// ABOUTME: Replace-on-write by natural key; batches commit atomically.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

const pointColumns = `id, type, value, unit, timestamp, date_from, date_to, source,
		source_device_name, source_app_name, metadata, is_manual_entry, synced_at, created_at`

const pointUpsert = `
	INSERT OR REPLACE INTO health_data_points
	(` + pointColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// PutDataPoint stores a single data point, replacing any prior row with
// the same ID.
func (d *DB) PutDataPoint(p *models.HealthDataPoint) error {
	args, err := pointArgs(p)
	if err != nil {
		return err
	}
	if _, err := d.db.Exec(pointUpsert, args...); err != nil {
		return fmt.Errorf("put data point: %w", err)
	}
	return nil
}

// PutDataPoints stores a batch of data points in one transaction. Either
// the whole batch becomes visible or none of it does.
func (d *DB) PutDataPoints(points []*models.HealthDataPoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(pointUpsert)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		args, err := pointArgs(p)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("put data point %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// GetDataPoint retrieves a data point by ID.
func (d *DB) GetDataPoint(id string) (*models.HealthDataPoint, error) {
	query := `SELECT ` + pointColumns + ` FROM health_data_points WHERE id = ?`
	p, err := scanPoint(d.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found: %s", id)
		}
		return nil, err
	}
	return p, nil
}

// DeleteDataPoint removes a data point by ID.
func (d *DB) DeleteDataPoint(id string) error {
	result, err := d.db.Exec("DELETE FROM health_data_points WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete data point: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete data point: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", id)
	}
	return nil
}

// QueryFilter narrows a data-point query. Nil/empty fields mean
// "no restriction"; date bounds are inclusive. Offset works with or
// without Limit.
type QueryFilter struct {
	Start   *time.Time
	End     *time.Time
	Types   []models.DataType
	Sources []models.DataSource
	Limit   int
	Offset  int
}

// QueryDataPoints returns data points matching the filter, ordered by
// timestamp descending. Filters OR within a field and AND across fields.
func (d *DB) QueryDataPoints(f QueryFilter) ([]*models.HealthDataPoint, error) {
	query := `SELECT ` + pointColumns + ` FROM health_data_points`
	var clauses []string
	var args []interface{}

	if f.Start != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, f.Start.UnixMilli())
	}
	if f.End != nil {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, f.End.UnixMilli())
	}
	if len(f.Types) > 0 {
		clauses = append(clauses, "type IN ("+placeholders(len(f.Types))+")")
		for _, t := range f.Types {
			args = append(args, string(t))
		}
	}
	if len(f.Sources) > 0 {
		clauses = append(clauses, "source IN ("+placeholders(len(f.Sources))+")")
		for _, s := range f.Sources {
			args = append(args, string(s))
		}
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC"

	if f.Limit > 0 || f.Offset > 0 {
		limit := f.Limit
		if limit <= 0 {
			// SQLite treats a negative limit as unlimited, which OFFSET needs
			limit = -1
		}
		query += " LIMIT ?"
		args = append(args, limit)
		if f.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, f.Offset)
		}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query data points: %w", err)
	}
	defer rows.Close()

	var points []*models.HealthDataPoint
	for rows.Next() {
		p, err := scanPoint(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// pointArgs flattens a data point into upsert bind arguments.
func pointArgs(p *models.HealthDataPoint) ([]interface{}, error) {
	var metadata sql.NullString
	if len(p.Metadata) > 0 {
		raw, err := json.Marshal(p.Metadata)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata for %s: %w", p.ID, err)
		}
		metadata = sql.NullString{String: string(raw), Valid: true}
	}

	var syncedAt sql.NullInt64
	if p.SyncedAt != nil {
		syncedAt = sql.NullInt64{Int64: p.SyncedAt.UnixMilli(), Valid: true}
	}

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return []interface{}{
		p.ID,
		string(p.Type),
		p.Value,
		string(p.Unit),
		p.Timestamp.UnixMilli(),
		p.DateFrom.UnixMilli(),
		p.DateTo.UnixMilli(),
		string(p.Source),
		p.SourceDeviceName,
		p.SourceAppName,
		metadata,
		boolToInt(p.IsManualEntry),
		syncedAt,
		createdAt.UnixMilli(),
	}, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPoint reads one row into a HealthDataPoint.
func scanPoint(row rowScanner) (*models.HealthDataPoint, error) {
	var p models.HealthDataPoint
	var dataType, unit, source string
	var timestamp, dateFrom, dateTo, createdAt int64
	var deviceName, appName, metadata sql.NullString
	var manual int
	var syncedAt sql.NullInt64

	err := row.Scan(&p.ID, &dataType, &p.Value, &unit, &timestamp, &dateFrom, &dateTo,
		&source, &deviceName, &appName, &metadata, &manual, &syncedAt, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan data point: %w", err)
	}

	p.Type = models.DataType(dataType)
	p.Unit = models.DataUnit(unit)
	p.Source = models.DataSource(source)
	p.Timestamp = time.UnixMilli(timestamp)
	p.DateFrom = time.UnixMilli(dateFrom)
	p.DateTo = time.UnixMilli(dateTo)
	p.CreatedAt = time.UnixMilli(createdAt)
	p.IsManualEntry = manual != 0
	if deviceName.Valid {
		p.SourceDeviceName = &deviceName.String
	}
	if appName.Valid {
		p.SourceAppName = &appName.String
	}
	if metadata.Valid {
		if err := json.Unmarshal([]byte(metadata.String), &p.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata for %s: %w", p.ID, err)
		}
	}
	if syncedAt.Valid {
		t := time.UnixMilli(syncedAt.Int64)
		p.SyncedAt = &t
	}

	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
