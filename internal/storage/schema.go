// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for data points, daily stats, and readiness scores.
package storage

// initSchema creates the database schema. Single version baseline, no
// migration chain; every statement is idempotent.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS health_data_points (
		id TEXT PRIMARY KEY,
		type TEXT,
		value REAL,
		unit TEXT,
		timestamp INTEGER,
		date_from INTEGER,
		date_to INTEGER,
		source TEXT,
		source_device_name TEXT NULL,
		source_app_name TEXT NULL,
		metadata TEXT NULL,
		is_manual_entry INTEGER,
		synced_at INTEGER NULL,
		created_at INTEGER
	);

	CREATE TABLE IF NOT EXISTS daily_stats (
		date TEXT PRIMARY KEY,
		stats_json TEXT,
		sources TEXT NULL,
		last_updated INTEGER
	);

	CREATE TABLE IF NOT EXISTS readiness_scores (
		date TEXT PRIMARY KEY,
		overall_score INTEGER,
		sleep_score INTEGER NULL,
		recovery_score INTEGER NULL,
		activity_score INTEGER NULL,
		stress_score INTEGER NULL,
		hrv_score INTEGER NULL,
		recommendation TEXT,
		habit_recommendations TEXT,
		activity_recommendations TEXT,
		data_sources TEXT,
		confidence_level REAL,
		created_at INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_points_timestamp ON health_data_points(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_points_type ON health_data_points(type);
	CREATE INDEX IF NOT EXISTS idx_points_source ON health_data_points(source);
	`

	_, err := d.db.Exec(schema)
	return err
}
