// ABOUTME: Store interface for the health aggregation engine.
// ABOUTME: Defines the upsert/query contract the SQLite DB implements.
package storage

import (
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// Store defines the storage contract for health data. The interface
// allows swapping implementations (e.g., for testing).
type Store interface {
	// Data point operations
	PutDataPoint(p *models.HealthDataPoint) error
	PutDataPoints(points []*models.HealthDataPoint) error
	GetDataPoint(id string) (*models.HealthDataPoint, error)
	DeleteDataPoint(id string) error
	QueryDataPoints(f QueryFilter) ([]*models.HealthDataPoint, error)

	// Per-day rows
	GetDailyStats(date string) (*models.DailyStats, error)
	PutDailyStats(s *models.DailyStats) error
	GetReadinessScore(date string) (*models.DailyReadinessScore, error)
	PutReadinessScore(s *models.DailyReadinessScore) error
	ListReadinessScores(limit int) ([]*models.DailyReadinessScore, error)

	// Disclosure and retention
	GetStorageStats() (*StorageStats, error)
	DeleteAll() error
	DeleteOlderThan(cutoff time.Time) (int64, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	Close() error
}

// compile-time check that DB satisfies Store
var _ Store = (*DB)(nil)
