// ABOUTME: Daily stats and readiness score rows, keyed by local date.
// ABOUTME: Single-row lookup/replace; absent sub-scores read back as nil.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// PutDailyStats replaces the stats row for the given date wholesale.
func (d *DB) PutDailyStats(s *models.DailyStats) error {
	doc, err := models.EncodeStats(s)
	if err != nil {
		return fmt.Errorf("put daily stats: %w", err)
	}

	var sources sql.NullString
	if len(s.Sources) > 0 {
		raw, err := json.Marshal(s.Sources)
		if err != nil {
			return fmt.Errorf("put daily stats: %w", err)
		}
		sources = sql.NullString{String: string(raw), Valid: true}
	}

	query := `
		INSERT OR REPLACE INTO daily_stats (date, stats_json, sources, last_updated)
		VALUES (?, ?, ?, ?)
	`
	_, err = d.db.Exec(query, s.Date, string(doc), sources, s.LastUpdated.UnixMilli())
	if err != nil {
		return fmt.Errorf("put daily stats: %w", err)
	}
	return nil
}

// GetDailyStats retrieves the stats row for a date. Returns (nil, nil)
// when no row exists; absence is an expected state, not an error.
func (d *DB) GetDailyStats(date string) (*models.DailyStats, error) {
	var doc string
	var lastUpdated int64
	err := d.db.QueryRow(
		"SELECT stats_json, last_updated FROM daily_stats WHERE date = ?", date,
	).Scan(&doc, &lastUpdated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily stats: %w", err)
	}

	s, err := models.DecodeStats([]byte(doc))
	if err != nil {
		return nil, err
	}
	s.LastUpdated = time.UnixMilli(lastUpdated)
	return s, nil
}

// PutReadinessScore replaces the score row for the score's date.
// Recomputation overwrites idempotently.
func (d *DB) PutReadinessScore(s *models.DailyReadinessScore) error {
	habits, err := json.Marshal(s.HabitRecommendations)
	if err != nil {
		return fmt.Errorf("put readiness score: %w", err)
	}
	activities, err := json.Marshal(s.ActivityRecommendations)
	if err != nil {
		return fmt.Errorf("put readiness score: %w", err)
	}
	sources, err := json.Marshal(s.DataSourcesUsed)
	if err != nil {
		return fmt.Errorf("put readiness score: %w", err)
	}

	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT OR REPLACE INTO readiness_scores
		(date, overall_score, sleep_score, recovery_score, activity_score,
		 stress_score, hrv_score, recommendation, habit_recommendations,
		 activity_recommendations, data_sources, confidence_level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = d.db.Exec(query,
		s.Date,
		s.OverallScore,
		s.SleepScore,
		s.RecoveryScore,
		s.ActivityScore,
		s.StressScore,
		s.HRVScore,
		s.Recommendation,
		string(habits),
		string(activities),
		string(sources),
		s.ConfidenceLevel,
		createdAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put readiness score: %w", err)
	}
	return nil
}

// GetReadinessScore retrieves the score row for a date. Returns
// (nil, nil) when no row exists. NULL sub-scores come back as nil
// pointers, never as zero.
func (d *DB) GetReadinessScore(date string) (*models.DailyReadinessScore, error) {
	query := `
		SELECT date, overall_score, sleep_score, recovery_score, activity_score,
		       stress_score, hrv_score, recommendation, habit_recommendations,
		       activity_recommendations, data_sources, confidence_level, created_at
		FROM readiness_scores WHERE date = ?
	`

	var s models.DailyReadinessScore
	var sleep, recovery, activity, stress, hrv sql.NullInt64
	var habits, activities, sources string
	var createdAt int64

	err := d.db.QueryRow(query, date).Scan(
		&s.Date, &s.OverallScore, &sleep, &recovery, &activity, &stress, &hrv,
		&s.Recommendation, &habits, &activities, &sources, &s.ConfidenceLevel, &createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get readiness score: %w", err)
	}

	s.SleepScore = nullableInt(sleep)
	s.RecoveryScore = nullableInt(recovery)
	s.ActivityScore = nullableInt(activity)
	s.StressScore = nullableInt(stress)
	s.HRVScore = nullableInt(hrv)
	s.CreatedAt = time.UnixMilli(createdAt)

	if err := json.Unmarshal([]byte(habits), &s.HabitRecommendations); err != nil {
		return nil, fmt.Errorf("get readiness score: decode habit recommendations: %w", err)
	}
	if err := json.Unmarshal([]byte(activities), &s.ActivityRecommendations); err != nil {
		return nil, fmt.Errorf("get readiness score: decode activity recommendations: %w", err)
	}
	if err := json.Unmarshal([]byte(sources), &s.DataSourcesUsed); err != nil {
		return nil, fmt.Errorf("get readiness score: decode data sources: %w", err)
	}

	return &s, nil
}

// ListReadinessScores returns the most recent score rows, newest date first.
func (d *DB) ListReadinessScores(limit int) ([]*models.DailyReadinessScore, error) {
	query := "SELECT date FROM readiness_scores ORDER BY date DESC"
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list readiness scores: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("list readiness scores: %w", err)
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	scores := make([]*models.DailyReadinessScore, 0, len(dates))
	for _, date := range dates {
		s, err := d.GetReadinessScore(date)
		if err != nil {
			return nil, err
		}
		if s != nil {
			scores = append(scores, s)
		}
	}
	return scores, nil
}

func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
