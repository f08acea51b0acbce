// ABOUTME: DailyReadinessScore model for per-day scoring output.
// ABOUTME: Optional sub-scores are pointers; absent never means zero.
package models

import "time"

// DailyReadinessScore is the scoring engine's output for one calendar day.
// Sub-scores are present only when the contributing signal was available.
type DailyReadinessScore struct {
	Date                    string       `json:"date"`
	OverallScore            int          `json:"overall_score"`
	Recommendation          string       `json:"recommendation"`
	SleepScore              *int         `json:"sleep_score,omitempty"`
	RecoveryScore           *int         `json:"recovery_score,omitempty"`
	ActivityScore           *int         `json:"activity_score,omitempty"`
	StressScore             *int         `json:"stress_score,omitempty"`
	HRVScore                *int         `json:"hrv_score,omitempty"`
	HabitRecommendations    []string     `json:"habit_recommendations"`
	ActivityRecommendations []string     `json:"activity_recommendations"`
	DataSourcesUsed         []DataSource `json:"data_sources_used"`
	ConfidenceLevel         float64      `json:"confidence_level"`
	CreatedAt               time.Time    `json:"created_at"`
}
