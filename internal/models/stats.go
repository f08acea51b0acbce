// ABOUTME: DailyStats model, a versioned per-day summary of health signals.
// ABOUTME: Serialized as an explicit schema-versioned JSON document.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the canonical local-date key used across all per-day tables.
const DateFormat = "2006-01-02"

// StatsSchemaVersion is the current daily-stats document version.
// Decoding any other version is an error.
const StatsSchemaVersion = 1

// DailyStats summarizes one calendar day of health signals. Optional
// fields are nil when no source reported that signal. A row is replaced
// wholesale on each sync, never patched.
type DailyStats struct {
	SchemaVersion      int          `json:"schema_version"`
	Date               string       `json:"date"`
	SleepMinutes       *float64     `json:"sleep_minutes,omitempty"`
	DeepSleepMinutes   *float64     `json:"deep_sleep_minutes,omitempty"`
	Steps              *int         `json:"steps,omitempty"`
	RestingHeartRate   *float64     `json:"resting_heart_rate,omitempty"`
	HRV                *float64     `json:"hrv,omitempty"`
	RecoveryScore      *float64     `json:"recovery_score,omitempty"`
	ActiveEnergyBurned *float64     `json:"active_energy_burned,omitempty"`
	WorkoutMinutes     *float64     `json:"workout_minutes,omitempty"`
	Sources            []DataSource `json:"sources,omitempty"`
	LastUpdated        time.Time    `json:"last_updated"`
}

// NewDailyStats creates an empty stats row for a date.
func NewDailyStats(date string) *DailyStats {
	return &DailyStats{
		SchemaVersion: StatsSchemaVersion,
		Date:          date,
		LastUpdated:   time.Now(),
	}
}

// SleepHours returns the sleep duration in hours, or false if absent.
func (s *DailyStats) SleepHours() (float64, bool) {
	if s == nil || s.SleepMinutes == nil {
		return 0, false
	}
	return *s.SleepMinutes / 60.0, true
}

// HasSource reports whether a source contributed to this day.
func (s *DailyStats) HasSource(src DataSource) bool {
	for _, existing := range s.Sources {
		if existing == src {
			return true
		}
	}
	return false
}

// AddSource records a contributing source, keeping the set free of duplicates.
func (s *DailyStats) AddSource(src DataSource) {
	if !s.HasSource(src) {
		s.Sources = append(s.Sources, src)
	}
}

// Merge folds another snapshot for the same date into s. Non-nil fields
// from other win; sources are unioned. Used to combine per-adapter
// today-snapshots into the single row written wholesale per sync.
func (s *DailyStats) Merge(other *DailyStats) {
	if other == nil {
		return
	}
	if other.SleepMinutes != nil {
		s.SleepMinutes = other.SleepMinutes
	}
	if other.DeepSleepMinutes != nil {
		s.DeepSleepMinutes = other.DeepSleepMinutes
	}
	if other.Steps != nil {
		s.Steps = other.Steps
	}
	if other.RestingHeartRate != nil {
		s.RestingHeartRate = other.RestingHeartRate
	}
	if other.HRV != nil {
		s.HRV = other.HRV
	}
	if other.RecoveryScore != nil {
		s.RecoveryScore = other.RecoveryScore
	}
	if other.ActiveEnergyBurned != nil {
		s.ActiveEnergyBurned = other.ActiveEnergyBurned
	}
	if other.WorkoutMinutes != nil {
		s.WorkoutMinutes = other.WorkoutMinutes
	}
	for _, src := range other.Sources {
		s.AddSource(src)
	}
	if other.LastUpdated.After(s.LastUpdated) {
		s.LastUpdated = other.LastUpdated
	}
}

// EncodeStats marshals a stats row to its stored JSON document.
func EncodeStats(s *DailyStats) ([]byte, error) {
	s.SchemaVersion = StatsSchemaVersion
	return json.Marshal(s)
}

// DecodeStats unmarshals a stored stats document, rejecting unknown
// schema versions instead of guessing at field meanings.
func DecodeStats(data []byte) (*DailyStats, error) {
	var s DailyStats
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode daily stats: %w", err)
	}
	if s.SchemaVersion != StatsSchemaVersion {
		return nil, fmt.Errorf("decode daily stats: unsupported schema version %d", s.SchemaVersion)
	}
	return &s, nil
}
