// ABOUTME: Tests for the SQLite store implementation.
// ABOUTME: Verifies upsert semantics, query filters, and per-day rows.
package storage

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "readiness.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return db
}

func TestPutDataPointUpsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ts := time.Now()
	p := models.NewDataPoint(models.SourceFitbit, models.TypeSteps, 5000, ts)
	if err := db.PutDataPoint(p); err != nil {
		t.Fatalf("PutDataPoint failed: %v", err)
	}

	// Same ID, new value: must replace, not duplicate
	p2 := models.NewDataPoint(models.SourceFitbit, models.TypeSteps, 6200, ts)
	if p2.ID != p.ID {
		t.Fatalf("expected identical natural keys, got %s and %s", p.ID, p2.ID)
	}
	if err := db.PutDataPoint(p2); err != nil {
		t.Fatalf("PutDataPoint replace failed: %v", err)
	}

	points, err := db.QueryDataPoints(QueryFilter{})
	if err != nil {
		t.Fatalf("QueryDataPoints failed: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point after upsert, got %d", len(points))
	}
	if points[0].Value != 6200 {
		t.Errorf("expected latest value 6200, got %v", points[0].Value)
	}
}

func TestPutDataPointsBatch(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	now := time.Now()
	var batch []*models.HealthDataPoint
	for i := 0; i < 5; i++ {
		batch = append(batch, models.NewDataPoint(
			models.SourceGarmin, models.TypeHeartRate, float64(60+i), now.Add(time.Duration(i)*time.Minute)))
	}
	if err := db.PutDataPoints(batch); err != nil {
		t.Fatalf("PutDataPoints failed: %v", err)
	}

	points, err := db.QueryDataPoints(QueryFilter{})
	if err != nil {
		t.Fatalf("QueryDataPoints failed: %v", err)
	}
	if len(points) != 5 {
		t.Errorf("expected 5 points, got %d", len(points))
	}

	// Empty batch is a no-op
	if err := db.PutDataPoints(nil); err != nil {
		t.Errorf("empty batch should succeed: %v", err)
	}
}

func TestDataPointRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ts := time.UnixMilli(time.Now().UnixMilli()) // sqlite stores millis
	device := "Whoop 4.0"
	p := models.NewDataPoint(models.SourceWhoop, models.TypeHRV, 48.5, ts)
	p.SourceDeviceName = &device
	p.WithRange(ts.Add(-8*time.Hour), ts)
	p.WithMetadata("stage", "deep")

	if err := db.PutDataPoint(p); err != nil {
		t.Fatalf("PutDataPoint failed: %v", err)
	}

	got, err := db.GetDataPoint(p.ID)
	if err != nil {
		t.Fatalf("GetDataPoint failed: %v", err)
	}
	if got.Type != models.TypeHRV || got.Value != 48.5 || got.Unit != models.UnitMillisecond {
		t.Errorf("core fields mismatch: %+v", got)
	}
	if got.Source != models.SourceWhoop {
		t.Errorf("source mismatch: got %s", got.Source)
	}
	if got.SourceDeviceName == nil || *got.SourceDeviceName != device {
		t.Errorf("device name mismatch: %v", got.SourceDeviceName)
	}
	if got.Metadata["stage"] != "deep" {
		t.Errorf("metadata mismatch: %v", got.Metadata)
	}
	if !got.Timestamp.Equal(ts) {
		t.Errorf("timestamp mismatch: got %v, want %v", got.Timestamp, ts)
	}
	if got.SyncedAt != nil {
		t.Errorf("expected nil SyncedAt, got %v", got.SyncedAt)
	}
}

func TestQueryDataPointsFilters(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	points := []*models.HealthDataPoint{
		models.NewDataPoint(models.SourceFitbit, models.TypeSteps, 8000, base),
		models.NewDataPoint(models.SourceFitbit, models.TypeHeartRate, 62, base.Add(time.Hour)),
		models.NewDataPoint(models.SourceWhoop, models.TypeHRV, 50, base.Add(2*time.Hour)),
		models.NewDataPoint(models.SourceWhoop, models.TypeSteps, 1000, base.Add(3*time.Hour)),
	}
	if err := db.PutDataPoints(points); err != nil {
		t.Fatalf("PutDataPoints failed: %v", err)
	}

	// Order: timestamp descending
	all, err := db.QueryDataPoints(QueryFilter{})
	if err != nil {
		t.Fatalf("QueryDataPoints failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 points, got %d", len(all))
	}
	if all[0].Type != models.TypeSteps || all[0].Source != models.SourceWhoop {
		t.Errorf("expected most recent first, got %s/%s", all[0].Source, all[0].Type)
	}

	// OR within a filter
	steps, err := db.QueryDataPoints(QueryFilter{
		Types: []models.DataType{models.TypeSteps, models.TypeHRV},
	})
	if err != nil {
		t.Fatalf("type filter failed: %v", err)
	}
	if len(steps) != 3 {
		t.Errorf("expected 3 points for steps|hrv, got %d", len(steps))
	}

	// AND across filters
	whoopSteps, err := db.QueryDataPoints(QueryFilter{
		Types:   []models.DataType{models.TypeSteps},
		Sources: []models.DataSource{models.SourceWhoop},
	})
	if err != nil {
		t.Fatalf("combined filter failed: %v", err)
	}
	if len(whoopSteps) != 1 || whoopSteps[0].Value != 1000 {
		t.Errorf("expected the single whoop steps point, got %d", len(whoopSteps))
	}

	// Inclusive date bounds
	start := base.Add(time.Hour)
	end := base.Add(2 * time.Hour)
	window, err := db.QueryDataPoints(QueryFilter{Start: &start, End: &end})
	if err != nil {
		t.Fatalf("range filter failed: %v", err)
	}
	if len(window) != 2 {
		t.Errorf("expected 2 points in inclusive window, got %d", len(window))
	}

	// Limit and offset
	page, err := db.QueryDataPoints(QueryFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("paged query failed: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("expected 2 points on second page, got %d", len(page))
	}
	if !page[0].Timestamp.Equal(base.Add(time.Hour)) {
		t.Errorf("unexpected page start: %v", page[0].Timestamp)
	}

	// Offset without limit skips rows instead of being ignored
	rest, err := db.QueryDataPoints(QueryFilter{Offset: 3})
	if err != nil {
		t.Fatalf("offset-only query failed: %v", err)
	}
	if len(rest) != 1 {
		t.Errorf("expected 1 point after skipping 3, got %d", len(rest))
	}
	if len(rest) == 1 && !rest[0].Timestamp.Equal(base) {
		t.Errorf("unexpected point after offset: %v", rest[0].Timestamp)
	}
}

func TestDailyStatsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// Absent row is (nil, nil), not an error
	missing, err := db.GetDailyStats("2026-08-29")
	if err != nil {
		t.Fatalf("GetDailyStats failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for absent stats, got %+v", missing)
	}

	stats := models.NewDailyStats("2026-08-29")
	sleep := 450.0
	steps := 8000
	stats.SleepMinutes = &sleep
	stats.Steps = &steps
	stats.AddSource(models.SourceFitbit)

	if err := db.PutDailyStats(stats); err != nil {
		t.Fatalf("PutDailyStats failed: %v", err)
	}

	got, err := db.GetDailyStats("2026-08-29")
	if err != nil {
		t.Fatalf("GetDailyStats failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected stats row")
	}
	if got.SleepMinutes == nil || *got.SleepMinutes != 450 {
		t.Errorf("sleep mismatch: %v", got.SleepMinutes)
	}
	if got.Steps == nil || *got.Steps != 8000 {
		t.Errorf("steps mismatch: %v", got.Steps)
	}
	if got.HRV != nil {
		t.Errorf("expected absent HRV, got %v", *got.HRV)
	}
	if !got.HasSource(models.SourceFitbit) {
		t.Errorf("sources mismatch: %v", got.Sources)
	}

	// Replace is wholesale: the new row has no steps
	replacement := models.NewDailyStats("2026-08-29")
	hrv := 52.0
	replacement.HRV = &hrv
	if err := db.PutDailyStats(replacement); err != nil {
		t.Fatalf("PutDailyStats replace failed: %v", err)
	}
	got, err = db.GetDailyStats("2026-08-29")
	if err != nil {
		t.Fatalf("GetDailyStats failed: %v", err)
	}
	if got.Steps != nil {
		t.Errorf("wholesale replace should drop steps, got %v", *got.Steps)
	}
	if got.HRV == nil || *got.HRV != 52 {
		t.Errorf("HRV mismatch after replace: %v", got.HRV)
	}
}

func TestReadinessScoreRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	missing, err := db.GetReadinessScore("2026-08-29")
	if err != nil {
		t.Fatalf("GetReadinessScore failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for absent score, got %+v", missing)
	}

	sleepScore := 90
	score := &models.DailyReadinessScore{
		Date:                    "2026-08-29",
		OverallScore:            85,
		Recommendation:          "Great day for challenging goals!",
		SleepScore:              &sleepScore,
		HabitRecommendations:    []string{"Perfect time for your hardest habits"},
		ActivityRecommendations: []string{"High-intensity workout recommended"},
		DataSourcesUsed:         []models.DataSource{models.SourceFitbit},
		ConfidenceLevel:         0.65,
	}
	if err := db.PutReadinessScore(score); err != nil {
		t.Fatalf("PutReadinessScore failed: %v", err)
	}

	got, err := db.GetReadinessScore("2026-08-29")
	if err != nil {
		t.Fatalf("GetReadinessScore failed: %v", err)
	}
	if got.OverallScore != 85 || got.ConfidenceLevel != 0.65 {
		t.Errorf("score mismatch: %+v", got)
	}
	if got.SleepScore == nil || *got.SleepScore != 90 {
		t.Errorf("sleep sub-score mismatch: %v", got.SleepScore)
	}
	// Absent sub-scores come back nil, never zero
	if got.ActivityScore != nil || got.RecoveryScore != nil || got.HRVScore != nil || got.StressScore != nil {
		t.Errorf("absent sub-scores must be nil: %+v", got)
	}
	if len(got.HabitRecommendations) != 1 || got.HabitRecommendations[0] != "Perfect time for your hardest habits" {
		t.Errorf("habit recommendations mismatch: %v", got.HabitRecommendations)
	}

	// Recomputation overwrites idempotently
	score.OverallScore = 70
	if err := db.PutReadinessScore(score); err != nil {
		t.Fatalf("PutReadinessScore overwrite failed: %v", err)
	}
	got, err = db.GetReadinessScore("2026-08-29")
	if err != nil {
		t.Fatalf("GetReadinessScore failed: %v", err)
	}
	if got.OverallScore != 70 {
		t.Errorf("expected overwritten score 70, got %d", got.OverallScore)
	}
}

func TestStorageStats(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	empty, err := db.GetStorageStats()
	if err != nil {
		t.Fatalf("GetStorageStats failed: %v", err)
	}
	if empty.DataPointCount != 0 || empty.OldestPoint != nil || empty.NewestPoint != nil {
		t.Errorf("expected empty stats, got %+v", empty)
	}

	old := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)
	if err := db.PutDataPoints([]*models.HealthDataPoint{
		models.NewDataPoint(models.SourceFitbit, models.TypeSteps, 100, old),
		models.NewDataPoint(models.SourceFitbit, models.TypeSteps, 200, recent),
	}); err != nil {
		t.Fatalf("PutDataPoints failed: %v", err)
	}
	if err := db.PutDailyStats(models.NewDailyStats("2026-08-28")); err != nil {
		t.Fatalf("PutDailyStats failed: %v", err)
	}

	stats, err := db.GetStorageStats()
	if err != nil {
		t.Fatalf("GetStorageStats failed: %v", err)
	}
	if stats.DataPointCount != 2 || stats.DailyStatsCount != 1 {
		t.Errorf("counts mismatch: %+v", stats)
	}
	if stats.OldestPoint == nil || !stats.OldestPoint.Equal(old) {
		t.Errorf("oldest mismatch: %v", stats.OldestPoint)
	}
	if stats.NewestPoint == nil || !stats.NewestPoint.Equal(recent) {
		t.Errorf("newest mismatch: %v", stats.NewestPoint)
	}
}

func TestDeleteAll(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.PutDataPoint(models.NewDataPoint(models.SourceManual, models.TypeSteps, 100, time.Now())); err != nil {
		t.Fatalf("PutDataPoint failed: %v", err)
	}
	if err := db.PutDailyStats(models.NewDailyStats("2026-08-29")); err != nil {
		t.Fatalf("PutDailyStats failed: %v", err)
	}
	if err := db.PutReadinessScore(&models.DailyReadinessScore{Date: "2026-08-29", OverallScore: 50}); err != nil {
		t.Fatalf("PutReadinessScore failed: %v", err)
	}

	if err := db.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}

	stats, err := db.GetStorageStats()
	if err != nil {
		t.Fatalf("GetStorageStats failed: %v", err)
	}
	if stats.DataPointCount != 0 || stats.DailyStatsCount != 0 || stats.ScoreCount != 0 {
		t.Errorf("expected empty store after wipe, got %+v", stats)
	}
}

func TestDeleteOlderThanBoundary(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cutoff := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	atCutoff := models.NewDataPoint(models.SourceFitbit, models.TypeSteps, 1, cutoff)
	oneMilliOlder := models.NewDataPoint(models.SourceFitbit, models.TypeHeartRate, 2, cutoff.Add(-time.Millisecond))
	newer := models.NewDataPoint(models.SourceFitbit, models.TypeHRV, 3, cutoff.Add(time.Hour))
	if err := db.PutDataPoints([]*models.HealthDataPoint{atCutoff, oneMilliOlder, newer}); err != nil {
		t.Fatalf("PutDataPoints failed: %v", err)
	}

	if err := db.PutDailyStats(models.NewDailyStats("2026-08-22")); err != nil {
		t.Fatalf("PutDailyStats failed: %v", err)
	}
	if err := db.PutDailyStats(models.NewDailyStats("2026-08-23")); err != nil {
		t.Fatalf("PutDailyStats failed: %v", err)
	}
	if err := db.PutReadinessScore(&models.DailyReadinessScore{Date: "2026-08-22", OverallScore: 50}); err != nil {
		t.Fatalf("PutReadinessScore failed: %v", err)
	}

	removed, err := db.DeleteOlderThan(cutoff)
	if err != nil {
		t.Fatalf("DeleteOlderThan failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed point, got %d", removed)
	}

	// Exactly-at-cutoff point survives
	if _, err := db.GetDataPoint(atCutoff.ID); err != nil {
		t.Errorf("point at cutoff should survive: %v", err)
	}
	// One millisecond older is gone
	if _, err := db.GetDataPoint(oneMilliOlder.ID); err == nil {
		t.Error("point 1ms older than cutoff should be deleted")
	}

	// Per-day rows before the cutoff date are gone; the cutoff date stays
	gone, err := db.GetDailyStats("2026-08-22")
	if err != nil {
		t.Fatalf("GetDailyStats failed: %v", err)
	}
	if gone != nil {
		t.Error("stats before cutoff date should be deleted")
	}
	kept, err := db.GetDailyStats("2026-08-23")
	if err != nil {
		t.Fatalf("GetDailyStats failed: %v", err)
	}
	if kept == nil {
		t.Error("stats on cutoff date should survive")
	}
	score, err := db.GetReadinessScore("2026-08-22")
	if err != nil {
		t.Fatalf("GetReadinessScore failed: %v", err)
	}
	if score != nil {
		t.Error("score before cutoff date should be deleted")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.PutDataPoint(models.NewDataPoint(models.SourceGarmin, models.TypeSteps, 7500, time.Now())); err != nil {
		t.Fatalf("PutDataPoint failed: %v", err)
	}
	if err := db.PutDailyStats(models.NewDailyStats("2026-08-29")); err != nil {
		t.Fatalf("PutDailyStats failed: %v", err)
	}

	data, err := db.GetAllData()
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	if len(data.DataPoints) != 1 || len(data.DailyStats) != 1 {
		t.Fatalf("export mismatch: %d points, %d stats", len(data.DataPoints), len(data.DailyStats))
	}

	fresh := setupTestDB(t)
	defer fresh.Close()
	if err := fresh.ImportData(data); err != nil {
		t.Fatalf("ImportData failed: %v", err)
	}
	// Importing twice changes nothing (upsert)
	if err := fresh.ImportData(data); err != nil {
		t.Fatalf("second ImportData failed: %v", err)
	}

	stats, err := fresh.GetStorageStats()
	if err != nil {
		t.Fatalf("GetStorageStats failed: %v", err)
	}
	if stats.DataPointCount != 1 || stats.DailyStatsCount != 1 {
		t.Errorf("import should be idempotent, got %+v", stats)
	}
}

func TestLazyDBSingleFlight(t *testing.T) {
	lazy := NewLazyDB(filepath.Join(t.TempDir(), "readiness.db"))
	defer lazy.Close()

	const callers = 16
	handles := make(chan *DB, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			db, err := lazy.Get()
			if err != nil {
				t.Errorf("Get failed: %v", err)
			}
			handles <- db
		}()
	}
	wg.Wait()
	close(handles)

	first := <-handles
	if first == nil {
		t.Fatal("Get returned a nil handle")
	}
	for db := range handles {
		if db != first {
			t.Error("concurrent first callers must share one handle")
		}
	}

	// The shared handle is fully initialized
	p := models.NewDataPoint(models.SourceManual, models.TypeSteps, 100, time.Now())
	if err := first.PutDataPoint(p); err != nil {
		t.Errorf("shared handle unusable: %v", err)
	}
}
