// ABOUTME: Tests for the file drop source and day aggregation.
// ABOUTME: Exercises window filtering, ID derivation, and stat folding.
package source

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/prefs"
)

func setupFileSource(t *testing.T) (*FileSource, string) {
	t.Helper()
	dir := t.TempDir()
	dropDir := filepath.Join(dir, "drop")
	if err := os.MkdirAll(dropDir, 0o755); err != nil {
		t.Fatalf("mkdir drop dir: %v", err)
	}
	p, err := prefs.Open(filepath.Join(dir, "prefs"))
	if err != nil {
		t.Fatalf("open prefs: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return NewFileSource(dropDir, p), dropDir
}

func writeDrop(t *testing.T, dir, name string, drop DropFile) {
	t.Helper()
	data, err := json.Marshal(drop)
	if err != nil {
		t.Fatalf("marshal drop: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("write drop file: %v", err)
	}
}

func TestHasPermissions(t *testing.T) {
	src, _ := setupFileSource(t)
	granted, err := src.HasPermissions(context.Background())
	if err != nil {
		t.Fatalf("HasPermissions failed: %v", err)
	}
	if !granted {
		t.Error("existing drop directory should grant permission")
	}

	missing := NewFileSource(filepath.Join(t.TempDir(), "nope"), nil)
	granted, err = missing.HasPermissions(context.Background())
	if err != nil {
		t.Fatalf("HasPermissions failed: %v", err)
	}
	if granted {
		t.Error("missing drop directory must not grant permission")
	}
}

func TestFetchDataWindowAndIDs(t *testing.T) {
	src, dropDir := setupFileSource(t)

	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	inside := base.Add(-time.Hour)
	before := base.Add(-48 * time.Hour)
	writeDrop(t, dropDir, "garmin.json", DropFile{
		Source: "garmin",
		Points: []*models.HealthDataPoint{
			{Type: models.TypeSteps, Value: 5000, Unit: models.UnitCount, Timestamp: inside},
			{Type: models.TypeSteps, Value: 900, Unit: models.UnitCount, Timestamp: before},
		},
	})

	points, err := src.FetchData(context.Background(), base.Add(-24*time.Hour), base)
	if err != nil {
		t.Fatalf("FetchData failed: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point inside window, got %d", len(points))
	}
	p := points[0]
	if p.Source != models.SourceGarmin {
		t.Errorf("expected declared source applied, got %s", p.Source)
	}
	want := models.PointID(models.SourceGarmin, models.TypeSteps, inside)
	if p.ID != want {
		t.Errorf("expected derived ID %s, got %s", want, p.ID)
	}
}

func TestFetchDataWindowBoundariesInclusive(t *testing.T) {
	src, dropDir := setupFileSource(t)

	start := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	writeDrop(t, dropDir, "edges.json", DropFile{
		Source: "fitbit",
		Points: []*models.HealthDataPoint{
			{Type: models.TypeSteps, Value: 1, Timestamp: start},
			{Type: models.TypeSteps, Value: 2, Timestamp: end},
			{Type: models.TypeSteps, Value: 3, Timestamp: start.Add(-time.Millisecond)},
			{Type: models.TypeSteps, Value: 4, Timestamp: end.Add(time.Millisecond)},
		},
	})

	points, err := src.FetchData(context.Background(), start, end)
	if err != nil {
		t.Fatalf("FetchData failed: %v", err)
	}
	if len(points) != 2 {
		t.Errorf("window must include both endpoints, got %d points", len(points))
	}
}

func TestFetchDataSkipsNonJSON(t *testing.T) {
	src, dropDir := setupFileSource(t)
	if err := os.WriteFile(filepath.Join(dropDir, "notes.txt"), []byte("not data"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	points, err := src.FetchData(context.Background(), time.Time{}, time.Now())
	if err != nil {
		t.Fatalf("FetchData failed: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected no points, got %d", len(points))
	}
}

func TestCursorRoundTrip(t *testing.T) {
	src, _ := setupFileSource(t)
	ctx := context.Background()

	_, found, err := src.LastSync(ctx)
	if err != nil {
		t.Fatalf("LastSync failed: %v", err)
	}
	if found {
		t.Error("fresh source must have no cursor")
	}

	at := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	if err := src.UpdateLastSync(ctx, at); err != nil {
		t.Fatalf("UpdateLastSync failed: %v", err)
	}
	got, found, err := src.LastSync(ctx)
	if err != nil {
		t.Fatalf("LastSync failed: %v", err)
	}
	if !found || !got.Equal(at) {
		t.Errorf("cursor round trip mismatch: found=%v got=%v", found, got)
	}
}

func TestAggregateDaySumsAndLatest(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	points := []*models.HealthDataPoint{
		{Source: models.SourceFitbit, Type: models.TypeSteps, Value: 3000, Timestamp: day.Add(9 * time.Hour)},
		{Source: models.SourceFitbit, Type: models.TypeSteps, Value: 5000, Timestamp: day.Add(18 * time.Hour)},
		{Source: models.SourceFitbit, Type: models.TypeSleepAsleep, Value: 400, Timestamp: day.Add(7 * time.Hour)},
		{Source: models.SourceFitbit, Type: models.TypeSleepAsleep, Value: 50, Timestamp: day.Add(14 * time.Hour)},
		{Source: models.SourceWhoop, Type: models.TypeHRV, Value: 48, Timestamp: day.Add(6 * time.Hour)},
		{Source: models.SourceWhoop, Type: models.TypeHRV, Value: 55, Timestamp: day.Add(8 * time.Hour)},
		{Source: models.SourceWhoop, Type: models.TypeRecoveryScore, Value: 81, Timestamp: day.Add(6 * time.Hour)},
	}

	stats := AggregateDay("2026-08-29", points)

	if stats.Steps == nil || *stats.Steps != 8000 {
		t.Errorf("steps should sum to 8000, got %v", stats.Steps)
	}
	if stats.SleepMinutes == nil || *stats.SleepMinutes != 450 {
		t.Errorf("sleep should sum to 450, got %v", stats.SleepMinutes)
	}
	if stats.HRV == nil || *stats.HRV != 55 {
		t.Errorf("HRV should take the latest reading, got %v", stats.HRV)
	}
	if stats.RecoveryScore == nil || *stats.RecoveryScore != 81 {
		t.Errorf("recovery mismatch: %v", stats.RecoveryScore)
	}
	if !stats.HasSource(models.SourceFitbit) || !stats.HasSource(models.SourceWhoop) {
		t.Errorf("sources not tracked: %v", stats.Sources)
	}
	if stats.Date != "2026-08-29" {
		t.Errorf("date mismatch: %s", stats.Date)
	}
}

func TestAggregateDayEmpty(t *testing.T) {
	stats := AggregateDay("2026-08-29", nil)
	if stats.Steps != nil || stats.SleepMinutes != nil || stats.HRV != nil {
		t.Errorf("empty day must leave fields absent: %+v", stats)
	}
}
