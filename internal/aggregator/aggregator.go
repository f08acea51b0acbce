// ABOUTME: Aggregator orchestrating sync, scoring, retention, and prefs.
// ABOUTME: Owns no state beyond handles; safe to reconstruct at any time.
package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/prefs"
	"github.com/harperreed/readiness/internal/scoring"
	"github.com/harperreed/readiness/internal/source"
	"github.com/harperreed/readiness/internal/storage"
	"go.uber.org/zap"
)

// defaultLookback is the fetch window used when a source has no cursor.
const defaultLookback = 7 * 24 * time.Hour

// Aggregator wires sources, the store, and the scoring engine together.
type Aggregator struct {
	store   storage.Store
	prefs   *prefs.Store
	sources []source.Source
	log     *zap.Logger
	now     func() time.Time
}

// New creates an aggregator over the given store and preference store.
func New(store storage.Store, p *prefs.Store, log *zap.Logger, sources ...source.Source) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{
		store:   store,
		prefs:   p,
		sources: sources,
		log:     log,
		now:     time.Now,
	}
}

// WithClock overrides the aggregator's clock. Used by tests to pin "now".
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// SyncAll runs the end-to-end sync across every registered source:
// fetch new points since each source's cursor, store them, rebuild
// today's stats wholesale, recompute today's readiness score, and only
// then advance the cursors. Any failure aborts before the cursors move,
// so the next sync re-covers the same window; upsert storage makes the
// re-fetch harmless.
func (a *Aggregator) SyncAll(ctx context.Context) error {
	now := a.now()
	today := now.Format(models.DateFormat)
	merged := models.NewDailyStats(today)
	var synced []source.Source

	for _, src := range a.sources {
		granted, err := src.HasPermissions(ctx)
		if err != nil {
			a.log.Error("permission check failed", zap.String("source", src.Name()), zap.Error(err))
			return fmt.Errorf("check permissions for %s: %w", src.Name(), err)
		}
		if !granted {
			// Denied permission is a normal state, not an error.
			a.log.Debug("permissions not granted, skipping", zap.String("source", src.Name()))
			continue
		}

		start, found, err := src.LastSync(ctx)
		if err != nil {
			a.log.Error("cursor read failed", zap.String("source", src.Name()), zap.Error(err))
			return fmt.Errorf("read cursor for %s: %w", src.Name(), err)
		}
		if !found {
			start = now.Add(-defaultLookback)
		}

		points, err := src.FetchData(ctx, start, now)
		if err != nil {
			a.log.Error("fetch failed", zap.String("source", src.Name()), zap.Error(err))
			return fmt.Errorf("fetch from %s: %w", src.Name(), err)
		}
		stampSynced(points, now)

		if err := a.store.PutDataPoints(points); err != nil {
			a.log.Error("store failed", zap.String("source", src.Name()), zap.Error(err))
			return fmt.Errorf("store points from %s: %w", src.Name(), err)
		}

		todayStats, err := src.FetchTodayStats(ctx)
		if err != nil {
			a.log.Error("today stats failed", zap.String("source", src.Name()), zap.Error(err))
			return fmt.Errorf("fetch today stats from %s: %w", src.Name(), err)
		}
		merged.Merge(todayStats)

		a.log.Info("source synced",
			zap.String("source", src.Name()),
			zap.Int("points", len(points)),
			zap.Time("window_start", start))
		synced = append(synced, src)
	}

	if len(synced) == 0 {
		return nil
	}

	merged.Date = today
	merged.LastUpdated = now
	if err := a.store.PutDailyStats(merged); err != nil {
		a.log.Error("daily stats store failed", zap.String("date", today), zap.Error(err))
		return fmt.Errorf("store daily stats: %w", err)
	}

	if _, err := a.CalculateReadiness(ctx, today); err != nil {
		return err
	}

	for _, src := range synced {
		if err := src.UpdateLastSync(ctx, now); err != nil {
			a.log.Error("cursor advance failed", zap.String("source", src.Name()), zap.Error(err))
			return fmt.Errorf("advance cursor for %s: %w", src.Name(), err)
		}
	}
	if err := a.markIntegrationsSynced(synced, now); err != nil {
		a.log.Warn("integration status update failed", zap.Error(err))
	}

	a.log.Info("sync complete", zap.Int("sources", len(synced)), zap.String("date", today))
	return nil
}

// CalculateReadiness computes and persists the readiness score for a
// date, returning it to the caller.
func (a *Aggregator) CalculateReadiness(ctx context.Context, date string) (*models.DailyReadinessScore, error) {
	current, err := a.store.GetDailyStats(date)
	if err != nil {
		return nil, err
	}

	var previous *models.DailyStats
	if day, err := time.Parse(models.DateFormat, date); err == nil {
		previous, err = a.store.GetDailyStats(day.AddDate(0, 0, -1).Format(models.DateFormat))
		if err != nil {
			return nil, err
		}
	}

	score := scoring.Score(date, current, previous)
	if err := a.store.PutReadinessScore(score); err != nil {
		a.log.Error("score store failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	a.log.Info("readiness computed",
		zap.String("date", date),
		zap.Int("overall", score.OverallScore),
		zap.Float64("confidence", score.ConfidenceLevel))
	return score, nil
}

// RecordManual stores a manually-entered data point, honoring the
// privacy setting that disables manual entry.
func (a *Aggregator) RecordManual(ctx context.Context, p *models.HealthDataPoint) error {
	settings, err := a.LoadPrivacySettings()
	if err != nil {
		return err
	}
	if !settings.AllowManualEntry {
		return fmt.Errorf("manual entry is disabled in privacy settings")
	}
	p.IsManualEntry = true
	if p.Source == "" {
		p.Source = models.SourceManual
	}
	return a.store.PutDataPoint(p)
}

func stampSynced(points []*models.HealthDataPoint, now time.Time) {
	for _, p := range points {
		if p.SyncedAt == nil {
			t := now
			p.SyncedAt = &t
		}
	}
}

func (a *Aggregator) markIntegrationsSynced(synced []source.Source, now time.Time) error {
	integrations, err := a.LoadIntegrations()
	if err != nil {
		return err
	}
	for _, src := range synced {
		updated := false
		for i := range integrations {
			if integrations[i].Source == src.Kind() {
				t := now
				integrations[i].Connected = true
				integrations[i].LastSyncedAt = &t
				updated = true
			}
		}
		if !updated {
			t := now
			integrations = append(integrations, models.HealthIntegration{
				Source:       src.Kind(),
				Enabled:      true,
				Connected:    true,
				LastSyncedAt: &t,
			})
		}
	}
	return a.SaveIntegrations(integrations)
}
