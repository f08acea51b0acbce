// ABOUTME: Retention and privacy operations on the aggregator.
// ABOUTME: Full wipe, age-based cleanup, and preference blob round-trips.
package aggregator

import (
	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/prefs"
	"go.uber.org/zap"
)

// DeleteAllData unconditionally wipes all stored health data.
func (a *Aggregator) DeleteAllData() error {
	if err := a.store.DeleteAll(); err != nil {
		a.log.Error("wipe failed", zap.Error(err))
		return err
	}
	a.log.Info("all health data deleted")
	return nil
}

// CleanupOldData deletes rows older than the retention window. A
// non-positive retentionDays disables retention and is a no-op.
func (a *Aggregator) CleanupOldData(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := a.now().AddDate(0, 0, -retentionDays)
	removed, err := a.store.DeleteOlderThan(cutoff)
	if err != nil {
		a.log.Error("cleanup failed", zap.Int("retention_days", retentionDays), zap.Error(err))
		return 0, err
	}
	a.log.Info("cleanup complete",
		zap.Int("retention_days", retentionDays),
		zap.Int64("points_removed", removed),
		zap.Time("cutoff", cutoff))
	return removed, nil
}

// SavePrivacySettings persists privacy settings to the preference store.
func (a *Aggregator) SavePrivacySettings(s *models.HealthPrivacySettings) error {
	data, err := models.EncodeSettings(s)
	if err != nil {
		return err
	}
	return a.prefs.Set(prefs.KeyPrivacySettings, data)
}

// LoadPrivacySettings returns persisted privacy settings, falling back
// to the documented defaults when none have been saved.
func (a *Aggregator) LoadPrivacySettings() (*models.HealthPrivacySettings, error) {
	data, found, err := a.prefs.Get(prefs.KeyPrivacySettings)
	if err != nil {
		return nil, err
	}
	if !found {
		return models.DefaultPrivacySettings(), nil
	}
	return models.DecodeSettings(data)
}

// SaveIntegrations persists the integration status list.
func (a *Aggregator) SaveIntegrations(list []models.HealthIntegration) error {
	data, err := models.EncodeIntegrations(list)
	if err != nil {
		return err
	}
	return a.prefs.Set(prefs.KeyIntegrations, data)
}

// LoadIntegrations returns the persisted integration list, empty when
// nothing has been saved yet.
func (a *Aggregator) LoadIntegrations() ([]models.HealthIntegration, error) {
	data, found, err := a.prefs.Get(prefs.KeyIntegrations)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return models.DecodeIntegrations(data)
}

// EnforceRetention applies the retention window from privacy settings.
// Called after sync so old rows age out without a separate scheduler.
func (a *Aggregator) EnforceRetention() (int64, error) {
	settings, err := a.LoadPrivacySettings()
	if err != nil {
		return 0, err
	}
	return a.CleanupOldData(settings.RetentionDays)
}
