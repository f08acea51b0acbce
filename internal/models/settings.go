// ABOUTME: Privacy settings and integration status preference blobs.
// ABOUTME: Versioned JSON documents stored in the key-value preference store.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SettingsSchemaVersion is the current privacy-settings document version.
const SettingsSchemaVersion = 1

// HealthPrivacySettings controls what the aggregator keeps and for how long.
type HealthPrivacySettings struct {
	SchemaVersion    int  `json:"schema_version"`
	RetentionDays    int  `json:"retention_days"`
	LocalOnly        bool `json:"local_only"`
	AllowManualEntry bool `json:"allow_manual_entry"`
	ShareDiagnostics bool `json:"share_diagnostics"`
}

// DefaultPrivacySettings returns the documented defaults used when no
// settings have been persisted: one year of history, local-only storage.
func DefaultPrivacySettings() *HealthPrivacySettings {
	return &HealthPrivacySettings{
		SchemaVersion:    SettingsSchemaVersion,
		RetentionDays:    365,
		LocalOnly:        true,
		AllowManualEntry: true,
		ShareDiagnostics: false,
	}
}

// EncodeSettings marshals privacy settings to their stored form.
func EncodeSettings(s *HealthPrivacySettings) ([]byte, error) {
	s.SchemaVersion = SettingsSchemaVersion
	return json.Marshal(s)
}

// DecodeSettings unmarshals stored privacy settings, rejecting unknown
// schema versions.
func DecodeSettings(data []byte) (*HealthPrivacySettings, error) {
	var s HealthPrivacySettings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode privacy settings: %w", err)
	}
	if s.SchemaVersion != SettingsSchemaVersion {
		return nil, fmt.Errorf("decode privacy settings: unsupported schema version %d", s.SchemaVersion)
	}
	return &s, nil
}

// HealthIntegration records the connection state of one source adapter.
type HealthIntegration struct {
	Source       DataSource `json:"source"`
	Enabled      bool       `json:"enabled"`
	Connected    bool       `json:"connected"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
}

// EncodeIntegrations marshals the integration list to its stored form.
func EncodeIntegrations(list []HealthIntegration) ([]byte, error) {
	return json.Marshal(list)
}

// DecodeIntegrations unmarshals a stored integration list.
func DecodeIntegrations(data []byte) ([]HealthIntegration, error) {
	var list []HealthIntegration
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode integrations: %w", err)
	}
	return list, nil
}
