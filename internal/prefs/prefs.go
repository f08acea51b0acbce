// ABOUTME: Badger-backed key-value preference store.
// ABOUTME: Holds privacy settings, integration status, and sync cursors.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/harperreed/readiness/internal/models"
)

const (
	// KeyPrivacySettings holds the serialized HealthPrivacySettings blob.
	KeyPrivacySettings = "health_privacy_settings"
	// KeyIntegrations holds the serialized integration list.
	KeyIntegrations = "health_integrations"

	lastSyncPrefix = "last_sync:"
)

// Store is a small personal-preference store kept outside the relational
// schema. Values are opaque blobs under fixed keys.
type Store struct {
	db *badger.DB
}

// Open opens or creates the preference store at the given directory.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create prefs directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open prefs store: %w", err)
	}
	return &Store{db: db}, nil
}

// DefaultDir returns the default preference store path following XDG spec.
func DefaultDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "readiness", "prefs")
}

// Close closes the underlying badger database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, with found=false when absent.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a value under key, replacing any prior value.
func (s *Store) Set(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// LastSync returns the persisted sync cursor for a source, with
// found=false when the source has never synced.
func (s *Store) LastSync(source models.DataSource) (time.Time, bool, error) {
	raw, found, err := s.Get(lastSyncPrefix + string(source))
	if err != nil || !found {
		return time.Time{}, false, err
	}
	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse last sync for %s: %w", source, err)
	}
	return time.UnixMilli(millis), true, nil
}

// SetLastSync advances the sync cursor for a source.
func (s *Store) SetLastSync(source models.DataSource, t time.Time) error {
	return s.Set(lastSyncPrefix+string(source), []byte(strconv.FormatInt(t.UnixMilli(), 10)))
}

// ClearLastSync removes a source's cursor so the next sync uses the
// default lookback window.
func (s *Store) ClearLastSync(source models.DataSource) error {
	return s.Delete(lastSyncPrefix + string(source))
}
