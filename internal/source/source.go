// ABOUTME: Source interface, the contract every health adapter presents.
// ABOUTME: Adapters own auth and fetching; the core never sees either.
package source

import (
	"context"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// Source is the uniform surface a health provider adapter exposes to the
// aggregator. Implementations are stateless query surfaces over a provider
// session; any timeout or retry policy lives behind this interface.
type Source interface {
	// Name is a human-readable adapter name, used for logging.
	Name() string

	// Kind identifies which DataSource enum this adapter produces.
	Kind() models.DataSource

	// HasPermissions reports whether the user has granted access.
	// A false return is a normal state, not an error.
	HasPermissions(ctx context.Context) (bool, error)

	// LastSync returns this adapter's sync cursor, with found=false
	// when the adapter has never completed a sync.
	LastSync(ctx context.Context) (time.Time, bool, error)

	// FetchData returns raw data points recorded in [start, end].
	FetchData(ctx context.Context, start, end time.Time) ([]*models.HealthDataPoint, error)

	// FetchTodayStats returns the adapter's pre-aggregated snapshot of
	// today's signals.
	FetchTodayStats(ctx context.Context) (*models.DailyStats, error)

	// UpdateLastSync advances the cursor after a successful sync.
	UpdateLastSync(ctx context.Context, t time.Time) error
}
