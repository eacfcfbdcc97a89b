package port

import (
	"context"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
)

// ClientStorage is a durable string key/value store partitioned by client,
// the server-side counterpart of a browser's local storage.
type ClientStorage interface {
	// Get returns the value under key, with ok false when absent.
	Get(ctx context.Context, clientID, key string) (value string, ok bool, err error)

	// Set writes value under key.
	Set(ctx context.Context, clientID, key, value string) error

	// Remove deletes keys. Missing keys are not an error.
	Remove(ctx context.Context, clientID string, keys ...string) error

	// Close releases the underlying resources.
	Close() error
}

// NavigationLogStore persists navigation audit records.
type NavigationLogStore interface {
	WriteNavigation(ctx context.Context, entry domain.NavigationLog) error

	// ListNavigation returns the most recent records first, optionally
	// restricted to one outcome.
	ListNavigation(ctx context.Context, limit int, outcome string) ([]domain.NavigationLog, error)
}
