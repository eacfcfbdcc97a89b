// Package storage provides the client storage and navigation log adapters.
package storage

import (
	"context"
	"fmt"

	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

// Store is a client storage that also keeps the navigation log.
type Store interface {
	port.ClientStorage
	port.NavigationLogStore
}

// Open returns the store for driver. SQL stores are migrated before use.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case DriverPostgres, DriverSQLite:
		s, err := NewSQLStore(ctx, driver, dsn)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", port.ErrUnknownStorage, driver)
	}
}
