package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

// DefaultSessionIdle is how long an unused store stays in memory.
const DefaultSessionIdle = 30 * time.Minute

// SessionManager hands out one hydrated AuthStore per client. Stores that
// go unused are evicted by Sweep; their persisted state survives.
type SessionManager struct {
	storage     port.ClientStorage
	api         port.AuthAPI
	autoRefresh bool
	now         func() time.Time

	mu     sync.RWMutex
	stores map[string]*managedStore
	group  singleflight.Group
}

type managedStore struct {
	store    *AuthStore
	lastSeen atomic.Int64 // unix nanos
}

func (e *managedStore) touch(t time.Time) {
	e.lastSeen.Store(t.UnixNano())
}

// NewSessionManager creates a manager. With autoRefresh, stores verify new
// tokens against the API in the background.
func NewSessionManager(storage port.ClientStorage, api port.AuthAPI, autoRefresh bool) *SessionManager {
	return &SessionManager{
		storage:     storage,
		api:         api,
		autoRefresh: autoRefresh,
		now:         time.Now,
		stores:      make(map[string]*managedStore),
	}
}

// Get returns the client's store, creating and hydrating it on first use.
func (m *SessionManager) Get(ctx context.Context, clientID string) (*AuthStore, error) {
	if clientID == "" {
		return nil, port.ErrMissingClientID
	}

	m.mu.RLock()
	e, ok := m.stores[clientID]
	m.mu.RUnlock()
	if ok {
		e.touch(m.now())
		return e.store, nil
	}

	v, err, _ := m.group.Do(clientID, func() (interface{}, error) {
		m.mu.RLock()
		existing, ok := m.stores[clientID]
		m.mu.RUnlock()
		if ok {
			existing.touch(m.now())
			return existing.store, nil
		}

		store := NewAuthStore(clientID, m.storage, m.api, m.autoRefresh)
		if err := store.Hydrate(ctx); err != nil {
			store.Close()
			return nil, err
		}

		entry := &managedStore{store: store}
		entry.touch(m.now())
		m.mu.Lock()
		m.stores[clientID] = entry
		m.mu.Unlock()
		return store, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*AuthStore), nil
}

// Forget closes and drops the client's store. Persisted state is kept, so
// the next Get rehydrates it.
func (m *SessionManager) Forget(clientID string) {
	m.mu.Lock()
	e, ok := m.stores[clientID]
	delete(m.stores, clientID)
	m.mu.Unlock()
	if ok {
		e.store.Close()
	}
}

// Sweep evicts stores unused for longer than idle. Stores with a live
// event stream are kept. It returns the number evicted.
func (m *SessionManager) Sweep(idle time.Duration) int {
	if idle <= 0 {
		idle = DefaultSessionIdle
	}
	cutoff := m.now().Add(-idle).UnixNano()

	var evicted []*AuthStore
	m.mu.Lock()
	for id, e := range m.stores {
		if e.lastSeen.Load() < cutoff && e.store.Subscribers() == 0 {
			delete(m.stores, id)
			evicted = append(evicted, e.store)
		}
	}
	m.mu.Unlock()

	for _, s := range evicted {
		s.Close()
	}
	return len(evicted)
}

// Run sweeps idle stores every interval until ctx is done.
func (m *SessionManager) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(idle); n > 0 {
				slog.Debug("evicted idle sessions", "count", n)
			}
		}
	}
}

// Len returns the number of live stores.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stores)
}

// Close closes every store.
func (m *SessionManager) Close() {
	m.mu.Lock()
	stores := m.stores
	m.stores = make(map[string]*managedStore)
	m.mu.Unlock()
	for _, e := range stores {
		e.store.Close()
	}
}
