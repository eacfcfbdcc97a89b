package storage

import (
	"context"
	"sync"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

const maxMemoryNavigation = 1000

// MemoryStore keeps client storage and the navigation log in process memory.
// Everything is lost on restart.
type MemoryStore struct {
	mu         sync.RWMutex
	clients    map[string]map[string]string
	navigation []domain.NavigationLog
}

var (
	_ port.ClientStorage      = (*MemoryStore)(nil)
	_ port.NavigationLogStore = (*MemoryStore)(nil)
)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{clients: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, clientID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.clients[clientID][key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, clientID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.clients[clientID]
	if !ok {
		items = make(map[string]string)
		s.clients[clientID] = items
	}
	items[key] = value
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, clientID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.clients[clientID]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(items, k)
	}
	if len(items) == 0 {
		delete(s.clients, clientID)
	}
	return nil
}

// WriteNavigation appends entry, dropping the oldest records past a fixed cap.
func (s *MemoryStore) WriteNavigation(_ context.Context, entry domain.NavigationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigation = append(s.navigation, entry)
	if over := len(s.navigation) - maxMemoryNavigation; over > 0 {
		s.navigation = append([]domain.NavigationLog(nil), s.navigation[over:]...)
	}
	return nil
}

func (s *MemoryStore) ListNavigation(_ context.Context, limit int, outcome string) ([]domain.NavigationLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 100
	}
	logs := make([]domain.NavigationLog, 0, limit)
	for i := len(s.navigation) - 1; i >= 0 && len(logs) < limit; i-- {
		if outcome != "" && s.navigation[i].Outcome != outcome {
			continue
		}
		logs = append(logs, s.navigation[i])
	}
	return logs, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
