package service

import (
	"sync"

	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

// Redirect is a pending route change for a client.
type Redirect struct {
	Path    string `json:"path"`
	Replace bool   `json:"replace"`
}

// PendingNavigator records the latest navigation requested for a client
// until the response that carries it is written.
type PendingNavigator struct {
	mu      sync.Mutex
	pending *Redirect
}

var _ port.Navigator = (*PendingNavigator)(nil)

func (n *PendingNavigator) Navigate(path string) {
	n.set(Redirect{Path: path})
}

func (n *PendingNavigator) Replace(path string) {
	n.set(Redirect{Path: path, Replace: true})
}

func (n *PendingNavigator) set(r Redirect) {
	n.mu.Lock()
	n.pending = &r
	n.mu.Unlock()
}

// Take returns and clears the pending navigation.
func (n *PendingNavigator) Take() (Redirect, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending == nil {
		return Redirect{}, false
	}
	r := *n.pending
	n.pending = nil
	return r, true
}
