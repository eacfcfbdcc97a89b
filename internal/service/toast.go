package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

// DefaultToastTTL is how long a toast stays visible.
const DefaultToastTTL = 3 * time.Second

// ToastCenter keeps each client's visible toasts and fans new ones out to
// the client's event streams.
type ToastCenter struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	toasts  map[string][]domain.Toast
	subs    map[string]map[int]chan domain.Toast
	nextSub int
}

// NewToastCenter creates a center. A non-positive ttl uses DefaultToastTTL.
func NewToastCenter(ttl time.Duration) *ToastCenter {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &ToastCenter{
		ttl:    ttl,
		now:    time.Now,
		toasts: make(map[string][]domain.Toast),
		subs:   make(map[string]map[int]chan domain.Toast),
	}
}

// Push shows msg to clientID.
func (c *ToastCenter) Push(clientID string, level domain.ToastLevel, msg string) domain.Toast {
	now := c.now()
	t := domain.Toast{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   msg,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.toasts[clientID] = append(c.live(clientID, now), t)
	// Sends happen under c.mu so a concurrent stop cannot close ch mid-send.
	for _, ch := range c.subs[clientID] {
		select {
		case ch <- t:
		default:
		}
	}
	return t
}

// live returns the client's unexpired toasts. c.mu must be held.
func (c *ToastCenter) live(clientID string, now time.Time) []domain.Toast {
	ts := c.toasts[clientID]
	out := ts[:0]
	for _, t := range ts {
		if now.Before(t.ExpiresAt) {
			out = append(out, t)
		}
	}
	return out
}

// Active returns the client's visible toasts, oldest first.
func (c *ToastCenter) Active(clientID string) []domain.Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	ts := c.live(clientID, c.now())
	if len(ts) == 0 {
		delete(c.toasts, clientID)
		return []domain.Toast{}
	}
	c.toasts[clientID] = ts
	return append([]domain.Toast(nil), ts...)
}

// Dismiss hides one toast early.
func (c *ToastCenter) Dismiss(clientID, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ts := c.toasts[clientID]
	for i, t := range ts {
		if t.ID == id {
			c.toasts[clientID] = append(ts[:i], ts[i+1:]...)
			return true
		}
	}
	return false
}

// Subscribe returns a channel receiving the client's new toasts and a func
// to stop receiving.
func (c *ToastCenter) Subscribe(clientID string) (<-chan domain.Toast, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan domain.Toast, 16)
	id := c.nextSub
	c.nextSub++
	if c.subs[clientID] == nil {
		c.subs[clientID] = make(map[int]chan domain.Toast)
	}
	c.subs[clientID][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs[clientID], id)
			if len(c.subs[clientID]) == 0 {
				delete(c.subs, clientID)
			}
			close(ch)
		})
	}
}

// Sweep drops expired toasts for every client.
func (c *ToastCenter) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for id := range c.toasts {
		if ts := c.live(id, now); len(ts) > 0 {
			c.toasts[id] = ts
		} else {
			delete(c.toasts, id)
		}
	}
}

// Run sweeps expired toasts every interval until ctx is done.
func (c *ToastCenter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// For returns a Notifier that shows toasts to clientID.
func (c *ToastCenter) For(clientID string) port.Notifier {
	return clientToasts{center: c, clientID: clientID}
}

type clientToasts struct {
	center   *ToastCenter
	clientID string
}

func (n clientToasts) Success(msg string) { n.center.Push(n.clientID, domain.ToastSuccess, msg) }
func (n clientToasts) Error(msg string)   { n.center.Push(n.clientID, domain.ToastError, msg) }
func (n clientToasts) Info(msg string)    { n.center.Push(n.clientID, domain.ToastInfo, msg) }
