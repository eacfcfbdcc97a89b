package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClockedCenter(ttl time.Duration) (*ToastCenter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewToastCenter(ttl)
	c.now = clock.Now
	return c, clock
}

func TestToastExpiresAfterTTL(t *testing.T) {
	c, clock := newClockedCenter(3 * time.Second)

	first := c.Push("c1", domain.ToastSuccess, "Saved")
	assert.Equal(t, first.CreatedAt.Add(3*time.Second), first.ExpiresAt)
	assert.NotEmpty(t, first.ID)

	clock.Advance(2 * time.Second)
	c.Push("c1", domain.ToastError, "Save failed")

	active := c.Active("c1")
	require.Len(t, active, 2)
	assert.Equal(t, "Saved", active[0].Message)

	clock.Advance(1500 * time.Millisecond)
	active = c.Active("c1")
	require.Len(t, active, 1)
	assert.Equal(t, domain.ToastError, active[0].Level)

	clock.Advance(2 * time.Second)
	assert.Empty(t, c.Active("c1"))
}

func TestToastsArePerClient(t *testing.T) {
	c, _ := newClockedCenter(time.Second)
	c.For("c1").Info("hello")

	assert.Len(t, c.Active("c1"), 1)
	assert.NotNil(t, c.Active("c2"))
	assert.Empty(t, c.Active("c2"))
}

func TestNonPositiveTTLUsesDefault(t *testing.T) {
	c, _ := newClockedCenter(0)
	toast := c.Push("c1", domain.ToastInfo, "x")
	assert.Equal(t, DefaultToastTTL, toast.ExpiresAt.Sub(toast.CreatedAt))
}

func TestDismissToast(t *testing.T) {
	c, _ := newClockedCenter(time.Minute)
	a := c.Push("c1", domain.ToastInfo, "a")
	c.Push("c1", domain.ToastInfo, "b")

	assert.True(t, c.Dismiss("c1", a.ID))
	assert.False(t, c.Dismiss("c1", a.ID))
	assert.False(t, c.Dismiss("c2", a.ID))

	active := c.Active("c1")
	require.Len(t, active, 1)
	assert.Equal(t, "b", active[0].Message)
}

func TestSubscribeReceivesToasts(t *testing.T) {
	c, _ := newClockedCenter(time.Minute)
	events, stop := c.Subscribe("c1")
	other, stopOther := c.Subscribe("c2")
	defer stopOther()

	c.For("c1").Success("Listing published")

	select {
	case toast := <-events:
		assert.Equal(t, "Listing published", toast.Message)
		assert.Equal(t, domain.ToastSuccess, toast.Level)
	case <-time.After(time.Second):
		t.Fatal("no toast delivered")
	}
	select {
	case <-other:
		t.Fatal("toast leaked to another client")
	default:
	}

	stop()
	stop()
	_, open := <-events
	assert.False(t, open)

	// Pushing with no subscribers must not block.
	c.Push("c1", domain.ToastInfo, "after stop")
}

func TestSlowSubscriberDoesNotBlockPush(t *testing.T) {
	c, _ := newClockedCenter(time.Minute)
	_, stop := c.Subscribe("c1")
	defer stop()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 64; i++ {
			c.Push("c1", domain.ToastInfo, "spam")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("push blocked on a full subscriber")
	}
}

func TestSweepDropsExpired(t *testing.T) {
	c, clock := newClockedCenter(time.Second)
	c.Push("c1", domain.ToastInfo, "old")
	clock.Advance(500 * time.Millisecond)
	c.Push("c2", domain.ToastInfo, "new")
	clock.Advance(600 * time.Millisecond)

	c.Sweep()

	c.mu.Lock()
	_, hasC1 := c.toasts["c1"]
	kept := len(c.toasts["c2"])
	c.mu.Unlock()
	assert.False(t, hasC1)
	assert.Equal(t, 1, kept)
}

func TestRunStopsWithContext(t *testing.T) {
	c := NewToastCenter(time.Millisecond)
	c.Push("c1", domain.ToastInfo, "gone soon")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(c.toasts) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestPushWhileSubscribersStop(t *testing.T) {
	c, _ := newClockedCenter(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				c.Push("c1", domain.ToastInfo, "tick")
			}
		}()
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		select {
		case <-done:
			assert.Len(t, c.Active("c1"), 8*500)
			return
		default:
			_, stop := c.Subscribe("c1")
			stop()
		}
	}
}
