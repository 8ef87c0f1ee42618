package clock

import (
	"container/heap"
	"sync"
	"time"
)

// FakeClock is a deterministic clock for tests.
//
// Time only advances when Advance() or AdvanceTo() is called. Ticker callbacks
// whose deadline is reached run synchronously on the goroutine calling Advance,
// in deadline order, so a test that advances 5s on a 1s ticker observes exactly
// five calls before Advance returns.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	waiters waitHeap
	nextID  uint64
}

// NewFakeClock creates a FakeClock starting at the given time.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// TickFunc registers f to be called every d of fake time.
func (c *FakeClock) TickFunc(d time.Duration, f func()) Ticker {
	if d <= 0 {
		panic("non-positive interval for TickFunc")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ft := &fakeTicker{clock: c, interval: d, fn: f}
	ft.w = c.addWaiter(c.now.Add(d), ft)
	return ft
}

// Advance moves the clock forward by d, firing any tickers that expire.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()
	c.AdvanceTo(target)
}

// AdvanceTo moves the clock to t, firing any tickers that expire.
// Moving backwards is ignored.
func (c *FakeClock) AdvanceTo(t time.Time) {
	for {
		c.mu.Lock()
		if t.Before(c.now) {
			c.mu.Unlock()
			return
		}
		if c.waiters.Len() == 0 || c.waiters[0].deadline.After(t) {
			c.now = t
			c.mu.Unlock()
			return
		}
		w := heap.Pop(&c.waiters).(*waiter)
		c.now = w.deadline
		c.mu.Unlock()

		// The lock is released while firing so the callback may stop its own
		// ticker, or register a new one, without deadlocking.
		w.ticker.fire(w.deadline)
	}
}

// PendingTickers returns the number of active tickers.
func (c *FakeClock) PendingTickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiters.Len()
}

// addWaiter adds a waiter to the heap. Caller must hold c.mu.
func (c *FakeClock) addWaiter(deadline time.Time, t *fakeTicker) *waiter {
	c.nextID++
	w := &waiter{deadline: deadline, ticker: t, id: c.nextID}
	heap.Push(&c.waiters, w)
	return w
}

// removeWaiter removes w if it is still queued. Caller must hold c.mu.
func (c *FakeClock) removeWaiter(w *waiter) bool {
	if w == nil || w.index < 0 {
		return false
	}
	heap.Remove(&c.waiters, w.index)
	return true
}

// waiter is one scheduled ticker deadline.
type waiter struct {
	deadline time.Time
	ticker   *fakeTicker
	id       uint64 // Unique ID for stable ordering
	index    int    // Index in heap, -1 once popped
}

// waitHeap is a min-heap of waiters ordered by deadline, then ID.
type waitHeap []*waiter

func (h waitHeap) Len() int { return len(h) }

func (h waitHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].id < h[j].id // FIFO for same deadline
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h waitHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *waitHeap) Push(x any) {
	w := x.(*waiter)
	w.index = len(*h)
	*h = append(*h, w)
}

func (h *waitHeap) Pop() any {
	old := *h
	n := len(old)
	w := old[n-1]
	old[n-1] = nil
	w.index = -1
	*h = old[0 : n-1]
	return w
}

// fakeTicker implements Ticker for FakeClock.
type fakeTicker struct {
	clock    *FakeClock
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	w       *waiter
	stopped bool
}

func (t *fakeTicker) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return false
	}
	t.stopped = true

	t.clock.mu.Lock()
	t.clock.removeWaiter(t.w)
	t.clock.mu.Unlock()
	return true
}

func (t *fakeTicker) fire(deadline time.Time) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	t.fn()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.clock.mu.Lock()
	t.w = t.clock.addWaiter(deadline.Add(t.interval), t)
	t.clock.mu.Unlock()
}
