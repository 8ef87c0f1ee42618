// Package ticksource turns a clock into cancellable tick subscriptions.
//
// A controller owns one Slot. Arming the slot replaces any previous handle, so a
// controller never has two tick streams at once, and Owns lets the controller
// drop a tick that was already in flight when its handle was cancelled.
package ticksource

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/longhd1308/ClockApp/internal/clock"
	"github.com/longhd1308/ClockApp/internal/logging"
)

// Source arms handles on a clock at a fixed cadence.
type Source struct {
	clock clock.Clock

	mu       sync.Mutex
	interval time.Duration
}

// New creates a source ticking every interval on c.
func New(c clock.Clock, interval time.Duration) *Source {
	if c == nil {
		c = clock.Real()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Source{clock: c, interval: interval}
}

// Interval returns the cadence used by the next Arm.
func (s *Source) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// SetInterval changes the cadence. Handles that are already armed keep theirs.
func (s *Source) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.interval = d
	s.mu.Unlock()
}

// Arm starts a new handle that calls fn once per tick until cancelled.
func (s *Source) Arm(fn func(h *Handle)) *Handle {
	interval := s.Interval()

	h := &Handle{}
	h.mu.Lock()
	h.ticker = s.clock.TickFunc(interval, func() {
		if h.Cancelled() {
			return
		}
		h.ticks.Add(1)
		fn(h)
	})
	h.mu.Unlock()

	logging.Tracef("tick handle armed (every %s)", interval)
	return h
}

// Handle is one tick subscription.
type Handle struct {
	mu        sync.Mutex
	ticker    clock.Ticker
	cancelled atomic.Bool
	ticks     atomic.Uint64
}

// Cancel stops the subscription. It reports false if it was already cancelled.
func (h *Handle) Cancel() bool {
	if h == nil || !h.cancelled.CompareAndSwap(false, true) {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ticker != nil {
		h.ticker.Stop()
	}
	logging.Tracef("tick handle cancelled after %d ticks", h.ticks.Load())
	return true
}

// Cancelled reports whether Cancel has been called.
func (h *Handle) Cancelled() bool {
	return h == nil || h.cancelled.Load()
}

// Slot holds at most one outstanding handle.
//
// A Slot is not safe for concurrent use; its owner guards it with the same lock
// that guards the state the ticks mutate.
type Slot struct {
	source  *Source
	current *Handle
}

// NewSlot creates an empty slot arming handles from source.
func NewSlot(source *Source) *Slot {
	return &Slot{source: source}
}

// Arm cancels the current handle, if any, and arms a new one.
func (s *Slot) Arm(fn func(h *Handle)) *Handle {
	s.Disarm()
	s.current = s.source.Arm(fn)
	return s.current
}

// Disarm cancels and forgets the current handle. Disarming an empty slot is a no-op.
func (s *Slot) Disarm() bool {
	if s.current == nil {
		return false
	}
	h := s.current
	s.current = nil
	return h.Cancel()
}

// Owns reports whether h is the live handle of this slot. Ticks from any other
// handle are stale and must not mutate state.
func (s *Slot) Owns(h *Handle) bool {
	return h != nil && s.current == h && !h.Cancelled()
}

// Current returns the handle armed last, or nil after Disarm.
func (s *Slot) Current() *Handle {
	return s.current
}

// Armed reports whether the slot holds a live handle.
func (s *Slot) Armed() bool {
	return !s.Current().Cancelled()
}
