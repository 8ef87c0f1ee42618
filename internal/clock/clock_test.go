package clock

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	c := Real()
	before := time.Now()
	got := c.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("Now() = %v, want between %v and %v", got, before, after)
	}
}

func TestRealClock_TickFunc(t *testing.T) {
	c := Real()
	var count atomic.Int32
	ticker := c.TickFunc(10*time.Millisecond, func() { count.Add(1) })

	deadline := time.Now().Add(time.Second)
	for count.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !ticker.Stop() {
		t.Error("Stop() returned false on active ticker")
	}
	if ticker.Stop() {
		t.Error("second Stop() returned true")
	}
	if got := count.Load(); got < 3 {
		t.Fatalf("ticker fired %d times, want >= 3", got)
	}

	time.Sleep(20 * time.Millisecond)
	settled := count.Load()
	time.Sleep(50 * time.Millisecond)
	if got := count.Load(); got != settled {
		t.Errorf("ticker fired %d more times after Stop()", got-settled)
	}
}

func TestFakeClock_Now(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)

	if got := c.Now(); !got.Equal(start) {
		t.Errorf("Now() = %v, want %v", got, start)
	}
	c.Advance(5 * time.Minute)
	if got := c.Now(); !got.Equal(start.Add(5 * time.Minute)) {
		t.Errorf("after Advance Now() = %v", got)
	}
}

func TestFakeClock_AdvanceTo_Backwards(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)

	c.AdvanceTo(start.Add(-time.Hour))

	if got := c.Now(); !got.Equal(start) {
		t.Errorf("Now() = %v, want %v (no backwards)", got, start)
	}
}

func TestFakeClock_TickFunc(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)

	var ticks []time.Time
	ticker := c.TickFunc(time.Second, func() { ticks = append(ticks, c.Now()) })
	defer ticker.Stop()

	c.Advance(500 * time.Millisecond)
	if len(ticks) != 0 {
		t.Fatalf("ticked %d times before first interval", len(ticks))
	}

	c.Advance(3 * time.Second)
	if len(ticks) != 3 {
		t.Fatalf("got %d ticks, want 3", len(ticks))
	}
	for i, tick := range ticks {
		want := start.Add(time.Duration(i+1) * time.Second)
		if !tick.Equal(want) {
			t.Errorf("tick %d at %v, want %v", i, tick, want)
		}
	}
	if got := c.Now(); !got.Equal(start.Add(3500 * time.Millisecond)) {
		t.Errorf("Now() = %v after advancing", got)
	}
}

func TestFakeClock_TickFunc_Stop(t *testing.T) {
	c := NewFakeClock(time.Now())

	var count int
	ticker := c.TickFunc(time.Second, func() { count++ })
	c.Advance(2 * time.Second)

	if !ticker.Stop() {
		t.Error("Stop() returned false on active ticker")
	}
	if ticker.Stop() {
		t.Error("second Stop() returned true")
	}
	c.Advance(5 * time.Second)

	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if got := c.PendingTickers(); got != 0 {
		t.Errorf("PendingTickers() = %d, want 0", got)
	}
}

func TestFakeClock_TickFunc_StopFromCallback(t *testing.T) {
	c := NewFakeClock(time.Now())

	var count int
	var ticker Ticker
	ticker = c.TickFunc(time.Second, func() {
		count++
		if count == 3 {
			ticker.Stop()
		}
	})
	c.Advance(10 * time.Second)

	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestFakeClock_TickFunc_Ordering(t *testing.T) {
	c := NewFakeClock(time.Now())

	var order []string
	a := c.TickFunc(2*time.Second, func() { order = append(order, "a") })
	b := c.TickFunc(3*time.Second, func() { order = append(order, "b") })
	defer a.Stop()
	defer b.Stop()

	c.Advance(6 * time.Second)

	// At 6s both are due; b was rescheduled (at 3s) before a (at 4s).
	want := []string{"a", "b", "a", "b", "a"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
