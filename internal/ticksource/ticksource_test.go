package ticksource

import (
	"testing"
	"time"

	"github.com/longhd1308/ClockApp/internal/clock"
)

func newFake() *clock.FakeClock {
	return clock.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestSourceArm(t *testing.T) {
	c := newFake()
	src := New(c, time.Second)

	var count int
	var got *Handle
	h := src.Arm(func(fired *Handle) {
		count++
		got = fired
	})
	c.Advance(4 * time.Second)

	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}
	if got != h {
		t.Error("callback received a different handle than Arm returned")
	}
}

func TestSourceHalfSecondCadence(t *testing.T) {
	c := newFake()
	src := New(c, 500*time.Millisecond)

	var count int
	src.Arm(func(*Handle) { count++ })
	c.Advance(2 * time.Second)

	if count != 4 {
		t.Errorf("count = %d, want 4 ticks in 2s at 500ms", count)
	}
}

func TestHandleCancelIsIdempotent(t *testing.T) {
	c := newFake()
	src := New(c, time.Second)

	var count int
	h := src.Arm(func(*Handle) { count++ })
	c.Advance(time.Second)

	if !h.Cancel() {
		t.Error("first Cancel() returned false")
	}
	if h.Cancel() {
		t.Error("second Cancel() returned true")
	}
	c.Advance(5 * time.Second)

	if count != 1 {
		t.Errorf("count = %d after cancel, want 1", count)
	}
	if c.PendingTickers() != 0 {
		t.Errorf("PendingTickers() = %d, want 0", c.PendingTickers())
	}
}

func TestNilHandle(t *testing.T) {
	var h *Handle
	if h.Cancel() {
		t.Error("nil Cancel() returned true")
	}
	if !h.Cancelled() {
		t.Error("nil handle should read as cancelled")
	}
}

func TestSlotKeepsOneHandle(t *testing.T) {
	c := newFake()
	slot := NewSlot(New(c, time.Second))

	var first, second int
	h1 := slot.Arm(func(*Handle) { first++ })
	c.Advance(time.Second)
	h2 := slot.Arm(func(*Handle) { second++ })
	c.Advance(3 * time.Second)

	if !h1.Cancelled() {
		t.Error("re-arming did not cancel the previous handle")
	}
	if first != 1 || second != 3 {
		t.Errorf("first = %d, second = %d, want 1 and 3", first, second)
	}
	if slot.Owns(h1) || !slot.Owns(h2) {
		t.Error("Owns() does not track the current handle")
	}
	if c.PendingTickers() != 1 {
		t.Errorf("PendingTickers() = %d, want 1", c.PendingTickers())
	}
}

func TestSlotDisarm(t *testing.T) {
	c := newFake()
	slot := NewSlot(New(c, time.Second))

	if slot.Disarm() {
		t.Error("Disarm() on empty slot returned true")
	}
	if slot.Current() != nil {
		t.Error("Current() on empty slot is not nil")
	}
	h := slot.Arm(func(*Handle) {})
	if !slot.Armed() || slot.Current() != h {
		t.Error("Armed() = false or Current() differs after Arm")
	}
	if !slot.Disarm() {
		t.Error("Disarm() returned false on armed slot")
	}
	if slot.Disarm() {
		t.Error("second Disarm() returned true")
	}
	if slot.Armed() || slot.Owns(h) || !h.Cancelled() || slot.Current() != nil {
		t.Error("slot still owns a live handle after Disarm")
	}
}

func TestSetIntervalAppliesToNextArm(t *testing.T) {
	c := newFake()
	src := New(c, time.Second)

	var a, b int
	src.Arm(func(*Handle) { a++ })
	src.SetInterval(250 * time.Millisecond)
	src.SetInterval(0)
	src.Arm(func(*Handle) { b++ })
	c.Advance(time.Second)

	if a != 1 || b != 4 {
		t.Errorf("a = %d, b = %d, want 1 and 4", a, b)
	}
	if src.Interval() != 250*time.Millisecond {
		t.Errorf("Interval() = %s", src.Interval())
	}
}
