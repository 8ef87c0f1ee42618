package usecase

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/longhd1308/ClockApp/internal/clock"
	"github.com/longhd1308/ClockApp/internal/domain"
	"github.com/longhd1308/ClockApp/internal/ticksource"
)

func newFakeSource(interval time.Duration) (*clock.FakeClock, *ticksource.Source) {
	c := clock.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return c, ticksource.New(c, interval)
}

func TestStopwatchController_Scenario(t *testing.T) {
	c, src := newFakeSource(time.Second)
	sw := NewStopwatchController(src)

	if err := sw.Start(); err != nil {
		t.Fatal(err)
	}
	c.Advance(5 * time.Second)
	if v := sw.View(); v.ElapsedSeconds != 5 || v.Display != "00:05" {
		t.Fatalf("after 5 ticks: %+v", v)
	}

	if err := sw.Pause(); err != nil {
		t.Fatal(err)
	}
	c.Advance(30 * time.Second)
	if v := sw.View(); v.Display != "00:05" || v.State != "paused" {
		t.Fatalf("while paused: %+v", v)
	}

	if err := sw.Resume(); err != nil {
		t.Fatal(err)
	}
	c.Advance(3 * time.Second)
	if v := sw.View(); v.ElapsedSeconds != 8 || v.Display != "00:08" {
		t.Fatalf("after resume: %+v", v)
	}

	if err := sw.Reset(); err != nil {
		t.Fatal(err)
	}
	if v := sw.View(); v.ElapsedSeconds != 0 || v.Display != "00:00" || v.State != "idle" {
		t.Fatalf("after reset: %+v", v)
	}
	if c.PendingTickers() != 0 {
		t.Errorf("PendingTickers() = %d after reset, want 0", c.PendingTickers())
	}
}

func TestStopwatchController_IllegalCommands(t *testing.T) {
	c, src := newFakeSource(time.Second)
	sw := NewStopwatchController(src)

	for _, fn := range []func() error{sw.Pause, sw.Resume, sw.Reset} {
		if err := fn(); !errors.Is(err, domain.ErrIllegalCommand) {
			t.Errorf("from idle: err = %v, want ErrIllegalCommand", err)
		}
	}

	sw.Start()
	if err := sw.Start(); !errors.Is(err, domain.ErrIllegalCommand) {
		t.Errorf("double start: err = %v", err)
	}
	if c.PendingTickers() != 1 {
		t.Errorf("PendingTickers() = %d, want exactly one tick stream", c.PendingTickers())
	}
	c.Advance(2 * time.Second)
	if got := sw.State().ElapsedSeconds; got != 2 {
		t.Errorf("elapsed = %d, want 2", got)
	}
}

func TestStopwatchController_StaleTickIsDropped(t *testing.T) {
	_, src := newFakeSource(time.Second)
	sw := NewStopwatchController(src)
	sw.Start()

	sw.mu.Lock()
	inFlight := sw.slot.Current()
	sw.mu.Unlock()

	sw.Pause()
	sw.tick(inFlight)
	if got := sw.State().ElapsedSeconds; got != 0 {
		t.Errorf("tick after pause moved the stopwatch to %d", got)
	}

	sw.Resume()
	sw.tick(inFlight)
	if got := sw.State().ElapsedSeconds; got != 0 {
		t.Errorf("tick from the old handle was applied after resume: %d", got)
	}
}

func TestStopwatchController_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cmds := []domain.Command{domain.CommandStart, domain.CommandPause, domain.CommandResume}

	for run := 0; run < 20; run++ {
		c, src := newFakeSource(time.Second)
		sw := NewStopwatchController(src)
		want := 0
		last := 0

		for step := 0; step < 50; step++ {
			sw.Do(cmds[rng.Intn(len(cmds))])
			ticks := rng.Intn(4)
			running := sw.State().Run == domain.StateRunning
			c.Advance(time.Duration(ticks) * time.Second)
			if running {
				want += ticks
			}
			got := sw.State().ElapsedSeconds
			if got < last {
				t.Fatalf("run %d step %d: elapsed went down from %d to %d", run, step, last, got)
			}
			if got != want {
				t.Fatalf("run %d step %d: elapsed = %d, want %d", run, step, got, want)
			}
			last = got
		}
	}
}

func TestStopwatchController_OnChange(t *testing.T) {
	c, src := newFakeSource(time.Second)
	sw := NewStopwatchController(src)

	var seen []string
	sw.OnChange(func(v domain.StopwatchView) { seen = append(seen, v.Display) })
	sw.Start()
	c.Advance(2 * time.Second)
	sw.Pause()

	want := []string{"00:00", "00:01", "00:02", "00:02"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("seen = %v, want %v", seen, want)
		}
	}
}

func TestTimerController_Scenario(t *testing.T) {
	c, src := newFakeSource(time.Second)
	tm := NewTimerController(src)

	var finished int
	tm.OnFinish(func() { finished++ })

	seed := domain.DurationSelection{Minutes: 1, Seconds: 5}.TotalSeconds()
	if err := tm.Start(seed); err != nil {
		t.Fatal(err)
	}
	if v := tm.View(); v.RemainingSeconds != 65 || v.Display != "00 : 01 : 05" || v.PickerEditable {
		t.Fatalf("after start: %+v", v)
	}

	c.Advance(64 * time.Second)
	if v := tm.View(); v.RemainingSeconds != 1 || v.State != "running" {
		t.Fatalf("after 64 ticks: %+v", v)
	}

	c.Advance(time.Second)
	v := tm.View()
	if v.RemainingSeconds != 0 || v.State != "idle" || v.Display != "00 : 00 : 00" || !v.PickerEditable {
		t.Fatalf("after 65 ticks: %+v", v)
	}
	if finished != 1 {
		t.Errorf("OnFinish called %d times, want 1", finished)
	}
	if c.PendingTickers() != 0 {
		t.Errorf("PendingTickers() = %d after auto-stop, want 0", c.PendingTickers())
	}

	c.Advance(10 * time.Second)
	if tm.View().RemainingSeconds != 0 || finished != 1 {
		t.Errorf("timer kept moving after auto-stop")
	}
}

func TestTimerController_ZeroDuration(t *testing.T) {
	c, src := newFakeSource(time.Second)
	tm := NewTimerController(src)

	var finished int
	tm.OnFinish(func() { finished++ })
	if err := tm.Start(0); err != nil {
		t.Fatal(err)
	}
	if v := tm.View(); v.State != "idle" || v.RemainingSeconds != 0 {
		t.Errorf("zero start: %+v", v)
	}
	if c.PendingTickers() != 0 || finished != 0 {
		t.Errorf("zero start armed a ticker (%d) or fired OnFinish (%d)", c.PendingTickers(), finished)
	}
}

func TestTimerController_PauseResumeNoCatchUp(t *testing.T) {
	c, src := newFakeSource(time.Second)
	tm := NewTimerController(src)
	tm.Start(20)

	c.Advance(5 * time.Second)
	tm.Pause()
	c.Advance(time.Minute)
	if got := tm.State().RemainingSeconds; got != 15 {
		t.Fatalf("paused remaining = %d, want 15", got)
	}
	tm.Resume()
	c.Advance(time.Second)
	if got := tm.State().RemainingSeconds; got != 14 {
		t.Errorf("after resume remaining = %d, want 14 (no catch-up)", got)
	}
	if err := tm.Start(5); !errors.Is(err, domain.ErrIllegalCommand) {
		t.Errorf("start while running: err = %v", err)
	}
	if err := tm.Reset(); err != nil {
		t.Fatal(err)
	}
	if s := tm.State(); s != (domain.TimerState{}) {
		t.Errorf("after reset: %+v", s)
	}
}

func TestTimerController_StaleTickAfterReset(t *testing.T) {
	_, src := newFakeSource(time.Second)
	tm := NewTimerController(src)
	tm.Start(10)

	tm.mu.Lock()
	inFlight := tm.slot.Current()
	tm.mu.Unlock()

	tm.Reset()
	tm.tick(inFlight)
	if s := tm.State(); s.RemainingSeconds != 0 || s.Run != domain.StateIdle {
		t.Errorf("stale tick mutated reset timer: %+v", s)
	}
}

func TestControllers_HalfSecondCadence(t *testing.T) {
	c, src := newFakeSource(500 * time.Millisecond)
	sw := NewStopwatchController(src)
	sw.Start()
	c.Advance(2 * time.Second)

	if got := sw.State().ElapsedSeconds; got != 4 {
		t.Errorf("elapsed = %d, want 4 ticks at 500ms", got)
	}
}

func TestControllers_Close(t *testing.T) {
	c, src := newFakeSource(time.Second)
	sw := NewStopwatchController(src)
	tm := NewTimerController(src)
	sw.Start()
	tm.Start(30)

	sw.Close()
	tm.Close()
	tm.Close()
	c.Advance(5 * time.Second)

	if sw.State().ElapsedSeconds != 0 || tm.State().RemainingSeconds != 30 {
		t.Errorf("ticks applied after Close: sw=%+v tm=%+v", sw.State(), tm.State())
	}
	if c.PendingTickers() != 0 {
		t.Errorf("PendingTickers() = %d after Close", c.PendingTickers())
	}
}
