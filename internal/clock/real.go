package clock

import (
	"sync"
	"time"
)

// realClock implements Clock using the standard time package.
type realClock struct{}

// Real returns a Clock that uses the standard time package.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) TickFunc(d time.Duration, f func()) Ticker {
	if d <= 0 {
		panic("non-positive interval for TickFunc")
	}
	rt := &realTicker{
		t:    time.NewTicker(d),
		done: make(chan struct{}),
	}
	go rt.loop(f)
	return rt
}

// realTicker drives f from a time.Ticker on its own goroutine.
type realTicker struct {
	t    *time.Ticker
	done chan struct{}
	once sync.Once
}

func (r *realTicker) loop(f func()) {
	for {
		select {
		case <-r.done:
			return
		case <-r.t.C:
			select {
			case <-r.done:
				return
			default:
			}
			f()
		}
	}
}

func (r *realTicker) Stop() bool {
	stopped := false
	r.once.Do(func() {
		r.t.Stop()
		close(r.done)
		stopped = true
	})
	return stopped
}
