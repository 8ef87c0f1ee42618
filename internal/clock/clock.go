// Package clock provides the time source behind every tick.
//
// In production, use Real() which wraps the standard time package.
// In tests, use NewFakeClock() and drive time with Advance().
package clock

import "time"

// Clock provides time operations that can be real or simulated.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// TickFunc calls f every d until the returned Ticker is stopped.
	// Calls are never concurrent with each other for a single Ticker.
	TickFunc(d time.Duration, f func()) Ticker
}

// Ticker is a repeating callback registration.
type Ticker interface {
	// Stop turns off the ticker. It returns false if the ticker was
	// already stopped. A call of f already under way may still finish,
	// so owners must check their own state before mutating it.
	Stop() bool
}
