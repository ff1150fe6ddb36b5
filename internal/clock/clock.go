// Package clock provides the time source used for processing-time
// measurements, overridable in tests.
package clock

import "time"

var nowFunc = time.Now

// Now returns the current time from the configured clock function.
func Now() time.Time {
	return nowFunc()
}

// Since returns the elapsed time between t and the configured clock.
func Since(t time.Time) time.Duration {
	return nowFunc().Sub(t)
}

// SetNowForTest overrides the clock source and returns a restore function.
func SetNowForTest(fn func() time.Time) func() {
	previous := nowFunc
	nowFunc = fn
	return func() {
		nowFunc = previous
	}
}
