package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
// Now returns local time: calendar-day rules are evaluated in its location.
type Clock interface {
	Now() time.Time
}

// Ticker is the subset of *time.Ticker the session loop relies on.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFactory interface {
	NewTicker(d time.Duration) Ticker
}

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{t: time.NewTicker(d)}
}

func (SystemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

type systemTicker struct {
	t *time.Ticker
}

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop()               { s.t.Stop() }
