// Package clock abstracts the wall clock so the sweep engine can be
// driven by a fixed or advancing time source in tests.
//
// All readings are canonicalized to UTC; the engine never compares
// instants in any other zone.
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current instant in UTC.
type Clock interface {
	Now() time.Time
}

// System reads the operating system clock.
type System struct{}

// Now returns the current wall-clock time in UTC.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fake is a settable clock for tests.
type Fake struct {
	// mu protects concurrent access to the current instant.
	mu sync.Mutex
	// now is the instant returned by Now.
	now time.Time
}

// NewFake creates a fake clock frozen at the provided instant.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now.UTC()}
}

// Now returns the frozen instant.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
}

// Set moves the clock to the provided instant.
func (f *Fake) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = now.UTC()
}
