// Package sweeper implements the expiry reconciliation engine.
//
// A sweep reads the clock once, selects reminders that are still active with
// a lapsed expiry instant, transitions each to expired, dispatches an SMS per
// newly-expired reminder and writes the aggregate alarm flag. Per-candidate
// failures are isolated and recovered by the next sweep; only a failure of
// the candidate query aborts a sweep, leaving the flag untouched.
//
// The Scheduler drives sweeps from a single goroutine on a fixed cadence,
// with one run immediately after a short startup grace delay. Sweeps never
// overlap.
package sweeper
