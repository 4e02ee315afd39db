package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeRunner counts scheduler invocations and can simulate slow sweeps.
type fakeRunner struct {
	mu            sync.Mutex
	inits         int
	sweeps        int
	running       int
	maxConcurrent int
	sweepDuration time.Duration
	sweepErr      error
}

func (f *fakeRunner) InitFlag(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inits++

	return nil
}

func (f *fakeRunner) RunSweep(context.Context) (Stats, error) {
	f.mu.Lock()
	f.running++

	if f.running > f.maxConcurrent {
		f.maxConcurrent = f.running
	}

	duration := f.sweepDuration
	err := f.sweepErr
	f.mu.Unlock()

	if duration > 0 {
		time.Sleep(duration)
	}

	f.mu.Lock()
	f.running--
	f.sweeps++
	f.mu.Unlock()

	return Stats{}, err
}

func (f *fakeRunner) counts() (inits, sweeps, maxConcurrent int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.inits, f.sweeps, f.maxConcurrent
}

// TestScheduler_InvalidInterval rejects a non-positive cadence.
func TestScheduler_InvalidInterval(t *testing.T) {
	t.Parallel()

	s := NewScheduler(new(fakeRunner), 0, 0)
	require.Error(t, s.Run(context.Background()))
}

// TestScheduler_FirstRunAfterGrace verifies the flag initialization and the
// immediate first sweep after the startup delay, then the fixed cadence.
func TestScheduler_FirstRunAfterGrace(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		runner := new(fakeRunner)
		s := NewScheduler(runner, time.Minute, 3*time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() { done <- s.Run(ctx) }()

		// Still inside the startup grace period.
		time.Sleep(2 * time.Second)
		synctest.Wait()

		inits, sweeps, _ := runner.counts()
		require.Zero(t, inits)
		require.Zero(t, sweeps)

		// Grace elapses: flag initialized, first sweep runs immediately.
		time.Sleep(time.Second)
		synctest.Wait()

		inits, sweeps, _ = runner.counts()
		require.Equal(t, 1, inits)
		require.Equal(t, 1, sweeps)

		// One more sweep per interval afterwards.
		time.Sleep(time.Minute)
		synctest.Wait()

		_, sweeps, _ = runner.counts()
		require.Equal(t, 2, sweeps)

		time.Sleep(time.Minute)
		synctest.Wait()

		_, sweeps, _ = runner.counts()
		require.Equal(t, 3, sweeps)

		cancel()
		require.NoError(t, <-done)
	})
}

// TestScheduler_SweepsNeverOverlap: a sweep outlasting the interval delays
// the next tick instead of running concurrently with it.
func TestScheduler_SweepsNeverOverlap(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		runner := &fakeRunner{sweepDuration: 90 * time.Second}
		s := NewScheduler(runner, time.Minute, 0)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() { done <- s.Run(ctx) }()

		// Three intervals pass while each sweep takes one and a half.
		time.Sleep(5 * time.Minute)
		synctest.Wait()

		_, sweeps, maxConcurrent := runner.counts()
		require.Equal(t, 1, maxConcurrent, "sweeps must be strictly serialized")
		require.GreaterOrEqual(t, sweeps, 2)

		cancel()
		require.NoError(t, <-done)
	})
}

// TestScheduler_FailedSweepSkipsTick: a failing sweep is logged and skipped;
// the schedule is unaffected.
func TestScheduler_FailedSweepSkipsTick(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		runner := &fakeRunner{sweepErr: errors.New("store unreachable")}
		s := NewScheduler(runner, time.Minute, 0)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() { done <- s.Run(ctx) }()

		time.Sleep(2*time.Minute + time.Second)
		synctest.Wait()

		_, sweeps, _ := runner.counts()
		require.Equal(t, 3, sweeps, "ticks proceed normally after failures")

		cancel()
		require.NoError(t, <-done)
	})
}

// TestScheduler_CancelDuringGrace exits cleanly before the first sweep.
func TestScheduler_CancelDuringGrace(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		runner := new(fakeRunner)
		s := NewScheduler(runner, time.Minute, 10*time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() { done <- s.Run(ctx) }()

		time.Sleep(time.Second)
		cancel()

		require.NoError(t, <-done)

		inits, sweeps, _ := runner.counts()
		require.Zero(t, inits)
		require.Zero(t, sweeps)
	})
}
