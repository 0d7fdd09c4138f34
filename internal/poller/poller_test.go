package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryWithStudy(m float64) domain.ActivitySummary {
	return domain.NewActivitySummary(domain.CategoryBucket{domain.CategoryStudy: m})
}

func TestPoller_InitialSnapshotIsDisconnectedZero(t *testing.T) {
	p := New(FetcherFunc(func(context.Context) (domain.ActivitySummary, error) {
		return summaryWithStudy(1), nil
	}))

	snap := p.Latest()
	assert.False(t, snap.Connected)
	assert.True(t, snap.Summary.IsEmpty())
	assert.Zero(t, snap.Seq)
}

func TestPoller_AppliesSuccessfulPoll(t *testing.T) {
	var updates []Snapshot
	p := New(FetcherFunc(func(context.Context) (domain.ActivitySummary, error) {
		return summaryWithStudy(42), nil
	}), WithOnUpdate(func(s Snapshot) { updates = append(updates, s) }))

	require.True(t, p.Poll(context.Background()))
	snap := p.Latest()
	assert.True(t, snap.Connected)
	assert.NoError(t, snap.Err)
	assert.Equal(t, 42.0, snap.Summary.StudyMinutes())
	assert.Equal(t, uint64(1), snap.Seq)
	assert.Len(t, updates, 1)
}

func TestPoller_FailureZeroesSummary(t *testing.T) {
	fail := errors.New("connection refused")
	var calls atomic.Int32
	p := New(FetcherFunc(func(context.Context) (domain.ActivitySummary, error) {
		if calls.Add(1) == 1 {
			return summaryWithStudy(30), nil
		}
		return domain.ActivitySummary{}, fail
	}))

	require.True(t, p.Poll(context.Background()))
	require.True(t, p.Poll(context.Background()))

	snap := p.Latest()
	assert.False(t, snap.Connected)
	assert.ErrorIs(t, snap.Err, fail)
	assert.True(t, snap.Summary.IsEmpty(), "stale data must not survive a failed poll")
}

func TestPoller_StaleResultIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32
	p := New(FetcherFunc(func(ctx context.Context) (domain.ActivitySummary, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			// Return a value even though ctx was cancelled, the way a slow
			// backend that ignores cancellation would.
			return summaryWithStudy(1), nil
		}
		return summaryWithStudy(2), nil
	}))

	var wg sync.WaitGroup
	var firstApplied bool
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstApplied = p.Poll(context.Background())
	}()
	<-started

	require.True(t, p.Poll(context.Background()))
	close(release)
	wg.Wait()

	assert.False(t, firstApplied)
	snap := p.Latest()
	assert.Equal(t, 2.0, snap.Summary.StudyMinutes())
	assert.Equal(t, uint64(2), snap.Seq)
}

func TestPoller_NewPollCancelsInFlight(t *testing.T) {
	cancelled := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32
	p := New(FetcherFunc(func(ctx context.Context) (domain.ActivitySummary, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return domain.ActivitySummary{}, ctx.Err()
		}
		return summaryWithStudy(5), nil
	}))

	go p.Poll(context.Background())
	<-started
	require.True(t, p.Poll(context.Background()))

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("in-flight poll was not cancelled")
	}
	assert.True(t, p.Latest().Connected)
}

func TestPoller_RunPollsUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	p := New(FetcherFunc(func(context.Context) (domain.ActivitySummary, error) {
		calls.Add(1)
		return summaryWithStudy(1), nil
	}), WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.True(t, p.Latest().Connected)
}

func TestPoller_RunWaitsForSlowBackend(t *testing.T) {
	var calls atomic.Int32
	p := New(FetcherFunc(func(ctx context.Context) (domain.ActivitySummary, error) {
		calls.Add(1)
		select {
		case <-time.After(60 * time.Millisecond):
			return summaryWithStudy(7), nil
		case <-ctx.Done():
			return domain.ActivitySummary{}, ctx.Err()
		}
	}), WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	assert.Eventually(t, func() bool { return p.Latest().Connected }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 7.0, p.Latest().Summary.StudyMinutes())
	cancel()
	<-done
	assert.Less(t, int(calls.Load()), 10, "ticks during a slow poll are skipped")
}
