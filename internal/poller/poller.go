// Package poller keeps the latest activity summary of a tracker backend
// fresh by polling it on a fixed interval.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ashlinalex1/mindstride/internal/domain"
)

// Fetcher retrieves one summary snapshot.
type Fetcher interface {
	Fetch(ctx context.Context) (domain.ActivitySummary, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (domain.ActivitySummary, error)

func (f FetcherFunc) Fetch(ctx context.Context) (domain.ActivitySummary, error) { return f(ctx) }

// Snapshot is the state exposed to readers after each applied poll.
type Snapshot struct {
	Summary   domain.ActivitySummary
	Connected bool
	Err       error
	Seq       uint64
	UpdatedAt time.Time
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the time between polls.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithOnUpdate registers a callback invoked with every applied snapshot.
// It runs on the polling goroutine and must not block.
func WithOnUpdate(fn func(Snapshot)) Option {
	return func(p *Poller) { p.onUpdate = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Poller) { p.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

// DefaultInterval is the polling period when none is configured.
const DefaultInterval = 15 * time.Second

// Poller issues polls against a Fetcher. Only the result of the most
// recently issued poll is ever applied; a newer poll cancels the one in
// flight and any late result of an older poll is dropped.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	onUpdate func(Snapshot)
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	issued   uint64
	cancel   context.CancelFunc
	snapshot Snapshot
}

func New(fetcher Fetcher, opts ...Option) *Poller {
	p := &Poller{
		fetcher:  fetcher,
		interval: DefaultInterval,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		snapshot: Snapshot{Summary: domain.NewActivitySummary(nil)},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Latest returns the most recently applied snapshot.
func (p *Poller) Latest() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Poll issues one poll and waits for it. It reports whether its result was
// applied; false means a newer poll superseded it or ctx ended first.
func (p *Poller) Poll(ctx context.Context) bool {
	pollCtx, seq := p.issue(ctx)
	summary, err := p.fetcher.Fetch(pollCtx)
	if ctx.Err() != nil {
		return false
	}
	return p.apply(seq, summary, err)
}

func (p *Poller) issue(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.issued++
	p.cancel = cancel
	return ctx, p.issued
}

func (p *Poller) apply(seq uint64, summary domain.ActivitySummary, err error) bool {
	p.mu.Lock()
	if latest := p.issued; seq != latest {
		p.mu.Unlock()
		p.logger.Debug("poll_discarded", "seq", seq, "latest", latest)
		return false
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	snap := Snapshot{Seq: seq, UpdatedAt: p.now()}
	if err != nil {
		snap.Summary = domain.NewActivitySummary(nil)
		snap.Err = err
		p.logger.Warn("poll_failed", "seq", seq, "error", err)
	} else {
		snap.Summary = summary
		snap.Connected = true
	}
	p.snapshot = snap
	onUpdate := p.onUpdate
	p.mu.Unlock()

	if onUpdate != nil {
		onUpdate(snap)
	}
	return true
}

// Run polls immediately and then every interval until ctx is done. A tick
// that fires while the previous scheduled poll is still in flight is
// skipped, so a backend slower than the interval still gets answered.
// Explicit calls to Poll always supersede the poll in flight.
func (p *Poller) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	var inFlight atomic.Bool
	start := func() {
		if !inFlight.CompareAndSwap(false, true) {
			p.logger.Debug("poll_skipped", "reason", "previous poll in flight")
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer inFlight.Store(false)
			p.Poll(ctx)
		}()
	}

	start()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case <-ticker.C:
			start()
		}
	}
}
