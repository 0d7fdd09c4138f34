// Package tracker samples the foreground window on a fixed interval and
// turns each sample into a usage record.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ashlinalex1/mindstride/internal/activity"
	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/domain"
)

const (
	DefaultInterval  = 5 * time.Second
	DefaultBatchSize = 1
	flushTimeout     = 10 * time.Second
)

// Sink stores a batch of records.
type Sink interface {
	Ingest(ctx context.Context, userID string, records []domain.UsageRecord) (*app.IngestResult, error)
}

// Journal mirrors every record to a secondary store such as a CSV file.
type Journal interface {
	Append(rec domain.UsageRecord) error
}

// Classifier picks the category label of a window.
type Classifier func(w Window) string

// KeywordClassifier labels a window by its process name and title.
func KeywordClassifier(w Window) string {
	return string(activity.Categorize(w.Process + " " + w.Title))
}

// Config controls the sampling loop.
type Config struct {
	UserID    string
	Interval  time.Duration
	BatchSize int
}

// Stats counts what a Run did.
type Stats struct {
	Samples int
	Skipped int
	Flushed int
	Failed  int
}

type Tracker struct {
	cfg      Config
	sampler  Sampler
	sink     Sink
	journal  Journal
	classify Classifier
	logger   *slog.Logger
	now      func() time.Time
	onRecord func(domain.UsageRecord)

	buffer []domain.UsageRecord
	stats  Stats
}

type Option func(*Tracker)

func WithJournal(j Journal) Option       { return func(t *Tracker) { t.journal = j } }
func WithClassifier(c Classifier) Option { return func(t *Tracker) { t.classify = c } }
func WithLogger(l *slog.Logger) Option   { return func(t *Tracker) { t.logger = l } }
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithOnRecord registers a callback invoked for each captured record.
func WithOnRecord(fn func(domain.UsageRecord)) Option {
	return func(t *Tracker) { t.onRecord = fn }
}

func New(cfg Config, sampler Sampler, sink Sink, opts ...Option) *Tracker {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	t := &Tracker{
		cfg:      cfg,
		sampler:  sampler,
		sink:     sink,
		classify: KeywordClassifier,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run samples every interval until ctx is done, then flushes what is still
// buffered.
func (t *Tracker) Run(ctx context.Context) (Stats, error) {
	ticker := time.NewTicker(t.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
			err := t.Flush(flushCtx)
			cancel()
			return t.stats, err
		case <-ticker.C:
			err := t.Tick(ctx)
			switch {
			case errors.Is(err, ErrUnsupportedPlatform):
				return t.stats, err
			case err != nil:
				t.logger.Warn("tracker_flush_failed", "pending", len(t.buffer), "error", err)
			}
		}
	}
}

// Tick takes one sample and flushes when the batch is full.
func (t *Tracker) Tick(ctx context.Context) error {
	t.stats.Samples++
	w, err := t.sampler.Sample()
	if errors.Is(err, ErrUnsupportedPlatform) {
		return err
	}
	if err != nil || w.Process == "" || w.Title == "" {
		t.stats.Skipped++
		if err != nil {
			t.logger.Debug("tracker_sample_skipped", "error", err)
		}
		return nil
	}

	rec := domain.UsageRecord{
		Timestamp:       t.now(),
		AppName:         w.Process,
		WindowTitle:     w.Title,
		Category:        t.classify(w),
		DurationSeconds: t.cfg.Interval.Seconds(),
	}
	if t.journal != nil {
		if err := t.journal.Append(rec); err != nil {
			t.logger.Warn("tracker_journal_failed", "error", err)
		}
	}
	if t.onRecord != nil {
		t.onRecord(rec)
	}

	t.buffer = append(t.buffer, rec)
	if len(t.buffer) >= t.cfg.BatchSize {
		return t.Flush(ctx)
	}
	return nil
}

// Flush sends buffered records to the sink. On failure the batch is kept
// for the next flush.
func (t *Tracker) Flush(ctx context.Context) error {
	if len(t.buffer) == 0 {
		return nil
	}
	if _, err := t.sink.Ingest(ctx, t.cfg.UserID, t.buffer); err != nil {
		t.stats.Failed++
		return err
	}
	t.stats.Flushed += len(t.buffer)
	t.buffer = nil
	return nil
}

// Pending returns the number of buffered records.
func (t *Tracker) Pending() int {
	return len(t.buffer)
}
