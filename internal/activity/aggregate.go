package activity

import (
	"sort"

	"github.com/ashlinalex1/mindstride/internal/domain"
)

// Anomaly describes a record that had to be corrected during aggregation.
type Anomaly struct {
	Record domain.UsageRecord
	Reason string
}

// AggregateOption configures Aggregate.
type AggregateOption func(*aggregateConfig)

type aggregateConfig struct {
	report func(Anomaly)
}

// WithDiagnostics registers a callback that receives every corrected record.
func WithDiagnostics(fn func(Anomaly)) AggregateOption {
	return func(c *aggregateConfig) {
		c.report = fn
	}
}

// Aggregate sums record durations in minutes per canonical category.
//
// Records are summed in a total order (timestamp first) so the same set of
// records always produces bit-identical sums regardless of input order.
// Negative durations are clamped to zero and reported. No deduplication is
// performed.
func Aggregate(records []domain.UsageRecord, opts ...AggregateOption) domain.CategoryBucket {
	cfg := aggregateConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	sorted := sortedRecords(records)
	bucket := domain.CategoryBucket{}
	for _, r := range sorted {
		minutes := r.Minutes()
		if r.DurationSeconds < 0 {
			if cfg.report != nil {
				cfg.report(Anomaly{Record: r, Reason: "negative duration clamped to zero"})
			}
			minutes = 0
		}
		c := Resolve(r.Category)
		bucket[c] += minutes
	}
	return bucket
}

// Summarize aggregates records into an ActivitySummary including the most
// used app.
func Summarize(records []domain.UsageRecord, opts ...AggregateOption) domain.ActivitySummary {
	s := domain.NewActivitySummary(Aggregate(records, opts...))
	s.MostUsedApp, _ = MostUsedApp(records)
	return s
}

func sortedRecords(records []domain.UsageRecord) []domain.UsageRecord {
	out := make([]domain.UsageRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		if a.AppName != b.AppName {
			return a.AppName < b.AppName
		}
		if a.WindowTitle != b.WindowTitle {
			return a.WindowTitle < b.WindowTitle
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.DurationSeconds < b.DurationSeconds
	})
	return out
}
