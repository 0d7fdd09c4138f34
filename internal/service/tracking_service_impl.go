package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ashlinalex1/mindstride/internal/activity"
	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/db"
	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/ashlinalex1/mindstride/internal/repository"
	"github.com/google/uuid"
)

type trackingService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
	// loc decides which calendar day a timestamp belongs to. It matches the
	// zone the summary queries are anchored in.
	loc *time.Location
}

// NewTrackingService buckets records into days in loc, or time.Local when
// loc is nil.
func NewTrackingService(uow db.UnitOfWork, loc *time.Location, observers ...UseCaseObserver) TrackingService {
	if loc == nil {
		loc = time.Local
	}
	return &trackingService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		loc:      loc,
	}
}

func (s *trackingService) Ingest(ctx context.Context, userID string, records []domain.UsageRecord) (result *app.IngestResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"records": len(records)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "ingest",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if userID == "" {
		return nil, &app.RequestError{Code: app.ErrInvalidInput, Message: "user id is required"}
	}
	if len(records) == 0 {
		return &app.IngestResult{BatchID: uuid.New().String()}, nil
	}

	now := time.Now()
	result = &app.IngestResult{BatchID: uuid.New().String()}
	logs := make([]*domain.ActivityLog, 0, len(records))
	days := map[string]time.Time{}
	for _, rec := range records {
		if strings.TrimSpace(rec.AppName) == "" {
			result.Skipped++
			continue
		}
		ts := rec.Timestamp
		if ts.IsZero() {
			ts = now
		}
		ts = ts.In(s.loc)
		dur := rec.DurationSeconds
		if dur < 0 {
			dur = 0
			result.Clamped++
		}
		date := repository.FormatDate(ts)
		days[date] = ts
		logs = append(logs, &domain.ActivityLog{
			ID:              uuid.New().String(),
			UserID:          userID,
			Timestamp:       ts,
			AppName:         rec.AppName,
			WindowTitle:     rec.WindowTitle,
			Category:        activity.Resolve(rec.Category),
			DurationSeconds: dur,
			Date:            date,
			CreatedAt:       now,
		})
	}

	fields["skipped"] = result.Skipped
	if len(logs) == 0 {
		return result, nil
	}

	for d := range days {
		result.Dates = append(result.Dates, d)
	}
	sort.Strings(result.Dates)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLActivityLogRepo(tx).InsertBatch(ctx, logs); err != nil {
			return err
		}
		weeks := map[string]time.Time{}
		for _, d := range result.Dates {
			day := days[d]
			if err := recomputeDay(ctx, tx, userID, day); err != nil {
				return err
			}
			y, w := day.ISOWeek()
			weeks[fmt.Sprintf("%d-%02d", y, w)] = day
		}
		for _, day := range weeks {
			if err := recomputeWeek(ctx, tx, userID, day); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ingesting %d records: %w", len(records), err)
	}

	result.Inserted = len(logs)
	fields["inserted"] = result.Inserted
	fields["clamped"] = result.Clamped
	return result, nil
}

func (s *trackingService) Recompute(ctx context.Context, userID string, date time.Time) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "recompute",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"date": repository.FormatDate(date)},
		})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := recomputeDay(ctx, tx, userID, date); err != nil {
			return err
		}
		return recomputeWeek(ctx, tx, userID, date)
	})
}

// recomputeDay rebuilds the daily summary and app usage rows of one day.
func recomputeDay(ctx context.Context, tx db.DBTX, userID string, day time.Time) error {
	logs, err := repository.NewSQLActivityLogRepo(tx).ListRange(ctx, userID, day, day)
	if err != nil {
		return err
	}
	records := make([]domain.UsageRecord, len(logs))
	var updated time.Time
	for i, l := range logs {
		records[i] = l.Record()
		if l.Timestamp.After(updated) {
			updated = l.Timestamp
		}
	}

	summary := activity.Summarize(records)
	summary.UpdatedAt = updated
	daily := &domain.DailySummary{
		UserID:          userID,
		Date:            midnight(day),
		ActivitySummary: summary,
	}
	if err := repository.NewSQLDailySummaryRepo(tx).Upsert(ctx, daily); err != nil {
		return err
	}
	return repository.NewSQLAppUsageRepo(tx).ReplaceForDate(ctx, userID, day, appUsages(userID, day, records))
}

// recomputeWeek rolls the stored daily summaries of day's ISO week into the
// weekly table.
func recomputeWeek(ctx context.Context, tx db.DBTX, userID string, day time.Time) error {
	week := activity.WeekDays(day)
	stored, err := repository.NewSQLDailySummaryRepo(tx).ListRange(ctx, userID, week[0], week[6])
	if err != nil {
		return err
	}
	rollup := activity.WeeklyRollup(fillWeek(userID, week, stored))
	rollup.UserID = userID
	return repository.NewSQLWeeklySummaryRepo(tx).Upsert(ctx, &rollup)
}

// fillWeek places stored summaries in their weekday slot. Missing days are
// zero summaries dated to their slot.
func fillWeek(userID string, week [7]time.Time, stored []*domain.DailySummary) [7]domain.DailySummary {
	byDate := make(map[string]*domain.DailySummary, len(stored))
	for _, s := range stored {
		byDate[repository.FormatDate(s.Date)] = s
	}
	var out [7]domain.DailySummary
	for i, d := range week {
		if s, ok := byDate[repository.FormatDate(d)]; ok {
			out[i] = *s
			out[i].Date = d
			continue
		}
		out[i] = domain.DailySummary{
			UserID:          userID,
			Date:            d,
			ActivitySummary: domain.NewActivitySummary(nil),
		}
	}
	return out
}

// appUsages sums minutes per (app, category) pair.
func appUsages(userID string, day time.Time, records []domain.UsageRecord) []domain.AppUsage {
	type key struct {
		app string
		cat domain.Category
	}
	totals := map[key]float64{}
	for _, r := range records {
		if r.AppName == "" || r.DurationSeconds <= 0 {
			continue
		}
		totals[key{r.AppName, activity.Resolve(r.Category)}] += r.Minutes()
	}
	date := repository.FormatDate(day)
	out := make([]domain.AppUsage, 0, len(totals))
	for k, m := range totals {
		out = append(out, domain.AppUsage{
			UserID:       userID,
			Date:         date,
			AppName:      k.app,
			Category:     k.cat,
			TotalMinutes: m,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppName != out[j].AppName {
			return out[i].AppName < out[j].AppName
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
