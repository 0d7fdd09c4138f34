package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ashlinalex1/mindstride/internal/activity"
	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/ashlinalex1/mindstride/internal/repository"
)

type summaryService struct {
	logs     repository.ActivityLogRepo
	daily    repository.DailySummaryRepo
	weekly   repository.WeeklySummaryRepo
	apps     repository.AppUsageRepo
	observer UseCaseObserver
}

func NewSummaryService(
	logs repository.ActivityLogRepo,
	daily repository.DailySummaryRepo,
	weekly repository.WeeklySummaryRepo,
	apps repository.AppUsageRepo,
	observers ...UseCaseObserver,
) SummaryService {
	return &summaryService{
		logs:     logs,
		daily:    daily,
		weekly:   weekly,
		apps:     apps,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *summaryService) Daily(ctx context.Context, userID string, date time.Time) (*app.DailyView, error) {
	summary, err := s.dailySummary(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	v := app.NewDailyView(date, summary)
	return &v, nil
}

func (s *summaryService) dailySummary(ctx context.Context, userID string, date time.Time) (domain.ActivitySummary, error) {
	d, err := s.daily.Get(ctx, userID, date)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewActivitySummary(nil), nil
	}
	if err != nil {
		return domain.ActivitySummary{}, err
	}
	return d.ActivitySummary, nil
}

func (s *summaryService) LastDays(ctx context.Context, userID string, end time.Time, n int) ([]app.DailyView, error) {
	if n <= 0 || n > app.MaxRangeDays {
		return nil, &app.RequestError{
			Code:    app.ErrInvalidRange,
			Message: fmt.Sprintf("days must be between 1 and %d, got %d", app.MaxRangeDays, n),
		}
	}
	end = midnight(end)
	start := end.AddDate(0, 0, -(n - 1))
	stored, err := s.daily.ListRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]domain.ActivitySummary, len(stored))
	for _, d := range stored {
		byDate[repository.FormatDate(d.Date)] = d.ActivitySummary
	}

	out := make([]app.DailyView, 0, n)
	for i := 0; i < n; i++ {
		day := start.AddDate(0, 0, i)
		summary, ok := byDate[repository.FormatDate(day)]
		if !ok {
			summary = domain.NewActivitySummary(nil)
		}
		out = append(out, app.NewDailyView(day, summary))
	}
	return out, nil
}

func (s *summaryService) Weekly(ctx context.Context, userID string, day time.Time) (*app.WeeklyView, error) {
	week := activity.WeekDays(day)
	stored, err := s.daily.ListRange(ctx, userID, week[0], week[6])
	if err != nil {
		return nil, err
	}
	filled := fillWeek(userID, week, stored)
	days := make([]app.DailyView, 0, len(filled))
	for _, d := range filled {
		days = append(days, app.NewDailyView(d.Date, d.ActivitySummary))
	}

	year, num := week[0].ISOWeek()
	w, err := s.weekly.Get(ctx, userID, year, num)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		rollup := activity.WeeklyRollup(filled)
		w = &rollup
	case err != nil:
		return nil, err
	}
	v := app.NewWeeklyView(*w, days)
	return &v, nil
}

func (s *summaryService) TopApps(ctx context.Context, userID string, since time.Time) (map[domain.Category][]domain.AppUsage, error) {
	return s.apps.TopByCategory(ctx, userID, since, app.TopAppsPerCategory)
}

func (s *summaryService) Logs(ctx context.Context, userID string, req app.LogsRequest) ([]*domain.ActivityLog, error) {
	if req.Limit == 0 {
		req.Limit = app.DefaultLogLimit
	}
	if req.Limit < 0 || req.Limit > app.MaxLogLimit {
		return nil, &app.RequestError{
			Code:    app.ErrInvalidLimit,
			Message: fmt.Sprintf("limit must be between 1 and %d, got %d", app.MaxLogLimit, req.Limit),
		}
	}
	return s.logs.ListByDate(ctx, userID, req.Date, req.Limit)
}

func (s *summaryService) Stats(ctx context.Context, userID string, now time.Time) (resp *app.StatsResponse, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "stats",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"date": repository.FormatDate(now)},
		})
	}()

	last, err := s.LastDays(ctx, userID, now, app.DefaultRangeDays)
	if err != nil {
		return nil, err
	}
	week, err := s.Weekly(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	top, err := s.TopApps(ctx, userID, midnight(now).AddDate(0, 0, -(app.DefaultRangeDays-1)))
	if err != nil {
		return nil, err
	}
	return &app.StatsResponse{
		Today:       last[len(last)-1],
		Last7Days:   last,
		CurrentWeek: *week,
		TopApps:     top,
	}, nil
}
