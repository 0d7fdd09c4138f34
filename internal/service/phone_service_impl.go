package service

import (
	"context"
	"sort"
	"time"

	"github.com/ashlinalex1/mindstride/internal/activity"
	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/ashlinalex1/mindstride/internal/repository"
	"github.com/google/uuid"
)

const (
	phoneTopApps   = 5
	phoneNoApp     = "None"
	phoneNoData    = "No phone usage data today"
	phoneLoaded    = "Phone usage data loaded"
	phoneWeeklyMsg = "Weekly phone usage loaded"
)

type phoneService struct {
	repo     repository.PhoneUsageRepo
	observer UseCaseObserver
}

func NewPhoneService(repo repository.PhoneUsageRepo, observers ...UseCaseObserver) PhoneService {
	return &phoneService{repo: repo, observer: useCaseObserverOrNoop(observers)}
}

func (s *phoneService) Record(ctx context.Context, userID string, in app.PhoneUsageInput, now time.Time) (l *domain.PhoneUsageLog, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "phone-record",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"app": in.AppName},
		})
	}()

	if in.AppName == "" {
		return nil, &app.RequestError{Code: app.ErrInvalidInput, Message: "app name is required"}
	}
	if _, err := activity.ParseClockDuration(in.Duration); err != nil {
		return nil, &app.RequestError{Code: app.ErrInvalidInput, Message: err.Error()}
	}
	l = &domain.PhoneUsageLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		AppName:   in.AppName,
		Duration:  in.Duration,
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Today summarizes the 24 hours before now.
func (s *phoneService) Today(ctx context.Context, userID string, now time.Time) (*app.PhoneToday, error) {
	logs, err := s.repo.ListSince(ctx, userID, now.Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return &app.PhoneToday{TopApps: []app.AppMinutes{}, Message: phoneNoData}, nil
	}

	seconds := map[string]int{}
	var total int
	for _, l := range logs {
		secs, err := activity.ParseClockDuration(l.Duration)
		if err != nil {
			continue
		}
		seconds[l.AppName] += secs
		total += secs
	}

	ranked := rankApps(seconds)
	if len(ranked) > phoneTopApps {
		ranked = ranked[:phoneTopApps]
	}
	return &app.PhoneToday{
		TotalMinutes: app.Round2(float64(total) / 60),
		TotalApps:    len(seconds),
		TopApps:      ranked,
		Message:      phoneLoaded,
	}, nil
}

// Weekly returns the seven calendar days ending today, oldest first.
func (s *phoneService) Weekly(ctx context.Context, userID string, now time.Time) (*app.PhoneWeekly, error) {
	start := midnight(now).AddDate(0, 0, -6)
	logs, err := s.repo.ListSince(ctx, userID, start)
	if err != nil {
		return nil, err
	}

	perDay := map[string]map[string]int{}
	for _, l := range logs {
		secs, err := activity.ParseClockDuration(l.Duration)
		if err != nil {
			continue
		}
		day := repository.FormatDate(l.CreatedAt.In(now.Location()))
		if perDay[day] == nil {
			perDay[day] = map[string]int{}
		}
		perDay[day][l.AppName] += secs
	}

	out := &app.PhoneWeekly{Message: phoneWeeklyMsg}
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		key := repository.FormatDate(d)
		entry := app.PhoneDay{Day: d.Format("Mon"), Date: key, TopApp: phoneNoApp}
		if apps := perDay[key]; len(apps) > 0 {
			var total int
			for _, secs := range apps {
				total += secs
			}
			entry.Minutes = app.Round2(float64(total) / 60)
			entry.TopApp = rankApps(apps)[0].App
		}
		out.WeeklyData = append(out.WeeklyData, entry)
	}
	return out, nil
}

// rankApps orders apps by descending time, ties alphabetical.
func rankApps(seconds map[string]int) []app.AppMinutes {
	names := make([]string, 0, len(seconds))
	for name := range seconds {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if seconds[names[i]] != seconds[names[j]] {
			return seconds[names[i]] > seconds[names[j]]
		}
		return names[i] < names[j]
	})
	out := make([]app.AppMinutes, len(names))
	for i, name := range names {
		out[i] = app.AppMinutes{App: name, Minutes: app.Round2(float64(seconds[name]) / 60)}
	}
	return out
}
