package service

import (
	"context"
	"testing"
	"time"

	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/ashlinalex1/mindstride/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaily_MissingDayIsZeroView(t *testing.T) {
	repos := setupRepos(t)
	svc := repos.summaryService()

	v, err := svc.Daily(context.Background(), testutil.TestUserID, testutil.Day(2025, 3, 10))
	require.NoError(t, err)
	assert.False(t, v.HasData)
	assert.Zero(t, v.TotalMinutes)
	assert.Equal(t, "2025-03-10", v.Date)
	assert.Equal(t, "Mon", v.Day)
	assert.Equal(t, domain.TierNeedsImprovement, v.Status.Tier)
	assert.Equal(t, "0m", v.TotalFormatted)
}

func TestDaily_DerivesMetrics(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	day := testutil.Day(2025, 3, 10)
	require.NoError(t, repos.daily.Upsert(ctx, testutil.NewTestDailySummary(day, domain.CategoryBucket{
		domain.CategoryStudy:         45.5,
		domain.CategoryEntertainment: 23.2,
		domain.CategoryOther:         15.8,
	})))

	v, err := repos.summaryService().Daily(ctx, testutil.TestUserID, day)
	require.NoError(t, err)
	assert.True(t, v.HasData)
	assert.InDelta(t, 84.5, v.TotalMinutes, 1e-9)
	assert.Equal(t, 54, v.ProductivityPercentage)
	assert.Equal(t, 27, v.EntertainmentPercentage)
	assert.Equal(t, domain.TierGood, v.Status.Tier)
	assert.Equal(t, domain.CategoryStudy, v.MostUsedCategory)
	assert.InDelta(t, v.TotalMinutes, v.Normalized.Total(), 1e-9)
}

func TestLastDays_FillsGapsOldestFirst(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	end := testutil.Day(2025, 3, 16)
	require.NoError(t, repos.daily.Upsert(ctx, testutil.NewTestDailySummary(end.AddDate(0, 0, -2),
		domain.CategoryBucket{domain.CategoryStudy: 30})))

	days, err := repos.summaryService().LastDays(ctx, testutil.TestUserID, end.Add(15*time.Hour), 7)
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.Equal(t, "2025-03-10", days[0].Date)
	assert.Equal(t, "2025-03-16", days[6].Date)
	assert.InDelta(t, 30, days[4].StudyMinutes, 1e-9)
	for i, d := range days {
		if i != 4 {
			assert.False(t, d.HasData, "day %s", d.Date)
		}
	}
}

func TestLastDays_RejectsBadRange(t *testing.T) {
	repos := setupRepos(t)
	svc := repos.summaryService()

	for _, n := range []int{0, -1, app.MaxRangeDays + 1} {
		_, err := svc.LastDays(context.Background(), testutil.TestUserID, testutil.Day(2025, 3, 16), n)
		var reqErr *app.RequestError
		require.ErrorAs(t, err, &reqErr, "n=%d", n)
		assert.Equal(t, app.ErrInvalidRange, reqErr.Code)
	}
}

func TestWeekly_RollsUpWhenNotStored(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	monday := testutil.Day(2025, 3, 10)
	require.NoError(t, repos.daily.Upsert(ctx, testutil.NewTestDailySummary(monday,
		domain.CategoryBucket{domain.CategoryStudy: 20})))
	require.NoError(t, repos.daily.Upsert(ctx, testutil.NewTestDailySummary(monday.AddDate(0, 0, 2),
		domain.CategoryBucket{domain.CategoryStudy: 40, domain.CategoryEntertainment: 10})))

	v, err := repos.summaryService().Weekly(ctx, testutil.TestUserID, monday.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, 2025, v.Year)
	assert.Equal(t, 11, v.WeekNumber)
	assert.Equal(t, "2025-03-10", v.WeekStart)
	assert.Equal(t, "2025-03-12", v.MostProductiveDay)
	assert.InDelta(t, 70, v.TotalMinutes, 1e-9)
	require.Len(t, v.Days, 7)
	assert.Equal(t, "Mon", v.Days[0].Day)
	assert.Equal(t, "Sun", v.Days[6].Day)
}

func TestWeekly_UsesIngestedRollup(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	tracking := NewTrackingService(testutil.NewTestUoW(repos.db), time.UTC)
	monday := testutil.Day(2025, 3, 10)

	_, err := tracking.Ingest(ctx, testutil.TestUserID, []domain.UsageRecord{
		testutil.NewTestRecord(monday.Add(time.Hour), "Anki", "study", 30),
		testutil.NewTestRecord(monday.AddDate(0, 0, 1).Add(time.Hour), "Netflix", "entertainment", 10),
	})
	require.NoError(t, err)

	v, err := repos.summaryService().Weekly(ctx, testutil.TestUserID, monday)
	require.NoError(t, err)
	assert.InDelta(t, 40, v.TotalMinutes, 1e-9)
	assert.Equal(t, 75, v.ProductivityPercentage)
	assert.Equal(t, domain.TierExcellent, v.Status.Tier)
}

func TestLogs_LimitValidation(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	day := testutil.Day(2025, 3, 10)
	var logs []*domain.ActivityLog
	for i := 0; i < 5; i++ {
		logs = append(logs, testutil.NewTestLog(day.Add(time.Duration(i)*time.Minute), "Anki", domain.CategoryStudy))
	}
	require.NoError(t, repos.logs.InsertBatch(ctx, logs))
	svc := repos.summaryService()

	req := app.NewLogsRequest(day)
	got, err := svc.Logs(ctx, testutil.TestUserID, req)
	require.NoError(t, err)
	assert.Len(t, got, 5)

	req.Limit = 2
	got, err = svc.Logs(ctx, testutil.TestUserID, req)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	req.Limit = app.MaxLogLimit + 1
	_, err = svc.Logs(ctx, testutil.TestUserID, req)
	var reqErr *app.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, app.ErrInvalidLimit, reqErr.Code)
}

func TestStats_BundlesViews(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	tracking := NewTrackingService(testutil.NewTestUoW(repos.db), time.UTC)
	now := testutil.Day(2025, 3, 12).Add(18 * time.Hour)

	_, err := tracking.Ingest(ctx, testutil.TestUserID, []domain.UsageRecord{
		testutil.NewTestRecord(now.Add(-time.Hour), "Anki", "study", 30),
		testutil.NewTestRecord(now.Add(-2*time.Hour), "YouTube", "video", 15),
	})
	require.NoError(t, err)

	obs := &recordingObserver{}
	stats, err := repos.summaryService(obs).Stats(ctx, testutil.TestUserID, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-12", stats.Today.Date)
	assert.InDelta(t, 45, stats.Today.TotalMinutes, 1e-9)
	assert.Len(t, stats.Last7Days, 7)
	assert.Equal(t, "2025-03-10", stats.CurrentWeek.WeekStart)
	require.Len(t, stats.TopApps[domain.CategoryEntertainment], 1)
	assert.Equal(t, "YouTube", stats.TopApps[domain.CategoryEntertainment][0].AppName)
	assert.Equal(t, "stats", obs.last().Name)
}
