package service

import (
	"context"
	"time"

	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/domain"
)

// TrackingService stores raw usage records and keeps the derived daily,
// weekly and per-app tables in step with them.
type TrackingService interface {
	Ingest(ctx context.Context, userID string, records []domain.UsageRecord) (*app.IngestResult, error)
	// Recompute rebuilds the summaries of the day containing date from its logs.
	Recompute(ctx context.Context, userID string, date time.Time) error
}

// SummaryService reads summaries for presentation.
type SummaryService interface {
	Daily(ctx context.Context, userID string, date time.Time) (*app.DailyView, error)
	// LastDays returns n days ending at end, oldest first. Days without data
	// are present with zero minutes.
	LastDays(ctx context.Context, userID string, end time.Time, n int) ([]app.DailyView, error)
	Weekly(ctx context.Context, userID string, day time.Time) (*app.WeeklyView, error)
	TopApps(ctx context.Context, userID string, since time.Time) (map[domain.Category][]domain.AppUsage, error)
	Logs(ctx context.Context, userID string, req app.LogsRequest) ([]*domain.ActivityLog, error)
	Stats(ctx context.Context, userID string, now time.Time) (*app.StatsResponse, error)
}

// PhoneService records and summarizes phone app sessions.
type PhoneService interface {
	Record(ctx context.Context, userID string, in app.PhoneUsageInput, now time.Time) (*domain.PhoneUsageLog, error)
	Today(ctx context.Context, userID string, now time.Time) (*app.PhoneToday, error)
	Weekly(ctx context.Context, userID string, now time.Time) (*app.PhoneWeekly, error)
}

// RetentionService deletes data older than the retention window.
type RetentionService interface {
	Cleanup(ctx context.Context, userID string, req app.CleanupRequest) (*app.CleanupResult, error)
}
