package repository

import (
	"context"
	"time"

	"github.com/ashlinalex1/mindstride/internal/domain"
)

type ActivityLogRepo interface {
	InsertBatch(ctx context.Context, logs []*domain.ActivityLog) error
	// ListByDate returns the newest logs of one day first, at most limit rows.
	ListByDate(ctx context.Context, userID string, date time.Time, limit int) ([]*domain.ActivityLog, error)
	// ListRange returns logs with from <= date <= to, oldest first.
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.ActivityLog, error)
	DeleteBefore(ctx context.Context, userID string, date time.Time) (int64, error)
}

type DailySummaryRepo interface {
	Upsert(ctx context.Context, s *domain.DailySummary) error
	Get(ctx context.Context, userID string, date time.Time) (*domain.DailySummary, error)
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailySummary, error)
	DeleteBefore(ctx context.Context, userID string, date time.Time) (int64, error)
}

type WeeklySummaryRepo interface {
	Upsert(ctx context.Context, s *domain.WeeklySummary) error
	Get(ctx context.Context, userID string, year, week int) (*domain.WeeklySummary, error)
}

type AppUsageRepo interface {
	// ReplaceForDate swaps all app usage rows of one day for usages.
	ReplaceForDate(ctx context.Context, userID string, date time.Time, usages []domain.AppUsage) error
	// TopByCategory sums usage since from and keeps the top perCategory apps of each category.
	TopByCategory(ctx context.Context, userID string, from time.Time, perCategory int) (map[domain.Category][]domain.AppUsage, error)
	DeleteBefore(ctx context.Context, userID string, date time.Time) (int64, error)
}

type PhoneUsageRepo interface {
	Create(ctx context.Context, l *domain.PhoneUsageLog) error
	ListSince(ctx context.Context, userID string, since time.Time) ([]*domain.PhoneUsageLog, error)
	DeleteBefore(ctx context.Context, userID string, before time.Time) (int64, error)
}
