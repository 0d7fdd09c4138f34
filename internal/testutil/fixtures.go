package testutil

import (
	"time"

	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/google/uuid"
)

// TestUserID is the user all fixtures belong to unless overridden.
const TestUserID = "00000000-0000-0000-0000-0000000000aa"

// Activity log options
type LogOption func(*domain.ActivityLog)

func WithUser(id string) LogOption {
	return func(l *domain.ActivityLog) {
		l.UserID = id
	}
}

func WithWindowTitle(title string) LogOption {
	return func(l *domain.ActivityLog) {
		l.WindowTitle = title
	}
}

func WithDurationSeconds(s float64) LogOption {
	return func(l *domain.ActivityLog) {
		l.DurationSeconds = s
	}
}

// NewTestLog builds a 5 second activity log at ts.
func NewTestLog(ts time.Time, app string, category domain.Category, opts ...LogOption) *domain.ActivityLog {
	l := &domain.ActivityLog{
		ID:              uuid.New().String(),
		UserID:          TestUserID,
		Timestamp:       ts,
		AppName:         app,
		WindowTitle:     app,
		Category:        category,
		DurationSeconds: 5,
		Date:            ts.Format("2006-01-02"),
		CreatedAt:       time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewTestRecord builds a raw usage record lasting minutes.
func NewTestRecord(ts time.Time, app, category string, minutes float64) domain.UsageRecord {
	return domain.UsageRecord{
		Timestamp:       ts,
		AppName:         app,
		WindowTitle:     app,
		Category:        category,
		DurationSeconds: minutes * 60,
	}
}

// NewTestDailySummary builds a daily summary for the test user.
func NewTestDailySummary(date time.Time, bucket domain.CategoryBucket) *domain.DailySummary {
	s := domain.NewActivitySummary(bucket)
	s.UpdatedAt = date.Add(23 * time.Hour)
	return &domain.DailySummary{
		UserID:          TestUserID,
		Date:            date,
		ActivitySummary: s,
	}
}

// NewTestPhoneLog builds a phone usage log for the test user.
func NewTestPhoneLog(app, duration string, createdAt time.Time) *domain.PhoneUsageLog {
	return &domain.PhoneUsageLog{
		ID:        uuid.New().String(),
		UserID:    TestUserID,
		AppName:   app,
		Duration:  duration,
		CreatedAt: createdAt,
	}
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
