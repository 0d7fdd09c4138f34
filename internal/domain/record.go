package domain

import "time"

// UsageRecord is a single observation of foreground application usage as
// reported by a tracker.
type UsageRecord struct {
	Timestamp       time.Time `json:"timestamp"`
	AppName         string    `json:"app_name"`
	WindowTitle     string    `json:"window_title"`
	Category        string    `json:"category"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// Minutes converts the record duration to fractional minutes. Negative
// durations are returned as-is; callers decide how to treat them.
func (r UsageRecord) Minutes() float64 {
	return r.DurationSeconds / 60
}

// ActivityLog is a persisted UsageRecord.
type ActivityLog struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Timestamp       time.Time `json:"timestamp"`
	AppName         string    `json:"app_name"`
	WindowTitle     string    `json:"window_title"`
	Category        Category  `json:"category"`
	DurationSeconds float64   `json:"duration_seconds"`
	Date            string    `json:"date"`
	CreatedAt       time.Time `json:"created_at"`
}

// Record converts the log back to the raw record shape used by aggregation.
func (l ActivityLog) Record() UsageRecord {
	return UsageRecord{
		Timestamp:       l.Timestamp,
		AppName:         l.AppName,
		WindowTitle:     l.WindowTitle,
		Category:        string(l.Category),
		DurationSeconds: l.DurationSeconds,
	}
}

// PhoneUsageLog is one app session reported by the phone companion. Duration
// is kept in the reported HH:MM:SS or MM:SS form.
type PhoneUsageLog struct {
	ID        string
	UserID    string
	AppName   string
	Duration  string
	CreatedAt time.Time
}
