package app

import (
	"time"

	"github.com/ashlinalex1/mindstride/internal/domain"
)

const (
	DefaultLogLimit    = 100
	MaxLogLimit        = 1000
	DefaultRangeDays   = 7
	MaxRangeDays       = 90
	DefaultKeepDays    = 30
	TopAppsPerCategory = 5
)

// LogsRequest selects activity logs of one day.
type LogsRequest struct {
	Date  time.Time
	Limit int
}

func NewLogsRequest(date time.Time) LogsRequest {
	return LogsRequest{Date: date, Limit: DefaultLogLimit}
}

// CleanupRequest configures retention cleanup.
type CleanupRequest struct {
	Now              *time.Time
	KeepDays         int
	IncludeSummaries bool
}

func NewCleanupRequest() CleanupRequest {
	return CleanupRequest{KeepDays: DefaultKeepDays}
}

// RecordInput is the wire form of one usage record submitted for ingest.
// Fields are not validated here; the tracking service defaults or skips
// bad records one at a time.
type RecordInput struct {
	Timestamp       time.Time `json:"timestamp"`
	AppName         string    `json:"app_name"`
	WindowTitle     string    `json:"window_title"`
	Category        string    `json:"category"`
	DurationSeconds float64   `json:"duration_seconds"`
}

func (in RecordInput) Record() domain.UsageRecord {
	return domain.UsageRecord{
		Timestamp:       in.Timestamp,
		AppName:         in.AppName,
		WindowTitle:     in.WindowTitle,
		Category:        in.Category,
		DurationSeconds: in.DurationSeconds,
	}
}

// IngestRequest is a batch of records.
type IngestRequest struct {
	Records []RecordInput `json:"records" validate:"required,min=1,max=5000"`
}

// PhoneUsageInput is one phone app session.
type PhoneUsageInput struct {
	AppName  string `json:"app_name" validate:"required,max=256"`
	Duration string `json:"duration" validate:"required,clockduration"`
}

// PredictRequest asks for the category of free text.
type PredictRequest struct {
	Text string `json:"text" validate:"required,max=2048"`
}
